package metrics

// Ratio returns num/den as a pointer, or nil when den is zero. An undefined
// ratio stays distinguishable from a measured zero.
func Ratio(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	v := num / den
	return &v
}

// Clamp01 limits v to the interval [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Product multiplies ratio factors. The result is nil when any factor is
// nil, so undefined inputs propagate instead of collapsing to a number.
func Product(factors ...*float64) *float64 {
	v := 1.0
	for _, f := range factors {
		if f == nil {
			return nil
		}
		v *= *f
	}
	return &v
}
