package records

import (
	"slices"
	"time"
)

// Filter selects records. Zero-valued fields impose no constraint, so the
// zero Filter matches everything (an empty machine or product list means
// "all", matching multiselect semantics).
type Filter struct {
	From     time.Time
	To       time.Time
	Machines []string
	Products []string
}

// IsZero reports whether the filter imposes no constraint at all.
func (f Filter) IsZero() bool {
	return f.From.IsZero() && f.To.IsZero() && len(f.Machines) == 0 && len(f.Products) == 0
}

func (f Filter) matches(r Record) bool {
	if !f.From.IsZero() && (r.Date.IsZero() || r.Date.Before(f.From)) {
		return false
	}
	if !f.To.IsZero() && (r.Date.IsZero() || r.Date.After(f.To)) {
		return false
	}
	if len(f.Machines) > 0 && !slices.Contains(f.Machines, r.Machine) {
		return false
	}
	if len(f.Products) > 0 && !slices.Contains(f.Products, r.Product) {
		return false
	}
	return true
}

// Filter returns a new set holding the records that pass every constraint
// of f, in their original order. The receiver is unchanged; the columns
// bitmap carries over. Date bounds are inclusive, and records without a
// date fail any date bound.
func (s *Set) Filter(f Filter) *Set {
	out := &Set{Columns: s.Columns, Records: make([]Record, 0, len(s.Records))}
	for _, r := range s.Records {
		if f.matches(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}
