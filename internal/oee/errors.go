package oee

import "fmt"

// InvalidGroupKeyError reports a grouping dimension that is unknown or that
// the dataset does not carry.
type InvalidGroupKeyError struct {
	Key    string
	Reason string
}

func (e *InvalidGroupKeyError) Error() string {
	return fmt.Sprintf("invalid group key %q: %s", e.Key, e.Reason)
}

// InvalidParameterError reports a parameter outside its allowed range.
type InvalidParameterError struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s must be between %v and %v, got %v", e.Name, e.Min, e.Max, e.Value)
}
