package oee

import (
	"strings"

	"github.com/fabmetrics/oee/internal/records"
)

// Dimension is a grouping axis for aggregation.
type Dimension string

const (
	DimensionMachine Dimension = "machine"
	DimensionProduct Dimension = "product"
	DimensionDate    Dimension = "date"
	DimensionMonth   Dimension = "month"
)

// Dimensions lists every grouping axis, in presentation order.
var Dimensions = []Dimension{DimensionMachine, DimensionProduct, DimensionDate, DimensionMonth}

const validDimensions = "machine, product, date, month"

// ParseDimension maps a user-supplied name to a Dimension.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "machine":
		return DimensionMachine, nil
	case "product":
		return DimensionProduct, nil
	case "date":
		return DimensionDate, nil
	case "month":
		return DimensionMonth, nil
	default:
		return "", &InvalidGroupKeyError{Key: s, Reason: "unknown dimension (valid: " + validDimensions + ")"}
	}
}

// validate checks that the dataset carries the column this dimension
// groups by.
func (d Dimension) validate(c records.ColumnSet) error {
	switch d {
	case DimensionMachine:
		if !c.Machine {
			return &InvalidGroupKeyError{Key: string(d), Reason: "dataset has no Machine column"}
		}
	case DimensionProduct:
		if !c.Product {
			return &InvalidGroupKeyError{Key: string(d), Reason: "dataset has no Product column"}
		}
	case DimensionDate, DimensionMonth:
		if !c.Date {
			return &InvalidGroupKeyError{Key: string(d), Reason: "dataset has no Date column"}
		}
	default:
		return &InvalidGroupKeyError{Key: string(d), Reason: "unknown dimension (valid: " + validDimensions + ")"}
	}
	return nil
}

// key returns the record's group key for this dimension. Records without a
// value for the dimension key to the empty string.
func (d Dimension) key(r records.Record) string {
	switch d {
	case DimensionMachine:
		return r.Machine
	case DimensionProduct:
		return r.Product
	case DimensionDate:
		if r.Date.IsZero() {
			return ""
		}
		return r.Date.Format("2006-01-02")
	case DimensionMonth:
		if r.Date.IsZero() {
			return ""
		}
		return r.Date.Format("2006-01")
	}
	return ""
}

// Available reports whether the dataset carries the column this dimension
// needs.
func (d Dimension) Available(c records.ColumnSet) bool {
	return d.validate(c) == nil
}
