package records

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from a dataset header.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.MissingColumns, ", "))
}

// RowError reports a cell that could not be parsed. Row is the 1-based data
// row index (the header is row 0).
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
