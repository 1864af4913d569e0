package records

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/fabmetrics/oee/internal/dataset"
)

// Column names the engine recognizes in dataset headers. Matching is exact
// after the loader trims surrounding whitespace.
const (
	ColumnDate        = "Date"
	ColumnMachine     = "Machine"
	ColumnProduct     = "Product"
	ColumnProduction  = "Production per unit"
	ColumnRejects     = "Reject per unit"
	ColumnPerformance = "Performance %"
	ColumnWorkingDays = "Working days"
	ColumnDowntime    = "downtime"
)

// RequiredColumns must all be present in a dataset header.
var RequiredColumns = []string{
	ColumnProduction,
	ColumnRejects,
	ColumnPerformance,
	ColumnWorkingDays,
	ColumnDowntime,
}

// FromTable parses a loaded CSV table into a record set. Every required
// column must be present in the header; the error lists all that are
// missing, not just the first. Optional dimension columns (Date, Machine,
// Product) are recorded in the set's Columns when the header carries them.
// The result is not yet normalized.
func FromTable(t *dataset.Table) (*Set, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{MissingColumns: missing}
	}

	set := &Set{
		Records: make([]Record, 0, len(t.Rows)),
		Columns: ColumnSet{
			Date:    t.HasColumn(ColumnDate),
			Machine: t.HasColumn(ColumnMachine),
			Product: t.HasColumn(ColumnProduct),
		},
	}

	for i, row := range t.Rows {
		rec, err := parseRecord(row, i+1, set.Columns)
		if err != nil {
			return nil, err
		}
		set.Records = append(set.Records, rec)
	}
	return set, nil
}

func parseRecord(row dataset.Row, num int, cols ColumnSet) (Record, error) {
	var rec Record
	var err error

	if rec.ProductionUnits, err = parseCell(row, num, ColumnProduction); err != nil {
		return Record{}, err
	}
	if rec.RejectUnits, err = parseCell(row, num, ColumnRejects); err != nil {
		return Record{}, err
	}
	perf, err := parseCell(row, num, ColumnPerformance)
	if err != nil {
		return Record{}, err
	}
	rec.PerformanceScore = perf / 100 // the source column holds percent points
	if rec.WorkingDays, err = parseCell(row, num, ColumnWorkingDays); err != nil {
		return Record{}, err
	}
	if rec.DowntimeHours, err = parseCell(row, num, ColumnDowntime); err != nil {
		return Record{}, err
	}

	// Dimension values stay verbatim; an empty cell means the record has no
	// value for that dimension.
	if cols.Machine {
		rec.Machine = row[ColumnMachine]
	}
	if cols.Product {
		rec.Product = row[ColumnProduct]
	}
	if cols.Date {
		d, derr := dataset.ParseDate(row[ColumnDate])
		if derr != nil {
			return Record{}, &RowError{Row: num, Column: ColumnDate, Err: derr}
		}
		rec.Date = d
	}
	return rec, nil
}

func parseCell(row dataset.Row, num int, col string) (float64, error) {
	raw := strings.TrimSpace(row[col])
	if raw == "" {
		return 0, &RowError{Row: num, Column: col, Err: errors.New("empty value")}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &RowError{Row: num, Column: col, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &RowError{Row: num, Column: col, Err: errors.New("not a finite number")}
	}
	return v, nil
}
