package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// Table is a parsed CSV file: the trimmed header plus one Row per data line.
// The header is kept separately so column checks work on header-only files.
type Table struct {
	Header []string
	Rows   []Row
}

// HasColumn reports whether the header contains the given column name.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// LoadCSV reads a CSV file. The first row is treated as headers (column
// names).
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}
	return table, nil
}

// ReadCSV reads CSV data from r. Header names are trimmed of surrounding
// whitespace; cell values are kept verbatim.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty input (no header row)")
	}

	headers := records[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return &Table{Header: headers, Rows: rows}, nil
}

// dateLayouts are the formats accepted for date cells, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate parses a date cell. An empty cell is a missing date, not an
// error; it returns the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
