// Package records holds the production-record model: parsing rows into
// typed records, per-record normalization, and filtering. Metric fields are
// pointers so an undefined value (a 0/0 case) stays distinguishable from a
// measured zero; they marshal as JSON null.
package records

import (
	"sort"
	"time"

	"github.com/fabmetrics/oee/internal/metrics"
)

// Record is a single production report.
type Record struct {
	Date    time.Time `json:"date,omitzero"`
	Machine string    `json:"machine,omitempty"`
	Product string    `json:"product,omitempty"`

	ProductionUnits  float64 `json:"production_units"`
	RejectUnits      float64 `json:"reject_units"`
	PerformanceScore float64 `json:"performance_score"` // ratio, parsed from the percent column
	WorkingDays      float64 `json:"working_days"`
	DowntimeHours    float64 `json:"downtime_hours"`

	// Derived by Normalize.
	GoodUnits float64  `json:"good_units"`
	Quality   *float64 `json:"quality"`

	// Derived by oee.ApplyHours.
	PlannedHours float64  `json:"planned_hours"`
	Availability *float64 `json:"availability"`
	OEE          *float64 `json:"oee"`
}

// ColumnSet records which optional dimension columns the source carried.
type ColumnSet struct {
	Date    bool `json:"date"`
	Machine bool `json:"machine"`
	Product bool `json:"product"`
}

// Set is an ordered collection of records plus the optional-column presence
// of the source they were loaded from.
type Set struct {
	Records []Record  `json:"records"`
	Columns ColumnSet `json:"columns"`
}

// Normalize derives GoodUnits and Quality on every record. Quality is nil
// when the record produced nothing. Calling Normalize again recomputes the
// same values.
func (s *Set) Normalize() {
	for i := range s.Records {
		r := &s.Records[i]
		r.GoodUnits = r.ProductionUnits - r.RejectUnits
		r.Quality = metrics.Ratio(r.GoodUnits, r.ProductionUnits)
	}
}

// Clone returns a deep copy of the set. Derived pointer fields are
// duplicated so the copy never aliases the receiver.
func (s *Set) Clone() *Set {
	out := &Set{Columns: s.Columns, Records: make([]Record, len(s.Records))}
	copy(out.Records, s.Records)
	for i := range out.Records {
		r := &out.Records[i]
		r.Quality = clonePtr(r.Quality)
		r.Availability = clonePtr(r.Availability)
		r.OEE = clonePtr(r.OEE)
	}
	return out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Machines returns the sorted distinct machine names in the set. Records
// without a machine are skipped.
func (s *Set) Machines() []string {
	return distinctSorted(s.Records, func(r Record) string { return r.Machine })
}

// Products returns the sorted distinct product names in the set.
func (s *Set) Products() []string {
	return distinctSorted(s.Records, func(r Record) string { return r.Product })
}

// DateRange returns the earliest and latest record dates. ok is false when
// no record carries a date.
func (s *Set) DateRange() (from, to time.Time, ok bool) {
	for _, r := range s.Records {
		if r.Date.IsZero() {
			continue
		}
		if !ok {
			from, to, ok = r.Date, r.Date, true
			continue
		}
		if r.Date.Before(from) {
			from = r.Date
		}
		if r.Date.After(to) {
			to = r.Date
		}
	}
	return from, to, ok
}

func distinctSorted(recs []Record, value func(Record) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range recs {
		v := value(r)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
