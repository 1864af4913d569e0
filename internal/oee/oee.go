// Package oee computes Overall Equipment Effectiveness metrics over record
// sets: planned-hours application and aggregation by grouping dimension.
//
// Every aggregate ratio is a ratio of sums, never a mean of per-record
// ratios, so records weigh in proportion to what they actually produced.
// A nil metric means undefined (its denominator was zero) and marshals as
// JSON null; it is never reported as 0.
package oee

// Planned-hours bounds. Hours per day is threaded explicitly through
// ApplyHours; there is no package-level default a caller can forget to
// override.
const (
	MinHoursPerDay     = 1.0
	MaxHoursPerDay     = 24.0
	DefaultHoursPerDay = 24.0
)

// Metrics is the aggregate for one group of records. The sums are always
// defined; the ratio fields are nil when undefined.
type Metrics struct {
	Key     string `json:"key"`
	Records int    `json:"records"`

	ProductionUnits float64 `json:"production_units"`
	GoodUnits       float64 `json:"good_units"`
	RejectUnits     float64 `json:"reject_units"`
	DowntimeHours   float64 `json:"downtime_hours"`
	PlannedHours    float64 `json:"planned_hours"`

	Availability *float64 `json:"availability"`
	Performance  *float64 `json:"performance"`
	Quality      *float64 `json:"quality"`
	OEE          *float64 `json:"oee"`
}
