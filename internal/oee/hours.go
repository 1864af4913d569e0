package oee

import (
	"github.com/fabmetrics/oee/internal/metrics"
	"github.com/fabmetrics/oee/internal/records"
	"github.com/fabmetrics/oee/internal/utils"
)

// ApplyHours returns a copy of s where every record carries
// PlannedHours = WorkingDays × hoursPerDay, along with per-record
// availability and OEE. The input set is never modified. Planned hours are
// always recomputed from WorkingDays, so reapplying the same hours yields
// an identical set and a different hours value cleanly replaces the old
// baseline.
func ApplyHours(s *records.Set, hoursPerDay float64) (*records.Set, error) {
	if hoursPerDay < MinHoursPerDay || hoursPerDay > MaxHoursPerDay {
		return nil, &InvalidParameterError{
			Name:  "hours per day",
			Value: hoursPerDay,
			Min:   MinHoursPerDay,
			Max:   MaxHoursPerDay,
		}
	}

	out := s.Clone()
	for i := range out.Records {
		r := &out.Records[i]
		r.PlannedHours = r.WorkingDays * hoursPerDay

		r.Availability = nil
		if r.PlannedHours != 0 {
			r.Availability = utils.Ptr(metrics.Clamp01(1 - r.DowntimeHours/r.PlannedHours))
		}
		r.OEE = metrics.Product(r.Availability, utils.Ptr(r.PerformanceScore), r.Quality)
	}
	return out, nil
}
