// Package reporting assembles OEE reports from a record set and renders
// them as text, markdown, or JSON-ready structures.
package reporting

import (
	"fmt"
	"time"

	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/records"
)

// Section is one rendered block of a report.
type Section struct {
	Title   string           `json:"title"`
	Kind    ViewKind         `json:"kind"`
	By      oee.Dimension    `json:"by,omitempty"`
	Overall *oee.Metrics     `json:"overall,omitempty"`
	Groups  []oee.Metrics    `json:"groups,omitempty"`
	Records []records.Record `json:"records,omitempty"`
}

// Report is a fully assembled report.
type Report struct {
	GeneratedAt    time.Time `json:"generated_at"`
	HoursPerDay    float64   `json:"hours_per_day"`
	RecordCount    int       `json:"record_count"`
	Interpretation string    `json:"interpretation"`
	Sections       []Section `json:"sections"`
}

// Build assembles a report over the given record set. Views whose
// dimension is not present in the dataset are skipped, mirroring a
// dashboard that only shows the tabs its data supports. Unknown view
// kinds and unknown dimension names are errors.
func Build(set *records.Set, hoursPerDay float64, views []ViewSpec) (*Report, error) {
	planned, err := oee.ApplyHours(set, hoursPerDay)
	if err != nil {
		return nil, err
	}

	overall := oee.Overall(planned)
	report := &Report{
		GeneratedAt:    time.Now().UTC(),
		HoursPerDay:    hoursPerDay,
		RecordCount:    len(planned.Records),
		Interpretation: InterpretOEE(overall.OEE),
		Sections:       []Section{},
	}

	for _, view := range views {
		section, err := buildSection(planned, overall, view)
		if err != nil {
			return nil, err
		}
		if section != nil {
			report.Sections = append(report.Sections, *section)
		}
	}
	return report, nil
}

func buildSection(planned *records.Set, overall oee.Metrics, view ViewSpec) (*Section, error) {
	switch ViewKind(view.Kind) {
	case ViewOverall:
		title, _, err := resolveTitleOnly(view.Kind, view.Params)
		if err != nil {
			return nil, err
		}
		if title == "" {
			title = "Overall Equipment Effectiveness"
		}
		return &Section{Title: title, Kind: ViewOverall, Overall: &overall}, nil

	case ViewGroups:
		v, err := resolveGroupsView(view.Params)
		if err != nil {
			return nil, err
		}
		if !v.by.Available(planned.Columns) {
			return nil, nil
		}
		groups, err := oee.Aggregate(planned, v.by)
		if err != nil {
			return nil, err
		}
		oee.SortMetrics(groups, v.sort, v.desc)
		if v.limit > 0 && len(groups) > v.limit {
			groups = groups[:v.limit]
		}
		title := v.title
		if title == "" {
			title = "OEE by " + dimensionTitle(v.by)
		}
		return &Section{Title: title, Kind: ViewGroups, By: v.by, Groups: groups}, nil

	case ViewTrend:
		v, err := resolveTrendView(view.Params)
		if err != nil {
			return nil, err
		}
		if !v.by.Available(planned.Columns) {
			return nil, nil
		}
		groups, err := oee.Aggregate(planned, v.by)
		if err != nil {
			return nil, err
		}
		oee.SortMetrics(groups, oee.SortKey, false)
		if v.limit > 0 && len(groups) > v.limit {
			groups = groups[len(groups)-v.limit:]
		}
		title := v.title
		if title == "" {
			title = "Monthly Trend"
			if v.by == oee.DimensionDate {
				title = "Daily Trend"
			}
		}
		return &Section{Title: title, Kind: ViewTrend, By: v.by, Groups: groups}, nil

	case ViewRecords:
		title, limit, err := resolveTitleOnly(view.Kind, view.Params)
		if err != nil {
			return nil, err
		}
		rows := planned.Records
		if limit > 0 && len(rows) > limit {
			rows = rows[:limit]
		}
		if title == "" {
			title = "Records"
		}
		return &Section{Title: title, Kind: ViewRecords, Records: rows}, nil

	default:
		return nil, fmt.Errorf("unknown report view kind %q (valid: overall, groups, trend, records)", view.Kind)
	}
}

func dimensionTitle(d oee.Dimension) string {
	switch d {
	case oee.DimensionMachine:
		return "Machine"
	case oee.DimensionProduct:
		return "Product"
	case oee.DimensionDate:
		return "Date"
	case oee.DimensionMonth:
		return "Month"
	default:
		return string(d)
	}
}
