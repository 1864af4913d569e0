package webapi

import (
	"time"

	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/records"
)

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// DatasetResponse describes the dataset currently being served: where it
// came from and the filter options it supports.
type DatasetResponse struct {
	Origin     string    `json:"origin"`
	LoadedAt   time.Time `json:"loadedAt"`
	Records    int       `json:"records"`
	HasDate    bool      `json:"hasDate"`
	HasMachine bool      `json:"hasMachine"`
	HasProduct bool      `json:"hasProduct"`
	Machines   []string  `json:"machines"`
	Products   []string  `json:"products"`
	DateFrom   string    `json:"dateFrom,omitempty"`
	DateTo     string    `json:"dateTo,omitempty"`
}

// SummaryResponse is the overall KPI row. Ratio fields are null when
// undefined.
type SummaryResponse struct {
	HoursPerDay     float64  `json:"hoursPerDay"`
	Records         int      `json:"records"`
	ProductionUnits float64  `json:"productionUnits"`
	GoodUnits       float64  `json:"goodUnits"`
	RejectUnits     float64  `json:"rejectUnits"`
	DowntimeHours   float64  `json:"downtimeHours"`
	PlannedHours    float64  `json:"plannedHours"`
	Availability    *float64 `json:"availability"`
	Performance     *float64 `json:"performance"`
	Quality         *float64 `json:"quality"`
	OEE             *float64 `json:"oee"`
	Interpretation  string   `json:"interpretation"`
}

// GroupResponse is one row of an aggregate table.
type GroupResponse struct {
	Key             string   `json:"key"`
	Records         int      `json:"records"`
	ProductionUnits float64  `json:"productionUnits"`
	GoodUnits       float64  `json:"goodUnits"`
	RejectUnits     float64  `json:"rejectUnits"`
	DowntimeHours   float64  `json:"downtimeHours"`
	PlannedHours    float64  `json:"plannedHours"`
	Availability    *float64 `json:"availability"`
	Performance     *float64 `json:"performance"`
	Quality         *float64 `json:"quality"`
	OEE             *float64 `json:"oee"`
}

// GroupsResponse is the aggregate table for one grouping dimension.
type GroupsResponse struct {
	By          string          `json:"by"`
	HoursPerDay float64         `json:"hoursPerDay"`
	Groups      []GroupResponse `json:"groups"`
}

// RecordResponse is one production record with its derived metrics.
type RecordResponse struct {
	Date             string   `json:"date,omitempty"`
	Machine          string   `json:"machine,omitempty"`
	Product          string   `json:"product,omitempty"`
	ProductionUnits  float64  `json:"productionUnits"`
	RejectUnits      float64  `json:"rejectUnits"`
	GoodUnits        float64  `json:"goodUnits"`
	PerformanceScore float64  `json:"performanceScore"`
	WorkingDays      float64  `json:"workingDays"`
	DowntimeHours    float64  `json:"downtimeHours"`
	PlannedHours     float64  `json:"plannedHours"`
	Quality          *float64 `json:"quality"`
	Availability     *float64 `json:"availability"`
	OEE              *float64 `json:"oee"`
}

// RecordsResponse lists records after filtering. Total counts the rows
// before any limit was applied.
type RecordsResponse struct {
	HoursPerDay float64          `json:"hoursPerDay"`
	Total       int              `json:"total"`
	Records     []RecordResponse `json:"records"`
}

func datasetResponse(d *Dataset) DatasetResponse {
	resp := DatasetResponse{
		Origin:     d.Origin,
		LoadedAt:   d.LoadedAt,
		Records:    len(d.Set.Records),
		HasDate:    d.Set.Columns.Date,
		HasMachine: d.Set.Columns.Machine,
		HasProduct: d.Set.Columns.Product,
		Machines:   d.Set.Machines(),
		Products:   d.Set.Products(),
	}
	if from, to, ok := d.Set.DateRange(); ok {
		resp.DateFrom = from.Format("2006-01-02")
		resp.DateTo = to.Format("2006-01-02")
	}
	return resp
}

func summaryResponse(m oee.Metrics, hours float64, interpretation string) SummaryResponse {
	return SummaryResponse{
		HoursPerDay:     hours,
		Records:         m.Records,
		ProductionUnits: m.ProductionUnits,
		GoodUnits:       m.GoodUnits,
		RejectUnits:     m.RejectUnits,
		DowntimeHours:   m.DowntimeHours,
		PlannedHours:    m.PlannedHours,
		Availability:    m.Availability,
		Performance:     m.Performance,
		Quality:         m.Quality,
		OEE:             m.OEE,
		Interpretation:  interpretation,
	}
}

func groupResponse(m oee.Metrics) GroupResponse {
	return GroupResponse{
		Key:             m.Key,
		Records:         m.Records,
		ProductionUnits: m.ProductionUnits,
		GoodUnits:       m.GoodUnits,
		RejectUnits:     m.RejectUnits,
		DowntimeHours:   m.DowntimeHours,
		PlannedHours:    m.PlannedHours,
		Availability:    m.Availability,
		Performance:     m.Performance,
		Quality:         m.Quality,
		OEE:             m.OEE,
	}
}

func recordResponse(r records.Record) RecordResponse {
	resp := RecordResponse{
		Machine:          r.Machine,
		Product:          r.Product,
		ProductionUnits:  r.ProductionUnits,
		RejectUnits:      r.RejectUnits,
		GoodUnits:        r.GoodUnits,
		PerformanceScore: r.PerformanceScore,
		WorkingDays:      r.WorkingDays,
		DowntimeHours:    r.DowntimeHours,
		PlannedHours:     r.PlannedHours,
		Quality:          r.Quality,
		Availability:     r.Availability,
		OEE:              r.OEE,
	}
	if !r.Date.IsZero() {
		resp.Date = r.Date.Format("2006-01-02")
	}
	return resp
}
