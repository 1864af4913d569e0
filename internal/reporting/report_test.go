package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/records"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// reportSet covers two machines, two products, and two months.
// M1 aggregates to a higher OEE than M2.
func reportSet() *records.Set {
	s := &records.Set{
		Columns: records.ColumnSet{Date: true, Machine: true, Product: true},
		Records: []records.Record{
			{Date: day(2024, time.March, 4), Machine: "M1", Product: "Widget", ProductionUnits: 100, RejectUnits: 10, PerformanceScore: 0.9, WorkingDays: 1, DowntimeHours: 2},
			{Date: day(2024, time.March, 5), Machine: "M2", Product: "Gasket", ProductionUnits: 50, RejectUnits: 0, PerformanceScore: 0.8, WorkingDays: 1, DowntimeHours: 1},
			{Date: day(2024, time.April, 2), Machine: "M1", Product: "Widget", ProductionUnits: 80, RejectUnits: 8, PerformanceScore: 0.95, WorkingDays: 1, DowntimeHours: 0},
		},
	}
	s.Normalize()
	return s
}

func TestBuildDefaultViews(t *testing.T) {
	report, err := Build(reportSet(), oee.DefaultHoursPerDay, DefaultViews())
	require.NoError(t, err)

	assert.Equal(t, 3, report.RecordCount)
	assert.Equal(t, oee.DefaultHoursPerDay, report.HoursPerDay)
	assert.Equal(t, "Typical (60-85%)", report.Interpretation)
	require.Len(t, report.Sections, 4)

	overall := report.Sections[0]
	assert.Equal(t, ViewOverall, overall.Kind)
	assert.Equal(t, "Overall Equipment Effectiveness", overall.Title)
	require.NotNil(t, overall.Overall)
	assert.Equal(t, 3, overall.Overall.Records)
	assert.Equal(t, 230.0, overall.Overall.ProductionUnits)

	machines := report.Sections[1]
	assert.Equal(t, ViewGroups, machines.Kind)
	assert.Equal(t, "OEE by Machine", machines.Title)
	assert.Equal(t, oee.DimensionMachine, machines.By)
	require.Len(t, machines.Groups, 2)
	assert.Equal(t, "M1", machines.Groups[0].Key, "groups default to OEE descending")
	assert.Equal(t, "M2", machines.Groups[1].Key)

	products := report.Sections[2]
	assert.Equal(t, "OEE by Product", products.Title)
	require.Len(t, products.Groups, 2)

	trend := report.Sections[3]
	assert.Equal(t, ViewTrend, trend.Kind)
	assert.Equal(t, "Monthly Trend", trend.Title)
	require.Len(t, trend.Groups, 2)
	assert.Equal(t, "2024-03", trend.Groups[0].Key, "trends are chronological")
	assert.Equal(t, "2024-04", trend.Groups[1].Key)
}

func TestBuildSkipsUnavailableDimensions(t *testing.T) {
	s := &records.Set{
		Records: []records.Record{
			{ProductionUnits: 100, RejectUnits: 5, PerformanceScore: 0.9, WorkingDays: 2, DowntimeHours: 1},
		},
	}
	s.Normalize()

	report, err := Build(s, oee.DefaultHoursPerDay, DefaultViews())
	require.NoError(t, err)

	require.Len(t, report.Sections, 1, "machine, product, and trend views need columns the set lacks")
	assert.Equal(t, ViewOverall, report.Sections[0].Kind)
}

func TestBuildUnknownViewKind(t *testing.T) {
	_, err := Build(reportSet(), oee.DefaultHoursPerDay, []ViewSpec{{Kind: "pie"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown report view kind "pie"`)
}

func TestBuildUnknownDimension(t *testing.T) {
	views := []ViewSpec{{Kind: "groups", Params: map[string]any{"by": "shift"}}}
	_, err := Build(reportSet(), oee.DefaultHoursPerDay, views)
	require.Error(t, err)

	var keyErr *oee.InvalidGroupKeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, "shift", keyErr.Key)
}

func TestBuildInvalidHours(t *testing.T) {
	_, err := Build(reportSet(), 0, DefaultViews())
	require.Error(t, err)

	var paramErr *oee.InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
}

func TestBuildGroupsLimitAndOrder(t *testing.T) {
	views := []ViewSpec{
		{Kind: "groups", Params: map[string]any{"by": "machine", "limit": 1}},
		{Kind: "groups", Params: map[string]any{"by": "machine", "order": "asc"}},
		{Kind: "groups", Params: map[string]any{"by": "machine", "sort": "production", "order": "asc"}},
	}
	report, err := Build(reportSet(), oee.DefaultHoursPerDay, views)
	require.NoError(t, err)
	require.Len(t, report.Sections, 3)

	limited := report.Sections[0]
	require.Len(t, limited.Groups, 1)
	assert.Equal(t, "M1", limited.Groups[0].Key)

	ascending := report.Sections[1]
	require.Len(t, ascending.Groups, 2)
	assert.Equal(t, "M2", ascending.Groups[0].Key)

	byProduction := report.Sections[2]
	require.Len(t, byProduction.Groups, 2)
	assert.Equal(t, "M2", byProduction.Groups[0].Key, "M2 produced fewer units")
}

func TestBuildTrendKeepsRecentPeriods(t *testing.T) {
	views := []ViewSpec{{Kind: "trend", Params: map[string]any{"limit": 1}}}
	report, err := Build(reportSet(), oee.DefaultHoursPerDay, views)
	require.NoError(t, err)

	require.Len(t, report.Sections, 1)
	require.Len(t, report.Sections[0].Groups, 1)
	assert.Equal(t, "2024-04", report.Sections[0].Groups[0].Key)
}

func TestBuildTrendByDate(t *testing.T) {
	views := []ViewSpec{{Kind: "trend", Params: map[string]any{"by": "date"}}}
	report, err := Build(reportSet(), oee.DefaultHoursPerDay, views)
	require.NoError(t, err)

	require.Len(t, report.Sections, 1)
	section := report.Sections[0]
	assert.Equal(t, "Daily Trend", section.Title)
	require.Len(t, section.Groups, 3)
	assert.Equal(t, "2024-03-04", section.Groups[0].Key)
}

func TestBuildTrendRejectsNonTimeDimension(t *testing.T) {
	views := []ViewSpec{{Kind: "trend", Params: map[string]any{"by": "machine"}}}
	_, err := Build(reportSet(), oee.DefaultHoursPerDay, views)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trend view supports date or month")
}

func TestBuildRecordsView(t *testing.T) {
	views := []ViewSpec{{Kind: "records", Params: map[string]any{"limit": 2}}}
	report, err := Build(reportSet(), 12, views)
	require.NoError(t, err)

	require.Len(t, report.Sections, 1)
	section := report.Sections[0]
	assert.Equal(t, "Records", section.Title)
	require.Len(t, section.Records, 2)
	assert.Equal(t, 12.0, section.Records[0].PlannedHours, "records carry applied planned hours")
	assert.NotNil(t, section.Records[0].OEE)
}

func TestBuildTitleOverride(t *testing.T) {
	views := []ViewSpec{{Kind: "groups", Params: map[string]any{"by": "machine", "title": "Shop floor"}}}
	report, err := Build(reportSet(), oee.DefaultHoursPerDay, views)
	require.NoError(t, err)

	require.Len(t, report.Sections, 1)
	assert.Equal(t, "Shop floor", report.Sections[0].Title)
}

func TestBuildEmptySet(t *testing.T) {
	s := &records.Set{Columns: records.ColumnSet{Date: true, Machine: true, Product: true}}

	report, err := Build(s, oee.DefaultHoursPerDay, DefaultViews())
	require.NoError(t, err)

	assert.Equal(t, 0, report.RecordCount)
	assert.Equal(t, "No data", report.Interpretation)
	require.Len(t, report.Sections, 4)
	assert.Nil(t, report.Sections[0].Overall.OEE)
	assert.Empty(t, report.Sections[1].Groups)
}

func TestBuildNegativeLimit(t *testing.T) {
	views := []ViewSpec{{Kind: "groups", Params: map[string]any{"by": "machine", "limit": -2}}}
	_, err := Build(reportSet(), oee.DefaultHoursPerDay, views)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must not be negative")
}
