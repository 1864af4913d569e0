package reporting

import (
	"strconv"
	"time"

	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/records"
)

// overallRows lists the headline metrics as label/value pairs.
func overallRows(m *oee.Metrics) [][]string {
	return [][]string{
		{"OEE", FormatPercent(m.OEE)},
		{"Availability", FormatPercent(m.Availability)},
		{"Performance", FormatPercent(m.Performance)},
		{"Quality", FormatPercent(m.Quality)},
		{"Production units", FormatUnits(m.ProductionUnits)},
		{"Good units", FormatUnits(m.GoodUnits)},
		{"Reject units", FormatUnits(m.RejectUnits)},
		{"Downtime hours", FormatHours(m.DowntimeHours)},
		{"Planned hours", FormatHours(m.PlannedHours)},
		{"Records", strconv.Itoa(m.Records)},
	}
}

func groupHeaders(by oee.Dimension) []string {
	return []string{dimensionTitle(by), "Records", "OEE", "Availability", "Performance", "Quality", "Production", "Downtime"}
}

func groupRows(groups []oee.Metrics) [][]string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		key := g.Key
		if key == "" {
			key = "(none)"
		}
		rows = append(rows, []string{
			key,
			strconv.Itoa(g.Records),
			FormatPercent(g.OEE),
			FormatPercent(g.Availability),
			FormatPercent(g.Performance),
			FormatPercent(g.Quality),
			FormatUnits(g.ProductionUnits),
			FormatHours(g.DowntimeHours),
		})
	}
	return rows
}

func recordHeaders() []string {
	return []string{"Date", "Machine", "Product", "Production", "Good", "Performance", "Downtime", "OEE"}
}

func recordRows(rs []records.Record) [][]string {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		perf := r.PerformanceScore
		rows = append(rows, []string{
			formatDate(r.Date),
			r.Machine,
			r.Product,
			FormatUnits(r.ProductionUnits),
			FormatUnits(r.GoodUnits),
			FormatPercent(&perf),
			FormatHours(r.DowntimeHours),
			FormatPercent(r.OEE),
		})
	}
	return rows
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
