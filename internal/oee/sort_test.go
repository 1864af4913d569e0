package oee

import (
	"testing"

	"github.com/fabmetrics/oee/internal/utils"
)

func sortKeys(ms []Metrics) []string {
	keys := make([]string, len(ms))
	for i, m := range ms {
		keys[i] = m.Key
	}
	return keys
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortMetrics(t *testing.T) {
	build := func() []Metrics {
		return []Metrics{
			{Key: "M1", ProductionUnits: 100, OEE: utils.Ptr(0.70)},
			{Key: "M2", ProductionUnits: 300, OEE: nil},
			{Key: "M3", ProductionUnits: 200, OEE: utils.Ptr(0.85)},
			{Key: "M4", ProductionUnits: 50, OEE: utils.Ptr(0.40)},
		}
	}

	tests := []struct {
		name       string
		field      SortField
		descending bool
		want       []string
	}{
		{name: "oee descending, undefined last", field: SortOEE, descending: true, want: []string{"M3", "M1", "M4", "M2"}},
		{name: "oee ascending, undefined still last", field: SortOEE, descending: false, want: []string{"M4", "M1", "M3", "M2"}},
		{name: "production descending", field: SortProduction, descending: true, want: []string{"M2", "M3", "M1", "M4"}},
		{name: "key ascending", field: SortKey, descending: false, want: []string{"M1", "M2", "M3", "M4"}},
		{name: "key descending", field: SortKey, descending: true, want: []string{"M4", "M3", "M2", "M1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := build()
			SortMetrics(ms, tt.field, tt.descending)
			if got := sortKeys(ms); !equalKeys(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortMetricsStableOnTies(t *testing.T) {
	ms := []Metrics{
		{Key: "first", OEE: utils.Ptr(0.5)},
		{Key: "second", OEE: utils.Ptr(0.5)},
		{Key: "third", OEE: utils.Ptr(0.5)},
	}
	SortMetrics(ms, SortOEE, true)
	if got := sortKeys(ms); !equalKeys(got, []string{"first", "second", "third"}) {
		t.Errorf("ties should keep their order, got %v", got)
	}
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		in      string
		want    SortField
		wantErr bool
	}{
		{in: "", want: SortOEE},
		{in: "oee", want: SortOEE},
		{in: "Production", want: SortProduction},
		{in: " key ", want: SortKey},
		{in: "quality", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSortField(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSortField(%q): want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSortField(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSortField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
