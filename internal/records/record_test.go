package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		production  float64
		rejects     float64
		wantGood    float64
		wantQuality *float64
	}{
		{name: "clean run", production: 100, rejects: 10, wantGood: 90, wantQuality: ptr(0.9)},
		{name: "no rejects", production: 50, rejects: 0, wantGood: 50, wantQuality: ptr(1.0)},
		{name: "zero production is undefined not zero", production: 0, rejects: 0, wantGood: 0, wantQuality: nil},
		{name: "rejects exceed production", production: 10, rejects: 25, wantGood: -15, wantQuality: ptr(-1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Set{Records: []Record{{ProductionUnits: tt.production, RejectUnits: tt.rejects}}}
			s.Normalize()

			r := s.Records[0]
			assert.Equal(t, tt.wantGood, r.GoodUnits)
			if tt.wantQuality == nil {
				assert.Nil(t, r.Quality)
			} else {
				require.NotNil(t, r.Quality)
				assert.InDelta(t, *tt.wantQuality, *r.Quality, 1e-9)
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }

func TestNormalizeIdempotent(t *testing.T) {
	s := &Set{Records: []Record{{ProductionUnits: 100, RejectUnits: 10}}}
	s.Normalize()
	first := *s.Records[0].Quality

	s.Normalize()
	s.Normalize()
	assert.Equal(t, first, *s.Records[0].Quality)
	assert.Equal(t, 90.0, s.Records[0].GoodUnits)
}

func TestClone(t *testing.T) {
	s := &Set{
		Records: []Record{{ProductionUnits: 100, RejectUnits: 10, Machine: "M1"}},
		Columns: ColumnSet{Machine: true},
	}
	s.Normalize()

	c := s.Clone()
	require.Len(t, c.Records, 1)
	assert.Equal(t, s.Columns, c.Columns)

	// Mutating the clone must not show through the original.
	c.Records[0].Machine = "M2"
	*c.Records[0].Quality = 0.1
	c.Records[0].PlannedHours = 48

	assert.Equal(t, "M1", s.Records[0].Machine)
	assert.InDelta(t, 0.9, *s.Records[0].Quality, 1e-9)
	assert.Zero(t, s.Records[0].PlannedHours)
}

func TestMachinesAndProducts(t *testing.T) {
	s := &Set{Records: []Record{
		{Machine: "M2", Product: "WidgetB"},
		{Machine: "M1", Product: "WidgetA"},
		{Machine: "M2", Product: ""},
		{Machine: "", Product: "WidgetA"},
	}}

	assert.Equal(t, []string{"M1", "M2"}, s.Machines())
	assert.Equal(t, []string{"WidgetA", "WidgetB"}, s.Products())
}

func TestDateRange(t *testing.T) {
	s := &Set{Records: []Record{
		{Date: day(12)},
		{Date: day(3)},
		{},
		{Date: day(27)},
	}}

	from, to, ok := s.DateRange()
	require.True(t, ok)
	assert.Equal(t, day(3), from)
	assert.Equal(t, day(27), to)

	_, _, ok = (&Set{Records: []Record{{}, {}}}).DateRange()
	assert.False(t, ok)
}
