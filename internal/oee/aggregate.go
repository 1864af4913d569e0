package oee

import (
	"github.com/fabmetrics/oee/internal/metrics"
	"github.com/fabmetrics/oee/internal/records"
)

// accumulator collects the running sums for one group. The ratios are
// derived once, from the final sums.
type accumulator struct {
	key          string
	count        int
	production   float64
	good         float64
	rejects      float64
	downtime     float64
	planned      float64
	weightedPerf float64
}

func (a *accumulator) add(r records.Record) {
	a.count++
	a.production += r.ProductionUnits
	a.good += r.GoodUnits
	a.rejects += r.RejectUnits
	a.downtime += r.DowntimeHours
	a.planned += r.PlannedHours
	a.weightedPerf += r.PerformanceScore * r.ProductionUnits
}

func (a *accumulator) metrics() Metrics {
	m := Metrics{
		Key:             a.key,
		Records:         a.count,
		ProductionUnits: a.production,
		GoodUnits:       a.good,
		RejectUnits:     a.rejects,
		DowntimeHours:   a.downtime,
		PlannedHours:    a.planned,
	}

	m.Quality = metrics.Ratio(a.good, a.production)
	m.Performance = metrics.Ratio(a.weightedPerf, a.production)
	if a.planned != 0 {
		v := metrics.Clamp01(1 - a.downtime/a.planned)
		m.Availability = &v
	}
	m.OEE = metrics.Product(m.Availability, m.Performance, m.Quality)
	return m
}

// Overall aggregates the whole set into a single Metrics with an empty key.
func Overall(s *records.Set) Metrics {
	acc := accumulator{}
	for _, r := range s.Records {
		acc.add(r)
	}
	return acc.metrics()
}

// Aggregate returns one Metrics per distinct value of dim, in first-seen
// record order. Records with no value for the dimension group under the
// empty key. An empty set yields an empty slice, not an error; a dimension
// the dataset does not carry yields an InvalidGroupKeyError.
func Aggregate(s *records.Set, dim Dimension) ([]Metrics, error) {
	if err := dim.validate(s.Columns); err != nil {
		return nil, err
	}

	var order []string
	groups := make(map[string]*accumulator)
	for _, r := range s.Records {
		k := dim.key(r)
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{key: k}
			groups[k] = acc
			order = append(order, k)
		}
		acc.add(r)
	}

	out := make([]Metrics, 0, len(order))
	for _, k := range order {
		out = append(out, groups[k].metrics())
	}
	return out, nil
}
