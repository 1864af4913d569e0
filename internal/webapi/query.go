package webapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fabmetrics/oee/internal/dataset"
	"github.com/fabmetrics/oee/internal/records"
)

// analysisQuery holds the parameters shared by the data endpoints: planned
// hours plus the record filter. Hours bounds are enforced later by
// oee.ApplyHours.
type analysisQuery struct {
	hours  float64
	filter records.Filter
	limit  int
}

func parseAnalysisQuery(r *http.Request, defaultHours float64) (*analysisQuery, error) {
	q := &analysisQuery{hours: defaultHours}
	values := r.URL.Query()

	if raw := values.Get("hours"); raw != "" {
		h, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours %q", raw)
		}
		q.hours = h
	}

	if raw := values.Get("from"); raw != "" {
		t, err := dataset.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		q.filter.From = t
	}
	if raw := values.Get("to"); raw != "" {
		t, err := dataset.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		q.filter.To = t
	}

	q.filter.Machines = values["machine"]
	q.filter.Products = values["product"]

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid limit %q", raw)
		}
		q.limit = n
	}

	return q, nil
}
