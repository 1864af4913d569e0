// Package webapi exposes the OEE analysis engine over a small REST API:
// dataset inspection and upload, overall KPIs, group tables, and record
// listings. Engine errors map onto status codes, so a bad dimension or an
// out-of-range hours value comes back as a 400 with the engine's message.
package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/records"
	"github.com/fabmetrics/oee/internal/reporting"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// maxUploadBytes caps dataset uploads.
const maxUploadBytes = 32 << 20

// Options configures the handler set.
type Options struct {
	// Views is the report layout for /api/report. Empty means the default
	// layout.
	Views []reporting.ViewSpec
	// HoursPerDay applies when a request omits ?hours. Zero means the
	// engine default.
	HoursPerDay float64
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store DatasetStore
	views []reporting.ViewSpec
	hours float64
}

// NewHandlers creates a Handlers over the given store.
func NewHandlers(store DatasetStore, opts Options) *Handlers {
	views := opts.Views
	if len(views) == 0 {
		views = reporting.DefaultViews()
	}
	hours := opts.HoursPerDay
	if hours == 0 {
		hours = oee.DefaultHoursPerDay
	}
	return &Handlers{store: store, views: views, hours: hours}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleDataset describes the dataset currently being served.
func (h *Handlers) HandleDataset(w http.ResponseWriter, _ *http.Request) {
	d, err := h.store.Snapshot()
	if err != nil {
		writeDataError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, datasetResponse(d))
}

// HandleUpload replaces the served dataset with the uploaded CSV. The body
// is either raw CSV or a multipart form with a "file" field.
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	data, origin, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty upload")
		return
	}

	d, err := h.store.Replace(data, origin)
	if err != nil {
		// Replace only fails on unparseable input, which the client sent.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, datasetResponse(d))
}

func readUpload(r *http.Request) (data []byte, origin string, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("reading multipart upload: %w", err)
		}
		defer file.Close() //nolint:errcheck
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("reading multipart upload: %w", err)
		}
		return data, header.Filename, nil
	}

	data, err = io.ReadAll(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading upload: %w", err)
	}
	return data, "upload", nil
}

// HandleSummary returns the overall KPI row for the filtered dataset.
func (h *Handlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Snapshot()
	if err != nil {
		writeDataError(w, err)
		return
	}
	q, err := parseAnalysisQuery(r, h.hours)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	planned, err := oee.ApplyHours(d.Set.Filter(q.filter), q.hours)
	if err != nil {
		writeDataError(w, err)
		return
	}

	m := oee.Overall(planned)
	writeJSON(w, http.StatusOK, summaryResponse(m, q.hours, reporting.InterpretOEE(m.OEE)))
}

// HandleGroups returns the aggregate table for one grouping dimension.
func (h *Handlers) HandleGroups(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Snapshot()
	if err != nil {
		writeDataError(w, err)
		return
	}
	q, err := parseAnalysisQuery(r, h.hours)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	by := r.URL.Query().Get("by")
	if by == "" {
		by = string(oee.DimensionMachine)
	}
	dim, err := oee.ParseDimension(by)
	if err != nil {
		writeDataError(w, err)
		return
	}

	field, err := oee.ParseSortField(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	desc := field != oee.SortKey
	switch order := r.URL.Query().Get("order"); order {
	case "":
	case "asc":
		desc = false
	case "desc":
		desc = true
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown sort order %q (valid: asc, desc)", order))
		return
	}

	planned, err := oee.ApplyHours(d.Set.Filter(q.filter), q.hours)
	if err != nil {
		writeDataError(w, err)
		return
	}
	groups, err := oee.Aggregate(planned, dim)
	if err != nil {
		writeDataError(w, err)
		return
	}
	oee.SortMetrics(groups, field, desc)
	if q.limit > 0 && len(groups) > q.limit {
		groups = groups[:q.limit]
	}

	resp := GroupsResponse{
		By:          string(dim),
		HoursPerDay: q.hours,
		Groups:      make([]GroupResponse, 0, len(groups)),
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, groupResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleRecords returns the filtered records with their derived metrics.
func (h *Handlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Snapshot()
	if err != nil {
		writeDataError(w, err)
		return
	}
	q, err := parseAnalysisQuery(r, h.hours)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	planned, err := oee.ApplyHours(d.Set.Filter(q.filter), q.hours)
	if err != nil {
		writeDataError(w, err)
		return
	}

	rows := planned.Records
	total := len(rows)
	if q.limit > 0 && len(rows) > q.limit {
		rows = rows[:q.limit]
	}

	resp := RecordsResponse{
		HoursPerDay: q.hours,
		Total:       total,
		Records:     make([]RecordResponse, 0, len(rows)),
	}
	for _, rec := range rows {
		resp.Records = append(resp.Records, recordResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store DatasetStore, opts Options) {
	h := NewHandlers(store, opts)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/dataset", h.HandleDataset)
	mux.HandleFunc("POST /api/dataset", h.HandleUpload)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("GET /api/groups", h.HandleGroups)
	mux.HandleFunc("GET /api/records", h.HandleRecords)
	mux.HandleFunc("GET /api/report", h.HandleReport)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}

// writeDataError maps engine errors onto status codes: bad client input is
// a 400, a missing dataset is a 404, anything else is a 500.
func writeDataError(w http.ResponseWriter, err error) {
	var (
		keyErr    *oee.InvalidGroupKeyError
		paramErr  *oee.InvalidParameterError
		schemaErr *records.SchemaError
		rowErr    *records.RowError
	)
	switch {
	case errors.Is(err, ErrNoDataset):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &keyErr), errors.As(err, &paramErr),
		errors.As(err, &schemaErr), errors.As(err, &rowErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
