package webapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `Date,Machine,Product,Production per unit,Reject per unit,Performance %,Working days,downtime
2024-03-04,M1,Widget,100,10,90,1,2
2024-03-05,M2,Gasket,50,0,80,1,1
2024-04-02,M1,Widget,80,8,95,1,0
`

// newTestMux builds the full route table over a store pre-loaded with
// testCSV.
func newTestMux(t *testing.T) (*http.ServeMux, *Store) {
	t.Helper()
	store := NewStore(nil)
	_, err := store.Replace([]byte(testCSV), "test.csv")
	require.NoError(t, err)

	mux := http.NewServeMux()
	RegisterRoutes(mux, store, Options{})
	return mux, store
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func post(t *testing.T, handler http.Handler, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandleHealth(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := get(t, mux, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", body.Status)
}

func TestHandleDataset(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := get(t, mux, "/api/dataset")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[DatasetResponse](t, rec)
	assert.Equal(t, "test.csv", body.Origin)
	assert.Equal(t, 3, body.Records)
	assert.True(t, body.HasDate)
	assert.True(t, body.HasMachine)
	assert.True(t, body.HasProduct)
	assert.Equal(t, []string{"M1", "M2"}, body.Machines)
	assert.Equal(t, []string{"Gasket", "Widget"}, body.Products)
	assert.Equal(t, "2024-03-04", body.DateFrom)
	assert.Equal(t, "2024-04-02", body.DateTo)
}

func TestHandleDatasetBeforeLoad(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, NewStore(nil), Options{})

	for _, target := range []string{"/api/dataset", "/api/summary", "/api/groups", "/api/records", "/api/report"} {
		rec := get(t, mux, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestHandleUploadRawCSV(t *testing.T) {
	mux, _ := newTestMux(t)

	replacement := "Production per unit,Reject per unit,Performance %,Working days,downtime\n200,20,85,2,4\n"
	rec := post(t, mux, "/api/dataset", "text/csv", strings.NewReader(replacement))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[DatasetResponse](t, rec)
	assert.Equal(t, "upload", body.Origin)
	assert.Equal(t, 1, body.Records)
	assert.False(t, body.HasMachine)

	after := decode[DatasetResponse](t, get(t, mux, "/api/dataset"))
	assert.Equal(t, 1, after.Records, "upload replaces the served dataset")
}

func TestHandleUploadMultipart(t *testing.T) {
	mux, _ := newTestMux(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "plant.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(testCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := post(t, mux, "/api/dataset", mw.FormDataContentType(), &buf)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[DatasetResponse](t, rec)
	assert.Equal(t, "plant.csv", body.Origin)
	assert.Equal(t, 3, body.Records)
}

func TestHandleUploadBadData(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := post(t, mux, "/api/dataset", "text/csv", strings.NewReader("Date,Machine\n2024-01-01,M1\n"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[ErrorResponse](t, rec)
	assert.Contains(t, body.Error, "missing required columns")

	after := decode[DatasetResponse](t, get(t, mux, "/api/dataset"))
	assert.Equal(t, 3, after.Records, "a failed upload keeps the previous dataset")
}

func TestHandleUploadEmptyBody(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := post(t, mux, "/api/dataset", "text/csv", strings.NewReader(""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, "empty upload")
}

func TestHandleSummary(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := get(t, mux, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[SummaryResponse](t, rec)
	assert.Equal(t, 24.0, body.HoursPerDay)
	assert.Equal(t, 3, body.Records)
	assert.Equal(t, 230.0, body.ProductionUnits)
	assert.Equal(t, 212.0, body.GoodUnits)
	assert.Equal(t, 72.0, body.PlannedHours)
	require.NotNil(t, body.OEE)
	assert.InDelta(t, 0.7912, *body.OEE, 0.001)
	assert.Equal(t, "Typical (60-85%)", body.Interpretation)
}

func TestHandleSummaryHoursParam(t *testing.T) {
	mux, _ := newTestMux(t)

	body := decode[SummaryResponse](t, get(t, mux, "/api/summary?hours=12"))
	assert.Equal(t, 12.0, body.HoursPerDay)
	assert.Equal(t, 36.0, body.PlannedHours)
	require.NotNil(t, body.Availability)
	assert.InDelta(t, 1-3.0/36.0, *body.Availability, 1e-9)
}

func TestHandleSummaryInvalidHours(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := get(t, mux, "/api/summary?hours=99")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, "hours per day must be between")

	rec = get(t, mux, "/api/summary?hours=lots")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSummaryFilters(t *testing.T) {
	mux, _ := newTestMux(t)

	byMachine := decode[SummaryResponse](t, get(t, mux, "/api/summary?machine=M1"))
	assert.Equal(t, 2, byMachine.Records)
	assert.Equal(t, 180.0, byMachine.ProductionUnits)

	byDate := decode[SummaryResponse](t, get(t, mux, "/api/summary?from=2024-04-01"))
	assert.Equal(t, 1, byDate.Records)

	both := decode[SummaryResponse](t, get(t, mux, "/api/summary?machine=M1&machine=M2&to=2024-03-31"))
	assert.Equal(t, 2, both.Records)
}

func TestConfiguredDefaultHours(t *testing.T) {
	store := NewStore(nil)
	_, err := store.Replace([]byte(testCSV), "test.csv")
	require.NoError(t, err)

	mux := http.NewServeMux()
	RegisterRoutes(mux, store, Options{HoursPerDay: 8})

	body := decode[SummaryResponse](t, get(t, mux, "/api/summary"))
	assert.Equal(t, 8.0, body.HoursPerDay)
	assert.Equal(t, 24.0, body.PlannedHours)

	explicit := decode[SummaryResponse](t, get(t, mux, "/api/summary?hours=12"))
	assert.Equal(t, 12.0, explicit.HoursPerDay, "query parameter overrides the configured default")
}

func TestHandleGroupsDefaultsToMachine(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := get(t, mux, "/api/groups")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[GroupsResponse](t, rec)
	assert.Equal(t, "machine", body.By)
	require.Len(t, body.Groups, 2)
	assert.Equal(t, "M1", body.Groups[0].Key, "default order is OEE descending")
	assert.Equal(t, "M2", body.Groups[1].Key)
}

func TestHandleGroupsSortAndLimit(t *testing.T) {
	mux, _ := newTestMux(t)

	months := decode[GroupsResponse](t, get(t, mux, "/api/groups?by=month&sort=key&order=asc"))
	require.Len(t, months.Groups, 2)
	assert.Equal(t, "2024-03", months.Groups[0].Key)
	assert.Equal(t, "2024-04", months.Groups[1].Key)

	limited := decode[GroupsResponse](t, get(t, mux, "/api/groups?limit=1"))
	require.Len(t, limited.Groups, 1)
	assert.Equal(t, "M1", limited.Groups[0].Key)
}

func TestHandleGroupsUnknownDimension(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := get(t, mux, "/api/groups?by=shift")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, `invalid group key "shift"`)
}

func TestHandleGroupsUnavailableDimension(t *testing.T) {
	mux, _ := newTestMux(t)

	noDate := "Machine,Production per unit,Reject per unit,Performance %,Working days,downtime\nM1,100,5,90,1,2\n"
	rec := post(t, mux, "/api/dataset", "text/csv", strings.NewReader(noDate))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, mux, "/api/groups?by=month")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, "dataset has no Date column")
}

func TestHandleGroupsBadOrder(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := get(t, mux, "/api/groups?order=sideways")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, "unknown sort order")
}

func TestHandleRecords(t *testing.T) {
	mux, _ := newTestMux(t)

	body := decode[RecordsResponse](t, get(t, mux, "/api/records"))
	assert.Equal(t, 3, body.Total)
	require.Len(t, body.Records, 3)

	first := body.Records[0]
	assert.Equal(t, "2024-03-04", first.Date)
	assert.Equal(t, "M1", first.Machine)
	assert.Equal(t, 24.0, first.PlannedHours)
	assert.NotNil(t, first.OEE)
}

func TestHandleRecordsLimitAndFilter(t *testing.T) {
	mux, _ := newTestMux(t)

	limited := decode[RecordsResponse](t, get(t, mux, "/api/records?limit=2"))
	assert.Equal(t, 3, limited.Total)
	assert.Len(t, limited.Records, 2)

	filtered := decode[RecordsResponse](t, get(t, mux, "/api/records?machine=M2"))
	assert.Equal(t, 1, filtered.Total)
	require.Len(t, filtered.Records, 1)
	assert.Equal(t, "Gasket", filtered.Records[0].Product)
}

func TestHandleReport(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := get(t, mux, "/api/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	html := rec.Body.String()
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "OEE Report")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "M1")
	assert.Contains(t, html, "OEE by Machine")
}

func TestHandleReportHonorsQuery(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := get(t, mux, "/api/report?machine=M2")
	require.Equal(t, http.StatusOK, rec.Code)
	html := rec.Body.String()
	assert.Contains(t, html, "M2")
	assert.NotContains(t, html, "<td>M1</td>")

	rec = get(t, mux, "/api/report?hours=0.5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodPatterns(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := post(t, mux, "/api/summary", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	mux, _ := newTestMux(t)
	handler := CORSMiddleware(mux, "http://localhost:5173")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/summary", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
