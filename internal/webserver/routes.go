package webserver

import (
	"io"
	"net/http"

	"github.com/fabmetrics/oee/internal/webapi"
)

// registerRoutes sets up the API routes and the index page.
func registerRoutes(mux *http.ServeMux, store *webapi.Store, cfg Config) {
	webapi.RegisterRoutes(mux, store, webapi.Options{
		Views:       cfg.Views,
		HoursPerDay: cfg.HoursPerDay,
	})
	mux.HandleFunc("GET /{$}", handleIndex)
}

// handleIndex serves a small landing page linking the report and the API.
func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexPage) //nolint:errcheck
}

const indexPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>OEE Dashboard</title>
<style>
body { font-family: system-ui, sans-serif; margin: 3rem auto; max-width: 40rem; padding: 0 1rem; color: #1f2430; }
li { margin: 0.4rem 0; }
code { background: #eef1f7; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
<h1>OEE Dashboard</h1>
<p>Production KPIs computed from the loaded dataset.</p>
<ul>
<li><a href="/api/report">Report</a> - rendered OEE report</li>
<li><a href="/api/summary">Summary</a> - overall KPIs as JSON</li>
<li><a href="/api/groups?by=machine">Groups</a> - per-machine table as JSON</li>
<li><a href="/api/records">Records</a> - filtered records as JSON</li>
<li><a href="/api/dataset">Dataset</a> - dataset info and filter options</li>
</ul>
<p>Upload a new dataset with <code>POST /api/dataset</code> (CSV body or multipart file field).</p>
</body>
</html>
`
