package webapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fabmetrics/oee/internal/reporting"
)

// markdown converts report markdown to HTML. The Table extension covers
// the pipe tables the formatter emits.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// HandleReport renders the configured report views as an HTML page.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
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

	report, err := reporting.Build(d.Set.Filter(q.filter), q.hours, h.views)
	if err != nil {
		writeDataError(w, err)
		return
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(reporting.FormatMarkdown(report)), &body); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("rendering report: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, reportPageHead) //nolint:errcheck
	w.Write(body.Bytes())             //nolint:errcheck
	io.WriteString(w, reportPageFoot) //nolint:errcheck
}

const reportPageHead = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>OEE Report</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 60rem; padding: 0 1rem; color: #1f2430; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #cbd2e0; padding: 0.35rem 0.75rem; text-align: left; }
th { background: #eef1f7; }
h1, h2 { color: #101524; }
</style>
</head>
<body>
`

const reportPageFoot = `</body>
</html>
`
