package reporting

import (
	"fmt"
	"strings"
)

// FormatMarkdown renders a report as a markdown document with pipe
// tables, ready for HTML conversion.
func FormatMarkdown(r *Report) string {
	var b strings.Builder

	b.WriteString("# OEE Report\n\n")
	fmt.Fprintf(&b, "Generated %s with %s planned hours per day over %d records.\n\n",
		r.GeneratedAt.Format("2006-01-02 15:04 MST"), FormatHours(r.HoursPerDay), r.RecordCount)
	fmt.Fprintf(&b, "**Assessment:** %s\n", r.Interpretation)

	for _, s := range r.Sections {
		b.WriteString("\n## " + s.Title + "\n\n")
		writeMarkdownSection(&b, s)
	}
	return b.String()
}

func writeMarkdownSection(b *strings.Builder, s Section) {
	switch s.Kind {
	case ViewOverall:
		writeMarkdownTable(b, []string{"Metric", "Value"}, overallRows(s.Overall))
	case ViewGroups, ViewTrend:
		if len(s.Groups) == 0 {
			b.WriteString("No rows.\n")
			return
		}
		writeMarkdownTable(b, groupHeaders(s.By), groupRows(s.Groups))
	case ViewRecords:
		if len(s.Records) == 0 {
			b.WriteString("No rows.\n")
			return
		}
		writeMarkdownTable(b, recordHeaders(), recordRows(s.Records))
	}
}

func writeMarkdownTable(b *strings.Builder, headers []string, rows [][]string) {
	writeMarkdownRow(b, headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeMarkdownRow(b, sep)
	for _, row := range rows {
		writeMarkdownRow(b, row)
	}
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" ")
		b.WriteString(escapeMarkdownCell(cell))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

// escapeMarkdownCell keeps pipe characters in data (machine and product
// names are free-form) from breaking the table.
func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
