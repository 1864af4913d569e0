package reporting

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatText renders a report as aligned plain-text tables for the
// terminal.
func FormatText(r *Report) string {
	var b strings.Builder

	b.WriteString("=== OEE Report ===\n\n")
	fmt.Fprintf(&b, "Generated:     %s\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Hours per day: %s\n", FormatHours(r.HoursPerDay))
	fmt.Fprintf(&b, "Records:       %d\n", r.RecordCount)
	fmt.Fprintf(&b, "Assessment:    %s\n", r.Interpretation)

	for _, s := range r.Sections {
		b.WriteString("\n=== " + s.Title + " ===\n\n")
		writeTextSection(&b, s)
	}
	return b.String()
}

func writeTextSection(b *strings.Builder, s Section) {
	switch s.Kind {
	case ViewOverall:
		writeTextTable(b, nil, overallRows(s.Overall))
	case ViewGroups, ViewTrend:
		if len(s.Groups) == 0 {
			b.WriteString("(no rows)\n")
			return
		}
		writeTextTable(b, upper(groupHeaders(s.By)), groupRows(s.Groups))
	case ViewRecords:
		if len(s.Records) == 0 {
			b.WriteString("(no rows)\n")
			return
		}
		writeTextTable(b, upper(recordHeaders()), recordRows(s.Records))
	}
}

// writeTextTable renders rows as runewidth-aligned columns. A nil header
// gives a plain listing without a separator line.
func writeTextTable(b *strings.Builder, headers []string, rows [][]string) {
	columns := len(headers)
	if columns == 0 && len(rows) > 0 {
		columns = len(rows[0])
	}
	widths := make([]int, columns)
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if headers != nil {
		writeTextRow(b, headers, widths)
		sep := make([]string, columns)
		for i := range sep {
			sep[i] = strings.Repeat("-", widths[i])
		}
		writeTextRow(b, sep, widths)
	}
	for _, row := range rows {
		writeTextRow(b, row, widths)
	}
}

func writeTextRow(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(cells)-1 {
			b.WriteString(cell)
			continue
		}
		b.WriteString(padRight(cell, widths[i]))
	}
	b.WriteString("\n")
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func upper(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.ToUpper(h)
	}
	return out
}
