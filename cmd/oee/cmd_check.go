package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabmetrics/oee/internal/records"
)

func newCheckCommand() *cobra.Command {
	var dataPath string
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the production dataset loads cleanly",
		Long: `Check that the production dataset loads cleanly.

Loads and normalizes the dataset, then prints its shape: row count, which
optional columns are present, distinct machines and products, and the date
range. A dataset with missing columns or malformed rows is reported with
exit code 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetCheck(cmd, dataPath, format)
		},
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset CSV (default: the configured dataset)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text | json")

	return cmd
}

// --- JSON output structs ---

type datasetCheckJSON struct {
	Path     string             `json:"path"`
	Rows     int                `json:"rows"`
	Columns  datasetColumnsJSON `json:"columns"`
	Machines []string           `json:"machines,omitempty"`
	Products []string           `json:"products,omitempty"`
	DateFrom string             `json:"dateFrom,omitempty"`
	DateTo   string             `json:"dateTo,omitempty"`
}

type datasetColumnsJSON struct {
	Date    bool `json:"date"`
	Machine bool `json:"machine"`
	Product bool `json:"product"`
}

func runDatasetCheck(cmd *cobra.Command, dataPath, format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: expected text or json", format)
	}

	proj, err := resolveProject(dataPath, 0)
	if err != nil {
		return err
	}

	set, err := proj.openDataset()
	if err != nil {
		return err
	}

	if format == "json" {
		return outputCheckJSON(cmd, proj.dataPath, set)
	}
	displayDatasetCheck(cmd.OutOrStdout(), proj.dataPath, set)
	return nil
}

func outputCheckJSON(cmd *cobra.Command, path string, set *records.Set) error {
	report := datasetCheckJSON{
		Path: path,
		Rows: len(set.Records),
		Columns: datasetColumnsJSON{
			Date:    set.Columns.Date,
			Machine: set.Columns.Machine,
			Product: set.Columns.Product,
		},
		Machines: set.Machines(),
		Products: set.Products(),
	}
	if from, to, ok := set.DateRange(); ok {
		report.DateFrom = from.Format("2006-01-02")
		report.DateTo = to.Format("2006-01-02")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), buf.String())
	return err
}

type writer = interface{ Write([]byte) (int, error) }

// writeStatus prints a status line: "   icon  message\n".
//
//nolint:errcheck
func writeStatus(w writer, icon, message string) {
	fmt.Fprintf(w, "   %s  %s\n", icon, message)
}

//nolint:errcheck // display function; Fprintf errors to stdout are not actionable
func displayDatasetCheck(w writer, path string, set *records.Set) {
	fmt.Fprintf(w, "\n🔍 Dataset Check\n")
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Rows: %d\n\n", len(set.Records))

	fmt.Fprintf(w, "📋 Columns\n")
	writeStatus(w, "✅", "All required columns present")

	if set.Columns.Date {
		if from, to, ok := set.DateRange(); ok {
			writeStatus(w, "✅", fmt.Sprintf("Date: %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")))
		} else {
			writeStatus(w, "⚠️", "Date column present but no record carries a date")
		}
	} else {
		writeStatus(w, "⚠️", "Date column missing (trend views unavailable)")
	}

	if set.Columns.Machine {
		machines := set.Machines()
		writeStatus(w, "✅", fmt.Sprintf("Machine: %d distinct (%s)", len(machines), summarizeNames(machines, 5)))
	} else {
		writeStatus(w, "⚠️", "Machine column missing (machine grouping unavailable)")
	}

	if set.Columns.Product {
		products := set.Products()
		writeStatus(w, "✅", fmt.Sprintf("Product: %d distinct (%s)", len(products), summarizeNames(products, 5)))
	} else {
		writeStatus(w, "⚠️", "Product column missing (product grouping unavailable)")
	}

	fmt.Fprintf(w, "\n✅ Dataset is ready. Run 'oee report' for the full report.\n")
}

// summarizeNames lists up to max names, eliding the rest.
func summarizeNames(names []string, max int) string {
	if len(names) <= max {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:max], ", ") + ", …"
}
