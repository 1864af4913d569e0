package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fabmetrics/oee/internal/dataset"
	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/records"
	"github.com/fabmetrics/oee/internal/reporting"
)

func newReportCommand() *cobra.Command {
	var (
		dataPath string
		hours    float64
		by       string
		format   string
		limit    int
		fromStr  string
		toStr    string
		machines []string
		products []string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate an OEE report from the production dataset",
		Long: `Generate an OEE report from the production dataset.

The report opens with the overall availability, performance, quality and
OEE figures, followed by the sections configured in .oee.yaml (machine and
product tables plus the monthly trend by default).

Examples:
  oee report                               # the configured dataset
  oee report --data march.csv --hours 16   # a specific file and shift length
  oee report --by product                  # one table, grouped by product
  oee report --from 2024-03-01 --to 2024-03-31
  oee report --machine M1 --machine M2 --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, reportOptions{
				data:     dataPath,
				hours:    hours,
				by:       by,
				format:   format,
				limit:    limit,
				from:     fromStr,
				to:       toStr,
				machines: machines,
				products: products,
			})
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset CSV (default: the configured dataset)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Planned production hours per working day (default: from .oee.yaml or 24)")
	cmd.Flags().StringVar(&by, "by", "", "Group by one dimension: machine, product, date, month")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text | json | markdown")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows per table (0 = no limit)")
	cmd.Flags().StringVar(&fromStr, "from", "", "Only records on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Only records on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&machines, "machine", nil, "Only records for this machine (can be repeated)")
	cmd.Flags().StringArrayVar(&products, "product", nil, "Only records for this product (can be repeated)")

	return cmd
}

type reportOptions struct {
	data     string
	hours    float64
	by       string
	format   string
	limit    int
	from     string
	to       string
	machines []string
	products []string
}

func runReport(cmd *cobra.Command, opts reportOptions) error {
	if opts.format != "text" && opts.format != "json" && opts.format != "markdown" {
		return fmt.Errorf("invalid format %q: expected text, json or markdown", opts.format)
	}

	proj, err := resolveProject(opts.data, opts.hours)
	if err != nil {
		return err
	}

	filter, err := parseFilter(opts.from, opts.to, opts.machines, opts.products)
	if err != nil {
		return err
	}

	views := proj.views()
	if opts.by != "" {
		views, err = viewsForDimension(opts.by)
		if err != nil {
			return err
		}
	}
	if opts.limit != 0 {
		views = limitViews(views, opts.limit)
	}

	set, err := proj.openDataset()
	if err != nil {
		return err
	}

	rep, err := reporting.Build(set.Filter(filter), proj.hours, views)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "markdown":
		_, err := io.WriteString(w, reporting.FormatMarkdown(rep))
		return err
	default:
		_, err := io.WriteString(w, reporting.FormatText(rep))
		return err
	}
}

// viewsForDimension builds the section list for --by: the overall KPI block
// plus one table for the named dimension, or a trend when the dimension is
// a time axis. Like configured views, the table is dropped when the dataset
// lacks the column.
func viewsForDimension(name string) ([]reporting.ViewSpec, error) {
	dim, err := oee.ParseDimension(name)
	if err != nil {
		return nil, err
	}
	kind := reporting.ViewGroups
	if dim == oee.DimensionDate || dim == oee.DimensionMonth {
		kind = reporting.ViewTrend
	}
	return []reporting.ViewSpec{
		{Kind: string(reporting.ViewOverall)},
		{Kind: string(kind), Params: map[string]any{"by": string(dim)}},
	}, nil
}

// limitViews caps every section at n rows, overriding per-view limits from
// the config. Params maps are copied, never mutated in place.
func limitViews(views []reporting.ViewSpec, n int) []reporting.ViewSpec {
	out := make([]reporting.ViewSpec, len(views))
	for i, v := range views {
		params := make(map[string]any, len(v.Params)+1)
		for k, val := range v.Params {
			params[k] = val
		}
		params["limit"] = n
		out[i] = reporting.ViewSpec{Kind: v.Kind, Params: params}
	}
	return out
}

func parseFilter(from, to string, machines, products []string) (records.Filter, error) {
	var f records.Filter
	if from != "" {
		t, err := dataset.ParseDate(from)
		if err != nil {
			return records.Filter{}, fmt.Errorf("invalid --from date: %w", err)
		}
		f.From = t
	}
	if to != "" {
		t, err := dataset.ParseDate(to)
		if err != nil {
			return records.Filter{}, fmt.Errorf("invalid --to date: %w", err)
		}
		f.To = t
	}
	f.Machines = machines
	f.Products = products
	return f, nil
}
