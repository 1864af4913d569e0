package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fabmetrics/oee/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		port      int
		dataPath  string
		hours     float64
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local OEE dashboard",
		Long: `Start the local OEE dashboard.

Serves the JSON API and a rendered report page on localhost, loading the
configured dataset at startup. When the data file does not exist yet the
server starts empty; POST a CSV to /api/dataset to populate it.

The dashboard opens in a browser unless --no-browser (or no_browser in
.oee.yaml) is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port, dataPath, hours, noBrowser)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default: from .oee.yaml or 8701)")
	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset CSV (default: the configured dataset)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Planned production hours per working day (default: from .oee.yaml or 24)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the dashboard in a browser")

	return cmd
}

func runServe(cmd *cobra.Command, port int, dataPath string, hours float64, noBrowser bool) error {
	proj, err := resolveProject(dataPath, hours)
	if err != nil {
		return err
	}

	if port == 0 {
		port = proj.cfg.Server.Port
	}
	if !noBrowser && proj.cfg.Server.NoBrowser != nil {
		noBrowser = *proj.cfg.Server.NoBrowser
	}

	srv, err := webserver.New(webserver.Config{
		Port:        port,
		DataPath:    proj.dataPath,
		HoursPerDay: proj.hours,
		Views:       proj.views(),
		CacheDir:    proj.cacheDir,
		NoBrowser:   noBrowser,
		Logger:      slog.Default(),
	})
	if err != nil {
		return err
	}

	return srv.ListenAndServe(cmd.Context())
}
