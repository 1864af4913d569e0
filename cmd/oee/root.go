package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oee",
		Short: "OEE - manufacturing performance reports from production CSVs",
		Long: `OEE computes Overall Equipment Effectiveness from production report CSVs.

It reads per-machine production records (units produced, rejects,
performance, working days, downtime), derives availability, performance and
quality, and reports the combined OEE overall, per machine, per product and
over time.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newCacheCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
