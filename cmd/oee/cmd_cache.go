package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fabmetrics/oee/internal/cache"
	"github.com/fabmetrics/oee/internal/projectconfig"
	"github.com/fabmetrics/oee/internal/utils"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the parsed-dataset cache",
		Long: `Manage the parsed-dataset cache.

The cache keeps normalized record sets keyed by the dataset's content hash,
so large CSVs are not re-parsed on every command. Entries for changed files
are never read again; clear is only needed to reclaim disk space.`,
	}

	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached dataset entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cacheClearE(cmd, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "cache-dir", "", "Cache directory to clear (default: from .oee.yaml)")

	return cmd
}

func cacheClearE(cmd *cobra.Command, dir string) error {
	if dir == "" {
		cfg, err := projectconfig.Load(".")
		if err != nil {
			return err
		}
		dir = utils.ResolvePath(cfg.Cache.Dir, cfg.Dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving cache directory: %w", err)
	}

	if err := cache.New(absDir).Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s\n", absDir) //nolint:errcheck
	return nil
}
