package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabmetrics/oee/internal/projectconfig"
	"github.com/fabmetrics/oee/internal/scaffold"
	"github.com/fabmetrics/oee/internal/validation"
	"github.com/fabmetrics/oee/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var force bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an OEE project",
		Long: `Initialize an OEE project.

Creates a .oee.yaml configuration file and, when the configured dataset
does not exist yet, a starter data.csv with the expected columns and a few
sample rows.

Use --interactive to run a guided form that asks for the dataset path,
planned hours per day, and the dashboard port.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, force, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided setup form")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .oee.yaml")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, force, interactive bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	spec := wizard.DefaultProjectSpec()
	if interactive {
		answers, err := wizard.RunProjectWizard(cmd.InOrStdin(), cmd.OutOrStdout(), spec)
		if err != nil {
			return err
		}
		spec = *answers
	}

	// The config file is never silently replaced; existing data files are
	// never touched at all.
	cfgPath := filepath.Join(dir, projectconfig.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		if !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	content, err := wizard.GenerateConfig(&spec)
	if err != nil {
		return err
	}
	if errs := validation.ValidateConfigBytes([]byte(content)); len(errs) > 0 {
		return fmt.Errorf("generated config is invalid: %s", strings.Join(errs, "; "))
	}
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", projectconfig.FileName, err)
	}

	wrote := []string{cfgPath}

	dataPath := spec.DatasetPath
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(dir, dataPath)
	}
	if _, err := os.Stat(dataPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
			return fmt.Errorf("failed to create dataset directory: %w", err)
		}
		if err := os.WriteFile(dataPath, []byte(scaffold.StarterCSV()), 0o644); err != nil {
			return fmt.Errorf("failed to write starter dataset: %w", err)
		}
		wrote = append(wrote, dataPath)
	} else if err != nil {
		return fmt.Errorf("checking %s: %w", dataPath, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Initialized OEE project:") //nolint:errcheck
	for _, p := range wrote {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p) //nolint:errcheck
	}

	return nil
}
