package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/launchdash/internal/config"
	"github.com/davetashner/launchdash/internal/controller"
	"github.com/davetashner/launchdash/internal/dataset"
	launchlog "github.com/davetashner/launchdash/internal/log"
)

// resolveConfig builds the effective config: file, then LAUNCHDASH_*
// environment, then flags. The result is validated.
func resolveConfig(cli config.Overrides) (*config.Config, error) {
	cfg, err := mergedConfig(cli)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "launchdash: %v", err)
	}
	if cfg.LogFormat != logFormat || cfg.Server.Debug {
		launchlog.Setup(verbose || cfg.Server.Debug, quiet, cfg.LogFormat)
	}
	return cfg, nil
}

// mergedConfig is resolveConfig without validation.
func mergedConfig(cli config.Overrides) (*config.Config, error) {
	cli.Dataset = datasetPath
	cli.LogFormat = logFormat
	cfg, err := config.Resolve(".", configPath, cli)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "launchdash: failed to load config (%v)", err)
	}
	return cfg, nil
}

// loadDataset reads the configured dataset. Any failure maps to
// ExitLoadFailure.
func loadDataset(ctx context.Context, cfg *config.Config) (*dataset.Dataset, error) {
	ds, err := dataset.LoadSource(ctx, cfg.Dataset, cfg.DatasetOptions()...)
	if err != nil {
		return nil, exitError(ExitLoadFailure, "launchdash: %v", err)
	}
	slog.Debug("dataset loaded", "source", ds.Source(), "rows", ds.Len(), "sites", len(ds.DistinctSites()))
	return ds, nil
}

// selectionFlags are the --site/--min/--max flags shared by render and export.
type selectionFlags struct {
	site string
	min  float64
	max  float64
}

func (f *selectionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.site, "site", "", `launch site to select (default "ALL")`)
	cmd.Flags().Float64Var(&f.min, "min", 0, "lower payload mass bound in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&f.max, "max", 0, "upper payload mass bound in kg (default: dataset maximum)")
}

// apply replays the flags as selection events on ctrl. Only flags given on
// the command line produce events.
func (f *selectionFlags) apply(cmd *cobra.Command, ctrl *controller.Controller) error {
	if cmd.Flags().Changed("site") {
		if _, err := ctrl.SelectSite(f.site); err != nil {
			return exitError(ExitInvalidArgs, "launchdash: %v", err)
		}
	}
	minSet, maxSet := cmd.Flags().Changed("min"), cmd.Flags().Changed("max")
	if minSet || maxSet {
		r := ctrl.Snapshot().Selection.Payload
		if minSet {
			r.Low = f.min
		}
		if maxSet {
			r.High = f.max
		}
		if _, err := ctrl.SelectPayload(r.Low, r.High); err != nil {
			return exitError(ExitInvalidArgs, "launchdash: %v", err)
		}
	}
	return nil
}

// openOutput returns the -o destination, or stdout when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := cmdFS.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("launchdash: cannot create output file %q (%v)", path, err)
	}
	return f, f.Close, nil
}

// isDirTarget reports whether -o names a directory to write into.
func isDirTarget(path string) bool {
	if path == "" {
		return false
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return true
	}
	info, err := cmdFS.Stat(path)
	return err == nil && info.IsDir()
}
