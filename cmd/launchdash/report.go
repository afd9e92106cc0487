package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/launchdash/internal/config"
	"github.com/davetashner/launchdash/internal/report"
)

// Report-specific flag values.
var (
	reportFormat string
	reportOutput string
)

// reportCmd prints per-site launch outcome totals.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize launch outcomes per site",
	Long: `Print launches, successes, failures, success rate and payload bounds for
every site in dataset order, followed by an all-sites total.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "table", "output format: table or json")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (default: stdout)")
}

func runReport(cmd *cobra.Command, _ []string) error {
	switch reportFormat {
	case "table", "json":
	default:
		return exitError(ExitInvalidArgs, "launchdash: unsupported format %q (supported: table, json)", reportFormat)
	}

	cfg, err := resolveConfig(config.Overrides{})
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	summary := report.Build(ds, time.Now())

	w, closeFn, err := openOutput(cmd, reportOutput)
	if err != nil {
		return err
	}
	if reportFormat == "json" {
		err = report.RenderJSON(summary, w)
	} else {
		err = report.RenderTable(summary, w)
	}
	if err != nil {
		_ = closeFn()
		return fmt.Errorf("launchdash: report failed (%v)", err)
	}
	return closeFn()
}
