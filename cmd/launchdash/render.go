package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/davetashner/launchdash/internal/config"
	"github.com/davetashner/launchdash/internal/controller"
	"github.com/davetashner/launchdash/internal/output"
)

// Render-specific flag values.
var (
	renderFormat string
	renderOutput string
	renderSel    selectionFlags
)

// renderCmd renders both charts once for a selection.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard charts for one selection",
	Long: `Load the dataset, apply the selection given by --site, --min and --max,
and write both charts once.

Formats:
  html      self-contained page with the charts as SVG (controls disabled)
  json      chart specs with selection and metadata
  markdown  outcome and per-booster tables`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "output format: html, json, markdown (default: output_format from config, else html)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file path (default: stdout)")
	renderSel.bind(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Overrides{})
	if err != nil {
		return err
	}

	format := renderFormat
	if format == "" {
		format = cfg.OutputFormat
	}
	if format == "" {
		format = "html"
	}
	formatter, err := formatterFor(format, cfg.Heading)
	if err != nil {
		return exitError(ExitInvalidArgs, "launchdash: %v", err)
	}

	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	ctrl := controller.New(ds)
	if err := renderSel.apply(cmd, ctrl); err != nil {
		return err
	}

	w, closeFn, err := openOutput(cmd, renderOutput)
	if err != nil {
		return err
	}
	if err := formatter.Format(ctrl.Snapshot(), w); err != nil {
		_ = closeFn()
		return fmt.Errorf("launchdash: rendering failed (%v)", err)
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("launchdash: cannot write %q (%v)", renderOutput, err)
	}
	if renderOutput != "" {
		slog.Info("wrote dashboard", "path", renderOutput, "format", format)
	}
	return nil
}

// formatterFor looks up a registered formatter and applies the configured
// heading to the formats that print one.
func formatterFor(name, heading string) (output.Formatter, error) {
	f, err := output.GetFormatter(name)
	if err != nil {
		return nil, err
	}
	if heading == "" {
		return f, nil
	}
	switch v := f.(type) {
	case *output.HTMLFormatter:
		c := *v
		c.Heading = heading
		return &c, nil
	case *output.MarkdownFormatter:
		c := *v
		c.Heading = heading
		return &c, nil
	}
	return f, nil
}
