package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/launchdash/internal/config"
	"github.com/davetashner/launchdash/internal/controller"
	"github.com/davetashner/launchdash/internal/output"
)

// Export-specific flag values.
var (
	exportOutput string
	exportSel    selectionFlags
)

// exportCmd writes the rows behind the correlation chart as CSV.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the correlation chart's rows as CSV",
	Long: `Write the dataset rows matching the selected site and payload range, with
every source column, as CSV.

When --output names a directory, the file is created inside it with a name
derived from the selection and the current time.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file or directory (default: stdout)")
	exportSel.bind(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Overrides{})
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	ctrl := controller.New(ds)
	if err := exportSel.apply(cmd, ctrl); err != nil {
		return err
	}

	path := exportOutput
	if isDirTarget(path) {
		path = filepath.Join(path, output.CSVFilename(ctrl.Snapshot().Selection, time.Now()))
	}

	w, closeFn, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	rows := ctrl.CorrelationRows()
	if err := output.WriteCSV(w, ds.Columns(), rows); err != nil {
		_ = closeFn()
		return fmt.Errorf("launchdash: export failed (%v)", err)
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("launchdash: cannot write %q (%v)", path, err)
	}
	if path != "" {
		slog.Info("exported rows", "path", path, "rows", len(rows))
	}
	return nil
}
