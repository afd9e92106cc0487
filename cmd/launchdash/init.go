package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/launchdash/internal/bootstrap"
	"github.com/davetashner/launchdash/internal/config"
)

// Init-specific flag values.
var initForce bool

// initCmd bootstraps a launchdash config in a directory.
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a starter .launchdash.yaml",
	Long: `Find a launch records CSV in the directory (or use --dataset) and write a
starter .launchdash.yaml pointing at it. When a .claude/ directory is present,
a launchdash entry is added to .mcp.json.

This command is non-destructive by default: it skips files that already exist.
Use --force to regenerate .launchdash.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing "+config.FileName)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return exitError(ExitInvalidArgs, "launchdash: cannot resolve path %q (%v)", dir, err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return exitError(ExitInvalidArgs, "launchdash: path %q does not exist", dir)
	}
	if !info.IsDir() {
		return exitError(ExitInvalidArgs, "launchdash: %q is not a directory", dir)
	}

	slog.Info("initializing launchdash", "path", absDir)

	result, err := bootstrap.Run(bootstrap.InitConfig{
		Dir:     absDir,
		Dataset: datasetPath,
		Force:   initForce,
	})
	if err != nil {
		return exitError(ExitInvalidArgs, "launchdash: init failed (%v)", err)
	}

	w := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "launchdash init complete")
	_, _ = fmt.Fprintln(w)

	for _, c := range result.Candidates {
		_, _ = fmt.Fprintf(w, "  found %s %s\n", c.Path, dim.Sprintf("(%d rows, %d sites)", c.Rows, c.Sites))
	}
	for _, a := range result.Actions {
		var prefix string
		switch a.Operation {
		case "created":
			prefix = green.Sprint("  + ")
		case "updated":
			prefix = yellow.Sprint("  ~ ")
		default:
			prefix = dim.Sprint("  - ")
		}
		_, _ = fmt.Fprintf(w, "%s%-20s %s\n", prefix, a.File, dim.Sprintf("(%s)", a.Description))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "Next steps:")
	_, _ = fmt.Fprintf(w, "  1. Review %s and adjust settings\n", config.FileName)
	_, _ = fmt.Fprintln(w, "  2. Run: launchdash serve")
	_, _ = fmt.Fprintln(w)
	return nil
}
