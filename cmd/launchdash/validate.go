// Copyright 2026 The Launchdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/launchdash/internal/config"
	"github.com/davetashner/launchdash/internal/validate"
)

// validateCmd checks a launch records table without loading it.
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a launch records CSV and report every problem",
	Long: `Validate a launch records table row by row. Unlike loading, which stops at
the first bad cell, validation reports every missing column and malformed cell
with a suggested fix.

The file defaults to the configured dataset; pass - to read stdin. Column names
and the delimiter come from the configuration.
  launchdash validate launches.csv
  launchdash export --site "KSC LC-39A" | launchdash validate -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := mergedConfig(config.Overrides{})
	if err != nil {
		return err
	}

	path := cfg.Dataset
	if len(args) > 0 {
		path = args[0]
	}
	switch {
	case path == "":
		return exitError(ExitInvalidArgs, "launchdash: no file given and no dataset configured")
	case strings.HasPrefix(path, "s3://"):
		return exitError(ExitInvalidArgs, "launchdash: validate reads local files or stdin, not %q", path)
	}

	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := cmdFS.Open(path)
		if err != nil {
			return exitError(ExitLoadFailure, "launchdash: cannot open %q (%v)", path, err)
		}
		defer f.Close() //nolint:errcheck // best-effort close on input file
		r = f
	}

	opts := validate.Options{Columns: cfg.Columns}
	if d := []rune(cfg.Delimiter); len(d) == 1 {
		opts.Delimiter = d[0]
	}
	result := validate.Validate(r, opts)

	if result.Valid() {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d rows, %d sites\n",
			color.GreenString("valid:"), result.TotalRows, len(result.Sites))
		return nil
	}

	stderr := cmd.ErrOrStderr()
	for _, e := range result.Errors {
		_, _ = fmt.Fprintf(stderr, "line %d:", e.Line)
		if e.Column != "" {
			_, _ = fmt.Fprintf(stderr, " %s:", e.Column)
		}
		_, _ = fmt.Fprintf(stderr, " %s\n", e.Message)
		if e.Suggestion != "" {
			_, _ = fmt.Fprintf(stderr, "  fix: %s\n", e.Suggestion)
		}
	}
	more := ""
	if result.Truncated {
		more = fmt.Sprintf(" (stopped after %d)", validate.MaxErrors)
	}
	_, _ = fmt.Fprintf(stderr, "\n%d error(s) found in %d rows%s\n", len(result.Errors), result.TotalRows, more)
	return exitError(ExitInvalidArgs, "")
}
