package main

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// testdataCSV returns the bundled launch records fixture.
func testdataCSV(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "internal", "dataset", "testdata", "spacex_launch_dash.csv")
}

// newTestCmd redirects the shared root command's output to buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetFlags restores every command's flags to their defaults. Cobra keeps
// flag state on the package-level commands between Execute calls.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			f.Changed = false
			_ = f.Value.Set(f.DefValue)
		})
	}
	reset(rootCmd.PersistentFlags())
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		reset(c.Flags())
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)

	t.Setenv("LAUNCHDASH_DATASET", "")
	t.Setenv("LAUNCHDASH_ADDR", "")
	t.Setenv("LAUNCHDASH_LOG_FORMAT", "")
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(t)
	cmd, stdout, stderr := newTestCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
