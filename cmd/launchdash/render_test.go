package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/launchdash/internal/output"
	"github.com/davetashner/launchdash/internal/selection"
	"github.com/davetashner/launchdash/internal/testable"
)

func decodeEnvelope(t *testing.T, s string) output.JSONEnvelope {
	t.Helper()
	var env output.JSONEnvelope
	require.NoError(t, json.Unmarshal([]byte(s), &env))
	return env
}

func TestRender_JSONDefaults(t *testing.T) {
	stdout, _, err := run(t, "render", "--format", "json", "--dataset", testdataCSV(t), "--quiet")
	require.NoError(t, err)

	env := decodeEnvelope(t, stdout)
	assert.Equal(t, "Total Successful Launches for all sites", env.Proportion.Title)
	assert.Equal(t, "Correlation between Payload and Success for ALL", env.Correlation.Title)
	assert.Equal(t, selection.State{Site: "ALL", Payload: selection.Range{Low: 0, High: 9600}}, env.Selection)
	require.Len(t, env.Proportion.Slices, 2)
	assert.Equal(t, 33, env.Proportion.Slices[0].Count)
	assert.Equal(t, 23, env.Proportion.Slices[1].Count)
	assert.Equal(t, uint64(1), env.Metadata.Revision)
}

func TestRender_SiteAndRange(t *testing.T) {
	stdout, _, err := run(t, "render", "-f", "json", "--dataset", testdataCSV(t),
		"--site", "KSC LC-39A", "--min", "5000", "--max", "7000")
	require.NoError(t, err)

	env := decodeEnvelope(t, stdout)
	assert.Equal(t, "Total Successful Launches for site KSC LC-39A", env.Proportion.Title)
	assert.Equal(t, 13, env.Proportion.RowCount)
	assert.Equal(t, 5, env.Correlation.RowCount)
	assert.Equal(t, selection.Range{Low: 5000, High: 7000}, env.Selection.Payload)
	assert.Equal(t, uint64(3), env.Metadata.Revision)
}

func TestRender_OnlyMaxKeepsLowBound(t *testing.T) {
	stdout, _, err := run(t, "render", "-f", "json", "--dataset", testdataCSV(t), "--max", "0")
	require.NoError(t, err)

	env := decodeEnvelope(t, stdout)
	assert.Equal(t, selection.Range{Low: 0, High: 0}, env.Selection.Payload)
	assert.Equal(t, 2, env.Correlation.RowCount)
	assert.Equal(t, 56, env.Proportion.RowCount)
}

func TestRender_SwappedRangeIsOrdered(t *testing.T) {
	stdout, _, err := run(t, "render", "-f", "json", "--dataset", testdataCSV(t), "--min", "7000", "--max", "5000")
	require.NoError(t, err)

	env := decodeEnvelope(t, stdout)
	assert.Equal(t, selection.Range{Low: 5000, High: 7000}, env.Selection.Payload)
	assert.Equal(t, 8, env.Correlation.RowCount)
}

func TestRender_EmptySelection(t *testing.T) {
	stdout, _, err := run(t, "render", "-f", "json", "--dataset", testdataCSV(t),
		"--site", "KSC LC-39A", "--max", "1000")
	require.NoError(t, err)

	env := decodeEnvelope(t, stdout)
	assert.True(t, env.Correlation.Empty)
	assert.Equal(t, "No data", env.Correlation.Placeholder)
	assert.False(t, env.Proportion.Empty)
}

func TestRender_Markdown(t *testing.T) {
	stdout, _, err := run(t, "render", "--format", "markdown", "--dataset", testdataCSV(t), "--site", "CCAFS SLC-40")
	require.NoError(t, err)

	assert.Contains(t, stdout, "# SpaceX Launch Records Dashboard")
	assert.Contains(t, stdout, "**Site:** CCAFS SLC-40")
	assert.Contains(t, stdout, "## Total Successful Launches for site CCAFS SLC-40")
	assert.Contains(t, stdout, "## Correlation between Payload and Success for CCAFS SLC-40")
}

func TestRender_DefaultFormatIsHTML(t *testing.T) {
	stdout, _, err := run(t, "render", "--dataset", testdataCSV(t))
	require.NoError(t, err)

	assert.Contains(t, stdout, "<!DOCTYPE html>")
	assert.Contains(t, stdout, "<title>SpaceX Launch Records Dashboard</title>")
	assert.Contains(t, stdout, "static snapshot")
}

func TestRender_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dash.yaml")
	content := "dataset: " + testdataCSV(t) + "\nheading: Falcon 9 Outcomes\noutput_format: markdown\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	stdout, _, err := run(t, "render", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Falcon 9 Outcomes")
}

func TestRender_FlagWinsOverConfigFormat(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dash.toml")
	content := "dataset = \"" + filepath.ToSlash(testdataCSV(t)) + "\"\noutput_format = \"markdown\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	stdout, _, err := run(t, "render", "--config", cfgPath, "--format", "json")
	require.NoError(t, err)
	decodeEnvelope(t, stdout)
}

func TestRender_DatasetFromEnv(t *testing.T) {
	resetFlags(t)
	t.Setenv("LAUNCHDASH_DATASET", testdataCSV(t))

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"render", "-f", "json"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 56, decodeEnvelope(t, stdout.String()).Proportion.RowCount)
}

func TestRender_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.html")

	stdout, _, err := run(t, "render", "--dataset", testdataCSV(t), "-o", path, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Successful Launches for all sites")
}

func TestRender_OutputCreateFails(t *testing.T) {
	orig := cmdFS
	t.Cleanup(func() { cmdFS = orig })
	cmdFS = &testable.MockFileSystem{
		CreateFn: func(string) (io.WriteCloser, error) { return nil, errors.New("read-only file system") },
	}

	_, _, err := run(t, "render", "--dataset", testdataCSV(t), "-o", "/out/dash.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only file system")
}

func TestRender_UnknownSite(t *testing.T) {
	_, _, err := run(t, "render", "--dataset", testdataCSV(t), "--site", "Boca Chica")
	requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, err.Error(), "unknown launch site")
}

func TestRender_UnknownFormat(t *testing.T) {
	_, _, err := run(t, "render", "--dataset", testdataCSV(t), "--format", "pdf")
	requireExitCode(t, err, ExitInvalidArgs)
}

func TestRender_MissingDataset(t *testing.T) {
	_, _, err := run(t, "render")
	requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, err.Error(), "dataset: required")
}

func TestRender_LoadFailure(t *testing.T) {
	_, _, err := run(t, "render", "--dataset", filepath.Join(t.TempDir(), "missing.csv"))
	requireExitCode(t, err, ExitLoadFailure)
}

func TestRender_MissingColumnIsLoadFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Launch Site,class\nKSC LC-39A,1\n"), 0o600))

	_, _, err := run(t, "render", "--dataset", path)
	requireExitCode(t, err, ExitLoadFailure)
}

func TestRender_MissingConfigFile(t *testing.T) {
	_, _, err := run(t, "render", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestFormatterFor_AppliesHeading(t *testing.T) {
	f, err := formatterFor("html", "Custom")
	require.NoError(t, err)
	html, ok := f.(*output.HTMLFormatter)
	require.True(t, ok)
	assert.Equal(t, "Custom", html.Heading)

	shared, err := output.GetFormatter("html")
	require.NoError(t, err)
	assert.Empty(t, shared.(*output.HTMLFormatter).Heading, "registered formatter must not be mutated")

	f, err = formatterFor("json", "Custom")
	require.NoError(t, err)
	assert.Equal(t, "json", f.Name())
}
