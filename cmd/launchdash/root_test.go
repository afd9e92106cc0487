package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "render", "report", "export", "sites", "config", "init", "validate", "mcp", "version"} {
		assert.True(t, names[want], "%s command should be registered on root", want)
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "no-color", "log-format", "config", "dataset"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
	assert.Equal(t, "q", rootCmd.PersistentFlags().Lookup("quiet").Shorthand)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "launchdash "+Version+"\n", stdout)
}

func TestRootCmd_InvalidLogFormat(t *testing.T) {
	_, _, err := run(t, "sites", "--dataset", testdataCSV(t), "--log-format", "xml")
	requireExitCode(t, err, ExitInvalidArgs)
	assert.Contains(t, err.Error(), "log_format")
}

func TestMCPCmd_HasServe(t *testing.T) {
	var found bool
	for _, cmd := range mcpCmd.Commands() {
		if cmd.Name() == "serve" {
			found = true
		}
	}
	assert.True(t, found)
}
