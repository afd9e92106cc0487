package bootstrap

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/launchdash/internal/testable"
)

func TestGenerateMCPConfig_CreatesWhenClientDirExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".claude"), 0o750))

	action, err := GenerateMCPConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ".mcp.json", action.File)
	assert.Equal(t, "created", action.Operation)

	data, err := os.ReadFile(filepath.Join(dir, ".mcp.json")) //nolint:gosec // test path
	require.NoError(t, err)

	var cfg mcpConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	require.Contains(t, cfg.MCPServers, "launchdash")

	var entry mcpServerEntry
	require.NoError(t, json.Unmarshal(cfg.MCPServers["launchdash"], &entry))
	assert.Equal(t, "launchdash", entry.Command)
	assert.Equal(t, []string{"mcp", "serve"}, entry.Args)
}

func TestGenerateMCPConfig_SkipsWithoutClientDir(t *testing.T) {
	dir := t.TempDir()

	action, err := GenerateMCPConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "skipped", action.Operation)

	_, err = os.Stat(filepath.Join(dir, ".mcp.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateMCPConfig_MergesIntoExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".claude"), 0o750))
	existing := `{
  "mcpServers": {
    "other-tool": {"command": "other", "args": ["serve"]}
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mcp.json"), []byte(existing), 0o600))

	action, err := GenerateMCPConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "updated", action.Operation)

	data, err := os.ReadFile(filepath.Join(dir, ".mcp.json")) //nolint:gosec // test path
	require.NoError(t, err)
	var cfg mcpConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Contains(t, cfg.MCPServers, "other-tool")
	assert.Contains(t, cfg.MCPServers, "launchdash")

	action, err = GenerateMCPConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "skipped", action.Operation)
}

func TestGenerateMCPConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".claude"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mcp.json"), []byte("{not json"), 0o600))

	_, err := GenerateMCPConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .mcp.json")
}

func TestGenerateMCPConfig_ReadFileError(t *testing.T) {
	oldFS := FS
	defer func() { FS = oldFS }()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".claude"), 0o750))
	FS = &testable.MockFileSystem{
		ReadFileFn: func(string) ([]byte, error) { return nil, errors.New("io error") },
	}

	_, err := GenerateMCPConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading .mcp.json")
}

func TestGenerateMCPConfig_EmptyObject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".claude"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mcp.json"), []byte("{}"), 0o600))

	action, err := GenerateMCPConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "updated", action.Operation)

	data, err := os.ReadFile(filepath.Join(dir, ".mcp.json")) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Contains(t, string(data), `"launchdash"`)
	assert.Contains(t, string(data), `"serve"`)
}
