package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// serverName is the key of the launchdash entry in .mcp.json.
const serverName = "launchdash"

// mcpConfig represents the structure of a .mcp.json file.
type mcpConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// mcpServerEntry is the launchdash MCP server configuration. The server reads
// its dataset from .launchdash.yaml in the same directory.
type mcpServerEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// GenerateMCPConfig creates or updates .mcp.json with a launchdash MCP server
// entry. It only acts when the directory has a .claude/ client config
// directory.
func GenerateMCPConfig(dir string) (Action, error) {
	clientDir := filepath.Join(dir, ".claude")
	if _, err := FS.Stat(clientDir); err != nil {
		if os.IsNotExist(err) {
			return Action{
				File:        ".mcp.json",
				Operation:   "skipped",
				Description: "no .claude/ directory found",
			}, nil
		}
		return Action{}, fmt.Errorf("checking .claude directory: %w", err)
	}

	mcpPath := filepath.Join(dir, ".mcp.json")
	cfg := mcpConfig{MCPServers: map[string]json.RawMessage{}}
	operation := "created"

	existing, err := FS.ReadFile(mcpPath)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(existing, &cfg); jsonErr != nil {
			return Action{}, fmt.Errorf("parsing .mcp.json: %w", jsonErr)
		}
		if _, ok := cfg.MCPServers[serverName]; ok {
			return Action{
				File:        ".mcp.json",
				Operation:   "skipped",
				Description: "launchdash MCP server already configured",
			}, nil
		}
		if cfg.MCPServers == nil {
			cfg.MCPServers = map[string]json.RawMessage{}
		}
		operation = "updated"
	case !os.IsNotExist(err):
		return Action{}, fmt.Errorf("reading .mcp.json: %w", err)
	}

	entryJSON, err := json.Marshal(mcpServerEntry{
		Command: "launchdash",
		Args:    []string{"mcp", "serve"},
	})
	if err != nil {
		return Action{}, fmt.Errorf("marshaling MCP server entry: %w", err)
	}
	cfg.MCPServers[serverName] = entryJSON

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return Action{}, fmt.Errorf("marshaling .mcp.json: %w", err)
	}
	data = append(data, '\n')

	if err := FS.WriteFile(mcpPath, data, 0o644); err != nil {
		return Action{}, fmt.Errorf("writing .mcp.json: %w", err)
	}

	if operation == "updated" {
		return Action{File: ".mcp.json", Operation: operation, Description: "added launchdash MCP server entry"}, nil
	}
	return Action{File: ".mcp.json", Operation: operation, Description: "created with launchdash MCP server entry"}, nil
}
