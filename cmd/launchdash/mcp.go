// Copyright 2026 The Launchdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/launchdash/internal/config"
	"github.com/davetashner/launchdash/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running launchdash as an MCP server, exposing read-only chart tools to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout over the configured dataset, exposing:
  - list_sites:        launch sites and payload range bounds
  - proportion_chart:  launch outcome pie chart for a site
  - correlation_chart: payload vs. outcome scatter for a site and range
  - site_summary:      per-site totals and success rates

Tools never change the dashboard selection.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(config.Overrides{})
		if err != nil {
			return err
		}
		ds, err := loadDataset(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return mcpserver.Run(cmd.Context(), Version, ds, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
