// Copyright 2026 The Launchdash Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/launchdash/internal/dataset"
)

// New creates an MCP server exposing read-only chart tools over ds.
func New(version string, ds *dataset.Dataset) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "launchdash",
		Title:   "Launch Records Dashboard",
		Version: version,
	}, nil)

	registerTools(server, newTools(ds))
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, ds *dataset.Dataset, transport mcp.Transport) error {
	if ds == nil {
		return errors.New("mcp: no dataset loaded")
	}
	return New(version, ds).Run(ctx, transport)
}
