// Package bootstrap implements the `launchdash init` command, which finds a
// launch records table in a directory and generates a starter configuration.
package bootstrap

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/davetashner/launchdash/internal/dataset"
	"github.com/davetashner/launchdash/internal/testable"
)

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// ErrNoDataset means no CSV file in the directory loads as launch records.
var ErrNoDataset = errors.New("no launch records CSV found")

// InitConfig holds the inputs for the init command.
type InitConfig struct {
	Dir string

	// Dataset, if set, is used instead of searching Dir. It may be an
	// s3:// URI, which is not checked.
	Dataset string

	Force bool
}

// Action records a single file operation performed during init.
type Action struct {
	File        string // e.g. ".launchdash.yaml", ".mcp.json"
	Operation   string // "created", "updated", "skipped"
	Description string // human-readable detail
}

// InitResult holds the outcome of an init run.
type InitResult struct {
	Actions    []Action
	Dataset    string
	Candidates []Candidate
}

// Run orchestrates the init process: pick the dataset, generate the config
// file, and register the MCP server.
func Run(cfg InitConfig) (*InitResult, error) {
	result := &InitResult{}

	switch {
	case strings.HasPrefix(cfg.Dataset, "s3://"):
		if _, _, ok := dataset.ParseS3URI(cfg.Dataset); !ok {
			return nil, fmt.Errorf("invalid S3 URI %q (want s3://bucket/key)", cfg.Dataset)
		}
		result.Dataset = cfg.Dataset
	case cfg.Dataset != "":
		c, err := inspect(cfg.Dataset)
		if err != nil {
			return nil, err
		}
		result.Candidates = []Candidate{c}
		result.Dataset = relativeTo(cfg.Dir, cfg.Dataset)
	default:
		candidates, err := DetectDatasets(cfg.Dir)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w in %s (pass --dataset)", ErrNoDataset, cfg.Dir)
		}
		result.Candidates = candidates
		result.Dataset = relativeTo(cfg.Dir, candidates[0].Path)
	}

	configAction, err := GenerateConfig(cfg.Dir, result.Dataset, cfg.Force)
	if err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, configAction)

	mcpAction, err := GenerateMCPConfig(cfg.Dir)
	if err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, mcpAction)

	return result, nil
}

// relativeTo expresses path relative to dir when it lies inside it, since
// launchdash resolves dataset paths from the directory it runs in.
func relativeTo(dir, path string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return absPath
	}
	return rel
}
