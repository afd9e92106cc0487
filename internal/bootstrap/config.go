package bootstrap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davetashner/launchdash/internal/config"
)

const configHeader = "# launchdash configuration. Environment variables (LAUNCHDASH_*) and\n# command-line flags override these values.\n"

// GenerateConfig writes .launchdash.yaml in dir with the given dataset and
// default settings. An existing file is left alone unless force is set.
func GenerateConfig(dir, datasetPath string, force bool) (Action, error) {
	path := filepath.Join(dir, config.FileName)

	exists := false
	if !force {
		if _, err := FS.Stat(path); err == nil {
			return Action{
				File:        config.FileName,
				Operation:   "skipped",
				Description: "already exists (use --force to overwrite)",
			}, nil
		} else if !os.IsNotExist(err) {
			return Action{}, fmt.Errorf("checking %s: %w", config.FileName, err)
		}
	} else if _, err := FS.Stat(path); err == nil {
		exists = true
	}

	cfg := config.Default()
	cfg.Dataset = datasetPath
	if err := config.Validate(cfg); err != nil {
		return Action{}, err
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := config.Write(&buf, cfg); err != nil {
		return Action{}, fmt.Errorf("marshaling %s: %w", config.FileName, err)
	}
	if err := FS.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Action{}, fmt.Errorf("writing %s: %w", config.FileName, err)
	}

	if exists {
		return Action{File: config.FileName, Operation: "updated", Description: "regenerated for " + datasetPath}, nil
	}
	return Action{File: config.FileName, Operation: "created", Description: "dataset " + datasetPath}, nil
}
