package bootstrap

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/davetashner/launchdash/internal/dataset"
)

// Candidate is a CSV file that loads as a launch records table.
type Candidate struct {
	Path  string
	Rows  int
	Sites int
}

// DetectDatasets returns the CSV files directly inside dir that load with the
// default column mapping, in name order. Files that fail to load are skipped.
func DetectDatasets(dir string) ([]Candidate, error) {
	entries, err := FS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var out []Candidate
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		c, err := inspect(filepath.Join(dir, e.Name()))
		if err != nil {
			slog.Debug("skipping csv", "path", e.Name(), "error", err)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func inspect(path string) (Candidate, error) {
	ds, err := dataset.LoadFile(path, dataset.WithFileSystem(FS))
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Path: path, Rows: ds.Len(), Sites: len(ds.DistinctSites())}, nil
}
