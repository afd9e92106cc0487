package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/davetashner/launchdash/internal/dataset"
	"github.com/davetashner/launchdash/internal/selection"
)

// WriteCSV writes rows with the dataset's original header and cell text, so
// an export can be reloaded as a dataset.
func WriteCSV(w io.Writer, header []string, rows []dataset.LaunchRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := writer.Write(r.Raw()); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.Index, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSVFilename names an export of the given selection.
func CSVFilename(sel selection.State, now time.Time) string {
	site := "all-sites"
	if !sel.IsAllSites() {
		site = slug(sel.Site)
	}
	return fmt.Sprintf("launches-%s-%s.csv", site, now.UTC().Format("20060102T150405Z"))
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
