// Package report renders per-site launch outcome summaries as aligned
// terminal tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/davetashner/launchdash/internal/dataset"
	"github.com/davetashner/launchdash/internal/pipeline"
	"github.com/davetashner/launchdash/internal/selection"
)

// Summary is the outcome breakdown of a whole dataset.
type Summary struct {
	Dataset   string                 `json:"dataset"`
	Generated string                 `json:"generated"`
	Sites     []pipeline.SiteSummary `json:"sites"`
	Total     pipeline.SiteSummary   `json:"total"`
}

// Build summarizes ds per site, in dataset order, plus the all-sites total.
func Build(ds *dataset.Dataset, now time.Time) Summary {
	all := pipeline.SummarizeSites(ds)
	return Summary{
		Dataset:   ds.Source(),
		Generated: now.UTC().Format(time.RFC3339),
		Sites:     all[:len(all)-1],
		Total:     all[len(all)-1],
	}
}

// siteJSON adds the derived success rate to a site summary.
type siteJSON struct {
	pipeline.SiteSummary
	SuccessRate float64 `json:"success_rate"`
}

// RenderJSON writes the summary as machine-readable JSON.
func RenderJSON(s Summary, w io.Writer) error {
	sites := make([]siteJSON, len(s.Sites))
	for i, site := range s.Sites {
		sites[i] = siteJSON{SiteSummary: site, SuccessRate: site.SuccessRate()}
	}
	out := struct {
		Dataset   string     `json:"dataset"`
		Generated string     `json:"generated"`
		Sites     []siteJSON `json:"sites"`
		Total     siteJSON   `json:"total"`
	}{
		Dataset:   s.Dataset,
		Generated: s.Generated,
		Sites:     sites,
		Total:     siteJSON{SiteSummary: s.Total, SuccessRate: s.Total.SuccessRate()},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// RenderTable writes the summary as an aligned table with a totals row.
func RenderTable(s Summary, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n  dataset: %s\n\n", SectionTitle("Launch outcomes by site"), s.Dataset); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	tbl := NewTable(
		Column{Header: "Site"},
		Column{Header: "Launches", Align: AlignRight},
		Column{Header: "Successes", Align: AlignRight},
		Column{Header: "Failures", Align: AlignRight, Color: ColorFailures},
		Column{Header: "Success rate", Align: AlignRight, Color: ColorSuccessRate},
		Column{Header: "Payload min (kg)", Align: AlignRight},
		Column{Header: "Payload max (kg)", Align: AlignRight},
	)
	for _, site := range s.Sites {
		tbl.AddRow(row(site.Site, site)...)
	}
	tbl.SetFooter(row(selection.AllSitesLabel, s.Total)...)
	return tbl.Render(w)
}

func row(label string, s pipeline.SiteSummary) []string {
	return []string{
		label,
		strconv.Itoa(s.Launches),
		strconv.Itoa(s.Successes),
		strconv.Itoa(s.Failures),
		fmt.Sprintf("%.1f%%", s.SuccessRate()*100),
		strconv.FormatFloat(s.MinPayload, 'f', -1, 64),
		strconv.FormatFloat(s.MaxPayload, 'f', -1, 64),
	}
}
