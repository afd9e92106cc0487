package output

import (
	"fmt"
	"io"
	"math"

	"github.com/davetashner/launchdash/internal/chart"
	"github.com/davetashner/launchdash/internal/controller"
	"github.com/davetashner/launchdash/internal/selection"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes a snapshot as a human-readable Markdown summary.
type MarkdownFormatter struct {
	// Heading is the document title. Empty means DefaultHeading.
	Heading string
}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes snap as a Markdown document to w.
//
// The output includes:
//   - A title heading and the current selection
//   - The proportion chart as a class/count table
//   - The correlation chart as one row per booster category
func (m *MarkdownFormatter) Format(snap controller.Snapshot, w io.Writer) error {
	heading := m.Heading
	if heading == "" {
		heading = DefaultHeading
	}
	if err := writeHeader(w, heading, snap.Selection); err != nil {
		return err
	}
	if err := writeProportion(w, snap.Proportion); err != nil {
		return err
	}
	return writeCorrelation(w, snap.Correlation)
}

// writeHeader writes the Markdown title and selection line.
func writeHeader(w io.Writer, heading string, sel selection.State) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", heading); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	site := sel.Site
	if sel.IsAllSites() {
		site = selection.AllSitesLabel
	}
	if _, err := fmt.Fprintf(w, "**Site:** %s | **Payload range (kg):** %s\n\n", site, sel.Payload); err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	return nil
}

// writeProportion writes the pie chart as a table.
func writeProportion(w io.Writer, spec chart.Spec) error {
	if _, err := fmt.Fprintf(w, "## %s\n\n", spec.Title); err != nil {
		return fmt.Errorf("write proportion heading: %w", err)
	}
	if spec.Empty {
		return writePlaceholder(w, spec)
	}
	if _, err := fmt.Fprintf(w, "| Class | Launches | Share |\n|-------|----------|-------|\n"); err != nil {
		return fmt.Errorf("write proportion table: %w", err)
	}
	for _, s := range spec.Slices {
		if _, err := fmt.Fprintf(w, "| %s | %d | %s |\n", s.Label, s.Count, percent(s.Fraction)); err != nil {
			return fmt.Errorf("write proportion table: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return fmt.Errorf("write proportion table: %w", err)
	}
	return nil
}

// writeCorrelation writes the scatter chart as one row per series.
func writeCorrelation(w io.Writer, spec chart.Spec) error {
	if _, err := fmt.Fprintf(w, "## %s\n\n", spec.Title); err != nil {
		return fmt.Errorf("write correlation heading: %w", err)
	}
	if spec.Empty {
		return writePlaceholder(w, spec)
	}
	if _, err := fmt.Fprintf(w, "| %s | Launches | Successes | Payload min (kg) | Payload max (kg) |\n", spec.Encoding.Color); err != nil {
		return fmt.Errorf("write correlation table: %w", err)
	}
	if _, err := fmt.Fprintf(w, "|---|---|---|---|---|\n"); err != nil {
		return fmt.Errorf("write correlation table: %w", err)
	}
	for _, s := range spec.Series {
		st := seriesStats(s)
		if _, err := fmt.Fprintf(w, "| %s | %d | %d | %g | %g |\n", s.Name, len(s.Points), st.successes, st.min, st.max); err != nil {
			return fmt.Errorf("write correlation table: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return fmt.Errorf("write correlation table: %w", err)
	}
	return nil
}

func writePlaceholder(w io.Writer, spec chart.Spec) error {
	if _, err := fmt.Fprintf(w, "_%s_\n\n", spec.Placeholder); err != nil {
		return fmt.Errorf("write placeholder: %w", err)
	}
	return nil
}

type stats struct {
	successes int
	min, max  float64
}

func seriesStats(s chart.Series) stats {
	st := stats{min: math.Inf(1), max: math.Inf(-1)}
	for _, p := range s.Points {
		if p.Y == 1 {
			st.successes++
		}
		st.min = math.Min(st.min, p.X)
		st.max = math.Max(st.max, p.X)
	}
	if len(s.Points) == 0 {
		st.min, st.max = 0, 0
	}
	return st
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
