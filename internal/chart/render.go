package chart

import (
	"slices"
	"strconv"

	"github.com/davetashner/launchdash/internal/dataset"
	"github.com/davetashner/launchdash/internal/selection"
)

// Renderer builds chart specs, labelling channels with the dataset's column
// names.
type Renderer struct {
	Columns dataset.Columns
}

// DefaultRenderer labels channels with the published column names.
var DefaultRenderer = Renderer{Columns: dataset.DefaultColumns()}

// Proportion renders the share of each outcome class among rows with
// DefaultRenderer.
func Proportion(site string, rows []dataset.LaunchRecord) Spec {
	return DefaultRenderer.Proportion(site, rows)
}

// Correlation renders payload against outcome among rows with
// DefaultRenderer.
func Correlation(site string, rows []dataset.LaunchRecord) Spec {
	return DefaultRenderer.Correlation(site, rows)
}

// ProportionTitle is the pie chart title for the selected site.
func ProportionTitle(site string) string {
	if site == selection.AllSites {
		return "Total Successful Launches for all sites"
	}
	return "Total Successful Launches for site " + site
}

// CorrelationTitle is the scatter chart title for the selected site. The site
// value is substituted verbatim, so the all-sites title ends in "for ALL".
func CorrelationTitle(site string) string {
	return "Correlation between Payload and Success for " + site
}

// Proportion groups rows by outcome class and renders one slice per class
// present, in ascending class order.
func (r Renderer) Proportion(site string, rows []dataset.LaunchRecord) Spec {
	spec := Spec{
		Kind:     KindPie,
		Title:    ProportionTitle(site),
		Encoding: Encoding{Names: r.Columns.Class},
		RowCount: len(rows),
		Slices:   []Slice{},
	}
	if len(rows) == 0 {
		return empty(spec)
	}

	counts := make(map[int]int, 2)
	for _, row := range rows {
		counts[row.Class]++
	}
	classes := make([]int, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	slices.Sort(classes)

	for _, c := range classes {
		spec.Slices = append(spec.Slices, Slice{
			Label:    strconv.Itoa(c),
			Class:    c,
			Count:    counts[c],
			Fraction: float64(counts[c]) / float64(len(rows)),
		})
	}
	return spec
}

// Correlation renders one point per row (x = payload mass, y = class), with
// one series per booster category in first-seen order.
func (r Renderer) Correlation(site string, rows []dataset.LaunchRecord) Spec {
	spec := Spec{
		Kind:  KindScatter,
		Title: CorrelationTitle(site),
		Encoding: Encoding{
			X:     r.Columns.PayloadMass,
			Y:     r.Columns.Class,
			Color: r.Columns.BoosterCategory,
		},
		RowCount: len(rows),
		Series:   []Series{},
	}
	if len(rows) == 0 {
		return empty(spec)
	}

	pos := make(map[string]int)
	for _, row := range rows {
		i, ok := pos[row.BoosterCategory]
		if !ok {
			i = len(spec.Series)
			pos[row.BoosterCategory] = i
			spec.Series = append(spec.Series, Series{Name: row.BoosterCategory})
		}
		spec.Series[i].Points = append(spec.Series[i].Points, Point{
			X:     row.PayloadMassKg,
			Y:     float64(row.Class),
			Index: row.Index,
		})
	}
	return spec
}

func empty(spec Spec) Spec {
	spec.Empty = true
	spec.Placeholder = NoDataPlaceholder
	return spec
}
