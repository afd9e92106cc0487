// Package chart turns filtered launch records into renderer-agnostic chart
// specifications. Renderers are pure and total: any row slice, including an
// empty one, yields a valid Spec.
package chart

import "slices"

// Kind identifies the chart type.
type Kind string

// Chart kinds.
const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// NoDataPlaceholder is shown in place of an empty chart.
const NoDataPlaceholder = "No data"

// Encoding names the source columns bound to each visual channel.
type Encoding struct {
	Names string `json:"names,omitempty"` // pie slice category
	X     string `json:"x,omitempty"`
	Y     string `json:"y,omitempty"`
	Color string `json:"color,omitempty"`
}

// Slice is one wedge of a pie chart.
type Slice struct {
	Label    string  `json:"label"`
	Class    int     `json:"class"`
	Count    int     `json:"count"`
	Fraction float64 `json:"fraction"`
}

// Point is one scatter mark. Index is the record's position in the dataset.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Index int     `json:"index"`
}

// Series is the set of points sharing one color category.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Spec describes one chart independently of any plotting library.
type Spec struct {
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	Encoding    Encoding `json:"encoding"`
	RowCount    int      `json:"row_count"`
	Empty       bool     `json:"empty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Slices      []Slice  `json:"slices,omitempty"`
	Series      []Series `json:"series,omitempty"`
}

// Clone returns a deep copy of s.
func (s Spec) Clone() Spec {
	s.Slices = slices.Clone(s.Slices)
	if s.Series != nil {
		series := make([]Series, len(s.Series))
		for i, ser := range s.Series {
			series[i] = Series{Name: ser.Name, Points: slices.Clone(ser.Points)}
		}
		s.Series = series
	}
	return s
}
