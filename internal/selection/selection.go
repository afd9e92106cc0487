// Package selection holds the user-controlled inputs of the dashboard: the
// selected launch site and the payload mass range, plus the bounds of the
// controls that produce them.
package selection

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/davetashner/launchdash/internal/dataset"
)

// AllSites is the dropdown value meaning "no site filter".
const AllSites = "ALL"

// AllSitesLabel is the dropdown label for AllSites.
const AllSitesLabel = "All Sites"

// Range control defaults.
const (
	DefaultStep     = 1000.0
	DefaultMarkStep = 10000.0

	// MaxMarks bounds the labelled ticks on the range control. Wider
	// payload ranges get a coarser mark step.
	MaxMarks = 50
)

var (
	// ErrUnknownSite means the site is neither AllSites nor in the site list.
	ErrUnknownSite = errors.New("unknown launch site")

	// ErrInvalidRange means a range endpoint is not a finite number.
	ErrInvalidRange = errors.New("invalid payload range")
)

// Range is an inclusive payload mass interval in kilograms.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether v lies within [Low, High].
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Low, r.High)
}

// State is the current selection.
type State struct {
	Site    string `json:"site"`
	Payload Range  `json:"payload"`
}

// IsAllSites reports whether the state selects every site.
func (s State) IsAllSites() bool { return s.Site == AllSites }

// Mark is a labelled tick on the range control.
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Domain describes the selection controls for one dataset: the dropdown
// options and the range control's bounds.
type Domain struct {
	Sites      []string `json:"sites"`
	PayloadMin float64  `json:"payload_min"` // dataset minimum
	PayloadMax float64  `json:"payload_max"` // dataset maximum
	SliderMin  float64  `json:"slider_min"`
	SliderMax  float64  `json:"slider_max"`
	Step       float64  `json:"step"`
	Marks      []Mark   `json:"marks"`
}

// NewDomain derives the control bounds from a dataset. The range control
// starts at zero (or lower, if the data does) and ends at the maximum payload.
func NewDomain(ds *dataset.Dataset) Domain {
	lo, hi := ds.PayloadBounds()
	d := Domain{
		Sites:      ds.DistinctSites(),
		PayloadMin: lo,
		PayloadMax: hi,
		SliderMin:  math.Min(0, lo),
		SliderMax:  hi,
		Step:       DefaultStep,
	}
	d.Marks = marks(d.SliderMax, DefaultMarkStep)
	return d
}

// marks labels every step from 0 through max+DefaultStep. When that would
// exceed MaxMarks, the step grows to a multiple of the default.
func marks(max, step float64) []Mark {
	end := max + DefaultStep
	if n := end / step; n > MaxMarks {
		step *= math.Ceil(n / MaxMarks)
	}
	out := []Mark{}
	for i := 0; i < MaxMarks; i++ {
		v := float64(i) * step
		if v >= end {
			break
		}
		out = append(out, Mark{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return out
}

// Clone returns a copy of d that shares no slices with it.
func (d Domain) Clone() Domain {
	d.Sites = slices.Clone(d.Sites)
	d.Marks = slices.Clone(d.Marks)
	return d
}

// Default returns the initial selection: every site, the full payload range.
func (d Domain) Default() State {
	return State{
		Site:    AllSites,
		Payload: Range{Low: d.PayloadMin, High: d.PayloadMax},
	}
}

// HasSite reports whether site is a valid dropdown value.
func (d Domain) HasSite(site string) bool {
	return site == AllSites || slices.Contains(d.Sites, site)
}

// NormalizeSite maps the cleared dropdown ("") to AllSites and rejects
// values that are not options.
func (d Domain) NormalizeSite(site string) (string, error) {
	if site == "" {
		return AllSites, nil
	}
	if !d.HasSite(site) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSite, site)
	}
	return site, nil
}

// Clamp forces r into the slider bounds and orders its endpoints.
func (d Domain) Clamp(r Range) (Range, error) {
	if !finite(r.Low) || !finite(r.High) {
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	if r.Low > r.High {
		r.Low, r.High = r.High, r.Low
	}
	r.Low = clamp(r.Low, d.SliderMin, d.SliderMax)
	r.High = clamp(r.High, d.SliderMin, d.SliderMax)
	return r, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
