package pipeline

import (
	"github.com/davetashner/launchdash/internal/dataset"
	"github.com/davetashner/launchdash/internal/selection"
)

// CountByClass counts rows per outcome class.
func CountByClass(rows []dataset.LaunchRecord) map[int]int {
	counts := make(map[int]int, 2)
	for _, r := range rows {
		counts[r.Class]++
	}
	return counts
}

// SiteSummary aggregates the outcomes of one site (or of all sites).
type SiteSummary struct {
	Site       string  `json:"site"`
	Launches   int     `json:"launches"`
	Successes  int     `json:"successes"`
	Failures   int     `json:"failures"`
	MinPayload float64 `json:"min_payload_kg"`
	MaxPayload float64 `json:"max_payload_kg"`
}

// SuccessRate returns Successes/Launches, or 0 with no launches.
func (s SiteSummary) SuccessRate() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Launches)
}

// Summarize aggregates rows under the given site label.
func Summarize(site string, rows []dataset.LaunchRecord) SiteSummary {
	s := SiteSummary{Site: site}
	for i, r := range rows {
		s.Launches++
		if r.Class == 1 {
			s.Successes++
		} else {
			s.Failures++
		}
		if i == 0 || r.PayloadMassKg < s.MinPayload {
			s.MinPayload = r.PayloadMassKg
		}
		if i == 0 || r.PayloadMassKg > s.MaxPayload {
			s.MaxPayload = r.PayloadMassKg
		}
	}
	return s
}

// SummarizeSites returns one summary per site in first-seen order, followed
// by the all-sites total.
func SummarizeSites(ds *dataset.Dataset) []SiteSummary {
	sites := ds.DistinctSites()
	out := make([]SiteSummary, 0, len(sites)+1)
	for _, site := range sites {
		out = append(out, Summarize(site, FilterForProportion(ds, site)))
	}
	return append(out, Summarize(selection.AllSites, FilterForProportion(ds, selection.AllSites)))
}
