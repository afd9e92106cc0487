// Package pipeline derives the row subsets each chart is drawn from. Every
// function here is pure: the result depends only on the arguments, preserves
// dataset order, and is never nil.
package pipeline

import (
	"github.com/davetashner/launchdash/internal/dataset"
	"github.com/davetashner/launchdash/internal/selection"
)

// FilterForProportion returns the rows feeding the proportion chart: every
// row for selection.AllSites, otherwise the rows launched from site. The
// payload range does not apply.
func FilterForProportion(ds *dataset.Dataset, site string) []dataset.LaunchRecord {
	return filter(ds, func(r dataset.LaunchRecord) bool {
		return matchesSite(r, site)
	})
}

// FilterForCorrelation returns the rows feeding the correlation chart: rows
// whose payload lies within payload (inclusive) and whose site matches.
func FilterForCorrelation(ds *dataset.Dataset, site string, payload selection.Range) []dataset.LaunchRecord {
	return filter(ds, func(r dataset.LaunchRecord) bool {
		return payload.Contains(r.PayloadMassKg) && matchesSite(r, site)
	})
}

func matchesSite(r dataset.LaunchRecord, site string) bool {
	return site == selection.AllSites || r.Site == site
}

func filter(ds *dataset.Dataset, keep func(dataset.LaunchRecord) bool) []dataset.LaunchRecord {
	out := []dataset.LaunchRecord{}
	if ds == nil {
		return out
	}
	ds.Each(func(r dataset.LaunchRecord) bool {
		if keep(r) {
			out = append(out, r)
		}
		return true
	})
	return out
}
