// Package dataset loads the launch-record table once at startup and exposes
// read-only queries over it.
package dataset

import "slices"

// Default source column names for the required fields.
const (
	ColumnSite            = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnClass           = "class"
	ColumnBoosterCategory = "Booster Version Category"
)

// LaunchRecord is one row of the dataset. Records are values; the passthrough
// fields are only reachable through accessors that return copies.
type LaunchRecord struct {
	Index           int     `json:"index"`
	Site            string  `json:"site"`
	PayloadMassKg   float64 `json:"payload_mass_kg"`
	Class           int     `json:"class"`
	BoosterCategory string  `json:"booster_category"`

	columns []string
	raw     []string
}

// Raw returns a copy of the row's original cell values in source column order.
func (r LaunchRecord) Raw() []string {
	return slices.Clone(r.raw)
}

// Field returns the raw cell for the named source column.
func (r LaunchRecord) Field(name string) (string, bool) {
	for i, c := range r.columns {
		if c == name && i < len(r.raw) {
			return r.raw[i], true
		}
	}
	return "", false
}

// Dataset is the immutable, ordered set of launch records plus the payload
// bounds computed at load time.
type Dataset struct {
	source     string
	columns    []string
	mapping    Columns
	records    []LaunchRecord
	minPayload float64
	maxPayload float64
	sites      []string
}

func newDataset(source string, columns []string, mapping Columns, records []LaunchRecord) *Dataset {
	ds := &Dataset{
		source:  source,
		columns: columns,
		mapping: mapping,
		records: records,
	}
	seen := make(map[string]bool)
	for i, r := range records {
		if i == 0 || r.PayloadMassKg < ds.minPayload {
			ds.minPayload = r.PayloadMassKg
		}
		if i == 0 || r.PayloadMassKg > ds.maxPayload {
			ds.maxPayload = r.PayloadMassKg
		}
		if !seen[r.Site] {
			seen[r.Site] = true
			ds.sites = append(ds.sites, r.Site)
		}
	}
	return ds
}

// Source returns the label of the source the dataset was read from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in source order.
func (d *Dataset) Records() []LaunchRecord {
	return slices.Clone(d.records)
}

// Each calls fn for every record in source order until fn returns false.
func (d *Dataset) Each(fn func(LaunchRecord) bool) {
	for _, r := range d.records {
		if !fn(r) {
			return
		}
	}
}

// Columns returns a copy of the source header.
func (d *Dataset) Columns() []string {
	return slices.Clone(d.columns)
}

// Mapping returns the column names used for the required fields.
func (d *Dataset) Mapping() Columns { return d.mapping }

// DistinctSites returns the site values in first-seen order.
func (d *Dataset) DistinctSites() []string {
	return slices.Clone(d.sites)
}

// HasSite reports whether any record was launched from site.
func (d *Dataset) HasSite(site string) bool {
	return slices.Contains(d.sites, site)
}

// PayloadBounds returns the minimum and maximum payload mass. An empty
// dataset reports (0, 0).
func (d *Dataset) PayloadBounds() (float64, float64) {
	return d.minPayload, d.maxPayload
}

// SiteCounts returns the number of records per site.
func (d *Dataset) SiteCounts() map[string]int {
	counts := make(map[string]int, len(d.sites))
	for _, r := range d.records {
		counts[r.Site]++
	}
	return counts
}
