package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Columns names the source columns holding the required fields.
type Columns struct {
	Site            string `yaml:"site,omitempty" toml:"site" json:"site"`
	PayloadMass     string `yaml:"payload_mass,omitempty" toml:"payload_mass" json:"payload_mass"`
	Class           string `yaml:"class,omitempty" toml:"class" json:"class"`
	BoosterCategory string `yaml:"booster_category,omitempty" toml:"booster_category" json:"booster_category"`
}

// DefaultColumns returns the column names used by the published launch table.
func DefaultColumns() Columns {
	return Columns{
		Site:            ColumnSite,
		PayloadMass:     ColumnPayloadMass,
		Class:           ColumnClass,
		BoosterCategory: ColumnBoosterCategory,
	}
}

// WithDefaults fills empty names from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.Site == "" {
		c.Site = d.Site
	}
	if c.PayloadMass == "" {
		c.PayloadMass = d.PayloadMass
	}
	if c.Class == "" {
		c.Class = d.Class
	}
	if c.BoosterCategory == "" {
		c.BoosterCategory = d.BoosterCategory
	}
	return c
}

// Load parses a delimited table with a header row. Every failure is returned
// as a *LoadError.
func Load(r io.Reader, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)
	cols := o.columns.WithDefaults()

	reader := csv.NewReader(r)
	reader.Comma = o.delimiter
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Source: o.source, Err: ErrEmptySource}
	}
	if err != nil {
		return nil, readError(o.source, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	idx, err := resolveColumns(o.source, header, cols)
	if err != nil {
		return nil, err
	}

	var records []LaunchRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(o.source, err)
		}
		line, _ := reader.FieldPos(0)
		rec, err := parseRecord(o.source, line, header, row, idx, cols)
		if err != nil {
			return nil, err
		}
		rec.Index = len(records)
		records = append(records, rec)
	}

	return newDataset(o.source, header, cols, records), nil
}

type columnIndex struct {
	site, payload, class, booster int
}

func resolveColumns(source string, header []string, cols Columns) (columnIndex, error) {
	find := func(name string) (int, error) {
		for i, h := range header {
			if h == name {
				return i, nil
			}
		}
		return -1, &LoadError{Source: source, Column: name, Err: ErrMissingColumn}
	}

	var idx columnIndex
	var err error
	if idx.site, err = find(cols.Site); err != nil {
		return idx, err
	}
	if idx.payload, err = find(cols.PayloadMass); err != nil {
		return idx, err
	}
	if idx.class, err = find(cols.Class); err != nil {
		return idx, err
	}
	if idx.booster, err = find(cols.BoosterCategory); err != nil {
		return idx, err
	}
	return idx, nil
}

func parseRecord(source string, line int, header, row []string, idx columnIndex, cols Columns) (LaunchRecord, error) {
	payload, err := ParsePayload(row[idx.payload])
	if err != nil {
		return LaunchRecord{}, &LoadError{
			Source: source, Line: line, Column: cols.PayloadMass,
			Err: fmt.Errorf("%w: %w", ErrMalformedValue, err),
		}
	}

	class, err := ParseClass(row[idx.class])
	if err != nil {
		return LaunchRecord{}, &LoadError{
			Source: source, Line: line, Column: cols.Class,
			Err: fmt.Errorf("%w: %w", ErrMalformedValue, err),
		}
	}

	return LaunchRecord{
		Site:            strings.TrimSpace(row[idx.site]),
		PayloadMassKg:   payload,
		Class:           class,
		BoosterCategory: strings.TrimSpace(row[idx.booster]),
		columns:         header,
		raw:             row,
	}, nil
}

// ParsePayload parses a payload mass cell. Only finite numbers are accepted.
func ParsePayload(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", cell)
	}
	return v, nil
}

// ParseClass accepts 0 and 1, written as integers or floats ("1.0").
func ParseClass(cell string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, err
	}
	switch v {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	default:
		return 0, fmt.Errorf("class must be 0 or 1, got %q", cell)
	}
}

func readError(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &LoadError{
			Source: source, Line: pe.Line,
			Err: fmt.Errorf("%w: %w", ErrMalformedValue, pe.Err),
		}
	}
	return &LoadError{Source: source, Err: fmt.Errorf("%w: %w", ErrUnreadable, err)}
}
