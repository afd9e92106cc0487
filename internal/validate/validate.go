// Package validate checks a launch records table row by row. Loading stops
// at the first bad cell; validation keeps going and reports every problem
// with a suggested fix.
package validate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/launchdash/internal/dataset"
)

// MaxErrors caps the number of errors collected before validation stops.
const MaxErrors = 100

// ValidationError represents a single validation issue on a specific line.
type ValidationError struct {
	Line       int    // 1-based line number, 0 for file-level problems
	Column     string // column name (empty if line-level error)
	Message    string // what's wrong
	Suggestion string // how to fix it
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Result contains the outcome of validating a table.
type Result struct {
	TotalRows int
	Sites     []string // distinct non-empty sites in first-seen order
	Errors    []ValidationError
	Truncated bool // true when MaxErrors was reached
}

// Valid returns true if no errors were found.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Options selects the delimiter and column mapping. Zero values mean a comma
// and the default column names.
type Options struct {
	Delimiter rune
	Columns   dataset.Columns
}

// Validate reads a delimited table from r and checks the header and every
// row against the loader's rules, plus non-empty site and booster cells.
func Validate(r io.Reader, opts Options) *Result {
	result := &Result{}
	cols := opts.Columns.WithDefaults()

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		result.add(ValidationError{
			Message:    "file is empty",
			Suggestion: "add a header row naming the columns",
		})
		return result
	}
	if err != nil {
		result.add(ValidationError{Line: 1, Message: fmt.Sprintf("unreadable header: %v", err)})
		return result
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	idx, ok := checkHeader(header, cols, result)
	if !ok {
		return result
	}

	seen := map[string]bool{}
	for !result.Truncated {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				result.add(ValidationError{Message: fmt.Sprintf("read failed: %v", err)})
				break
			}
			suggestion := "check quoting on this line"
			if errors.Is(pe.Err, csv.ErrFieldCount) {
				suggestion = fmt.Sprintf("every row needs %d fields to match the header", len(header))
			}
			result.TotalRows++
			result.add(ValidationError{Line: pe.Line, Message: pe.Err.Error(), Suggestion: suggestion})
			continue
		}
		result.TotalRows++
		line, _ := reader.FieldPos(0)
		checkRow(line, row, idx, cols, result)

		if site := strings.TrimSpace(row[idx.site]); site != "" && !seen[site] {
			seen[site] = true
			result.Sites = append(result.Sites, site)
		}
	}
	return result
}

type columnIndex struct {
	site, payload, class, booster int
}

// checkHeader reports every missing required column.
func checkHeader(header []string, cols dataset.Columns, result *Result) (columnIndex, bool) {
	find := func(key, name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		result.add(ValidationError{
			Line:       1,
			Column:     name,
			Message:    fmt.Sprintf("missing required column %q", name),
			Suggestion: fmt.Sprintf("rename the column or set columns.%s in .launchdash.yaml", key),
		})
		return -1
	}

	idx := columnIndex{
		site:    find("site", cols.Site),
		payload: find("payload_mass", cols.PayloadMass),
		class:   find("class", cols.Class),
		booster: find("booster_category", cols.BoosterCategory),
	}
	return idx, result.Valid()
}

func checkRow(line int, row []string, idx columnIndex, cols dataset.Columns, result *Result) {
	if strings.TrimSpace(row[idx.site]) == "" {
		result.add(ValidationError{
			Line:       line,
			Column:     cols.Site,
			Message:    "empty launch site",
			Suggestion: "rows without a site cannot be selected from the dropdown",
		})
	}
	if _, err := dataset.ParsePayload(row[idx.payload]); err != nil {
		result.add(ValidationError{
			Line:       line,
			Column:     cols.PayloadMass,
			Message:    fmt.Sprintf("payload mass %q is not a number", row[idx.payload]),
			Suggestion: "use a plain number of kilograms, e.g. 2490 or 2490.0",
		})
	}
	if _, err := dataset.ParseClass(row[idx.class]); err != nil {
		result.add(ValidationError{
			Line:       line,
			Column:     cols.Class,
			Message:    fmt.Sprintf("class %q is not 0 or 1", row[idx.class]),
			Suggestion: "use 1 for a successful launch and 0 for a failure",
		})
	}
	if strings.TrimSpace(row[idx.booster]) == "" {
		result.add(ValidationError{
			Line:       line,
			Column:     cols.BoosterCategory,
			Message:    "empty booster version category",
			Suggestion: "the scatter chart colors points by this value",
		})
	}
}

func (r *Result) add(e ValidationError) {
	if len(r.Errors) >= MaxErrors {
		r.Truncated = true
		return
	}
	r.Errors = append(r.Errors, e)
}
