package dataset

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by LoadError.
var (
	// ErrMissingColumn means a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMalformedValue means a required cell could not be parsed.
	ErrMalformedValue = errors.New("malformed value")

	// ErrEmptySource means the source had no header row.
	ErrEmptySource = errors.New("empty source")

	// ErrUnreadable means the source could not be opened or read.
	ErrUnreadable = errors.New("unreadable source")
)

// LoadError reports why a dataset could not be loaded. It is fatal at startup.
type LoadError struct {
	Source string
	Line   int    // 1-based source line, 0 when not row-specific
	Column string // offending column, if any
	Err    error
}

func (e *LoadError) Error() string {
	msg := "load dataset"
	if e.Source != "" {
		msg += " " + e.Source
	}
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("%s: line %d: column %q: %v", msg, e.Line, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %v", msg, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %v", msg, e.Line, e.Err)
	default:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }
