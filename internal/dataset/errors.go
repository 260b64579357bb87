package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// LoadError is a fatal load failure: the source could not be read or lacks a
// required column. The process cannot serve without a dataset.
type LoadError struct {
	Source  string
	Missing []string
	Err     error
}

func (e *LoadError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("load %s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FieldParseError reports a single cell that could not be interpreted. The
// cell is treated as missing and the row is kept.
type FieldParseError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *FieldParseError) Unwrap() error { return e.Err }

var errMissingValue = errors.New("required value is missing")

// permanentError marks a fetch failure that retrying cannot fix.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func isPermanent(err error) bool {
	var p *permanentError
	if errors.As(err, &p) {
		return true
	}
	var le *LoadError
	return errors.As(err, &le) && len(le.Missing) > 0
}
