package dataset

import (
	"fmt"
	"strings"
)

// LoadError reports a season table that could not be opened or read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports required columns missing from the header row.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column(s): %s", e.Path, strings.Join(e.Missing, ", "))
}

// MalformedRecordError reports a field that failed numeric parsing.
type MalformedRecordError struct {
	Path   string
	Line   int
	Player string
	Field  string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: malformed %s %q for %q: %v", e.Path, e.Line, e.Field, e.Value, e.Player, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
