package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the ingest functions. Callers match them with errors.Is.
var (
	// ErrFileType is returned when the input does not carry a .csv extension.
	ErrFileType = errors.New("input file must be .csv")
	// ErrStructuralMismatch is returned when the column layout does not agree with
	// the inferred signal and series counts.
	ErrStructuralMismatch = errors.New("column layout does not match inferred signal/series count")
	// ErrAlignment is returned when summary output rows cannot be attached to a sweep point.
	ErrAlignment = errors.New("summary rows do not align with sweep points")
)

// ParseError reports a cell or header that could not be decoded.
type ParseError struct {
	Row    int // 1-based line in the source file, 0 for header labels
	Column string
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("line %d, column %q: cannot parse %q: %v", e.Row, e.Column, e.Text, e.Err)
	}
	return fmt.Sprintf("column %q: cannot parse %q: %v", e.Column, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Param is one name=value assignment embedded in a column label.
type Param struct {
	Name  string
	Value float64
}

// TextTable is a column-major table of raw, undecoded cells.
type TextTable struct {
	Names   []string
	Columns [][]string
}

// Summary export column names.
const (
	PointColumn   = "Point"
	OutputColumn  = "Output"
	NominalColumn = "Nominal"
)
