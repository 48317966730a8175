// =============================================================================
// Packing Slip Generator - Date Normalizer
// =============================================================================
//
// Rewrites a fixed set of date columns into MM/DD/YYYY text. The loader keeps
// every cell as text, so a date column can hold any of:
//
//   | Source cell                  | Loader text            | Normalized  |
//   |------------------------------|------------------------|-------------|
//   | Excel date cell              | 2024-01-15 00:00:00    | 01/15/2024  |
//   | Number cell                  | 2024                   | 01/01/2024  |
//   | Text cell, ISO               | 2024-01-15             | 01/15/2024  |
//   | Text cell, with time         | 2024-01-15 00:00:00    | 01/15/2024  |
//   | Text cell, already normal    | 01/15/2024             | 01/15/2024  |
//   | Blank / NaN                  | ""                     | ""          |
//
// Normalizing is idempotent, so it is safe to run on the whole table and again
// on each order group.
//
// =============================================================================

package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/ginjaninja78/packing-slips/internal/types"
)

// Layout is the canonical output format (MM/DD/YYYY).
const Layout = "01/02/2006"

// DefaultColumns are the date-valued columns of the order spreadsheet.
var DefaultColumns = []string{"Invoice_Date", "SO_Date", "Date_Paid", "Ship_Date"}

// FormatError reports date text that could not be parsed.
type FormatError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("column %s, row %d: cannot parse date %q: %v", e.Column, e.Row+1, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Normalize rewrites every present date column of rows in place.
//
// Columns that no row carries are skipped. The first unparseable value stops
// the pass and is returned as a *FormatError; rows before it have already
// been rewritten.
func Normalize(rows []types.Row, columns []string) error {
	for _, column := range columns {
		for i, row := range rows {
			value, ok := row[column]
			if !ok {
				continue
			}

			formatted, err := Format(value)
			if err != nil {
				return &FormatError{Column: column, Row: i, Value: value, Err: err}
			}
			row[column] = formatted
		}
	}
	return nil
}

// Format converts a single date cell to MM/DD/YYYY.
// Blank and NaN cells come back empty.
func Format(value string) (string, error) {
	value = strings.TrimSpace(value)
	if isBlank(value) {
		return "", nil
	}

	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

// Parse interprets date text in any layout dateparse recognizes
// (month-first for ambiguous numeric dates).
func Parse(value string) (time.Time, error) {
	return dateparse.ParseAny(value)
}

func isBlank(value string) bool {
	switch strings.ToLower(value) {
	case "", "nan", "nat", "none", "null":
		return true
	}
	return false
}
