// =============================================================================
// Packing Slip Generator - Shared Types
// =============================================================================
//
// This package contains the tabular types shared by the loader, the date
// normalizer, and the order aggregator. Keeping them here avoids import
// cycles between:
//   - sheet
//   - dates
//   - order
//
// =============================================================================

package types

// =============================================================================
// TABLE TYPES
// =============================================================================

// Row is a single spreadsheet record.
// Key is the column header, value is the cell text. Every value is kept as
// text; numeric and date interpretation happens downstream.
type Row map[string]string

// Get returns the cell value for a column and whether the column exists.
func (r Row) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// Table is an in-memory spreadsheet.
type Table struct {
	// Headers are the column names, in sheet order.
	Headers []string

	// Rows contains every data row, in sheet order.
	Rows []Row

	// SourceFile is the path the table was loaded from.
	SourceFile string
}

// HasColumn reports whether the table has a column with the given header.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
