// =============================================================================
// Packing Slip Generator - Tabular Data Loader
// =============================================================================
//
// This module reads the order spreadsheet into an in-memory table in which
// every cell is text. Nothing is auto-typed: numbers keep their source text.
// Workbook cells formatted as dates are the one exception; they are read as
// "2006-01-02 15:04:05" text in the workbook's date system (1900 or 1904), so
// a plain number such as 2024 is never mistaken for a serial date.
//
// SUPPORTED INPUTS:
//   - .xlsx / .xlsm : read with excelize, first sheet unless Options.Sheet
//   - .csv          : read with encoding/csv
//
// TABLE LAYOUT:
//   Row 1 is the header row. Every following non-blank row is a record.
//
//   | Order_number | Order_Unit | Pack | Vol  | Total_WT | Item_no | ... |
//   |--------------|------------|------|------|----------|---------|-----|
//   | 1001         | 3          | 4    | 1.25 | 10.5     | MJ-100  | ... |
//
// =============================================================================

package sheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/packing-slips/internal/types"
)

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("spreadsheet has no header row")

// LoadError reports a spreadsheet that could not be opened or read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Options controls how a spreadsheet is read.
type Options struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	// Ignored for CSV input.
	Sheet string
}

// =============================================================================
// LOADER
// =============================================================================

// Load reads the spreadsheet at path into a Table.
//
// PARAMETERS:
//   - path: The .xlsx, .xlsm or .csv file to read.
//   - opts: Sheet selection.
//
// RETURNS:
//   - The table, with one Row per non-blank data row.
//   - A *LoadError if the file is missing or unreadable, or one wrapping
//     ErrNoHeader if there is no header row.
func Load(path string, opts Options) (*types.Table, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = readCSV(path)
	default:
		records, err = readWorkbook(path, opts.Sheet)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	table, err := buildTable(records)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	table.SourceFile = path

	return table, nil
}

// buildTable turns raw records into a Table using the first record as the
// header row.
func buildTable(records [][]string) (*types.Table, error) {
	if len(records) == 0 || isRowEmpty(records[0]) {
		return nil, ErrNoHeader
	}

	headers := cleanHeaders(records[0])
	rows := make([]types.Row, 0, len(records)-1)

	for _, record := range records[1:] {
		if isRowEmpty(record) {
			continue
		}

		row := make(types.Row, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return &types.Table{Headers: headers, Rows: rows}, nil
}

// cleanHeaders trims header names and gives blank headers a positional name.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
