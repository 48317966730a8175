package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// dateCellLayout is the text a date-formatted cell is rewritten to.
const dateCellLayout = "2006-01-02 15:04:05"

// readWorkbook returns every row of one worksheet as raw cell text.
//
// RawCellValue keeps excelize from applying number formats, so "1,234.50"
// style display text never reaches the aggregator. Cells whose number format
// is a date format are the exception: their serial value is converted with
// the workbook's date system and returned as dateCellLayout text.
func readWorkbook(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	dates := newDateCells(f, sheetName)
	for r, row := range rows {
		for c, value := range row {
			text, ok, err := dates.convert(r, c, value)
			if err != nil {
				return nil, err
			}
			if ok {
				row[c] = text
			}
		}
	}

	return rows, nil
}

// =============================================================================
// DATE CELLS
// =============================================================================

// dateCells recognizes numeric cells that Excel displays as dates.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool

	// styles caches whether a style ID carries a date number format.
	styles map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// convert returns the date text of the cell at zero-based row r, column c,
// and false when the cell is not a date cell.
func (d *dateCells) convert(r, c int, value string) (string, bool, error) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", false, nil
	}

	cell, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return "", false, err
	}
	styleID, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil {
		return "", false, fmt.Errorf("failed to read style of %s: %w", cell, err)
	}
	if !d.isDateStyle(styleID) {
		return "", false, nil
	}

	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false, fmt.Errorf("cell %s: %w", cell, err)
	}
	return t.Format(dateCellLayout), true, nil
}

func (d *dateCells) isDateStyle(styleID int) bool {
	if isDate, ok := d.styles[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := d.f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = isBuiltInDateFormat(style.NumFmt)
		}
	}
	d.styles[styleID] = isDate
	return isDate
}

// isBuiltInDateFormat reports whether a built-in number format ID is a date
// or time format.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code renders a date.
// Quoted literals, bracketed sections and escaped characters are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ydhs")
}
