package order

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount formats a count with thousands separators and no decimals.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatDecimal formats a weight, volume or amount with thousands separators
// and two decimals.
func FormatDecimal(f float64) string {
	if f == 0 {
		// avoid "-0.00"
		f = 0
	}
	return printer.Sprintf("%.2f", f)
}

// parseOptionalFloat parses a measurement cell. Blank and NaN cells count as
// zero; anything else must be a number.
func parseOptionalFloat(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if isMissing(value) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	return f, nil
}

// isMissing reports whether a cell holds no value.
func isMissing(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}
