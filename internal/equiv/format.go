package equiv

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Magnitude boundaries for abbreviated formatting.
const (
	millionThreshold = 1_000_000
	billionThreshold = 1_000_000_000
)

//nolint:gochecknoglobals // shared printer avoids re-parsing the locale per call
var printer = message.NewPrinter(language.English)

// FormatNumber renders a value rounded to the nearest integer with
// locale-aware thousands separators and a "~" approximation prefix
// (e.g., 18248.3 -> "~18,248").
func FormatNumber(v float64) string {
	return printer.Sprintf("~%d", int64(math.Round(v)))
}

// FormatLarge renders a value with magnitude abbreviation: values at or
// above a million become "~X.X million", above a billion "~X.X billion",
// and everything smaller falls back to FormatNumber.
func FormatLarge(v float64) string {
	switch {
	case v >= billionThreshold:
		return printer.Sprintf("~%.1f billion", v/billionThreshold)
	case v >= millionThreshold:
		return printer.Sprintf("~%.1f million", v/millionThreshold)
	default:
		return FormatNumber(v)
	}
}
