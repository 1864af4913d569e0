package reporting

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// numberPrinter adds English digit grouping to unit and hour counts.
var numberPrinter = message.NewPrinter(language.English)

// FormatPercent renders a ratio as a percentage with one decimal.
// Undefined values render as "-".
func FormatPercent(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

// FormatUnits renders a unit count with thousands separators.
func FormatUnits(v float64) string {
	return numberPrinter.Sprintf("%.0f", v)
}

// FormatHours renders an hour quantity with one decimal and thousands
// separators.
func FormatHours(v float64) string {
	return numberPrinter.Sprintf("%.1f", v)
}

// InterpretOEE returns the conventional band label for an OEE ratio.
func InterpretOEE(v *float64) string {
	if v == nil {
		return "No data"
	}
	pct := *v * 100
	switch {
	case pct >= 85:
		return "World class (>=85%)"
	case pct >= 60:
		return "Typical (60-85%)"
	case pct >= 40:
		return "Low (40-60%)"
	default:
		return "Poor (<40%)"
	}
}
