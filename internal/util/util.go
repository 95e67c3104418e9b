// Package util provides common formatting helpers used across the planner.
package util

import (
	"fmt"
	"math"
	"strings"
)

// FormatSeconds renders a duration in seconds as "4m30s" (or "45s" under a
// minute). Fractions round to the nearest second.
func FormatSeconds(seconds float64) string {
	total := int(math.Round(seconds))
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm%02ds", total/60, total%60)
}

// FormatUnits renders a map-unit distance with no trailing zeros.
func FormatUnits(units float64) string {
	s := fmt.Sprintf("%.1f", units)
	s = strings.TrimSuffix(s, ".0")
	return s + "u"
}

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}
