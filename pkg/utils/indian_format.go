// Package utils provides common formatting and date helpers for bureauscrub.
package utils

import (
	"fmt"
	"math"
)

// FormatINR formats a number in Indian Rupee format (₹12,34,567.89).
// Uses the Indian numbering system: last 3 digits, then groups of 2.
func FormatINR(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	intPart := int64(amount)
	decPart := amount - float64(intPart)

	formatted := formatIndianNumber(intPart)

	if decPart > 0 {
		decStr := fmt.Sprintf("%.2f", decPart)
		formatted += decStr[1:] // skip the leading "0"
	} else {
		formatted += ".00"
	}

	if negative {
		return "-₹" + formatted
	}
	return "₹" + formatted
}

// FormatINRCompact formats a number in compact Indian notation.
// e.g., 1927345 → "₹19.27 L", 192734500000 → "₹1,92,734.50 Cr"
func FormatINRCompact(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	prefix := "₹"
	if negative {
		prefix = "-₹"
	}

	switch {
	case amount >= 1e12:
		return fmt.Sprintf("%s%s L Cr", prefix, formatWithDecimals(amount/1e12))
	case amount >= 1e7:
		return fmt.Sprintf("%s%s Cr", prefix, formatWithDecimals(amount/1e7))
	case amount >= 1e5:
		return fmt.Sprintf("%s%s L", prefix, formatWithDecimals(amount/1e5))
	case amount >= 1e3:
		return fmt.Sprintf("%s%s K", prefix, formatWithDecimals(amount/1e3))
	default:
		return fmt.Sprintf("%s%.2f", prefix, amount)
	}
}

// FormatPct formats a percentage value with two decimals and a suffix.
func FormatPct(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// formatIndianNumber formats an integer with Indian grouping (last 3, then 2s).
func formatIndianNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	s := fmt.Sprintf("%d", n)
	length := len(s)

	result := s[length-3:]
	remaining := s[:length-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}

// formatWithDecimals formats a scaled value with Indian grouping and
// two decimal places.
func formatWithDecimals(v float64) string {
	intPart := int64(v)
	dec := v - float64(intPart)
	return fmt.Sprintf("%s%s", formatIndianNumber(intPart), fmt.Sprintf("%.2f", dec)[1:])
}
