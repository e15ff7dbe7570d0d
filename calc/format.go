package calc

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v using the shortest decimal that round-trips, with
// Infinity, -Infinity and NaN for non-finite values. Magnitudes of 1e21 and
// above, or below 1e-6, use exponent form.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// collapse -0
		return "0"
	}
	if abs := math.Abs(v); abs >= 1e21 || abs < 1e-6 {
		return formatExponent(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatExponent writes v as mantissa, signed exponent and no exponent
// padding: 1e-7, 1.5e+300.
func formatExponent(v float64) string {
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// MaxPrecision is the largest number of decimal places FormatNumberPrecision
// honours.
const MaxPrecision = 100

// FormatNumberPrecision rounds v to digits decimal places and trims trailing
// zeros. A negative digits value falls back to FormatNumber; values above
// MaxPrecision are clamped.
func FormatNumberPrecision(v float64, digits int) string {
	if digits < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatNumber(v)
	}
	digits = min(digits, MaxPrecision)
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits, 64), 64)
	if err != nil {
		return FormatNumber(v)
	}
	return FormatNumber(rounded)
}
