package dataset

import (
	"math"
	"strconv"
	"strings"
)

// cell trims s and reports whether it is a null placeholder.
func cell(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "nan" {
		return "", true
	}
	return s, false
}

// parseYear returns the edition year, or 0 when s is not a number.
func parseYear(s string, null bool) int {
	if null {
		return 0
	}
	n, ok := number(s)
	if !ok {
		return 0
	}
	return int(n)
}

// parseOptionalInt returns nil for null or unparseable input.
func parseOptionalInt(s string, null bool) *int {
	if null {
		return nil
	}
	n, ok := number(s)
	if !ok {
		return nil
	}
	v := int(n)
	return &v
}

// parsePrize accepts "150000", "1,50,000", "₹ 100000.50" and "Rs. 5000".
func parsePrize(s string, null bool) *float64 {
	if null {
		return nil
	}
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "INR")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// splitSubmission decomposes "received/limit". Both parts are nil when the
// value has no separator; a non-numeric part becomes 0.
func splitSubmission(s string, null bool) (received, limit *int) {
	if null {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return nil, nil
	}
	return coerceInt(parts[0]), coerceInt(parts[1])
}

func coerceInt(s string) *int {
	n, ok := number(strings.TrimSpace(s))
	if !ok {
		n = 0
	}
	v := int(n)
	return &v
}

// number parses s as an integral value that fits an int; fractions truncate.
func number(s string) (float64, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return float64(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return math.Trunc(f), true
}
