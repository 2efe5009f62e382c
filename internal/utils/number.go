package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var rxCurrencyJunk = regexp.MustCompile(`[^\d.]`)

// ParseCurrency strips everything except digits and dots ("Rp 1250000", "1250000.00 IDR")
// and parses the rest. Signs and thousands separators are dropped with the junk.
func ParseCurrency(s string) (float64, bool) {
	s = rxCurrencyJunk.ReplaceAllString(s, "")
	if s == "" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseNumeric parses a plain number cell ("96.5", " 100 ", "1e2").
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// RoundInt rounds half to even.
func RoundInt(f float64) int64 {
	return int64(math.RoundToEven(f))
}
