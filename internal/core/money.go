// Package core provides the shift accounting engine.
//
// This file contains the lenient number parsing used for form input and the
// display formatting of money and hours.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseFloatOr parses a decimal string, returning def when s is blank or not
// a finite number.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted.
//
// Examples:
//
//	ParseFloatOr("12.5", 0)  -> 12.5
//	ParseFloatOr("12,5", 0)  -> 12.5
//	ParseFloatOr("abc", 0)   -> 0
//	ParseFloatOr("NaN", 0)   -> 0
func ParseFloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// ParseIntOr parses an integer string, returning def when s is blank or not a
// number. Decimal input is truncated toward zero ("3.7" -> 3).
func ParseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	f := ParseFloatOr(s, math.NaN())
	if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return def
	}
	return int(f)
}

// FormatMoney renders an amount with two decimals and the euro sign.
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}

// FormatHours renders a duration in hours with two decimals.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f h", h)
}
