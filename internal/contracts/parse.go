package contracts

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseDate converts common date-like strings to a UTC date.
// Accepts YYYY-MM-DD with an optional time suffix. Returns false for
// empty or unparsable input.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	switch strings.ToLower(s) {
	case "nat", "nan", "none", "null":
		return time.Time{}, false
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseNumeric converts a raw string to a finite float64.
// Thousands separators are tolerated; empty and sentinel strings
// ("nan", "none", "null") parse as absent.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsFinite reports whether v is a usable numeric value.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
