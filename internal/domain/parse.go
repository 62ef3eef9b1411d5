package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// DurationUnknown is the sentinel returned when a duration string has no
// parsable day or night count. It compares greater than any real trip length
// so unknown durations never land in the short-trip bucket.
const DurationUnknown = int(^uint(0) >> 1)

var (
	dayCountPattern   = regexp.MustCompile(`(?i)\b(\d+)\s*D(?:ays?)?\b`)
	nightCountPattern = regexp.MustCompile(`(?i)\b(\d+)\s*N(?:ights?)?\b`)
)

// ParseDurationDays extracts a trip length in days from a free-form duration
// string such as "5D/4N".
//
// A day count ("<n>D") wins when present. Otherwise a night count ("<n>N")
// is used and converted to nights+1 days. When neither matches the result is
// DurationUnknown.
func ParseDurationDays(s string) int {
	if m := dayCountPattern.FindStringSubmatch(s); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil {
			return days
		}
	}
	if m := nightCountPattern.FindStringSubmatch(s); m != nil {
		if nights, err := strconv.Atoi(m[1]); err == nil {
			return nights + 1
		}
	}
	return DurationUnknown
}

// ParsePrice extracts a numeric amount from a price string such as "₹12,500".
// Currency symbols and thousand separators are stripped before parsing.
// ok is false when no number remains, so a price filter can fail closed
// instead of silently matching a zero bucket.
func ParsePrice(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// PriceRange is a parsed price-bucket selection. Buckets are half-open
// intervals [Min, Max); an Unbounded range ("₹30,000+") has no upper limit.
type PriceRange struct {
	Min       float64
	Max       float64
	Unbounded bool
}

// Contains reports whether amount falls inside the range.
func (pr PriceRange) Contains(amount float64) bool {
	if amount < pr.Min {
		return false
	}
	if pr.Unbounded {
		return true
	}
	return amount < pr.Max
}

// ParsePriceRange parses a bucket label such as "₹0-₹10,000" or "₹30,000+".
// ok is false for labels with no parsable bounds.
func ParsePriceRange(label string) (PriceRange, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return PriceRange{}, false
	}

	if strings.HasSuffix(label, "+") {
		min, ok := ParsePrice(strings.TrimSuffix(label, "+"))
		if !ok {
			return PriceRange{}, false
		}
		return PriceRange{Min: min, Unbounded: true}, true
	}

	lo, hi, found := strings.Cut(label, "-")
	if !found {
		return PriceRange{}, false
	}
	min, okLo := ParsePrice(lo)
	max, okHi := ParsePrice(hi)
	if !okLo || !okHi {
		return PriceRange{}, false
	}
	return PriceRange{Min: min, Max: max}, true
}
