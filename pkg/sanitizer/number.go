package sanitizer

import (
	"math"
	"strconv"
	"strings"
)

// Float reads a plain number or numeric string.
func Float(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int32:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Amount reads a price written as a number or as text with currency marks
// and digit grouping ("KES 4,500", "$1,200.50", "4 500").
func Amount(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		return parseAmountText(s)
	}
	f, ok := Float(v)
	if !ok || f < 0 {
		return 0, false
	}
	return f, true
}

func parseAmountText(s string) (float64, bool) {
	var digits strings.Builder
	seenDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
			seenDigit = true
		case r == '.':
			digits.WriteRune(r)
		case r == '-' && !seenDigit:
			// negative amounts are rejected like negative numbers
			return 0, false
		case r == ',' || r == ' ' || r == '_' || r == '\u00a0':
			// grouping separators
		case seenDigit:
			// stop at the first non-numeric rune after the number ("4500/night")
			return finishAmount(digits.String())
		}
	}
	return finishAmount(digits.String())
}

func finishAmount(s string) (float64, bool) {
	s = strings.Trim(s, ".")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
