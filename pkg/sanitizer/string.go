package sanitizer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// Text renders scalar values as display text. Maps, slices and nil are not
// text and yield "".
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return TrimAndNormalize(val)
	case fmt.Stringer:
		return TrimAndNormalize(val.String())
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int, int32, int64:
		return fmt.Sprintf("%d", val)
	default:
		return ""
	}
}
