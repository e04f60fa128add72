package sanitizer

import "strings"

func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)
		if normalized == "" {
			continue
		}

		key := strings.ToLower(normalized)
		if seen[key] {
			continue
		}

		seen[key] = true
		result = append(result, normalized)
	}

	return result
}

// StringList accepts a []string, a []any of strings, or a comma separated
// string, and returns the normalized unique entries.
func StringList(v any) []string {
	switch val := v.(type) {
	case []string:
		return NormalizeStringSlice(val, TrimAndNormalize)
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
		return NormalizeStringSlice(items, TrimAndNormalize)
	case string:
		return NormalizeStringSlice(strings.Split(val, ","), TrimAndNormalize)
	default:
		return []string{}
	}
}
