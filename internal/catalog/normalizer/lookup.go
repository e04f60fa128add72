package normalizer

import (
	"strconv"
	"strings"
	"tembea/pkg/model"
	"tembea/pkg/sanitizer"
)

// asMap accepts both plain maps and nested documents.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case model.Document:
		return m, true
	default:
		return nil, false
	}
}

// lookup walks a dotted path through nested maps and slices. Numeric
// segments index into slices.
func lookup(doc model.Document, path string) (any, bool) {
	var cur any = map[string]any(doc)
	for _, seg := range strings.Split(path, ".") {
		if node, ok := asMap(cur); ok {
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
			continue
		}
		switch node := cur.(type) {
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		case []string:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

func firstText(doc model.Document, keys []string) string {
	for _, k := range keys {
		v, ok := lookup(doc, k)
		if !ok {
			continue
		}
		if s := sanitizer.Text(v); s != "" {
			return s
		}
	}
	return ""
}

func firstFloat(doc model.Document, keys []string) (float64, bool) {
	for _, k := range keys {
		v, ok := lookup(doc, k)
		if !ok {
			continue
		}
		if f, ok := sanitizer.Float(v); ok {
			return f, true
		}
	}
	return 0, false
}
