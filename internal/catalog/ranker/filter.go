package ranker

import (
	"strings"
	"tembea/pkg/model"
	"tembea/pkg/sanitizer"
)

const allTerm = "all"

// IsMatchAll reports whether term selects every item: empty, "All", or
// "All <category>" where the remainder names a category by display name or
// slug, or is a leading word of a category name ("All Food").
func IsMatchAll(term string) bool {
	t := sanitizer.SearchTerm(term)
	if t == "" || t == allTerm {
		return true
	}
	rest, ok := strings.CutPrefix(t, allTerm+" ")
	if !ok {
		return false
	}
	for _, c := range model.AllCategories() {
		name := strings.ToLower(c.String())
		if rest == name || rest == c.Slug() || strings.HasPrefix(name, rest+" ") {
			return true
		}
	}
	return false
}

// Filter keeps the cards whose searchable text contains term, preserving
// order. A match-all term returns cards unchanged.
func Filter(cards []model.Card, term string) []model.Card {
	if IsMatchAll(term) {
		return cards
	}
	needle := sanitizer.SearchTerm(term)
	out := make([]model.Card, 0, len(cards))
	for _, c := range cards {
		if strings.Contains(searchText(c), needle) {
			out = append(out, c)
		}
	}
	return out
}

func searchText(c model.Card) string {
	return sanitizer.SearchTerm(strings.Join([]string{c.Tag, c.Type, c.Title, c.Location, c.Name}, " "))
}
