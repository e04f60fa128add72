package model

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryStays         Category = "Stays"
	CategoryExperiences   Category = "Experiences"
	CategoryThingsToDo    Category = "Things To Do"
	CategoryDestinations  Category = "Destinations"
	CategoryFoodNightlife Category = "Food & Nightlife"
	CategoryTransport     Category = "Transport"
	CategoryTravelGuide   Category = "Travel Guide"
	CategoryEvents        Category = "Events"
)

var allCategories = []Category{
	CategoryStays,
	CategoryExperiences,
	CategoryThingsToDo,
	CategoryDestinations,
	CategoryFoodNightlife,
	CategoryTransport,
	CategoryTravelGuide,
	CategoryEvents,
}

var categorySlugs = map[Category]string{
	CategoryStays:         "stays",
	CategoryExperiences:   "experiences",
	CategoryThingsToDo:    "things-to-do",
	CategoryDestinations:  "destinations",
	CategoryFoodNightlife: "food-nightlife",
	CategoryTransport:     "transport",
	CategoryTravelGuide:   "travel-guide",
	CategoryEvents:        "events",
}

// AllCategories returns the marketplace verticals in display order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory accepts a display name (any case) or a URL slug.
func ParseCategory(s string) (Category, error) {
	needle := strings.TrimSpace(s)
	for _, c := range allCategories {
		if strings.EqualFold(needle, string(c)) || strings.EqualFold(needle, categorySlugs[c]) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c Category) Slug() string {
	return categorySlugs[c]
}

func (c Category) Valid() bool {
	_, ok := categorySlugs[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}
