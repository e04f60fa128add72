package normalizer

import "tembea/pkg/model"

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTag         = "tag"
	FieldType        = "type"
	FieldName        = "name"
	FieldDuration    = "duration"
	FieldHost        = "host"
	FieldWeather     = "weather"
)

// DefaultLocation is shown when a record carries no usable location.
const DefaultLocation = "Kenya"

// FieldRule maps one card field to an ordered list of dotted document paths.
// The first path holding non-empty text wins; Default applies when none do.
type FieldRule struct {
	Field   string
	Keys    []string
	Default string
}

var (
	imageKeys     = []string{"images.0", "imageUrl", "imageurl", "image"}
	priceKeys     = []string{"price", "price.amount", "pricePerNight", "cost"}
	locationParts = []string{"address", "area", "city", "country"}
	latKeys       = []string{"lat", "latitude", "location.lat", "location.latitude", "coordinates.lat"}
	lngKeys       = []string{"lng", "longitude", "location.lng", "location.longitude", "coordinates.lng"}
)

func baseRules(category model.Category) []FieldRule {
	return []FieldRule{
		{Field: FieldTitle, Keys: []string{"title", "name", "category"}, Default: category.String()},
		{Field: FieldDescription, Keys: []string{"description", "summary"}},
		{Field: FieldTag, Keys: []string{"tag", "subCategory", "category"}},
		{Field: FieldType, Keys: []string{"type", "propertyType", "kind"}},
		{Field: FieldName, Keys: []string{"name"}},
		{Field: FieldDuration, Keys: []string{"duration"}},
		{Field: FieldHost, Keys: []string{"host.name", "host", "hostName"}},
		{Field: FieldWeather, Keys: []string{"weather"}},
	}
}

// RulesFor returns the field table for category.
func RulesFor(category model.Category) []FieldRule {
	rules := baseRules(category)
	for i := range rules {
		switch {
		case rules[i].Field == FieldTitle && category == model.CategoryStays:
			rules[i].Default = "Untitled Listing"
		case rules[i].Field == FieldTitle && (category == model.CategoryExperiences || category == model.CategoryThingsToDo):
			rules[i].Default = "Activity"
		case rules[i].Field == FieldTitle && category == model.CategoryDestinations:
			rules[i].Keys = []string{"name", "city"}
		case rules[i].Field == FieldDescription && category == model.CategoryDestinations:
			rules[i].Keys = []string{"description", "country"}
		}
	}
	return rules
}

// DefaultRating is used when a record has no rating. New stays have not been
// reviewed yet; the other categories are curated.
func DefaultRating(category model.Category) model.Rating {
	if category == model.CategoryStays {
		return model.NewRating()
	}
	return model.NumericRating(5.0)
}
