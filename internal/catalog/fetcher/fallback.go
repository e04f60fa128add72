package fetcher

import (
	"fmt"
	"tembea/pkg/model"
)

type referenceDestination struct {
	name        string
	country     string
	description string
	image       string
	weather     string
	lat, lng    float64
}

var kenyanDestinations = []referenceDestination{
	{"Nairobi", "Kenya", "Safari capital with a national park on the city's edge", "https://images.unsplash.com/photo-1611348524140-53c9a25263d6?w=800", "24°C Sunny", -1.2921, 36.8219},
	{"Mombasa", "Kenya", "Old Town alleys, Fort Jesus and warm Indian Ocean beaches", "https://images.unsplash.com/photo-1589182373726-e4f658ab50f0?w=800", "30°C Humid", -4.0435, 39.6682},
	{"Diani Beach", "Kenya", "White sand, coral reefs and colobus monkeys", "https://images.unsplash.com/photo-1590523741831-ab7e8b8f9c7f?w=800", "29°C Sunny", -4.3167, 39.5667},
	{"Maasai Mara", "Kenya", "The Great Migration and big five game drives", "https://images.unsplash.com/photo-1516426122078-c23e76319801?w=800", "26°C Clear", -1.4061, 35.0100},
	{"Lamu", "Kenya", "Swahili heritage town with dhow sailing at sunset", "https://images.unsplash.com/photo-1602002418082-a4443e081dd1?w=800", "28°C Breezy", -2.2717, 40.9020},
	{"Naivasha", "Kenya", "Freshwater lake with hippos and Hell's Gate cycling", "https://images.unsplash.com/photo-1547970810-dc1eac37d174?w=800", "22°C Partly cloudy", -0.7167, 36.4333},
	{"Amboseli", "Kenya", "Elephant herds beneath Mount Kilimanjaro", "https://images.unsplash.com/photo-1549366021-9f761d450615?w=800", "27°C Sunny", -2.6527, 37.2606},
	{"Watamu", "Kenya", "Marine park snorkelling and turtle conservation", "https://images.unsplash.com/photo-1544550581-5f7ceaf7f992?w=800", "29°C Sunny", -3.3540, 40.0240},
}

// NeverEmptyDestinations is the destinations panel's fallback: when the
// collection has no documents the fixed Kenyan reference set is shown, each
// tagged with a synthetic id.
func NeverEmptyDestinations() []model.Document {
	docs := make([]model.Document, 0, len(kenyanDestinations))
	for i, d := range kenyanDestinations {
		docs = append(docs, model.Document{
			"id":          fmt.Sprintf("fallback-destination-%d", i+1),
			"name":        d.name,
			"country":     d.country,
			"description": d.description,
			"imageUrl":    d.image,
			"weather":     d.weather,
			"lat":         d.lat,
			"lng":         d.lng,
			"synthetic":   true,
		})
	}
	return docs
}
