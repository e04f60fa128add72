package normalizer

import (
	"strings"
	"tembea/pkg/locale"
	"tembea/pkg/model"
	"tembea/pkg/sanitizer"
)

// Normalizer maps raw documents of any category onto the uniform Card shape.
// It is total: every display field of the returned card is non-empty.
type Normalizer struct {
	formatter   *locale.Formatter
	placeholder string
}

func New(formatter *locale.Formatter, placeholderImage string) *Normalizer {
	if formatter == nil {
		formatter = locale.NewFormatter(locale.DefaultLocale)
	}
	return &Normalizer{
		formatter:   formatter,
		placeholder: placeholderImage,
	}
}

func (n *Normalizer) Normalize(category model.Category, doc model.Document) model.Card {
	card := model.Card{
		ID:       doc.ID(),
		Category: category,
	}

	for _, rule := range RulesFor(category) {
		v := firstText(doc, rule.Keys)
		if v == "" {
			v = rule.Default
		}
		switch rule.Field {
		case FieldTitle:
			card.Title = v
		case FieldDescription:
			card.Description = v
		case FieldTag:
			card.Tag = v
		case FieldType:
			card.Type = v
		case FieldName:
			card.Name = v
		case FieldDuration:
			card.Duration = v
		case FieldHost:
			card.Host = v
		case FieldWeather:
			card.Weather = v
		}
	}

	card.Image = n.image(doc)
	card.PriceAmount = price(doc)
	card.Price = n.formatter.Amount(card.PriceAmount)
	card.Rating = rating(category, doc)
	card.Location = location(doc)
	card.Lat, card.Lng = coordinates(doc)

	if v, ok := lookup(doc, "languages"); ok {
		card.Languages = sanitizer.StringList(v)
	}
	if v, ok := doc["synthetic"].(bool); ok {
		card.Synthetic = v
	}

	return card
}

// NormalizeAll maps docs in order.
func (n *Normalizer) NormalizeAll(category model.Category, docs []model.Document) []model.Card {
	cards := make([]model.Card, 0, len(docs))
	for _, doc := range docs {
		cards = append(cards, n.Normalize(category, doc))
	}
	return cards
}

func (n *Normalizer) image(doc model.Document) string {
	if img := firstText(doc, imageKeys); img != "" {
		return img
	}
	return n.placeholder
}

func price(doc model.Document) float64 {
	for _, k := range priceKeys {
		v, ok := lookup(doc, k)
		if !ok {
			continue
		}
		if amount, ok := sanitizer.Amount(v); ok {
			return amount
		}
	}
	return 0
}

func rating(category model.Category, doc model.Document) model.Rating {
	v, ok := lookup(doc, "rating")
	if !ok {
		return DefaultRating(category)
	}
	if obj, ok := asMap(v); ok {
		if overall, ok := sanitizer.Float(obj["overall"]); ok {
			return model.NumericRating(overall)
		}
		return model.NumericRating(5.0)
	}
	if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), model.RatingNew) {
		return model.NewRating()
	}
	if f, ok := sanitizer.Float(v); ok {
		return model.NumericRating(f)
	}
	return DefaultRating(category)
}

func location(doc model.Document) string {
	if v, ok := lookup(doc, "location"); ok {
		if obj, ok := asMap(v); ok {
			if s := joinParts(obj); s != "" {
				return s
			}
		} else if s := sanitizer.Text(v); s != "" {
			return s
		}
	}
	if s := joinParts(doc); s != "" {
		return s
	}
	return DefaultLocation
}

func joinParts(m map[string]any) string {
	parts := make([]string, 0, len(locationParts))
	for _, k := range locationParts {
		parts = append(parts, sanitizer.Text(m[k]))
	}
	return sanitizer.JoinNonEmpty(", ", parts...)
}

func coordinates(doc model.Document) (*float64, *float64) {
	lat, okLat := firstFloat(doc, latKeys)
	lng, okLng := firstFloat(doc, lngKeys)
	if !okLat || !okLng {
		return nil, nil
	}
	if !(model.Coordinate{Lat: lat, Lng: lng}).Valid() {
		return nil, nil
	}
	return &lat, &lng
}
