package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const RatingNew = "New"

// Rating is either a numeric score or the "New" marker for unrated listings.
type Rating struct {
	Value float64
	IsNew bool
}

func NumericRating(v float64) Rating {
	return Rating{Value: v}
}

func NewRating() Rating {
	return Rating{IsNew: true}
}

func (r Rating) String() string {
	if r.IsNew {
		return RatingNew
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if r.IsNew {
		return json.Marshal(RatingNew)
	}
	return json.Marshal(r.Value)
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = NumericRating(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rating must be a number or %q: %w", RatingNew, err)
	}
	if s == RatingNew {
		*r = NewRating()
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("rating must be a number or %q, got %q", RatingNew, s)
	}
	*r = NumericRating(n)
	return nil
}

// Card is the renderer-ready shape shared by every category. Image, Price and
// Rating are always populated.
type Card struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Price       string   `json:"price"`
	PriceAmount float64  `json:"price_amount"`
	Rating      Rating   `json:"rating"`
	Location    string   `json:"location"`
	Description string   `json:"description,omitempty"`
	Tag         string   `json:"tag,omitempty"`
	Type        string   `json:"type,omitempty"`
	Name        string   `json:"name,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Distance    *float64 `json:"distance_km,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Host        string   `json:"host,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	Weather     string   `json:"weather,omitempty"`
	Synthetic   bool     `json:"synthetic,omitempty"`
}

func (c Card) HasCoordinates() bool {
	return c.Lat != nil && c.Lng != nil
}
