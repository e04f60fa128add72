package model

import (
	"fmt"
	"strconv"
)

// SearchRequest is the raw query string of a search call.
type SearchRequest struct {
	Location string `json:"location" validate:"max=120"`
	Category string `json:"category" validate:"omitempty,category"`
	Sub      string `json:"sub" validate:"max=120"`
	Lat      string `json:"lat" validate:"required_with=Lng,omitempty,latitude"`
	Lng      string `json:"lng" validate:"required_with=Lat,omitempty,longitude"`
}

// Query converts a validated request. Category defaults to Stays.
func (r SearchRequest) Query() (SearchQuery, error) {
	q := SearchQuery{
		LocationText:   r.Location,
		ActiveCategory: CategoryStays,
		SubCategory:    r.Sub,
	}
	if r.Category != "" {
		c, err := ParseCategory(r.Category)
		if err != nil {
			return SearchQuery{}, err
		}
		q.ActiveCategory = c
	}
	if r.Lat != "" && r.Lng != "" {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return SearchQuery{}, fmt.Errorf("invalid lat %q: %w", r.Lat, err)
		}
		lng, err := strconv.ParseFloat(r.Lng, 64)
		if err != nil {
			return SearchQuery{}, fmt.Errorf("invalid lng %q: %w", r.Lng, err)
		}
		q.Origin = &Coordinate{Lat: lat, Lng: lng}
	}
	return q, nil
}
