package model

type Coordinate struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// SearchQuery lives for a single request. A nil Origin disables distance ranking.
type SearchQuery struct {
	LocationText   string
	ActiveCategory Category
	SubCategory    string
	Origin         *Coordinate
}

type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}
