package ranker

import (
	"math"
	"sort"
	"tembea/pkg/model"
)

const (
	EarthRadiusKm = 6371.0
	// MissingDistance sorts cards without coordinates after every real distance.
	MissingDistance = 99999.0
)

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// rounding pushes h just past 1 near antipodes
	h = math.Min(1, math.Max(0, h))
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// RankByDistance returns a copy of cards sorted nearest first. Cards with
// coordinates get Distance set; the rest keep a nil Distance and sort last in
// their original relative order.
func RankByDistance(cards []model.Card, origin model.Coordinate) []model.Card {
	out := make([]model.Card, len(cards))
	copy(out, cards)

	keys := make([]float64, len(out))
	for i := range out {
		keys[i] = MissingDistance
		out[i].Distance = nil
		if out[i].HasCoordinates() {
			d := Haversine(origin, model.Coordinate{Lat: *out[i].Lat, Lng: *out[i].Lng})
			out[i].Distance = &d
			keys[i] = d
		}
	}

	sort.Stable(byKey{cards: out, keys: keys})
	return out
}

type byKey struct {
	cards []model.Card
	keys  []float64
}

func (b byKey) Len() int           { return len(b.cards) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.cards[i], b.cards[j] = b.cards[j], b.cards[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
