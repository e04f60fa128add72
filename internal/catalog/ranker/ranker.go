package ranker

import "tembea/pkg/model"

// Apply runs the listing pipeline for one request: location text filter,
// then sub-category filter, then distance ranking for stays when an origin
// is known.
func Apply(q model.SearchQuery, cards []model.Card) []model.Card {
	out := Filter(cards, q.LocationText)
	out = Filter(out, q.SubCategory)
	if q.ActiveCategory == model.CategoryStays && q.Origin != nil {
		out = RankByDistance(out, *q.Origin)
	}
	if out == nil {
		return []model.Card{}
	}
	return out
}
