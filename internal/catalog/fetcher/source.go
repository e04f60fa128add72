package fetcher

import (
	"context"
	"tembea/pkg/model"
)

type Freshness int

const (
	// OneShot sources are read once per request.
	OneShot Freshness = iota
	// Live sources are served from a standing subscription.
	Live
)

func (f Freshness) String() string {
	if f == Live {
		return "live"
	}
	return "one-shot"
}

const (
	CollectionProperties   = "properties"
	CollectionActivities   = "activities"
	CollectionDestinations = "destinations"
	CollectionFood         = "food"
	CollectionTransport    = "transport"
	CollectionGuides       = "guides"
	CollectionEvents       = "events"
)

// Query is the store-agnostic read shape: optional order, row limit and
// equality filter.
type Query struct {
	OrderBy    string
	Descending bool
	Limit      int
	Where      map[string]any
}

// Store is the consumed document store.
type Store interface {
	Query(ctx context.Context, collection string, q Query) ([]model.Document, error)
	// Subscribe delivers the full result set immediately and again after every
	// change. Failures after the subscription is established go to onError and
	// end the subscription.
	Subscribe(ctx context.Context, collection string, q Query, onChange func([]model.Document), onError func(error)) (unsubscribe func(), err error)
}

type Source struct {
	Category   model.Category
	Collection string
	OrderBy    string
	Descending bool
	Limit      int
	Freshness  Freshness
	// Fallback replaces an empty result set.
	Fallback func() []model.Document
}

func (s Source) Query() Query {
	return Query{
		OrderBy:    s.OrderBy,
		Descending: s.Descending,
		Limit:      s.Limit,
	}
}

// DefaultSources is the marketplace's source table in category display order.
// Experiences and Things To Do share the activities collection.
func DefaultSources() []Source {
	return []Source{
		{Category: model.CategoryStays, Collection: CollectionProperties, OrderBy: "createdAt", Descending: true, Limit: 50, Freshness: OneShot},
		{Category: model.CategoryExperiences, Collection: CollectionActivities, OrderBy: "createdAt", Descending: true, Limit: 50, Freshness: Live},
		{Category: model.CategoryThingsToDo, Collection: CollectionActivities, OrderBy: "createdAt", Descending: true, Limit: 50, Freshness: Live},
		{Category: model.CategoryDestinations, Collection: CollectionDestinations, Limit: 10, Freshness: Live, Fallback: NeverEmptyDestinations},
		{Category: model.CategoryFoodNightlife, Collection: CollectionFood, Limit: 20, Freshness: OneShot},
		{Category: model.CategoryTransport, Collection: CollectionTransport, Limit: 20, Freshness: OneShot},
		{Category: model.CategoryTravelGuide, Collection: CollectionGuides, Limit: 20, Freshness: OneShot},
		{Category: model.CategoryEvents, Collection: CollectionEvents, OrderBy: "date", Limit: 20, Freshness: OneShot},
	}
}

func SourceFor(sources []Source, category model.Category) (Source, bool) {
	for _, s := range sources {
		if s.Category == category {
			return s, true
		}
	}
	return Source{}, false
}

// Distinct keeps the first source per collection.
func Distinct(sources []Source) []Source {
	seen := make(map[string]bool, len(sources))
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if seen[s.Collection] {
			continue
		}
		seen[s.Collection] = true
		out = append(out, s)
	}
	return out
}
