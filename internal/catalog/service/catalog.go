package service

import (
	"context"
	"errors"
	"fmt"
	catalogerrors "tembea/internal/catalog/errors"
	"tembea/internal/catalog/fetcher"
	"tembea/internal/catalog/normalizer"
	"tembea/internal/catalog/presenter"
	"tembea/internal/catalog/ranker"
	apperrors "tembea/pkg/errors"
	"tembea/pkg/logger"
	"tembea/pkg/metrics"
	"tembea/pkg/model"
	"time"
)

type CatalogService interface {
	Search(ctx context.Context, q model.SearchQuery) (*presenter.View, error)
	Destinations(ctx context.Context) (*presenter.View, error)
	Categories() []presenter.CategoryInfo
	Stream(ctx context.Context, category model.Category, sub string, emit func(*presenter.View) error) error
}

type catalogService struct {
	fetcher    *fetcher.Fetcher
	live       *fetcher.LiveFeed
	normalizer *normalizer.Normalizer
	sources    []fetcher.Source
	log        *logger.Logger
	metrics    *metrics.Metrics
}

func NewCatalogService(
	f *fetcher.Fetcher,
	live *fetcher.LiveFeed,
	n *normalizer.Normalizer,
	sources []fetcher.Source,
	log *logger.Logger,
	m *metrics.Metrics,
) CatalogService {
	return &catalogService{
		fetcher:    f,
		live:       live,
		normalizer: n,
		sources:    sources,
		log:        log,
		metrics:    m,
	}
}

// Search loads every source as one batch so tab counts and partial failures
// reflect the whole page, then filters and ranks the active category.
func (s *catalogService) Search(ctx context.Context, q model.SearchQuery) (*presenter.View, error) {
	start := time.Now()

	if q.ActiveCategory == "" {
		q.ActiveCategory = model.CategoryStays
	}
	if !q.ActiveCategory.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unknown category: %s", q.ActiveCategory))
	}
	if q.Origin != nil && !q.Origin.Valid() {
		return nil, apperrors.InvalidInput(catalogerrors.ErrInvalidOrigin.Error())
	}

	res := s.fetcher.Fetch(ctx, s.sources)
	view, err := presenter.Dispatch(q.ActiveCategory, s.normalize(res), res.Failed)
	if err != nil {
		return nil, s.mapError(err)
	}
	if err := view.Refine(func(cards []model.Card) []model.Card {
		return ranker.Apply(q, cards)
	}); err != nil {
		return nil, s.mapError(err)
	}

	if view.PartialError {
		s.log.Warn("Search served with partial results",
			"category", q.ActiveCategory.String(),
			"failed_sources", res.Failed,
		)
	}
	s.metrics.ObserveSearch(q.ActiveCategory.Slug(), time.Since(start))

	return view, nil
}

func (s *catalogService) Destinations(ctx context.Context) (*presenter.View, error) {
	src, ok := fetcher.SourceFor(s.sources, model.CategoryDestinations)
	if !ok {
		return nil, apperrors.Internal("Destinations source is not configured", catalogerrors.ErrUnknownCategory)
	}

	res := s.fetcher.Fetch(ctx, []fetcher.Source{src})
	view, err := presenter.Dispatch(model.CategoryDestinations, s.normalize(res), res.Failed)
	if err != nil {
		return nil, s.mapError(err)
	}
	return view, nil
}

func (s *catalogService) Categories() []presenter.CategoryInfo {
	return presenter.Categories(s.isLive)
}

// Stream emits a fresh view of category every time its live source delivers.
// It returns when ctx ends, the feed stops, or emit fails.
func (s *catalogService) Stream(ctx context.Context, category model.Category, sub string, emit func(*presenter.View) error) error {
	route, err := presenter.RouteFor(category)
	if err != nil {
		return s.mapError(err)
	}
	if !s.isLive(category) {
		return apperrors.InvalidInput(fmt.Sprintf("%s is not available as a live stream", category))
	}
	src, _ := fetcher.SourceFor(s.sources, route.Source)

	snapshots, err := s.live.Watch(ctx, src.Collection)
	if err != nil {
		return s.mapError(err)
	}

	q := model.SearchQuery{ActiveCategory: category, SubCategory: sub}
	for docs := range snapshots {
		view, err := presenter.Dispatch(category, map[model.Category][]model.Card{
			route.Source: s.normalizer.NormalizeAll(route.Source, docs),
		}, nil)
		if err != nil {
			return s.mapError(err)
		}
		if err := view.Refine(func(cards []model.Card) []model.Card {
			return ranker.Apply(q, cards)
		}); err != nil {
			return s.mapError(err)
		}
		if err := emit(view); err != nil {
			return err
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	return apperrors.Unavailable("live feed")
}

func (s *catalogService) isLive(category model.Category) bool {
	if s.live == nil {
		return false
	}
	route, err := presenter.RouteFor(category)
	if err != nil {
		return false
	}
	src, ok := fetcher.SourceFor(s.sources, route.Source)
	return ok && src.Freshness == fetcher.Live
}

func (s *catalogService) normalize(res fetcher.Result) map[model.Category][]model.Card {
	cards := make(map[model.Category][]model.Card, len(res.Docs))
	for _, src := range fetcher.Distinct(s.sources) {
		docs, ok := res.Docs[src.Collection]
		if !ok {
			continue
		}
		cards[src.Category] = s.normalizer.NormalizeAll(src.Category, docs)
	}
	return cards
}

func (s *catalogService) mapError(err error) error {
	switch {
	case errors.Is(err, catalogerrors.ErrUnknownCategory):
		return apperrors.InvalidInput(err.Error())
	case errors.Is(err, catalogerrors.ErrNotLive):
		return apperrors.InvalidInput(err.Error())
	case errors.Is(err, catalogerrors.ErrFeedStopped):
		return apperrors.Unavailable("live feed")
	default:
		s.log.Error("Catalog operation failed", "error", err)
		return apperrors.Internal("Failed to build catalog view", err)
	}
}
