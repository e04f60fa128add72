package fetcher

import (
	"context"
	"sync"
	"tembea/pkg/logger"
	"tembea/pkg/metrics"
	"tembea/pkg/model"
)

// Result holds one document list per source collection. A collection whose
// read failed is present with an empty list and named in Failed.
type Result struct {
	Docs   map[string][]model.Document
	Failed []string
}

func (r Result) Partial() bool {
	return len(r.Failed) > 0 && len(r.Failed) < len(r.Docs)
}

type Fetcher struct {
	store   Store
	live    *LiveFeed
	log     *logger.Logger
	metrics *metrics.Metrics
}

// New builds a Fetcher. live may be nil, in which case live sources are read
// like one-shot sources.
func New(store Store, live *LiveFeed, log *logger.Logger, m *metrics.Metrics) *Fetcher {
	return &Fetcher{
		store:   store,
		live:    live,
		log:     log,
		metrics: m,
	}
}

// Fetch reads every distinct collection named by sources concurrently. A
// failing collection never fails the batch.
func (f *Fetcher) Fetch(ctx context.Context, sources []Source) Result {
	sources = Distinct(sources)
	res := Result{Docs: make(map[string][]model.Document, len(sources))}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		failed = make(map[string]bool)
	)
	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			docs, err := f.read(ctx, src)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				f.log.Warn("collection read failed, serving empty list",
					"collection", src.Collection,
					"category", src.Category.String(),
					"error", err,
				)
				f.metrics.ObserveFetchFailure(src.Collection)
				failed[src.Collection] = true
				docs = nil
			}
			res.Docs[src.Collection] = withFallback(src, docs)
		}(src)
	}
	wg.Wait()

	// Failed follows source table order, not completion order.
	for _, src := range sources {
		if failed[src.Collection] {
			res.Failed = append(res.Failed, src.Collection)
		}
	}
	return res
}

func (f *Fetcher) read(ctx context.Context, src Source) ([]model.Document, error) {
	if src.Freshness == Live && f.live != nil {
		if docs, ok := f.live.Snapshot(src.Collection); ok {
			return docs, nil
		}
	}
	return f.store.Query(ctx, src.Collection, src.Query())
}

func withFallback(src Source, docs []model.Document) []model.Document {
	if len(docs) == 0 && src.Fallback != nil {
		return src.Fallback()
	}
	if docs == nil {
		return []model.Document{}
	}
	return docs
}
