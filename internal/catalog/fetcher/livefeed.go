package fetcher

import (
	"context"
	"sync"
	"tembea/internal/catalog/errors"
	"tembea/pkg/logger"
	"tembea/pkg/metrics"
	"tembea/pkg/model"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultBaseBackoff = 500 * time.Millisecond

type watcher struct {
	ch chan []model.Document
}

// LiveFeed keeps a standing subscription per live collection and holds the
// latest delivered snapshot. A failed subscription is retried with
// exponential backoff while the previous snapshot stays visible.
type LiveFeed struct {
	store       Store
	sources     []Source
	log         *logger.Logger
	metrics     *metrics.Metrics
	baseBackoff time.Duration
	maxBackoff  time.Duration

	mu        sync.RWMutex
	snapshots map[string][]model.Document
	watchers  map[string]map[*watcher]struct{}
	running   bool
	done      chan struct{}
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewLiveFeed(store Store, sources []Source, maxBackoff time.Duration, log *logger.Logger, m *metrics.Metrics) *LiveFeed {
	var live []Source
	for _, s := range Distinct(sources) {
		if s.Freshness == Live {
			live = append(live, s)
		}
	}
	return &LiveFeed{
		store:       store,
		sources:     live,
		log:         log,
		metrics:     m,
		baseBackoff: defaultBaseBackoff,
		maxBackoff:  maxBackoff,
		snapshots:   make(map[string][]model.Document),
		watchers:    make(map[string]map[*watcher]struct{}),
		done:        make(chan struct{}),
	}
}

// SetBaseBackoff overrides the first retry delay.
func (l *LiveFeed) SetBaseBackoff(d time.Duration) {
	l.baseBackoff = d
}

func (l *LiveFeed) Start(ctx context.Context) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	feedCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.running = true
	l.mu.Unlock()

	for _, src := range l.sources {
		l.wg.Add(1)
		go func(src Source) {
			defer l.wg.Done()
			l.run(feedCtx, src)
		}(src)
	}
	l.log.Info("Live feed started", "collections", len(l.sources))
}

// Stop ends every subscription and closes all watcher channels.
func (l *LiveFeed) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	l.cancel()
	close(l.done)
	l.mu.Unlock()

	l.wg.Wait()

	l.mu.Lock()
	for collection, set := range l.watchers {
		for w := range set {
			close(w.ch)
		}
		delete(l.watchers, collection)
	}
	l.mu.Unlock()
	l.log.Info("Live feed stopped")
}

func (l *LiveFeed) IsLive(collection string) bool {
	for _, s := range l.sources {
		if s.Collection == collection {
			return true
		}
	}
	return false
}

// Snapshot returns the last delivered result set for collection. ok is false
// until the first delivery.
func (l *LiveFeed) Snapshot(collection string) ([]model.Document, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	docs, ok := l.snapshots[collection]
	if !ok {
		return nil, false
	}
	out := make([]model.Document, len(docs))
	copy(out, docs)
	return out, true
}

// Watch streams snapshots of collection until ctx ends or the feed stops.
// The channel holds at most one pending snapshot; a slow reader only ever
// sees the latest one.
func (l *LiveFeed) Watch(ctx context.Context, collection string) (<-chan []model.Document, error) {
	if !l.IsLive(collection) {
		return nil, errors.ErrNotLive
	}

	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return nil, errors.ErrFeedStopped
	}
	w := &watcher{ch: make(chan []model.Document, 1)}
	if docs, ok := l.snapshots[collection]; ok {
		w.ch <- docs
	}
	if l.watchers[collection] == nil {
		l.watchers[collection] = make(map[*watcher]struct{})
	}
	l.watchers[collection][w] = struct{}{}
	done := l.done
	l.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.watchers[collection][w]; ok {
			delete(l.watchers[collection], w)
			close(w.ch)
		}
	}()

	return w.ch, nil
}

func (l *LiveFeed) run(ctx context.Context, src Source) {
	retry := l.newBackOff()
	attempt := 0
	for {
		failed := make(chan error, 1)
		unsubscribe, err := l.store.Subscribe(ctx, src.Collection, src.Query(),
			func(docs []model.Document) { l.publish(src, docs) },
			func(err error) {
				select {
				case failed <- err:
				default:
				}
			},
		)
		if err == nil {
			attempt = 0
			retry.Reset()
			select {
			case <-ctx.Done():
				unsubscribe()
				return
			case err = <-failed:
				unsubscribe()
			}
		}
		if ctx.Err() != nil {
			return
		}

		attempt++
		delay := retry.NextBackOff()
		l.log.Warn("live subscription failed, keeping last snapshot",
			"collection", src.Collection,
			"attempt", attempt,
			"retry_in", delay,
			"error", err,
		)
		l.metrics.ObserveFetchFailure(src.Collection)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// newBackOff doubles the retry delay from baseBackoff up to maxBackoff and
// never gives up.
func (l *LiveFeed) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.baseBackoff
	b.MaxInterval = l.maxBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (l *LiveFeed) publish(src Source, docs []model.Document) {
	docs = withFallback(src, docs)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.snapshots[src.Collection] = docs
	for w := range l.watchers[src.Collection] {
		select {
		case <-w.ch:
		default:
		}
		w.ch <- docs
	}
	l.metrics.ObserveLiveDelivery(src.Collection)
}
