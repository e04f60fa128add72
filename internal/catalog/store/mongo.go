package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"tembea/internal/catalog/fetcher"
	"tembea/pkg/logger"
	"tembea/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSubscriptionClosed = errors.New("change notifications closed")

// ChangeNotifier signals that a collection may have changed. Signals carry no
// payload; subscribers re-read the collection.
type ChangeNotifier interface {
	Watch(ctx context.Context, collection string) (<-chan struct{}, <-chan error, error)
}

type MongoStore struct {
	db          *mongo.Database
	notifier    ChangeNotifier
	readTimeout time.Duration
	log         *logger.Logger
}

func NewMongoStore(db *mongo.Database, notifier ChangeNotifier, readTimeout time.Duration, log *logger.Logger) *MongoStore {
	return &MongoStore{
		db:          db,
		notifier:    notifier,
		readTimeout: readTimeout,
		log:         log,
	}
}

// withTimeout caps ctx at the read timeout, keeping an earlier deadline.
func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < s.readTimeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, s.readTimeout)
}

func (s *MongoStore) Query(ctx context.Context, collection string, q fetcher.Query) ([]model.Document, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.db.Collection(collection).Find(ctx, filterFor(q), findOptions(q))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}

	docs := make([]model.Document, 0, len(raw))
	for _, r := range raw {
		docs = append(docs, toDocument(r))
	}
	return docs, nil
}

func filterFor(q fetcher.Query) bson.M {
	filter := bson.M{}
	for k, v := range q.Where {
		filter[k] = v
	}
	return filter
}

func findOptions(q fetcher.Query) *options.FindOptions {
	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}

// Subscribe delivers the current result set, then re-reads the collection on
// every change signal. Signals that pile up during a read are coalesced into
// one re-read.
func (s *MongoStore) Subscribe(ctx context.Context, collection string, q fetcher.Query, onChange func([]model.Document), onError func(error)) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	signals, errs, err := s.notifier.Watch(subCtx, collection)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to watch %s: %w", collection, err)
	}

	docs, err := s.Query(subCtx, collection, q)
	if err != nil {
		cancel()
		return nil, err
	}
	onChange(docs)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-subCtx.Done():
				return
			case err, ok := <-errs:
				if subCtx.Err() != nil {
					return
				}
				if !ok || err == nil {
					err = ErrSubscriptionClosed
				}
				onError(err)
				return
			case _, ok := <-signals:
				if subCtx.Err() != nil {
					return
				}
				if !ok {
					onError(ErrSubscriptionClosed)
					return
				}
				drain(signals)
				docs, err := s.Query(subCtx, collection, q)
				if err != nil {
					if subCtx.Err() == nil {
						onError(err)
					}
					return
				}
				onChange(docs)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

func drain(ch <-chan struct{}) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
