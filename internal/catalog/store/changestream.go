package store

import (
	"context"
	"fmt"
	"tembea/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeStreamNotifier turns MongoDB change streams into change signals.
// Requires a replica set or sharded cluster.
type ChangeStreamNotifier struct {
	db  *mongo.Database
	log *logger.Logger
}

func NewChangeStreamNotifier(db *mongo.Database, log *logger.Logger) *ChangeStreamNotifier {
	return &ChangeStreamNotifier{db: db, log: log}
}

func (n *ChangeStreamNotifier) Watch(ctx context.Context, collection string) (<-chan struct{}, <-chan error, error) {
	stream, err := n.db.Collection(collection).Watch(ctx, mongo.Pipeline{}, options.ChangeStream())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open change stream on %s: %w", collection, err)
	}

	signals := make(chan struct{}, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(signals)
		defer func() {
			if err := stream.Close(context.Background()); err != nil {
				n.log.Debug("change stream close failed", "collection", collection, "error", err)
			}
		}()

		for stream.Next(ctx) {
			select {
			case signals <- struct{}{}:
			default:
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			errs <- fmt.Errorf("change stream on %s: %w", collection, err)
		}
	}()

	return signals, errs, nil
}
