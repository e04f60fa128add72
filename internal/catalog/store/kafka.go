package store

import (
	"context"
	"sync"
	"tembea/pkg/kafka"
	"tembea/pkg/logger"
)

const EventTypeCatalogChanged = "catalog.changed"

// CatalogChange is the payload on the catalog changes topic. The message key
// carries the collection when present.
type CatalogChange struct {
	Collection string `json:"collection"`
	DocumentID string `json:"document_id,omitempty"`
	Operation  string `json:"operation,omitempty"`
}

// KafkaNotifier fans catalog change events consumed from Kafka out to local
// watchers. Every replica needs its own consumer group so each one sees every
// event.
type KafkaNotifier struct {
	mu       sync.Mutex
	watchers map[string]map[chan struct{}]struct{}
	log      *logger.Logger
}

func NewKafkaNotifier(log *logger.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		watchers: make(map[string]map[chan struct{}]struct{}),
		log:      log,
	}
}

func (n *KafkaNotifier) Watch(ctx context.Context, collection string) (<-chan struct{}, <-chan error, error) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	if n.watchers[collection] == nil {
		n.watchers[collection] = make(map[chan struct{}]struct{})
	}
	n.watchers[collection][ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.watchers[collection], ch)
		n.mu.Unlock()
		close(ch)
	}()

	return ch, nil, nil
}

// Handle is the consumer handler for the catalog changes topic.
func (n *KafkaNotifier) Handle(ctx context.Context, msg kafka.Message) error {
	collection := msg.Key
	if collection == "" {
		var change CatalogChange
		if err := msg.DecodeValue(&change); err != nil {
			return kafka.NewPermanentError("undecodable catalog change", err)
		}
		collection = change.Collection
	}
	if collection == "" {
		return kafka.NewPermanentError("catalog change without collection", nil)
	}

	signalled := n.Notify(collection)
	n.log.Debug("catalog change received",
		"collection", collection,
		"event_id", msg.GetEventID(),
		"watchers", signalled,
	)
	return nil
}

// Notify signals every watcher of collection and returns how many there were.
func (n *KafkaNotifier) Notify(collection string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.watchers[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return len(n.watchers[collection])
}
