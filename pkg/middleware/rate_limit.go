package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"tembea/pkg/logger"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateStore decides whether another request for key fits in the current window.
type RateStore interface {
	Allow(ctx context.Context, key string) (bool, error)
	Stop()
}

type KeyExtractor func(r *http.Request) string

// InMemoryRateStore is a per-process sliding window limiter.
type InMemoryRateStore struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewInMemoryRateStore(limit int, window time.Duration) *InMemoryRateStore {
	store := &InMemoryRateStore{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		stopCh:   make(chan struct{}),
	}

	go store.cleanup()

	return store
}

func (s *InMemoryRateStore) cleanup() {
	ticker := time.NewTicker(s.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, timestamps := range s.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > s.window {
					delete(s.requests, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemoryRateStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *InMemoryRateStore) Allow(_ context.Context, key string) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	timestamps := s.requests[key]
	valid := timestamps[:0]
	for _, ts := range timestamps {
		if now.Sub(ts) < s.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= s.limit {
		s.requests[key] = valid
		return false, nil
	}

	s.requests[key] = append(valid, now)
	return true, nil
}

// RedisRateStore shares a fixed-window counter across replicas.
type RedisRateStore struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisRateStore(rdb *redis.Client, limit int, window time.Duration) *RedisRateStore {
	return &RedisRateStore{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

func (s *RedisRateStore) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().UnixNano() / int64(s.window)
	redisKey := fmt.Sprintf("%s%s:%d", s.prefix, key, bucket)

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(s.limit), nil
}

func (s *RedisRateStore) Stop() {}

// RateLimit rejects callers over their budget. A failing store lets the
// request through.
func RateLimit(store RateStore, extractor KeyExtractor, log *logger.Logger) func(http.Handler) http.Handler {
	if extractor == nil {
		extractor = ClientIP
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extractor(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, err := store.Allow(r.Context(), key)
			if err != nil {
				log.Warn("Rate limit store unavailable",
					"request_id", RequestID(r.Context()),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				log.Warn("Rate limit exceeded",
					"request_id", RequestID(r.Context()),
					"client", key,
					"path", r.URL.Path,
				)
				writeRawError(w, http.StatusTooManyRequests, `{"error":"Rate limit exceeded","code":"RATE_LIMITED"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP keys on the first X-Forwarded-For hop, falling back to the peer address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
