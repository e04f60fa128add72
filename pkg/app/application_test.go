package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tembea/pkg/client"
	"tembea/pkg/config"
	"tembea/pkg/logger"
	"tembea/pkg/middleware"
	"tembea/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/ping", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func testConfig(metricsEnabled bool) *config.Config {
	return &config.Config{
		Port:              "8080",
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    1 << 20,
		ShutdownTimeout:   time.Second,
		JWTSecret:         "0123456789abcdef0123",
		MetricsEnabled:    metricsEnabled,
		Log:               logger.Discard(),
		Client:            client.NewClient(),
	}
}

func serve(a *Application, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.server.Handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestApplication_Routes(t *testing.T) {
	a := NewApplication(testConfig(true), "tembea_test")
	a.SetApp(pingHandler{})
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateStore.Stop()
	})

	assert.Equal(t, http.StatusOK, serve(a, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(a, http.MethodGet, "/ready").Code)
	assert.Equal(t, http.StatusOK, serve(a, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusNoContent, serve(a, http.MethodGet, "/api/v1/ping").Code)
}

func TestApplication_MetricsDisabled(t *testing.T) {
	a := NewApplication(testConfig(false), "tembea_test")
	a.SetApp(pingHandler{})
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateStore.Stop()
	})

	assert.Nil(t, a.Metrics())
	assert.Equal(t, http.StatusNotFound, serve(a, http.MethodGet, "/metrics").Code)
}

func TestApplication_WithIdentity(t *testing.T) {
	a := NewApplication(testConfig(false), "tembea_test")
	a.SetApp(pingHandler{}, WithIdentity())
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateStore.Stop()
	})

	assert.Equal(t, http.StatusUnauthorized, serve(a, http.MethodGet, "/api/v1/ping").Code)
	assert.Equal(t, http.StatusOK, serve(a, http.MethodGet, "/health").Code)
}

func TestApplication_ShutdownHooksRunInReverse(t *testing.T) {
	a := NewApplication(testConfig(false), "tembea_test")
	a.SetApp(pingHandler{})

	var order []string
	a.OnShutdown("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	a.OnShutdown("second", func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	a.gracefulShutdown()
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestRateKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	r.RemoteAddr = "10.0.0.7:5123"
	assert.Equal(t, "ip:10.0.0.7", rateKey(r))

	r = r.WithContext(middleware.WithIdentity(r.Context(), &model.Identity{UID: "guest-1"}))
	assert.Equal(t, "uid:guest-1", rateKey(r))
}

type blockingHandler struct {
	entered chan struct{}
	release chan struct{}
}

func (h blockingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/stream/:category", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
		http.NewResponseController(w).Flush()
		close(h.entered)
		select {
		case <-h.release:
		case <-r.Context().Done():
		}
	})
}

func TestApplication_DrainEndsOpenStreams(t *testing.T) {
	cfg := testConfig(false)
	cfg.ShutdownTimeout = 5 * time.Second
	h := blockingHandler{entered: make(chan struct{}), release: make(chan struct{})}

	a := NewApplication(cfg, "tembea_test")
	var drained atomic.Bool
	a.OnDrain("stream-source", func() {
		drained.Store(true)
		close(h.release)
	})
	a.SetApp(h)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = a.server.Serve(ln) }()

	go func() {
		req, _ := http.NewRequest(http.MethodGet, "http://"+ln.Addr().String()+"/api/v1/stream/experiences", nil)
		req.Header.Set("Accept", "text/event-stream")
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	}()

	select {
	case <-h.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler never started")
	}

	start := time.Now()
	a.gracefulShutdown()
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, drained.Load())
}
