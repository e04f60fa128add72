package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tembea/pkg/config"
	"tembea/pkg/contracts"
	"tembea/pkg/health"
	"tembea/pkg/metrics"
	"tembea/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Option func(*Application)

// WithIdentity requires a verified bearer token on every application route.
func WithIdentity() Option {
	return func(a *Application) {
		a.requireIdentity = true
	}
}

type shutdownHook struct {
	name string
	fn   func(ctx context.Context) error
}

type Application struct {
	cfg              *config.Config
	server           *http.Server
	metrics          *metrics.Metrics
	health           *health.Handler
	idempotencyStore *middleware.InMemoryIdempotencyStore
	rateStore        middleware.RateStore
	healthHandler    http.Handler
	appHttpHandler   http.Handler
	requireIdentity  bool
	drains           []shutdownHook
	hooks            []shutdownHook
}

func NewApplication(cfg *config.Config, namespace string) *Application {
	a := &Application{
		cfg:    cfg,
		health: health.NewHandler(cfg.Log),
	}
	if cfg.MetricsEnabled {
		a.metrics = metrics.New(namespace)
	}
	return a
}

// Metrics is nil when metrics are disabled; its methods accept that.
func (a *Application) Metrics() *metrics.Metrics {
	return a.metrics
}

func (a *Application) Health() *health.Handler {
	return a.health
}

// OnShutdown registers fn to run before the shared clients are closed.
// Hooks run in reverse registration order.
func (a *Application) OnShutdown(name string, fn func(ctx context.Context) error) {
	a.hooks = append(a.hooks, shutdownHook{name: name, fn: fn})
}

// OnDrain registers fn to run when shutdown begins, concurrently with
// server.Shutdown. Whatever keeps long-lived handlers open stops here.
func (a *Application) OnDrain(name string, fn func()) {
	a.drains = append(a.drains, shutdownHook{name: name, fn: func(context.Context) error {
		fn()
		return nil
	}})
}

func (a *Application) SetApp(appHandler contracts.Handler, opts ...Option) {
	for _, opt := range opts {
		opt(a)
	}
	a.setHealthHandler()
	a.setAppHandler(appHandler)
	a.setAppServer()
}

func (a *Application) setHealthHandler() {
	if a.cfg.Client.Mongo != nil {
		mongoClient := a.cfg.Client.Mongo
		a.health.Register("mongodb", func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		})
	}
	if a.cfg.Client.Redis != nil {
		redisClient := a.cfg.Client.Redis
		a.health.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	healthRouter := httprouter.New()
	a.health.RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(appHandler contracts.Handler) {
	appRouter := httprouter.New()
	appHandler.RegisterRoutes(appRouter)

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	if a.cfg.Client.Redis != nil {
		a.rateStore = middleware.NewRedisRateStore(a.cfg.Client.Redis, a.cfg.RateLimitRequests, a.cfg.RateLimitWindow)
		a.cfg.Log.Info("Rate limiting backed by Redis")
	} else {
		a.rateStore = middleware.NewInMemoryRateStore(a.cfg.RateLimitRequests, a.cfg.RateLimitWindow)
	}

	var appHttpHandler http.Handler = appRouter
	appHttpHandler = middleware.Idempotency(a.idempotencyStore, "Idempotency-Key")(appHttpHandler)
	appHttpHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHttpHandler)
	appHttpHandler = middleware.RateLimit(a.rateStore, rateKey, a.cfg.Log)(appHttpHandler)
	if a.requireIdentity {
		appHttpHandler = middleware.Identity(a.cfg.JWTSecret, a.cfg.Log)(appHttpHandler)
		a.cfg.Log.Info("Bearer token verification enabled")
	}
	appHttpHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHttpHandler)
	appHttpHandler = middleware.RequestLogging(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.Recovery(a.cfg.Log)(appHttpHandler)
	a.appHttpHandler = appHttpHandler
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

// rateKey budgets verified callers by user id and everyone else by address.
func rateKey(r *http.Request) string {
	if identity := middleware.IdentityFrom(r.Context()); identity != nil {
		return "uid:" + identity.UID
	}
	return "ip:" + middleware.ClientIP(r)
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	if a.metrics != nil {
		mux.Handle("/metrics", a.metrics.Handler())
	}
	mux.Handle("/", a.appHttpHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	for _, drain := range a.drains {
		log, drain := a.cfg.Log, drain
		a.server.RegisterOnShutdown(func() {
			log.Info("Draining", "hook", drain.name)
			_ = drain.fn(context.Background())
		})
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port, "metrics", a.metrics != nil)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.Log.Info("Stopping background workers...")
	for i := len(a.hooks) - 1; i >= 0; i-- {
		hook := a.hooks[i]
		if err := hook.fn(ctx); err != nil {
			a.cfg.Log.Error("Shutdown hook failed", "hook", hook.name, "error", err)
		}
	}
	a.idempotencyStore.Stop()
	a.rateStore.Stop()
	a.cfg.Log.Info("Background workers stopped")

	a.cfg.GracefulShutdown()
	a.cfg.Log.Info("Server stopped gracefully")
}
