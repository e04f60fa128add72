package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"tembea/pkg/client"
	"tembea/pkg/logger"
	"time"

	"github.com/joho/godotenv"
)

var (
	mongoURIRegex      = regexp.MustCompile(`^mongodb(\+srv)?://`)
	mongoCredentialRgx = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RedisAddr         string

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	JWTSecret string

	DisplayLocale       string
	PlaceholderImageURL string
	ChangeNotifier      string
	LiveRetryMaxBackoff time.Duration
	KafkaEnabled        bool
	MetricsEnabled      bool

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	envFileErr := godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		RedisAddr:         getEnvStr(EnvRedisAddr, ""),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),

		DisplayLocale:       getEnvStr(EnvDisplayLocale, DefaultDisplayLocale),
		PlaceholderImageURL: getEnvStr(EnvPlaceholderImageURL, DefaultPlaceholderImageURL),
		ChangeNotifier:      getEnvStr(EnvChangeNotifier, DefaultChangeNotifier),
		LiveRetryMaxBackoff: getEnvDuration(EnvLiveRetryMaxBackoff, DefaultLiveRetryMaxBackoff),
		KafkaEnabled:        getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		MetricsEnabled:      getEnvBool(EnvMetricsEnabled, DefaultMetricsEnabled),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	// A missing .env file is normal outside local development.
	if envFileErr != nil && !errors.Is(envFileErr, fs.ErrNotExist) {
		cfg.Log.Warn("Failed to parse .env file", "error", envFileErr)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects the shared Redis client when REDIS_ADDR is configured.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !mongoURIRegex.MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"LiveRetryMaxBackoff", cfg.LiveRetryMaxBackoff},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 16 {
		errors = append(errors, "JWTSecret must be at least 16 characters long")
	}

	if cfg.DisplayLocale == "" {
		errors = append(errors, "DisplayLocale cannot be empty")
	}
	if u, err := url.Parse(cfg.PlaceholderImageURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("PlaceholderImageURL must be an absolute URL, got: %s", cfg.PlaceholderImageURL))
	}

	switch cfg.ChangeNotifier {
	case ChangeNotifierChangeStream:
	case ChangeNotifierKafka:
		if !cfg.KafkaEnabled {
			errors = append(errors, "CATALOG_CHANGE_NOTIFIER=kafka requires KAFKA_ENABLED=true")
		}
	default:
		errors = append(errors, fmt.Sprintf("ChangeNotifier must be one of [%s, %s], got: %s", ChangeNotifierChangeStream, ChangeNotifierKafka, cfg.ChangeNotifier))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"redis_enabled", cfg.RedisAddr != "",
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"jwt_secret_set", cfg.JWTSecret != "",
		"display_locale", cfg.DisplayLocale,
		"change_notifier", cfg.ChangeNotifier,
		"live_retry_max_backoff", cfg.LiveRetryMaxBackoff,
		"kafka_enabled", cfg.KafkaEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
	)
}

func redactMongoURI(uri string) string {
	return mongoCredentialRgx.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
