package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvRedisAddr         = "REDIS_ADDR"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvJWTSecret = "JWT_SECRET"

	EnvDisplayLocale       = "DISPLAY_LOCALE"
	EnvPlaceholderImageURL = "PLACEHOLDER_IMAGE_URL"
	EnvChangeNotifier      = "CATALOG_CHANGE_NOTIFIER"
	EnvLiveRetryMaxBackoff = "LIVE_RETRY_MAX_BACKOFF"
	EnvKafkaEnabled        = "KAFKA_ENABLED"
	EnvMetricsEnabled      = "METRICS_ENABLED"
)
