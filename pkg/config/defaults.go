package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tembea"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultDisplayLocale       = "en"
	DefaultPlaceholderImageURL = "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800"
	DefaultChangeNotifier      = ChangeNotifierChangeStream
	DefaultLiveRetryMaxBackoff = 30 * time.Second
	DefaultKafkaEnabled        = false
	DefaultMetricsEnabled      = true
)

const (
	ChangeNotifierChangeStream = "changestream"
	ChangeNotifierKafka        = "kafka"
)
