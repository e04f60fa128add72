package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultBookingEventsTopic  = "booking.status_changed"
	DefaultCatalogChangesTopic = "catalog.changes"
	DefaultConsumerGroupID     = "tembea-catalog"
	DefaultDLQTopic            = "tembea.dlq"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // all replicas
	DefaultProducerCompression  = "snappy"

	DefaultConsumerStartOffset    = -1 // newest
	DefaultConsumerMaxWait        = 500 * time.Millisecond
	DefaultConsumerCommitInterval = 1 * time.Second
	DefaultConsumerMaxRetries     = 3
)
