package kafka_config

const (
	EnvKafkaBrokers = "KAFKA_BROKERS"

	EnvKafkaBookingEventsTopic  = "KAFKA_BOOKING_EVENTS_TOPIC"
	EnvKafkaCatalogChangesTopic = "KAFKA_CATALOG_CHANGES_TOPIC"
	EnvKafkaConsumerGroupID     = "KAFKA_CONSUMER_GROUP_ID"
	EnvKafkaDLQTopic            = "KAFKA_DLQ_TOPIC"

	EnvKafkaProducerMaxAttempts  = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaProducerBatchTimeout = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvKafkaProducerRequireAcks  = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvKafkaProducerCompression  = "KAFKA_PRODUCER_COMPRESSION"

	EnvKafkaConsumerStartOffset    = "KAFKA_CONSUMER_START_OFFSET"
	EnvKafkaConsumerMaxWait        = "KAFKA_CONSUMER_MAX_WAIT"
	EnvKafkaConsumerCommitInterval = "KAFKA_CONSUMER_COMMIT_INTERVAL"
	EnvKafkaConsumerMaxRetries     = "KAFKA_CONSUMER_MAX_RETRIES"
)
