package kafka_middleware

import (
	"context"
	"time"

	"tembea/pkg/kafka"
	"tembea/pkg/metrics"
)

const (
	directionProduce = "produce"
	directionConsume = "consume"
)

func MetricsProducerMiddleware(m *metrics.Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		m.ObserveKafka(directionProduce, msg.Topic, err, time.Since(start))
		return err
	}
}

func MetricsConsumerMiddleware(m *metrics.Metrics) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		m.ObserveKafka(directionConsume, msg.Topic, err, time.Since(start))
		return err
	}
}
