package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
// All Observe methods are safe on a nil receiver so callers that run without
// metrics (tests, METRICS_ENABLED=false) need no guards.
type Metrics struct {
	Registry *prometheus.Registry

	FetchFailures        *prometheus.CounterVec
	SearchDuration       *prometheus.HistogramVec
	LiveDeliveries       *prometheus.CounterVec
	BookingStatusChanges *prometheus.CounterVec
	KafkaMessages        *prometheus.CounterVec
	KafkaDuration        *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Collection reads that failed and were served as empty lists.",
		}, []string{"collection"}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end search pipeline latency by category.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"category"}),
		LiveDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_deliveries_total",
			Help:      "Snapshots delivered by live subscriptions.",
		}, []string{"collection"}),
		BookingStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_changes_total",
			Help:      "Booking status transitions applied by hosts.",
		}, []string{"status"}),
		KafkaMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_messages_total",
			Help:      "Kafka messages handled by direction and outcome.",
		}, []string{"direction", "topic", "outcome"}),
		KafkaDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_message_duration_seconds",
			Help:      "Time spent publishing or handling a Kafka message.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"direction", "topic"}),
	}

	registry.MustRegister(
		m.FetchFailures,
		m.SearchDuration,
		m.LiveDeliveries,
		m.BookingStatusChanges,
		m.KafkaMessages,
		m.KafkaDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveFetchFailure(collection string) {
	if m == nil {
		return
	}
	m.FetchFailures.WithLabelValues(collection).Inc()
}

func (m *Metrics) ObserveSearch(category string, d time.Duration) {
	if m == nil {
		return
	}
	m.SearchDuration.WithLabelValues(category).Observe(d.Seconds())
}

func (m *Metrics) ObserveLiveDelivery(collection string) {
	if m == nil {
		return
	}
	m.LiveDeliveries.WithLabelValues(collection).Inc()
}

func (m *Metrics) ObserveBookingStatusChange(status string) {
	if m == nil {
		return
	}
	m.BookingStatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveKafka(direction, topic string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.KafkaMessages.WithLabelValues(direction, topic, outcome).Inc()
	m.KafkaDuration.WithLabelValues(direction, topic).Observe(d.Seconds())
}
