package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("tembea_test")

	m.ObserveFetchFailure("food")
	m.ObserveFetchFailure("food")
	m.ObserveLiveDelivery("activities")
	m.ObserveBookingStatusChange("confirmed")
	m.ObserveKafka("produce", "booking.status_changed", errors.New("broker down"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchFailures.WithLabelValues("food")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LiveDeliveries.WithLabelValues("activities")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingStatusChanges.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KafkaMessages.WithLabelValues("produce", "booking.status_changed", "error")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetchFailure("food")
		m.ObserveSearch("Stays", time.Second)
		m.ObserveLiveDelivery("activities")
		m.ObserveBookingStatusChange("cancelled")
		m.ObserveKafka("consume", "catalog.changes", nil, time.Second)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New("tembea_test")
	m.ObserveSearch("Stays", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "tembea_test_search_duration_seconds"))
}
