package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"tembea/pkg/logger"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-16"

func signToken(t *testing.T, secret string, claims IdentityClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestIdentity(t *testing.T) {
	valid := signToken(t, testSecret, IdentityClaims{
		Name:  "Wanjiru",
		Email: "wanjiru@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	expired := signToken(t, testSecret, IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	wrongKey := signToken(t, "another-secret-value-xyz", IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	noSubject := signToken(t, testSecret, IdentityClaims{Name: "anon"})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUID    string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantUID: "user-1"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + wrongKey, wantStatus: http.StatusUnauthorized},
		{name: "no subject", header: "Bearer " + noSubject, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if id := IdentityFrom(r.Context()); id != nil {
					gotUID = id.UID
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Identity(testSecret, logger.Discard())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUID, gotUID)
		})
	}
}

func TestInMemoryRateStore(t *testing.T) {
	store := NewInMemoryRateStore(2, time.Minute)
	defer store.Stop()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		ok, err := store.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := store.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "third request in window should be rejected")

	ok, err = store.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "other clients keep their own budget")
}

func TestRateLimit_RejectsOverBudget(t *testing.T) {
	store := NewInMemoryRateStore(1, time.Minute)
	defer store.Stop()

	handler := RateLimit(store, nil, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
		req.Header.Set("X-Forwarded-For", "197.248.0.1, 10.0.0.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:51234"
	assert.Equal(t, "192.168.1.5", ClientIP(req))

	req.Header.Set("X-Forwarded-For", " 41.90.1.1 , 10.0.0.1")
	assert.Equal(t, "41.90.1.1", ClientIP(req))
}

func TestRequestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(200 * time.Millisecond):
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("bounded request times out", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
		RequestTimeout(10*time.Millisecond)(slow).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})

	t.Run("event stream is not bounded", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stream/experiences", nil)
		req.Header.Set("Accept", "text/event-stream")
		RequestTimeout(10*time.Millisecond)(slow).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestContentTypeValidation(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := ContentTypeValidation(logger.Discard())(ok)

	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		want        int
	}{
		{name: "get passes", method: http.MethodGet, want: http.StatusOK},
		{name: "empty post passes", method: http.MethodPost, want: http.StatusOK},
		{name: "json post passes", method: http.MethodPost, body: `{"reason":"x"}`, contentType: "application/json; charset=utf-8", want: http.StatusOK},
		{name: "form post rejected", method: http.MethodPost, body: "reason=x", contentType: "application/x-www-form-urlencoded", want: http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/bookings/id/1/cancel", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequestLogging_PropagatesRequestID(t *testing.T) {
	var seen string
	handler := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}
