package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "tembea/pkg/errors"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"forbidden", apperrors.Forbidden("You do not have permission to view this booking"), http.StatusForbidden, "You do not have permission to view this booking"},
		{"not found", apperrors.NotFound("Booking"), http.StatusNotFound, "Booking not found"},
		{"conflict", apperrors.Conflict("Booking is already cancelled"), http.StatusConflict, "Booking is already cancelled"},
		{"invalid input", apperrors.InvalidInput("bad category"), http.StatusBadRequest, "bad category"},
		{"plain error hides cause", errors.New("mongo: secret detail"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := WriteError(w, tt.err); err != nil {
				t.Fatalf("WriteError returned %v", err)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error != tt.wantBody {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantBody)
			}
		})
	}
}

func TestExtractLimitOffset(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=500&offset=-3", nil)
	limit, offset, err := ExtractLimitOffset(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 100 {
		t.Errorf("limit = %d, want clamp to 100", limit)
	}
	if offset != 0 {
		t.Errorf("offset = %d, want 0", offset)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=abc", nil)
	if _, _, err := ExtractLimitOffset(r); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for non-numeric limit, got %v", err)
	}
}
