package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tembea/internal/bookings/service"
	apperrors "tembea/pkg/errors"
	httputil "tembea/pkg/http"
	"tembea/pkg/logger"
	"tembea/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type CancelRequest struct {
	Reason string `json:"reason"`
}

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListMine", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.ListForUser(r.Context(), middleware.IdentityFrom(r.Context()), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListMine", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListMine", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) ListHosting(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListHosting", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.ListForHost(r.Context(), middleware.IdentityFrom(r.Context()), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListHosting", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListHosting", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetForUser(r.Context(), middleware.IdentityFrom(r.Context()), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.Accept(r.Context(), middleware.IdentityFrom(r.Context()), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Accept", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Accept", "operation", "WriteSuccess", "error", err)
	}
}

// Cancel accepts an optional JSON body carrying the reason.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Cancel(r.Context(), middleware.IdentityFrom(r.Context()), ps.ByName("id"), req.Reason)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/bookings", h.ListMine)
	router.GET("/api/v1/bookings/hosting", h.ListHosting)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.POST("/api/v1/bookings/id/:id/accept", h.Accept)
	router.POST("/api/v1/bookings/id/:id/cancel", h.Cancel)
}
