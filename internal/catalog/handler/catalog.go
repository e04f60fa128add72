package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tembea/internal/catalog/presenter"
	"tembea/internal/catalog/service"
	"tembea/internal/catalog/validator"
	apperrors "tembea/pkg/errors"
	httputil "tembea/pkg/http"
	"tembea/pkg/logger"
	"tembea/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CatalogHandler struct {
	service   service.CatalogService
	validator *validator.SearchValidator
	log       *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, validator *validator.SearchValidator, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:   service,
		validator: validator,
		log:       log,
	}
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	req := model.SearchRequest{
		Location: query.Get("location"),
		Category: query.Get("category"),
		Sub:      query.Get("sub"),
		Lat:      query.Get("lat"),
		Lng:      query.Get("lng"),
	}

	if err := h.validator.Validate(&req); err != nil {
		h.log.Warn("Search request validation failed", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Validation("Invalid search parameters", map[string]any{"errors": err})); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	q, err := req.Query()
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	view, err := h.service.Search(r.Context(), q)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) Destinations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	view, err := h.service.Destinations(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Destinations", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Destinations", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.Categories()); err != nil {
		h.log.Error("failed to write success response", "handler", "Categories", "operation", "WriteSuccess", "error", err)
	}
}

// Stream serves Server-Sent Events: one "view" event per delivery of the
// category's live source. Errors raised before the first event are returned
// as regular JSON errors.
func (h *CatalogHandler) Stream(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	category, err := model.ParseCategory(ps.ByName("category"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Stream", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	// The server's WriteTimeout would otherwise cut the stream.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.log.Warn("failed to clear stream write deadline", "category", category.String(), "error", err)
	}

	started := false
	emit := func(view *presenter.View) error {
		payload, err := json.Marshal(view)
		if err != nil {
			return fmt.Errorf("encode view: %w", err)
		}
		if !started {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := fmt.Fprintf(w, "event: view\ndata: %s\n\n", payload); err != nil {
			return err
		}
		if err := rc.Flush(); err != nil {
			return fmt.Errorf("flush event: %w", err)
		}
		return nil
	}

	err = h.service.Stream(r.Context(), category, r.URL.Query().Get("sub"), emit)
	if err == nil {
		return
	}
	if !started {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Stream", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	h.log.Warn("Stream ended with error", "category", category.String(), "error", err)
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/search", h.Search)
	router.GET("/api/v1/destinations", h.Destinations)
	router.GET("/api/v1/categories", h.Categories)
	router.GET("/api/v1/stream/:category", h.Stream)
}
