package health

import (
	"context"
	"net/http"
	"time"

	httputil "tembea/pkg/http"
	"tembea/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const readyTimeout = 2 * time.Second

type Response struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Check pings one dependency.
type Check func(ctx context.Context) error

type Handler struct {
	checks map[string]Check
	log    *logger.Logger
}

func NewHandler(log *logger.Logger) *Handler {
	return &Handler{
		checks: make(map[string]Check),
		log:    log,
	}
}

// Register adds a readiness check under name.
func (h *Handler) Register(name string, check Check) *Handler {
	h.checks[name] = check
	return h
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, Response{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	resp := Response{Status: "ready", Dependencies: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Error("Dependency health check failed",
				"dependency", name,
				"error", err,
				"path", r.URL.Path,
			)
			resp.Dependencies[name] = "error"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[name] = "ok"
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
