// Package health serves the liveness endpoint used by orchestrator probes.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"validarfc/pkg/platform/httputil"
	"validarfc/pkg/requestcontext"
)

// StatusOK is the only status the endpoint reports.
const StatusOK = "ok"

// Response is the body of GET /health.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Handler has no dependencies; the process being able to answer is the signal.
type Handler struct{}

// New constructs the health handler.
func New() *Handler {
	return &Handler{}
}

// Register mounts the health endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleHealth)
}

// HandleHealth always answers 200 with the request time.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, Response{
		Status:    StatusOK,
		Timestamp: requestcontext.Now(r.Context()).UTC().Format(time.RFC3339),
	})
}
