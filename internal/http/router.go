package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"validarfc/internal/platform/config"
	"validarfc/internal/platform/metrics"
	"validarfc/internal/platform/middleware"
	dErrors "validarfc/pkg/domain-errors"
	"validarfc/pkg/platform/httputil"
	"validarfc/pkg/platform/middleware/metadata"
	"validarfc/pkg/platform/middleware/requesttime"
)

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the shared middleware chain and every module's routes.
// Recovery sits inside the request ID and access logger so a recovered panic
// is logged with its request ID and still produces an access line. The
// metrics endpoint is mounted outside the latency middleware so scrapes do not
// observe themselves.
func NewRouter(cfg config.Server, logger *slog.Logger, m *metrics.Metrics, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{
			Error:            "method_not_allowed",
			ErrorDescription: req.Method + " is not allowed on " + req.URL.Path,
		})
	})

	if cfg.MetricsEnabled && m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		if m != nil {
			api.Use(middleware.LatencyMiddleware(m))
		}
		for _, mod := range modules {
			mod.Register(api)
		}
	})

	return r
}
