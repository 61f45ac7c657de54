// Package http assembles the chi router from the per-domain handlers.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campusdesk/internal/audit"
	"campusdesk/internal/persistence"
	"campusdesk/internal/platform/metrics"
	"campusdesk/internal/platform/middleware"
	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/platform/middleware/metadata"
	"campusdesk/pkg/platform/middleware/requesttime"
	"campusdesk/pkg/requestcontext"
)

// Registrar is implemented by every domain handler.
type Registrar interface {
	Register(r chi.Router)
}

// Dependencies carries everything the router needs beyond the handlers.
type Dependencies struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Auditor  *audit.Publisher
	Persist  *persistence.FileStore
	Handlers []Registrar
}

const requestTimeout = 30 * time.Second

// NewRouter builds the full middleware chain and mounts every handler.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)
	if deps.Metrics != nil {
		r.Use(middleware.Latency(deps.Metrics))
	}

	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/admin/reset", handleReset(deps))

	for _, handler := range deps.Handlers {
		handler.Register(r)
	}
	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   requestcontext.Now(r.Context()).Format(time.RFC3339),
	})
}

// handleReset reloads in-memory state from the data file, discarding any
// mutations made since the last checkpoint.
func handleReset(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := deps.Persist.Load(ctx); err != nil {
			deps.Logger.ErrorContext(ctx, "reset failed", "error", err.Error())
			shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "reset failed"))
			return
		}

		if deps.Auditor != nil {
			deps.Auditor.Emit(ctx, "admin", audit.ActionReset, nil)
		}
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	}
}
