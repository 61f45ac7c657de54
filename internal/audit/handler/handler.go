package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"campusdesk/internal/audit"
	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
)

// Service is the read side of the audit trail.
type Service interface {
	List(ctx context.Context, since time.Time) ([]audit.Event, error)
}

// Handler exposes the audit log listing endpoint.
type Handler struct {
	logger *slog.Logger
	audit  Service
}

func New(audit Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, audit: audit}
}

// Register mounts the audit routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/logs", h.handleListLogs)
}

type listLogsResponse struct {
	Count int           `json:"count"`
	Logs  []audit.Event `json:"logs"`
}

func (h *Handler) handleListLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "since must be RFC3339"))
			return
		}
		since = parsed
	}

	logs, err := h.audit.List(ctx, since)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit logs", "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list audit logs"))
		return
	}
	if logs == nil {
		logs = []audit.Event{}
	}

	shared.WriteJSON(w, http.StatusOK, listLogsResponse{Count: len(logs), Logs: logs})
}
