package leave

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
)

// Handler wires the leave endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the leave routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/leave/apply", h.handleApply)
}

type applyRequest struct {
	StudentID string `json:"student_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	LeaveType string `json:"leave_type"`
}

type applyResponse struct {
	LeaveID string `json:"leave_id"`
	Status  string `json:"status"`
	Days    int    `json:"duration_days"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	request, err := h.service.Apply(ctx, Application{
		StudentID: req.StudentID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		LeaveType: req.LeaveType,
	})
	if err != nil {
		if dErrors.Is(err, dErrors.CodeValidation) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "leave application failed", "student", req.StudentID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "leave application failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, applyResponse{
		LeaveID: request.ID,
		Status:  string(request.Status),
		Days:    request.Days,
	})
}
