package events

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusdesk/internal/registration"
	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
)

// Handler wires the event registration endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the event routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/events/register", h.handleRegister)
}

type registerRequest struct {
	StudentID string `json:"student_id"`
	EventID   string `json:"event_id"`
}

type registerResponse struct {
	Status   string `json:"status"`
	Position int    `json:"position,omitempty"`
}

var outcomeStatuses = map[registration.Outcome]string{
	registration.OutcomeAdmitted:          "registered",
	registration.OutcomeAlreadyRegistered: "already_registered",
	registration.OutcomeWaitlisted:        "waitlisted",
	registration.OutcomeAlreadyWaitlisted: "already_waitlisted",
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.StudentID == "" || req.EventID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "student_id and event_id required"))
		return
	}

	result, err := h.service.RegisterStudent(ctx, req.StudentID, req.EventID)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) || dErrors.Is(err, dErrors.CodeValidation) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "event registration failed", "event", req.EventID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "event registration failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, registerResponse{
		Status:   outcomeStatuses[result.Outcome],
		Position: result.Position,
	})
}
