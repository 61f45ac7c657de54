package exam

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
)

// Handler wires the exam endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the exam routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/exam/timetable/{studentID}", h.handleTimetable)
	r.Post("/exam/special", h.handleSpecial)
}

type timetableResponse struct {
	StudentID string `json:"student_id"`
	Slots     []Slot `json:"timetable"`
}

func (h *Handler) handleTimetable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := chi.URLParam(r, "studentID")

	slots, err := h.service.Timetable(ctx, studentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "timetable lookup failed", "student", studentID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "timetable lookup failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, timetableResponse{StudentID: studentID, Slots: slots})
}

type specialRequest struct {
	StudentID  string `json:"student_id"`
	CourseCode string `json:"course_code"`
	Reason     string `json:"reason"`
}

type specialResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

func (h *Handler) handleSpecial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req specialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	request, err := h.service.RequestSpecial(ctx, req.StudentID, req.CourseCode, req.Reason)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeValidation) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "special exam request failed", "student", req.StudentID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "special exam request failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, specialResponse{RequestID: request.ID, Status: request.Status})
}
