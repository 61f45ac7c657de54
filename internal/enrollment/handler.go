package enrollment

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusdesk/internal/registration"
	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
)

// Handler wires the enrollment endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the enrollment routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/enroll", h.handleEnroll)
	r.Get("/enroll/status/{courseCode}", h.handleStatus)
	r.Get("/courses", h.handleListCourses)
}

type enrollRequest struct {
	StudentID  string `json:"student_id"`
	CourseCode string `json:"course_code"`
}

type enrollResponse struct {
	Status   string `json:"status"`
	Course   string `json:"course"`
	Position int    `json:"position,omitempty"`
}

// outcomeStatuses maps engine outcomes to the legacy wire statuses.
var outcomeStatuses = map[registration.Outcome]string{
	registration.OutcomeAdmitted:          "enrolled",
	registration.OutcomeAlreadyRegistered: "already_enrolled",
	registration.OutcomeWaitlisted:        "waitlisted",
	registration.OutcomeAlreadyWaitlisted: "already_waitlisted",
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.StudentID == "" || req.CourseCode == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "student_id and course_code required"))
		return
	}

	result, err := h.service.Enroll(ctx, req.StudentID, req.CourseCode)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) || dErrors.Is(err, dErrors.CodeValidation) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "enrollment failed",
			"course", req.CourseCode,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "enrollment failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, enrollResponse{
		Status:   outcomeStatuses[result.Outcome],
		Course:   req.CourseCode,
		Position: result.Position,
	})
}

type statusResponse struct {
	Course   string                       `json:"course"`
	Enrolled []string                     `json:"enrolled"`
	Waitlist []registration.WaitlistEntry `json:"waitlist"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseCode := chi.URLParam(r, "courseCode")

	resource, err := h.service.Status(ctx, courseCode)
	if err != nil {
		h.logger.ErrorContext(ctx, "status lookup failed", "course", courseCode, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "status lookup failed"))
		return
	}

	resp := statusResponse{
		Course:   courseCode,
		Enrolled: resource.Holders,
		Waitlist: resource.Waitlist,
	}
	if resp.Enrolled == nil {
		resp.Enrolled = []string{}
	}
	if resp.Waitlist == nil {
		resp.Waitlist = []registration.WaitlistEntry{}
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

type courseView struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	Capacity int    `json:"capacity"`
}

func (h *Handler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	courses, err := h.service.ListCourses(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "course listing failed", "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "course listing failed"))
		return
	}

	views := make([]courseView, 0, len(courses))
	for _, course := range courses {
		views = append(views, courseView{Code: course.ID, Title: course.Name, Capacity: course.Capacity})
	}
	shared.WriteJSON(w, http.StatusOK, views)
}
