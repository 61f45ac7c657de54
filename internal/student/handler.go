package student

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/platform/sentinel"
)

// Handler wires the student directory endpoint.
type Handler struct {
	logger    *slog.Logger
	directory *Directory
}

func NewHandler(directory *Directory, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, directory: directory}
}

// Register mounts the student routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/students/{studentID}", h.handleGet)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := chi.URLParam(r, "studentID")

	entry, err := h.directory.Find(ctx, studentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "student not found"))
			return
		}
		h.logger.ErrorContext(ctx, "student lookup failed", "student", studentID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "student lookup failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, entry)
}
