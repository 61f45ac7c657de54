package verify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
)

// Handler wires the OTP endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the verification routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify/otp/request", h.handleRequest)
	r.Post("/verify/otp/confirm", h.handleConfirm)
}

type requestOTPRequest struct {
	StudentID string `json:"student_id"`
}

type requestOTPResponse struct {
	OTP       string `json:"otp"`
	ExpiresAt string `json:"expires_at"`
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	issued, err := h.service.RequestCode(ctx, req.StudentID)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeValidation) || dErrors.Is(err, dErrors.CodeRateLimited) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "otp request failed", "student", req.StudentID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "otp request failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, requestOTPResponse{
		OTP:       issued.Code,
		ExpiresAt: issued.ExpiresAt.Format(time.RFC3339),
	})
}

type confirmRequest struct {
	StudentID string `json:"student_id"`
	OTP       string `json:"otp"`
}

type confirmResponse struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	reason, err := h.service.Confirm(ctx, req.StudentID, req.OTP)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeValidation) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "otp confirm failed", "student", req.StudentID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "otp confirm failed"))
		return
	}

	if reason != "" {
		shared.WriteJSON(w, http.StatusBadRequest, confirmResponse{Verified: false, Reason: reason})
		return
	}
	shared.WriteJSON(w, http.StatusOK, confirmResponse{Verified: true})
}
