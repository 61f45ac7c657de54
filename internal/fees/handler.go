package fees

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
)

// Handler wires the fee endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the fee routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/fees/{studentID}", h.handleGetFees)
	r.Post("/fees/pay/{studentID}", h.handleCreatePayment)
	r.Post("/fees/pay/callback/{paymentID}", h.handleCallback)
}

type feesResponse struct {
	StudentID string  `json:"student_id"`
	Balance   float64 `json:"balance"`
	Items     []Item  `json:"items"`
}

func (h *Handler) handleGetFees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := chi.URLParam(r, "studentID")

	account, err := h.service.GetFees(ctx, studentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "fee lookup failed", "student", studentID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "fee lookup failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, feesResponse{
		StudentID: studentID,
		Balance:   account.Balance,
		Items:     account.Items,
	})
}

type createPaymentRequest struct {
	Amount float64 `json:"amount"`
}

type createPaymentResponse struct {
	PaymentID   string  `json:"payment_id"`
	Amount      float64 `json:"amount"`
	PaymentLink string  `json:"payment_link"`
	ExpiresAt   string  `json:"expires_at"`
}

func (h *Handler) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID := chi.URLParam(r, "studentID")

	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	link, err := h.service.CreatePayment(ctx, studentID, req.Amount)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeValidation) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "payment creation failed", "student", studentID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "payment creation failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, createPaymentResponse{
		PaymentID:   link.Payment.ID,
		Amount:      link.Payment.Amount,
		PaymentLink: link.URL,
		ExpiresAt:   link.Payment.ExpiresAt.Format(time.RFC3339),
	})
}

type callbackResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paymentID := chi.URLParam(r, "paymentID")

	payment, err := h.service.CompletePayment(ctx, paymentID)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) || dErrors.Is(err, dErrors.CodeConflict) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "payment callback failed", "payment", paymentID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "payment callback failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, callbackResponse{
		PaymentID: payment.ID,
		Status:    payment.Status,
	})
}
