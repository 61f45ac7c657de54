package hostel

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusdesk/internal/transport/http/shared"
	dErrors "campusdesk/pkg/domain-errors"
)

// Handler wires the hostel endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the hostel routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/hostel/availability", h.handleAvailability)
	r.Post("/hostel/book", h.handleBook)
	r.Post("/hostel/maintenance", h.handleMaintenance)
}

type hostelView struct {
	Name           string `json:"name"`
	RoomsTotal     int    `json:"rooms_total"`
	RoomsAvailable int    `json:"rooms_available"`
}

func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hostels, err := h.service.Availability(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "availability lookup failed", "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "availability lookup failed"))
		return
	}

	views := make(map[string]hostelView, len(hostels))
	for _, hostel := range hostels {
		views[hostel.ID] = hostelView{
			Name:           hostel.Name,
			RoomsTotal:     hostel.Capacity,
			RoomsAvailable: hostel.Available(),
		}
	}
	shared.WriteJSON(w, http.StatusOK, views)
}

type bookRequest struct {
	StudentID string `json:"student_id"`
	HostelID  string `json:"hostel_id"`
}

type bookResponse struct {
	Status    string `json:"status"`
	BookingID string `json:"booking_id,omitempty"`
}

func (h *Handler) handleBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.StudentID == "" || req.HostelID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "student_id and hostel_id required"))
		return
	}

	result, err := h.service.Book(ctx, req.StudentID, req.HostelID)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) || dErrors.Is(err, dErrors.CodeValidation) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "booking failed", "hostel", req.HostelID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "booking failed"))
		return
	}

	resp := bookResponse{Status: string(result.Outcome)}
	if result.Booking != nil {
		resp.BookingID = result.Booking.ID
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

type maintenanceRequest struct {
	StudentID   string `json:"student_id"`
	HostelID    string `json:"hostel_id"`
	Description string `json:"description"`
}

type maintenanceResponse struct {
	TicketID string `json:"ticket_id"`
	Status   string `json:"status"`
}

func (h *Handler) handleMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req maintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.StudentID == "" || req.HostelID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "student_id and hostel_id required"))
		return
	}

	ticket, err := h.service.ReportMaintenance(ctx, req.StudentID, req.HostelID, req.Description)
	if err != nil {
		h.logger.ErrorContext(ctx, "maintenance ticket failed", "hostel", req.HostelID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "maintenance ticket failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, maintenanceResponse{TicketID: ticket.ID, Status: ticket.Status})
}
