// Package hostel instantiates the registration engine for room booking. A
// hostel's capacity is its room count; current residents are the holder set,
// so availability is derived rather than tracked as a separate counter.
package hostel

import (
	"context"

	"github.com/google/uuid"

	"campusdesk/internal/audit"
	"campusdesk/internal/registration"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/requestcontext"
)

// BookOutcome classifies a booking attempt.
type BookOutcome string

const (
	BookOutcomeBooked        BookOutcome = "booked"
	BookOutcomeAlreadyBooked BookOutcome = "already_booked"
	BookOutcomeFull          BookOutcome = "full"
)

// BookResult carries the outcome and, when booked, the booking record.
type BookResult struct {
	Outcome BookOutcome
	Booking *Booking
}

// Auditor mirrors the registration engine's audit port.
type Auditor interface {
	Emit(ctx context.Context, actor string, action audit.Action, details map[string]string)
}

// Service orchestrates room booking and maintenance tickets.
type Service struct {
	engine  *registration.Engine
	records *RecordStore
	auditor Auditor
	persist registration.Checkpointer
}

func NewService(engine *registration.Engine, records *RecordStore, auditor Auditor, persist registration.Checkpointer) *Service {
	return &Service{engine: engine, records: records, auditor: auditor, persist: persist}
}

// Book grants the student a room when one is free. Hostels have no waitlist;
// a full hostel reports full. The booking record is created after the
// engine's critical section, which audits nothing itself for this domain so
// the audit entry can carry the booking ID.
func (s *Service) Book(ctx context.Context, studentID, hostelID string) (BookResult, error) {
	result, err := s.engine.Register(ctx, hostelID, studentID)
	if err != nil {
		return BookResult{}, err
	}

	switch result.Outcome {
	case registration.OutcomeAlreadyRegistered:
		return BookResult{Outcome: BookOutcomeAlreadyBooked}, nil
	case registration.OutcomeFull:
		return BookResult{Outcome: BookOutcomeFull}, nil
	}

	booking := Booking{
		ID:        uuid.NewString(),
		StudentID: studentID,
		HostelID:  hostelID,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.records.SaveBooking(ctx, booking); err != nil {
		return BookResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save booking")
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, studentID, audit.ActionHostelBooked, map[string]string{
			"booking_id": booking.ID,
			"hostel_id":  hostelID,
		})
	}
	if s.persist != nil {
		s.persist.Checkpoint(ctx)
	}
	return BookResult{Outcome: BookOutcomeBooked, Booking: &booking}, nil
}

// Availability returns every hostel with its derived free-room count.
func (s *Service) Availability(ctx context.Context) ([]*registration.Resource, error) {
	hostels, err := s.engine.Store().List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list hostels")
	}
	return hostels, nil
}

// ReportMaintenance opens a maintenance ticket for a hostel room.
func (s *Service) ReportMaintenance(ctx context.Context, studentID, hostelID, description string) (MaintenanceTicket, error) {
	ticket := MaintenanceTicket{
		ID:          uuid.NewString(),
		StudentID:   studentID,
		HostelID:    hostelID,
		Description: description,
		Status:      TicketStatusOpen,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.records.SaveTicket(ctx, ticket); err != nil {
		return MaintenanceTicket{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save ticket")
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, studentID, audit.ActionMaintenanceTicket, map[string]string{
			"ticket_id": ticket.ID,
		})
	}
	if s.persist != nil {
		s.persist.Checkpoint(ctx)
	}
	return ticket, nil
}
