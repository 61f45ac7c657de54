package hostel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campusdesk/internal/audit"
	"campusdesk/internal/registration"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/requestcontext"
)

type recordingAuditor struct {
	events []audit.Event
}

func (a *recordingAuditor) Emit(_ context.Context, actor string, action audit.Action, details map[string]string) {
	a.events = append(a.events, audit.Event{Actor: actor, Action: action, Details: details})
}

type HostelServiceSuite struct {
	suite.Suite
	ctx     context.Context
	auditor *recordingAuditor
	service *Service
}

func TestHostelServiceSuite(t *testing.T) {
	suite.Run(t, new(HostelServiceSuite))
}

func (s *HostelServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	s.auditor = &recordingAuditor{}

	store := registration.NewInMemory("hostels", SeedHostels()...)
	engine := registration.New(store, registration.Config{
		Domain:      "hostel",
		ResourceKey: "hostel",
	})
	s.service = NewService(engine, NewRecordStore(), s.auditor, nil)
}

func (s *HostelServiceSuite) TestBook() {
	s.Run("books a free room", func() {
		result, err := s.service.Book(s.ctx, "s001", "H1")
		s.Require().NoError(err)
		s.Equal(BookOutcomeBooked, result.Outcome)
		s.Require().NotNil(result.Booking)
		s.Equal("H1", result.Booking.HostelID)

		s.Require().Len(s.auditor.events, 1)
		s.Equal(audit.ActionHostelBooked, s.auditor.events[0].Action)
		s.Equal(result.Booking.ID, s.auditor.events[0].Details["booking_id"])
	})

	s.Run("rebooking is idempotent", func() {
		result, err := s.service.Book(s.ctx, "s001", "H1")
		s.Require().NoError(err)
		s.Equal(BookOutcomeAlreadyBooked, result.Outcome)
		s.Nil(result.Booking)
		s.Len(s.auditor.events, 1)
	})

	s.Run("full hostel reports full, no waitlist", func() {
		// H1 seeds with 2 of 4 rooms taken; s001 holds a third.
		result, err := s.service.Book(s.ctx, "s002", "H1")
		s.Require().NoError(err)
		s.Equal(BookOutcomeBooked, result.Outcome)

		result, err = s.service.Book(s.ctx, "s003", "H1")
		s.Require().NoError(err)
		s.Equal(BookOutcomeFull, result.Outcome)
		s.Nil(result.Booking)
	})

	s.Run("unknown hostel", func() {
		_, err := s.service.Book(s.ctx, "s001", "H9")
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func (s *HostelServiceSuite) TestAvailability() {
	hostels, err := s.service.Availability(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(hostels, 2)

	s.Equal("H1", hostels[0].ID)
	s.Equal(2, hostels[0].Available())
	s.Equal("H2", hostels[1].ID)
	s.Equal(3, hostels[1].Available())
}

func (s *HostelServiceSuite) TestReportMaintenance() {
	ticket, err := s.service.ReportMaintenance(s.ctx, "s001", "H1", "broken heater")
	s.Require().NoError(err)
	s.NotEmpty(ticket.ID)
	s.Equal(TicketStatusOpen, ticket.Status)

	s.Require().Len(s.auditor.events, 1)
	s.Equal(audit.ActionMaintenanceTicket, s.auditor.events[0].Action)
}
