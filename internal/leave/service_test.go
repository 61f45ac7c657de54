package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"campusdesk/internal/approval"
	dErrors "campusdesk/pkg/domain-errors"
)

type LeaveServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service *Service
}

func TestLeaveServiceSuite(t *testing.T) {
	suite.Run(t, new(LeaveServiceSuite))
}

func (s *LeaveServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.service = NewService(NewRequestStore(), nil, nil)
}

func (s *LeaveServiceSuite) TestApplyDecisions() {
	cases := []struct {
		name string
		app  Application
		want approval.Status
		days int
	}{
		{
			name: "three days with reason approved",
			app:  Application{StudentID: "s001", StartDate: "2026-04-01", EndDate: "2026-04-03", Reason: "family visit"},
			want: approval.StatusApproved,
			days: 3,
		},
		{
			name: "four days with reason pending",
			app:  Application{StudentID: "s001", StartDate: "2026-04-01", EndDate: "2026-04-04", Reason: "family visit"},
			want: approval.StatusPending,
			days: 4,
		},
		{
			name: "three days without reason pending",
			app:  Application{StudentID: "s001", StartDate: "2026-04-01", EndDate: "2026-04-03"},
			want: approval.StatusPending,
			days: 3,
		},
		{
			name: "typed casual leave within threshold approved",
			app:  Application{StudentID: "s001", StartDate: "2026-04-01", EndDate: "2026-04-02", LeaveType: "casual"},
			want: approval.StatusApproved,
			days: 2,
		},
		{
			name: "medical leave never auto-approved",
			app:  Application{StudentID: "s001", StartDate: "2026-04-01", EndDate: "2026-04-01", LeaveType: "medical"},
			want: approval.StatusPending,
			days: 1,
		},
		{
			name: "maternity leave never auto-approved",
			app:  Application{StudentID: "s001", StartDate: "2026-04-01", EndDate: "2026-04-02", LeaveType: "maternity"},
			want: approval.StatusPending,
			days: 2,
		},
		{
			name: "typed leave over threshold pending",
			app:  Application{StudentID: "s001", StartDate: "2026-04-01", EndDate: "2026-04-03", LeaveType: "casual"},
			want: approval.StatusPending,
			days: 3,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			request, err := s.service.Apply(s.ctx, tc.app)
			s.Require().NoError(err)
			s.Equal(tc.want, request.Status)
			s.Equal(tc.days, request.Days)
			s.NotEmpty(request.ID)
		})
	}
}

func (s *LeaveServiceSuite) TestApplyValidation() {
	s.Run("missing student id", func() {
		_, err := s.service.Apply(s.ctx, Application{StartDate: "2026-04-01", EndDate: "2026-04-02"})
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})

	s.Run("malformed start date", func() {
		_, err := s.service.Apply(s.ctx, Application{StudentID: "s001", StartDate: "04/01/2026", EndDate: "2026-04-02"})
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})

	s.Run("end before start", func() {
		_, err := s.service.Apply(s.ctx, Application{StudentID: "s001", StartDate: "2026-04-05", EndDate: "2026-04-01"})
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})

	s.Run("timestamp dates accepted", func() {
		request, err := s.service.Apply(s.ctx, Application{
			StudentID: "s001",
			StartDate: "2026-04-01T09:00:00",
			EndDate:   "2026-04-02T18:00:00",
			Reason:    "conference",
		})
		s.Require().NoError(err)
		s.Equal(2, request.Days)
	})
}
