package registration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"campusdesk/internal/audit"
	dErrors "campusdesk/pkg/domain-errors"
)

type recordingAuditor struct {
	mu      sync.Mutex
	entries []recordedEntry
}

type recordedEntry struct {
	actor   string
	action  audit.Action
	details map[string]string
}

func (a *recordingAuditor) Emit(_ context.Context, actor string, action audit.Action, details map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, recordedEntry{actor: actor, action: action, details: details})
}

func (a *recordingAuditor) len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

type EngineSuite struct {
	suite.Suite
	ctx     context.Context
	auditor *recordingAuditor
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
	s.auditor = &recordingAuditor{}
}

func (s *EngineSuite) newEngine(waitlist bool, seed ...*Resource) *Engine {
	store := NewInMemory("courses", seed...)
	return New(store, Config{
		Domain:         "enrollment",
		ResourceKey:    "course",
		AdmitAction:    audit.ActionEnrolled,
		WaitlistAction: audit.ActionWaitlisted,
		AllowWaitlist:  waitlist,
	}, WithAuditor(s.auditor))
}

func (s *EngineSuite) TestAdmissionAndIdempotency() {
	engine := s.newEngine(true, &Resource{ID: "CS201", Capacity: 1})

	s.Run("first registration admits", func() {
		result, err := engine.Register(s.ctx, "CS201", "s-alice")
		s.Require().NoError(err)
		s.Equal(OutcomeAdmitted, result.Outcome)
	})

	s.Run("second student is waitlisted at position 1", func() {
		result, err := engine.Register(s.ctx, "CS201", "s-bob")
		s.Require().NoError(err)
		s.Equal(OutcomeWaitlisted, result.Outcome)
		s.Equal(1, result.Position)
	})

	s.Run("repeat registration is idempotent", func() {
		result, err := engine.Register(s.ctx, "CS201", "s-alice")
		s.Require().NoError(err)
		s.Equal(OutcomeAlreadyRegistered, result.Outcome)

		resource, err := engine.Store().Find(s.ctx, "CS201")
		s.Require().NoError(err)
		s.Equal([]string{"s-alice"}, resource.Holders)
	})

	s.Run("repeat waitlist request is idempotent", func() {
		result, err := engine.Register(s.ctx, "CS201", "s-bob")
		s.Require().NoError(err)
		s.Equal(OutcomeAlreadyWaitlisted, result.Outcome)
		s.Equal(1, result.Position)

		resource, err := engine.Store().Find(s.ctx, "CS201")
		s.Require().NoError(err)
		s.Len(resource.Waitlist, 1)
	})
}

func (s *EngineSuite) TestWaitlistOrdering() {
	engine := s.newEngine(true, &Resource{ID: "CSE101", Capacity: 2})

	_, err := engine.Register(s.ctx, "CSE101", "s1")
	s.Require().NoError(err)
	_, err = engine.Register(s.ctx, "CSE101", "s2")
	s.Require().NoError(err)

	for i, studentID := range []string{"s3", "s4", "s5"} {
		result, err := engine.Register(s.ctx, "CSE101", studentID)
		s.Require().NoError(err)
		s.Equal(OutcomeWaitlisted, result.Outcome)
		s.Equal(i+1, result.Position)
	}

	resource, err := engine.Store().Find(s.ctx, "CSE101")
	s.Require().NoError(err)
	s.Equal("s3", resource.Waitlist[0].StudentID)
	s.Equal("s5", resource.Waitlist[2].StudentID)
}

func (s *EngineSuite) TestFullWithoutWaitlist() {
	engine := s.newEngine(false, &Resource{ID: "H1", Capacity: 1})

	_, err := engine.Register(s.ctx, "H1", "s1")
	s.Require().NoError(err)

	result, err := engine.Register(s.ctx, "H1", "s2")
	s.Require().NoError(err)
	s.Equal(OutcomeFull, result.Outcome)

	resource, err := engine.Store().Find(s.ctx, "H1")
	s.Require().NoError(err)
	s.Empty(resource.Waitlist)
}

func (s *EngineSuite) TestUnknownResource() {
	engine := s.newEngine(true, &Resource{ID: "CSE101", Capacity: 2})

	_, err := engine.Register(s.ctx, "ZZZ", "s1")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Zero(s.auditor.len(), "failed registration must not audit")
}

func (s *EngineSuite) TestValidation() {
	engine := s.newEngine(true, &Resource{ID: "CSE101", Capacity: 2})

	_, err := engine.Register(s.ctx, "CSE101", "")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = engine.Register(s.ctx, "", "s1")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *EngineSuite) TestAuditEmission() {
	engine := s.newEngine(true, &Resource{ID: "CSE101", Capacity: 1})

	_, err := engine.Register(s.ctx, "CSE101", "s1")
	s.Require().NoError(err)
	_, err = engine.Register(s.ctx, "CSE101", "s2")
	s.Require().NoError(err)
	// Idempotent repeat must not audit again.
	_, err = engine.Register(s.ctx, "CSE101", "s1")
	s.Require().NoError(err)

	s.Require().Equal(2, s.auditor.len())
	s.Equal(audit.ActionEnrolled, s.auditor.entries[0].action)
	s.Equal("s1", s.auditor.entries[0].actor)
	s.Equal("CSE101", s.auditor.entries[0].details["course"])
	s.Equal(audit.ActionWaitlisted, s.auditor.entries[1].action)
	s.Equal("1", s.auditor.entries[1].details["position"])
}

// TestCapacityInvariantUnderConcurrency hammers one resource from many
// goroutines and checks the holder set never exceeds capacity and every
// student landed in exactly one of holders or waitlist.
func (s *EngineSuite) TestCapacityInvariantUnderConcurrency() {
	const students = 64
	const capacity = 5

	engine := s.newEngine(true, &Resource{ID: "CSE101", Capacity: capacity})

	var wg sync.WaitGroup
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := engine.Register(s.ctx, "CSE101", fmt.Sprintf("s%03d", n))
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	resource, err := engine.Store().Find(s.ctx, "CSE101")
	s.Require().NoError(err)
	s.Len(resource.Holders, capacity)
	s.Len(resource.Waitlist, students-capacity)

	seen := make(map[string]bool, students)
	for _, holder := range resource.Holders {
		s.False(seen[holder])
		seen[holder] = true
	}
	for _, entry := range resource.Waitlist {
		s.False(seen[entry.StudentID])
		seen[entry.StudentID] = true
	}
	s.Len(seen, students)
}
