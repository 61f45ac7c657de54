package exam

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "campusdesk/pkg/domain-errors"
)

type stubCourses struct {
	byStudent map[string][]string
}

func (s *stubCourses) CoursesFor(_ context.Context, studentID string) ([]string, error) {
	return s.byStudent[studentID], nil
}

type ExamServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service *Service
}

func TestExamServiceSuite(t *testing.T) {
	suite.Run(t, new(ExamServiceSuite))
}

func (s *ExamServiceSuite) SetupTest() {
	s.ctx = context.Background()
	courses := &stubCourses{byStudent: map[string][]string{
		"s001": {"CSE101", "MTH101"},
		"s002": {"PHY105"},
	}}
	s.service = NewService(NewScheduleStore(SeedTimetable()), courses, nil, nil)
}

func (s *ExamServiceSuite) TestTimetable() {
	s.Run("returns slots for enrolled courses", func() {
		slots, err := s.service.Timetable(s.ctx, "s001")
		s.Require().NoError(err)
		s.Require().Len(slots, 2)
		s.Equal("CSE101", slots[0].CourseCode)
		s.Equal("Hall A", slots[0].Venue)
	})

	s.Run("skips courses without a scheduled slot", func() {
		slots, err := s.service.Timetable(s.ctx, "s002")
		s.Require().NoError(err)
		s.Empty(slots)
	})

	s.Run("unenrolled student gets an empty timetable", func() {
		slots, err := s.service.Timetable(s.ctx, "ghost")
		s.Require().NoError(err)
		s.Empty(slots)
	})
}

func (s *ExamServiceSuite) TestRequestSpecial() {
	request, err := s.service.RequestSpecial(s.ctx, "s001", "CSE101", "medical emergency")
	s.Require().NoError(err)
	s.NotEmpty(request.ID)
	s.Equal(RequestStatusSubmitted, request.Status)

	_, err = s.service.RequestSpecial(s.ctx, "", "CSE101", "")
	s.True(dErrors.Is(err, dErrors.CodeValidation))
}
