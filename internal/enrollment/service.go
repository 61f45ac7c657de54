// Package enrollment instantiates the registration engine for course
// enrollment and exposes the course catalog.
package enrollment

import (
	"context"
	"errors"

	"campusdesk/internal/registration"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/platform/sentinel"
)

// Service orchestrates course enrollment on top of the shared engine.
type Service struct {
	engine *registration.Engine
}

func NewService(engine *registration.Engine) *Service {
	return &Service{engine: engine}
}

// Enroll registers the student on the course, waitlisting when full.
func (s *Service) Enroll(ctx context.Context, studentID, courseCode string) (registration.Result, error) {
	return s.engine.Register(ctx, courseCode, studentID)
}

// Status returns the enrolled and waitlisted students for a course. Unknown
// courses yield empty lists, matching the legacy behavior.
func (s *Service) Status(ctx context.Context, courseCode string) (*registration.Resource, error) {
	resource, err := s.engine.Store().Find(ctx, courseCode)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return &registration.Resource{ID: courseCode}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load course")
	}
	return resource, nil
}

// ListCourses returns the course catalog in seed order.
func (s *Service) ListCourses(ctx context.Context) ([]*registration.Resource, error) {
	courses, err := s.engine.Store().List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list courses")
	}
	return courses, nil
}

// CoursesFor returns the codes of courses the student is enrolled in, used
// by the exam timetable.
func (s *Service) CoursesFor(ctx context.Context, studentID string) ([]string, error) {
	courses, err := s.engine.Store().List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list courses")
	}
	var codes []string
	for _, course := range courses {
		if course.HasHolder(studentID) {
			codes = append(codes, course.ID)
		}
	}
	return codes, nil
}
