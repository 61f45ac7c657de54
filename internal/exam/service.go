// Package exam serves exam timetables derived from course enrollment and
// accepts special exam sitting requests.
package exam

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"campusdesk/internal/audit"
	"campusdesk/internal/registration"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/requestcontext"
)

// CourseLister yields the course codes a student is enrolled in.
type CourseLister interface {
	CoursesFor(ctx context.Context, studentID string) ([]string, error)
}

// Auditor mirrors the registration engine's audit port.
type Auditor interface {
	Emit(ctx context.Context, actor string, action audit.Action, details map[string]string)
}

// Service resolves timetables and records special requests.
type Service struct {
	schedule *ScheduleStore
	courses  CourseLister
	auditor  Auditor
	persist  registration.Checkpointer
}

func NewService(schedule *ScheduleStore, courses CourseLister, auditor Auditor, persist registration.Checkpointer) *Service {
	return &Service{schedule: schedule, courses: courses, auditor: auditor, persist: persist}
}

// Timetable returns the exam slots for every course the student is enrolled
// in. Courses without a scheduled slot are skipped.
func (s *Service) Timetable(ctx context.Context, studentID string) ([]Slot, error) {
	codes, err := s.courses.CoursesFor(ctx, studentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve enrollment")
	}

	slots := make([]Slot, 0, len(codes))
	for _, code := range codes {
		if slot, ok := s.schedule.SlotFor(ctx, code); ok {
			slots = append(slots, slot)
		}
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, studentID, audit.ActionViewExamTimetable, map[string]string{
			"courses": strconv.Itoa(len(codes)),
		})
	}
	return slots, nil
}

// RequestSpecial files a request to sit an exam outside the scheduled slot.
func (s *Service) RequestSpecial(ctx context.Context, studentID, courseCode, reason string) (SpecialRequest, error) {
	if studentID == "" || courseCode == "" {
		return SpecialRequest{}, dErrors.New(dErrors.CodeValidation, "student_id and course_code required")
	}

	request := SpecialRequest{
		ID:         uuid.NewString(),
		StudentID:  studentID,
		CourseCode: courseCode,
		Reason:     reason,
		Status:     RequestStatusSubmitted,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.schedule.SaveRequest(ctx, request); err != nil {
		return SpecialRequest{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save request")
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, studentID, audit.ActionSpecialExamRequest, map[string]string{
			"request_id": request.ID,
			"course":     courseCode,
		})
	}
	if s.persist != nil {
		s.persist.Checkpoint(ctx)
	}
	return request, nil
}
