// Package leave handles student leave applications. Short requests are
// auto-approved by the shared approval rule; the rest stay pending for
// manual review.
package leave

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"campusdesk/internal/approval"
	"campusdesk/internal/audit"
	"campusdesk/internal/registration"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/requestcontext"
)

// Auditor mirrors the registration engine's audit port.
type Auditor interface {
	Emit(ctx context.Context, actor string, action audit.Action, details map[string]string)
}

// Service applies the leave rules and stores the results.
type Service struct {
	store   *RequestStore
	auditor Auditor
	persist registration.Checkpointer
}

func NewService(store *RequestStore, auditor Auditor, persist registration.Checkpointer) *Service {
	return &Service{store: store, auditor: auditor, persist: persist}
}

// Application is an incoming leave request.
type Application struct {
	StudentID string
	StartDate string
	EndDate   string
	Reason    string
	LeaveType string
}

// Thresholds for auto-approval. Untyped leave qualifies on a stated reason;
// typed leave qualifies unless the type requires manual review.
const (
	plainLeaveThreshold = 3
	typedLeaveThreshold = 2
)

// manualReviewTypes always go to a human regardless of duration.
var manualReviewTypes = map[string]bool{
	"maternity": true,
	"medical":   true,
}

// Apply validates the application, decides its status and stores it.
func (s *Service) Apply(ctx context.Context, app Application) (Request, error) {
	if app.StudentID == "" {
		return Request{}, dErrors.New(dErrors.CodeValidation, "student_id required")
	}

	start, err := parseDate(app.StartDate)
	if err != nil {
		return Request{}, dErrors.New(dErrors.CodeValidation, "invalid start_date, expected ISO format")
	}
	end, err := parseDate(app.EndDate)
	if err != nil {
		return Request{}, dErrors.New(dErrors.CodeValidation, "invalid end_date, expected ISO format")
	}
	if end.Before(start) {
		return Request{}, dErrors.New(dErrors.CodeValidation, "end_date before start_date")
	}

	// Inclusive span: a single-day leave is one day, not zero.
	days := int(end.Sub(start).Hours()/24) + 1

	var status approval.Status
	if app.LeaveType == "" {
		status = approval.Decide(days, app.Reason != "", plainLeaveThreshold)
	} else {
		status = approval.Decide(days, !manualReviewTypes[app.LeaveType], typedLeaveThreshold)
	}

	request := Request{
		ID:        uuid.NewString(),
		StudentID: app.StudentID,
		StartDate: app.StartDate,
		EndDate:   app.EndDate,
		Reason:    app.Reason,
		LeaveType: app.LeaveType,
		Days:      days,
		Status:    status,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Save(ctx, request); err != nil {
		return Request{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save leave request")
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, app.StudentID, audit.ActionLeaveApplied, map[string]string{
			"leave_id": request.ID,
			"status":   string(status),
			"days":     strconv.Itoa(days),
		})
	}
	if s.persist != nil {
		s.persist.Checkpoint(ctx)
	}
	return request, nil
}

// parseDate accepts a bare date or a full ISO timestamp.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
