package leave

import (
	"time"

	"campusdesk/internal/approval"
)

// Request is a stored leave application.
type Request struct {
	ID        string          `json:"id"`
	StudentID string          `json:"student_id"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Reason    string          `json:"reason"`
	LeaveType string          `json:"leave_type,omitempty"`
	Days      int             `json:"duration_days"`
	Status    approval.Status `json:"status"`
	CreatedAt time.Time       `json:"created"`
}
