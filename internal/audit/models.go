package audit

import "time"

// EventCategory classifies audit events by their primary purpose. This
// enables different retention policies and routing downstream.
type EventCategory string

const (
	// CategoryCompliance covers events with financial or regulatory
	// significance. These require long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for debugging.
	// These can be sampled with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"time"`
	Actor     string            `json:"user"`
	Action    Action            `json:"action"`
	Details   map[string]string `json:"details,omitempty"`
	Category  EventCategory     `json:"category,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
}

// Action identifies what happened. Values match the legacy audit log so
// existing consumers keep working.
type Action string

const (
	// Fees
	ActionCheckFees        Action = "check_fees"
	ActionGeneratePayment  Action = "generate_payment"
	ActionPaymentCompleted Action = "payment_completed"

	// Enrollment
	ActionEnrolled   Action = "enrolled"
	ActionWaitlisted Action = "waitlisted"

	// Exams
	ActionViewExamTimetable  Action = "view_exam_timetable"
	ActionSpecialExamRequest Action = "special_exam_request"

	// Hostel
	ActionHostelBooked      Action = "hostel_booked"
	ActionMaintenanceTicket Action = "maintenance_ticket"

	// Leave
	ActionLeaveApplied Action = "leave_applied"

	// Events
	ActionEventRegistered Action = "event_registered"
	ActionEventWaitlisted Action = "event_waitlisted"

	// Identity verification
	ActionOTPRequested Action = "otp_requested"
	ActionOTPVerified  Action = "otp_verified"

	// Admin
	ActionReset Action = "reset"
)

// actionCategories maps each action to its category. Unknown actions default
// to CategoryOperations.
var actionCategories = map[Action]EventCategory{
	ActionGeneratePayment:  CategoryCompliance,
	ActionPaymentCompleted: CategoryCompliance,
	ActionLeaveApplied:     CategoryCompliance,

	ActionOTPRequested: CategorySecurity,
	ActionOTPVerified:  CategorySecurity,
	ActionReset:        CategorySecurity,
}

// Category returns the EventCategory for this action.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategoryOperations
}
