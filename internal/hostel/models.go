package hostel

import "time"

// Booking records a room granted to a student.
type Booking struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	HostelID  string    `json:"hostel_id"`
	CreatedAt time.Time `json:"created"`
}

// MaintenanceTicket tracks a reported room issue.
type MaintenanceTicket struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	HostelID    string    `json:"hostel_id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created"`
}

// TicketStatusOpen is the only status the backend assigns; resolution happens
// out of band.
const TicketStatusOpen = "open"
