package exam

import "time"

// Slot is a scheduled exam sitting for a course.
type Slot struct {
	CourseCode string `json:"course_code"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Venue      string `json:"venue"`
}

// SpecialRequest is a student's application to sit an exam outside the
// scheduled slot.
type SpecialRequest struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	CourseCode string    `json:"course_code"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created"`
}

const RequestStatusSubmitted = "submitted"
