package registration

import (
	"time"

	dErrors "campusdesk/pkg/domain-errors"
)

// Resource is anything with a fixed number of slots students compete for: a
// course section, a hostel, an event.
//
// Invariants:
//   - len(Holders) <= Capacity at all times
//   - a student appears at most once across Holders and Waitlist
//   - Holders insertion order is admission order; Waitlist is FIFO
type Resource struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Capacity int             `json:"capacity"`
	Holders  []string        `json:"holders"`
	Waitlist []WaitlistEntry `json:"waitlist"`
}

// WaitlistEntry records a student waiting for a slot.
type WaitlistEntry struct {
	StudentID   string    `json:"student_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// HasHolder reports whether the student already holds a slot.
func (r *Resource) HasHolder(studentID string) bool {
	for _, holder := range r.Holders {
		if holder == studentID {
			return true
		}
	}
	return false
}

// WaitlistPosition returns the student's 1-based waitlist position.
func (r *Resource) WaitlistPosition(studentID string) (int, bool) {
	for i, entry := range r.Waitlist {
		if entry.StudentID == studentID {
			return i + 1, true
		}
	}
	return 0, false
}

// Available returns the number of free slots.
func (r *Resource) Available() int {
	return r.Capacity - len(r.Holders)
}

// CanAdmit checks whether a slot is free. Use with ApplyAdmission inside an
// Execute callback so the check and the mutation share one critical section.
func (r *Resource) CanAdmit() error {
	if len(r.Holders) >= r.Capacity {
		return dErrors.New(dErrors.CodeInvariantViolation, "resource is at capacity")
	}
	return nil
}

// ApplyAdmission appends the student to the holder set. Call CanAdmit first.
func (r *Resource) ApplyAdmission(studentID string) {
	r.Holders = append(r.Holders, studentID)
}

// ApplyEnqueue appends the student to the waitlist and returns the 1-based
// position.
func (r *Resource) ApplyEnqueue(studentID string, now time.Time) int {
	r.Waitlist = append(r.Waitlist, WaitlistEntry{StudentID: studentID, RequestedAt: now})
	return len(r.Waitlist)
}

// clone returns an independent copy safe to hand outside the store lock.
func (r *Resource) clone() *Resource {
	out := *r
	out.Holders = append([]string(nil), r.Holders...)
	out.Waitlist = append([]WaitlistEntry(nil), r.Waitlist...)
	return &out
}

// Outcome is the result classification of a registration attempt.
type Outcome string

const (
	OutcomeAdmitted          Outcome = "admitted"
	OutcomeAlreadyRegistered Outcome = "already_registered"
	OutcomeWaitlisted        Outcome = "waitlisted"
	OutcomeAlreadyWaitlisted Outcome = "already_waitlisted"
	OutcomeFull              Outcome = "full"
)

// Mutated reports whether the outcome changed resource state.
func (o Outcome) Mutated() bool {
	return o == OutcomeAdmitted || o == OutcomeWaitlisted
}

// Result carries the outcome of a registration attempt. Position is the
// 1-based waitlist position, set only for waitlisted outcomes.
type Result struct {
	Outcome  Outcome
	Position int
}
