// Package approval holds the auto-approval rule shared by request-style
// endpoints. The rule is a pure function; each call site supplies its own
// threshold and qualification predicate.
package approval

// Status is the decision for a submitted request.
type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
)

// Decide auto-approves a request spanning the given number of days when it
// fits within the threshold and the caller's qualification holds. Everything
// else stays pending for manual review.
func Decide(days int, qualifies bool, threshold int) Status {
	if days <= threshold && qualifies {
		return StatusApproved
	}
	return StatusPending
}
