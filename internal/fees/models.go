package fees

import "time"

// Account is a student's fee ledger.
type Account struct {
	Balance float64 `json:"balance"`
	Items   []Item  `json:"items"`
}

// Item is one ledger line; payments append negative amounts.
type Item struct {
	Desc   string  `json:"desc"`
	Amount float64 `json:"amount"`
}

// Payment tracks a generated payment link through its lifecycle.
type Payment struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	Amount      float64    `json:"amount"`
	CreatedAt   time.Time  `json:"created"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// PaymentValidity is how long a generated payment link stays usable.
const PaymentValidity = time.Hour
