package verify

import "time"

// Challenge is an issued OTP, stored hashed. A challenge is single use:
// confirming it removes it whether or not the code matched expiry.
type Challenge struct {
	StudentID string    `json:"student_id"`
	CodeHash  []byte    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge can no longer be confirmed.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
