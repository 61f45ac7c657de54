package verify

import "context"

// Store keeps at most one pending challenge per student. Issuing a new
// challenge replaces any previous one.
//
// Take removes and returns the student's pending challenge atomically, so a
// challenge can only ever be confirmed once. It returns sentinel.ErrNotFound
// when no challenge is pending.
type Store interface {
	Put(ctx context.Context, challenge Challenge) error
	Take(ctx context.Context, studentID string) (Challenge, error)
}
