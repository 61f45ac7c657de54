package audit

import (
	"context"
	"time"
)

// Store is the append-only persistence port for audit events. Implementations
// must keep insertion order stable for equal timestamps.
type Store interface {
	Append(ctx context.Context, event Event) error
	// List returns events with Timestamp >= since, oldest first. A zero since
	// returns everything.
	List(ctx context.Context, since time.Time) ([]Event, error)
}
