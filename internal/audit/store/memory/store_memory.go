package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"campusdesk/internal/audit"
)

// InMemoryStore keeps the audit trail in process memory. It is the default
// sink and the one tests use.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, since time.Time) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if since.IsZero() {
		return append([]audit.Event{}, s.events...), nil
	}
	var out []audit.Event
	for _, event := range s.events {
		if !event.Timestamp.Before(since) {
			out = append(out, event)
		}
	}
	return out, nil
}

// SnapshotName implements persistence.Snapshotter.
func (s *InMemoryStore) SnapshotName() string { return "audit_logs" }

// Snapshot implements persistence.Snapshotter.
func (s *InMemoryStore) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...)
}

// Restore implements persistence.Snapshotter.
func (s *InMemoryStore) Restore(raw json.RawMessage) error {
	var events []audit.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	return nil
}
