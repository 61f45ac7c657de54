package leave

import (
	"context"
	"encoding/json"
	"sync"
)

// RequestStore keeps leave applications in memory, keyed by ID.
type RequestStore struct {
	mu       sync.RWMutex
	requests map[string]Request
}

func NewRequestStore() *RequestStore {
	return &RequestStore{requests: make(map[string]Request)}
}

func (s *RequestStore) Save(_ context.Context, request Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request
	return nil
}

// SnapshotName implements persistence.Snapshotter.
func (s *RequestStore) SnapshotName() string { return "leave_requests" }

// Snapshot implements persistence.Snapshotter.
func (s *RequestStore) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]Request, len(s.requests))
	for id, request := range s.requests {
		snap[id] = request
	}
	return snap
}

// Restore implements persistence.Snapshotter.
func (s *RequestStore) Restore(raw json.RawMessage) error {
	var snap map[string]Request
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap != nil {
		s.requests = snap
	}
	return nil
}
