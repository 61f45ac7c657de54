package verify

import (
	"context"
	"encoding/json"
	"sync"

	"campusdesk/pkg/platform/sentinel"
)

// InMemoryStore is the default challenge store.
type InMemoryStore struct {
	mu         sync.Mutex
	challenges map[string]Challenge
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{challenges: make(map[string]Challenge)}
}

func (s *InMemoryStore) Put(_ context.Context, challenge Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[challenge.StudentID] = challenge
	return nil
}

func (s *InMemoryStore) Take(_ context.Context, studentID string) (Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge, ok := s.challenges[studentID]
	if !ok {
		return Challenge{}, sentinel.ErrNotFound
	}
	delete(s.challenges, studentID)
	return challenge, nil
}

// SnapshotName implements persistence.Snapshotter.
func (s *InMemoryStore) SnapshotName() string { return "otp_challenges" }

// Snapshot implements persistence.Snapshotter.
func (s *InMemoryStore) Snapshot() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[string]Challenge, len(s.challenges))
	for id, challenge := range s.challenges {
		snap[id] = challenge
	}
	return snap
}

// Restore implements persistence.Snapshotter.
func (s *InMemoryStore) Restore(raw json.RawMessage) error {
	var snap map[string]Challenge
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap != nil {
		s.challenges = snap
	}
	return nil
}
