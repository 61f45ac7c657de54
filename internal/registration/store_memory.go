package registration

import (
	"context"
	"encoding/json"
	"sync"

	"campusdesk/pkg/platform/sentinel"
)

// InMemory keeps resources in process memory with one lock per resource, so
// registrations for different resources never serialize against each other.
type InMemory struct {
	name string

	mu        sync.RWMutex
	resources map[string]*lockedResource
	order     []string
}

type lockedResource struct {
	mu       sync.Mutex
	resource *Resource
}

// NewInMemory builds a store seeded with the given resources. name is the
// snapshot key used by the persistence port.
func NewInMemory(name string, seed ...*Resource) *InMemory {
	s := &InMemory{
		name:      name,
		resources: make(map[string]*lockedResource, len(seed)),
	}
	for _, r := range seed {
		s.resources[r.ID] = &lockedResource{resource: r.clone()}
		s.order = append(s.order, r.ID)
	}
	return s
}

func (s *InMemory) Find(_ context.Context, resourceID string) (*Resource, error) {
	entry, err := s.entry(resourceID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.resource.clone(), nil
}

func (s *InMemory) List(_ context.Context) ([]*Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Resource, 0, len(s.order))
	for _, id := range s.order {
		entry := s.resources[id]
		entry.mu.Lock()
		out = append(out, entry.resource.clone())
		entry.mu.Unlock()
	}
	return out, nil
}

func (s *InMemory) Execute(_ context.Context, resourceID string, mutate func(*Resource) error) (*Resource, error) {
	entry, err := s.entry(resourceID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// Mutate a scratch copy so an aborted callback publishes nothing.
	scratch := entry.resource.clone()
	if err := mutate(scratch); err != nil {
		return nil, err
	}
	entry.resource = scratch
	return scratch.clone(), nil
}

func (s *InMemory) entry(resourceID string) (*lockedResource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.resources[resourceID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return entry, nil
}

// SnapshotName implements persistence.Snapshotter.
func (s *InMemory) SnapshotName() string { return s.name }

// Snapshot implements persistence.Snapshotter.
func (s *InMemory) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*Resource, len(s.resources))
	for id, entry := range s.resources {
		entry.mu.Lock()
		out[id] = entry.resource.clone()
		entry.mu.Unlock()
	}
	return out
}

// Restore implements persistence.Snapshotter. Resources absent from the
// snapshot keep their seed state; unknown snapshot entries are added.
func (s *InMemory) Restore(raw json.RawMessage) error {
	var state map[string]*Resource
	if err := json.Unmarshal(raw, &state); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, resource := range state {
		if entry, ok := s.resources[id]; ok {
			entry.mu.Lock()
			entry.resource = resource.clone()
			entry.mu.Unlock()
			continue
		}
		s.resources[id] = &lockedResource{resource: resource.clone()}
		s.order = append(s.order, id)
	}
	return nil
}
