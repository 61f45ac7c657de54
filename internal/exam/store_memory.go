package exam

import (
	"context"
	"encoding/json"
	"sync"
)

// ScheduleStore keeps the exam timetable and special requests in memory.
type ScheduleStore struct {
	mu        sync.RWMutex
	timetable map[string]Slot
	requests  map[string]SpecialRequest
}

func NewScheduleStore(timetable map[string]Slot) *ScheduleStore {
	slots := make(map[string]Slot, len(timetable))
	for code, slot := range timetable {
		slots[code] = slot
	}
	return &ScheduleStore{
		timetable: slots,
		requests:  make(map[string]SpecialRequest),
	}
}

// SlotFor returns the scheduled slot for a course, if one exists.
func (s *ScheduleStore) SlotFor(_ context.Context, courseCode string) (Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.timetable[courseCode]
	return slot, ok
}

// SaveRequest records a special exam request.
func (s *ScheduleStore) SaveRequest(_ context.Context, request SpecialRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request
	return nil
}

// scheduleSnapshot is the persisted shape of the store. The timetable is
// static seed data and is not carried across restarts.
type scheduleSnapshot struct {
	Requests map[string]SpecialRequest `json:"special_exam_requests"`
}

// SnapshotName implements persistence.Snapshotter.
func (s *ScheduleStore) SnapshotName() string { return "exam_requests" }

// Snapshot implements persistence.Snapshotter.
func (s *ScheduleStore) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := scheduleSnapshot{Requests: make(map[string]SpecialRequest, len(s.requests))}
	for id, request := range s.requests {
		snap.Requests[id] = request
	}
	return snap
}

// Restore implements persistence.Snapshotter.
func (s *ScheduleStore) Restore(raw json.RawMessage) error {
	var snap scheduleSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Requests != nil {
		s.requests = snap.Requests
	}
	return nil
}
