package hostel

import (
	"context"
	"encoding/json"
	"sync"
)

// RecordStore keeps bookings and maintenance tickets in memory, keyed by ID.
type RecordStore struct {
	mu       sync.RWMutex
	bookings map[string]Booking
	tickets  map[string]MaintenanceTicket
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		bookings: make(map[string]Booking),
		tickets:  make(map[string]MaintenanceTicket),
	}
}

func (s *RecordStore) SaveBooking(_ context.Context, booking Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.ID] = booking
	return nil
}

func (s *RecordStore) SaveTicket(_ context.Context, ticket MaintenanceTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[ticket.ID] = ticket
	return nil
}

// recordSnapshot is the persisted shape of the record store.
type recordSnapshot struct {
	Bookings map[string]Booking           `json:"hostel_bookings"`
	Tickets  map[string]MaintenanceTicket `json:"maintenance_tickets"`
}

// SnapshotName implements persistence.Snapshotter.
func (s *RecordStore) SnapshotName() string { return "hostel_records" }

// Snapshot implements persistence.Snapshotter.
func (s *RecordStore) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := recordSnapshot{
		Bookings: make(map[string]Booking, len(s.bookings)),
		Tickets:  make(map[string]MaintenanceTicket, len(s.tickets)),
	}
	for id, booking := range s.bookings {
		snap.Bookings[id] = booking
	}
	for id, ticket := range s.tickets {
		snap.Tickets[id] = ticket
	}
	return snap
}

// Restore implements persistence.Snapshotter.
func (s *RecordStore) Restore(raw json.RawMessage) error {
	var snap recordSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Bookings != nil {
		s.bookings = snap.Bookings
	}
	if snap.Tickets != nil {
		s.tickets = snap.Tickets
	}
	return nil
}
