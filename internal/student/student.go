// Package student holds the student directory.
package student

import (
	"context"
	"encoding/json"
	"sync"

	"campusdesk/pkg/platform/sentinel"
)

// Student is a directory entry.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Directory is the in-memory student registry.
type Directory struct {
	mu       sync.RWMutex
	students map[string]Student
}

func NewDirectory(seed []Student) *Directory {
	students := make(map[string]Student, len(seed))
	for _, entry := range seed {
		students[entry.ID] = entry
	}
	return &Directory{students: students}
}

// Find returns the student, or sentinel.ErrNotFound.
func (d *Directory) Find(_ context.Context, studentID string) (Student, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.students[studentID]
	if !ok {
		return Student{}, sentinel.ErrNotFound
	}
	return entry, nil
}

// SnapshotName implements persistence.Snapshotter.
func (d *Directory) SnapshotName() string { return "students" }

// Snapshot implements persistence.Snapshotter.
func (d *Directory) Snapshot() any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := make(map[string]Student, len(d.students))
	for id, entry := range d.students {
		snap[id] = entry
	}
	return snap
}

// Restore implements persistence.Snapshotter.
func (d *Directory) Restore(raw json.RawMessage) error {
	var snap map[string]Student
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if snap != nil {
		d.students = snap
	}
	return nil
}
