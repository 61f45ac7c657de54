// Package persistence provides the flat-file snapshot port. Stores register
// as snapshot sources; services checkpoint after each completed mutation.
// The checkpoint runs outside any store critical section, so in-memory state
// is never ahead of the data file by more than the operation being written.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Snapshotter is implemented by in-memory stores that want their state
// carried across restarts.
type Snapshotter interface {
	// SnapshotName is the stable key in the data file.
	SnapshotName() string
	// Snapshot returns a JSON-marshalable copy of the store's state.
	Snapshot() any
	// Restore replaces the store's state from a previous snapshot.
	Restore(raw json.RawMessage) error
}

// FileStore serializes registered snapshots into a single JSON file.
// A nil *FileStore is valid and disables persistence.
type FileStore struct {
	path    string
	logger  *slog.Logger
	mu      sync.Mutex
	sources []Snapshotter
}

// NewFileStore builds the store. Returns nil when path is empty.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if path == "" {
		return nil
	}
	return &FileStore{path: path, logger: logger}
}

// Register adds snapshot sources. Call during wiring, before the server
// starts serving.
func (f *FileStore) Register(sources ...Snapshotter) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, sources...)
}

// Checkpoint writes the current state of every source to disk. Best-effort:
// failures are logged, never surfaced to the mutating operation.
func (f *FileStore) Checkpoint(ctx context.Context) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	state := make(map[string]any, len(f.sources))
	for _, source := range f.sources {
		state[source.SnapshotName()] = source.Snapshot()
	}

	if err := f.write(state); err != nil {
		f.logger.WarnContext(ctx, "checkpoint failed",
			"path", f.path,
			"error", err.Error(),
		)
	}
}

// Load restores every registered source from the data file. A missing file
// is not an error; the seed data stands.
func (f *FileStore) Load(ctx context.Context) error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read data file: %w", err)
	}

	var state map[string]json.RawMessage
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("parse data file: %w", err)
	}

	for _, source := range f.sources {
		section, ok := state[source.SnapshotName()]
		if !ok {
			continue
		}
		if err := source.Restore(section); err != nil {
			return fmt.Errorf("restore %s: %w", source.SnapshotName(), err)
		}
	}
	return nil
}

// write marshals state and replaces the data file atomically so a crash
// mid-write never leaves a truncated file.
func (f *FileStore) write(state map[string]any) error {
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
