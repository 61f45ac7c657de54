package persistence

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeSource struct {
	name  string
	state map[string]string
}

func (f *fakeSource) SnapshotName() string { return f.name }
func (f *fakeSource) Snapshot() any        { return f.state }
func (f *fakeSource) Restore(raw json.RawMessage) error {
	return json.Unmarshal(raw, &f.state)
}

type FileStoreSuite struct {
	suite.Suite
	ctx  context.Context
	path string
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, new(FileStoreSuite))
}

func (s *FileStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "data_store.json")
}

func (s *FileStoreSuite) TestCheckpointAndLoadRoundTrip() {
	source := &fakeSource{name: "things", state: map[string]string{"a": "1"}}
	store := NewFileStore(s.path, slog.Default())
	store.Register(source)
	store.Checkpoint(s.ctx)

	restored := &fakeSource{name: "things"}
	reopened := NewFileStore(s.path, slog.Default())
	reopened.Register(restored)
	s.Require().NoError(reopened.Load(s.ctx))
	s.Equal(map[string]string{"a": "1"}, restored.state)
}

func (s *FileStoreSuite) TestLoadMissingFileKeepsSeed() {
	source := &fakeSource{name: "things", state: map[string]string{"seed": "yes"}}
	store := NewFileStore(s.path, slog.Default())
	store.Register(source)

	s.Require().NoError(store.Load(s.ctx))
	s.Equal(map[string]string{"seed": "yes"}, source.state)
}

func (s *FileStoreSuite) TestLoadSkipsAbsentSections() {
	store := NewFileStore(s.path, slog.Default())
	known := &fakeSource{name: "known", state: map[string]string{"k": "v"}}
	store.Register(known)
	store.Checkpoint(s.ctx)

	reopened := NewFileStore(s.path, slog.Default())
	other := &fakeSource{name: "other", state: map[string]string{"seed": "yes"}}
	reopened.Register(other)
	s.Require().NoError(reopened.Load(s.ctx))
	s.Equal(map[string]string{"seed": "yes"}, other.state)
}

func (s *FileStoreSuite) TestCorruptFileFailsLoad() {
	require.NoError(s.T(), os.WriteFile(s.path, []byte("{not json"), 0o644))

	store := NewFileStore(s.path, slog.Default())
	s.Error(store.Load(s.ctx))
}

func (s *FileStoreSuite) TestNilStoreIsInert() {
	var store *FileStore
	store.Register(&fakeSource{name: "x"})
	store.Checkpoint(s.ctx)
	s.NoError(store.Load(s.ctx))
}
