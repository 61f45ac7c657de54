package registration

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"campusdesk/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory("courses",
		&Resource{ID: "CSE101", Name: "Intro to Computer Science", Capacity: 2},
		&Resource{ID: "MTH101", Name: "Calculus I", Capacity: 1},
	)
}

func (s *InMemoryStoreSuite) TestFind() {
	s.Run("returns seeded resource", func() {
		resource, err := s.store.Find(s.ctx, "CSE101")
		s.Require().NoError(err)
		s.Equal("Intro to Computer Science", resource.Name)
		s.Equal(2, resource.Capacity)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.Find(s.ctx, "ZZZ")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns an independent copy", func() {
		resource, err := s.store.Find(s.ctx, "CSE101")
		s.Require().NoError(err)
		resource.Holders = append(resource.Holders, "tamper")

		again, err := s.store.Find(s.ctx, "CSE101")
		s.Require().NoError(err)
		s.Empty(again.Holders)
	})
}

func (s *InMemoryStoreSuite) TestList() {
	resources, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(resources, 2)
	s.Equal("CSE101", resources[0].ID)
	s.Equal("MTH101", resources[1].ID)
}

func (s *InMemoryStoreSuite) TestExecute() {
	s.Run("publishes mutation on success", func() {
		updated, err := s.store.Execute(s.ctx, "CSE101", func(r *Resource) error {
			r.ApplyAdmission("s001")
			return nil
		})
		s.Require().NoError(err)
		s.Equal([]string{"s001"}, updated.Holders)

		found, err := s.store.Find(s.ctx, "CSE101")
		s.Require().NoError(err)
		s.Equal([]string{"s001"}, found.Holders)
	})

	s.Run("aborted callback publishes nothing", func() {
		boom := errors.New("boom")
		_, err := s.store.Execute(s.ctx, "MTH101", func(r *Resource) error {
			r.ApplyAdmission("s001")
			return boom
		})
		s.Require().ErrorIs(err, boom)

		found, err := s.store.Find(s.ctx, "MTH101")
		s.Require().NoError(err)
		s.Empty(found.Holders)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.Execute(s.ctx, "ZZZ", func(*Resource) error { return nil })
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestSnapshotRoundTrip() {
	_, err := s.store.Execute(s.ctx, "CSE101", func(r *Resource) error {
		r.ApplyAdmission("s001")
		return nil
	})
	s.Require().NoError(err)

	raw, err := json.Marshal(s.store.Snapshot())
	s.Require().NoError(err)

	restored := NewInMemory("courses",
		&Resource{ID: "CSE101", Name: "Intro to Computer Science", Capacity: 2},
		&Resource{ID: "MTH101", Name: "Calculus I", Capacity: 1},
	)
	s.Require().NoError(restored.Restore(raw))

	resource, err := restored.Find(s.ctx, "CSE101")
	s.Require().NoError(err)
	s.Equal([]string{"s001"}, resource.Holders)
}
