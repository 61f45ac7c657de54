package http

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campusdesk/internal/audit"
	auditmemory "campusdesk/internal/audit/store/memory"
	"campusdesk/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	deps Dependencies
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.deps = Dependencies{
		Logger:  slog.Default(),
		Auditor: audit.NewPublisher(auditmemory.NewInMemoryStore(), slog.Default()),
	}
}

func (s *RouterSuite) TestHealth() {
	router := NewRouter(s.deps)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/health")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	testutil.AssertJSONContains(s.T(), rr, "status", "ok")
	s.Equal("application/json", rr.Header().Get("Content-Type"))
	s.NotEmpty(rr.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestUnknownRoute() {
	router := NewRouter(s.deps)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/nope")
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
}

func (s *RouterSuite) TestAdminResetAudits() {
	router := NewRouter(s.deps)

	req := testutil.NewRequest(s.T(), http.MethodPost, "/admin/reset")
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	testutil.AssertJSONContains(s.T(), rr, "status", "reset")

	events, err := s.deps.Auditor.List(req.Context(), time.Time{})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionReset, events[0].Action)
	s.Equal("admin", events[0].Actor)
}
