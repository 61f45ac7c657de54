package enrollment

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"campusdesk/internal/registration"
	"campusdesk/pkg/testutil"
)

type EnrollmentHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestEnrollmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(EnrollmentHandlerSuite))
}

func (s *EnrollmentHandlerSuite) SetupTest() {
	store := registration.NewInMemory("courses", SeedCourses()...)
	engine := registration.New(store, registration.Config{
		Domain:        "enrollment",
		ResourceKey:   "course",
		AllowWaitlist: true,
	})
	handler := NewHandler(NewService(engine), slog.Default())

	s.router = chi.NewRouter()
	handler.Register(s.router)
}

func (s *EnrollmentHandlerSuite) enroll(studentID, courseCode string) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/enroll", map[string]string{
		"student_id":  studentID,
		"course_code": courseCode,
	})
	return testutil.DoRequest(s.router, req)
}

func (s *EnrollmentHandlerSuite) TestEnrollFlow() {
	s.Run("first student enrolls", func() {
		rr := s.enroll("s001", "MTH101")
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "status", "enrolled")
	})

	s.Run("second student hits the waitlist", func() {
		rr := s.enroll("s002", "MTH101")
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "status", "waitlisted")
		testutil.AssertJSONContains(s.T(), rr, "position", float64(1))
	})

	s.Run("re-enrollment is idempotent", func() {
		rr := s.enroll("s001", "MTH101")
		testutil.AssertJSONContains(s.T(), rr, "status", "already_enrolled")

		rr = s.enroll("s002", "MTH101")
		testutil.AssertJSONContains(s.T(), rr, "status", "already_waitlisted")
		testutil.AssertJSONContains(s.T(), rr, "position", float64(1))
	})
}

func (s *EnrollmentHandlerSuite) TestEnrollErrors() {
	s.Run("unknown course", func() {
		rr := s.enroll("s001", "ZZZ999")
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
		testutil.AssertErrorCode(s.T(), rr, "not_found")
	})

	s.Run("missing fields", func() {
		rr := s.enroll("", "CSE101")
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorCode(s.T(), rr, "validation_error")
	})

	s.Run("malformed body", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/enroll")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

func (s *EnrollmentHandlerSuite) TestStatus() {
	s.enroll("s001", "CSE101")
	s.enroll("s002", "CSE101")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/enroll/status/CSE101")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	resp := testutil.UnmarshalResponse[struct {
		Course   string   `json:"course"`
		Enrolled []string `json:"enrolled"`
	}](s.T(), rr)
	s.Equal("CSE101", resp.Course)
	s.ElementsMatch([]string{"s001", "s002"}, resp.Enrolled)
}

func (s *EnrollmentHandlerSuite) TestStatusUnknownCourseIsEmpty() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/enroll/status/NOPE")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	resp := testutil.UnmarshalResponse[struct {
		Enrolled []string `json:"enrolled"`
	}](s.T(), rr)
	s.Empty(resp.Enrolled)
}

func (s *EnrollmentHandlerSuite) TestListCourses() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/courses")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	resp := testutil.UnmarshalResponse[[]struct {
		Code     string `json:"code"`
		Capacity int    `json:"capacity"`
	}](s.T(), rr)
	s.Require().Len(*resp, 2)
	s.Equal("CSE101", (*resp)[0].Code)
	s.Equal(2, (*resp)[0].Capacity)
}
