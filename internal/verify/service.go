// Package verify issues and confirms one-time codes for student identity
// checks. Delivery is mocked: the code comes back in the response instead of
// going out over SMS or email.
package verify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"campusdesk/internal/audit"
	"campusdesk/internal/platform/metrics"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/platform/sentinel"
	"campusdesk/pkg/requestcontext"
)

const codeLength = 6

// Confirmation reasons returned to the client on failure.
const (
	ReasonNoRequest   = "no_otp_requested"
	ReasonInvalidCode = "invalid_code"
	ReasonExpired     = "expired"
)

// Auditor mirrors the registration engine's audit port.
type Auditor interface {
	Emit(ctx context.Context, actor string, action audit.Action, details map[string]string)
}

// Service issues and confirms OTP challenges.
type Service struct {
	store   Store
	ttl     time.Duration
	auditor Auditor
	metrics *metrics.Metrics

	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewService builds the service. requestsPerMinute bounds how often a single
// student can ask for a fresh code.
func NewService(store Store, ttl time.Duration, requestsPerMinute int, auditor Auditor, m *metrics.Metrics) *Service {
	return &Service{
		store:    store,
		ttl:      ttl,
		auditor:  auditor,
		metrics:  m,
		limit:    rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:    requestsPerMinute,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (s *Service) limiterFor(studentID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	limiter, ok := s.limiters[studentID]
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[studentID] = limiter
	}
	return limiter
}

// Issued is the result of a successful OTP request.
type Issued struct {
	Code      string
	ExpiresAt time.Time
}

// RequestCode mints a fresh challenge for the student, replacing any pending
// one. The plaintext code is returned to the caller; only its hash is kept.
func (s *Service) RequestCode(ctx context.Context, studentID string) (Issued, error) {
	if studentID == "" {
		return Issued{}, dErrors.New(dErrors.CodeValidation, "student_id required")
	}
	if !s.limiterFor(studentID).Allow() {
		return Issued{}, dErrors.New(dErrors.CodeRateLimited, "too many OTP requests")
	}

	code := generateCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return Issued{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash code")
	}

	now := requestcontext.Now(ctx)
	challenge := Challenge{
		StudentID: studentID,
		CodeHash:  hash,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Put(ctx, challenge); err != nil {
		return Issued{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store challenge")
	}

	s.metrics.IncrementOTPRequests()
	if s.auditor != nil {
		s.auditor.Emit(ctx, studentID, audit.ActionOTPRequested, nil)
	}
	return Issued{Code: code, ExpiresAt: challenge.ExpiresAt}, nil
}

// Confirm checks the submitted code against the pending challenge. The
// challenge is consumed either way; a wrong code means requesting again.
func (s *Service) Confirm(ctx context.Context, studentID, code string) (string, error) {
	if studentID == "" || code == "" {
		return "", dErrors.New(dErrors.CodeValidation, "student_id and otp required")
	}

	challenge, err := s.store.Take(ctx, studentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ReasonNoRequest, nil
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load challenge")
	}

	if challenge.Expired(requestcontext.Now(ctx)) {
		return ReasonExpired, nil
	}
	if bcrypt.CompareHashAndPassword(challenge.CodeHash, []byte(code)) != nil {
		return ReasonInvalidCode, nil
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, studentID, audit.ActionOTPVerified, nil)
	}
	return "", nil
}

// generateCode derives a 6-character uppercase code from a fresh uuid.
func generateCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:codeLength])
}
