package fees

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campusdesk/internal/audit"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/requestcontext"
)

type recordingAuditor struct {
	events []audit.Action
}

func (a *recordingAuditor) Emit(_ context.Context, _ string, action audit.Action, _ map[string]string) {
	a.events = append(a.events, action)
}

type FeesServiceSuite struct {
	suite.Suite
	ctx     context.Context
	auditor *recordingAuditor
	service *Service
}

func TestFeesServiceSuite(t *testing.T) {
	suite.Run(t, new(FeesServiceSuite))
}

func (s *FeesServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	s.auditor = &recordingAuditor{}
	ledger := NewLedgerStore(map[string]Account{
		"s001": {Balance: 1500.00, Items: []Item{{Desc: "Tuition", Amount: 1500.00}}},
	})
	s.service = NewService(ledger, NewTokenSigner("test-key"), s.auditor, nil, nil)
}

func (s *FeesServiceSuite) TestGetFees() {
	s.Run("known student returns ledger", func() {
		account, err := s.service.GetFees(s.ctx, "s001")
		s.Require().NoError(err)
		s.Equal(1500.00, account.Balance)
		s.Len(account.Items, 1)
	})

	s.Run("unknown student returns zero ledger", func() {
		account, err := s.service.GetFees(s.ctx, "ghost")
		s.Require().NoError(err)
		s.Zero(account.Balance)
		s.NotNil(account.Items)
		s.Empty(account.Items)
	})

	s.Run("lookup is audited", func() {
		_, err := s.service.GetFees(s.ctx, "s001")
		s.Require().NoError(err)
		s.Contains(s.auditor.events, audit.ActionCheckFees)
	})
}

func (s *FeesServiceSuite) TestCreatePayment() {
	s.Run("mints a pending payment with a signed link", func() {
		link, err := s.service.CreatePayment(s.ctx, "s001", 500.00)
		s.Require().NoError(err)
		s.Equal(PaymentStatusPending, link.Payment.Status)
		s.Equal(500.00, link.Payment.Amount)
		s.Equal(link.Payment.CreatedAt.Add(PaymentValidity), link.Payment.ExpiresAt)
		s.True(strings.HasPrefix(link.URL, paymentBaseURL))

		token := strings.TrimPrefix(link.URL, paymentBaseURL)
		paymentID, err := s.service.signer.Verify(token)
		s.Require().NoError(err)
		s.Equal(link.Payment.ID, paymentID)
	})

	s.Run("rejects non-positive amounts", func() {
		_, err := s.service.CreatePayment(s.ctx, "s001", 0)
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})
}

func (s *FeesServiceSuite) TestCompletePayment() {
	link, err := s.service.CreatePayment(s.ctx, "s001", 500.00)
	s.Require().NoError(err)

	s.Run("settles the ledger once", func() {
		payment, err := s.service.CompletePayment(s.ctx, link.Payment.ID)
		s.Require().NoError(err)
		s.Equal(PaymentStatusCompleted, payment.Status)
		s.Require().NotNil(payment.CompletedAt)

		account, err := s.service.GetFees(s.ctx, "s001")
		s.Require().NoError(err)
		s.Equal(1000.00, account.Balance)
		s.Equal(Item{Desc: "Online payment", Amount: -500.00}, account.Items[len(account.Items)-1])
	})

	s.Run("second callback is a conflict", func() {
		_, err := s.service.CompletePayment(s.ctx, link.Payment.ID)
		s.True(dErrors.Is(err, dErrors.CodeConflict))

		account, err := s.service.GetFees(s.ctx, "s001")
		s.Require().NoError(err)
		s.Equal(1000.00, account.Balance)
	})

	s.Run("unknown payment is not found", func() {
		_, err := s.service.CompletePayment(s.ctx, "nope")
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func (s *FeesServiceSuite) TestBalanceNeverGoesNegative() {
	link, err := s.service.CreatePayment(s.ctx, "s001", 2000.00)
	s.Require().NoError(err)

	_, err = s.service.CompletePayment(s.ctx, link.Payment.ID)
	s.Require().NoError(err)

	account, err := s.service.GetFees(s.ctx, "s001")
	s.Require().NoError(err)
	s.Zero(account.Balance)
}
