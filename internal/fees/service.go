// Package fees manages student fee ledgers and mock payment links. Payments
// follow a generate-then-callback flow: the service mints a signed link, and
// a later callback settles the payment against the ledger exactly once.
package fees

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"campusdesk/internal/audit"
	"campusdesk/internal/platform/metrics"
	"campusdesk/internal/registration"
	dErrors "campusdesk/pkg/domain-errors"
	"campusdesk/pkg/platform/sentinel"
	"campusdesk/pkg/requestcontext"
)

// paymentBaseURL is the mock payment page; the token identifies the payment.
const paymentBaseURL = "https://payments.example/university/pay/"

// Auditor mirrors the registration engine's audit port.
type Auditor interface {
	Emit(ctx context.Context, actor string, action audit.Action, details map[string]string)
}

// Service handles fee lookups and the payment link lifecycle.
type Service struct {
	ledger  *LedgerStore
	signer  *TokenSigner
	auditor Auditor
	persist registration.Checkpointer
	metrics *metrics.Metrics
}

func NewService(ledger *LedgerStore, signer *TokenSigner, auditor Auditor, persist registration.Checkpointer, m *metrics.Metrics) *Service {
	return &Service{ledger: ledger, signer: signer, auditor: auditor, persist: persist, metrics: m}
}

// GetFees returns the student's ledger. Unknown students get an empty zero
// ledger rather than an error.
func (s *Service) GetFees(ctx context.Context, studentID string) (Account, error) {
	account, err := s.ledger.Account(ctx, studentID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return Account{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load fee account")
		}
		account = Account{Items: []Item{}}
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, studentID, audit.ActionCheckFees, map[string]string{
			"balance": fmt.Sprintf("%.2f", account.Balance),
		})
	}
	return account, nil
}

// PaymentLink is the response to a payment generation request.
type PaymentLink struct {
	Payment Payment
	URL     string
}

// CreatePayment mints a pending payment and a signed link for it.
func (s *Service) CreatePayment(ctx context.Context, studentID string, amount float64) (PaymentLink, error) {
	if amount <= 0 {
		return PaymentLink{}, dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}

	now := requestcontext.Now(ctx)
	payment := Payment{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Amount:    amount,
		CreatedAt: now,
		ExpiresAt: now.Add(PaymentValidity),
		Status:    PaymentStatusPending,
	}

	token, err := s.signer.Sign(payment.ID, now, payment.ExpiresAt)
	if err != nil {
		return PaymentLink{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign payment link")
	}
	if err := s.ledger.SavePayment(ctx, payment); err != nil {
		return PaymentLink{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save payment")
	}

	s.metrics.IncrementPaymentsCreated()
	if s.auditor != nil {
		s.auditor.Emit(ctx, studentID, audit.ActionGeneratePayment, map[string]string{
			"payment_id": payment.ID,
			"amount":     fmt.Sprintf("%.2f", amount),
		})
	}
	if s.persist != nil {
		s.persist.Checkpoint(ctx)
	}
	return PaymentLink{Payment: payment, URL: paymentBaseURL + token}, nil
}

// CompletePayment settles a pending payment: the payment flips to completed,
// the balance drops (never below zero) and the ledger gains a payment line.
// A second callback for the same payment is a conflict, not a double charge.
func (s *Service) CompletePayment(ctx context.Context, paymentID string) (Payment, error) {
	payment, err := s.ledger.Settle(ctx, paymentID, func(payment *Payment, account *Account) {
		completedAt := requestcontext.Now(ctx)
		payment.Status = PaymentStatusCompleted
		payment.CompletedAt = &completedAt

		account.Balance -= payment.Amount
		if account.Balance < 0 {
			account.Balance = 0
		}
		account.Items = append(account.Items, Item{Desc: "Online payment", Amount: -payment.Amount})
	})
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return Payment{}, dErrors.Wrap(err, dErrors.CodeNotFound, "payment not found")
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			return Payment{}, dErrors.Wrap(err, dErrors.CodeConflict, "payment already completed")
		default:
			return Payment{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to complete payment")
		}
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, payment.StudentID, audit.ActionPaymentCompleted, map[string]string{
			"payment_id": payment.ID,
			"amount":     fmt.Sprintf("%.2f", payment.Amount),
		})
	}
	if s.persist != nil {
		s.persist.Checkpoint(ctx)
	}
	return payment, nil
}
