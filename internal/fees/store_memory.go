package fees

import (
	"context"
	"encoding/json"
	"sync"

	"campusdesk/pkg/platform/sentinel"
)

// LedgerStore keeps fee accounts and payments in memory.
type LedgerStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
	payments map[string]Payment
}

func NewLedgerStore(seed map[string]Account) *LedgerStore {
	accounts := make(map[string]Account, len(seed))
	for id, account := range seed {
		accounts[id] = account
	}
	return &LedgerStore{
		accounts: accounts,
		payments: make(map[string]Payment),
	}
}

// Account returns the ledger for a student, or sentinel.ErrNotFound.
func (s *LedgerStore) Account(_ context.Context, studentID string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[studentID]
	if !ok {
		return Account{}, sentinel.ErrNotFound
	}
	return cloneAccount(account), nil
}

// SavePayment records a freshly generated payment.
func (s *LedgerStore) SavePayment(_ context.Context, payment Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = payment
	return nil
}

// Payment returns a payment by ID, or sentinel.ErrNotFound.
func (s *LedgerStore) Payment(_ context.Context, paymentID string) (Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, ok := s.payments[paymentID]
	if !ok {
		return Payment{}, sentinel.ErrNotFound
	}
	return payment, nil
}

// Settle marks a pending payment completed and applies it to the student's
// ledger in one critical section. Returns sentinel.ErrAlreadyUsed when the
// payment was completed before, making the callback idempotent-safe.
func (s *LedgerStore) Settle(_ context.Context, paymentID string, apply func(payment *Payment, account *Account)) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentID]
	if !ok {
		return Payment{}, sentinel.ErrNotFound
	}
	if payment.Status == PaymentStatusCompleted {
		return payment, sentinel.ErrAlreadyUsed
	}

	account := s.accounts[payment.StudentID]
	apply(&payment, &account)
	s.payments[paymentID] = payment
	s.accounts[payment.StudentID] = account
	return payment, nil
}

func cloneAccount(account Account) Account {
	out := account
	out.Items = make([]Item, len(account.Items))
	copy(out.Items, account.Items)
	return out
}

// ledgerSnapshot is the persisted shape of the store.
type ledgerSnapshot struct {
	Accounts map[string]Account `json:"fee_accounts"`
	Payments map[string]Payment `json:"payments"`
}

// SnapshotName implements persistence.Snapshotter.
func (s *LedgerStore) SnapshotName() string { return "fees" }

// Snapshot implements persistence.Snapshotter.
func (s *LedgerStore) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := ledgerSnapshot{
		Accounts: make(map[string]Account, len(s.accounts)),
		Payments: make(map[string]Payment, len(s.payments)),
	}
	for id, account := range s.accounts {
		snap.Accounts[id] = cloneAccount(account)
	}
	for id, payment := range s.payments {
		snap.Payments[id] = payment
	}
	return snap
}

// Restore implements persistence.Snapshotter.
func (s *LedgerStore) Restore(raw json.RawMessage) error {
	var snap ledgerSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Accounts != nil {
		s.accounts = snap.Accounts
	}
	if snap.Payments != nil {
		s.payments = snap.Payments
	}
	return nil
}
