// Package wallet simulates the payment processor behind entry fees and
// prize payouts. Everything lives in process memory: a single balance and
// an append-only transaction log. Nothing survives a restart.
package wallet

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/collectivehq/collective/pkg/domain"
)

// ErrInsufficientFunds is returned by Pay when the balance cannot cover
// the amount. The ledger is left untouched.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger is the in-memory mock wallet. Construct one per process and
// inject it where needed. Bubble Tea commands run on their own
// goroutines, so the mutex is load-bearing even though the UI itself is
// single-threaded.
type Ledger struct {
	mu       sync.Mutex
	userID   uuid.UUID
	balance  int
	currency string
	log      []domain.Transaction
	latency  time.Duration
	logger   *zap.SugaredLogger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLatency makes mutating operations sleep to mimic a processor
// round-trip. Tests leave it at zero.
func WithLatency(d time.Duration) Option {
	return func(l *Ledger) { l.latency = d }
}

// WithLogger attaches a logger for debug-level accounting traces.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// NewLedger creates a wallet for one user with an opening balance.
func NewLedger(userID uuid.UUID, openingBalance int, currency string, opts ...Option) *Ledger {
	l := &Ledger{
		userID:   userID,
		balance:  openingBalance,
		currency: currency,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Balance returns the current balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Currency returns the wallet's currency code.
func (l *Ledger) Currency() string {
	return l.currency
}

// Transactions returns a copy of the log, newest first.
func (l *Ledger) Transactions() []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Transaction, len(l.log))
	for i, tx := range l.log {
		out[len(l.log)-1-i] = tx
	}
	return out
}

// Pay deducts amount for joining the given hackathon and returns the
// payment's transaction ID, so the caller can refund that exact payment
// later. It fails closed: when the balance is short, nothing is mutated
// and nothing is appended. The balance can never go below zero.
func (l *Ledger) Pay(hackathonID string, amount int) (uuid.UUID, error) {
	l.simulateProcessor()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balance < amount {
		l.logger.Debugw("payment declined", "hackathon", hackathonID, "amount", amount, "balance", l.balance)
		return uuid.Nil, ErrInsufficientFunds
	}
	l.balance -= amount
	id := l.append(domain.TxPayment, amount, "entry fee", map[string]string{"hackathon_id": hackathonID})
	return id, nil
}

// TopUp credits the balance with a completed topup transaction.
func (l *Ledger) TopUp(amount int) {
	l.simulateProcessor()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance += amount
	l.append(domain.TxTopup, amount, "wallet top-up", nil)
}

// Payout credits prize money won in a hackathon.
func (l *Ledger) Payout(amount int, description string) {
	l.simulateProcessor()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance += amount
	l.append(domain.TxPrizePayout, amount, description, nil)
}

// Refund credits back a prior payment by transaction ID. It fails when
// the ID is unknown or does not reference a completed payment.
func (l *Ledger) Refund(txID uuid.UUID) error {
	l.simulateProcessor()

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, tx := range l.log {
		if tx.ID == txID && tx.Kind == domain.TxPayment && tx.Status == domain.TxCompleted {
			l.balance += tx.Amount
			l.append(domain.TxRefund, tx.Amount, "refund: "+tx.Description, map[string]string{"payment_id": txID.String()})
			return nil
		}
	}
	return errors.New("no completed payment with that id")
}

// Reset restores the opening state for tests: balance set, log emptied.
func (l *Ledger) Reset(balance int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = balance
	l.log = nil
}

// append records a completed transaction and returns its ID. Callers
// hold l.mu.
func (l *Ledger) append(kind string, amount int, description string, metadata map[string]string) uuid.UUID {
	id := uuid.New()
	l.log = append(l.log, domain.Transaction{
		ID:          id,
		UserID:      l.userID,
		Kind:        kind,
		Amount:      amount,
		Currency:    l.currency,
		Status:      domain.TxCompleted,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   time.Now(),
	})
	l.logger.Debugw("transaction appended", "kind", kind, "amount", amount, "balance", l.balance)
	return id
}

func (l *Ledger) simulateProcessor() {
	if l.latency > 0 {
		time.Sleep(l.latency)
	}
}
