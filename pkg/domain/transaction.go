package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction kinds.
const (
	TxTopup       = "topup"
	TxPayment     = "payment"
	TxRefund      = "refund"
	TxPrizePayout = "prize_payout"
)

// Transaction statuses.
const (
	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
)

// Transaction is one immutable entry in the wallet ledger.
// Records are append-only and never mutated after creation.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	Kind        string            `json:"kind"`   // "topup", "payment", "refund", "prize_payout"
	Amount      int               `json:"amount"` // whole currency units
	Currency    string            `json:"currency"`
	Status      string            `json:"status"` // "pending", "completed", "failed"
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
