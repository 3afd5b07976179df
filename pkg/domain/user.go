package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered COLLECTIVE member.
type User struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Handle      string     `json:"handle"`
	DisplayName string     `json:"display_name,omitempty"`
	Verified    bool       `json:"verified"`
	Balance     int        `json:"balance"`
	Currency    string     `json:"currency,omitempty"`
	City        string     `json:"city,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
}
