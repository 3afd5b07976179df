package domain

import (
	"time"

	"github.com/google/uuid"
)

// Hackathon statuses as reported by the API.
const (
	HackathonUpcoming = "upcoming"
	HackathonLive     = "live"
	HackathonJudging  = "judging"
	HackathonEnded    = "ended"
)

// Hackathon represents a single challenge listed on the platform.
type Hackathon struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Tagline      string    `json:"tagline,omitempty"`
	Theme        string    `json:"theme,omitempty"`
	Status       string    `json:"status"` // "upcoming", "live", "judging", "ended"
	EntryFee     string    `json:"entry_fee"`
	PrizePool    string    `json:"prize_pool,omitempty"`
	Participants int       `json:"participants"`
	TeamSizeMax  int       `json:"team_size_max,omitempty"`
	Joined       bool      `json:"joined"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
}

// ValidStatuses lists every hackathon status the client understands.
var ValidStatuses = []string{
	HackathonUpcoming,
	HackathonLive,
	HackathonJudging,
	HackathonEnded,
}

// ValidStatus reports whether s is a known hackathon status.
func ValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Open reports whether the hackathon still accepts new participants.
func (h Hackathon) Open() bool {
	return h.Status == HackathonUpcoming || h.Status == HackathonLive
}
