package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a team's entry into a hackathon.
type Submission struct {
	ID          uuid.UUID `json:"id"`
	HackathonID uuid.UUID `json:"hackathon_id"`
	TeamID      uuid.UUID `json:"team_id"`
	TeamName    string    `json:"team_name,omitempty"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	RepoURL     string    `json:"repo_url,omitempty"`
	DemoURL     string    `json:"demo_url,omitempty"`
	Votes       int       `json:"votes"`
	HasVoted    bool      `json:"has_voted"`
	SubmittedAt time.Time `json:"submitted_at"`
}
