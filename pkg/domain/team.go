package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team is a group of members competing in one hackathon.
type Team struct {
	ID          uuid.UUID    `json:"id"`
	HackathonID uuid.UUID    `json:"hackathon_id"`
	Name        string       `json:"name"`
	InviteCode  string       `json:"invite_code,omitempty"`
	Open        bool         `json:"open"`
	Members     []TeamMember `json:"members,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// TeamMember is the short member summary embedded in a team.
type TeamMember struct {
	Handle string `json:"handle"`
	Role   string `json:"role,omitempty"` // "captain" or empty
}
