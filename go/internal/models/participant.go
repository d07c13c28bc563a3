package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person in a group. Exactly one participant per group is host.
type Participant struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Email     string    `json:"email"`
	IsHost    bool      `json:"is_host"`
	CreatedAt time.Time `json:"created_at"`
}
