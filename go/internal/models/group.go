package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupStatus defines the lifecycle status of a group order.
type GroupStatus string

const (
	GroupStatusOpen      GroupStatus = "open"
	GroupStatusLocked    GroupStatus = "locked"
	GroupStatusSubmitted GroupStatus = "submitted"
)

// Valid reports whether s is a known lifecycle status.
func (s GroupStatus) Valid() bool {
	switch s {
	case GroupStatusOpen, GroupStatusLocked, GroupStatusSubmitted:
		return true
	}
	return false
}

// MaxParticipants is the participant cap per group, host included.
const MaxParticipants = 3

// Group represents one group food order session.
// SubmittedAt is set if and only if Status is submitted.
type Group struct {
	ID          uuid.UUID   `json:"id"`
	HostEmail   string      `json:"host_email"`
	Status      GroupStatus `json:"status"`
	SubmittedAt *time.Time  `json:"submitted_at"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsOpen reports whether cart edits and joins are accepted.
func (g *Group) IsOpen() bool {
	return g.Status == GroupStatusOpen
}
