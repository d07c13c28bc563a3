package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinCartQuantity = 1
	MaxCartQuantity = 99
)

// CartItem is a (participant, menu item, quantity) line. At most one exists per
// (participant, menu item) pair.
type CartItem struct {
	ID            uuid.UUID `json:"id"`
	GroupID       uuid.UUID `json:"group_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	MenuItemID    uuid.UUID `json:"menu_item_id"`
	Quantity      int       `json:"quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
