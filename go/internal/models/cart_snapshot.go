package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SnapshotMode discriminates the two cart snapshot shapes.
type SnapshotMode string

const (
	SnapshotModeHost  SnapshotMode = "host"
	SnapshotModeGuest SnapshotMode = "guest"
)

// CartItemView is a cart line joined with its participant and menu item.
type CartItemView struct {
	ID               uuid.UUID       `json:"id"`
	ParticipantID    uuid.UUID       `json:"participant_id"`
	ParticipantEmail string          `json:"participant_email"`
	MenuItemID       uuid.UUID       `json:"menu_item_id"`
	MenuItemName     string          `json:"menu_item_name"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

// LineTotal is quantity times unit price.
func (v CartItemView) LineTotal() decimal.Decimal {
	return v.UnitPrice.Mul(decimal.NewFromInt(int64(v.Quantity)))
}

// ParticipantCartSection is one participant's part of the host view.
type ParticipantCartSection struct {
	ParticipantID    uuid.UUID       `json:"participant_id"`
	ParticipantEmail string          `json:"participant_email"`
	IsHost           bool            `json:"is_host"`
	Items            []CartItemView  `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// CartSnapshot is either a HostCartSnapshot or a GuestCartSnapshot.
type CartSnapshot interface {
	SnapshotMode() SnapshotMode
	isCartSnapshot()
}

// HostCartSnapshot shows every participant's section and the group total.
type HostCartSnapshot struct {
	Mode       SnapshotMode             `json:"mode"`
	Sections   []ParticipantCartSection `json:"sections"`
	GroupTotal decimal.Decimal          `json:"group_total"`
	Currency   string                   `json:"currency"`
}

func (s *HostCartSnapshot) SnapshotMode() SnapshotMode { return SnapshotModeHost }
func (s *HostCartSnapshot) isCartSnapshot()            {}

// GuestCartSnapshot shows only the requester's own items.
type GuestCartSnapshot struct {
	Mode          SnapshotMode    `json:"mode"`
	ParticipantID uuid.UUID       `json:"participant_id"`
	Items         []CartItemView  `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Currency      string          `json:"currency"`
}

func (s *GuestCartSnapshot) SnapshotMode() SnapshotMode { return SnapshotModeGuest }
func (s *GuestCartSnapshot) isCartSnapshot()            {}
