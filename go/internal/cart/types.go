package cart

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/grouporder/go/internal/models"
)

// GetCartSnapshotRequest asks for the cart view of one participant.
type GetCartSnapshotRequest struct {
	GroupID                string `json:"group_id"`
	RequesterParticipantID string `json:"requester_participant_id"`
}

// GetCartSnapshotResponse wraps a host or guest snapshot.
type GetCartSnapshotResponse struct {
	Snapshot models.CartSnapshot `json:"snapshot"`
}

// UnmarshalJSON decodes the snapshot variant named by its mode.
func (r *GetCartSnapshotResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Snapshot json.RawMessage `json:"snapshot"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Snapshot) == 0 || string(raw.Snapshot) == "null" {
		r.Snapshot = nil
		return nil
	}

	var head struct {
		Mode models.SnapshotMode `json:"mode"`
	}
	if err := json.Unmarshal(raw.Snapshot, &head); err != nil {
		return err
	}

	switch head.Mode {
	case models.SnapshotModeHost:
		var s models.HostCartSnapshot
		if err := json.Unmarshal(raw.Snapshot, &s); err != nil {
			return err
		}
		r.Snapshot = &s
	case models.SnapshotModeGuest:
		var s models.GuestCartSnapshot
		if err := json.Unmarshal(raw.Snapshot, &s); err != nil {
			return err
		}
		r.Snapshot = &s
	default:
		return fmt.Errorf("unknown snapshot mode %q", head.Mode)
	}
	return nil
}

// UpsertCartItemRequest sets the quantity of one (participant, menu item) line.
type UpsertCartItemRequest struct {
	GroupID             string  `json:"group_id"`
	ActorParticipantID  string  `json:"actor_participant_id"`
	TargetParticipantID string  `json:"target_participant_id"`
	MenuItemID          string  `json:"menu_item_id"`
	Quantity            float64 `json:"quantity"`
}

// UpsertCartItemResponse holds the resulting cart item.
type UpsertCartItemResponse struct {
	Item *models.CartItem `json:"item"`
}

// RemoveCartItemRequest deletes one cart item.
type RemoveCartItemRequest struct {
	GroupID            string `json:"group_id"`
	ActorParticipantID string `json:"actor_participant_id"`
	CartItemID         string `json:"cart_item_id"`
}

// RemoveCartItemResponse confirms a removal.
type RemoveCartItemResponse struct {
	Success    bool      `json:"success"`
	CartItemID uuid.UUID `json:"cart_item_id"`
}

// SetCartItemQuantityRequest changes an existing line's quantity. A quantity
// that rounds to zero or below removes the line.
type SetCartItemQuantityRequest struct {
	GroupID            string  `json:"group_id"`
	ActorParticipantID string  `json:"actor_participant_id"`
	CartItemID         string  `json:"cart_item_id"`
	Quantity           float64 `json:"quantity"`
}

// SetCartItemQuantityResponse holds the updated item, or Removed when the line was deleted.
type SetCartItemQuantityResponse struct {
	Item       *models.CartItem `json:"item,omitempty"`
	Removed    bool             `json:"removed"`
	CartItemID uuid.UUID        `json:"cart_item_id"`
}
