package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/grouporder/go/internal/models"
)

// buildItemViews joins cart rows with their participant and menu item. Rows
// whose participant or menu item cannot be resolved are left out.
func buildItemViews(items []models.CartItem, participants []models.Participant, menuItems []models.MenuItem) []models.CartItemView {
	participantsByID := make(map[uuid.UUID]models.Participant, len(participants))
	for _, p := range participants {
		participantsByID[p.ID] = p
	}
	menuByID := make(map[uuid.UUID]models.MenuItem, len(menuItems))
	for _, m := range menuItems {
		menuByID[m.ID] = m
	}

	views := make([]models.CartItemView, 0, len(items))
	for _, it := range items {
		p, ok := participantsByID[it.ParticipantID]
		if !ok {
			continue
		}
		m, ok := menuByID[it.MenuItemID]
		if !ok {
			continue
		}
		views = append(views, models.CartItemView{
			ID:               it.ID,
			ParticipantID:    it.ParticipantID,
			ParticipantEmail: p.Email,
			MenuItemID:       it.MenuItemID,
			MenuItemName:     m.Name,
			Quantity:         it.Quantity,
			UnitPrice:        m.Price,
		})
	}
	return views
}

func itemsOf(views []models.CartItemView, participantID uuid.UUID) ([]models.CartItemView, decimal.Decimal) {
	out := []models.CartItemView{}
	subtotal := decimal.Zero
	for _, v := range views {
		if v.ParticipantID != participantID {
			continue
		}
		out = append(out, v)
		subtotal = subtotal.Add(v.LineTotal())
	}
	return out, subtotal
}

// BuildSnapshot shapes the cart for requester. Hosts get one section per
// participant in listing order plus the group total; guests get only their
// own items.
func BuildSnapshot(
	requester *models.Participant,
	participants []models.Participant,
	items []models.CartItem,
	menuItems []models.MenuItem,
	currency string,
) models.CartSnapshot {
	views := buildItemViews(items, participants, menuItems)

	if !requester.IsHost {
		own, subtotal := itemsOf(views, requester.ID)
		return &models.GuestCartSnapshot{
			Mode:          models.SnapshotModeGuest,
			ParticipantID: requester.ID,
			Items:         own,
			Subtotal:      subtotal,
			Currency:      currency,
		}
	}

	sections := make([]models.ParticipantCartSection, 0, len(participants))
	total := decimal.Zero
	for _, p := range participants {
		own, subtotal := itemsOf(views, p.ID)
		sections = append(sections, models.ParticipantCartSection{
			ParticipantID:    p.ID,
			ParticipantEmail: p.Email,
			IsHost:           p.IsHost,
			Items:            own,
			Subtotal:         subtotal,
		})
		total = total.Add(subtotal)
	}

	return &models.HostCartSnapshot{
		Mode:       models.SnapshotModeHost,
		Sections:   sections,
		GroupTotal: total,
		Currency:   currency,
	}
}
