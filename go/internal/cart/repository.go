package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/grouporder/go/internal/db"
	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	UpsertCartItem(ctx context.Context, arg db.UpsertCartItemParams) (db.CartItem, error)
	GetCartItem(ctx context.Context, id uuid.UUID) (db.CartItem, error)
	DeleteCartItem(ctx context.Context, id uuid.UUID) (int64, error)
	ListCartItemsByGroup(ctx context.Context, groupID uuid.UUID) ([]db.CartItem, error)
}

// Repository implements cart item data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new cart repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// UpsertCartItem inserts the (participant, menu item) line or replaces its quantity
func (r *Repository) UpsertCartItem(ctx context.Context, groupID, participantID, menuItemID uuid.UUID, quantity int) (*models.CartItem, error) {
	row, err := r.queries.UpsertCartItem(ctx, db.UpsertCartItemParams{
		GroupID:       groupID,
		ParticipantID: participantID,
		MenuItemID:    menuItemID,
		Quantity:      int32(quantity),
	})
	if err != nil {
		return nil, fmt.Errorf("q.UpsertCartItem: %w", sqlutil.Classify(err))
	}
	return dbCartItemToModel(row), nil
}

// GetCartItem retrieves a cart item by ID
func (r *Repository) GetCartItem(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	row, err := r.queries.GetCartItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("q.GetCartItem: %w", sqlutil.Classify(err))
	}
	return dbCartItemToModel(row), nil
}

// DeleteCartItem deletes a cart item, reporting whether a row was removed
func (r *Repository) DeleteCartItem(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.queries.DeleteCartItem(ctx, id)
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartItem: %w", sqlutil.Classify(err))
	}
	return n > 0, nil
}

// ListCartItemsByGroup lists a group's cart items in creation order
func (r *Repository) ListCartItemsByGroup(ctx context.Context, groupID uuid.UUID) ([]models.CartItem, error) {
	rows, err := r.queries.ListCartItemsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("q.ListCartItemsByGroup: %w", sqlutil.Classify(err))
	}

	out := make([]models.CartItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, *dbCartItemToModel(row))
	}
	return out, nil
}

func dbCartItemToModel(c db.CartItem) *models.CartItem {
	return &models.CartItem{
		ID:            c.ID,
		GroupID:       c.GroupID,
		ParticipantID: c.ParticipantID,
		MenuItemID:    c.MenuItemID,
		Quantity:      int(c.Quantity),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
