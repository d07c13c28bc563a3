package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/currency"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/groups"
	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/sqlutil"
	"github.com/mcdev12/grouporder/go/internal/validate"
)

// CartRepository defines what the app layer needs from the repository
type CartRepository interface {
	UpsertCartItem(ctx context.Context, groupID, participantID, menuItemID uuid.UUID, quantity int) (*models.CartItem, error)
	GetCartItem(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id uuid.UUID) (bool, error)
	ListCartItemsByGroup(ctx context.Context, groupID uuid.UUID) ([]models.CartItem, error)
}

// ParticipantResolver resolves an acting participant within its group.
type ParticipantResolver interface {
	ResolveParticipant(ctx context.Context, groupID, participantID uuid.UUID) (*groups.ParticipantContext, error)
}

// ParticipantReader reads participant rows.
type ParticipantReader interface {
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	ListParticipantsByGroup(ctx context.Context, groupID uuid.UUID) ([]models.Participant, error)
}

// MenuReader reads catalog rows.
type MenuReader interface {
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error)
}

// App handles cart mutation and aggregation
type App struct {
	repo         CartRepository
	resolver     ParticipantResolver
	participants ParticipantReader
	menu         MenuReader
	currency     currency.Unit
}

// NewApp creates a new cart App. Snapshots are denominated in unit.
func NewApp(repo CartRepository, resolver ParticipantResolver, participants ParticipantReader, menu MenuReader, unit currency.Unit) *App {
	return &App{
		repo:         repo,
		resolver:     resolver,
		participants: participants,
		menu:         menu,
		currency:     unit,
	}
}

// CanMutate reports whether actor may change the cart of targetParticipantID.
// Hosts may change any cart in their group, guests only their own.
func CanMutate(actor *models.Participant, targetParticipantID uuid.UUID) bool {
	return actor.IsHost || actor.ID == targetParticipantID
}

var (
	errCartNotOpen     = apperrors.New(apperrors.CodeForbidden, "Cart can only be modified while the group is open.")
	errGuestOwnCart    = apperrors.New(apperrors.CodeForbidden, "Guests can only modify their own cart items.")
	errCartItemMissing = apperrors.New(apperrors.CodeNotFound, "Cart item not found.")
)

// GetCartSnapshot returns the current cart, shaped for the requester's role.
func (a *App) GetCartSnapshot(ctx context.Context, req GetCartSnapshotRequest) (*GetCartSnapshotResponse, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}
	requesterID, err := validate.ID("requester_participant_id", "requester participant ID", req.RequesterParticipantID)
	if err != nil {
		return nil, err
	}

	pc, err := a.resolver.ResolveParticipant(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}

	participants, err := a.participants.ListParticipantsByGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	items, err := a.repo.ListCartItemsByGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	menuItems, err := a.menu.ListMenuItemsByIDs(ctx, distinctMenuItemIDs(items))
	if err != nil {
		return nil, apperrors.Database(err)
	}

	snapshot := BuildSnapshot(pc.Participant, participants, items, menuItems, a.currency.String())
	return &GetCartSnapshotResponse{Snapshot: snapshot}, nil
}

// UpsertCartItem sets the quantity of the target participant's line for a menu
// item, creating it if needed. An existing quantity is replaced, not added to.
func (a *App) UpsertCartItem(ctx context.Context, req UpsertCartItemRequest) (*UpsertCartItemResponse, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}
	actorID, err := validate.ID("actor_participant_id", "actor participant ID", req.ActorParticipantID)
	if err != nil {
		return nil, err
	}
	targetID, err := validate.ID("target_participant_id", "target participant ID", req.TargetParticipantID)
	if err != nil {
		return nil, err
	}
	menuItemID, err := validate.ID("menu_item_id", "menu item ID", req.MenuItemID)
	if err != nil {
		return nil, err
	}
	quantity, err := validate.Quantity("quantity", req.Quantity)
	if err != nil {
		return nil, err
	}

	actor, err := a.openGroupActor(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}

	if err := a.checkTarget(ctx, groupID, actor, targetID); err != nil {
		return nil, err
	}

	if _, err := a.menu.GetMenuItem(ctx, menuItemID); err != nil {
		if errors.Is(err, sqlutil.ErrNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "Menu item not found.")
		}
		return nil, apperrors.Database(err)
	}

	if !CanMutate(actor, targetID) {
		return nil, errGuestOwnCart
	}

	item, err := a.repo.UpsertCartItem(ctx, groupID, targetID, menuItemID, quantity)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("group_id", groupID.String()).
		Str("actor_participant_id", actorID.String()).
		Str("cart_item_id", item.ID.String()).
		Int("quantity", item.Quantity).
		Msg("upserted cart item")

	return &UpsertCartItemResponse{Item: item}, nil
}

// RemoveCartItem deletes a cart item the actor is allowed to change.
func (a *App) RemoveCartItem(ctx context.Context, req RemoveCartItemRequest) (*RemoveCartItemResponse, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}
	actorID, err := validate.ID("actor_participant_id", "actor participant ID", req.ActorParticipantID)
	if err != nil {
		return nil, err
	}
	cartItemID, err := validate.ID("cart_item_id", "cart item ID", req.CartItemID)
	if err != nil {
		return nil, err
	}

	actor, err := a.openGroupActor(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}

	item, err := a.mutableItem(ctx, groupID, actor, cartItemID)
	if err != nil {
		return nil, err
	}

	if err := a.delete(ctx, item, actorID); err != nil {
		return nil, err
	}
	return &RemoveCartItemResponse{Success: true, CartItemID: item.ID}, nil
}

// SetCartItemQuantity changes the quantity of an existing line. A quantity that
// rounds to zero or below removes the line; anything else is clamped into the
// allowed range.
func (a *App) SetCartItemQuantity(ctx context.Context, req SetCartItemQuantityRequest) (*SetCartItemQuantityResponse, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}
	actorID, err := validate.ID("actor_participant_id", "actor participant ID", req.ActorParticipantID)
	if err != nil {
		return nil, err
	}
	cartItemID, err := validate.ID("cart_item_id", "cart item ID", req.CartItemID)
	if err != nil {
		return nil, err
	}
	rounded, err := validate.RoundQuantity("quantity", req.Quantity)
	if err != nil {
		return nil, err
	}

	actor, err := a.openGroupActor(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}

	item, err := a.mutableItem(ctx, groupID, actor, cartItemID)
	if err != nil {
		return nil, err
	}

	if rounded <= 0 {
		if err := a.delete(ctx, item, actorID); err != nil {
			return nil, err
		}
		return &SetCartItemQuantityResponse{Removed: true, CartItemID: item.ID}, nil
	}

	updated, err := a.repo.UpsertCartItem(ctx, item.GroupID, item.ParticipantID, item.MenuItemID, validate.ClampQuantity(rounded))
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("group_id", groupID.String()).
		Str("actor_participant_id", actorID.String()).
		Str("cart_item_id", updated.ID.String()).
		Int("quantity", updated.Quantity).
		Msg("updated cart item quantity")

	return &SetCartItemQuantityResponse{Item: updated, CartItemID: updated.ID}, nil
}

// openGroupActor resolves the actor and requires the group to be open.
func (a *App) openGroupActor(ctx context.Context, groupID, actorID uuid.UUID) (*models.Participant, error) {
	pc, err := a.resolver.ResolveParticipant(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !pc.Group.IsOpen() {
		return nil, errCartNotOpen
	}
	return pc.Participant, nil
}

// checkTarget requires the target participant to exist within the group.
func (a *App) checkTarget(ctx context.Context, groupID uuid.UUID, actor *models.Participant, targetID uuid.UUID) error {
	if targetID == actor.ID {
		return nil
	}
	target, err := a.participants.GetParticipant(ctx, targetID)
	if err != nil {
		if errors.Is(err, sqlutil.ErrNotFound) {
			return apperrors.New(apperrors.CodeNotFound, "Target participant not found.")
		}
		return apperrors.Database(err)
	}
	if target.GroupID != groupID {
		return apperrors.New(apperrors.CodeNotFound, "Target participant does not belong to this group.")
	}
	return nil
}

// mutableItem loads a cart item of the group that actor may change.
func (a *App) mutableItem(ctx context.Context, groupID uuid.UUID, actor *models.Participant, cartItemID uuid.UUID) (*models.CartItem, error) {
	item, err := a.repo.GetCartItem(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, sqlutil.ErrNotFound) {
			return nil, errCartItemMissing
		}
		return nil, apperrors.Database(err)
	}
	if item.GroupID != groupID {
		return nil, errCartItemMissing
	}
	if !CanMutate(actor, item.ParticipantID) {
		return nil, errGuestOwnCart
	}
	return item, nil
}

func (a *App) delete(ctx context.Context, item *models.CartItem, actorID uuid.UUID) error {
	deleted, err := a.repo.DeleteCartItem(ctx, item.ID)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return errCartItemMissing
	}

	log.Info().
		Str("group_id", item.GroupID.String()).
		Str("actor_participant_id", actorID.String()).
		Str("cart_item_id", item.ID.String()).
		Msg("removed cart item")
	return nil
}

func distinctMenuItemIDs(items []models.CartItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.MenuItemID]; ok {
			continue
		}
		seen[it.MenuItemID] = struct{}{}
		ids = append(ids, it.MenuItemID)
	}
	return ids
}
