// Package memstore is an in-memory stand-in for the Postgres repositories.
// It enforces the same constraints the schema does and reports violations
// with the sqlutil sentinels, so app-layer tests exercise real error paths.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/sqlutil"
)

// Operation names accepted by FailNext.
const (
	OpCreateGroup       = "CreateGroup"
	OpGetGroup          = "GetGroup"
	OpDeleteGroup       = "DeleteGroup"
	OpUpdateGroupStatus = "UpdateGroupStatus"
	OpCreateParticipant = "CreateParticipant"
	OpGetParticipant    = "GetParticipant"
	OpGetByEmail        = "GetParticipantByEmail"
	OpListParticipants  = "ListParticipantsByGroup"
	OpCountParticipants = "CountParticipantsByGroup"
	OpUpsertCartItem    = "UpsertCartItem"
	OpGetCartItem       = "GetCartItem"
	OpDeleteCartItem    = "DeleteCartItem"
	OpListCartItems     = "ListCartItemsByGroup"
	OpGetMenuItem       = "GetMenuItem"
	OpListMenuItems     = "ListMenuItems"
)

// Store holds every table in memory. All methods are safe for concurrent use
// and each one is atomic, like a single SQL statement.
type Store struct {
	mu    sync.Mutex
	clock clockwork.Clock
	seq   int64

	groups       map[uuid.UUID]*models.Group
	participants map[uuid.UUID]*participantRow
	cartItems    map[uuid.UUID]*cartRow
	menuItems    map[uuid.UUID]*models.MenuItem

	failures map[string][]error
}

type participantRow struct {
	models.Participant
	seq int64
}

type cartRow struct {
	models.CartItem
	seq int64
}

// New creates an empty store. A nil clock uses the real clock.
func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:        clock,
		groups:       make(map[uuid.UUID]*models.Group),
		participants: make(map[uuid.UUID]*participantRow),
		cartItems:    make(map[uuid.UUID]*cartRow),
		menuItems:    make(map[uuid.UUID]*models.MenuItem),
		failures:     make(map[string][]error),
	}
}

// FailNext makes the next call of op return err. Calls queue up.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = append(s.failures[op], err)
}

// injected must be called with s.mu held.
func (s *Store) injected(op string) error {
	queue := s.failures[op]
	if len(queue) == 0 {
		return nil
	}
	s.failures[op] = queue[1:]
	return queue[0]
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// CreateGroup inserts an open group.
func (s *Store) CreateGroup(_ context.Context, hostEmail string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpCreateGroup); err != nil {
		return nil, err
	}

	now := s.now()
	g := &models.Group{
		ID:        uuid.New(),
		HostEmail: hostEmail,
		Status:    models.GroupStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.groups[g.ID] = g
	return copyGroup(g), nil
}

// GroupCount returns the number of stored groups.
func (s *Store) GroupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups)
}

// GetGroup returns sqlutil.ErrNotFound for an unknown id.
func (s *Store) GetGroup(_ context.Context, id uuid.UUID) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpGetGroup); err != nil {
		return nil, err
	}

	g, ok := s.groups[id]
	if !ok {
		return nil, sqlutil.ErrNotFound
	}
	return copyGroup(g), nil
}

// DeleteGroup removes a group and cascades to its participants and cart items.
func (s *Store) DeleteGroup(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpDeleteGroup); err != nil {
		return err
	}

	delete(s.groups, id)
	for pid, p := range s.participants {
		if p.GroupID == id {
			delete(s.participants, pid)
		}
	}
	for cid, c := range s.cartItems {
		if c.GroupID == id {
			delete(s.cartItems, cid)
		}
	}
	return nil
}

// UpdateGroupStatus moves a group from current to next. A missing group or a
// status other than current yields sqlutil.ErrNotFound, like a guarded UPDATE
// matching no row. A nil submittedAt keeps the stored value.
func (s *Store) UpdateGroupStatus(_ context.Context, id uuid.UUID, current, next models.GroupStatus, submittedAt *time.Time) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpUpdateGroupStatus); err != nil {
		return nil, err
	}

	g, ok := s.groups[id]
	if !ok || g.Status != current {
		return nil, sqlutil.ErrNotFound
	}

	stamp := g.SubmittedAt
	if submittedAt != nil {
		t := submittedAt.UTC()
		stamp = &t
	}
	if (next == models.GroupStatusSubmitted) != (stamp != nil) {
		return nil, fmt.Errorf("%w: groups_submitted_at_matches_status", sqlutil.ErrCheckViolation)
	}

	g.Status = next
	g.SubmittedAt = stamp
	g.UpdatedAt = s.now()
	return copyGroup(g), nil
}

// CreateParticipant enforces the foreign key, the unique (group, email) pair,
// one host per group and the participant cap.
func (s *Store) CreateParticipant(_ context.Context, groupID uuid.UUID, email string, isHost bool) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpCreateParticipant); err != nil {
		return nil, err
	}

	if _, ok := s.groups[groupID]; !ok {
		return nil, fmt.Errorf("participants_group_id_fkey: group %s does not exist", groupID)
	}

	count := 0
	for _, p := range s.participants {
		if p.GroupID != groupID {
			continue
		}
		count++
		if p.Email == email {
			return nil, fmt.Errorf("%w: participants_group_email_key", sqlutil.ErrUniqueViolation)
		}
		if isHost && p.IsHost {
			return nil, fmt.Errorf("%w: participants_one_host_per_group", sqlutil.ErrUniqueViolation)
		}
	}
	if count >= models.MaxParticipants {
		return nil, fmt.Errorf("%w: group %s already has the maximum of %d participants", sqlutil.ErrCapacityExceeded, groupID, models.MaxParticipants)
	}

	row := &participantRow{
		Participant: models.Participant{
			ID:        uuid.New(),
			GroupID:   groupID,
			Email:     email,
			IsHost:    isHost,
			CreatedAt: s.now(),
		},
		seq: s.nextSeq(),
	}
	s.participants[row.ID] = row
	p := row.Participant
	return &p, nil
}

// GetParticipant returns sqlutil.ErrNotFound for an unknown id.
func (s *Store) GetParticipant(_ context.Context, id uuid.UUID) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpGetParticipant); err != nil {
		return nil, err
	}

	row, ok := s.participants[id]
	if !ok {
		return nil, sqlutil.ErrNotFound
	}
	p := row.Participant
	return &p, nil
}

// GetParticipantByEmail looks up a participant by its normalized email.
func (s *Store) GetParticipantByEmail(_ context.Context, groupID uuid.UUID, email string) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpGetByEmail); err != nil {
		return nil, err
	}

	for _, row := range s.participants {
		if row.GroupID == groupID && row.Email == email {
			p := row.Participant
			return &p, nil
		}
	}
	return nil, sqlutil.ErrNotFound
}

// ListParticipantsByGroup returns the host first, then by join order.
func (s *Store) ListParticipantsByGroup(_ context.Context, groupID uuid.UUID) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpListParticipants); err != nil {
		return nil, err
	}

	var rows []*participantRow
	for _, row := range s.participants {
		if row.GroupID == groupID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].IsHost != rows[j].IsHost {
			return rows[i].IsHost
		}
		return rows[i].seq < rows[j].seq
	})

	out := make([]models.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Participant)
	}
	return out, nil
}

// CountParticipantsByGroup counts a group's participants.
func (s *Store) CountParticipantsByGroup(_ context.Context, groupID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpCountParticipants); err != nil {
		return 0, err
	}

	count := 0
	for _, row := range s.participants {
		if row.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

// UpsertCartItem inserts a line or replaces the quantity of the existing
// line for the same (participant, menu item) pair.
func (s *Store) UpsertCartItem(_ context.Context, groupID, participantID, menuItemID uuid.UUID, quantity int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpUpsertCartItem); err != nil {
		return nil, err
	}

	if quantity < models.MinCartQuantity || quantity > models.MaxCartQuantity {
		return nil, fmt.Errorf("%w: cart_items_quantity_check", sqlutil.ErrCheckViolation)
	}
	if _, ok := s.groups[groupID]; !ok {
		return nil, fmt.Errorf("cart_items_group_id_fkey: group %s does not exist", groupID)
	}
	if _, ok := s.participants[participantID]; !ok {
		return nil, fmt.Errorf("cart_items_participant_id_fkey: participant %s does not exist", participantID)
	}
	if _, ok := s.menuItems[menuItemID]; !ok {
		return nil, fmt.Errorf("cart_items_menu_item_id_fkey: menu item %s does not exist", menuItemID)
	}

	now := s.now()
	for _, row := range s.cartItems {
		if row.ParticipantID == participantID && row.MenuItemID == menuItemID {
			row.Quantity = quantity
			row.UpdatedAt = now
			item := row.CartItem
			return &item, nil
		}
	}

	row := &cartRow{
		CartItem: models.CartItem{
			ID:            uuid.New(),
			GroupID:       groupID,
			ParticipantID: participantID,
			MenuItemID:    menuItemID,
			Quantity:      quantity,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		seq: s.nextSeq(),
	}
	s.cartItems[row.ID] = row
	item := row.CartItem
	return &item, nil
}

// GetCartItem returns sqlutil.ErrNotFound for an unknown id.
func (s *Store) GetCartItem(_ context.Context, id uuid.UUID) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpGetCartItem); err != nil {
		return nil, err
	}

	row, ok := s.cartItems[id]
	if !ok {
		return nil, sqlutil.ErrNotFound
	}
	item := row.CartItem
	return &item, nil
}

// DeleteCartItem reports whether a row was removed.
func (s *Store) DeleteCartItem(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpDeleteCartItem); err != nil {
		return false, err
	}

	if _, ok := s.cartItems[id]; !ok {
		return false, nil
	}
	delete(s.cartItems, id)
	return true, nil
}

// ListCartItemsByGroup returns a group's lines in insertion order.
func (s *Store) ListCartItemsByGroup(_ context.Context, groupID uuid.UUID) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpListCartItems); err != nil {
		return nil, err
	}

	var rows []*cartRow
	for _, row := range s.cartItems {
		if row.GroupID == groupID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]models.CartItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.CartItem)
	}
	return out, nil
}

// AddMenuItem seeds a catalog entry and returns it.
func (s *Store) AddMenuItem(name, price string) models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := &models.MenuItem{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		CreatedAt: s.now(),
	}
	s.menuItems[item.ID] = item
	return *item
}

// RemoveMenuItem deletes a catalog entry without touching cart lines, to
// simulate a dangling reference.
func (s *Store) RemoveMenuItem(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.menuItems, id)
}

// GetMenuItem returns sqlutil.ErrNotFound for an unknown id.
func (s *Store) GetMenuItem(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpGetMenuItem); err != nil {
		return nil, err
	}

	item, ok := s.menuItems[id]
	if !ok {
		return nil, sqlutil.ErrNotFound
	}
	out := *item
	return &out, nil
}

// ListMenuItems returns the catalog ordered by name.
func (s *Store) ListMenuItems(_ context.Context) ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpListMenuItems); err != nil {
		return nil, err
	}

	out := make([]models.MenuItem, 0, len(s.menuItems))
	for _, item := range s.menuItems {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListMenuItemsByIDs returns the known items among ids, ordered by name.
func (s *Store) ListMenuItemsByIDs(_ context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.MenuItem, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if item, ok := s.menuItems[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func copyGroup(g *models.Group) *models.Group {
	out := *g
	if g.SubmittedAt != nil {
		t := *g.SubmittedAt
		out.SubmittedAt = &t
	}
	return &out
}
