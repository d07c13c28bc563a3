package groups

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/grouporder/go/internal/db"
	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateGroup(ctx context.Context, hostEmail string) (db.Group, error)
	GetGroup(ctx context.Context, id uuid.UUID) (db.Group, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	UpdateGroupStatus(ctx context.Context, arg db.UpdateGroupStatusParams) (db.Group, error)
}

// Repository implements group data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new groups repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// CreateGroup inserts an open group for hostEmail
func (r *Repository) CreateGroup(ctx context.Context, hostEmail string) (*models.Group, error) {
	group, err := r.queries.CreateGroup(ctx, hostEmail)
	if err != nil {
		return nil, fmt.Errorf("q.CreateGroup: %w", sqlutil.Classify(err))
	}
	return DBGroupToModel(group), nil
}

// GetGroup retrieves a group by ID
func (r *Repository) GetGroup(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	group, err := r.queries.GetGroup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("q.GetGroup: %w", sqlutil.Classify(err))
	}
	return DBGroupToModel(group), nil
}

// DeleteGroup deletes a group and, by cascade, everything it owns
func (r *Repository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.DeleteGroup(ctx, id); err != nil {
		return fmt.Errorf("q.DeleteGroup: %w", sqlutil.Classify(err))
	}
	return nil
}

// UpdateGroupStatus moves a group from current to next. It returns a wrapped
// sqlutil.ErrNotFound when the group is gone or no longer in current.
func (r *Repository) UpdateGroupStatus(ctx context.Context, id uuid.UUID, current, next models.GroupStatus, submittedAt *time.Time) (*models.Group, error) {
	group, err := r.queries.UpdateGroupStatus(ctx, db.UpdateGroupStatusParams{
		ID:            id,
		CurrentStatus: db.GroupStatus(current),
		NextStatus:    db.GroupStatus(next),
		SubmittedAt:   sqlutil.ToTimestamptz(submittedAt),
	})
	if err != nil {
		return nil, fmt.Errorf("q.UpdateGroupStatus: %w", sqlutil.Classify(err))
	}
	return DBGroupToModel(group), nil
}

// DBGroupToModel converts a database row to the domain model
func DBGroupToModel(g db.Group) *models.Group {
	return &models.Group{
		ID:          g.ID,
		HostEmail:   g.HostEmail,
		Status:      models.GroupStatus(g.Status),
		SubmittedAt: sqlutil.FromTimestamptz(g.SubmittedAt),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
