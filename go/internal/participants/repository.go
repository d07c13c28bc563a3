package participants

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
	CreateParticipant(ctx context.Context, arg db.CreateParticipantParams) (db.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (db.Participant, error)
	GetParticipantByEmail(ctx context.Context, arg db.GetParticipantByEmailParams) (db.Participant, error)
	ListParticipantsByGroup(ctx context.Context, groupID uuid.UUID) ([]db.Participant, error)
	CountParticipantsByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
}

// Repository implements participant data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new participants repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// CreateParticipant inserts a participant. Duplicate emails and a full group
// surface as sqlutil.ErrUniqueViolation and sqlutil.ErrCapacityExceeded.
func (r *Repository) CreateParticipant(ctx context.Context, groupID uuid.UUID, email string, isHost bool) (*models.Participant, error) {
	p, err := r.queries.CreateParticipant(ctx, db.CreateParticipantParams{
		GroupID: groupID,
		Email:   email,
		IsHost:  isHost,
	})
	if err != nil {
		return nil, fmt.Errorf("q.CreateParticipant: %w", sqlutil.Classify(err))
	}
	return dbParticipantToModel(p), nil
}

// GetParticipant retrieves a participant by ID
func (r *Repository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	p, err := r.queries.GetParticipant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("q.GetParticipant: %w", sqlutil.Classify(err))
	}
	return dbParticipantToModel(p), nil
}

// GetParticipantByEmail retrieves a participant by its normalized email within a group
func (r *Repository) GetParticipantByEmail(ctx context.Context, groupID uuid.UUID, email string) (*models.Participant, error) {
	p, err := r.queries.GetParticipantByEmail(ctx, db.GetParticipantByEmailParams{
		GroupID: groupID,
		Email:   email,
	})
	if err != nil {
		return nil, fmt.Errorf("q.GetParticipantByEmail: %w", sqlutil.Classify(err))
	}
	return dbParticipantToModel(p), nil
}

// ListParticipantsByGroup lists a group's participants host first, then by join order
func (r *Repository) ListParticipantsByGroup(ctx context.Context, groupID uuid.UUID) ([]models.Participant, error) {
	rows, err := r.queries.ListParticipantsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("q.ListParticipantsByGroup: %w", sqlutil.Classify(err))
	}

	out := make([]models.Participant, 0, len(rows))
	for _, p := range rows {
		out = append(out, *dbParticipantToModel(p))
	}
	return out, nil
}

// CountParticipantsByGroup counts a group's participants
func (r *Repository) CountParticipantsByGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	n, err := r.queries.CountParticipantsByGroup(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("q.CountParticipantsByGroup: %w", sqlutil.Classify(err))
	}
	return int(n), nil
}

func dbParticipantToModel(p db.Participant) *models.Participant {
	return &models.Participant{
		ID:        p.ID,
		GroupID:   p.GroupID,
		Email:     p.Email,
		IsHost:    p.IsHost,
		CreatedAt: p.CreatedAt,
	}
}
