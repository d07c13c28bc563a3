package participants

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/sqlutil"
	"github.com/mcdev12/grouporder/go/internal/validate"
)

// ParticipantsRepository defines what the app layer needs from the repository
type ParticipantsRepository interface {
	CreateParticipant(ctx context.Context, groupID uuid.UUID, email string, isHost bool) (*models.Participant, error)
	GetParticipantByEmail(ctx context.Context, groupID uuid.UUID, email string) (*models.Participant, error)
	ListParticipantsByGroup(ctx context.Context, groupID uuid.UUID) ([]models.Participant, error)
	CountParticipantsByGroup(ctx context.Context, groupID uuid.UUID) (int, error)
}

// GroupLoader resolves a group, returning taxonomy errors.
type GroupLoader interface {
	LoadGroup(ctx context.Context, groupID uuid.UUID) (*models.Group, error)
}

// App handles participant business logic
type App struct {
	repo   ParticipantsRepository
	groups GroupLoader
}

// NewApp creates a new participants App
func NewApp(repo ParticipantsRepository, groups GroupLoader) *App {
	return &App{
		repo:   repo,
		groups: groups,
	}
}

var errGroupFull = apperrors.New(apperrors.CodeForbidden, "Group is full.")

// JoinOrResumeParticipant adds a guest to an open group, or returns the
// existing participant with the same email. Resuming works even when the
// group is full; the participant cap itself is enforced by the store.
func (a *App) JoinOrResumeParticipant(ctx context.Context, req JoinOrResumeParticipantRequest) (*JoinOrResumeParticipantResponse, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}
	email, err := validate.Email("email", "email", req.Email)
	if err != nil {
		return nil, err
	}

	group, err := a.groups.LoadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsOpen() {
		return nil, apperrors.New(apperrors.CodeForbidden, "Group is not open for new participants.")
	}

	existing, err := a.repo.GetParticipantByEmail(ctx, groupID, email)
	switch {
	case err == nil:
		return &JoinOrResumeParticipantResponse{Participant: existing, IsNew: false}, nil
	case !errors.Is(err, sqlutil.ErrNotFound):
		return nil, apperrors.Database(err)
	}

	count, err := a.repo.CountParticipantsByGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if count >= models.MaxParticipants {
		return nil, errGroupFull
	}

	participant, err := a.repo.CreateParticipant(ctx, groupID, email, false)
	if err != nil {
		return a.resolveCreateFailure(ctx, groupID, email, err)
	}

	log.Info().
		Str("group_id", groupID.String()).
		Str("participant_id", participant.ID.String()).
		Msg("participant joined group")

	return &JoinOrResumeParticipantResponse{Participant: participant, IsNew: true}, nil
}

// resolveCreateFailure handles losing a join race: a duplicate email resumes
// the row that won, a rejected insert past the cap reports the group as full.
func (a *App) resolveCreateFailure(ctx context.Context, groupID uuid.UUID, email string, createErr error) (*JoinOrResumeParticipantResponse, error) {
	switch {
	case errors.Is(createErr, sqlutil.ErrUniqueViolation):
		raced, err := a.repo.GetParticipantByEmail(ctx, groupID, email)
		if err != nil {
			return nil, apperrors.Database(createErr)
		}
		log.Debug().
			Str("group_id", groupID.String()).
			Str("participant_id", raced.ID.String()).
			Msg("concurrent join resolved by resume")
		return &JoinOrResumeParticipantResponse{Participant: raced, IsNew: false}, nil
	case errors.Is(createErr, sqlutil.ErrCapacityExceeded):
		return nil, errGroupFull
	default:
		return nil, apperrors.Database(createErr)
	}
}

// ListParticipants lists a group's participants host first, then by join order.
func (a *App) ListParticipants(ctx context.Context, req ListParticipantsRequest) (*ListParticipantsResponse, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}

	list, err := a.repo.ListParticipantsByGroup(ctx, groupID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return &ListParticipantsResponse{Participants: list}, nil
}
