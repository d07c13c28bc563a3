package groups

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

// GroupsRepository defines what the app layer needs from the group store
type GroupsRepository interface {
	CreateGroup(ctx context.Context, hostEmail string) (*models.Group, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*models.Group, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}

// ParticipantsRepository defines what the app layer needs from the participant store
type ParticipantsRepository interface {
	CreateParticipant(ctx context.Context, groupID uuid.UUID, email string, isHost bool) (*models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
}

// App handles group session business logic
type App struct {
	groups       GroupsRepository
	participants ParticipantsRepository
}

// NewApp creates a new groups App
func NewApp(groups GroupsRepository, participants ParticipantsRepository) *App {
	return &App{
		groups:       groups,
		participants: participants,
	}
}

// CreateGroupWithHost creates an open group and its host participant. When the
// host insert fails the group is deleted again and the failure surfaces as
// database_error.
func (a *App) CreateGroupWithHost(ctx context.Context, req CreateGroupWithHostRequest) (*CreateGroupWithHostResponse, error) {
	hostEmail, err := validate.Email("host_email", "host email", req.HostEmail)
	if err != nil {
		return nil, err
	}

	group, err := a.groups.CreateGroup(ctx, hostEmail)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	host, err := a.participants.CreateParticipant(ctx, group.ID, hostEmail, true)
	if err != nil {
		if delErr := a.groups.DeleteGroup(ctx, group.ID); delErr != nil {
			log.Error().Err(delErr).Str("group_id", group.ID.String()).Msg("failed to delete orphaned group")
		}
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("group_id", group.ID.String()).
		Str("host_participant_id", host.ID.String()).
		Msg("created group")

	return &CreateGroupWithHostResponse{Group: group, Participant: host}, nil
}

// GetGroup retrieves a group by ID
func (a *App) GetGroup(ctx context.Context, req GetGroupRequest) (*GetGroupResponse, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}

	group, err := a.LoadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &GetGroupResponse{Group: group}, nil
}

// GetGroupParticipantContext resolves a participant together with its group.
func (a *App) GetGroupParticipantContext(ctx context.Context, req GetParticipantContextRequest) (*ParticipantContext, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}
	participantID, err := validate.ID("participant_id", "participant ID", req.ParticipantID)
	if err != nil {
		return nil, err
	}
	return a.ResolveParticipant(ctx, groupID, participantID)
}

// ResolveParticipant loads a group and a participant and checks membership.
// Missing rows are not_found; a participant of another group is forbidden.
func (a *App) ResolveParticipant(ctx context.Context, groupID, participantID uuid.UUID) (*ParticipantContext, error) {
	group, err := a.LoadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	participant, err := a.participants.GetParticipant(ctx, participantID)
	if err != nil {
		if errors.Is(err, sqlutil.ErrNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "Participant not found.")
		}
		return nil, apperrors.Database(err)
	}

	if participant.GroupID != group.ID {
		return nil, apperrors.New(apperrors.CodeForbidden, "Participant does not belong to this group.")
	}

	return &ParticipantContext{Group: group, Participant: participant}, nil
}

// AssertHostParticipantForGroup resolves the participant within the group and
// fails forbidden unless it is the host.
func (a *App) AssertHostParticipantForGroup(ctx context.Context, groupID, participantID uuid.UUID) (*ParticipantContext, error) {
	pc, err := a.ResolveParticipant(ctx, groupID, participantID)
	if err != nil {
		return nil, err
	}
	if !pc.Participant.IsHost {
		return nil, apperrors.New(apperrors.CodeForbidden, "Only the host can perform this action.")
	}
	return pc, nil
}

// LoadGroup fetches a group, mapping a missing row to not_found.
func (a *App) LoadGroup(ctx context.Context, groupID uuid.UUID) (*models.Group, error) {
	group, err := a.groups.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, sqlutil.ErrNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "Group not found.")
		}
		return nil, apperrors.Database(err)
	}
	return group, nil
}
