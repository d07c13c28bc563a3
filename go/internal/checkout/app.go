package checkout

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/groups"
	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/sqlutil"
	"github.com/mcdev12/grouporder/go/internal/tracker"
	"github.com/mcdev12/grouporder/go/internal/validate"
)

// GroupStatusUpdater performs the guarded status update.
type GroupStatusUpdater interface {
	UpdateGroupStatus(ctx context.Context, id uuid.UUID, current, next models.GroupStatus, submittedAt *time.Time) (*models.Group, error)
}

// ParticipantAuthorizer resolves participants and hosts within a group.
type ParticipantAuthorizer interface {
	ResolveParticipant(ctx context.Context, groupID, participantID uuid.UUID) (*groups.ParticipantContext, error)
	AssertHostParticipantForGroup(ctx context.Context, groupID, participantID uuid.UUID) (*groups.ParticipantContext, error)
}

// App drives the group lifecycle: open, locked, submitted
type App struct {
	repo  GroupStatusUpdater
	auth  ParticipantAuthorizer
	clock clockwork.Clock
}

// NewApp creates a new checkout App
func NewApp(repo GroupStatusUpdater, auth ParticipantAuthorizer, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		auth:  auth,
		clock: clock,
	}
}

// LockGroup freezes cart edits for review (open -> locked).
func (a *App) LockGroup(ctx context.Context, req TransitionRequest) (*GroupTransition, error) {
	return a.transition(ctx, req, models.GroupStatusLocked, models.GroupStatusOpen)
}

// UnlockGroup reopens the cart (locked -> open).
func (a *App) UnlockGroup(ctx context.Context, req TransitionRequest) (*GroupTransition, error) {
	return a.transition(ctx, req, models.GroupStatusOpen, models.GroupStatusLocked)
}

// SubmitOrder finalizes the order (open|locked -> submitted) and stamps submitted_at.
func (a *App) SubmitOrder(ctx context.Context, req TransitionRequest) (*GroupTransition, error) {
	return a.transition(ctx, req, models.GroupStatusSubmitted, models.GroupStatusOpen, models.GroupStatusLocked)
}

func (a *App) transition(ctx context.Context, req TransitionRequest, next models.GroupStatus, allowedCurrent ...models.GroupStatus) (*GroupTransition, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}
	hostID, err := validate.ID("host_participant_id", "host participant ID", req.HostParticipantID)
	if err != nil {
		return nil, err
	}

	pc, err := a.auth.AssertHostParticipantForGroup(ctx, groupID, hostID)
	if err != nil {
		return nil, err
	}

	previous := pc.Group.Status
	if previous == models.GroupStatusSubmitted {
		return nil, apperrors.New(apperrors.CodeConflict, "Order is already submitted and cannot be changed.")
	}
	if !slices.Contains(allowedCurrent, previous) || !IsAllowedGroupStatusTransition(previous, next) {
		return nil, apperrors.Newf(apperrors.CodeConflict, "Invalid transition: %s -> %s.", previous, next)
	}

	var submittedAt *time.Time
	if next == models.GroupStatusSubmitted {
		now := a.clock.Now().UTC()
		submittedAt = &now
	}

	// Only applies while the status is still the one we checked.
	group, err := a.repo.UpdateGroupStatus(ctx, groupID, previous, next, submittedAt)
	if err != nil {
		if errors.Is(err, sqlutil.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.CodeConflict, "Group status changed concurrently; expected %s.", previous)
		}
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("group_id", groupID.String()).
		Str("previous_status", string(previous)).
		Str("next_status", string(next)).
		Msg("group status changed")

	return &GroupTransition{
		Group:          group,
		PreviousStatus: previous,
		NextStatus:     next,
	}, nil
}

// GetOrderTracker computes the delivery stage for any participant of the group.
func (a *App) GetOrderTracker(ctx context.Context, req GetOrderTrackerRequest) (*GetOrderTrackerResponse, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}
	participantID, err := validate.ID("participant_id", "participant ID", req.ParticipantID)
	if err != nil {
		return nil, err
	}

	pc, err := a.auth.ResolveParticipant(ctx, groupID, participantID)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now().UTC()
	result := tracker.ComputeAt(pc.Group.SubmittedAt, now)
	return &GetOrderTrackerResponse{
		Stage:          result.Stage,
		ElapsedSeconds: result.ElapsedSeconds,
		SubmittedAt:    pc.Group.SubmittedAt,
		ServerNow:      now,
	}, nil
}

// GetServerNow returns the server clock.
func (a *App) GetServerNow(_ context.Context, _ GetServerNowRequest) (*GetServerNowResponse, error) {
	return &GetServerNowResponse{ServerNow: a.clock.Now().UTC()}, nil
}
