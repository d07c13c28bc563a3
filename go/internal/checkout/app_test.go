package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/cart"
	"github.com/mcdev12/grouporder/go/internal/checkout"
	"github.com/mcdev12/grouporder/go/internal/groups"
	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/participants"
	"github.com/mcdev12/grouporder/go/internal/testutil/memstore"
	"github.com/mcdev12/grouporder/go/internal/tracker"
)

var epoch = time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

type AppSuite struct {
	suite.Suite
	ctx    context.Context
	clock  *clockwork.FakeClock
	store  *memstore.Store
	groups *groups.App
	app    *checkout.App

	group *models.Group
	host  *models.Participant
	guest *models.Participant
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clockwork.NewFakeClockAt(epoch)
	s.store = memstore.New(s.clock)
	s.groups = groups.NewApp(s.store, s.store)
	s.app = checkout.NewApp(s.store, s.groups, s.clock)

	created, err := s.groups.CreateGroupWithHost(s.ctx, groups.CreateGroupWithHostRequest{HostEmail: "host@example.com"})
	s.Require().NoError(err)
	s.group, s.host = created.Group, created.Participant
	s.guest, err = s.store.CreateParticipant(s.ctx, s.group.ID, "guest@example.com", false)
	s.Require().NoError(err)
}

func (s *AppSuite) req(p *models.Participant) checkout.TransitionRequest {
	return checkout.TransitionRequest{GroupID: s.group.ID.String(), HostParticipantID: p.ID.String()}
}

func (s *AppSuite) TestLockUnlock() {
	res, err := s.app.LockGroup(s.ctx, s.req(s.host))
	s.Require().NoError(err)
	s.Equal(models.GroupStatusOpen, res.PreviousStatus)
	s.Equal(models.GroupStatusLocked, res.NextStatus)
	s.Equal(models.GroupStatusLocked, res.Group.Status)
	s.Nil(res.Group.SubmittedAt)

	_, err = s.app.LockGroup(s.ctx, s.req(s.host))
	s.True(apperrors.IsCode(err, apperrors.CodeConflict))
	s.Equal("Invalid transition: locked -> locked.", err.Error())

	res, err = s.app.UnlockGroup(s.ctx, s.req(s.host))
	s.Require().NoError(err)
	s.Equal(models.GroupStatusOpen, res.Group.Status)

	_, err = s.app.UnlockGroup(s.ctx, s.req(s.host))
	s.True(apperrors.IsCode(err, apperrors.CodeConflict))
	s.Equal("Invalid transition: open -> open.", err.Error())
}

func (s *AppSuite) TestSubmitStampsSubmittedAt() {
	s.clock.Advance(90 * time.Second)

	res, err := s.app.SubmitOrder(s.ctx, s.req(s.host))
	s.Require().NoError(err)
	s.Equal(models.GroupStatusSubmitted, res.Group.Status)
	s.Require().NotNil(res.Group.SubmittedAt)
	s.Equal(epoch.Add(90*time.Second), *res.Group.SubmittedAt)
}

func (s *AppSuite) TestSubmitFromLocked() {
	_, err := s.app.LockGroup(s.ctx, s.req(s.host))
	s.Require().NoError(err)

	res, err := s.app.SubmitOrder(s.ctx, s.req(s.host))
	s.Require().NoError(err)
	s.Equal(models.GroupStatusLocked, res.PreviousStatus)
	s.NotNil(res.Group.SubmittedAt)
}

func (s *AppSuite) TestSubmittedIsTerminal() {
	submitted, err := s.app.SubmitOrder(s.ctx, s.req(s.host))
	s.Require().NoError(err)

	for name, op := range map[string]func(context.Context, checkout.TransitionRequest) (*checkout.GroupTransition, error){
		"lock":   s.app.LockGroup,
		"unlock": s.app.UnlockGroup,
		"submit": s.app.SubmitOrder,
	} {
		_, err := op(s.ctx, s.req(s.host))
		s.True(apperrors.IsCode(err, apperrors.CodeConflict), name)
		s.Equal("Order is already submitted and cannot be changed.", err.Error(), name)
	}

	g, err := s.store.GetGroup(s.ctx, s.group.ID)
	s.Require().NoError(err)
	s.Equal(submitted.Group.SubmittedAt, g.SubmittedAt)
}

func (s *AppSuite) TestTransitionsRequireHost() {
	_, err := s.app.LockGroup(s.ctx, s.req(s.guest))
	s.True(apperrors.IsCode(err, apperrors.CodeForbidden))

	_, err = s.app.SubmitOrder(s.ctx, checkout.TransitionRequest{GroupID: uuid.NewString(), HostParticipantID: s.host.ID.String()})
	s.True(apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = s.app.SubmitOrder(s.ctx, checkout.TransitionRequest{GroupID: s.group.ID.String(), HostParticipantID: "host"})
	s.True(apperrors.IsCode(err, apperrors.CodeInvalidInput))
	s.Equal("host_participant_id", apperrors.GetMetadata(err)["field"])
}

// racingUpdater moves the group to locked just before forwarding the update,
// as a concurrent host request would.
type racingUpdater struct {
	store *memstore.Store
}

func (r racingUpdater) UpdateGroupStatus(ctx context.Context, id uuid.UUID, current, next models.GroupStatus, submittedAt *time.Time) (*models.Group, error) {
	if _, err := r.store.UpdateGroupStatus(ctx, id, models.GroupStatusOpen, models.GroupStatusLocked, nil); err != nil {
		return nil, err
	}
	return r.store.UpdateGroupStatus(ctx, id, current, next, submittedAt)
}

func (s *AppSuite) TestLostRaceIsConflict() {
	app := checkout.NewApp(racingUpdater{store: s.store}, s.groups, s.clock)

	_, err := app.SubmitOrder(s.ctx, s.req(s.host))
	s.True(apperrors.IsCode(err, apperrors.CodeConflict))

	g, err := s.store.GetGroup(s.ctx, s.group.ID)
	s.Require().NoError(err)
	s.Equal(models.GroupStatusLocked, g.Status)
	s.Nil(g.SubmittedAt)
}

func (s *AppSuite) TestTransitionDatabaseError() {
	s.store.FailNext(memstore.OpUpdateGroupStatus, errors.New("deadlock detected"))

	_, err := s.app.LockGroup(s.ctx, s.req(s.host))
	s.True(apperrors.IsCode(err, apperrors.CodeDatabaseError))
	s.Equal("deadlock detected", err.Error())
}

func (s *AppSuite) TestOrderTracker() {
	track := func(p *models.Participant) *checkout.GetOrderTrackerResponse {
		res, err := s.app.GetOrderTracker(s.ctx, checkout.GetOrderTrackerRequest{
			GroupID:       s.group.ID.String(),
			ParticipantID: p.ID.String(),
		})
		s.Require().NoError(err)
		return res
	}

	before := track(s.guest)
	s.Equal(tracker.StageOrdered, before.Stage)
	s.Zero(before.ElapsedSeconds)
	s.Nil(before.SubmittedAt)

	_, err := s.app.SubmitOrder(s.ctx, s.req(s.host))
	s.Require().NoError(err)

	steps := []struct {
		advance time.Duration
		stage   tracker.Stage
		elapsed int64
	}{
		{0, tracker.StageOrdered, 0},
		{14 * time.Second, tracker.StageOrdered, 14},
		{time.Second, tracker.StageInProgress, 15},
		{29 * time.Second, tracker.StageInProgress, 44},
		{time.Second, tracker.StageDelivered, 45},
		{time.Hour, tracker.StageDelivered, 3645},
	}
	for _, step := range steps {
		s.clock.Advance(step.advance)
		res := track(s.guest)
		s.Equal(step.stage, res.Stage)
		s.Equal(step.elapsed, res.ElapsedSeconds)
		s.Equal(s.clock.Now().UTC(), res.ServerNow)
	}

	now, err := s.app.GetServerNow(s.ctx, checkout.GetServerNowRequest{})
	s.Require().NoError(err)
	s.Equal(s.clock.Now().UTC(), now.ServerNow)
}

// TestGroupOrderLifecycle walks one group from creation to delivery.
func (s *AppSuite) TestGroupOrderLifecycle() {
	joiner := participants.NewApp(s.store, s.groups)
	carts := cart.NewApp(s.store, s.groups, s.store, s.store, currency.USD)
	pizza := s.store.AddMenuItem("Margherita Pizza", "14.50")
	lemonade := s.store.AddMenuItem("Lemonade", "3.50")

	second, err := joiner.JoinOrResumeParticipant(s.ctx, participants.JoinOrResumeParticipantRequest{
		GroupID: s.group.ID.String(),
		Email:   "second@example.com",
	})
	s.Require().NoError(err)
	s.True(second.IsNew)

	_, err = joiner.JoinOrResumeParticipant(s.ctx, participants.JoinOrResumeParticipantRequest{
		GroupID: s.group.ID.String(),
		Email:   "fourth@example.com",
	})
	s.True(apperrors.IsCode(err, apperrors.CodeForbidden))

	add := func(actor, target *models.Participant, item models.MenuItem, q float64) error {
		_, err := carts.UpsertCartItem(s.ctx, cart.UpsertCartItemRequest{
			GroupID:             s.group.ID.String(),
			ActorParticipantID:  actor.ID.String(),
			TargetParticipantID: target.ID.String(),
			MenuItemID:          item.ID.String(),
			Quantity:            q,
		})
		return err
	}
	s.Require().NoError(add(s.host, s.host, pizza, 1))
	s.Require().NoError(add(s.guest, s.guest, lemonade, 2))
	s.Require().NoError(add(second.Participant, second.Participant, pizza, 1))

	_, err = s.app.LockGroup(s.ctx, s.req(s.host))
	s.Require().NoError(err)
	s.True(apperrors.IsCode(add(s.guest, s.guest, pizza, 1), apperrors.CodeForbidden))

	_, err = s.app.UnlockGroup(s.ctx, s.req(s.host))
	s.Require().NoError(err)
	s.Require().NoError(add(s.host, s.guest, pizza, 1))

	_, err = s.app.SubmitOrder(s.ctx, s.req(s.host))
	s.Require().NoError(err)
	s.True(apperrors.IsCode(add(s.host, s.host, pizza, 2), apperrors.CodeForbidden))

	res, err := carts.GetCartSnapshot(s.ctx, cart.GetCartSnapshotRequest{
		GroupID:                s.group.ID.String(),
		RequesterParticipantID: s.host.ID.String(),
	})
	s.Require().NoError(err)
	host := res.Snapshot.(*models.HostCartSnapshot)
	s.Len(host.Sections, 3)
	// 14.50 + (2*3.50 + 14.50) + 14.50
	s.Equal("50.50", host.GroupTotal.StringFixed(2))

	s.clock.Advance(50 * time.Second)
	tracked, err := s.app.GetOrderTracker(s.ctx, checkout.GetOrderTrackerRequest{
		GroupID:       s.group.ID.String(),
		ParticipantID: second.Participant.ID.String(),
	})
	s.Require().NoError(err)
	s.Equal(tracker.StageDelivered, tracked.Stage)
}
