package auth

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

// ParticipantReader reads participant rows.
type ParticipantReader interface {
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
}

// App issues realtime credentials
type App struct {
	participants ParticipantReader
	signer       *TokenSigner
}

// NewApp creates a new auth App
func NewApp(participants ParticipantReader, signer *TokenSigner) *App {
	return &App{
		participants: participants,
		signer:       signer,
	}
}

var errParticipantUnauthorized = apperrors.New(apperrors.CodeNotFound, "Participant not found or unauthorized.")

// IssueRealtimeToken signs a token for a participant of the group.
func (a *App) IssueRealtimeToken(ctx context.Context, req IssueRealtimeTokenRequest) (*IssueRealtimeTokenResponse, error) {
	groupID, err := validate.ID("group_id", "group ID", req.GroupID)
	if err != nil {
		return nil, err
	}
	participantID, err := validate.ID("participant_id", "participant ID", req.ParticipantID)
	if err != nil {
		return nil, err
	}

	participant, err := a.participants.GetParticipant(ctx, participantID)
	if err != nil {
		if errors.Is(err, sqlutil.ErrNotFound) {
			return nil, errParticipantUnauthorized
		}
		return nil, apperrors.Database(err)
	}
	if participant.GroupID != groupID {
		return nil, errParticipantUnauthorized
	}

	token, expiresAt, err := a.signer.Sign(participant)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("group_id", groupID.String()).
		Str("participant_id", participantID.String()).
		Time("expires_at", expiresAt).
		Msg("issued realtime token")

	return &IssueRealtimeTokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// VerifyRealtimeToken validates a token presented to the gateway.
func (a *App) VerifyRealtimeToken(token string) (*RealtimeClaims, error) {
	return a.signer.Verify(token)
}
