package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/sqlutil"
)

type stubParticipants map[uuid.UUID]*models.Participant

func (s stubParticipants) GetParticipant(_ context.Context, id uuid.UUID) (*models.Participant, error) {
	p, ok := s[id]
	if !ok {
		return nil, sqlutil.ErrNotFound
	}
	return p, nil
}

type failingParticipants struct{}

func (failingParticipants) GetParticipant(context.Context, uuid.UUID) (*models.Participant, error) {
	return nil, errors.New("connection refused")
}

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newParticipant(isHost bool) *models.Participant {
	return &models.Participant{
		ID:      uuid.New(),
		GroupID: uuid.New(),
		Email:   "host@example.com",
		IsHost:  isHost,
	}
}

func TestIssueAndVerifyRealtimeToken(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	p := newParticipant(true)
	app := NewApp(stubParticipants{p.ID: p}, NewTokenSigner("secret", 0, clock))

	res, err := app.IssueRealtimeToken(context.Background(), IssueRealtimeTokenRequest{
		GroupID:       p.GroupID.String(),
		ParticipantID: p.ID.String(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, epoch.Add(DefaultTokenTTL), res.ExpiresAt)

	claims, err := app.VerifyRealtimeToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, p.ID, claims.ParticipantID)
	assert.Equal(t, p.GroupID, claims.GroupID)
	assert.Equal(t, p.Email, claims.Email)
	assert.True(t, claims.IsHost)
	assert.Equal(t, res.ExpiresAt, claims.ExpiresAt)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	signer := NewTokenSigner("secret", time.Hour, clock)

	token, _, err := signer.Sign(newParticipant(false))
	require.NoError(t, err)

	clock.Advance(time.Hour + time.Second)
	_, err = signer.Verify(token)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsForeignSecretAndAlgorithm(t *testing.T) {
	clock := clockwork.NewFakeClockAt(epoch)
	signer := NewTokenSigner("secret", time.Hour, clock)

	other, _, err := NewTokenSigner("other", time.Hour, clock).Sign(newParticipant(false))
	require.NoError(t, err)
	_, err = signer.Verify(other)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"participant_id": uuid.NewString(),
		"group_id":       uuid.NewString(),
		"exp":            epoch.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = signer.Verify(unsigned)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	_, err = signer.Verify("   ")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestIssueRealtimeTokenErrors(t *testing.T) {
	p := newParticipant(false)
	clock := clockwork.NewFakeClockAt(epoch)

	tests := []struct {
		name   string
		reader ParticipantReader
		secret string
		req    IssueRealtimeTokenRequest
		want   apperrors.Code
	}{
		{
			name:   "malformed group id",
			reader: stubParticipants{},
			secret: "secret",
			req:    IssueRealtimeTokenRequest{GroupID: "nope", ParticipantID: p.ID.String()},
			want:   apperrors.CodeInvalidInput,
		},
		{
			name:   "malformed participant id",
			reader: stubParticipants{},
			secret: "secret",
			req:    IssueRealtimeTokenRequest{GroupID: p.GroupID.String(), ParticipantID: ""},
			want:   apperrors.CodeInvalidInput,
		},
		{
			name:   "unknown participant",
			reader: stubParticipants{},
			secret: "secret",
			req:    IssueRealtimeTokenRequest{GroupID: p.GroupID.String(), ParticipantID: p.ID.String()},
			want:   apperrors.CodeNotFound,
		},
		{
			name:   "participant of another group",
			reader: stubParticipants{p.ID: p},
			secret: "secret",
			req:    IssueRealtimeTokenRequest{GroupID: uuid.NewString(), ParticipantID: p.ID.String()},
			want:   apperrors.CodeNotFound,
		},
		{
			name:   "missing secret",
			reader: stubParticipants{p.ID: p},
			secret: "  ",
			req:    IssueRealtimeTokenRequest{GroupID: p.GroupID.String(), ParticipantID: p.ID.String()},
			want:   apperrors.CodeServerError,
		},
		{
			name:   "store failure",
			reader: failingParticipants{},
			secret: "secret",
			req:    IssueRealtimeTokenRequest{GroupID: p.GroupID.String(), ParticipantID: p.ID.String()},
			want:   apperrors.CodeDatabaseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApp(tt.reader, NewTokenSigner(tt.secret, 0, clock))
			_, err := app.IssueRealtimeToken(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperrors.GetCode(err))
		})
	}
}
