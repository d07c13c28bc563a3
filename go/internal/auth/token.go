// Package auth issues and verifies the short-lived credentials that scope a
// participant's realtime subscription to its group.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/models"
)

// DefaultTokenTTL is how long a realtime token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// RealtimeClaims are the validated claims of a realtime token.
type RealtimeClaims struct {
	ParticipantID uuid.UUID
	GroupID       uuid.UUID
	Email         string
	IsHost        bool
	ExpiresAt     time.Time
}

// realtimeClaims is the internal claims type used for JWT signing and parsing.
type realtimeClaims struct {
	jwt.RegisteredClaims
	ParticipantID string `json:"participant_id"`
	GroupID       string `json:"group_id"`
	Email         string `json:"email"`
	IsHost        bool   `json:"is_host"`
}

// TokenSigner signs and verifies HS256 realtime tokens.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewTokenSigner creates a signer. An empty secret is accepted here and
// reported as server_error when a token is requested.
func NewTokenSigner(secret string, ttl time.Duration, clock clockwork.Clock) *TokenSigner {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenSigner{
		secret: []byte(strings.TrimSpace(secret)),
		ttl:    ttl,
		clock:  clock,
	}
}

var errSecretMissing = apperrors.New(apperrors.CodeServerError, "JWT secret not configured.")

// Sign issues a token for participant. Expiry is truncated to whole seconds.
func (s *TokenSigner) Sign(participant *models.Participant) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, errSecretMissing
	}

	expiresAt := s.clock.Now().Add(s.ttl).Truncate(time.Second).UTC()
	claims := realtimeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		ParticipantID: participant.ID.String(),
		GroupID:       participant.GroupID.String(),
		Email:         participant.Email,
		IsHost:        participant.IsHost,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(apperrors.CodeServerError, err.Error(), err)
	}
	return token, expiresAt, nil
}

// Verify parses a token, accepting only HS256 and unexpired tokens.
func (s *TokenSigner) Verify(token string) (*RealtimeClaims, error) {
	if len(s.secret) == 0 {
		return nil, errSecretMissing
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.New(apperrors.CodeForbidden, "Realtime token is required.")
	}

	var parsed realtimeClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Wrap(apperrors.CodeForbidden, "Realtime token is expired.", err)
		}
		return nil, apperrors.Wrap(apperrors.CodeForbidden, "Realtime token is invalid.", err)
	}

	participantID, err := uuid.Parse(parsed.ParticipantID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeForbidden, "Realtime token is invalid.", err)
	}
	groupID, err := uuid.Parse(parsed.GroupID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeForbidden, "Realtime token is invalid.", err)
	}

	return &RealtimeClaims{
		ParticipantID: participantID,
		GroupID:       groupID,
		Email:         parsed.Email,
		IsHost:        parsed.IsHost,
		ExpiresAt:     parsed.ExpiresAt.Time.UTC(),
	}, nil
}
