package auth

import "time"

// IssueRealtimeTokenRequest identifies the participant asking for a token.
type IssueRealtimeTokenRequest struct {
	GroupID       string `json:"group_id"`
	ParticipantID string `json:"participant_id"`
}

// IssueRealtimeTokenResponse carries the signed token and its expiry.
type IssueRealtimeTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
