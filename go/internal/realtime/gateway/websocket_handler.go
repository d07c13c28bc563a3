package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/grouporder/go/internal/auth"
)

// TokenVerifier validates realtime tokens.
type TokenVerifier interface {
	VerifyRealtimeToken(token string) (*auth.RealtimeClaims, error)
}

// WebSocketHandler handles WebSocket upgrade requests for group connections
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	verifier          TokenVerifier
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cm *ConnectionManager, verifier TokenVerifier) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		verifier:          verifier,
	}
}

// HandleGroupConnection upgrades a participant's connection for one group.
// The token's group must match the requested group.
func (h *WebSocketHandler) HandleGroupConnection(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(r.URL.Query().Get("group_id"))
	if err != nil {
		http.Error(w, "a valid group_id is required", http.StatusBadRequest)
		return
	}

	claims, err := h.verifier.VerifyRealtimeToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if claims.GroupID != groupID {
		http.Error(w, "token does not grant access to this group", http.StatusForbidden)
		return
	}

	if err := h.connectionManager.UpgradeConnection(w, r, claims.ParticipantID, groupID); err != nil {
		// The upgrader has already replied to the client.
		log.Error().
			Err(err).
			Str("group_id", groupID.String()).
			Str("participant_id", claims.ParticipantID.String()).
			Msg("failed to upgrade WebSocket connection")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.GetConnectionStats()); err != nil {
		log.Error().Err(err).Msg("failed to write connection stats")
	}
}

// HandleHealth reports liveness.
func (h *WebSocketHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/groups", h.HandleGroupConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
	mux.HandleFunc("/health", h.HandleHealth)
}
