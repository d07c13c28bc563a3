package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// HealthStatus is a point-in-time view of the relay.
type HealthStatus struct {
	Healthy         bool      `json:"healthy"`
	EventsForwarded uint64    `json:"events_forwarded"`
	LastEventTime   time.Time `json:"last_event_time"`
	NATSConnected   bool      `json:"nats_connected"`
	ListenerActive  bool      `json:"listener_active"`
	Errors          []string  `json:"errors"`
}

// ConnStatus reports push transport connectivity. *nats.Conn satisfies it.
type ConnStatus interface {
	IsConnected() bool
}

// RelayHealthChecker checks the relay, its listener and its NATS connection.
type RelayHealthChecker struct {
	relay *Relay
	conn  ConnStatus
}

// NewRelayHealthChecker creates a checker. conn may be nil.
func NewRelayHealthChecker(relay *Relay, conn ConnStatus) *RelayHealthChecker {
	return &RelayHealthChecker{
		relay: relay,
		conn:  conn,
	}
}

// Check gathers the current status.
func (h *RelayHealthChecker) Check(_ context.Context) HealthStatus {
	status := HealthStatus{
		Healthy: true,
		Errors:  []string{},
	}

	status.EventsForwarded, status.LastEventTime = h.relay.Stats()

	if h.conn != nil {
		status.NATSConnected = h.conn.IsConnected()
		if !status.NATSConnected {
			status.Healthy = false
			status.Errors = append(status.Errors, "NATS disconnected")
		}
	}

	status.ListenerActive = h.relay.Running()
	if !status.ListenerActive {
		status.Healthy = false
		status.Errors = append(status.Errors, "listener not active")
	} else if err := h.relay.source.Ping(); err != nil {
		status.Healthy = false
		status.Errors = append(status.Errors, fmt.Sprintf("listener ping failed: %v", err))
	}

	return status
}

// ServeHTTP writes the status as JSON, with 503 when unhealthy.
func (h *RelayHealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Error().Err(err).Msg("failed to write health response")
	}
}
