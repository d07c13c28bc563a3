// Package gateway fans group change signals out to websocket clients.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/grouporder/go/internal/realtime"
)

// ConnectionManager owns every websocket connection and holds exactly one
// signal subscription per group that has at least one live connection.
type ConnectionManager struct {
	groups map[uuid.UUID]*groupPool
	mu     sync.RWMutex

	subscriber realtime.Subscriber
	upgrader   websocket.Upgrader
	config     ConnectionConfig

	broadcastCh chan BroadcastMessage

	ctx    context.Context
	cancel context.CancelFunc
}

type groupPool struct {
	connections map[*Connection]bool
	sub         realtime.Subscription
}

// Connection represents a WebSocket connection to a participant
type Connection struct {
	ID            string
	ParticipantID uuid.UUID
	GroupID       uuid.UUID
	Conn          *websocket.Conn
	Send          chan []byte
	Manager       *ConnectionManager

	ConnectedAt time.Time
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// BroadcastMessage is a queued event for one group.
type BroadcastMessage struct {
	GroupID uuid.UUID
	Event   *GroupEvent
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// NewConnectionManager creates a connection manager that subscribes through subscriber.
func NewConnectionManager(subscriber realtime.Subscriber, config ConnectionConfig) *ConnectionManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &ConnectionManager{
		groups:     make(map[uuid.UUID]*groupPool),
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan BroadcastMessage, 1000),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start processes broadcast messages until ctx is done, then closes every
// connection and subscription.
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			cm.shutdown()
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

func (cm *ConnectionManager) shutdown() {
	cm.cancel()

	cm.mu.Lock()
	pools := cm.groups
	cm.groups = make(map[uuid.UUID]*groupPool)
	cm.mu.Unlock()

	for _, pool := range pools {
		for conn := range pool.connections {
			_ = conn.Conn.Close()
		}
		_ = pool.sub.Close()
	}
}

// UpgradeConnection upgrades an HTTP connection to WebSocket
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, participantID, groupID uuid.UUID) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:            uuid.New().String(),
		ParticipantID: participantID,
		GroupID:       groupID,
		Conn:          conn,
		Send:          make(chan []byte, 256),
		Manager:       cm,
		ConnectedAt:   time.Now(),
	}

	if err := cm.registerConnection(connection); err != nil {
		_ = conn.Close()
		return err
	}

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("participant_id", participantID.String()).
		Str("group_id", groupID.String()).
		Msg("WebSocket connection established")

	return nil
}

// registerConnection adds a connection, opening the group's subscription if
// it is the first one.
func (cm *ConnectionManager) registerConnection(conn *Connection) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	pool, ok := cm.groups[conn.GroupID]
	if !ok {
		sub, err := cm.subscriber.Subscribe(cm.ctx, conn.GroupID)
		if err != nil {
			return fmt.Errorf("subscribe to group %s: %w", conn.GroupID, err)
		}
		pool = &groupPool{
			connections: make(map[*Connection]bool),
			sub:         sub,
		}
		cm.groups[conn.GroupID] = pool
		go cm.forward(sub)

		log.Info().Str("group_id", conn.GroupID.String()).Msg("group subscription opened")
	}
	pool.connections[conn] = true

	log.Debug().
		Str("connection_id", conn.ID).
		Str("group_id", conn.GroupID.String()).
		Int("total_connections", len(pool.connections)).
		Msg("connection registered")
	return nil
}

// forward turns a subscription's signals into broadcasts until it ends.
func (cm *ConnectionManager) forward(sub realtime.Subscription) {
	for sig := range sub.Signals() {
		cm.BroadcastToGroup(sig.GroupID, eventFromSignal(sig))
	}
}

// unregisterConnection removes a connection, closing the group's
// subscription with its last connection.
func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	var closing realtime.Subscription

	cm.mu.Lock()
	if pool, exists := cm.groups[conn.GroupID]; exists {
		if _, exists := pool.connections[conn]; exists {
			delete(pool.connections, conn)
			close(conn.Send)

			if len(pool.connections) == 0 {
				delete(cm.groups, conn.GroupID)
				closing = pool.sub
			}

			log.Info().
				Str("connection_id", conn.ID).
				Str("participant_id", conn.ParticipantID.String()).
				Str("group_id", conn.GroupID.String()).
				Msg("connection unregistered")
		}
	}
	cm.mu.Unlock()

	if closing != nil {
		if err := closing.Close(); err != nil {
			log.Error().Err(err).Str("group_id", conn.GroupID.String()).Msg("failed to close group subscription")
		}
		log.Info().Str("group_id", conn.GroupID.String()).Msg("group subscription closed")
	}
}

// BroadcastToGroup queues an event for all connections of a group.
func (cm *ConnectionManager) BroadcastToGroup(groupID uuid.UUID, event *GroupEvent) {
	select {
	case cm.broadcastCh <- BroadcastMessage{GroupID: groupID, Event: event}:
	default:
		log.Warn().Str("group_id", groupID.String()).Msg("broadcast channel full, dropping message")
	}
}

// handleBroadcast sends under the read lock so no connection's Send channel
// can be closed mid-send. Slow connections are dropped afterwards.
func (cm *ConnectionManager) handleBroadcast(message BroadcastMessage) {
	data, err := json.Marshal(message.Event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	var slow []*Connection
	cm.mu.RLock()
	pool, exists := cm.groups[message.GroupID]
	if !exists {
		cm.mu.RUnlock()
		return
	}
	delivered := 0
	for conn := range pool.connections {
		select {
		case conn.Send <- data:
			delivered++
		default:
			slow = append(slow, conn)
		}
	}
	cm.mu.RUnlock()

	for _, conn := range slow {
		log.Warn().
			Str("connection_id", conn.ID).
			Msg("connection send buffer full, closing connection")
		cm.unregisterConnection(conn)
		_ = conn.Conn.Close()
	}

	log.Debug().
		Str("group_id", message.GroupID.String()).
		Str("source", string(message.Event.Source)).
		Int("connections", delivered).
		Msg("event broadcasted")
}

// Stats summarizes live connections.
type Stats struct {
	TotalConnections int            `json:"total_connections"`
	ActiveGroups     int            `json:"active_groups"`
	GroupConnections map[string]int `json:"group_connections"`
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() Stats {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	stats := Stats{
		ActiveGroups:     len(cm.groups),
		GroupConnections: make(map[string]int, len(cm.groups)),
	}
	for groupID, pool := range cm.groups {
		stats.TotalConnections += len(pool.connections)
		stats.GroupConnections[groupID.String()] = len(pool.connections)
	}
	return stats
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump discards client frames; it exists to process control frames and
// to notice the client going away.
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("unexpected WebSocket close error")
			}
			return
		}
		_ = c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}
