package gateway

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/grouporder/go/internal/realtime"
)

// EventType names the messages pushed to clients.
type EventType string

const (
	// EventTypeGroupChanged tells the client to re-fetch the group's state.
	EventTypeGroupChanged EventType = "group.changed"
)

// GroupEvent is the JSON frame written to websocket clients.
type GroupEvent struct {
	Type      EventType       `json:"type"`
	GroupID   uuid.UUID       `json:"group_id"`
	Table     string          `json:"table,omitempty"`
	Source    realtime.Source `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
}

func eventFromSignal(sig realtime.Signal) *GroupEvent {
	return &GroupEvent{
		Type:      EventTypeGroupChanged,
		GroupID:   sig.GroupID,
		Table:     sig.Table,
		Source:    sig.Source,
		Timestamp: sig.At,
	}
}
