// Package realtime carries "something changed in this group" signals from
// Postgres to connected clients. Signals carry no state; receivers re-fetch.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultSubjectPrefix is the NATS subject prefix for group change signals.
const DefaultSubjectPrefix = "grouporder.changes"

// DefaultNotifyChannel is the Postgres channel the change triggers notify on.
const DefaultNotifyChannel = "grouporder_changes"

// Source tells how a signal was produced.
type Source string

const (
	SourcePush Source = "push"
	SourcePoll Source = "poll"
)

// Change is the payload emitted by the database change triggers.
type Change struct {
	GroupID uuid.UUID `json:"group_id"`
	Table   string    `json:"table"`
	Op      string    `json:"op"`
}

// ParseChange decodes a notification payload.
func ParseChange(payload []byte) (Change, error) {
	var c Change
	if err := json.Unmarshal(payload, &c); err != nil {
		return Change{}, fmt.Errorf("decode change: %w", err)
	}
	if c.GroupID == uuid.Nil {
		return Change{}, fmt.Errorf("decode change: missing group_id")
	}
	return c, nil
}

// Signal tells a subscriber that a group's state may have changed.
type Signal struct {
	GroupID uuid.UUID `json:"group_id"`
	Table   string    `json:"table,omitempty"`
	Op      string    `json:"op,omitempty"`
	Source  Source    `json:"source"`
	At      time.Time `json:"at"`
}

// Subscription is a live stream of signals for one group. The channel is
// closed when the subscription ends, either through Close or because the
// underlying transport went away.
type Subscription interface {
	Signals() <-chan Signal
	Close() error
}

// Subscriber opens per-group subscriptions.
type Subscriber interface {
	Subscribe(ctx context.Context, groupID uuid.UUID) (Subscription, error)
}

// Subject returns the NATS subject for a group's changes.
func Subject(prefix string, groupID uuid.UUID) string {
	return prefix + "." + groupID.String()
}
