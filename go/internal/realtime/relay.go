package realtime

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// RelayConfig tunes the notification relay.
type RelayConfig struct {
	NotifyChannel string
	MaxRetries    int
	RetryDelay    time.Duration
	PingInterval  time.Duration
}

// DefaultRelayConfig returns the relay defaults.
func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		NotifyChannel: DefaultNotifyChannel,
		MaxRetries:    5,
		RetryDelay:    200 * time.Millisecond,
		PingInterval:  90 * time.Second,
	}
}

// Publisher publishes a change to the push transport.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// NotificationSource is the part of *pq.Listener the relay consumes.
type NotificationSource interface {
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// NewListener opens a pq listener on channel.
func NewListener(dsn, channel string) (*pq.Listener, error) {
	l := pq.NewListener(
		dsn,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(channel); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().Str("channel", channel).Msg("listening for notifications")
	return l, nil
}

// Relay forwards database change notifications to the push transport.
type Relay struct {
	source    NotificationSource
	publisher Publisher
	cfg       RelayConfig
	clock     clockwork.Clock

	running       atomic.Bool
	forwarded     atomic.Uint64
	lastForwarded atomic.Int64 // unix nanos
}

// NewRelay creates a relay.
func NewRelay(source NotificationSource, publisher Publisher, cfg RelayConfig, clock clockwork.Clock) *Relay {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = DefaultRelayConfig().PingInterval
	}
	return &Relay{
		source:    source,
		publisher: publisher,
		cfg:       cfg,
		clock:     clock,
	}
}

// Run relays notifications until ctx is done, then closes the source.
func (r *Relay) Run(ctx context.Context) error {
	r.running.Store(true)
	defer r.running.Store(false)

	log.Info().
		Str("channel", r.cfg.NotifyChannel).
		Dur("ping_interval", r.cfg.PingInterval).
		Msg("relay started")

	pingTicker := r.clock.NewTicker(r.cfg.PingInterval)
	defer pingTicker.Stop()

	notifications := r.source.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("relay shutting down")
			return r.source.Close()
		case note, ok := <-notifications:
			if !ok {
				return fmt.Errorf("notification channel closed")
			}
			if note == nil {
				// Connection was re-established; anything sent meanwhile is lost
				// and clients catch up through polling.
				log.Warn().Msg("listener reconnected, notifications may have been missed")
				continue
			}
			if err := r.handleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-pingTicker.Chan():
			if err := r.source.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

// Stats reports how many changes were forwarded and when the last one was.
func (r *Relay) Stats() (forwarded uint64, last time.Time) {
	if ns := r.lastForwarded.Load(); ns != 0 {
		last = time.Unix(0, ns).UTC()
	}
	return r.forwarded.Load(), last
}

// Running reports whether Run is active.
func (r *Relay) Running() bool {
	return r.running.Load()
}

func (r *Relay) handleNotification(ctx context.Context, extra string) error {
	change, err := ParseChange([]byte(extra))
	if err != nil {
		return err
	}
	if err := r.publishWithRetry(ctx, change); err != nil {
		return fmt.Errorf("failed to publish change for group %s: %w", change.GroupID, err)
	}
	return nil
}

// publishWithRetry retries with a linearly growing delay.
func (r *Relay) publishWithRetry(ctx context.Context, change Change) error {
	var lastErr error

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if delay := r.cfg.RetryDelay * time.Duration(attempt); delay > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-r.clock.After(delay):
				}
			}
		}

		if err := r.publisher.Publish(ctx, change); err != nil {
			lastErr = err
			log.Error().
				Err(err).
				Int("attempt", attempt+1).
				Str("group_id", change.GroupID.String()).
				Msg("failed to publish, retrying")
			continue
		}

		r.forwarded.Add(1)
		r.lastForwarded.Store(r.clock.Now().UnixNano())
		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Str("group_id", change.GroupID.String()).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", r.cfg.MaxRetries+1, lastErr)
}
