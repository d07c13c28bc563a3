package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// signalBuffer bounds how many undelivered push signals a subscription holds.
// Signals carry no state, so dropping extras loses nothing.
const signalBuffer = 16

// ErrPushUnavailable is returned when the NATS connection is not usable.
var ErrPushUnavailable = errors.New("realtime push unavailable")

// NATSConfig holds connection settings shared by the relay and the gateway.
type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultNATSConfig returns defaults for a local NATS server.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: DefaultSubjectPrefix,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// ConnectNATS dials NATS with logging handlers attached.
func ConnectNATS(cfg NATSConfig) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("grouporder"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

// NATSSubscriber delivers push signals from a per-group subject. Every open
// subscription is ended when the connection drops.
type NATSSubscriber struct {
	nc     *nats.Conn
	prefix string
	clock  clockwork.Clock

	mu   sync.Mutex
	subs map[*natsSubscription]struct{}
}

// NewNATSSubscriber wraps nc. It takes over nc's disconnect and closed handlers.
func NewNATSSubscriber(nc *nats.Conn, prefix string, clock clockwork.Clock) *NATSSubscriber {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &NATSSubscriber{
		nc:     nc,
		prefix: prefix,
		clock:  clock,
		subs:   make(map[*natsSubscription]struct{}),
	}

	nc.SetDisconnectErrHandler(func(_ *nats.Conn, err error) {
		log.Warn().Err(err).Msg("NATS disconnected, ending push subscriptions")
		s.dropAll()
	})
	nc.SetClosedHandler(func(*nats.Conn) {
		s.dropAll()
	})
	return s
}

// Subscribe listens on the group's subject.
func (s *NATSSubscriber) Subscribe(_ context.Context, groupID uuid.UUID) (Subscription, error) {
	if !s.nc.IsConnected() {
		return nil, ErrPushUnavailable
	}

	sub := &natsSubscription{
		owner: s,
		out:   make(chan Signal, signalBuffer),
	}
	natsSub, err := s.nc.Subscribe(Subject(s.prefix, groupID), func(msg *nats.Msg) {
		change, err := ParseChange(msg.Data)
		if err != nil {
			log.Warn().Err(err).Str("subject", msg.Subject).Msg("dropping malformed change")
			return
		}
		sub.deliver(Signal{
			GroupID: change.GroupID,
			Table:   change.Table,
			Op:      change.Op,
			Source:  SourcePush,
			At:      s.clock.Now().UTC(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPushUnavailable, err)
	}
	sub.sub = natsSub

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	return sub, nil
}

func (s *NATSSubscriber) dropAll() {
	s.mu.Lock()
	subs := make([]*natsSubscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
}

func (s *NATSSubscriber) forget(sub *natsSubscription) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
}

type natsSubscription struct {
	owner *NATSSubscriber
	sub   *nats.Subscription
	out   chan Signal

	mu     sync.Mutex
	closed bool
}

func (s *natsSubscription) Signals() <-chan Signal { return s.out }

func (s *natsSubscription) deliver(sig Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.out <- sig:
	default:
	}
}

func (s *natsSubscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.out)
	s.mu.Unlock()

	s.owner.forget(s)
	if err := s.sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) && !errors.Is(err, nats.ErrBadSubscription) {
		return fmt.Errorf("unsubscribe %s: %w", s.sub.Subject, err)
	}
	return nil
}
