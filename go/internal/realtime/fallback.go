package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// FallbackSubscriber prefers push. When push cannot be opened or is lost it
// polls at a fixed interval and retries push on every tick until it succeeds.
type FallbackSubscriber struct {
	push     Subscriber
	interval time.Duration
	clock    clockwork.Clock
}

// NewFallbackSubscriber creates a fallback subscriber over push.
func NewFallbackSubscriber(push Subscriber, interval time.Duration, clock clockwork.Clock) *FallbackSubscriber {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &FallbackSubscriber{push: push, interval: interval, clock: clock}
}

// Subscribe never fails: without push it starts out polling.
func (f *FallbackSubscriber) Subscribe(ctx context.Context, groupID uuid.UUID) (Subscription, error) {
	s := &fallbackSubscription{
		parent:  f,
		groupID: groupID,
		out:     make(chan Signal),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run(ctx)
	return s, nil
}

type fallbackSubscription struct {
	parent  *FallbackSubscriber
	groupID uuid.UUID
	out     chan Signal
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func (s *fallbackSubscription) Signals() <-chan Signal { return s.out }

func (s *fallbackSubscription) Close() error {
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
	return nil
}

func (s *fallbackSubscription) run(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.out)

	push := s.tryPush(ctx)
	var ticker clockwork.Ticker
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
		if push != nil {
			_ = push.Close()
		}
	}()

	for {
		if push != nil {
			if ticker != nil {
				ticker.Stop()
				ticker = nil
			}
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case sig, ok := <-push.Signals():
				if !ok {
					log.Warn().Str("group_id", s.groupID.String()).Msg("push subscription lost, polling")
					_ = push.Close()
					push = nil
					continue
				}
				if !s.emit(ctx, sig) {
					return
				}
			}
			continue
		}

		if ticker == nil {
			ticker = s.parent.clock.NewTicker(s.parent.interval)
		}
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.Chan():
			sig := Signal{GroupID: s.groupID, Source: SourcePoll, At: s.parent.clock.Now().UTC()}
			if !s.emit(ctx, sig) {
				return
			}
			if push = s.tryPush(ctx); push != nil {
				log.Info().Str("group_id", s.groupID.String()).Msg("push subscription restored")
			}
		}
	}
}

func (s *fallbackSubscription) tryPush(ctx context.Context) Subscription {
	if s.parent.push == nil {
		return nil
	}
	sub, err := s.parent.push.Subscribe(ctx, s.groupID)
	if err != nil {
		log.Debug().Err(err).Str("group_id", s.groupID.String()).Msg("push subscribe failed")
		return nil
	}
	return sub
}

func (s *fallbackSubscription) emit(ctx context.Context, sig Signal) bool {
	select {
	case s.out <- sig:
		return true
	case <-ctx.Done():
		return false
	case <-s.done:
		return false
	}
}
