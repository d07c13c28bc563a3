package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultPollInterval is the fixed refresh interval used when push is unavailable.
const DefaultPollInterval = 5 * time.Second

// PollSubscriber emits a poll signal on every interval tick, without backoff.
type PollSubscriber struct {
	interval time.Duration
	clock    clockwork.Clock
}

// NewPollSubscriber creates a poll subscriber. A non-positive interval uses DefaultPollInterval.
func NewPollSubscriber(interval time.Duration, clock clockwork.Clock) *PollSubscriber {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PollSubscriber{interval: interval, clock: clock}
}

// Subscribe starts a ticker for groupID. It runs until Close or ctx is done.
func (p *PollSubscriber) Subscribe(ctx context.Context, groupID uuid.UUID) (Subscription, error) {
	s := &pollSubscription{
		out:  make(chan Signal),
		done: make(chan struct{}),
	}
	ticker := p.clock.NewTicker(p.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(s.out)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.Chan():
				sig := Signal{GroupID: groupID, Source: SourcePoll, At: p.clock.Now().UTC()}
				select {
				case s.out <- sig:
				case <-ctx.Done():
					return
				case <-s.done:
					return
				}
			}
		}
	}()

	return s, nil
}

type pollSubscription struct {
	out  chan Signal
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func (s *pollSubscription) Signals() <-chan Signal { return s.out }

// Close stops the ticker and waits for the emitting goroutine to exit.
func (s *pollSubscription) Close() error {
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
	return nil
}
