package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct{ connected bool }

func (c stubConn) IsConnected() bool { return c.connected }

func TestRelayStatsCountForwardedChanges(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC))
	publisher := &stubPublisher{published: make(chan Change, 2)}
	relay := NewRelay(newStubSource(), publisher, DefaultRelayConfig(), clock)

	n, last := relay.Stats()
	assert.Zero(t, n)
	assert.True(t, last.IsZero())

	require.NoError(t, relay.publishWithRetry(context.Background(), Change{GroupID: uuid.New()}))
	clock.Advance(time.Minute)
	require.NoError(t, relay.publishWithRetry(context.Background(), Change{GroupID: uuid.New()}))

	n, last = relay.Stats()
	assert.Equal(t, uint64(2), n)
	assert.True(t, clock.Now().Equal(last), last)
}

func TestRelayHealthChecker(t *testing.T) {
	source := newStubSource()
	relay := NewRelay(source, &stubPublisher{}, DefaultRelayConfig(), clockwork.NewFakeClock())

	status := NewRelayHealthChecker(relay, stubConn{connected: false}).Check(context.Background())
	assert.False(t, status.Healthy)
	assert.False(t, status.NATSConnected)
	assert.False(t, status.ListenerActive)
	assert.ElementsMatch(t, []string{"NATS disconnected", "listener not active"}, status.Errors)

	relay.running.Store(true)
	status = NewRelayHealthChecker(relay, stubConn{connected: true}).Check(context.Background())
	assert.True(t, status.Healthy)
	assert.True(t, status.NATSConnected)
	assert.True(t, status.ListenerActive)
	assert.Empty(t, status.Errors)
	select {
	case <-source.pings:
	default:
		t.Fatal("listener was not pinged")
	}

	status = NewRelayHealthChecker(relay, nil).Check(context.Background())
	assert.True(t, status.Healthy, "nil conn is not checked")
}

func TestRelayHealthCheckerServeHTTP(t *testing.T) {
	relay := NewRelay(newStubSource(), &stubPublisher{}, DefaultRelayConfig(), clockwork.NewFakeClock())
	checker := NewRelayHealthChecker(relay, stubConn{connected: true})

	rec := httptest.NewRecorder()
	checker.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Healthy)
	assert.True(t, body.NATSConnected)
	assert.Equal(t, []string{"listener not active"}, body.Errors)
}
