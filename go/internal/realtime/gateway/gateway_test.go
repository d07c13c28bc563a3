package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/auth"
	"github.com/mcdev12/grouporder/go/internal/realtime"
)

type stubVerifier struct {
	mu     sync.Mutex
	claims map[string]*auth.RealtimeClaims
}

func (v *stubVerifier) VerifyRealtimeToken(token string) (*auth.RealtimeClaims, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	claims, ok := v.claims[token]
	if !ok {
		return nil, apperrors.New(apperrors.CodeForbidden, "Realtime token is invalid.")
	}
	return claims, nil
}

type stubSubscription struct {
	ch     chan realtime.Signal
	once   sync.Once
	closed chan struct{}
}

func (s *stubSubscription) Signals() <-chan realtime.Signal { return s.ch }

func (s *stubSubscription) Close() error {
	s.once.Do(func() {
		close(s.ch)
		close(s.closed)
	})
	return nil
}

type stubSubscriber struct {
	mu   sync.Mutex
	subs map[uuid.UUID][]*stubSubscription
}

func (s *stubSubscriber) Subscribe(_ context.Context, groupID uuid.UUID) (realtime.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := &stubSubscription{ch: make(chan realtime.Signal, 4), closed: make(chan struct{})}
	s.subs[groupID] = append(s.subs[groupID], sub)
	return sub, nil
}

func (s *stubSubscriber) opened(groupID uuid.UUID) []*stubSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*stubSubscription(nil), s.subs[groupID]...)
}

type fixture struct {
	server     *httptest.Server
	manager    *ConnectionManager
	subscriber *stubSubscriber
	verifier   *stubVerifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	subscriber := &stubSubscriber{subs: make(map[uuid.UUID][]*stubSubscription)}
	manager := NewConnectionManager(subscriber, DefaultConnectionConfig())
	verifier := &stubVerifier{claims: make(map[string]*auth.RealtimeClaims)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(done)
	}()

	mux := http.NewServeMux()
	NewWebSocketHandler(manager, verifier).RegisterRoutes(mux)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		cancel()
		<-done
		server.Close()
	})
	return &fixture{server: server, manager: manager, subscriber: subscriber, verifier: verifier}
}

func (f *fixture) grant(groupID uuid.UUID) string {
	token := uuid.NewString()
	f.verifier.mu.Lock()
	f.verifier.claims[token] = &auth.RealtimeClaims{ParticipantID: uuid.New(), GroupID: groupID}
	f.verifier.mu.Unlock()
	return token
}

func (f *fixture) dial(t *testing.T, groupID uuid.UUID, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/groups?group_id=" + groupID.String() + "&token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func (f *fixture) waitConnections(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return f.manager.GetConnectionStats().TotalConnections == n
	}, 2*time.Second, 10*time.Millisecond)
}

func readEvent(t *testing.T, conn *websocket.Conn) GroupEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event GroupEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func (f *fixture) stats(t *testing.T) Stats {
	t.Helper()
	res, err := http.Get(f.server.URL + "/ws/stats")
	require.NoError(t, err)
	defer res.Body.Close()
	var stats Stats
	require.NoError(t, json.NewDecoder(res.Body).Decode(&stats))
	return stats
}

func TestBroadcastReachesOnlySignalledGroup(t *testing.T) {
	f := newFixture(t)
	groupA, groupB := uuid.New(), uuid.New()

	connA1, _, err := f.dial(t, groupA, f.grant(groupA))
	require.NoError(t, err)
	defer connA1.Close()
	connA2, _, err := f.dial(t, groupA, f.grant(groupA))
	require.NoError(t, err)
	defer connA2.Close()
	connB, _, err := f.dial(t, groupB, f.grant(groupB))
	require.NoError(t, err)
	defer connB.Close()
	f.waitConnections(t, 3)

	require.Len(t, f.subscriber.opened(groupA), 1, "one subscription per group")
	require.Len(t, f.subscriber.opened(groupB), 1)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.subscriber.opened(groupA)[0].ch <- realtime.Signal{
		GroupID: groupA,
		Table:   "cart_items",
		Source:  realtime.SourcePush,
		At:      at,
	}

	for _, conn := range []*websocket.Conn{connA1, connA2} {
		event := readEvent(t, conn)
		assert.Equal(t, EventTypeGroupChanged, event.Type)
		assert.Equal(t, groupA, event.GroupID)
		assert.Equal(t, "cart_items", event.Table)
		assert.Equal(t, realtime.SourcePush, event.Source)
		assert.True(t, at.Equal(event.Timestamp))
	}

	require.NoError(t, connB.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = connB.ReadMessage()
	assert.Error(t, err, "group B must not receive group A's signal")

	stats := f.stats(t)
	assert.Equal(t, 3, stats.TotalConnections)
	assert.Equal(t, 2, stats.ActiveGroups)
	assert.Equal(t, 2, stats.GroupConnections[groupA.String()])
}

func TestLastConnectionClosesSubscription(t *testing.T) {
	f := newFixture(t)
	groupID := uuid.New()

	first, _, err := f.dial(t, groupID, f.grant(groupID))
	require.NoError(t, err)
	second, _, err := f.dial(t, groupID, f.grant(groupID))
	require.NoError(t, err)
	f.waitConnections(t, 2)

	sub := f.subscriber.opened(groupID)[0]

	require.NoError(t, first.Close())
	f.waitConnections(t, 1)
	select {
	case <-sub.closed:
		t.Fatal("subscription closed while a connection is still live")
	default:
	}

	require.NoError(t, second.Close())
	select {
	case <-sub.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription was not closed with the last connection")
	}
	assert.Equal(t, 0, f.manager.GetConnectionStats().ActiveGroups)
}

func TestRejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	groupID := uuid.New()

	_, res, err := f.dial(t, groupID, "unknown")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	_, res, err = f.dial(t, groupID, f.grant(uuid.New()))
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	assert.Empty(t, f.subscriber.opened(groupID))
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	res, err := http.Get(f.server.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
