package game

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan StateEvent) StateEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return StateEvent{}
}

func TestBroadcasterStateChanged(t *testing.T) {
	store := NewStore(Options{})
	b := NewBroadcaster(4)
	detach := b.Attach(store)
	defer detach()

	events, cancel := b.Subscribe()
	defer cancel()
	assert.Equal(t, 1, b.Subscribers())

	next := store.Dispatch(context.Background(), ChangeLocation{LocationID: "shop"})
	event := receive(t, events)
	assert.Equal(t, EventTypeState, event.Type)
	assert.Equal(t, uint64(1), event.Version)
	assert.Equal(t, KindChangeLocation, event.Kind)
	assert.Same(t, next, event.State)
}

func TestBroadcasterNotify(t *testing.T) {
	b := NewBroadcaster(0)
	events, cancel := b.Subscribe()
	defer cancel()

	require.NoError(t, b.Notify(context.Background(), Notification{Title: NotificationTitle, Message: "hi"}))
	event := receive(t, events)
	assert.Equal(t, EventTypeNotification, event.Type)
	require.NotNil(t, event.Notification)
	assert.Equal(t, "hi", event.Notification.Message)
	assert.Nil(t, event.State)
}

func TestBroadcasterDropsForSlowSubscribers(t *testing.T) {
	b := NewBroadcaster(1)
	events, cancel := b.Subscribe()
	for i := 0; i < 5; i++ {
		_ = b.Notify(context.Background(), Notification{Message: "burst"})
	}
	assert.Len(t, events, 1)

	cancel()
	cancel()
	assert.Equal(t, 0, b.Subscribers())
	<-events
	_, open := <-events
	assert.False(t, open)
}

func TestServeWebSocketStreamsState(t *testing.T) {
	store := NewStore(Options{})
	b := NewBroadcaster(4)
	defer b.Attach(store)()

	server := httptest.NewServer(b.ServeWebSocket(store.GetState))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first StateEvent
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, EventTypeState, first.Type)
	require.NotNil(t, first.State)
	assert.Equal(t, "dashboard", first.State.ActiveLocation)

	store.Dispatch(context.Background(), ChangeLocation{LocationID: "battle"})
	var second StateEvent
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, KindChangeLocation, second.Kind)
	assert.Equal(t, "battle", second.State.ActiveLocation)
}

func TestServeSSEStreamsNotifications(t *testing.T) {
	b := NewBroadcaster(4)
	server := httptest.NewServer(http.HandlerFunc(b.ServeSSE))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return b.Subscribers() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, b.Notify(context.Background(), Notification{Message: "sse"}))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: notification\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "data: {"))
	assert.Contains(t, line, `"sse"`)
}
