package game

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Stream event types.
const (
	EventTypeState        = "state"
	EventTypeNotification = "notification"
)

// StateEvent is one message on the broadcast stream.
type StateEvent struct {
	Type         string        `json:"type"`
	Version      uint64        `json:"version,omitempty"`
	Kind         Kind          `json:"kind,omitempty"`
	State        *State        `json:"state,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

// Broadcaster fans out state changes and notifications to in-process
// subscribers. Slow subscribers miss events rather than block dispatch.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[int]chan StateEvent
	next   int
	buffer int
}

// NewBroadcaster creates a broadcaster whose subscriber channels hold buffer
// events. A non-positive buffer defaults to 8.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = 8
	}
	return &Broadcaster{
		subs:   make(map[int]chan StateEvent),
		buffer: buffer,
	}
}

// Attach subscribes the broadcaster to store changes and returns the cancel func.
func (b *Broadcaster) Attach(store *Store) func() {
	return store.Subscribe(b.StateChanged)
}

// StateChanged is a store Listener.
func (b *Broadcaster) StateChanged(_ context.Context, change Change) {
	event := StateEvent{Type: EventTypeState, Version: change.Version, State: change.Next}
	if change.Action != nil {
		event.Kind = change.Action.Kind()
	}
	b.publish(event)
}

// Notify satisfies Notifier and broadcasts a transient notification.
func (b *Broadcaster) Notify(_ context.Context, n Notification) error {
	b.publish(StateEvent{Type: EventTypeNotification, Notification: &n})
	return nil
}

func (b *Broadcaster) publish(event StateEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of events and a cancel func.
func (b *Broadcaster) Subscribe() (<-chan StateEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan StateEvent, b.buffer)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Subscribers returns the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams events as JSON. When
// snapshot is non-nil the current state is sent first.
func (b *Broadcaster) ServeWebSocket(snapshot func() *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer conn.Close()

		events, cancel := b.Subscribe()
		defer cancel()

		// the stream is write-only; reading surfaces the client going away
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		if snapshot != nil {
			if err := conn.WriteJSON(StateEvent{Type: EventTypeState, State: snapshot()}); err != nil {
				return
			}
		}
		for {
			select {
			case <-r.Context().Done():
				return
			case <-gone:
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for the same stream.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := b.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("event: " + event.Type + "\ndata: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
