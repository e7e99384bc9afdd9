// Package session holds the single "who is currently signed in" value and
// broadcasts changes to subscribers. The hub is created once at startup and
// injected into the backend (the only writer) and the guards and views (the
// readers).
package session

import (
	"sync"

	"github.com/google/uuid"
)

// State is the current session snapshot. Email and Token are empty when
// signed out. Loading marks the transient window while a sign-in or sign-out
// is in flight.
type State struct {
	Email   string
	Token   string
	Valid   bool
	Loading bool
}

// SignedOut is the initial state of the hub.
func SignedOut() State {
	return State{}
}

// Hub is a current-value broadcaster: the latest State is readable
// synchronously, and every change is delivered to all subscribers in
// publication order. The stream never completes and never carries errors;
// operation failures surface through the operation's own return value.
type Hub struct {
	mu      sync.RWMutex
	current State
	subs    map[uuid.UUID]chan State
}

func NewHub() *Hub {
	return &Hub{
		current: SignedOut(),
		subs:    make(map[uuid.UUID]chan State),
	}
}

// Current returns the latest published state.
func (h *Hub) Current() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Subscribe registers a listener. The returned channel receives every state
// published after the call, in order. The cancel function unregisters the
// listener and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan State, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	ch := make(chan State, 16)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Set publishes a new state. Publication is synchronous with respect to the
// caller: by the time Set returns, the state is visible through Current and
// queued on every subscriber channel. A subscriber that falls more than a
// buffer's worth behind loses the oldest updates rather than blocking the
// writer.
func (h *Hub) Set(s State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = s
	for _, ch := range h.subs {
		select {
		case ch <- s:
		default:
			// Slow subscriber: drop its oldest update to make room.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}
