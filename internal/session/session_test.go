package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvState(t *testing.T, ch <-chan State) State {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for state")
		return State{}
	}
}

func TestHub_InitialStateSignedOut(t *testing.T) {
	h := NewHub()

	got := h.Current()
	assert.Equal(t, State{}, got)
	assert.False(t, got.Valid)
	assert.Empty(t, got.Email)
}

func TestHub_SetUpdatesCurrent(t *testing.T) {
	h := NewHub()

	h.Set(State{Email: "a@x.com", Token: "tok", Valid: true})

	got := h.Current()
	assert.Equal(t, "a@x.com", got.Email)
	assert.True(t, got.Valid)
}

func TestHub_SubscriberSeesStatesInOrder(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	loading := State{Loading: true}
	signedIn := State{Email: "a@x.com", Token: "tok", Valid: true}

	h.Set(loading)
	h.Set(signedIn)

	assert.Equal(t, loading, recvState(t, ch))
	assert.Equal(t, signedIn, recvState(t, ch))
}

func TestHub_MultipleSubscribers(t *testing.T) {
	h := NewHub()
	ch1, cancel1 := h.Subscribe()
	defer cancel1()
	ch2, cancel2 := h.Subscribe()
	defer cancel2()

	s := State{Email: "a@x.com", Valid: true}
	h.Set(s)

	assert.Equal(t, s, recvState(t, ch1))
	assert.Equal(t, s, recvState(t, ch2))
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()

	cancel()
	h.Set(State{Email: "a@x.com"})

	_, open := <-ch
	assert.False(t, open, "channel must be closed after cancel")

	// Cancelling twice must not panic.
	require.NotPanics(t, cancel)
}

func TestHub_SubscribeMissesEarlierStates(t *testing.T) {
	h := NewHub()

	h.Set(State{Email: "early@x.com"})

	ch, cancel := h.Subscribe()
	defer cancel()

	h.Set(State{Email: "late@x.com"})

	got := recvState(t, ch)
	assert.Equal(t, "late@x.com", got.Email, "subscriber only sees states published after Subscribe")
}
