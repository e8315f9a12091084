package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveOrTimeout(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event delivery")
		return nil
	}
}

func waitForClientCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d, got %d", want, hub.ClientCount())
}

func TestHub_SlowClientDoesNotStallDispatch(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	// An unbuffered send channel with no reader models a client whose
	// write pump stopped draining
	slow := &Client{hub: hub, send: make(chan []byte), userID: 1}
	healthy := &Client{hub: hub, send: make(chan []byte, 16), userID: 2}

	hub.register <- slow
	hub.register <- healthy
	waitForClientCount(t, hub, 2)

	hub.Broadcast(EventNewReport, map[string]interface{}{"reportId": 1})
	receiveOrTimeout(t, healthy.send)

	// The slow client must be dropped without stalling the Run loop
	waitForClientCount(t, hub, 1)

	hub.Broadcast(EventNewReport, map[string]interface{}{"reportId": 2})
	receiveOrTimeout(t, healthy.send)

	select {
	case _, open := <-slow.send:
		assert.False(t, open, "dropped client's send channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("dropped client's send channel was never closed")
	}
}

func TestHub_AdminOnlyEvents(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	user := &Client{hub: hub, send: make(chan []byte, 16), userID: 1}
	admin := &Client{hub: hub, send: make(chan []byte, 16), userID: 2, isAdmin: true}

	hub.register <- user
	hub.register <- admin
	waitForClientCount(t, hub, 2)

	hub.BroadcastAdmins(EventAdExpired, map[string]interface{}{"adId": 7})

	data := receiveOrTimeout(t, admin.send)
	require.Contains(t, string(data), EventAdExpired)

	select {
	case data := <-user.send:
		t.Fatalf("non-admin client received admin event: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}
