package websocket

import (
	"encoding/json"
	"testing"

	"github.com/ringdesk/callhub/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addClient registers a connectionless client so hub bookkeeping can be
// exercised without a live transport. Messages are read straight off the
// send channel instead of a writePump.
func addClient(h *Hub, id string, claims *models.UserClaims) *Client {
	client := newClient(id, claims, nil, 8)
	h.register(client)
	return client
}

func receivedEvents(c *Client) []models.WSMessage {
	var msgs []models.WSMessage
	for {
		select {
		case msg := <-c.send:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := NewHub(nil)

	a := addClient(h, "a", nil)
	addClient(h, "b", nil)
	assert.Equal(t, 2, h.ClientCount())

	h.unregister(a)
	assert.Equal(t, 1, h.ClientCount())
}

func TestHub_JoinAndLeaveRoom(t *testing.T) {
	h := NewHub(nil)
	a := addClient(h, "a", nil)
	b := addClient(h, "b", nil)

	h.JoinRoom(a, "support")
	h.JoinRoom(b, "support")
	assert.Equal(t, 2, h.RoomSize("support"))

	// Joining twice is a no-op for membership
	h.JoinRoom(a, "support")
	assert.Equal(t, 2, h.RoomSize("support"))

	assert.True(t, h.LeaveRoom(a, "support"))
	assert.Equal(t, 1, h.RoomSize("support"))

	// Leaving a room the client is not in reports false
	assert.False(t, h.LeaveRoom(a, "support"))
	assert.False(t, h.LeaveRoom(a, "no-such-room"))

	// Last member out discards the room
	assert.True(t, h.LeaveRoom(b, "support"))
	assert.Equal(t, 0, h.RoomSize("support"))
}

func TestHub_JoinRoomUnregisteredIsNoop(t *testing.T) {
	h := NewHub(nil)
	ghost := newClient("ghost", nil, nil, 8)

	h.JoinRoom(ghost, "support")
	assert.Equal(t, 0, h.RoomSize("support"))
}

func TestHub_BroadcastRoom(t *testing.T) {
	h := NewHub(nil)
	a := addClient(h, "a", nil)
	b := addClient(h, "b", nil)
	c := addClient(h, "c", nil)

	h.JoinRoom(a, "support")
	h.JoinRoom(b, "support")

	h.BroadcastRoom("support", "call-incoming", map[string]string{"callId": "call-1"})

	for _, member := range []*Client{a, b} {
		msgs := receivedEvents(member)
		require.Len(t, msgs, 1)
		assert.Equal(t, "call-incoming", msgs[0].Event)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(msgs[0].Data, &payload))
		assert.Equal(t, "call-1", payload["callId"])
	}
	assert.Empty(t, receivedEvents(c))

	// A member that left no longer receives room events
	h.LeaveRoom(b, "support")
	h.BroadcastRoom("support", "call-ended", nil)
	assert.Len(t, receivedEvents(a), 1)
	assert.Empty(t, receivedEvents(b))
}

func TestHub_BroadcastAll(t *testing.T) {
	h := NewHub(nil)
	a := addClient(h, "a", nil)
	b := addClient(h, "b", nil)

	h.Broadcast("queue-updated", models.QueueSnapshot{Length: 2})

	for _, client := range []*Client{a, b} {
		msgs := receivedEvents(client)
		require.Len(t, msgs, 1)
		assert.Equal(t, "queue-updated", msgs[0].Event)
	}
}

func TestHub_Unicast(t *testing.T) {
	h := NewHub(nil)
	a := addClient(h, "a", nil)
	b := addClient(h, "b", nil)

	h.Unicast("a", "welcome", nil)
	h.Unicast("missing", "welcome", nil)

	assert.Len(t, receivedEvents(a), 1)
	assert.Empty(t, receivedEvents(b))
}

func TestHub_UnregisterReleasesAllRooms(t *testing.T) {
	h := NewHub(nil)
	a := addClient(h, "a", nil)
	b := addClient(h, "b", nil)

	h.JoinRoom(a, "support")
	h.JoinRoom(a, "call-center")
	h.JoinRoom(b, "support")

	h.unregister(a)

	assert.Equal(t, 1, h.RoomSize("support"))
	assert.Equal(t, 0, h.RoomSize("call-center"))

	// Only the surviving member hears subsequent room events
	h.BroadcastRoom("support", "agent-status-updated", nil)
	assert.Empty(t, receivedEvents(a))
	assert.Len(t, receivedEvents(b), 1)
}

func TestClient_Authenticated(t *testing.T) {
	anon := newClient("anon", nil, nil, 8)
	assert.False(t, anon.Authenticated())
	assert.Nil(t, anon.Claims())

	agent := newClient("agent", &models.UserClaims{PhoneNumber: "+14155551234", Verified: true}, nil, 8)
	assert.True(t, agent.Authenticated())
	assert.Equal(t, "+14155551234", agent.Claims().PhoneNumber)
}

func TestClient_SendDropsWhenSaturated(t *testing.T) {
	c := newClient("slow", nil, nil, 1)

	c.Send("first", nil)
	c.Send("second", nil) // dropped, buffer full

	msgs := receivedEvents(c)
	require.Len(t, msgs, 1)
	assert.Equal(t, "first", msgs[0].Event)
}

func TestClient_SendError(t *testing.T) {
	c := newClient("c", nil, nil, 8)
	c.SendError("auth_required", "Authentication required for this event")

	msgs := receivedEvents(c)
	require.Len(t, msgs, 1)
	assert.Equal(t, "error", msgs[0].Event)

	var payload models.WSErrorMessage
	require.NoError(t, json.Unmarshal(msgs[0].Data, &payload))
	assert.Equal(t, "auth_required", payload.Code)
}

func TestClient_ShutdownIdempotent(t *testing.T) {
	c := newClient("c", nil, nil, 8)

	c.shutdown()
	c.shutdown()

	select {
	case <-c.Done():
	default:
		t.Fatal("done channel not closed after shutdown")
	}
}
