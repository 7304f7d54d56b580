package websocket

import (
	"encoding/json"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ringdesk/callhub/internal/pkg/constants"
	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/pkg/models"
	ws "github.com/ringdesk/callhub/internal/pkg/websocket"
	"github.com/ringdesk/callhub/services/callcenter"
)

// CallCenterWS dispatches call-center events arriving on the streaming
// channel. Room and status bookkeeping lives in the hub; call semantics
// live in the usecase.
type CallCenterWS struct {
	uc  callcenter.CallCenterUC
	hub *ws.Hub

	// incomingCallDelay is how long after an authenticated connection
	// opens the simulated incoming call fires.
	incomingCallDelay time.Duration
}

// NewCallCenterWS creates the WebSocket event handler
func NewCallCenterWS(uc callcenter.CallCenterUC, hub *ws.Hub) *CallCenterWS {
	return &CallCenterWS{
		uc:                uc,
		hub:               hub,
		incomingCallDelay: 15 * time.Second,
	}
}

// HandleWebSocket handles new WebSocket connections
func (h *CallCenterWS) HandleWebSocket(c echo.Context) error {
	return h.hub.HandleConnection(c, h)
}

// HandleConnect welcomes the connection and, for authenticated agents,
// schedules a one-shot simulated incoming call tied to the connection's
// lifetime.
func (h *CallCenterWS) HandleConnect(client *ws.Client) {
	client.Send(constants.EventWelcome, models.WelcomePayload{
		Message:       "Connected to Call Center Server",
		SocketID:      client.ID,
		Authenticated: client.Authenticated(),
		User:          client.Claims(),
	})

	if !client.Authenticated() {
		return
	}

	agentID := client.Claims().PhoneNumber
	timer := time.AfterFunc(h.incomingCallDelay, func() {
		event := h.uc.SimulateIncomingCall(agentID)
		client.Send(constants.EventCallIncoming, event)
	})
	go func() {
		<-client.Done()
		timer.Stop()
	}()
}

// HandleDisconnect is called after the transport closes; the hub has
// already released the connection's room memberships.
func (h *CallCenterWS) HandleDisconnect(client *ws.Client) {
	logger.Debug("Call center client closed", logger.String("client_id", client.ID))
}

type statusPayload struct {
	Status string `json:"status"`
}

type callPayload struct {
	CallID        string `json:"callId"`
	TargetAgentID string `json:"targetAgentId"`
}

// HandleMessage processes one inbound event. Events from a single
// connection arrive here in receipt order.
func (h *CallCenterWS) HandleMessage(client *ws.Client, msg models.WSMessage) {
	switch msg.Event {
	case constants.EventJoinRoom:
		h.handleJoinRoom(client, msg.Data)
	case constants.EventLeaveRoom:
		h.handleLeaveRoom(client, msg.Data)
	case constants.EventJoinCallCenter:
		h.handleJoinCallCenter(client)
	case constants.EventUpdateAgentStatus:
		h.handleAgentStatus(client, msg.Data)
	case constants.EventAcceptCall:
		h.handleAcceptCall(client, msg.Data)
	case constants.EventEndCall:
		h.handleEndCall(client, msg.Data)
	case constants.EventTransferCall:
		h.handleTransferCall(client, msg.Data)
	case constants.EventAuthenticated:
		h.handleAuthenticatedEvent(client, msg.Data)
	default:
		client.SendError(constants.ErrorInvalidFormat, "Unknown event type")
	}
}

// requireIdentity gates authenticated-only events. The connection state is
// untouched on rejection; only the sender hears about it.
func (h *CallCenterWS) requireIdentity(client *ws.Client) (string, bool) {
	if !client.Authenticated() {
		client.SendError(constants.ErrorAuthRequired, "Authentication required for this event")
		return "", false
	}
	return client.Claims().PhoneNumber, true
}

// roomName accepts both the bare-string and the object payload form
func roomName(data json.RawMessage) string {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return name
	}
	var payload models.RoomPayload
	if err := json.Unmarshal(data, &payload); err == nil {
		return payload.Room
	}
	return ""
}

func (h *CallCenterWS) handleJoinRoom(client *ws.Client, data json.RawMessage) {
	room := roomName(data)
	if room == "" {
		client.SendError(constants.ErrorInvalidFormat, "Room name is required")
		return
	}
	h.hub.JoinRoom(client, room)
	client.Send(constants.EventRoomJoined, models.RoomPayload{Room: room})
}

func (h *CallCenterWS) handleLeaveRoom(client *ws.Client, data json.RawMessage) {
	room := roomName(data)
	if room == "" {
		client.SendError(constants.ErrorInvalidFormat, "Room name is required")
		return
	}
	h.hub.LeaveRoom(client, room)
	client.Send(constants.EventRoomLeft, models.RoomPayload{Room: room})
}

func (h *CallCenterWS) handleJoinCallCenter(client *ws.Client) {
	if _, ok := h.requireIdentity(client); !ok {
		return
	}
	h.hub.JoinRoom(client, constants.CallCenterRoom)
	client.Send(constants.EventRoomJoined, models.RoomPayload{Room: constants.CallCenterRoom})
}

func (h *CallCenterWS) handleAgentStatus(client *ws.Client, data json.RawMessage) {
	agentID, ok := h.requireIdentity(client)
	if !ok {
		return
	}

	var payload statusPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Status == "" {
		client.SendError(constants.ErrorInvalidFormat, "Status is required")
		return
	}

	// The authenticated identity is the agent id; a caller cannot claim
	// another agent's id on this event.
	h.uc.UpdateAgentStatus(agentID, payload.Status)
}

func (h *CallCenterWS) handleAcceptCall(client *ws.Client, data json.RawMessage) {
	agentID, ok := h.requireIdentity(client)
	if !ok {
		return
	}

	var payload callPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.CallID == "" {
		client.SendError(constants.ErrorInvalidFormat, "callId is required")
		return
	}
	h.uc.AcceptCall(agentID, payload.CallID)
}

func (h *CallCenterWS) handleEndCall(client *ws.Client, data json.RawMessage) {
	agentID, ok := h.requireIdentity(client)
	if !ok {
		return
	}

	var payload callPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.CallID == "" {
		client.SendError(constants.ErrorInvalidFormat, "callId is required")
		return
	}
	h.uc.EndCall(agentID, payload.CallID)
}

func (h *CallCenterWS) handleTransferCall(client *ws.Client, data json.RawMessage) {
	agentID, ok := h.requireIdentity(client)
	if !ok {
		return
	}

	var payload callPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.CallID == "" || payload.TargetAgentID == "" {
		client.SendError(constants.ErrorInvalidFormat, "callId and targetAgentId are required")
		return
	}
	h.uc.TransferCall(agentID, payload.CallID, payload.TargetAgentID)
}

// handleAuthenticatedEvent echoes an authenticated-only event back to the
// sender; it exists to exercise the per-event identity gate.
func (h *CallCenterWS) handleAuthenticatedEvent(client *ws.Client, data json.RawMessage) {
	if _, ok := h.requireIdentity(client); !ok {
		return
	}
	client.Send(constants.EventAuthenticated, data)
}
