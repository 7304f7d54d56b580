package websocket

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/ringdesk/callhub/internal/pkg/constants"
	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/pkg/models"
)

// TokenValidator authenticates the optional bearer credential presented
// in the connection handshake.
type TokenValidator interface {
	Validate(token string) (*models.UserClaims, error)
}

// EventHandler receives connection lifecycle callbacks and inbound events.
// HandleMessage is called from the connection's read loop, so events from a
// single connection are processed in receipt order.
type EventHandler interface {
	HandleConnect(client *Client)
	HandleMessage(client *Client, msg models.WSMessage)
	HandleDisconnect(client *Client)
}

// Hub multiplexes streaming connections: it authenticates them at upgrade
// time, tracks room membership and fans out events. All fan-out is
// per-process; there is no cross-node shared state.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client

	validator TokenValidator
	upgrader  websocket.Upgrader

	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	sendBuffer   int
}

// NewHub creates a hub that validates handshake credentials with the given
// validator.
func NewHub(validator TokenValidator) *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		rooms:     make(map[string]map[string]*Client),
		validator: validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingInterval: 30 * time.Second,
		readTimeout:  60 * time.Second,
		writeTimeout: 10 * time.Second,
		sendBuffer:   32,
	}
}

// HandleConnection upgrades the request, admits the connection and runs its
// read loop until the transport closes. Connections without a valid
// credential are admitted with nil identity; only specific event types
// later require authentication.
func (h *Hub) HandleConnection(c echo.Context, handler EventHandler) error {
	claims := h.authenticate(c)

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := newClient(uuid.New().String(), claims, ws, h.sendBuffer)
	h.register(client)

	go client.writePump(h.pingInterval, h.writeTimeout)

	logger.Info("Client connected",
		logger.String("client_id", client.ID),
		logger.Bool("authenticated", client.Authenticated()))

	handler.HandleConnect(client)

	h.readLoop(client, handler)

	handler.HandleDisconnect(client)
	h.unregister(client)
	client.shutdown()

	logger.Info("Client disconnected", logger.String("client_id", client.ID))
	return nil
}

// authenticate extracts the optional bearer token from the handshake
// metadata: the Authorization header or, for browser clients that cannot
// set headers on the upgrade request, a token query parameter.
func (h *Hub) authenticate(c echo.Context) *models.UserClaims {
	token := ""
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token == "" {
		token = c.QueryParam("token")
	}
	if token == "" {
		return nil
	}

	claims, err := h.validator.Validate(token)
	if err != nil {
		// Invalid token: still admitted, identity stays unset
		logger.Warn("Handshake token validation failed", logger.Err(err))
		return nil
	}
	return claims
}

func (h *Hub) readLoop(client *Client, handler EventHandler) {
	client.conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(h.readTimeout))
		return nil
	})

	for {
		var msg models.WSMessage
		if err := client.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error",
					logger.String("client_id", client.ID),
					logger.Err(err))
			}
			return
		}
		client.conn.SetReadDeadline(time.Now().Add(h.readTimeout))

		if msg.Event == "" {
			client.SendError(constants.ErrorInvalidFormat, "Invalid message format")
			continue
		}
		handler.HandleMessage(client, msg)
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

// unregister removes the connection and releases all of its room
// memberships in one critical section, so a concurrent broadcast either
// sees the connection as a member or not at all.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, client.ID)
	for room := range client.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, client.ID)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	client.rooms = make(map[string]struct{})
}

// JoinRoom adds the connection to a room, creating the room on first join
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[room] = members
	}
	members[client.ID] = client
	client.rooms[room] = struct{}{}
}

// LeaveRoom removes the connection from a room; empty rooms are discarded
func (h *Hub) LeaveRoom(client *Client, room string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return false
	}
	if _, member := members[client.ID]; !member {
		return false
	}
	delete(members, client.ID)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
	delete(client.rooms, room)
	return true
}

// Broadcast sends an event to every currently open connection.
// Delivery is best-effort with no acknowledgement.
func (h *Hub) Broadcast(event string, data interface{}) {
	msg, err := newMessage(event, data)
	if err != nil {
		logger.Error("Failed to encode broadcast", logger.String("event", event), logger.Err(err))
		return
	}

	for _, client := range h.snapshotAll() {
		client.enqueue(msg)
	}
}

// BroadcastRoom sends an event to every member of a room, observing a
// consistent snapshot of the membership at the moment of iteration.
func (h *Hub) BroadcastRoom(room, event string, data interface{}) {
	msg, err := newMessage(event, data)
	if err != nil {
		logger.Error("Failed to encode room broadcast", logger.String("event", event), logger.Err(err))
		return
	}

	for _, client := range h.snapshotRoom(room) {
		client.enqueue(msg)
	}
}

// Unicast sends an event to exactly one connection
func (h *Hub) Unicast(clientID, event string, data interface{}) {
	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	client.Send(event, data)
}

// CloseClient kicks a connection from the server side
func (h *Hub) CloseClient(clientID string) {
	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()
	if ok {
		client.shutdown()
	}
}

// ClientCount returns the number of open connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize returns the current membership count of a room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) snapshotAll() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}

func (h *Hub) snapshotRoom(room string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	members := h.rooms[room]
	clients := make([]*Client, 0, len(members))
	for _, client := range members {
		clients = append(clients, client)
	}
	return clients
}
