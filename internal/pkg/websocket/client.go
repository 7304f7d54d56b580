package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ringdesk/callhub/internal/pkg/constants"
	"github.com/ringdesk/callhub/internal/pkg/logger"
	"github.com/ringdesk/callhub/internal/pkg/models"
)

// Client represents one live streaming session. Its identity is fixed at
// connect time: a new credential requires a new connection.
type Client struct {
	ID     string
	claims *models.UserClaims

	conn  *websocket.Conn
	send  chan models.WSMessage
	done  chan struct{}
	once  sync.Once
	rooms map[string]struct{} // guarded by the hub mutex
}

func newClient(id string, claims *models.UserClaims, conn *websocket.Conn, sendBuffer int) *Client {
	return &Client{
		ID:     id,
		claims: claims,
		conn:   conn,
		send:   make(chan models.WSMessage, sendBuffer),
		done:   make(chan struct{}),
		rooms:  make(map[string]struct{}),
	}
}

// Claims returns the identity presented at connect time, or nil for an
// anonymous connection.
func (c *Client) Claims() *models.UserClaims {
	return c.claims
}

// Authenticated reports whether the connection presented a valid credential
func (c *Client) Authenticated() bool {
	return c.claims != nil
}

// Done is closed when the connection enters its terminal state
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Send queues a message for delivery to this client. Delivery is
// best-effort: messages to a closed or saturated connection are dropped.
func (c *Client) Send(event string, data interface{}) {
	msg, err := newMessage(event, data)
	if err != nil {
		logger.Error("Failed to encode outbound message",
			logger.String("event", event),
			logger.Err(err))
		return
	}
	c.enqueue(msg)
}

// SendError reports a per-connection failure back to the originating
// client only.
func (c *Client) SendError(code, message string) {
	c.Send(constants.EventError, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

func (c *Client) enqueue(msg models.WSMessage) {
	select {
	case c.send <- msg:
	case <-c.done:
	default:
		logger.Warn("Dropping message for slow client",
			logger.String("client_id", c.ID),
			logger.String("event", msg.Event))
	}
}

// shutdown moves the connection to its terminal state. Safe to call from
// any goroutine, any number of times.
func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

// writePump is the single writer for the connection; it preserves send
// order and emits keepalive pings.
func (c *Client) writePump(pingInterval, writeTimeout time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.shutdown()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown()
				return
			}
		case <-c.done:
			return
		}
	}
}

func newMessage(event string, data interface{}) (models.WSMessage, error) {
	msg := models.WSMessage{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return models.WSMessage{}, err
		}
		msg.Data = raw
	}
	return msg, nil
}
