package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/taskmate-api/internal/redact"
)

// client is a single websocket connection bound to a verified identity.
type client struct {
	hub      *Hub
	conn     *websocket.Conn
	identity string

	send      chan []byte
	mu        sync.Mutex
	done      bool
	closeOnce sync.Once
}

func newClient(h *Hub, conn *websocket.Conn, identity string) *client {
	return &client{
		hub:      h,
		conn:     conn,
		identity: identity,
		send:     make(chan []byte, sendBufferSize),
	}
}

// enqueue queues payload without blocking. It reports false when the buffer
// is full or the client is closing.
func (c *client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *client) reply(msg serverMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.enqueue(payload)
}

// close stops the write pump, which then closes the connection.
func (c *client) close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.done = true
		close(c.send)
		c.mu.Unlock()
	})
}

// readPump handles frames from the peer until the connection fails.
func (c *client) readPump() {
	defer c.hub.unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read failed", "error", err, redact.EmailAttr("identity", c.identity))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(serverMessage{Event: EventError, Message: MsgMalformedFrame})
			continue
		}

		switch msg.Event {
		case EventJoinRoom:
			if c.hub.join(c, msg.Room) {
				c.reply(serverMessage{Event: EventRoomJoined, Room: msg.Room})
			} else {
				c.reply(serverMessage{Event: EventError, Room: msg.Room, Message: MsgForbiddenRoom})
			}
		default:
			c.reply(serverMessage{Event: EventError, Message: MsgUnknownEvent})
		}
	}
}

// writePump writes queued messages and keepalive pings to the peer.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
