package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/taskmate-api/internal/events"
	"github.com/phrazzld/taskmate-api/internal/redact"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Outgoing messages buffered per client before new ones are dropped.
	sendBufferSize = 16
)

// ErrHubClosed is returned by ServeWS after Close has been called.
var ErrHubClosed = errors.New("realtime hub is closed")

// Hub tracks websocket clients grouped into per-account rooms.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*client]struct{}
	clients map[*client]struct{}
	closed  bool

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// Ensure Hub can be registered with an event emitter.
var _ events.EventHandler = (*Hub)(nil)

// NewHub creates a hub that accepts upgrades from the given browser origins.
// Requests without an Origin header are always accepted.
func NewHub(logger *slog.Logger, allowedOrigins []string) *Hub {
	if logger == nil {
		logger = slog.Default()
	}

	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	h := &Hub{
		rooms:   make(map[string]map[*client]struct{}),
		clients: make(map[*client]struct{}),
		logger:  logger.With("component", "realtime_hub"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := origins[origin]
			return ok
		},
	}
	return h
}

// ServeWS upgrades the request and serves the connection for the given
// verified identity until the peer disconnects or the hub is closed.
// The identity is the only room the client may join.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, identity string) error {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return ErrHubClosed
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		return err
	}

	c := newClient(h, conn, identity)
	if !h.register(c) {
		c.close()
		_ = conn.Close()
		return ErrHubClosed
	}

	h.logger.Debug("websocket client connected",
		redact.EmailAttr("identity", identity),
		"remote_addr", r.RemoteAddr)

	go c.writePump()
	c.readPump()
	return nil
}

// HandleEvent implements events.EventHandler by notifying the owner's room.
func (h *Hub) HandleEvent(ctx context.Context, event *events.TaskChangedEvent) error {
	delivered := h.Publish(event.OwnerEmail, event.Name)
	h.logger.Debug("published task notification",
		"event_id", event.ID,
		redact.EmailAttr("room", event.OwnerEmail),
		"delivered", delivered)
	return nil
}

// Publish sends {"event": name} to every client in room and returns how many
// clients accepted the message. Clients with a full buffer are skipped.
func (h *Hub) Publish(room, name string) int {
	payload, err := json.Marshal(serverMessage{Event: name})
	if err != nil {
		h.logger.Error("failed to encode notification", "error", err, redact.EmailAttr("room", room))
		return 0
	}

	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range members {
		if c.enqueue(payload) {
			delivered++
		} else {
			h.logger.Warn("dropped notification for slow client",
				redact.EmailAttr("room", room),
				redact.EmailAttr("identity", c.identity))
		}
	}
	return delivered
}

// RoomSize returns the number of clients currently joined to room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new connections.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.rooms = make(map[string]map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}

	h.logger.Info("realtime hub closed", "disconnected_clients", len(clients))
	return nil
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	for room, members := range h.rooms {
		if _, ok := members[c]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	h.mu.Unlock()
	c.close()
}

// join adds c to room if room matches the client's verified identity.
func (h *Hub) join(c *client, room string) bool {
	if room == "" || room != c.identity {
		h.logger.Warn("rejected room join",
			redact.EmailAttr("identity", c.identity),
			redact.EmailAttr("requested_room", room))
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	return true
}
