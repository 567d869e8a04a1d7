package live

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	sendBufferSize = 256
)

const MessageLeaderboardUpdated = "LEADERBOARD_UPDATED"

// Message is the JSON envelope broadcast to room subscribers.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// GroupRoom names the hub room carrying one group's live updates.
func GroupRoom(groupID int) string {
	return fmt.Sprintf("group_%d", groupID)
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string

	mu     sync.Mutex
	closed bool
}

// Hub fans messages out to websocket clients grouped into rooms. Run must be
// started exactly once before clients are registered.
type Hub struct {
	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	rooms  map[string]map[*Client]bool
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.logger.Debug("client registered",
				slog.String("room", client.room),
				slog.Int("room_size", len(h.rooms[client.room])))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, found := clients[client]; found {
					client.close()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom marshals the message once and queues it for every client
// in the room. Slow clients are skipped rather than blocking the broadcast.
func (h *Hub) BroadcastToRoom(roomID string, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message",
			slog.String("room", roomID), slog.Any("error", err))
		return
	}

	for client := range clients {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.send <- payload:
			default:
				h.logger.Warn("dropping message for slow client", slog.String("room", roomID))
			}
		}
		client.mu.Unlock()
	}
}

// Subscribe attaches an upgraded connection to a room and starts its pumps.
func (h *Hub) Subscribe(conn *websocket.Conn, room string) {
	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		room: room,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

// readPump discards inbound frames; the protocol is server→client only.
// It exists to run the pong handler and detect disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
