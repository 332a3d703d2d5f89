// Package room is the websocket hub through which interview events reach
// participants. It stands in for the voice platform's data channel.
package room

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
}

type Room struct {
	Name    string
	Clients map[uuid.UUID]*Client
	Mu      sync.Mutex
}

// Hub tracks rooms and their connected clients.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*Room
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{rooms: make(map[string]*Room), log: log}
}

func (h *Hub) room(name string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[name]
	if !ok {
		r = &Room{Name: name, Clients: make(map[uuid.UUID]*Client)}
		h.rooms[name] = r
	}
	return r
}

// Join registers a connection in the named room, creating the room if needed.
func (h *Hub) Join(roomName string, conn *websocket.Conn) *Client {
	r := h.room(roomName)
	client := &Client{ID: uuid.New(), Conn: conn}

	r.Mu.Lock()
	r.Clients[client.ID] = client
	r.Mu.Unlock()

	h.log.Info("client joined room", zap.String("room", roomName), zap.String("client", client.ID.String()))
	return client
}

func (h *Hub) Leave(roomName string, client *Client) {
	h.mu.Lock()
	r, ok := h.rooms[roomName]
	h.mu.Unlock()
	if !ok {
		return
	}

	r.Mu.Lock()
	delete(r.Clients, client.ID)
	empty := len(r.Clients) == 0
	r.Mu.Unlock()

	if empty {
		h.mu.Lock()
		delete(h.rooms, roomName)
		h.mu.Unlock()
	}
	h.log.Info("client left room", zap.String("room", roomName))
}

// Broadcast sends the message as JSON to every client in the room. Each send
// is contained: a failed write is logged and never propagated to the caller.
func (h *Hub) Broadcast(roomName string, message any) {
	h.mu.Lock()
	r, ok := h.rooms[roomName]
	h.mu.Unlock()
	if !ok {
		return
	}

	r.Mu.Lock()
	clients := make([]*Client, 0, len(r.Clients))
	for _, c := range r.Clients {
		clients = append(clients, c)
	}
	r.Mu.Unlock()

	for _, c := range clients {
		if c.Conn == nil {
			continue
		}
		if err := c.Conn.WriteJSON(message); err != nil {
			h.log.Warn("broadcast write failed",
				zap.String("room", roomName),
				zap.String("client", c.ID.String()),
				zap.Error(err))
		}
	}
}
