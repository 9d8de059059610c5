package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
)

const (
	writeWait = 10 * time.Second

	// pongWait bounds how long a silent peer is kept around.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096

	sendBufferSize = 256
)

// Client is one WebSocket connection. It satisfies room.ClientConn.
type Client struct {
	ID   string
	Name string

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	roomID string
	closed bool
}

// NewClient wraps a fresh connection with a generated identity.
func NewClient(s *Server, conn *websocket.Conn) *Client {
	id := uuid.New().String()
	return &Client{
		ID:     id,
		Name:   "Jugador-" + id[:8],
		server: s,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

// GetID returns the player ID.
func (c *Client) GetID() string { return c.ID }

// GetName returns the display name.
func (c *Client) GetName() string { return c.Name }

// GetRoom returns the code of the room the client sits in, if any.
func (c *Client) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

// SetRoom records the room the client sits in.
func (c *Client) SetRoom(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = code
}

// ReadPump reads frames until the connection drops and dispatches them.
func (c *Client) ReadPump() {
	defer func() {
		c.handleDisconnect()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error de lectura: %v", err)
			}
			break
		}

		msg, err := protocol.Decode(message)
		if err != nil {
			log.Printf("mensaje malformado de %s: %v", c.ID, err)
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}
		c.server.handler.Handle(c, msg)
	}
}

// WritePump drains the send queue and keeps the connection pinged.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// SendMessage queues a frame for delivery; a stalled peer is dropped.
func (c *Client) SendMessage(msg *protocol.Message) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	c.mu.RUnlock()

	data, err := msg.Encode()
	if err != nil {
		log.Printf("error codificando mensaje: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("búfer de envío lleno para %s, cerrando", c.ID)
		c.Close()
	}
}

// handleDisconnect marks the seat offline but keeps it reserved for the
// reconnection grace period.
func (c *Client) handleDisconnect() {
	if roomCode := c.GetRoom(); roomCode != "" {
		if r := c.server.rooms.GetRoom(roomCode); r != nil {
			r.MarkOffline(c.ID)
		}
	}
	c.server.unregisterClient(c)
}

// Close shuts the send queue down once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
