//go:build !production

// Package testutil provides client fakes shared by the room and server
// tests.
package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
)

// MockClient is a testify mock of room.ClientConn.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetRoom(roomCode string) {
	m.Called(roomCode)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient records every frame it is sent, for tests that inspect
// traffic rather than assert call patterns. Safe for concurrent sends,
// since room timers deliver from their own goroutines.
type SimpleClient struct {
	ID       string
	Name     string
	RoomCode string

	mu       sync.Mutex
	messages []*protocol.Message
}

func (c *SimpleClient) GetID() string       { return c.ID }
func (c *SimpleClient) GetName() string     { return c.Name }
func (c *SimpleClient) GetRoom() string     { return c.RoomCode }
func (c *SimpleClient) SetRoom(code string) { c.RoomCode = code }
func (c *SimpleClient) Close()              {}

func (c *SimpleClient) SendMessage(msg *protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of everything received so far.
func (c *SimpleClient) Messages() []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*protocol.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastOfType returns the most recent frame of the given type, or nil.
func (c *SimpleClient) LastOfType(t protocol.MessageType) *protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Type == t {
			return c.messages[i]
		}
	}
	return nil
}

// CountOfType counts received frames of the given type.
func (c *SimpleClient) CountOfType(t protocol.MessageType) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range c.messages {
		if m.Type == t {
			n++
		}
	}
	return n
}
