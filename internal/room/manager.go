package room

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
	"github.com/DyLaNHurtado/mus-game-app/internal/config"
	"github.com/DyLaNHurtado/mus-game-app/internal/game/engine"
	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
	"github.com/DyLaNHurtado/mus-game-app/internal/storage"
)

const (
	roomCodeLength = 6
	roomCodeChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Manager owns the live room registry. The Redis store and leaderboard
// are injected; both may be nil in tests.
type Manager struct {
	gameCfg     config.GameConfig
	store       *storage.RedisStore
	leaderboard *storage.LeaderboardManager

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewManager creates the registry and starts the idle-room sweeper.
func NewManager(gameCfg config.GameConfig, store *storage.RedisStore, lb *storage.LeaderboardManager) *Manager {
	m := &Manager{
		gameCfg:     gameCfg,
		store:       store,
		leaderboard: lb,
		rooms:       make(map[string]*Room),
	}
	go m.cleanupLoop()
	return m
}

// CreateRoom opens a new room with the creator already seated.
func (m *Manager) CreateRoom(client ClientConn) (*Room, error) {
	m.mu.Lock()
	code := m.generateRoomCode()
	r := newRoom(code, m.gameCfg, m.store, m.leaderboard)
	m.rooms[code] = r
	m.mu.Unlock()

	if _, err := r.AddPlayer(client); err != nil {
		m.mu.Lock()
		delete(m.rooms, code)
		m.mu.Unlock()
		return nil, err
	}

	log.Printf("🏠 sala %s creada por %s", code, client.GetName())
	return r, nil
}

// JoinRoom seats a client in an existing room.
func (m *Manager) JoinRoom(client ClientConn, code string) (*Room, error) {
	m.mu.RLock()
	r, exists := m.rooms[code]
	m.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}
	if _, err := r.AddPlayer(client); err != nil {
		return nil, err
	}
	return r, nil
}

// LeaveRoom removes a client from their room, dissolving it if empty.
func (m *Manager) LeaveRoom(client ClientConn) {
	code := client.GetRoom()
	if code == "" {
		return
	}
	m.mu.RLock()
	r, exists := m.rooms[code]
	m.mu.RUnlock()
	if !exists {
		return
	}

	if empty := r.RemovePlayer(client.GetID()); empty {
		m.deleteRoom(code)
	}
	client.SetRoom("")
}

// GetRoom returns a room by code, or nil.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// GetRoomByPlayerID finds the room a player is seated in, or nil.
func (m *Manager) GetRoomByPlayerID(playerID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		if r.HasPlayer(playerID) {
			return r
		}
	}
	return nil
}

// GetRoomList returns joinable rooms (waiting and not full).
func (m *Manager) GetRoomList() []protocol.RoomListItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rooms []protocol.RoomListItem
	for code, r := range m.rooms {
		if r.Status() == StatusWaiting && r.PlayerCount() < engine.NumSeats {
			rooms = append(rooms, protocol.RoomListItem{
				RoomCode:    code,
				PlayerCount: r.PlayerCount(),
				MaxPlayers:  engine.NumSeats,
			})
		}
	}
	return rooms
}

// GetActiveGamesCount counts rooms with a match in progress.
func (m *Manager) GetActiveGamesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, r := range m.rooms {
		if r.Status() == StatusPlaying {
			count++
		}
	}
	return count
}

func (m *Manager) deleteRoom(code string) {
	m.mu.Lock()
	delete(m.rooms, code)
	m.mu.Unlock()

	if m.store != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = m.store.DeleteRoom(ctx, code)
		}()
	}
	log.Printf("🏠 sala %s disuelta", code)
}

// generateRoomCode returns a fresh unique code. Caller holds mu.
func (m *Manager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
		}
		if _, exists := m.rooms[string(code)]; !exists {
			return string(code)
		}
	}
}

// cleanupLoop sweeps stale rooms once a minute.
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanup()
	}
}

// cleanup drops unfilled rooms past the wait timeout and finished rooms.
func (m *Manager) cleanup() {
	m.mu.Lock()
	now := time.Now()
	var expired []string
	for code, r := range m.rooms {
		switch r.Status() {
		case StatusWaiting:
			if now.Sub(r.CreatedAt) > m.gameCfg.RoomTimeoutDuration() {
				expired = append(expired, code)
			}
		case StatusFinished:
			expired = append(expired, code)
		}
	}
	for _, code := range expired {
		delete(m.rooms, code)
	}
	m.mu.Unlock()

	for _, code := range expired {
		log.Printf("🧹 sala %s caducada", code)
		if m.store != nil {
			go func(c string) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = m.store.DeleteRoom(ctx, c)
			}(code)
		}
	}
}
