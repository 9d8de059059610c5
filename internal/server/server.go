// Package server is the WebSocket front door: it upgrades connections,
// tracks online clients and dispatches protocol frames to the rooms.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/DyLaNHurtado/mus-game-app/internal/config"
	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
	"github.com/DyLaNHurtado/mus-game-app/internal/room"
	"github.com/DyLaNHurtado/mus-game-app/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server owns the listener, the client registry and the room manager.
type Server struct {
	config      *config.Config
	redis       *redis.Client
	store       *storage.RedisStore
	leaderboard *storage.LeaderboardManager
	rooms       *room.Manager
	handler     *Handler

	clientsMu sync.RWMutex
	clients   map[string]*Client

	httpServer *http.Server
}

// NewServer wires the server against Redis. Redis being down is fatal:
// the leaderboard and snapshots depend on it.
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conexión a redis: %w", err)
	}

	s := &Server{
		config:      cfg,
		redis:       rdb,
		store:       storage.NewRedisStore(rdb),
		leaderboard: storage.NewLeaderboardManager(rdb),
		clients:     make(map[string]*Client),
	}
	s.rooms = room.NewManager(cfg.Game, s.store, s.leaderboard)
	s.handler = NewHandler(s)

	return s, nil
}

// Start blocks serving /ws and /health.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("🚀 servidor de mus en ws://%s/ws", addr)
	return s.httpServer.ListenAndServe()
}

// routes builds the HTTP mux; tests mount it on httptest servers.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("fallo al actualizar a WebSocket: %v", err)
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   client.ID,
		PlayerName: client.Name,
	}))

	log.Printf("✅ jugador %s (%s) conectado", client.Name, client.ID)

	go client.ReadPump()
	go client.WritePump()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		log.Printf("❌ jugador %s (%s) desconectado", client.Name, client.ID)
	}
}

// GetOnlineCount returns the number of live connections.
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Shutdown stops the listener and closes every connection.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	_ = s.redis.Close()
	log.Println("servidor cerrado")
	return err
}
