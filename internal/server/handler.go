package server

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
	"github.com/DyLaNHurtado/mus-game-app/internal/room"
)

// Handler dispatches decoded frames to their operations.
type Handler struct {
	server *Server
}

// NewHandler creates the dispatcher.
func NewHandler(s *Server) *Handler {
	return &Handler{server: s}
}

// Handle routes one frame.
func (h *Handler) Handle(client *Client, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgPing:
		h.handlePing(client, msg)
	case protocol.MsgReconnect:
		h.handleReconnect(client, msg)

	case protocol.MsgCreateRoom:
		h.handleCreateRoom(client, msg)
	case protocol.MsgJoinRoom:
		h.handleJoinRoom(client, msg)
	case protocol.MsgLeaveRoom:
		h.server.rooms.LeaveRoom(client)
	case protocol.MsgGetRoomList:
		h.handleGetRoomList(client)

	case protocol.MsgAction:
		h.handleAction(client, msg)
	case protocol.MsgDiscard:
		h.handleDiscard(client, msg)
	case protocol.MsgGetState:
		h.handleGetState(client)

	case protocol.MsgGetLeaderboard:
		h.handleGetLeaderboard(client, msg)

	default:
		log.Printf("tipo de mensaje desconocido: %s", msg.Type)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

func (h *Handler) handlePing(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleReconnect reclaims an offline seat: the client adopts its old
// player ID and the room swaps the connection in.
func (h *Handler) handleReconnect(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.server.rooms.GetRoomByPlayerID(payload.PlayerID)
	if r == nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeRoomNotFound, "no hay partida que recuperar"))
		return
	}

	oldID := client.ID
	client.ID = payload.PlayerID

	h.server.clientsMu.Lock()
	delete(h.server.clients, oldID)
	h.server.clients[client.ID] = client
	h.server.clientsMu.Unlock()

	if err := r.Reconnect(client.ID, client); err != nil {
		h.sendError(client, err)
		return
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgReconnected, protocol.ConnectedPayload{
		PlayerID:   client.ID,
		PlayerName: client.Name,
	}))
}

func (h *Handler) handleCreateRoom(client *Client, msg *protocol.Message) {
	if payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg); err == nil && payload.PlayerName != "" {
		client.Name = payload.PlayerName
	}

	r, err := h.server.rooms.CreateRoom(client)
	if err != nil {
		h.sendError(client, err)
		return
	}
	infos := r.PlayerInfoList()
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: r.Code,
		Player:   infos[0],
	}))
}

func (h *Handler) handleJoinRoom(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	if payload.PlayerName != "" {
		client.Name = payload.PlayerName
	}

	r, err := h.server.rooms.JoinRoom(client, payload.RoomCode)
	if err != nil {
		h.sendError(client, err)
		return
	}

	infos := r.PlayerInfoList()
	var self protocol.PlayerInfo
	for _, info := range infos {
		if info.ID == client.ID {
			self = info
		}
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: r.Code,
		Player:   self,
		Players:  infos,
	}))
}

func (h *Handler) handleGetRoomList(client *Client) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomList, protocol.RoomListPayload{
		Rooms: h.server.rooms.GetRoomList(),
	}))
}

func (h *Handler) handleAction(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ActionPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	r := h.roomOf(client)
	if r == nil {
		return
	}
	r.HandleAction(client.ID, payload.Kind, payload.Amount)
}

func (h *Handler) handleDiscard(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.DiscardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	r := h.roomOf(client)
	if r == nil {
		return
	}
	r.HandleDiscard(client.ID, payload.Indices)
}

func (h *Handler) handleGetState(client *Client) {
	r := h.roomOf(client)
	if r == nil {
		return
	}
	r.SendState(client.ID)
}

func (h *Handler) handleGetLeaderboard(client *Client, msg *protocol.Message) {
	limit := 10
	if payload, err := protocol.ParsePayload[protocol.GetLeaderboardPayload](msg); err == nil && payload.Limit > 0 {
		limit = payload.Limit
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := h.server.leaderboard.GetLeaderboard(ctx, limit)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "clasificación no disponible"))
		return
	}

	out := make([]protocol.LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = protocol.LeaderboardEntry{
			Rank:       e.Rank,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			Score:      e.Score,
			Wins:       e.Wins,
			WinRate:    e.WinRate,
		}
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboard, protocol.LeaderboardPayload{Entries: out}))
}

func (h *Handler) roomOf(client *Client) *room.Room {
	code := client.GetRoom()
	if code == "" {
		h.sendError(client, apperrors.ErrNotInRoom)
		return nil
	}
	r := h.server.rooms.GetRoom(code)
	if r == nil {
		h.sendError(client, apperrors.ErrRoomNotFound)
		return nil
	}
	return r
}

func (h *Handler) sendError(client *Client, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
