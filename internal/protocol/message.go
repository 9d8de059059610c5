package protocol

import "encoding/json"

// Message is the wire envelope for every frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType identifies a frame.
type MessageType string

// Client → server message types
const (
	MsgPing      MessageType = "ping"
	MsgReconnect MessageType = "reconnect"

	MsgCreateRoom  MessageType = "create_room"
	MsgJoinRoom    MessageType = "join_room"
	MsgLeaveRoom   MessageType = "leave_room"
	MsgGetRoomList MessageType = "get_room_list"

	MsgAction   MessageType = "action"    // mus/no-mus/paso/envido/ordago/acepto/rechazo
	MsgDiscard  MessageType = "discard"   // discard card indices during mus
	MsgGetState MessageType = "get_state" // request a redacted snapshot

	MsgGetLeaderboard MessageType = "get_leaderboard"
)

// Server → client message types
const (
	MsgPong          MessageType = "pong"
	MsgConnected     MessageType = "connected"
	MsgReconnected   MessageType = "reconnected"
	MsgPlayerOffline MessageType = "player_offline"
	MsgPlayerOnline  MessageType = "player_online"

	MsgRoomCreated  MessageType = "room_created"
	MsgRoomJoined   MessageType = "room_joined"
	MsgPlayerJoined MessageType = "player_joined"
	MsgPlayerLeft   MessageType = "player_left"
	MsgRoomList     MessageType = "room_list"

	MsgGameStart     MessageType = "game_start"
	MsgDealCards     MessageType = "deal_cards"
	MsgActionApplied MessageType = "action_applied"
	MsgPhaseComplete MessageType = "phase_complete"
	MsgHandComplete  MessageType = "hand_complete"
	MsgGameOver      MessageType = "game_over"
	MsgGameState     MessageType = "game_state"

	MsgLeaderboard MessageType = "leaderboard"

	MsgError MessageType = "error"
)
