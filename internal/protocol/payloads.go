package protocol

import "github.com/DyLaNHurtado/mus-game-app/internal/game/card"

// --- Client request payloads ---

// PingPayload is the heartbeat request.
type PingPayload struct {
	Timestamp int64 `json:"timestamp"`
}

// ReconnectPayload re-associates a player with a new connection.
type ReconnectPayload struct {
	PlayerID string `json:"player_id"`
}

// CreateRoomPayload carries the creator's display name.
type CreateRoomPayload struct {
	PlayerName string `json:"player_name,omitempty"`
}

// JoinRoomPayload joins an existing room by code.
type JoinRoomPayload struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name,omitempty"`
}

// ActionPayload is a raw player action; the engine's parser validates it.
type ActionPayload struct {
	Kind   string `json:"kind"`
	Amount int    `json:"amount,omitempty"`
}

// DiscardPayload lists the hand indices to discard during mus.
type DiscardPayload struct {
	Indices []int `json:"indices"`
}

// GetLeaderboardPayload requests the top player entries.
type GetLeaderboardPayload struct {
	Limit int `json:"limit,omitempty"`
}

// --- Server response payloads ---

// PongPayload is the heartbeat response.
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// ConnectedPayload confirms a new connection.
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerInfo is the public view of a seated player.
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"`
	Team       int    `json:"team"`
	Connected  bool   `json:"connected"`
	HandSize   int    `json:"hand_size"`
	LastAction string `json:"last_action,omitempty"`
}

// RoomCreatedPayload confirms room creation.
type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	Player   PlayerInfo `json:"player"`
}

// RoomJoinedPayload confirms joining a room.
type RoomJoinedPayload struct {
	RoomCode string       `json:"room_code"`
	Player   PlayerInfo   `json:"player"`
	Players  []PlayerInfo `json:"players"`
}

// PlayerJoinedPayload tells the room somebody sat down.
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload tells the room somebody left.
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerOfflinePayload tells the room a seat lost its connection.
type PlayerOfflinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Timeout    int    `json:"timeout"` // reconnection grace, seconds
}

// PlayerOnlinePayload tells the room a seat reconnected.
type PlayerOnlinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// RoomListItem summarizes one joinable room.
type RoomListItem struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// RoomListPayload is the joinable-room listing.
type RoomListPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// GameStartPayload announces the start of a match.
type GameStartPayload struct {
	Players []PlayerInfo `json:"players"`
	Mano    int          `json:"mano"`
}

// DealCardsPayload delivers a seat's private hand.
type DealCardsPayload struct {
	Cards      []card.Card `json:"cards"`
	HandNumber int         `json:"hand_number"`
}

// ActionAppliedPayload broadcasts an accepted action and the table state
// that follows it.
type ActionAppliedPayload struct {
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
	Kind     string `json:"kind"`
	Amount   int    `json:"amount,omitempty"`
	Message  string `json:"message"`
	Phase    string `json:"phase"`
	Turn     int    `json:"turn"`
	Stake    int    `json:"stake"`
}

// PhaseCompletePayload broadcasts a resolved lance.
type PhaseCompletePayload struct {
	Phase         string `json:"phase"`
	PointsAwarded int    `json:"points_awarded"`
	WinningTeam   *int   `json:"winning_team,omitempty"`
	Scores        [2]int `json:"scores"`
	NextPhase     string `json:"next_phase"`
}

// SeatEvaluation is one seat's lance summary, revealed at counting.
type SeatEvaluation struct {
	Seat     int         `json:"seat"`
	PlayerID string      `json:"player_id"`
	Team     int         `json:"team"`
	Hand     []card.Card `json:"hand"`
	Best     string      `json:"best"`
	Points   int         `json:"points"`
	HasJuego bool        `json:"has_juego"`
	Pares    string      `json:"pares"`
}

// HandCompletePayload closes a hand and reveals everybody's cards.
type HandCompletePayload struct {
	HandNumber  int              `json:"hand_number"`
	Scores      [2]int           `json:"scores"`
	Evaluations []SeatEvaluation `json:"evaluations"`
}

// GameOverPayload announces the match winner.
type GameOverPayload struct {
	WinningTeam int    `json:"winning_team"`
	Scores      [2]int `json:"scores"`
}

// LeaderboardEntry is one row of the leaderboard.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardPayload is the leaderboard response.
type LeaderboardPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// ErrorPayload carries an error frame.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
