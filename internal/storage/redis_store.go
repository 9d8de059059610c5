// Package storage persists advisory room snapshots and the player
// leaderboard in Redis. Snapshots let a restarted server show what was
// in flight; they are not a recovery mechanism.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DyLaNHurtado/mus-game-app/internal/game/engine"
)

const (
	roomKeyPrefix = "room:"

	// Rooms expire on their own if the server never cleans them up.
	roomExpiration = 2 * time.Hour
)

// PlayerData is the persisted slice of one seated player.
type PlayerData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Seat      int    `json:"seat"`
	Team      int    `json:"team"`
	Connected bool   `json:"connected"`
}

// RoomData is the serialized form of a room.
type RoomData struct {
	Code      string       `json:"code"`
	Status    string       `json:"status"`
	Players   []PlayerData `json:"players"`
	CreatedAt int64        `json:"created_at"`
	Game      *engine.View `json:"game,omitempty"`
}

// RedisStore persists room snapshots.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveRoom writes a room snapshot with the standard expiration.
func (rs *RedisStore) SaveRoom(ctx context.Context, data *RoomData) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("serializar sala: %w", err)
	}
	key := roomKeyPrefix + data.Code
	return rs.client.Set(ctx, key, jsonData, roomExpiration).Err()
}

// LoadRoom reads a room snapshot. A missing room returns (nil, nil).
func (rs *RedisStore) LoadRoom(ctx context.Context, code string) (*RoomData, error) {
	key := roomKeyPrefix + code
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("deserializar sala: %w", err)
	}
	return &roomData, nil
}

// DeleteRoom removes a room snapshot.
func (rs *RedisStore) DeleteRoom(ctx context.Context, code string) error {
	return rs.client.Del(ctx, roomKeyPrefix+code).Err()
}

// GetAllRoomCodes lists every persisted room code.
func (rs *RedisStore) GetAllRoomCodes(ctx context.Context) ([]string, error) {
	keys, err := rs.client.Keys(ctx, roomKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}
	codes := make([]string, len(keys))
	for i, key := range keys {
		codes[i] = key[len(roomKeyPrefix):]
	}
	return codes, nil
}

// SetRoomExpiration overrides a room's TTL.
func (rs *RedisStore) SetRoomExpiration(ctx context.Context, code string, expiration time.Duration) error {
	return rs.client.Expire(ctx, roomKeyPrefix+code, expiration).Err()
}
