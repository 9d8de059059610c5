package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DyLaNHurtado/mus-game-app/internal/game/engine"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, mr
}

func TestRedisStore_SaveLoadRoom(t *testing.T) {
	t.Parallel()

	client, mr := newTestRedis(t)
	defer mr.Close()
	rs := NewRedisStore(client)
	ctx := context.Background()

	data := &RoomData{
		Code:   "MUS123",
		Status: "playing",
		Players: []PlayerData{
			{ID: "p0", Name: "Ana", Seat: 0, Team: 0, Connected: true},
			{ID: "p1", Name: "Bea", Seat: 1, Team: 1, Connected: true},
		},
		CreatedAt: time.Now().Unix(),
		Game:      &engine.View{ID: "MUS123", Phase: engine.PhaseGrande, HandNumber: 2},
	}
	require.NoError(t, rs.SaveRoom(ctx, data))

	loaded, err := rs.LoadRoom(ctx, "MUS123")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "MUS123", loaded.Code)
	assert.Equal(t, "playing", loaded.Status)
	assert.Len(t, loaded.Players, 2)
	require.NotNil(t, loaded.Game)
	assert.Equal(t, engine.PhaseGrande, loaded.Game.Phase)
	assert.Equal(t, 2, loaded.Game.HandNumber)
}

func TestRedisStore_LoadMissingRoom(t *testing.T) {
	t.Parallel()

	client, mr := newTestRedis(t)
	defer mr.Close()
	rs := NewRedisStore(client)

	loaded, err := rs.LoadRoom(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_DeleteRoom(t *testing.T) {
	t.Parallel()

	client, mr := newTestRedis(t)
	defer mr.Close()
	rs := NewRedisStore(client)
	ctx := context.Background()

	require.NoError(t, rs.SaveRoom(ctx, &RoomData{Code: "MUS456"}))
	require.NoError(t, rs.DeleteRoom(ctx, "MUS456"))

	loaded, err := rs.LoadRoom(ctx, "MUS456")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_GetAllRoomCodes(t *testing.T) {
	t.Parallel()

	client, mr := newTestRedis(t)
	defer mr.Close()
	rs := NewRedisStore(client)
	ctx := context.Background()

	require.NoError(t, rs.SaveRoom(ctx, &RoomData{Code: "AAA111"}))
	require.NoError(t, rs.SaveRoom(ctx, &RoomData{Code: "BBB222"}))

	codes, err := rs.GetAllRoomCodes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAA111", "BBB222"}, codes)
}

func TestLeaderboard_RecordMatchResult_NewPlayer(t *testing.T) {
	t.Parallel()

	client, mr := newTestRedis(t)
	defer mr.Close()
	lm := NewLeaderboardManager(client)
	ctx := context.Background()

	// Winner with 40 tantos: 20 flat + 40 tantos.
	require.NoError(t, lm.RecordMatchResult(ctx, "p1", "Ana", true, 40))

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.TotalMatches)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 40, stats.TantosScored)
	assert.Equal(t, 60, stats.Score)
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestLeaderboard_ScoreNeverNegative(t *testing.T) {
	t.Parallel()

	client, mr := newTestRedis(t)
	defer mr.Close()
	lm := NewLeaderboardManager(client)
	ctx := context.Background()

	require.NoError(t, lm.RecordMatchResult(ctx, "p1", "Ana", false, 12))

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 0, stats.Score)
	assert.Equal(t, -1, stats.CurrentStreak)
	assert.Equal(t, 12, stats.TantosScored)
}

func TestLeaderboard_StreakBonus(t *testing.T) {
	t.Parallel()

	client, mr := newTestRedis(t)
	defer mr.Close()
	lm := NewLeaderboardManager(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, lm.RecordMatchResult(ctx, "p1", "Ana", true, 40))
	}

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.MaxWinStreak)
	// Two plain wins plus one with the 3-streak bonus.
	assert.Equal(t, 60+60+65, stats.Score)
}

func TestLeaderboard_RankingOrder(t *testing.T) {
	t.Parallel()

	client, mr := newTestRedis(t)
	defer mr.Close()
	lm := NewLeaderboardManager(client)
	ctx := context.Background()

	require.NoError(t, lm.RecordMatchResult(ctx, "p1", "Ana", true, 40))
	require.NoError(t, lm.RecordMatchResult(ctx, "p2", "Bea", true, 40))
	require.NoError(t, lm.RecordMatchResult(ctx, "p2", "Bea", true, 40))
	require.NoError(t, lm.RecordMatchResult(ctx, "p3", "Carlos", false, 5))

	entries, err := lm.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "p2", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "p1", entries[1].PlayerID)
	assert.InDelta(t, 100.0, entries[0].WinRate, 0.01)

	rank, err := lm.GetPlayerRank(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rank)

	rank, err = lm.GetPlayerRank(ctx, "desconocido")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rank)
}
