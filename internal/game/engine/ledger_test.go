package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
)

func TestLedgerAccumulates(t *testing.T) {
	t.Parallel()
	l := NewLedger(40)

	require.NoError(t, l.AddPoints(TeamA, 3, "grande", PhaseGrande))
	require.NoError(t, l.AddPoints(TeamB, 5, "juego", PhaseJuego))
	require.NoError(t, l.AddPoints(TeamA, 2, "pares", PhasePares))

	assert.Equal(t, [2]int{5, 5}, l.Scores())
	assert.False(t, l.Finished())

	_, leading := l.Leading()
	assert.False(t, leading)
	assert.Equal(t, 0, l.Difference())
	assert.Equal(t, 35, l.PointsToWin(TeamA))
}

func TestLedgerRejectsNegative(t *testing.T) {
	t.Parallel()
	l := NewLedger(40)

	assert.ErrorIs(t, l.AddPoints(TeamA, -1, "", PhaseGrande), apperrors.ErrNegativePoints)
	assert.Equal(t, [2]int{0, 0}, l.Scores())
}

func TestLedgerZeroPointsNotRecorded(t *testing.T) {
	t.Parallel()
	l := NewLedger(40)

	require.NoError(t, l.AddPoints(TeamA, 0, "nadie puntúa", PhasePares))
	assert.Empty(t, l.Recent(10))
}

func TestLedgerFinishesOnce(t *testing.T) {
	t.Parallel()
	l := NewLedger(10)

	require.NoError(t, l.AddPoints(TeamB, 12, "órdago", PhaseGrande))
	assert.True(t, l.Finished())
	winner, done := l.Winner()
	assert.True(t, done)
	assert.Equal(t, TeamB, winner)

	assert.ErrorIs(t, l.AddPoints(TeamA, 1, "", PhaseChica), apperrors.ErrRoomFinished)
	assert.Equal(t, [2]int{0, 12}, l.Scores())
	assert.Equal(t, 0, l.PointsToWin(TeamB))
}

func TestLedgerHistory(t *testing.T) {
	t.Parallel()
	l := NewLedger(40)

	for i := 0; i < 5; i++ {
		require.NoError(t, l.AddPoints(TeamA, 1, "paso", PhaseGrande))
	}
	recent := l.Recent(3)
	assert.Len(t, recent, 3)
	assert.Len(t, l.Recent(100), 5)
}

func TestSeatTeamsAndDistance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TeamA, Seat(0).Team())
	assert.Equal(t, TeamB, Seat(1).Team())
	assert.Equal(t, TeamA, Seat(2).Team())
	assert.Equal(t, TeamB, Seat(3).Team())
	assert.Equal(t, TeamB, TeamA.Opponent())
	assert.Equal(t, TeamA, TeamB.Opponent())

	assert.Equal(t, Seat(0), Seat(3).Next())
	assert.False(t, Seat(4).Valid())
	assert.False(t, Seat(-1).Valid())

	// Distance from the mano: the mano itself is the farthest candidate.
	mano := Seat(2)
	assert.Equal(t, 1, Seat(3).DistanceFrom(mano))
	assert.Equal(t, 2, Seat(0).DistanceFrom(mano))
	assert.Equal(t, 3, Seat(1).DistanceFrom(mano))
	assert.Equal(t, 4, mano.DistanceFrom(mano))
}
