package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
	"github.com/DyLaNHurtado/mus-game-app/internal/game/card"
)

func hand(ranks ...card.Rank) []card.Card {
	cards := make([]card.Card, len(ranks))
	for i, r := range ranks {
		cards[i] = card.Card{Suit: card.Suits[i%len(card.Suits)], Rank: r}
	}
	return cards
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	seats := [NumSeats]SeatInfo{
		{ID: "p0", Name: "Ana"},
		{ID: "p1", Name: "Bea"},
		{ID: "p2", Name: "Carlos"},
		{ID: "p3", Name: "David"},
	}
	g, err := New("MUS123", seats, DefaultTarget)
	require.NoError(t, err)
	return g
}

// setHands overwrites every seat's hand with deterministic cards.
func setHands(g *Game, hands [NumSeats][]card.Card) {
	for i := range g.players {
		g.players[i].Hand = hands[i]
	}
}

// plainHands gives every seat a hand with no pares and no juego, with
// distinct grande bests so lances resolve without ties:
// seat 0 wins grande (Rey) and punto (23), seat 1 wins chica (As at
// distance 1 from the mano).
func plainHands() [NumSeats][]card.Card {
	return [NumSeats][]card.Card{
		hand(card.Rey, card.Siete, card.Cinco, card.As),
		hand(card.Caballo, card.Seis, card.Cuatro, card.As),
		hand(card.Sota, card.Seis, card.Cinco, card.Dos),
		hand(card.Siete, card.Seis, card.Cinco, card.Cuatro),
	}
}

func TestNewGameOpensMus(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	assert.Equal(t, PhaseMus, g.Phase())
	assert.Equal(t, Seat(0), g.Mano())
	assert.Equal(t, Seat(0), g.Turn())
	assert.Equal(t, 1, g.HandNumber())
	for s := Seat(0); s < NumSeats; s++ {
		p, err := g.Player(s)
		require.NoError(t, err)
		assert.Len(t, p.Hand, card.HandSize)
	}
}

func TestManoRotation(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	assert.Equal(t, Seat(0), g.Mano())
	for want := 1; want < 6; want++ {
		require.NoError(t, g.StartNewHand())
		assert.Equal(t, Seat(want%NumSeats), g.Mano())
		assert.Equal(t, PhaseMus, g.Phase())
		assert.Equal(t, g.Mano(), g.Turn())
	}
}

func TestNoMusCutsToGrande(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	// Mus turn order is relaxed: any seat may cut.
	out := g.SubmitAction(2, NoMus{})
	require.True(t, out.OK)
	assert.True(t, out.PhaseComplete)
	assert.Equal(t, PhaseGrande, g.Phase())
	assert.Equal(t, g.Mano(), g.Turn())
}

func TestAllMusOpensDiscardRound(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	for s := Seat(0); s < 3; s++ {
		out := g.SubmitAction(s, Mus{})
		require.True(t, out.OK)
		assert.False(t, g.DiscardStep())
	}
	out := g.SubmitAction(3, Mus{})
	require.True(t, out.OK)
	assert.True(t, g.DiscardStep())

	// During the discard round mus/no-mus are no longer legal.
	out = g.SubmitAction(0, NoMus{})
	assert.ErrorIs(t, out.Err, apperrors.ErrInvalidPhaseAction)
}

func TestDiscardRoundSkipsDisconnected(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	require.NoError(t, g.SetConnected(1, false))

	g.SubmitAction(0, Mus{})
	g.SubmitAction(2, Mus{})
	out := g.SubmitAction(3, Mus{})
	require.True(t, out.OK)
	assert.True(t, g.DiscardStep())
}

func TestDiscardFlow(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	for s := Seat(0); s < NumSeats; s++ {
		require.True(t, g.SubmitAction(s, Mus{}).OK)
	}

	// Each seat replaces some cards; hands stay at four.
	discards := [NumSeats][]int{{0}, {0, 1}, {1, 2, 3}, {0, 1, 2, 3}}
	for s := Seat(0); s < NumSeats; s++ {
		out := g.SubmitDiscard(s, discards[s])
		require.True(t, out.OK, "seat %d: %v", s, out.Err)
		p, _ := g.Player(s)
		assert.Len(t, p.Hand, card.HandSize)
		if s < 3 {
			assert.Equal(t, PhaseMus, g.Phase())
		}
	}
	assert.Equal(t, PhaseGrande, g.Phase())
	assert.Equal(t, g.Mano(), g.Turn())
}

func TestDiscardValidation(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	// Not in the discard round yet.
	out := g.SubmitDiscard(0, []int{0})
	assert.ErrorIs(t, out.Err, apperrors.ErrInvalidPhaseAction)

	for s := Seat(0); s < NumSeats; s++ {
		g.SubmitAction(s, Mus{})
	}

	for name, indices := range map[string][]int{
		"empty":        {},
		"out of range": {4},
		"negative":     {-1},
		"duplicate":    {1, 1},
		"too many":     {0, 1, 2, 3, 0},
	} {
		out := g.SubmitDiscard(0, indices)
		assert.ErrorIs(t, out.Err, apperrors.ErrInvalidDiscard, name)
	}

	require.True(t, g.SubmitDiscard(0, []int{0}).OK)
	out = g.SubmitDiscard(0, []int{1})
	assert.ErrorIs(t, out.Err, apperrors.ErrInvalidDiscard, "double discard")
}

func TestBettingTurnOrder(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)

	// Only the turn seat may act.
	out := g.SubmitAction(1, Paso{})
	assert.ErrorIs(t, out.Err, apperrors.ErrInvalidTurn)

	// Paso hands the turn to the next opposing seat clockwise.
	require.True(t, g.SubmitAction(0, Paso{}).OK)
	assert.Equal(t, Seat(1), g.Turn())
	require.True(t, g.SubmitAction(1, Paso{}).OK)
	assert.Equal(t, Seat(2), g.Turn())
}

func TestTeamPassedResolvesAtDefaultStake(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)

	g.SubmitAction(0, Paso{})
	g.SubmitAction(1, Paso{})
	// Seat 2 is the second member of team 0: its paso closes the lance.
	out := g.SubmitAction(2, Paso{})
	require.True(t, out.OK)
	assert.True(t, out.PhaseComplete)
	assert.Equal(t, 1, out.PointsAwarded)
	require.NotNil(t, out.WinningTeam)
	assert.Equal(t, TeamA, *out.WinningTeam, "Rey-high seat 0 wins grande")
	assert.Equal(t, PhaseChica, g.Phase())
	assert.Equal(t, g.Mano(), g.Turn())
	assert.Equal(t, [2]int{1, 0}, g.Ledger().Scores())
}

func TestChicaTieBrokenByManoDistance(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseChica)

	// Seats 0, 1 and 2 all hold the equivalent lowest card (As/Dos).
	// Mano is seat 0 and counts as distance 4, so seat 1 (distance 1)
	// takes the tie.
	g.SubmitAction(0, Paso{})
	g.SubmitAction(1, Paso{})
	out := g.SubmitAction(2, Paso{})
	require.True(t, out.OK)
	require.NotNil(t, out.WinningTeam)
	assert.Equal(t, TeamB, *out.WinningTeam)
}

func TestGrandeTieBrokenByManoDistance(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, [NumSeats][]card.Card{
		hand(card.Rey, card.Cinco, card.Cuatro, card.As),
		hand(card.Rey, card.Cinco, card.Cuatro, card.As),
		hand(card.Sota, card.Seis, card.Cinco, card.Dos),
		hand(card.Rey, card.Cinco, card.Cuatro, card.As),
	})
	g.changePhase(PhaseGrande)

	g.SubmitAction(0, Paso{})
	g.SubmitAction(1, Paso{})
	out := g.SubmitAction(2, Paso{})
	require.True(t, out.OK)
	// Seats 0, 1 and 3 tie with identical hands; seat 1 sits at
	// distance 1 from the mano and outranks seat 3 (distance 3) and
	// the mano itself (distance 4).
	require.NotNil(t, out.WinningTeam)
	assert.Equal(t, TeamB, *out.WinningTeam)
}

func TestEnvidoRejectedAwardsAmountMinusTwo(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)

	require.True(t, g.SubmitAction(0, Envido{Amount: 4}).OK)
	assert.Equal(t, Seat(1), g.Turn())

	// With a wager pending only acepto/rechazo are legal.
	out := g.SubmitAction(1, Paso{})
	assert.ErrorIs(t, out.Err, apperrors.ErrInvalidPhaseAction)
	out = g.SubmitAction(1, Envido{Amount: 6})
	assert.ErrorIs(t, out.Err, apperrors.ErrInvalidPhaseAction)

	out = g.SubmitAction(1, Rechazo{})
	require.True(t, out.OK)
	assert.Equal(t, 2, out.PointsAwarded)
	require.NotNil(t, out.WinningTeam)
	assert.Equal(t, TeamA, *out.WinningTeam)
	assert.Equal(t, PhaseChica, g.Phase())
}

func TestEnvidoAcceptedResolvesAtStake(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)

	g.SubmitAction(0, Envido{Amount: 6})
	out := g.SubmitAction(1, Acepto{})
	require.True(t, out.OK)
	assert.Equal(t, 6, out.PointsAwarded)
	require.NotNil(t, out.WinningTeam)
	assert.Equal(t, TeamA, *out.WinningTeam)
	assert.Equal(t, [2]int{6, 0}, g.Ledger().Scores())
}

func TestOrdagoRejectedAwardsOnePoint(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)

	g.SubmitAction(0, Ordago{})
	out := g.SubmitAction(1, Rechazo{})
	require.True(t, out.OK)
	assert.Equal(t, 1, out.PointsAwarded)
	assert.Equal(t, PhaseChica, g.Phase())
	assert.False(t, g.Ledger().Finished())
}

func TestOrdagoAcceptedEndsMatch(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)

	g.SubmitAction(0, Ordago{})
	out := g.SubmitAction(1, Acepto{})
	require.True(t, out.OK)
	assert.Equal(t, DefaultTarget, out.PointsAwarded)
	assert.True(t, out.MatchOver)
	assert.Equal(t, TeamA, out.MatchWinner)
	assert.Equal(t, PhaseFinished, g.Phase())

	winner, done := g.Ledger().Winner()
	assert.True(t, done)
	assert.Equal(t, TeamA, winner)

	out = g.SubmitAction(0, Paso{})
	assert.ErrorIs(t, out.Err, apperrors.ErrRoomFinished)
	assert.ErrorIs(t, g.StartNewHand(), apperrors.ErrRoomFinished)
}

func TestOrdagoInParesRequiresPares(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhasePares)

	out := g.SubmitAction(0, Ordago{})
	assert.ErrorIs(t, out.Err, apperrors.ErrInvalidOrdago)

	// Give one seat a pair and the órdago becomes legal.
	g.players[3].Hand = hand(card.Rey, card.Rey, card.Cinco, card.As)
	out = g.SubmitAction(0, Ordago{})
	require.True(t, out.OK)
}

func TestNobodyQualifiesInPares(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhasePares)

	g.SubmitAction(0, Paso{})
	g.SubmitAction(1, Paso{})
	out := g.SubmitAction(2, Paso{})
	require.True(t, out.OK)
	assert.True(t, out.PhaseComplete)
	assert.Equal(t, 0, out.PointsAwarded)
	assert.Nil(t, out.WinningTeam)
	assert.Equal(t, PhaseJuego, g.Phase())
}

func TestJuegoWithoutQualifierForwardsToPunto(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseJuego)

	g.SubmitAction(0, Paso{})
	g.SubmitAction(1, Paso{})
	out := g.SubmitAction(2, Paso{})
	require.True(t, out.OK)
	assert.Equal(t, 0, out.PointsAwarded)
	assert.Equal(t, PhasePunto, g.Phase())

	// Punto always qualifies: seat 0 has the best sub-31 total (23).
	g.SubmitAction(0, Paso{})
	g.SubmitAction(1, Paso{})
	out = g.SubmitAction(2, Paso{})
	require.True(t, out.OK)
	assert.Equal(t, 1, out.PointsAwarded)
	require.NotNil(t, out.WinningTeam)
	assert.Equal(t, TeamA, *out.WinningTeam)
	assert.True(t, out.HandComplete)
	assert.Equal(t, PhaseCounting, g.Phase())
}

func TestJuegoQualifierSkipsPunto(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	hands := plainHands()
	// Three figures plus an As: exactly 31, the best juego.
	hands[1] = hand(card.Rey, card.Caballo, card.Sota, card.As)
	setHands(g, hands)
	g.changePhase(PhaseJuego)

	g.SubmitAction(0, Paso{})
	g.SubmitAction(1, Paso{})
	out := g.SubmitAction(2, Paso{})
	require.True(t, out.OK)
	assert.Equal(t, 2, out.PointsAwarded, "juego's default stake is 2")
	require.NotNil(t, out.WinningTeam)
	assert.Equal(t, TeamB, *out.WinningTeam)
	assert.True(t, out.HandComplete)
	assert.Equal(t, PhaseCounting, g.Phase(), "punto is skipped when someone has juego")
}

func TestPhaseChangeResetsLastAction(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)

	g.SubmitAction(0, Paso{})
	g.SubmitAction(1, Paso{})
	require.True(t, g.SubmitAction(2, Paso{}).OK)

	assert.Equal(t, PhaseChica, g.Phase())
	for _, p := range g.players {
		assert.Empty(t, p.LastAction)
	}
}

func TestTurnSkipsDisconnectedOpponent(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)
	require.NoError(t, g.SetConnected(1, false))

	require.True(t, g.SubmitAction(0, Paso{}).OK)
	assert.Equal(t, Seat(3), g.Turn(), "seat 1 is offline, next opponent is seat 3")
}

func TestParseAction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		kind    string
		amount  int
		want    Action
		wantErr error
	}{
		{name: "mus", kind: "mus", want: Mus{}},
		{name: "no-mus", kind: "no-mus", want: NoMus{}},
		{name: "paso", kind: "paso", want: Paso{}},
		{name: "envido en paso de dos", kind: "envido", amount: 4, want: Envido{Amount: 4}},
		{name: "envido impar", kind: "envido", amount: 3, wantErr: apperrors.ErrInvalidAmount},
		{name: "envido cero", kind: "envido", amount: 0, wantErr: apperrors.ErrInvalidAmount},
		{name: "envido demasiado", kind: "envido", amount: 22, wantErr: apperrors.ErrInvalidAmount},
		{name: "ordago", kind: "ordago", want: Ordago{}},
		{name: "desconocida", kind: "farol", wantErr: apperrors.ErrInvalidPhaseAction},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAction(tt.kind, tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshotRedaction(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)

	v := g.SnapshotFor(1)
	for _, pv := range v.Players {
		if pv.Seat == 1 {
			assert.Len(t, pv.Hand, card.HandSize)
		} else {
			assert.Nil(t, pv.Hand, "seat %d must stay hidden", pv.Seat)
		}
		assert.Equal(t, card.HandSize, pv.HandSize)
	}

	// Counting reveals every hand.
	g.changePhase(PhaseCounting)
	v = g.SnapshotFor(1)
	for _, pv := range v.Players {
		assert.Len(t, pv.Hand, card.HandSize)
	}
}

func TestSnapshotCarriesPendingBet(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	setHands(g, plainHands())
	g.changePhase(PhaseGrande)
	g.SubmitAction(0, Envido{Amount: 4})

	v := g.SnapshotFor(1)
	require.NotNil(t, v.PendingBet)
	assert.Equal(t, KindEnvido, v.PendingBet.Kind)
	assert.Equal(t, 4, v.PendingBet.Amount)
	assert.Equal(t, 4, v.Stake)
}

func TestEvaluateAll(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)
	hands := plainHands()
	hands[2] = hand(card.Rey, card.Rey, card.Tres, card.As)
	setHands(g, hands)

	summaries := g.EvaluateAll()
	// Rey-Rey-Tres: the Tres counts as a Rey, making duples.
	assert.Equal(t, "Carlos", summaries[2].Name)
	assert.NotZero(t, summaries[2].Eval.Pares.Tier)
	assert.Len(t, summaries[2].Hand, card.HandSize)
}

func TestSeatOf(t *testing.T) {
	t.Parallel()
	g := newTestGame(t)

	seat, ok := g.SeatOf("p2")
	require.True(t, ok)
	assert.Equal(t, Seat(2), seat)

	_, ok = g.SeatOf("nadie")
	assert.False(t, ok)
}
