// Package engine implements the mus rules core: the phase sequencer, the
// betting resolver and the score ledger. A Game is a single logical
// actor; callers must serialize access to it (one action in flight per
// room) and the engine itself takes no locks.
package engine

import (
	"fmt"

	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
	"github.com/DyLaNHurtado/mus-game-app/internal/game/card"
	"github.com/DyLaNHurtado/mus-game-app/internal/game/eval"
)

// DefaultTarget is the customary match length in tantos.
const DefaultTarget = 40

// SeatInfo identifies the player taking a seat.
type SeatInfo struct {
	ID   string
	Name string
}

// Game holds the whole state of one match.
type Game struct {
	id         string
	players    [NumSeats]*Player
	deck       *card.Deck
	phase      Phase
	turn       Seat
	handNumber int
	phaseData  PhaseData
	ledger     *Ledger

	// discardStep is set while all four seats agreed to mus and the
	// one-time discard round is open.
	discardStep bool
}

// New seats four players, deals the first hand and opens the mus phase.
func New(id string, seats [NumSeats]SeatInfo, target int) (*Game, error) {
	if target <= 0 {
		target = DefaultTarget
	}
	g := &Game{
		id:         id,
		handNumber: 1,
		ledger:     NewLedger(target),
	}
	for i := range g.players {
		g.players[i] = &Player{
			ID:        seats[i].ID,
			Name:      seats[i].Name,
			Seat:      Seat(i),
			Connected: true,
		}
	}
	if err := g.deal(); err != nil {
		return nil, err
	}
	g.changePhase(PhaseMus)
	return g, nil
}

// deal shuffles a fresh deck and gives every seat four cards.
func (g *Game) deal() error {
	g.deck = card.NewDeck()
	for _, p := range g.players {
		hand, err := g.deck.DealHand()
		if err != nil {
			return err
		}
		p.Hand = hand
	}
	return nil
}

// ID returns the game identifier (the room code).
func (g *Game) ID() string { return g.id }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Turn returns the seat expected to act. Meaningless during mus, where
// turn order is relaxed.
func (g *Game) Turn() Seat { return g.turn }

// HandNumber returns the 1-based hand counter.
func (g *Game) HandNumber() int { return g.handNumber }

// DiscardStep reports whether the mus discard round is open.
func (g *Game) DiscardStep() bool { return g.discardStep }

// Ledger exposes the score ledger for queries.
func (g *Game) Ledger() *Ledger { return g.ledger }

// Mano returns the lead seat of the current hand. It rotates one seat
// clockwise every hand and anchors all tie-breaks and phase starts.
func (g *Game) Mano() Seat {
	return Seat((g.handNumber - 1) % NumSeats)
}

// Player returns the player at the given seat.
func (g *Game) Player(seat Seat) (*Player, error) {
	if !seat.Valid() {
		return nil, apperrors.ErrSeatNotFound
	}
	return g.players[seat], nil
}

// SeatOf finds the seat of a player ID.
func (g *Game) SeatOf(playerID string) (Seat, bool) {
	for _, p := range g.players {
		if p.ID == playerID {
			return p.Seat, true
		}
	}
	return 0, false
}

// SetConnected updates a seat's connection flag. Reconnecting an already
// connected seat is a no-op.
func (g *Game) SetConnected(seat Seat, connected bool) error {
	p, err := g.Player(seat)
	if err != nil {
		return err
	}
	p.Connected = connected
	return nil
}

// Outcome is the synchronous result of one submitted action. Failed
// actions leave the game untouched.
type Outcome struct {
	OK      bool
	Err     error
	Message string

	Phase Phase
	Turn  Seat

	PhaseComplete bool
	PointsAwarded int
	WinningTeam   *Team

	HandComplete bool
	MatchOver    bool
	MatchWinner  Team
}

func fail(err error) Outcome {
	return Outcome{Err: err, Message: err.Error()}
}

// outcome fills the common fields from the game's post-action state.
func (g *Game) outcome(msg string) Outcome {
	return Outcome{OK: true, Message: msg, Phase: g.phase, Turn: g.turn}
}

// SubmitAction validates and applies one player action. This is the
// single mutation entry point for everything except discards.
func (g *Game) SubmitAction(seat Seat, a Action) Outcome {
	if !seat.Valid() {
		return fail(apperrors.ErrSeatNotFound)
	}
	if g.phase == PhaseFinished || g.ledger.Finished() {
		return fail(apperrors.ErrRoomFinished)
	}

	switch {
	case g.phase == PhaseMus:
		return g.handleMusAction(seat, a)
	case g.phase.IsBetting():
		return g.handleBetAction(seat, a)
	}
	return fail(apperrors.ErrInvalidPhaseAction)
}

// record appends an accepted action to the phase log.
func (g *Game) record(seat Seat, a Action) {
	g.phaseData.Log = append(g.phaseData.Log, ActionRecord{Seat: seat, Action: a})
	g.players[seat].LastAction = a.Kind()
}

// handleMusAction processes mus/no-mus. Turn order is relaxed here: any
// seat may speak until someone cuts or all four agree.
func (g *Game) handleMusAction(seat Seat, a Action) Outcome {
	if g.discardStep {
		return fail(apperrors.ErrInvalidPhaseAction)
	}
	p := g.players[seat]

	switch a.(type) {
	case NoMus:
		g.record(seat, a)
		g.changePhase(PhaseGrande)
		out := g.outcome(fmt.Sprintf("%s corta el mus", p.Name))
		out.PhaseComplete = true
		return out
	case Mus:
		g.record(seat, a)
		for _, other := range g.players {
			if other.Connected && other.LastAction != KindMus {
				return g.outcome(fmt.Sprintf("%s quiere mus", p.Name))
			}
		}
		// All four agree: open the one-time discard round.
		g.discardStep = true
		for _, other := range g.players {
			other.Discarded = false
		}
		return g.outcome("todos quieren mus, toca descartar")
	}
	return fail(apperrors.ErrInvalidPhaseAction)
}

// handleBetAction processes the betting lances. Only the turn seat may
// act, and a pending wager narrows the legal actions to acepto/rechazo.
func (g *Game) handleBetAction(seat Seat, a Action) Outcome {
	if seat != g.turn {
		return fail(apperrors.ErrInvalidTurn)
	}
	p := g.players[seat]
	pd := &g.phaseData

	if pd.PendingBet != nil {
		switch a.(type) {
		case Acepto, Rechazo:
		default:
			return fail(apperrors.ErrInvalidPhaseAction)
		}
	}

	switch act := a.(type) {
	case Paso:
		g.record(seat, a)
		if g.teamAllPassed(p.Team()) {
			// No wager was ever raised: the lance resolves by cards
			// at its default stake.
			return g.resolveLance(pd.Stake, "en paso")
		}
		g.turn = g.nextOpposing(seat)
		return g.outcome(fmt.Sprintf("%s pasa", p.Name))

	case Envido:
		g.record(seat, a)
		pd.HasEnvido = true
		pd.PendingBet = &Bet{Kind: KindEnvido, Amount: act.Amount, By: seat}
		pd.Stake = act.Amount
		g.turn = g.nextOpposing(seat)
		return g.outcome(fmt.Sprintf("%s envida %d", p.Name, act.Amount))

	case Ordago:
		if g.phase == PhasePares && !g.anyoneHasPares() {
			return fail(apperrors.ErrInvalidOrdago)
		}
		g.record(seat, a)
		pd.HasOrdago = true
		pd.PendingBet = &Bet{Kind: KindOrdago, By: seat}
		g.turn = g.nextOpposing(seat)
		return g.outcome(fmt.Sprintf("%s canta órdago", p.Name))

	case Acepto:
		if pd.PendingBet == nil {
			return fail(apperrors.ErrInvalidPhaseAction)
		}
		g.record(seat, a)
		stake := pd.Stake
		if pd.HasOrdago {
			// An accepted órdago plays for the whole match.
			stake = g.ledger.Target()
		}
		return g.resolveLance(stake, fmt.Sprintf("%s acepta", p.Name))

	case Rechazo:
		if pd.PendingBet == nil {
			return fail(apperrors.ErrInvalidPhaseAction)
		}
		g.record(seat, a)
		bet := pd.PendingBet
		points := bet.Amount - 2
		if points < 1 {
			points = 1
		}
		winner := bet.By.Team()
		return g.awardAndAdvance(winner, points,
			fmt.Sprintf("%s rechaza, %d para el equipo contrario", p.Name, points))
	}
	return fail(apperrors.ErrInvalidPhaseAction)
}

// SubmitDiscard replaces 1..4 cards of a seat's hand during the mus
// discard round. The round closes once every connected seat discarded.
func (g *Game) SubmitDiscard(seat Seat, indices []int) Outcome {
	if !seat.Valid() {
		return fail(apperrors.ErrSeatNotFound)
	}
	if g.phase == PhaseFinished || g.ledger.Finished() {
		return fail(apperrors.ErrRoomFinished)
	}
	if g.phase != PhaseMus || !g.discardStep {
		return fail(apperrors.ErrInvalidPhaseAction)
	}
	p := g.players[seat]
	if p.Discarded {
		return fail(apperrors.ErrInvalidDiscard)
	}

	taken, err := p.takeCards(indices)
	if err != nil {
		return fail(err)
	}
	fresh, err := g.deck.Replace(taken)
	if err != nil {
		// Undealable talon cannot happen with 40 cards and one discard
		// round, but restore the hand rather than corrupt it.
		p.Hand = append(p.Hand, taken...)
		return fail(err)
	}
	p.Hand = append(p.Hand, fresh...)
	p.Discarded = true

	for _, other := range g.players {
		if other.Connected && !other.Discarded {
			return g.outcome(fmt.Sprintf("%s descarta %d", p.Name, len(taken)))
		}
	}
	// Everyone discarded: the mus closes and grande begins.
	g.changePhase(PhaseGrande)
	out := g.outcome("todos han descartado")
	out.PhaseComplete = true
	return out
}

// StartNewHand rotates the mano, reshuffles, redeals and reopens the mus
// phase, carrying the scores forward.
func (g *Game) StartNewHand() error {
	if g.phase == PhaseFinished || g.ledger.Finished() {
		return apperrors.ErrRoomFinished
	}
	g.handNumber++
	for _, p := range g.players {
		p.Hand = nil
		p.Discarded = false
	}
	if err := g.deal(); err != nil {
		return err
	}
	g.changePhase(PhaseMus)
	return nil
}

// changePhase resets per-phase state and re-derives the starting seat
// from the mano; it is never carried over from the previous phase.
func (g *Game) changePhase(p Phase) {
	g.phase = p
	g.phaseData = newPhaseData(p)
	g.discardStep = false
	for _, pl := range g.players {
		pl.LastAction = ""
	}
	if p == PhaseMus || p.IsBetting() {
		g.turn = g.firstConnectedFrom(g.Mano())
	}
}

// firstConnectedFrom returns seat itself if connected, else the next
// connected seat clockwise.
func (g *Game) firstConnectedFrom(seat Seat) Seat {
	for i := 0; i < NumSeats; i++ {
		s := Seat((int(seat) + i) % NumSeats)
		if g.players[s].Connected {
			return s
		}
	}
	return seat
}

// nextOpposing returns the next connected seat of the opposing team,
// scanning clockwise from the acting seat.
func (g *Game) nextOpposing(from Seat) Seat {
	opposing := from.Team().Opponent()
	for i := 1; i <= NumSeats; i++ {
		s := Seat((int(from) + i) % NumSeats)
		if g.players[s].Team() == opposing && g.players[s].Connected {
			return s
		}
	}
	// No connected opponent: fall back to the next connected seat.
	for i := 1; i <= NumSeats; i++ {
		s := Seat((int(from) + i) % NumSeats)
		if g.players[s].Connected {
			return s
		}
	}
	return from
}

// teamAllPassed reports whether every connected member of the team has
// passed this phase.
func (g *Game) teamAllPassed(team Team) bool {
	for _, p := range g.players {
		if p.Team() == team && p.Connected && p.LastAction != KindPaso {
			return false
		}
	}
	return true
}

// anyoneHasPares reports whether at least one seat holds a qualifying
// pairing, the precondition for an órdago in the pares lance.
func (g *Game) anyoneHasPares() bool {
	for _, p := range g.players {
		e, err := eval.Evaluate(p.Hand)
		if err != nil {
			continue
		}
		if e.Pares.Tier != eval.NoPares {
			return true
		}
	}
	return false
}

// anyoneHasJuego reports whether at least one seat reaches 31 points.
func (g *Game) anyoneHasJuego() bool {
	for _, p := range g.players {
		e, err := eval.Evaluate(p.Hand)
		if err != nil {
			continue
		}
		if e.HasJuego {
			return true
		}
	}
	return false
}

// resolveLance ranks all four hands for the current lance, breaks ties by
// proximity to the mano and awards the stake to the winning team.
func (g *Game) resolveLance(stake int, how string) Outcome {
	lance, ok := g.phase.Lance()
	if !ok {
		return fail(apperrors.ErrInvalidPhaseAction)
	}

	var best *Player
	var bestEval eval.Evaluation
	for _, p := range g.players {
		e, err := eval.Evaluate(p.Hand)
		if err != nil {
			continue
		}
		if _, qualifies := e.Score(lance); !qualifies {
			continue
		}
		switch {
		case best == nil:
			best, bestEval = p, e
		default:
			cmp := eval.Compare(e, bestEval, lance)
			if cmp > 0 || (cmp == 0 &&
				p.Seat.DistanceFrom(g.Mano()) < best.Seat.DistanceFrom(g.Mano())) {
				best, bestEval = p, e
			}
		}
	}

	if best == nil {
		// Nobody qualifies: zero points, move on. Juego forwards to
		// punto instead of being treated as won.
		phase := g.phase
		g.advanceFrom(phase)
		out := g.outcome(fmt.Sprintf("nadie puntúa en %s", phase))
		out.PhaseComplete = true
		out.HandComplete = g.phase == PhaseCounting
		return out
	}

	winner := best.Team()
	return g.awardAndAdvance(winner, stake,
		fmt.Sprintf("%s: gana %s (%s)", how, best.Name, winner))
}

// awardAndAdvance credits the winning team, checks the match threshold
// and steps the sequencer.
func (g *Game) awardAndAdvance(team Team, points int, msg string) Outcome {
	phase := g.phase
	if err := g.ledger.AddPoints(team, points, msg, phase); err != nil {
		return fail(err)
	}

	out := Outcome{OK: true, Message: msg, PhaseComplete: true, PointsAwarded: points}
	t := team
	out.WinningTeam = &t

	if g.ledger.Finished() {
		// The phase list is short-circuited the moment a score crosses
		// the threshold.
		g.phase = PhaseFinished
		winner, _ := g.ledger.Winner()
		out.MatchOver = true
		out.MatchWinner = winner
		out.Phase = g.phase
		out.Turn = g.turn
		return out
	}

	g.advanceFrom(phase)
	out.Phase = g.phase
	out.Turn = g.turn
	out.HandComplete = g.phase == PhaseCounting
	return out
}

// advanceFrom moves the sequencer past the given phase. Punto is only
// played when nobody has juego; otherwise it is skipped.
func (g *Game) advanceFrom(phase Phase) {
	next := phase.next()
	if phase == PhaseJuego && g.anyoneHasJuego() {
		next = PhaseCounting
	}
	g.changePhase(next)
}
