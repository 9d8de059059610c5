package engine

import (
	"github.com/DyLaNHurtado/mus-game-app/internal/game/card"
	"github.com/DyLaNHurtado/mus-game-app/internal/game/eval"
)

// PlayerView is the per-seat slice of a snapshot. Hand is nil for seats
// the viewer is not allowed to see.
type PlayerView struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Seat       Seat        `json:"seat"`
	Team       Team        `json:"team"`
	Connected  bool        `json:"connected"`
	HandSize   int         `json:"handSize"`
	LastAction ActionKind  `json:"lastAction,omitempty"`
	Discarded  bool        `json:"discarded"`
	Hand       []card.Card `json:"hand,omitempty"`
}

// View is a point-in-time snapshot of a game, safe to marshal and ship.
type View struct {
	ID          string               `json:"id"`
	Phase       Phase                `json:"phase"`
	Turn        Seat                 `json:"turn"`
	Mano        Seat                 `json:"mano"`
	HandNumber  int                  `json:"handNumber"`
	DiscardStep bool                 `json:"discardStep"`
	Stake       int                  `json:"stake"`
	PendingBet  *Bet                 `json:"pendingBet,omitempty"`
	Scores      [2]int               `json:"scores"`
	Target      int                  `json:"target"`
	Players     [NumSeats]PlayerView `json:"players"`
}

// Snapshot returns a full view including every hand. Meant for
// persistence and for the end-of-hand reveal.
func (g *Game) Snapshot() View {
	return g.snapshot(func(Seat) bool { return true })
}

// SnapshotFor returns the view as seen from one seat: only that seat's
// hand is present, except during counting and after the match, when all
// hands are face up.
func (g *Game) SnapshotFor(viewer Seat) View {
	reveal := g.phase == PhaseCounting || g.phase == PhaseFinished
	return g.snapshot(func(s Seat) bool { return reveal || s == viewer })
}

func (g *Game) snapshot(showHand func(Seat) bool) View {
	v := View{
		ID:          g.id,
		Phase:       g.phase,
		Turn:        g.turn,
		Mano:        g.Mano(),
		HandNumber:  g.handNumber,
		DiscardStep: g.discardStep,
		Stake:       g.phaseData.Stake,
		Scores:      g.ledger.Scores(),
		Target:      g.ledger.Target(),
	}
	if g.phaseData.PendingBet != nil {
		bet := *g.phaseData.PendingBet
		v.PendingBet = &bet
	}
	for i, p := range g.players {
		pv := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Seat:       p.Seat,
			Team:       p.Team(),
			Connected:  p.Connected,
			HandSize:   len(p.Hand),
			LastAction: p.LastAction,
			Discarded:  p.Discarded,
		}
		if showHand(p.Seat) {
			pv.Hand = append([]card.Card(nil), p.Hand...)
		}
		v.Players[i] = pv
	}
	return v
}

// SeatSummary pairs a revealed hand with its full evaluation, used for
// the counting-phase breakdown.
type SeatSummary struct {
	Seat Seat
	Name string
	Team Team
	Hand []card.Card
	Eval eval.Evaluation
}

// EvaluateAll reveals and evaluates every seat. Seats whose hand cannot
// be evaluated (short hand after a disconnect mid-deal) carry a zero
// evaluation.
func (g *Game) EvaluateAll() [NumSeats]SeatSummary {
	var out [NumSeats]SeatSummary
	for i, p := range g.players {
		s := SeatSummary{
			Seat: p.Seat,
			Name: p.Name,
			Team: p.Team(),
			Hand: append([]card.Card(nil), p.Hand...),
		}
		if e, err := eval.Evaluate(p.Hand); err == nil {
			s.Eval = e
		}
		out[i] = s
	}
	return out
}
