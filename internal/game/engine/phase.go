package engine

import (
	"fmt"

	"github.com/DyLaNHurtado/mus-game-app/internal/game/eval"
)

// Phase is a stage of one hand. The order is fixed; counting closes a
// hand and finished closes the match.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseMus
	PhaseGrande
	PhaseChica
	PhasePares
	PhaseJuego
	PhasePunto
	PhaseCounting
	PhaseFinished
)

// phaseOrder is the fixed walk through one hand.
var phaseOrder = []Phase{
	PhaseWaiting, PhaseMus, PhaseGrande, PhaseChica,
	PhasePares, PhaseJuego, PhasePunto, PhaseCounting, PhaseFinished,
}

var phaseNames = map[Phase]string{
	PhaseWaiting:  "waiting",
	PhaseMus:      "mus",
	PhaseGrande:   "grande",
	PhaseChica:    "chica",
	PhasePares:    "pares",
	PhaseJuego:    "juego",
	PhasePunto:    "punto",
	PhaseCounting: "counting",
	PhaseFinished: "finished",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// IsBetting reports whether the phase is one of the five lances.
func (p Phase) IsBetting() bool {
	return p >= PhaseGrande && p <= PhasePunto
}

// Lance maps a betting phase to its lance.
func (p Phase) Lance() (eval.Lance, bool) {
	switch p {
	case PhaseGrande:
		return eval.Grande, true
	case PhaseChica:
		return eval.Chica, true
	case PhasePares:
		return eval.Pares, true
	case PhaseJuego:
		return eval.Juego, true
	case PhasePunto:
		return eval.Punto, true
	}
	return 0, false
}

// next returns the phase that follows p in the fixed order.
func (p Phase) next() Phase {
	for i, ph := range phaseOrder {
		if ph == p && i+1 < len(phaseOrder) {
			return phaseOrder[i+1]
		}
	}
	return PhaseCounting
}

// defaultStake is the points a lance awards when no wager was raised.
func defaultStake(p Phase) int {
	switch p {
	case PhaseJuego:
		return 2
	case PhaseGrande, PhaseChica, PhasePares, PhasePunto:
		return 1
	}
	return 0
}

// Bet is a pending wager.
type Bet struct {
	Kind   ActionKind
	Amount int
	By     Seat
}

// ActionRecord is one accepted action in the phase log.
type ActionRecord struct {
	Seat   Seat
	Action Action
}

// PhaseData is the per-phase scratch state, reset on every phase change.
type PhaseData struct {
	Log        []ActionRecord
	HasEnvido  bool
	HasOrdago  bool
	PendingBet *Bet
	// Stake is what the phase awards if resolved without dispute.
	Stake int
}

func newPhaseData(p Phase) PhaseData {
	return PhaseData{Stake: defaultStake(p)}
}
