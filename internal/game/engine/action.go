package engine

import (
	"slices"

	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
)

// ActionKind names one of the player commands.
type ActionKind string

const (
	KindMus     ActionKind = "mus"
	KindNoMus   ActionKind = "no-mus"
	KindPaso    ActionKind = "paso"
	KindEnvido  ActionKind = "envido"
	KindOrdago  ActionKind = "ordago"
	KindAcepto  ActionKind = "acepto"
	KindRechazo ActionKind = "rechazo"
)

// Action is the closed set of player commands. Each kind carries only the
// fields it needs; anything from the wire goes through ParseAction first.
type Action interface {
	Kind() ActionKind
}

// Mus asks for a discard round (mus phase only).
type Mus struct{}

// NoMus cuts the mus and starts the betting lances (mus phase only).
type NoMus struct{}

// Paso declines to raise in a betting lance.
type Paso struct{}

// Envido raises the lance's stake by a fixed step.
type Envido struct {
	Amount int
}

// Ordago wagers the whole match.
type Ordago struct{}

// Acepto accepts the pending wager.
type Acepto struct{}

// Rechazo rejects the pending wager, conceding part of it.
type Rechazo struct{}

func (Mus) Kind() ActionKind     { return KindMus }
func (NoMus) Kind() ActionKind   { return KindNoMus }
func (Paso) Kind() ActionKind    { return KindPaso }
func (Envido) Kind() ActionKind  { return KindEnvido }
func (Ordago) Kind() ActionKind  { return KindOrdago }
func (Acepto) Kind() ActionKind  { return KindAcepto }
func (Rechazo) Kind() ActionKind { return KindRechazo }

// EnvidoSteps are the only amounts an envido may carry.
var EnvidoSteps = []int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}

// ParseAction turns a wire-level (kind, amount) pair into a typed Action,
// rejecting unknown kinds and out-of-step envido amounts.
func ParseAction(kind string, amount int) (Action, error) {
	switch ActionKind(kind) {
	case KindMus:
		return Mus{}, nil
	case KindNoMus:
		return NoMus{}, nil
	case KindPaso:
		return Paso{}, nil
	case KindEnvido:
		if !slices.Contains(EnvidoSteps, amount) {
			return nil, apperrors.ErrInvalidAmount
		}
		return Envido{Amount: amount}, nil
	case KindOrdago:
		return Ordago{}, nil
	case KindAcepto:
		return Acepto{}, nil
	case KindRechazo:
		return Rechazo{}, nil
	}
	return nil, apperrors.ErrInvalidPhaseAction
}
