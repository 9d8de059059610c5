package engine

import (
	"slices"

	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
	"github.com/DyLaNHurtado/mus-game-app/internal/game/card"
)

// Player is one seated participant. Hands hold exactly 4 cards while a
// hand is active and are empty between hands.
type Player struct {
	ID        string
	Name      string
	Seat      Seat
	Hand      []card.Card
	Connected bool

	// LastAction is the seat's last accepted action this phase, used to
	// detect "everyone passed" and "everyone wants mus".
	LastAction ActionKind

	// Discarded marks that the seat already discarded this mus round.
	Discarded bool
}

// Team returns the player's team, derived from seat parity.
func (p *Player) Team() Team {
	return p.Seat.Team()
}

// takeCards removes the cards at the given hand indices, returning them
// in hand order. Indices must be distinct and in range.
func (p *Player) takeCards(indices []int) ([]card.Card, error) {
	if len(indices) == 0 || len(indices) > card.HandSize {
		return nil, apperrors.ErrInvalidDiscard
	}
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	taken := make([]card.Card, 0, len(sorted))
	for i, idx := range sorted {
		if idx < 0 || idx >= len(p.Hand) {
			return nil, apperrors.ErrInvalidDiscard
		}
		if i > 0 && idx == sorted[i-1] {
			return nil, apperrors.ErrInvalidDiscard
		}
		taken = append(taken, p.Hand[idx])
	}
	// Delete from the back so earlier indices stay valid.
	for i := len(sorted) - 1; i >= 0; i-- {
		p.Hand = slices.Delete(p.Hand, sorted[i], sorted[i]+1)
	}
	return taken, nil
}
