package eval

import "github.com/DyLaNHurtado/mus-game-app/internal/game/card"

// Category is the best categorical ranking of a hand, used only for hints
// and suggestions, never for lance resolution. Pares-family results rank
// above Juego, which ranks above Punto.
type Category int

const (
	CategoryPunto Category = iota
	CategoryJuego
	CategoryPares
	CategoryMedias
	CategoryDuples
)

var categoryNames = map[Category]string{
	CategoryPunto:  "punto",
	CategoryJuego:  "juego",
	CategoryPares:  "pares",
	CategoryMedias: "medias",
	CategoryDuples: "duples",
}

func (c Category) String() string { return categoryNames[c] }

// Best returns the hand's strongest category.
func (e Evaluation) Best() Category {
	switch e.Pares.Tier {
	case Duples:
		return CategoryDuples
	case Medias:
		return CategoryMedias
	case SimplePares:
		return CategoryPares
	}
	if e.HasJuego {
		return CategoryJuego
	}
	return CategoryPunto
}

// ShouldCutMus is an advisory heuristic: it reports whether a hand is
// strong enough to cut the mus instead of discarding. Used by the CLI
// client for hints only.
func ShouldCutMus(hand []card.Card) bool {
	e, err := Evaluate(hand)
	if err != nil {
		return false
	}

	// Duples or medias are always worth playing.
	if e.Pares.Tier == Duples || e.Pares.Tier == Medias {
		return true
	}
	// A pair of reyes is worth playing.
	if e.Pares.Tier == SimplePares && e.Pares.High == card.Rey {
		return true
	}
	// A high juego, or the two best punto sums.
	if e.HasJuego && e.Points >= 35 {
		return true
	}
	if e.Points == 31 || e.Points == 32 {
		return true
	}
	// Top card for grande plus bottom card for chica.
	if Equivalent(e.GrandeCard.Rank) == card.Rey && Equivalent(e.ChicaCard.Rank) == card.Dos {
		return true
	}
	return false
}
