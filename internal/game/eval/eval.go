// Package eval scores four-card Mus hands for the five lances. Everything
// here is a pure function of the hand; nothing is cached or mutated.
package eval

import (
	"errors"
	"fmt"
	"slices"

	"github.com/DyLaNHurtado/mus-game-app/internal/game/card"
)

// ErrInvalidHandSize is returned when a hand does not hold exactly 4 cards.
var ErrInvalidHandSize = errors.New("a mus hand must have exactly 4 cards")

// Lance is one of the five ranked rounds.
type Lance int

const (
	Grande Lance = iota
	Chica
	Pares
	Juego
	Punto
)

var lanceNames = map[Lance]string{
	Grande: "grande",
	Chica:  "chica",
	Pares:  "pares",
	Juego:  "juego",
	Punto:  "punto",
}

func (l Lance) String() string {
	if name, ok := lanceNames[l]; ok {
		return name
	}
	return fmt.Sprintf("lance(%d)", int(l))
}

// Equivalent collapses the rank equivalences used for ordering:
// As and Dos compare as Dos, Tres and Rey compare as Rey.
func Equivalent(r card.Rank) card.Rank {
	switch r {
	case card.As:
		return card.Dos
	case card.Tres:
		return card.Rey
	}
	return r
}

// grandeOrder lists equivalent ranks from strongest to weakest for Grande.
// Chica uses the exact reverse.
var grandeOrder = []card.Rank{
	card.Rey, card.Caballo, card.Sota, card.Siete,
	card.Seis, card.Cinco, card.Cuatro, card.Dos,
}

// grandeRank returns the position of r's equivalent in grandeOrder.
// Lower is stronger for Grande, weaker for Chica.
func grandeRank(r card.Rank) int {
	return slices.Index(grandeOrder, Equivalent(r))
}

// juegoValues maps each rank to its point value for Juego and Punto.
// Tres scores as a face card even though it only orders as one.
var juegoValues = map[card.Rank]int{
	card.As:      1,
	card.Dos:     1,
	card.Tres:    10,
	card.Cuatro:  4,
	card.Cinco:   5,
	card.Seis:    6,
	card.Siete:   7,
	card.Sota:    10,
	card.Caballo: 10,
	card.Rey:     10,
}

// JuegoThreshold is the minimum point sum that counts as having Juego.
const JuegoThreshold = 31

// puntoOrder lists Punto sums from best to worst: 31 is unbeatable,
// 32 second, then 40 descending to 33. Sums below 31 rank after all of
// these, ordered by their own value.
var puntoOrder = []int{31, 32, 40, 39, 38, 37, 36, 35, 34, 33}

// ParesTier is the pairing tier of a hand. Every tier strictly beats the
// ones below it regardless of the ranks involved.
type ParesTier int

const (
	NoPares ParesTier = iota
	SimplePares
	Medias
	Duples
)

var paresTierNames = map[ParesTier]string{
	NoPares:     "nada",
	SimplePares: "pares",
	Medias:      "medias",
	Duples:      "duples",
}

func (t ParesTier) String() string {
	if name, ok := paresTierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParesRanking describes the pairing structure of a hand.
type ParesRanking struct {
	Tier ParesTier
	// High is the equivalent rank of the pair, triple, or better pair of
	// a duples. Zero when the hand has no pares.
	High card.Rank
	// Low is the equivalent rank of the second pair of a duples.
	Low card.Rank
	// Kicker is the equivalent rank of the best unpaired card, used to
	// break ties between simple pares. Zero when all four cards pair up.
	Kicker card.Rank
}

// Evaluation is the full scoring of a four-card hand across all lances.
type Evaluation struct {
	// GrandeCard and ChicaCard are the highest and lowest cards by the
	// Grande ordering.
	GrandeCard card.Card
	ChicaCard  card.Card
	Pares      ParesRanking
	// Points is the Juego/Punto sum of the four cards.
	Points int
	// HasJuego reports whether Points reaches the Juego threshold.
	HasJuego bool
}

// Evaluate scores a hand of exactly 4 cards for every lance.
func Evaluate(hand []card.Card) (Evaluation, error) {
	if len(hand) != card.HandSize {
		return Evaluation{}, ErrInvalidHandSize
	}

	e := Evaluation{GrandeCard: hand[0], ChicaCard: hand[0]}
	for _, c := range hand {
		if grandeRank(c.Rank) < grandeRank(e.GrandeCard.Rank) {
			e.GrandeCard = c
		}
		if grandeRank(c.Rank) > grandeRank(e.ChicaCard.Rank) {
			e.ChicaCard = c
		}
		e.Points += juegoValues[c.Rank]
	}
	e.HasJuego = e.Points >= JuegoThreshold
	e.Pares = evaluatePares(hand)
	return e, nil
}

// evaluatePares groups the hand by equivalent rank and classifies the tier.
func evaluatePares(hand []card.Card) ParesRanking {
	counts := make(map[card.Rank]int)
	for _, c := range hand {
		counts[Equivalent(c.Rank)]++
	}

	var paired, single []card.Rank
	for r, n := range counts {
		if n >= 2 {
			paired = append(paired, r)
		} else {
			single = append(single, r)
		}
	}
	// Strongest first.
	byStrength := func(a, b card.Rank) int { return grandeRank(a) - grandeRank(b) }
	slices.SortFunc(paired, byStrength)
	slices.SortFunc(single, byStrength)

	switch {
	case len(paired) == 2:
		return ParesRanking{Tier: Duples, High: paired[0], Low: paired[1]}
	case len(paired) == 1 && counts[paired[0]] == 4:
		// Four of an equivalent rank are two pairs of the same value.
		return ParesRanking{Tier: Duples, High: paired[0], Low: paired[0]}
	case len(paired) == 1 && counts[paired[0]] == 3:
		return ParesRanking{Tier: Medias, High: paired[0]}
	case len(paired) == 1:
		pr := ParesRanking{Tier: SimplePares, High: paired[0]}
		if len(single) > 0 {
			pr.Kicker = single[0]
		}
		return pr
	}
	return ParesRanking{Tier: NoPares}
}

// Score returns a comparable value for the hand in the given lance; higher
// wins. The second result is false when the hand does not qualify for the
// lance (no pares, or no juego) and must be excluded from it.
func (e Evaluation) Score(l Lance) (int, bool) {
	span := len(grandeOrder)
	strength := func(r card.Rank) int { return span - 1 - grandeRank(r) }

	switch l {
	case Grande:
		return strength(e.GrandeCard.Rank), true
	case Chica:
		return grandeRank(e.ChicaCard.Rank), true
	case Pares:
		p := e.Pares
		switch p.Tier {
		case Duples:
			return 30000 + strength(p.High)*100 + strength(p.Low), true
		case Medias:
			return 20000 + strength(p.High), true
		case SimplePares:
			return 10000 + strength(p.High)*100 + strength(p.Kicker), true
		}
		return 0, false
	case Juego:
		if !e.HasJuego {
			return 0, false
		}
		return e.Points, true
	case Punto:
		return PuntoScore(e.Points), true
	}
	return 0, false
}

// PuntoScore maps a point sum to a comparable Punto value; higher is
// better. The ordering is total over [0, 40]: 31 > 32 > 40 > 39 > ... > 33,
// and sums below 31 rank under all of those by their own value.
func PuntoScore(points int) int {
	if i := slices.Index(puntoOrder, points); i >= 0 {
		return 100 - i
	}
	return points
}

// Compare orders two evaluations for a lance: positive when a beats b,
// negative when b beats a, zero on a tie. A qualifying hand always beats a
// non-qualifying one.
func Compare(a, b Evaluation, l Lance) int {
	sa, oka := a.Score(l)
	sb, okb := b.Score(l)
	switch {
	case oka && !okb:
		return 1
	case !oka && okb:
		return -1
	case !oka && !okb:
		return 0
	}
	return sa - sb
}
