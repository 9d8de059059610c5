package card

import "fmt"

// Suit is one of the four Spanish suits.
type Suit int

const (
	Oros Suit = iota
	Copas
	Espadas
	Bastos
)

// suitNames maps suits to their display names.
var suitNames = map[Suit]string{
	Oros:    "oros",
	Copas:   "copas",
	Espadas: "espadas",
	Bastos:  "bastos",
}

// Suits lists the four suits in deck order.
var Suits = []Suit{Oros, Copas, Espadas, Bastos}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("suit(%d)", int(s))
}

// Rank is a card value in the Spanish deck: 1..7 and 10..12 (no 8s or 9s).
type Rank int

const (
	As      Rank = 1
	Dos     Rank = 2
	Tres    Rank = 3
	Cuatro  Rank = 4
	Cinco   Rank = 5
	Seis    Rank = 6
	Siete   Rank = 7
	Sota    Rank = 10
	Caballo Rank = 11
	Rey     Rank = 12
)

// Ranks lists the ten ranks in ascending order.
var Ranks = []Rank{As, Dos, Tres, Cuatro, Cinco, Seis, Siete, Sota, Caballo, Rey}

// rankNames maps ranks to their display names.
var rankNames = map[Rank]string{
	As:      "As",
	Dos:     "Dos",
	Tres:    "Tres",
	Cuatro:  "Cuatro",
	Cinco:   "Cinco",
	Seis:    "Seis",
	Siete:   "Siete",
	Sota:    "Sota",
	Caballo: "Caballo",
	Rey:     "Rey",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

// Valid reports whether r is one of the ten deck ranks.
func (r Rank) Valid() bool {
	_, ok := rankNames[r]
	return ok
}

// Card is a single card. Immutable once dealt; two cards with the same
// suit and rank are indistinguishable.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s de %s", c.Rank, c.Suit)
}

// HandSize is the number of cards each seat holds while a hand is active.
const HandSize = 4

// DeckSize is the total number of cards in play (talon plus all hands).
const DeckSize = 40
