package card

import (
	"fmt"
	"math/rand"
)

// Deck holds the undealt talon plus the discard pile. Cards leave through
// Deal and Replace; discards return to the talon when it runs low, so the
// 40 cards in play are never duplicated.
type Deck struct {
	talon    []Card
	discards []Card
}

// NewDeck builds the 40-card Spanish deck and shuffles it.
func NewDeck() *Deck {
	talon := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			talon = append(talon, Card{Suit: s, Rank: r})
		}
	}
	d := &Deck{talon: talon}
	d.Shuffle()
	return d
}

// Shuffle randomizes the talon in place.
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.talon), func(i, j int) {
		d.talon[i], d.talon[j] = d.talon[j], d.talon[i]
	})
}

// Remaining returns the number of undealt cards in the talon.
func (d *Deck) Remaining() int {
	return len(d.talon)
}

// Deal removes and returns the top n cards of the talon, folding the
// discard pile back in if the talon cannot cover the request.
func (d *Deck) Deal(n int) ([]Card, error) {
	if len(d.talon) < n {
		d.reshuffleDiscards()
	}
	if len(d.talon) < n {
		return nil, fmt.Errorf("talon exhausted: need %d cards, have %d", n, len(d.talon))
	}
	dealt := make([]Card, n)
	copy(dealt, d.talon[:n])
	d.talon = d.talon[n:]
	return dealt, nil
}

// DealHand deals the four cards of one seat's hand.
func (d *Deck) DealHand() ([]Card, error) {
	return d.Deal(HandSize)
}

// Replace takes the discarded cards out of play and deals the same number
// of fresh cards from the talon.
func (d *Deck) Replace(discarded []Card) ([]Card, error) {
	d.discards = append(d.discards, discarded...)
	return d.Deal(len(discarded))
}

// reshuffleDiscards shuffles the discard pile back into the talon.
func (d *Deck) reshuffleDiscards() {
	if len(d.discards) == 0 {
		return
	}
	d.talon = append(d.talon, d.discards...)
	d.discards = nil
	d.Shuffle()
}
