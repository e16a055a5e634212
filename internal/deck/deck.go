package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck represents an ordered pile of playing cards. Shuffling requires an
// explicit RNG so that deals are reproducible under a fixed seed.
type Deck struct {
	cards []Card
}

// New creates a new standard 52-card deck in canonical order
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// FromCards creates a deck with exactly the given cards in the given order.
// Used for pre-built test decks.
func FromCards(cards []Card) *Deck {
	return &Deck{cards: Clone(cards)}
}

// Shuffle randomizes the order of the remaining cards
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top n cards
func (d *Deck) Deal(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	dealt := Clone(d.cards[:n])
	d.cards = d.cards[n:]
	return dealt
}

// DealOne removes and returns the top card
func (d *Deck) DealOne() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// DrawAt removes and returns the card at index i, preserving the order of the
// rest. Used for cuts at an explicit position.
func (d *Deck) DrawAt(i int) (Card, error) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, fmt.Errorf("cut index %d out of range (deck has %d cards)", i, len(d.cards))
	}
	c := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return c, nil
}

// Len returns the number of cards remaining
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in order
func (d *Deck) Cards() []Card {
	return Clone(d.cards)
}
