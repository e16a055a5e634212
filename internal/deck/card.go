package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are always low in cribbage.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Value returns the counting value of the rank: face cards count 10,
// everything else counts its pip value.
func (r Rank) Value() int {
	if r > Ten {
		return 10
	}
	return int(r)
}

// Card represents a playing card. Equality is structural: two cards are the
// same card iff rank and suit match.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Value returns the counting value of the card (1-10)
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseCard parses a card from a string like "5H", "10c", "JS" or "5♥".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	var suit Suit
	switch {
	case strings.HasSuffix(s, "S"), strings.HasSuffix(s, "s"), strings.HasSuffix(s, "♠"):
		suit = Spades
	case strings.HasSuffix(s, "H"), strings.HasSuffix(s, "h"), strings.HasSuffix(s, "♥"):
		suit = Hearts
	case strings.HasSuffix(s, "D"), strings.HasSuffix(s, "d"), strings.HasSuffix(s, "♦"):
		suit = Diamonds
	case strings.HasSuffix(s, "C"), strings.HasSuffix(s, "c"), strings.HasSuffix(s, "♣"):
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	rankStr := strings.ToUpper(strings.TrimRight(s, "SsHhDdCc♠♥♦♣"))
	var rank Rank
	switch rankStr {
	case "A", "1":
		rank = Ace
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankStr[0] - '0')
	case "10", "T":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCard parses a card and panics on failure. Fixtures only.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a whitespace-separated list of cards
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses a card list and panics on failure. Fixtures only.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// Contains reports whether cards includes card
func Contains(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

// Remove returns a copy of cards with the first occurrence of card removed.
// The second return value is false if card was not present.
func Remove(cards []Card, card Card) ([]Card, bool) {
	for i, c := range cards {
		if c == card {
			out := make([]Card, 0, len(cards)-1)
			out = append(out, cards[:i]...)
			out = append(out, cards[i+1:]...)
			return out, true
		}
	}
	return cards, false
}

// Clone returns a copy of cards that shares no backing storage
func Clone(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
