package deck

import "testing"

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Card
	}{
		{"5H", Card{Rank: Five, Suit: Hearts}},
		{"10c", Card{Rank: Ten, Suit: Clubs}},
		{"TC", Card{Rank: Ten, Suit: Clubs}},
		{"AS", Card{Rank: Ace, Suit: Spades}},
		{"jd", Card{Rank: Jack, Suit: Diamonds}},
		{"Q♥", Card{Rank: Queen, Suit: Hearts}},
		{"K♣", Card{Rank: King, Suit: Clubs}},
	}
	for _, tc := range tests {
		got, err := ParseCard(tc.in)
		if err != nil {
			t.Errorf("ParseCard(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseCardInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "5", "X", "11H", "5X", "JJ"} {
		if _, err := ParseCard(in); err == nil {
			t.Errorf("ParseCard(%q) should fail", in)
		}
	}
}

func TestRankValue(t *testing.T) {
	t.Parallel()

	if got := Ace.Value(); got != 1 {
		t.Errorf("Ace.Value() = %d, want 1", got)
	}
	if got := Nine.Value(); got != 9 {
		t.Errorf("Nine.Value() = %d, want 9", got)
	}
	for _, r := range []Rank{Ten, Jack, Queen, King} {
		if got := r.Value(); got != 10 {
			t.Errorf("%s.Value() = %d, want 10", r, got)
		}
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card Card
		want string
	}{
		{Card{Rank: Ace, Suit: Spades}, "A♠"},
		{Card{Rank: Ten, Suit: Diamonds}, "10♦"},
		{Card{Rank: King, Suit: Clubs}, "K♣"},
	}
	for _, tc := range tests {
		if got := tc.card.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("5H 6D 7C")
	out, ok := Remove(cards, MustParseCard("6D"))
	if !ok {
		t.Fatal("Remove should find 6D")
	}
	if len(out) != 2 || len(cards) != 3 {
		t.Errorf("Remove should copy: out=%v in=%v", out, cards)
	}
	if Contains(out, MustParseCard("6D")) {
		t.Errorf("6D still present in %v", out)
	}

	if _, ok := Remove(cards, MustParseCard("KS")); ok {
		t.Error("Remove should report absent card")
	}
}
