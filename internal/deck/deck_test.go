package deck

import (
	"testing"

	"github.com/lox/cribbage/internal/randutil"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	d := New()
	if d.Len() != 52 {
		t.Fatalf("new deck has %d cards, want 52", d.Len())
	}

	seen := map[Card]bool{}
	for _, c := range d.Cards() {
		if seen[c] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
}

func TestShuffleDeterministic(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	a.Shuffle(randutil.New(42))
	b.Shuffle(randutil.New(42))

	ca, cb := a.Cards(), b.Cards()
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("same seed produced different orders at %d: %s vs %s", i, ca[i], cb[i])
		}
	}

	c := New()
	c.Shuffle(randutil.New(43))
	same := true
	for i, card := range c.Cards() {
		if card != ca[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical orders")
	}
}

func TestDeal(t *testing.T) {
	t.Parallel()

	d := New()
	hand := d.Deal(6)
	if len(hand) != 6 {
		t.Fatalf("dealt %d cards, want 6", len(hand))
	}
	if d.Len() != 46 {
		t.Errorf("deck has %d cards after deal, want 46", d.Len())
	}
	for _, c := range hand {
		if Contains(d.Cards(), c) {
			t.Errorf("dealt card %s still in deck", c)
		}
	}
}

func TestDrawAt(t *testing.T) {
	t.Parallel()

	d := FromCards(MustParseCards("AS 2S 3S 4S"))
	c, err := d.DrawAt(2)
	if err != nil {
		t.Fatalf("DrawAt(2): %v", err)
	}
	if c != MustParseCard("3S") {
		t.Errorf("DrawAt(2) = %s, want 3♠", c)
	}
	if d.Len() != 3 {
		t.Errorf("deck has %d cards, want 3", d.Len())
	}

	if _, err := d.DrawAt(3); err == nil {
		t.Error("DrawAt out of range should fail")
	}
	if _, err := d.DrawAt(-1); err == nil {
		t.Error("DrawAt(-1) should fail")
	}
}
