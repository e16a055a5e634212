package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/randutil"
)

func newTestBot(profile Profile, seed int64) *Bot {
	return New(profile, randutil.New(seed), log.New(io.Discard))
}

func sameCards(a, b []deck.Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProfileForLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  string
	}{
		{"easy", "easy"},
		{"standard", "standard"},
		{"medium", "standard"},
		{"expert", "expert"},
		{"hard", "expert"},
	}
	for _, tc := range tests {
		p, err := ProfileForLevel(tc.level)
		if err != nil {
			t.Errorf("ProfileForLevel(%q): %v", tc.level, err)
			continue
		}
		if p.Name != tc.want {
			t.Errorf("ProfileForLevel(%q) = %s, want %s", tc.level, p.Name, tc.want)
		}
	}

	if _, err := ProfileForLevel("impossible"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestSelectDiscardKeepsFourFromHand(t *testing.T) {
	t.Parallel()

	hand := deck.MustParseCards("5H 5D JS KC 2D 9H")
	for _, profile := range []Profile{Easy, Standard, Expert} {
		b := newTestBot(profile, 1)
		for _, isDealer := range []bool{true, false} {
			keep := b.SelectDiscard(hand, isDealer)
			if len(keep) != 4 {
				t.Fatalf("%s kept %d cards, want 4", profile.Name, len(keep))
			}
			for _, c := range keep {
				if !deck.Contains(hand, c) {
					t.Errorf("%s kept %s, which is not in the hand", profile.Name, c)
				}
			}
		}
	}
}

func TestSelectDiscardMalformedHand(t *testing.T) {
	t.Parallel()

	b := newTestBot(Easy, 1)

	short := deck.MustParseCards("5H 5D")
	if got := b.SelectDiscard(short, false); !sameCards(got, short) {
		t.Errorf("short hand fallback = %v, want the hand unchanged", got)
	}

	five := deck.MustParseCards("5H 5D JS KC 2D")
	if got := b.SelectDiscard(five, false); len(got) != 4 {
		t.Errorf("five-card fallback kept %d cards, want 4", len(got))
	}
}

func TestExpectedValueDiscardKeepsFives(t *testing.T) {
	t.Parallel()

	// Three fives and a ten-value card dwarf any other keep-set.
	hand := deck.MustParseCards("5H 5D 5S KC 8D 2H")
	b := newTestBot(Expert, 1)
	keep := b.SelectDiscard(hand, true)

	fives := 0
	for _, c := range keep {
		if c.Rank == deck.Five {
			fives++
		}
	}
	if fives != 3 {
		t.Errorf("expected-value discard kept %d fives from %v, want all 3: %v", fives, hand, keep)
	}
}

func TestExpertIsSeedIndependent(t *testing.T) {
	t.Parallel()

	hand := deck.MustParseCards("5H 5D JS KC 2D 9H")
	a := newTestBot(Expert, 1)
	b := newTestBot(Expert, 999)

	if !sameCards(a.SelectDiscard(hand, false), b.SelectDiscard(hand, false)) {
		t.Error("expert discard depends on the seed")
	}

	play := deck.MustParseCards("5H 2D")
	round := deck.MustParseCards("10C")
	pa := a.SelectPlay(play, round, round, 10)
	pb := b.SelectPlay(play, round, round, 10)
	if pa == nil || pb == nil || *pa != *pb {
		t.Errorf("expert play depends on the seed: %v vs %v", pa, pb)
	}
}

func TestHeuristicPlayDeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	hand := deck.MustParseCards("5H 2D 9C JD")
	round := deck.MustParseCards("10C")

	a := newTestBot(Easy, 7)
	b := newTestBot(Easy, 7)
	pa := a.SelectPlay(hand, round, round, 10)
	pb := b.SelectPlay(hand, round, round, 10)
	if pa == nil || pb == nil || *pa != *pb {
		t.Errorf("same seed chose different cards: %v vs %v", pa, pb)
	}
}

func TestSelectPlayNilMeansGo(t *testing.T) {
	t.Parallel()

	b := newTestBot(Expert, 1)
	hand := deck.MustParseCards("KS QD JH")
	if got := b.SelectPlay(hand, nil, nil, 30); got != nil {
		t.Errorf("no legal play should return nil, got %v", got)
	}
}

func TestExpertTakesTheFifteen(t *testing.T) {
	t.Parallel()

	b := newTestBot(Expert, 1)
	hand := deck.MustParseCards("5H 2D")
	round := deck.MustParseCards("10C")

	got := b.SelectPlay(hand, round, round, 10)
	if got == nil || *got != deck.MustParseCard("5H") {
		t.Errorf("expert played %v at count 10, want the 5♥ for fifteen", got)
	}
}

func TestAnnounceCount(t *testing.T) {
	t.Parallel()

	// The expert never miscounts.
	expert := newTestBot(Expert, 1)
	for i := 0; i < 100; i++ {
		if got := expert.AnnounceCount(12); got != 12 {
			t.Fatalf("expert announced %d, want 12", got)
		}
	}

	// The easy profile slips sometimes, but stays within range and never
	// goes negative.
	easy := newTestBot(Easy, 1)
	slipped := false
	for i := 0; i < 1000; i++ {
		got := easy.AnnounceCount(2)
		if got < 0 || got > 2+Easy.CountingErrorRange {
			t.Fatalf("easy announced %d for an actual 2", got)
		}
		if got != 2 {
			slipped = true
		}
	}
	if !slipped {
		t.Error("easy profile never miscounted in 1000 announcements")
	}
}

func TestShouldCallMuggins(t *testing.T) {
	t.Parallel()

	expert := newTestBot(Expert, 1)
	if !expert.ShouldCallMuggins(10, 7) {
		t.Error("expert should always challenge an overclaim")
	}
	if expert.ShouldCallMuggins(7, 7) {
		t.Error("a correct claim is never challenged")
	}
	if expert.ShouldCallMuggins(5, 7) {
		t.Error("an undercount is never challenged")
	}

	easy := newTestBot(Easy, 1)
	missed := false
	for i := 0; i < 1000; i++ {
		if !easy.ShouldCallMuggins(10, 7) {
			missed = true
			break
		}
	}
	if !missed {
		t.Error("easy profile never missed an overclaim in 1000 tries")
	}
}
