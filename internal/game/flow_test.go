package game

import (
	"errors"
	"testing"

	"github.com/lox/cribbage/internal/deck"
)

// TestFullRound drives a complete round through the public action API:
// discards, the cut, every pegging play and go, and all three counts.
func TestFullRound(t *testing.T) {
	t.Parallel()

	testDeck := buildTestDeck(
		"10C 10D 6C KS QD 9H", // non-dealer (player two)
		"5H 5D 5S JC 4H 6H",   // dealer (player one)
		"5C",
	)
	state := Initialize(playerPtr(PlayerOne), testDeck, nil)
	var scores [2]int
	apply := func(actor Player, action Action) Result {
		t.Helper()
		res := mustApply(t, state, actor, action)
		state = res.NewState
		if res.ScorePlayer != nil {
			scores[*res.ScorePlayer] += res.ScoreChange
			if res.MugginsAward > 0 {
				scores[res.ScorePlayer.Other()] += res.MugginsAward
			}
		}
		return res
	}

	if got := state.Players[PlayerTwo].Hand; !deck.Contains(got, deck.MustParseCard("10C")) {
		t.Fatalf("non-dealer hand misdealt: %v", got)
	}

	apply(PlayerOne, Discard{Cards: deck.MustParseCards("4H 6H")})
	apply(PlayerTwo, Discard{Cards: deck.MustParseCards("KS QD")})
	if state.Phase != PhaseCut {
		t.Fatalf("phase = %s after both discards, want %s", state.Phase, PhaseCut)
	}

	res := apply(PlayerTwo, CutStarter{Index: 0})
	if state.CutCard == nil || *state.CutCard != deck.MustParseCard("5C") {
		t.Fatalf("cut card = %v, want 5♣", state.CutCard)
	}
	if state.Phase != PhasePlaying {
		t.Fatalf("phase = %s after the cut, want %s", state.Phase, PhasePlaying)
	}
	if res.NextTurn == nil || *res.NextTurn != PlayerTwo {
		t.Fatal("the non-dealer leads the pegging")
	}

	// Pegging. Player one pegs a fifteen and a go point.
	apply(PlayerTwo, PlayCard{Card: deck.MustParseCard("10C")}) // 10
	apply(PlayerOne, PlayCard{Card: deck.MustParseCard("5H")})  // 15
	if state.PendingPeggingScore == nil || state.PendingPeggingScore.Points != 2 {
		t.Fatalf("pending = %+v, want fifteen for 2", state.PendingPeggingScore)
	}
	apply(PlayerOne, AcceptScore{})
	apply(PlayerTwo, PlayCard{Card: deck.MustParseCard("10D")}) // 25
	apply(PlayerOne, PlayCard{Card: deck.MustParseCard("5D")})  // 30
	apply(PlayerTwo, Go{})
	apply(PlayerOne, AcceptScore{}) // go for 1, count resets

	apply(PlayerTwo, PlayCard{Card: deck.MustParseCard("6C")}) // 6
	apply(PlayerOne, PlayCard{Card: deck.MustParseCard("5S")}) // 11
	apply(PlayerTwo, PlayCard{Card: deck.MustParseCard("9H")}) // 20
	apply(PlayerOne, PlayCard{Card: deck.MustParseCard("JC")}) // 30, hands empty

	if state.Phase != PhaseCounting {
		t.Fatalf("phase = %s after pegging, want %s", state.Phase, PhaseCounting)
	}
	if scores[PlayerOne] != 3 || scores[PlayerTwo] != 0 {
		t.Fatalf("pegging scores = %v, want 3-0 to the dealer", scores)
	}

	// Counting: non-dealer, dealer, crib.
	apply(PlayerTwo, ClaimCount{Score: 8})
	apply(PlayerOne, VerifyCount{})
	if scores[PlayerTwo] != 8 {
		t.Errorf("non-dealer score = %d, want 8", scores[PlayerTwo])
	}

	apply(PlayerOne, ClaimCount{Score: 29})
	apply(PlayerTwo, VerifyCount{})
	if scores[PlayerOne] != 3+29 {
		t.Errorf("dealer score = %d, want 32", scores[PlayerOne])
	}

	apply(PlayerOne, ClaimCount{Score: 9})
	apply(PlayerTwo, VerifyCount{})
	if scores[PlayerOne] != 3+29+9 {
		t.Errorf("dealer score with crib = %d, want 41", scores[PlayerOne])
	}

	if state.Phase != PhaseDealing {
		t.Fatalf("phase = %s after counting, want %s", state.Phase, PhaseDealing)
	}

	// The next round alternates the deal.
	state = StartNewRound(state, scores[0], scores[1], deck.New().Cards(), nil)
	if state.Dealer == nil || *state.Dealer != PlayerTwo {
		t.Errorf("dealer = %v in round 2, want player 2", state.Dealer)
	}
	if state.Round != 2 {
		t.Errorf("round = %d, want 2", state.Round)
	}
}

func TestHisHeels(t *testing.T) {
	t.Parallel()

	testDeck := buildTestDeck(
		"10C 10D 6C KS QD 9H",
		"5H 5D 5S JC 4H 6H",
		"JS",
	)
	state := Initialize(playerPtr(PlayerOne), testDeck, nil)

	res := mustApply(t, state, PlayerOne, Discard{Cards: deck.MustParseCards("4H 6H")})
	res = mustApply(t, res.NewState, PlayerTwo, Discard{Cards: deck.MustParseCards("KS QD")})
	res = mustApply(t, res.NewState, PlayerTwo, CutStarter{Index: 0})
	state = res.NewState

	pending := state.PendingPeggingScore
	if pending == nil || !pending.IsHisHeels || pending.Player != PlayerOne || pending.Points != 2 {
		t.Fatalf("pending = %+v, want his heels for the dealer", pending)
	}
	if state.Phase != PhaseCut {
		t.Errorf("phase = %s, should stay in %s until the heels are accepted", state.Phase, PhaseCut)
	}
	if got := NextActor(state); got == nil || *got != PlayerOne {
		t.Errorf("NextActor = %v, want the dealer", got)
	}

	// Play is blocked until the dealer accepts.
	if _, err := Apply(state, PlayerTwo, PlayCard{Card: deck.MustParseCard("10C")}); !errors.Is(err, ErrWrongPhase) && !errors.Is(err, ErrScorePending) {
		t.Errorf("play before acceptance: got %v", err)
	}

	res = mustApply(t, state, PlayerOne, AcceptScore{})
	state = res.NewState
	if res.ScoreChange != 2 || res.ScorePlayer == nil || *res.ScorePlayer != PlayerOne {
		t.Errorf("heels = %d for %v, want 2 for the dealer", res.ScoreChange, res.ScorePlayer)
	}
	if state.Phase != PhasePlaying {
		t.Errorf("phase = %s after accepting heels, want %s", state.Phase, PhasePlaying)
	}
	if res.NextTurn == nil || *res.NextTurn != PlayerTwo {
		t.Error("the non-dealer leads after heels")
	}
}
