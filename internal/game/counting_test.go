package game

import (
	"errors"
	"testing"

	"github.com/lox/cribbage/internal/deck"
)

// countingState builds a game at the start of counting. Player one deals, so
// player two counts first.
func countingState(handOne, handTwo, crib, cut string) *GameState {
	cutCard := deck.MustParseCard(cut)
	return &GameState{
		Phase:  PhaseCounting,
		Round:  1,
		Dealer: playerPtr(PlayerOne),
		Players: [2]PlayerState{
			{Hand: deck.MustParseCards(handOne)},
			{Hand: deck.MustParseCards(handTwo)},
		},
		Crib:     deck.MustParseCards(crib),
		CutCard:  &cutCard,
		Counting: CountingState{Stage: CountNonDealer},
	}
}

func TestCountOrderAndStageAdvance(t *testing.T) {
	t.Parallel()

	state := countingState(
		"5S 5C 5D JH",  // dealer: 29 with the 5H cut
		"7D 8C AH KS",  // non-dealer: 4 (seven-eight and king-five fifteens)
		"2C 3D 10H QD", // crib
		"5H",
	)

	// The dealer cannot count first.
	if _, err := Apply(state, PlayerOne, Count{}); !errors.Is(err, ErrWrongPlayer) {
		t.Fatalf("dealer counting first: want ErrWrongPlayer, got %v", err)
	}

	res := mustApply(t, state, PlayerTwo, Count{})
	if res.ScoreChange != 4 {
		t.Errorf("non-dealer hand = %d, want 4: %v", res.ScoreChange, res.Breakdown)
	}
	if res.NewState.Counting.Stage != CountDealer {
		t.Errorf("stage = %s, want dealer hand next", res.NewState.Counting.Stage)
	}

	res = mustApply(t, res.NewState, PlayerOne, Count{})
	if res.ScoreChange != 29 {
		t.Errorf("dealer hand = %d, want 29: %v", res.ScoreChange, res.Breakdown)
	}
	if res.NewState.Counting.Stage != CountCrib {
		t.Errorf("stage = %s, want crib next", res.NewState.Counting.Stage)
	}

	res = mustApply(t, res.NewState, PlayerOne, Count{})
	if res.ScorePlayer == nil || *res.ScorePlayer != PlayerOne {
		t.Error("the crib belongs to the dealer")
	}
	if res.NewState.Phase != PhaseDealing {
		t.Errorf("phase = %s after the crib, want %s", res.NewState.Phase, PhaseDealing)
	}
	if len(res.NewState.Counting.HandsScored) != 3 {
		t.Errorf("counting log has %d entries, want 3", len(res.NewState.Counting.HandsScored))
	}
}

func TestClaimAndVerify(t *testing.T) {
	t.Parallel()

	state := countingState("5S 5C 5D JH", "7D 8C AH KS", "2C 3D 10H QD", "5H")

	res := mustApply(t, state, PlayerTwo, ClaimCount{Score: 4})
	state = res.NewState

	claim := state.Counting.Claim
	if claim == nil {
		t.Fatal("claim should be stored")
	}
	if claim.ActualScore != 4 {
		t.Errorf("actual = %d, want 4", claim.ActualScore)
	}
	if res.NextTurn == nil || *res.NextTurn != PlayerOne {
		t.Error("the opponent verifies the claim")
	}
	if res.ScoreChange != 0 {
		t.Error("claiming must not score until verified")
	}

	// The claimant cannot verify their own count.
	if _, err := Apply(state, PlayerTwo, VerifyCount{}); !errors.Is(err, ErrWrongPlayer) {
		t.Errorf("self-verify: want ErrWrongPlayer, got %v", err)
	}
	// A second claim is rejected while one is open.
	if _, err := Apply(state, PlayerTwo, ClaimCount{Score: 3}); err == nil {
		t.Error("claiming over an open claim should fail")
	}

	res = mustApply(t, state, PlayerOne, VerifyCount{})
	if res.ScoreChange != 4 || res.ScorePlayer == nil || *res.ScorePlayer != PlayerTwo {
		t.Errorf("verified claim = %d for %v, want 4 for player 2", res.ScoreChange, res.ScorePlayer)
	}
	if res.NewState.Counting.Claim != nil {
		t.Error("claim should clear after verification")
	}
	if res.NewState.Counting.Stage != CountDealer {
		t.Errorf("stage = %s, want dealer hand next", res.NewState.Counting.Stage)
	}
}

func TestVerifyAcceptsUndercount(t *testing.T) {
	t.Parallel()

	state := countingState("5S 5C 5D JH", "7D 8C AH KS", "2C 3D 10H QD", "5H")

	res := mustApply(t, state, PlayerTwo, ClaimCount{Score: 2}) // hand is worth 4
	res = mustApply(t, res.NewState, PlayerOne, VerifyCount{})

	if res.ScoreChange != 2 {
		t.Errorf("undercounted claim = %d, want the announced 2", res.ScoreChange)
	}
}

func TestCallMuggins(t *testing.T) {
	t.Parallel()

	// The non-dealer hand is worth exactly 4.
	tests := []struct {
		name      string
		claimed   int
		wantScore int
		wantAward int
	}{
		{name: "overclaim forfeits and pays the caller", claimed: 10, wantScore: 0, wantAward: 6},
		{name: "exact claim stands", claimed: 4, wantScore: 4, wantAward: 0},
		{name: "undercount stands as claimed", claimed: 2, wantScore: 2, wantAward: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state := countingState("5S 5C 5D JH", "7D 8C AH KS", "2C 3D 10H QD", "5H")

			res := mustApply(t, state, PlayerTwo, ClaimCount{Score: tc.claimed})
			res = mustApply(t, res.NewState, PlayerOne, CallMuggins{})

			if res.ScoreChange != tc.wantScore {
				t.Errorf("counter scores %d, want %d", res.ScoreChange, tc.wantScore)
			}
			if res.MugginsAward != tc.wantAward {
				t.Errorf("muggins award = %d, want %d", res.MugginsAward, tc.wantAward)
			}
			if res.ScorePlayer == nil || *res.ScorePlayer != PlayerTwo {
				t.Errorf("score player = %v, want the counter (player 2)", res.ScorePlayer)
			}
			if res.NewState.Counting.Stage != CountDealer {
				t.Errorf("stage = %s, want dealer hand next", res.NewState.Counting.Stage)
			}

			logged := res.NewState.Counting.HandsScored
			if len(logged) != 1 || logged[0].Score != tc.wantScore {
				t.Errorf("counting log = %+v, want one entry scoring %d", logged, tc.wantScore)
			}
		})
	}
}

func TestMugginsRequiresClaim(t *testing.T) {
	t.Parallel()

	state := countingState("5S 5C 5D JH", "7D 8C AH KS", "2C 3D 10H QD", "5H")

	if _, err := Apply(state, PlayerOne, CallMuggins{}); !errors.Is(err, ErrNoPendingClaim) {
		t.Errorf("want ErrNoPendingClaim, got %v", err)
	}
	if _, err := Apply(state, PlayerOne, VerifyCount{}); !errors.Is(err, ErrNoPendingClaim) {
		t.Errorf("want ErrNoPendingClaim, got %v", err)
	}
}

func TestCountingOutsidePhaseFails(t *testing.T) {
	t.Parallel()

	state := Initialize(playerPtr(PlayerOne), deck.New().Cards(), nil)
	if _, err := Apply(state, PlayerTwo, Count{}); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("want ErrWrongPhase, got %v", err)
	}
	if _, _, _, err := CountingHand(state); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("CountingHand: want ErrWrongPhase, got %v", err)
	}
}
