package game

import (
	"fmt"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/scoring"
)

// countingTurn returns the player whose hand is counted at the given stage
// and the cards being counted. The crib is always the dealer's.
func countingTurn(s *GameState) (Player, []deck.Card, bool, error) {
	dealer := *s.Dealer
	switch s.Counting.Stage {
	case CountNonDealer:
		p := dealer.Other()
		return p, s.Players[p].Hand, false, nil
	case CountDealer:
		return dealer, s.Players[dealer].Hand, false, nil
	case CountCrib:
		return dealer, s.Crib, true, nil
	default:
		return 0, nil, false, fmt.Errorf("%w: no hand is being counted", ErrWrongPhase)
	}
}

// CountingHand reports whose hand is currently being counted and the cards
// in it. Errors if no hand is up for counting.
func CountingHand(s *GameState) (Player, []deck.Card, bool, error) {
	if s.Phase != PhaseCounting {
		return 0, nil, false, fmt.Errorf("%w: counting requires %s phase, game is in %s",
			ErrWrongPhase, PhaseCounting, s.Phase)
	}
	return countingTurn(s)
}

func checkCounting(s *GameState, actor Player) (Player, []deck.Card, bool, error) {
	if s.Phase != PhaseCounting {
		return 0, nil, false, fmt.Errorf("%w: counting requires %s phase, game is in %s",
			ErrWrongPhase, PhaseCounting, s.Phase)
	}
	counter, hand, isCrib, err := countingTurn(s)
	if err != nil {
		return 0, nil, false, err
	}
	if actor != counter {
		return 0, nil, false, fmt.Errorf("%w: the %s is counted by %s",
			ErrWrongPlayer, s.Counting.Stage, counter)
	}
	return counter, hand, isCrib, nil
}

// advanceStage moves counting to the next hand in the fixed order non-dealer,
// dealer, crib. Resolving the crib flips the game to the dealing phase: the
// caller starts the next round (or ends the game) from there.
func advanceStage(s *GameState) *Player {
	switch s.Counting.Stage {
	case CountNonDealer:
		s.Counting.Stage = CountDealer
		return playerPtr(*s.Dealer)
	case CountDealer:
		s.Counting.Stage = CountCrib
		return playerPtr(*s.Dealer)
	default:
		s.Counting.Stage = CountNone
		s.Phase = PhaseDealing
		return nil
	}
}

func recordScoredHand(s *GameState, counter Player, hand []deck.Card, score int, breakdown []string) {
	s.Counting.HandsScored = append(s.Counting.HandsScored, ScoredHand{
		Stage:     s.Counting.Stage,
		Player:    counter,
		Hand:      deck.Clone(hand),
		Score:     score,
		Breakdown: append([]string(nil), breakdown...),
	})
}

// ProcessCount scores the current hand directly, with no claim or dispute:
// the engine computes the score and the points apply immediately.
func ProcessCount(state *GameState, actor Player) (Result, error) {
	counter, hand, isCrib, err := checkCounting(state, actor)
	if err != nil {
		return Result{}, err
	}
	if state.Counting.Claim != nil {
		return Result{}, fmt.Errorf("a claimed count is awaiting verification")
	}

	next := state.Clone()
	hs := scoring.ScoreHand(hand, *next.CutCard, isCrib)
	stage := next.Counting.Stage
	recordScoredHand(next, counter, hand, hs.Score, hs.Breakdown)
	nextTurn := advanceStage(next)

	return Result{
		NewState:    next,
		Description: fmt.Sprintf("%s counts the %s for %d", counter, stage, hs.Score),
		NextTurn:    nextTurn,
		ScoreChange: hs.Score,
		ScorePlayer: playerPtr(counter),
		Breakdown:   hs.Breakdown,
	}, nil
}

// ProcessClaimCount announces a claimed score for the current hand. The
// actual score is computed and stored but not revealed: the opponent must
// verify or call muggins before anything applies.
func ProcessClaimCount(state *GameState, actor Player, claimed int) (Result, error) {
	counter, hand, isCrib, err := checkCounting(state, actor)
	if err != nil {
		return Result{}, err
	}
	if state.Counting.Claim != nil {
		return Result{}, fmt.Errorf("a claimed count is already awaiting verification")
	}
	if claimed < 0 {
		return Result{}, fmt.Errorf("claimed score cannot be negative")
	}

	next := state.Clone()
	hs := scoring.ScoreHand(hand, *next.CutCard, isCrib)
	next.Counting.Claim = &PendingClaim{
		Player:          counter,
		ClaimedScore:    claimed,
		ActualScore:     hs.Score,
		ActualBreakdown: hs.Breakdown,
		CountedHand:     deck.Clone(hand),
		IsCrib:          isCrib,
	}

	return Result{
		NewState:    next,
		Description: fmt.Sprintf("%s claims %d for the %s", counter, claimed, next.Counting.Stage),
		NextTurn:    playerPtr(counter.Other()),
	}, nil
}

// ProcessVerifyCount accepts the opponent's claim as announced. The counter
// is awarded exactly the claimed score, even when it understates the hand:
// undercounted points are gone for good.
func ProcessVerifyCount(state *GameState, actor Player) (Result, error) {
	if state.Phase != PhaseCounting {
		return Result{}, fmt.Errorf("%w: counting requires %s phase, game is in %s",
			ErrWrongPhase, PhaseCounting, state.Phase)
	}
	claim := state.Counting.Claim
	if claim == nil {
		return Result{}, ErrNoPendingClaim
	}
	if actor != claim.Player.Other() {
		return Result{}, fmt.Errorf("%w: only %s may verify this count",
			ErrWrongPlayer, claim.Player.Other())
	}

	next := state.Clone()
	stage := next.Counting.Stage
	recordScoredHand(next, claim.Player, claim.CountedHand, claim.ClaimedScore, claim.ActualBreakdown)
	next.Counting.Claim = nil
	nextTurn := advanceStage(next)

	return Result{
		NewState:    next,
		Description: fmt.Sprintf("%s verifies %d for the %s", actor, claim.ClaimedScore, stage),
		NextTurn:    nextTurn,
		ScoreChange: claim.ClaimedScore,
		ScorePlayer: playerPtr(claim.Player),
		Breakdown:   claim.ActualBreakdown,
	}, nil
}

// ProcessCallMuggins challenges the opponent's claim. An overclaim costs the
// counter everything: they score nothing and the caller takes the overclaimed
// difference. A correct claim stands untouched (the call was wrong), and an
// undercount also stands as claimed: muggins never recovers points the
// counter left on the table.
func ProcessCallMuggins(state *GameState, actor Player) (Result, error) {
	if state.Phase != PhaseCounting {
		return Result{}, fmt.Errorf("%w: counting requires %s phase, game is in %s",
			ErrWrongPhase, PhaseCounting, state.Phase)
	}
	claim := state.Counting.Claim
	if claim == nil {
		return Result{}, ErrNoPendingClaim
	}
	if actor != claim.Player.Other() {
		return Result{}, fmt.Errorf("%w: only %s may call muggins",
			ErrWrongPlayer, claim.Player.Other())
	}

	next := state.Clone()
	stage := next.Counting.Stage

	var counterScore, award int
	var desc string
	switch {
	case claim.ClaimedScore > claim.ActualScore:
		counterScore = 0
		award = claim.ClaimedScore - claim.ActualScore
		desc = fmt.Sprintf("muggins! %s overclaimed the %s (%d announced, %d actual): %s takes %d",
			claim.Player, stage, claim.ClaimedScore, claim.ActualScore, actor, award)
	case claim.ClaimedScore == claim.ActualScore:
		counterScore = claim.ClaimedScore
		desc = fmt.Sprintf("muggins call was wrong: %d for the %s stands", claim.ClaimedScore, stage)
	default:
		counterScore = claim.ClaimedScore
		desc = fmt.Sprintf("%s undercounted the %s (%d announced, %d actual): the claim stands",
			claim.Player, stage, claim.ClaimedScore, claim.ActualScore)
	}

	recordScoredHand(next, claim.Player, claim.CountedHand, counterScore, claim.ActualBreakdown)
	next.Counting.Claim = nil
	nextTurn := advanceStage(next)

	return Result{
		NewState:     next,
		Description:  desc,
		NextTurn:     nextTurn,
		ScoreChange:  counterScore,
		ScorePlayer:  playerPtr(claim.Player),
		Breakdown:    claim.ActualBreakdown,
		MugginsAward: award,
	}, nil
}
