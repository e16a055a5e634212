package game

import (
	"fmt"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/scoring"
)

// MaxCount is the pegging count cap
const MaxCount = 31

// hasLegalPlay reports whether p holds any card playable under the current
// count. An empty hand has no legal play.
func hasLegalPlay(s *GameState, p Player) bool {
	for _, c := range s.Play.Hands[p] {
		if s.Play.CurrentCount+c.Value() <= MaxCount {
			return true
		}
	}
	return false
}

// nextPegger derives whose turn it is from the play sub-state alone. The
// default is the opponent of the last player to lay a card (the non-dealer
// leads a fresh round), but a standing go or an unplayable count passes the
// turn back while the other side can still play. When neither side can play,
// the turn lands on the defaulted player so the go declaration that resolves
// the round comes from them.
func nextPegger(s *GameState) Player {
	var cand Player
	if s.Play.LastPlayedBy == nil {
		cand = s.NonDealer()
	} else {
		cand = s.Play.LastPlayedBy.Other()
	}

	if s.Play.SaidGo[cand] {
		return cand.Other()
	}
	if hasLegalPlay(s, cand) {
		return cand
	}
	if hasLegalPlay(s, cand.Other()) {
		return cand.Other()
	}
	return cand
}

// ProcessPlay plays a card during pegging. A play that scores parks the
// points as the pending score: nothing further happens until the scoring
// player accepts. Hitting exactly 31 resets the count immediately (the reset
// itself is not gated), and a play that empties both hands with no points
// moves straight into counting.
func ProcessPlay(state *GameState, actor Player, card deck.Card) (Result, error) {
	if state.Phase != PhasePlaying {
		return Result{}, fmt.Errorf("%w: play requires %s phase, game is in %s",
			ErrWrongPhase, PhasePlaying, state.Phase)
	}
	if state.PendingPeggingScore != nil {
		return Result{}, fmt.Errorf("%w (%s for %d)", ErrScorePending,
			state.PendingPeggingScore.Reason, state.PendingPeggingScore.Points)
	}
	if expected := nextPegger(state); actor != expected {
		return Result{}, fmt.Errorf("%w: it is %s's turn", ErrWrongPlayer, expected)
	}
	if !deck.Contains(state.Play.Hands[actor], card) {
		return Result{}, fmt.Errorf("card %s is not in %s's play hand", card, actor)
	}
	if state.Play.CurrentCount+card.Value() > MaxCount {
		return Result{}, fmt.Errorf("playing %s would take the count to %d (max %d)",
			card, state.Play.CurrentCount+card.Value(), MaxCount)
	}

	next := state.Clone()
	next.Play.Hands[actor], _ = deck.Remove(next.Play.Hands[actor], card)
	next.Play.PlayedCards = append(next.Play.PlayedCards, PlayedCard{Player: actor, Card: card})
	next.Play.RoundCards = append(next.Play.RoundCards, card)
	next.Play.CurrentCount += card.Value()
	next.Play.LastPlayedBy = playerPtr(actor)
	// A played card always cancels a standing go.
	next.Play.SaidGo[actor.Other()] = false
	next.PeggingHistory = append(next.PeggingHistory, HistoryEvent{
		Player: actor, Type: "play", Card: &card,
	})

	peg := scoring.ScorePegging(next.Play.RoundCards, next.Play.CurrentCount)
	bothEmpty := len(next.Play.Hands[0]) == 0 && len(next.Play.Hands[1]) == 0
	desc := fmt.Sprintf("%s plays %s (count %d)", actor, card, next.Play.CurrentCount)

	if next.Play.CurrentCount == MaxCount {
		// The count reset is not gated on acceptance, only the points are.
		resetRound(&next.Play)
		next.PendingPeggingScore = &PendingScore{
			Player: actor,
			Points: peg.Score,
			Reason: peg.Reason,
		}
		return Result{
			NewState:    next,
			Description: fmt.Sprintf("%s: %s", desc, peg.Reason),
			NextTurn:    playerPtr(actor),
		}, nil
	}

	if peg.Score > 0 {
		next.PendingPeggingScore = &PendingScore{
			Player:        actor,
			Points:        peg.Score,
			Reason:        peg.Reason,
			NeedsLastCard: bothEmpty,
			ResetRound:    bothEmpty,
		}
		return Result{
			NewState:    next,
			Description: fmt.Sprintf("%s: %s", desc, peg.Reason),
			NextTurn:    playerPtr(actor),
		}, nil
	}

	if bothEmpty {
		beginCounting(next)
		return Result{
			NewState:    next,
			Description: fmt.Sprintf("%s: pegging complete, %s counts first", desc, next.NonDealer()),
			NextTurn:    playerPtr(next.NonDealer()),
		}, nil
	}

	return Result{
		NewState:    next,
		Description: desc,
		NextTurn:    playerPtr(nextPegger(next)),
	}, nil
}

// ProcessGo declares that the actor cannot play without exceeding 31. The
// claim is validated against their hand, never trusted. If the opponent is
// also stuck the last player to lay a card scores a pending "go" point and
// the round resets on acceptance; otherwise the turn simply passes.
func ProcessGo(state *GameState, actor Player) (Result, error) {
	if state.Phase != PhasePlaying {
		return Result{}, fmt.Errorf("%w: go requires %s phase, game is in %s",
			ErrWrongPhase, PhasePlaying, state.Phase)
	}
	if state.PendingPeggingScore != nil {
		return Result{}, fmt.Errorf("%w (%s for %d)", ErrScorePending,
			state.PendingPeggingScore.Reason, state.PendingPeggingScore.Points)
	}
	if state.Play.SaidGo[actor] {
		return Result{}, fmt.Errorf("%w: %s has already said go", ErrWrongPlayer, actor)
	}
	if hasLegalPlay(state, actor) {
		return Result{}, fmt.Errorf("%s has a legal card and cannot say go", actor)
	}

	next := state.Clone()
	next.Play.SaidGo[actor] = true
	next.PeggingHistory = append(next.PeggingHistory, HistoryEvent{Player: actor, Type: "go"})

	opponent := actor.Other()
	if !next.Play.SaidGo[opponent] && hasLegalPlay(next, opponent) {
		return Result{
			NewState:    next,
			Description: fmt.Sprintf("%s says go", actor),
			NextTurn:    playerPtr(opponent),
		}, nil
	}

	// Neither side can play: the last card scores the go point.
	if next.Play.LastPlayedBy == nil {
		return Result{}, fmt.Errorf("no cards have been played yet")
	}
	scorer := *next.Play.LastPlayedBy
	points, reason := 1, "go for 1"
	if next.Play.CurrentCount == MaxCount {
		points, reason = 2, "thirty-one for 2"
	}
	next.PendingPeggingScore = &PendingScore{
		Player:     scorer,
		Points:     points,
		Reason:     reason,
		ResetRound: true,
	}
	return Result{
		NewState:    next,
		Description: fmt.Sprintf("%s says go: %s for %s", actor, reason, scorer),
		NextTurn:    playerPtr(scorer),
	}, nil
}

// ProcessAcceptScore applies the pending pegging score. Only the scoring
// player may accept. Chained outcomes apply in a fixed order: points first,
// then a queued last-card point, then the round reset, then the his-heels
// transition into pegging.
func ProcessAcceptScore(state *GameState, actor Player) (Result, error) {
	pending := state.PendingPeggingScore
	if pending == nil {
		return Result{}, ErrNoPendingScore
	}
	if actor != pending.Player {
		return Result{}, fmt.Errorf("%w: the pending %s belongs to %s",
			ErrWrongPlayer, pending.Reason, pending.Player)
	}

	next := state.Clone()
	next.PendingPeggingScore = nil
	next.PeggingPoints[actor] += pending.Points
	next.PeggingHistory = append(next.PeggingHistory, HistoryEvent{
		Player: actor, Type: "score", Points: pending.Points, Reason: pending.Reason,
	})

	result := Result{
		Description: fmt.Sprintf("%s scores %d (%s)", actor, pending.Points, pending.Reason),
		ScoreChange: pending.Points,
		ScorePlayer: playerPtr(actor),
	}

	if pending.NeedsLastCard {
		next.PendingPeggingScore = &PendingScore{
			Player:     actor,
			Points:     1,
			Reason:     "last card",
			ResetRound: pending.ResetRound,
		}
		result.NewState = next
		result.NextTurn = playerPtr(actor)
		return result, nil
	}

	if pending.ResetRound {
		resetRound(&next.Play)
	}

	if pending.IsHisHeels {
		next.Phase = PhasePlaying
		result.NewState = next
		result.NextTurn = playerPtr(next.NonDealer())
		return result, nil
	}

	if next.Phase == PhasePlaying && len(next.Play.Hands[0]) == 0 && len(next.Play.Hands[1]) == 0 {
		beginCounting(next)
		result.NewState = next
		result.NextTurn = playerPtr(next.NonDealer())
		return result, nil
	}

	result.NewState = next
	result.NextTurn = playerPtr(nextPegger(next))
	return result, nil
}

// resetRound clears the 31-count sub-round: the count, the round cards and
// both go flags. The full played-card list and history are untouched.
func resetRound(play *PlayState) {
	play.CurrentCount = 0
	play.RoundCards = []deck.Card{}
	play.SaidGo = [2]bool{}
}

func beginCounting(s *GameState) {
	s.Phase = PhaseCounting
	s.Counting.Stage = CountNonDealer
}
