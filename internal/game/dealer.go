package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/cribbage/internal/deck"
)

// ProcessCutForDealer draws a card from the deck for the opening cut. Once
// both players have drawn, the lower rank takes the first deal; a tied cut
// returns both cards to the deck for a fresh draw.
func ProcessCutForDealer(state *GameState, actor Player, index int) (Result, error) {
	if state.Phase != PhaseCuttingForDealer {
		return Result{}, fmt.Errorf("%w: cut-for-dealer requires %s phase, game is in %s",
			ErrWrongPhase, PhaseCuttingForDealer, state.Phase)
	}
	if state.CutForDealer.Dealer != nil {
		return Result{}, fmt.Errorf("%w: dealer already determined", ErrWrongPhase)
	}
	if state.CutForDealer.Draws[actor] != nil {
		return Result{}, fmt.Errorf("%w: %s has already cut", ErrWrongPlayer, actor)
	}

	next := state.Clone()
	d := deck.FromCards(next.RemainingDeck)
	card, err := d.DrawAt(index)
	if err != nil {
		return Result{}, err
	}
	next.RemainingDeck = d.Cards()
	next.CutForDealer.Draws[actor] = &card

	opponent := actor.Other()
	opposing := next.CutForDealer.Draws[opponent]
	if opposing == nil {
		return Result{
			NewState:    next,
			Description: fmt.Sprintf("%s cuts %s", actor, card),
			NextTurn:    playerPtr(opponent),
		}, nil
	}

	if card.Rank == opposing.Rank {
		// Tied cut: both cards go back and both players cut again.
		next.RemainingDeck = append(next.RemainingDeck, *next.CutForDealer.Draws[0], *next.CutForDealer.Draws[1])
		next.CutForDealer.Draws = [2]*deck.Card{}
		return Result{
			NewState:    next,
			Description: fmt.Sprintf("%s cuts %s, tied with %s: cut again", actor, card, opposing),
			NextTurn:    playerPtr(actor),
		}, nil
	}

	dealer := actor
	if opposing.Rank < card.Rank {
		dealer = opponent
	}
	next.CutForDealer.Dealer = playerPtr(dealer)
	next.Dealer = playerPtr(dealer)

	return Result{
		NewState:    next,
		Description: fmt.Sprintf("%s cuts %s: %s deals first", actor, card, dealer),
		NextTurn:    playerPtr(actor),
	}, nil
}

// ProcessAcknowledgeDealer records that a player has seen who deals first.
// Both acknowledgements gate the deal so neither client misses the result.
func ProcessAcknowledgeDealer(state *GameState, actor Player) (Result, error) {
	if state.Phase != PhaseCuttingForDealer {
		return Result{}, fmt.Errorf("%w: acknowledge-dealer requires %s phase, game is in %s",
			ErrWrongPhase, PhaseCuttingForDealer, state.Phase)
	}
	if state.CutForDealer.Dealer == nil {
		return Result{}, fmt.Errorf("%w: dealer has not been determined yet", ErrWrongPhase)
	}
	if state.CutForDealer.Acknowledged[actor] {
		return Result{}, fmt.Errorf("%w: %s has already acknowledged", ErrWrongPlayer, actor)
	}

	next := state.Clone()
	next.CutForDealer.Acknowledged[actor] = true

	nextTurn := actor.Other()
	if next.CutForDealer.Acknowledged[nextTurn] {
		nextTurn = *next.Dealer
	}
	return Result{
		NewState:    next,
		Description: fmt.Sprintf("%s acknowledges the dealer", actor),
		NextTurn:    playerPtr(nextTurn),
	}, nil
}

// ProcessDeal has the dealer deal the first hand of the match. Both players
// must have acknowledged the opening cut. The supplied rng shuffles a fresh
// deck; it is the only randomness in the handler.
func ProcessDeal(state *GameState, actor Player, rng *rand.Rand) (Result, error) {
	if state.Phase != PhaseCuttingForDealer {
		return Result{}, fmt.Errorf("%w: deal requires %s phase, game is in %s",
			ErrWrongPhase, PhaseCuttingForDealer, state.Phase)
	}
	if state.Dealer == nil {
		return Result{}, fmt.Errorf("%w: dealer has not been determined yet", ErrWrongPhase)
	}
	if actor != *state.Dealer {
		return Result{}, fmt.Errorf("%w: only the dealer (%s) may deal", ErrWrongPlayer, *state.Dealer)
	}
	if !state.CutForDealer.Acknowledged[0] || !state.CutForDealer.Acknowledged[1] {
		return Result{}, fmt.Errorf("%w: both players must acknowledge the dealer before dealing", ErrWrongPhase)
	}
	if rng == nil {
		return Result{}, fmt.Errorf("deal requires an explicit random source")
	}

	next := state.Clone()
	d := deck.New()
	d.Shuffle(rng)
	dealInto(next, d)

	return Result{
		NewState:    next,
		Description: fmt.Sprintf("%s deals round %d", actor, next.Round),
		NextTurn:    playerPtr(next.NonDealer()),
	}, nil
}
