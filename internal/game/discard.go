package game

import (
	"fmt"

	"github.com/lox/cribbage/internal/deck"
)

// ProcessDiscard sends exactly two cards from the actor's hand to the crib.
// Once both players have discarded, four-card pegging hands are set up and
// the game moves to the cut, non-dealer first.
func ProcessDiscard(state *GameState, actor Player, cards []deck.Card) (Result, error) {
	if state.Phase != PhaseDiscarding {
		return Result{}, fmt.Errorf("%w: discard requires %s phase, game is in %s",
			ErrWrongPhase, PhaseDiscarding, state.Phase)
	}
	if len(cards) != 2 {
		return Result{}, fmt.Errorf("must discard exactly 2 cards, got %d", len(cards))
	}
	if len(state.Players[actor].Discards) > 0 {
		return Result{}, fmt.Errorf("%w: %s has already discarded", ErrWrongPlayer, actor)
	}
	if cards[0] == cards[1] {
		return Result{}, fmt.Errorf("cannot discard the same card twice (%s)", cards[0])
	}

	next := state.Clone()
	hand := next.Players[actor].Hand
	for _, c := range cards {
		var ok bool
		hand, ok = deck.Remove(hand, c)
		if !ok {
			return Result{}, fmt.Errorf("card %s is not in %s's hand", c, actor)
		}
	}
	next.Players[actor].Hand = hand
	next.Players[actor].Discards = deck.Clone(cards)
	next.Crib = append(next.Crib, cards...)

	opponent := actor.Other()
	if len(next.Players[opponent].Discards) == 0 {
		return Result{
			NewState:    next,
			Description: fmt.Sprintf("%s discards to the crib", actor),
			NextTurn:    playerPtr(opponent),
		}, nil
	}

	// Both discarded: lock in the pegging hands and move to the cut.
	next.Phase = PhaseCut
	next.Play = PlayState{
		Hands: [2][]deck.Card{
			deck.Clone(next.Players[0].Hand),
			deck.Clone(next.Players[1].Hand),
		},
	}

	return Result{
		NewState:    next,
		Description: fmt.Sprintf("%s discards to the crib: %s cuts for the starter", actor, next.NonDealer()),
		NextTurn:    playerPtr(next.NonDealer()),
	}, nil
}

// ProcessCutStarter reveals the starter card at the given index in the
// remaining deck. The non-dealer cuts. A jack starter scores "his heels" for
// the dealer as a pending score: the dealer must accept it before play
// begins. Any other card moves straight to pegging with the non-dealer
// leading.
func ProcessCutStarter(state *GameState, actor Player, index int) (Result, error) {
	if state.Phase != PhaseCut {
		return Result{}, fmt.Errorf("%w: cut requires %s phase, game is in %s",
			ErrWrongPhase, PhaseCut, state.Phase)
	}
	if state.CutCard != nil {
		return Result{}, fmt.Errorf("%w: the starter has already been cut", ErrWrongPhase)
	}
	if actor != state.NonDealer() {
		return Result{}, fmt.Errorf("%w: the non-dealer (%s) cuts the starter", ErrWrongPlayer, state.NonDealer())
	}

	next := state.Clone()
	d := deck.FromCards(next.RemainingDeck)
	card, err := d.DrawAt(index)
	if err != nil {
		return Result{}, err
	}
	next.RemainingDeck = d.Cards()
	next.CutCard = &card

	if card.Rank == deck.Jack {
		dealer := *next.Dealer
		next.PendingPeggingScore = &PendingScore{
			Player:     dealer,
			Points:     2,
			Reason:     "his heels",
			IsHisHeels: true,
		}
		return Result{
			NewState:    next,
			Description: fmt.Sprintf("%s cuts %s: his heels, 2 for the dealer", actor, card),
			NextTurn:    playerPtr(dealer),
		}, nil
	}

	next.Phase = PhasePlaying
	return Result{
		NewState:    next,
		Description: fmt.Sprintf("%s cuts %s: %s leads", actor, card, next.NonDealer()),
		NextTurn:    playerPtr(next.NonDealer()),
	}, nil
}
