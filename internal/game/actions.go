package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/cribbage/internal/deck"
)

// Validation errors, wrapped with detail by the individual handlers. A
// returned error always means the input state was left untouched.
var (
	ErrWrongPhase     = errors.New("action not legal in current phase")
	ErrWrongPlayer    = errors.New("action not legal for this player")
	ErrScorePending   = errors.New("a pegging score must be accepted first")
	ErrNoPendingScore = errors.New("no pending score to accept")
	ErrNoPendingClaim = errors.New("no claimed count awaiting verification")
)

// Result is the successful outcome of applying an action. NewState is a fresh
// value: the input state is never mutated.
type Result struct {
	NewState    *GameState
	Description string

	// NextTurn is the player expected to act next, nil if the phase has no
	// designated actor (e.g. game over).
	NextTurn *Player

	// ScoreChange and ScorePlayer report points the caller should fold into
	// the externally-tracked match score.
	ScoreChange int
	ScorePlayer *Player
	Breakdown   []string

	// MugginsAward is the points stolen by a muggins caller, always credited
	// to ScorePlayer's opponent.
	MugginsAward int
}

// Action is the closed set of moves a player can submit. Dispatch happens in
// Apply; adding a new action kind without handling it there is a compile-time
// visible omission in the type switch's default branch.
type Action interface {
	isAction()
}

// CutForDealer draws the card at Index from the deck during the opening cut
type CutForDealer struct {
	Index int
}

// AcknowledgeDealer records that a player has seen the dealer determination
type AcknowledgeDealer struct{}

// Deal asks the dealer to deal the first hand after the opening cut.
// Rng shuffles the fresh deck; supply a seeded one for reproducible deals.
type Deal struct {
	Rng *rand.Rand
}

// Discard sends exactly two cards to the crib
type Discard struct {
	Cards []deck.Card
}

// CutStarter reveals the starter card at Index in the remaining deck. Callers
// wanting a random cut pick the index themselves; the handler stays pure.
type CutStarter struct {
	Index int
}

// PlayCard plays a card during pegging
type PlayCard struct {
	Card deck.Card
}

// Go declares that the player cannot play without exceeding 31
type Go struct{}

// AcceptScore acknowledges the pending pegging score
type AcceptScore struct{}

// Count scores the current hand directly (no claim/dispute protocol)
type Count struct{}

// ClaimCount announces a claimed score for the current hand, to be verified
// or challenged by the opponent
type ClaimCount struct {
	Score int
}

// VerifyCount accepts the opponent's claimed count as announced
type VerifyCount struct{}

// CallMuggins challenges the opponent's claimed count
type CallMuggins struct{}

func (CutForDealer) isAction()      {}
func (AcknowledgeDealer) isAction() {}
func (Deal) isAction()              {}
func (Discard) isAction()           {}
func (CutStarter) isAction()        {}
func (PlayCard) isAction()          {}
func (Go) isAction()                {}
func (AcceptScore) isAction()       {}
func (Count) isAction()             {}
func (ClaimCount) isAction()        {}
func (VerifyCount) isAction()       {}
func (CallMuggins) isAction()       {}

// Apply validates and applies a single player action, returning the new state
// and outcome metadata. There is exactly one rule-enforcement path: human and
// AI actions both come through here (or the per-action Process functions it
// dispatches to).
func Apply(state *GameState, actor Player, action Action) (Result, error) {
	switch a := action.(type) {
	case CutForDealer:
		return ProcessCutForDealer(state, actor, a.Index)
	case AcknowledgeDealer:
		return ProcessAcknowledgeDealer(state, actor)
	case Deal:
		return ProcessDeal(state, actor, a.Rng)
	case Discard:
		return ProcessDiscard(state, actor, a.Cards)
	case CutStarter:
		return ProcessCutStarter(state, actor, a.Index)
	case PlayCard:
		return ProcessPlay(state, actor, a.Card)
	case Go:
		return ProcessGo(state, actor)
	case AcceptScore:
		return ProcessAcceptScore(state, actor)
	case Count:
		return ProcessCount(state, actor)
	case ClaimCount:
		return ProcessClaimCount(state, actor, a.Score)
	case VerifyCount:
		return ProcessVerifyCount(state, actor)
	case CallMuggins:
		return ProcessCallMuggins(state, actor)
	default:
		return Result{}, fmt.Errorf("unknown action type %T", action)
	}
}

func playerPtr(p Player) *Player {
	return &p
}
