// Package game implements the core rules engine for two-player cribbage.
//
// The main type is GameState, the single serializable source of truth for a
// match in progress: phases, hands, the crib, the pegging table and the
// counting log. State only changes through action handlers, which are pure
// functions from (state, actor, action) to (Result, error) — the input state
// is deep-copied before anything is touched, so a caller must only persist
// Result.NewState when no error was returned.
//
// # Basic Usage
//
// Start a match at the cut-for-dealer handshake and feed actions through
// Apply:
//
//	state := game.Initialize(nil, nil, randutil.New(42))
//	res, err := game.Apply(state, game.PlayerOne, game.CutForDealer{Index: 3})
//	if err == nil {
//	    state = res.NewState
//	}
//
// Or deal straight into a round for tests, with a pre-built deck:
//
//	dealer := game.PlayerOne
//	state := game.Initialize(&dealer, testDeck, nil)
//
// # Concurrency
//
// Two clients may poll and submit against the same persisted state. While a
// pegging score is pending, every play or go from either side fails with
// ErrScorePending until the scoring player accepts: strict alternation
// between "an action produced points" and "the result was acknowledged" is
// the engine's whole concurrency story. Atomic read-modify-write of the
// persisted state is the caller's responsibility.
//
// # Match score
//
// The engine never tracks the 121-point match score; the caller accumulates
// Result.ScoreChange (and MugginsAward) and passes the totals to
// StartNewRound, which ends the game once either side has reached 121.
package game
