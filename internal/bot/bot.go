// Package bot implements the computer opponent. A Bot pairs a discard
// strategy with a pegging strategy, selected by a difficulty profile, and
// draws every piece of randomness from a single injected RNG so that a fixed
// seed reproduces its behaviour exactly.
//
// Bots only make decisions. Their choices are fed back through the same
// game.Apply path as human actions, so there is exactly one code path for
// rule enforcement.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/cribbage/internal/deck"
)

// DiscardStrategy selects which discard algorithm a profile uses
type DiscardStrategy int

const (
	// DiscardHeuristic scores keep-sets with bounded heuristics
	DiscardHeuristic DiscardStrategy = iota
	// DiscardExpectedValue averages the exact hand score over all 46
	// possible cut cards and a published crib-value table
	DiscardExpectedValue
)

// PeggingStrategy selects which pegging algorithm a profile uses
type PeggingStrategy int

const (
	// PeggingHeuristic uses situational weights with a small seeded jitter
	PeggingHeuristic PeggingStrategy = iota
	// PeggingExpert is deterministic, with deeper positional weighting
	PeggingExpert
)

// Profile is a difficulty profile. CountingErrorRate is the probability the
// bot mis-announces a count when using the claim/verify protocol, and
// CountingErrorRange bounds the size of the slip.
type Profile struct {
	Name               string
	Discard            DiscardStrategy
	Pegging            PeggingStrategy
	CountingErrorRate  float64
	CountingErrorRange int
}

// Built-in difficulty levels
var (
	Easy = Profile{
		Name:               "easy",
		Discard:            DiscardHeuristic,
		Pegging:            PeggingHeuristic,
		CountingErrorRate:  0.25,
		CountingErrorRange: 4,
	}
	Standard = Profile{
		Name:               "standard",
		Discard:            DiscardExpectedValue,
		Pegging:            PeggingHeuristic,
		CountingErrorRate:  0.05,
		CountingErrorRange: 2,
	}
	Expert = Profile{
		Name:    "expert",
		Discard: DiscardExpectedValue,
		Pegging: PeggingExpert,
	}
)

// ProfileForLevel resolves a named difficulty level
func ProfileForLevel(level string) (Profile, error) {
	switch level {
	case "easy":
		return Easy, nil
	case "standard", "medium":
		return Standard, nil
	case "expert", "hard":
		return Expert, nil
	default:
		return Profile{}, fmt.Errorf("unknown difficulty level %q", level)
	}
}

// Bot is a computer opponent with a fixed profile. All randomness flows
// through the single injected rng; the expert strategies never touch it, so
// they behave identically under any seed.
type Bot struct {
	profile Profile
	rng     *rand.Rand
	logger  *log.Logger
}

// New creates a bot with the given profile and random source
func New(profile Profile, rng *rand.Rand, logger *log.Logger) *Bot {
	return &Bot{
		profile: profile,
		rng:     rng,
		logger:  logger.WithPrefix("bot"),
	}
}

// Profile returns the bot's difficulty profile
func (b *Bot) Profile() Profile {
	return b.profile
}

// SelectDiscard chooses the four cards to keep from a six-card hand.
// isDealer tells the strategy whose crib the discards feed. A hand of the
// wrong size is a caller bug: it is logged loudly and answered with the first
// four cards rather than stalling the game.
func (b *Bot) SelectDiscard(hand []deck.Card, isDealer bool) []deck.Card {
	if len(hand) != 6 {
		b.logger.Error("discard selection called with malformed hand",
			"cards", len(hand), "profile", b.profile.Name)
		if len(hand) < 4 {
			return deck.Clone(hand)
		}
		return deck.Clone(hand[:4])
	}

	var keep []deck.Card
	switch b.profile.Discard {
	case DiscardExpectedValue:
		keep = selectDiscardExpectedValue(hand, isDealer)
	default:
		keep = selectDiscardHeuristic(hand, isDealer)
	}

	if len(keep) != 4 {
		b.logger.Error("discard strategy returned wrong keep count",
			"cards", len(keep), "profile", b.profile.Name)
		return deck.Clone(hand[:4])
	}

	b.logger.Debug("discard selected",
		"profile", b.profile.Name, "isDealer", isDealer, "keep", fmt.Sprint(keep))
	return keep
}

// SelectPlay chooses a pegging card, or nil for go. roundCards are the cards
// of the current 31-count, allPlayed everything played this pegging phase
// (the expert strategy estimates the opponent's remaining tens from it).
func (b *Bot) SelectPlay(hand, roundCards, allPlayed []deck.Card, currentCount int) *deck.Card {
	legal := legalPlays(hand, currentCount)
	if len(legal) == 0 {
		return nil
	}

	var card deck.Card
	switch b.profile.Pegging {
	case PeggingExpert:
		card = selectPlayExpert(legal, hand, roundCards, allPlayed, currentCount)
	default:
		card = selectPlayHeuristic(legal, hand, roundCards, currentCount, b.rng)
	}

	b.logger.Debug("play selected",
		"profile", b.profile.Name, "card", card, "count", currentCount)
	return &card
}

// AnnounceCount returns the score the bot claims for a hand that actually
// counts to actual. Profiles with a counting error rate occasionally slip by
// up to CountingErrorRange points in either direction, which is what makes
// muggins reachable against the computer.
func (b *Bot) AnnounceCount(actual int) int {
	if b.profile.CountingErrorRate <= 0 || b.rng.Float64() >= b.profile.CountingErrorRate {
		return actual
	}
	delta := b.rng.IntN(2*b.profile.CountingErrorRange+1) - b.profile.CountingErrorRange
	claimed := actual + delta
	if claimed < 0 {
		claimed = 0
	}
	if claimed != actual {
		b.logger.Debug("bot miscounts", "actual", actual, "claimed", claimed)
	}
	return claimed
}

// ShouldCallMuggins decides whether to challenge an opponent's claimed
// count. Only an overclaim is worth challenging: an undercount stands as
// claimed either way and a correct claim makes the call "wrong". Profiles
// that miscount also sometimes miss an overclaim.
func (b *Bot) ShouldCallMuggins(claimed, actual int) bool {
	if claimed <= actual {
		return false
	}
	if b.profile.CountingErrorRate > 0 && b.rng.Float64() < b.profile.CountingErrorRate {
		return false
	}
	return true
}

// legalPlays filters hand to cards playable under the count
func legalPlays(hand []deck.Card, currentCount int) []deck.Card {
	var legal []deck.Card
	for _, c := range hand {
		if currentCount+c.Value() <= 31 {
			legal = append(legal, c)
		}
	}
	return legal
}
