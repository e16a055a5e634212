package bot

import (
	"math"
	rand "math/rand/v2"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/scoring"
)

// selectPlayHeuristic weighs each legal card by its immediate pegging points
// and situational heuristics, with a small seeded jitter so the bot is not
// perfectly predictable. Fixing the RNG seed fixes the choice.
func selectPlayHeuristic(legal, hand, roundCards []deck.Card, currentCount int, rng *rand.Rand) deck.Card {
	best := math.Inf(-1)
	var bestCard deck.Card
	for _, c := range legal {
		s := heuristicPlayScore(c, roundCards, currentCount)
		s += rng.Float64() * 0.3
		if s > best {
			best = s
			bestCard = c
		}
	}
	return bestCard
}

func heuristicPlayScore(c deck.Card, roundCards []deck.Card, currentCount int) float64 {
	newCount := currentCount + c.Value()
	seq := append(deck.Clone(roundCards), c)
	immediate := scoring.ScorePegging(seq, newCount).Score

	s := 3.0 * float64(immediate)
	if newCount == 15 || newCount == 31 {
		s += 0.5
	}

	if currentCount == 0 {
		// Never lead a five, and prefer leads the opponent cannot turn into
		// an immediate fifteen.
		if c.Rank == deck.Five {
			s -= 3
		} else if c.Value() < 5 {
			s += 1
		}
	}

	// Counts of 5, 10 and 21 hand the opponent an easy 15 or 31.
	switch newCount {
	case 5, 10, 21:
		s -= 2
	}

	if len(roundCards) > 0 {
		prev := roundCards[len(roundCards)-1]
		gap := int(c.Rank) - int(prev.Rank)
		if gap < 0 {
			gap = -gap
		}
		if gap >= 1 && gap <= 2 {
			s -= 0.5
		}
	}

	// Hold low cards and aces back for the endgame.
	s += 0.15 * float64(c.Value())
	if c.Rank == deck.Ace {
		s -= 0.4
	}
	return s
}

// selectPlayExpert is the deterministic strategy: the same general shape as
// the heuristic but with no jitter, deeper positional weighting, and a light
// estimate of the opponent's remaining ten-value cards. Identical inputs
// always produce the identical card regardless of any seed.
func selectPlayExpert(legal, hand, roundCards, allPlayed []deck.Card, currentCount int) deck.Card {
	tensUnseen := 16 - countTens(allPlayed) - countTens(hand)

	best := math.Inf(-1)
	var bestCard deck.Card
	for _, c := range legal {
		s := expertPlayScore(c, hand, roundCards, currentCount, tensUnseen)
		if s > best {
			best = s
			bestCard = c
		}
	}
	return bestCard
}

func expertPlayScore(c deck.Card, hand, roundCards []deck.Card, currentCount, tensUnseen int) float64 {
	newCount := currentCount + c.Value()
	seq := append(deck.Clone(roundCards), c)
	immediate := scoring.ScorePegging(seq, newCount).Score

	s := 3.5 * float64(immediate)

	// Making trips is worth chasing; a simple pair also invites the opponent
	// to take six with a third card, so it earns less on top of its points.
	sameRank := 0
	for i := len(roundCards) - 1; i >= 0; i-- {
		if roundCards[i].Rank != c.Rank {
			break
		}
		sameRank++
	}
	switch sameRank {
	case 1:
		s += 0.25
	case 2:
		s += 1.0
	}

	if currentCount == 0 {
		if c.Rank == deck.Five {
			s -= 4
		} else if c.Value() < 5 {
			s += 1.2
		}
	}

	switch newCount {
	case 5, 10:
		s -= 2.2
	case 21:
		// The more ten-value cards unseen, the likelier the opponent can
		// punish a count of 21 with a 31.
		s -= 0.15 * float64(tensUnseen)
	case 11:
		// Trap: a ten-value response leaves 21 and a predictable follow-up.
		s += 0.75
	}

	if len(roundCards) > 0 && sameRank == 0 {
		prev := roundCards[len(roundCards)-1]
		gap := int(c.Rank) - int(prev.Rank)
		if gap < 0 {
			gap = -gap
		}
		if gap >= 1 && gap <= 2 {
			s -= 0.6
		}
	}

	// Retention pressure grows as the hand shrinks: late in the round low
	// cards are the only way to sneak in a last card under 31.
	retention := 0.1 + 0.05*float64(4-len(hand))
	s += retention * float64(c.Value())
	if c.Rank == deck.Ace {
		s -= 0.5
	}
	return s
}

func countTens(cards []deck.Card) int {
	n := 0
	for _, c := range cards {
		if c.Value() == 10 {
			n++
		}
	}
	return n
}
