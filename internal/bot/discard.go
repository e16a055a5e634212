package bot

import (
	"math"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/scoring"
)

// discardSplit is one of the C(6,2)=15 ways to break a dealt hand into four
// kept cards and two discards.
type discardSplit struct {
	keep     []deck.Card
	discards [2]deck.Card
}

func splits(hand []deck.Card) []discardSplit {
	var out []discardSplit
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			keep := make([]deck.Card, 0, 4)
			for k, c := range hand {
				if k != i && k != j {
					keep = append(keep, c)
				}
			}
			out = append(out, discardSplit{keep: keep, discards: [2]deck.Card{hand[i], hand[j]}})
		}
	}
	return out
}

// selectDiscardHeuristic scores each keep-set with bounded heuristics:
// guaranteed fifteens and pairs, near-run potential, a bonus for kept fives,
// and a penalty for feeding fives or ten-value cards to the crib. The penalty
// is roughly three times harsher when the crib belongs to the opponent.
func selectDiscardHeuristic(hand []deck.Card, isDealer bool) []deck.Card {
	best := math.Inf(-1)
	var bestKeep []deck.Card

	for _, split := range splits(hand) {
		s := 0.0
		s += 2 * float64(countFifteens(split.keep))
		s += 2 * float64(countPairs(split.keep))
		s += nearRunPotential(split.keep)
		for _, c := range split.keep {
			if c.Rank == deck.Five {
				s += 2
			}
		}

		cribFactor := 1.0
		if !isDealer {
			// Points fed to the opponent's crib hurt about three times more
			// than points gained in our own.
			cribFactor = 3.0
		}
		for _, c := range split.discards {
			switch {
			case c.Rank == deck.Five:
				s -= 1.0 * cribFactor
			case c.Value() == 10:
				s -= 0.5 * cribFactor
			}
		}

		if s > best {
			best = s
			bestKeep = split.keep
		}
	}
	return bestKeep
}

// selectDiscardExpectedValue computes, for each split, the exact mean score
// of the kept four over all 46 unseen cut cards, then adds (own crib) or
// subtracts (opponent's crib) the published average crib value of the
// discarded pair. 15 splits of 46 evaluations each: a 690-call sweep.
func selectDiscardExpectedValue(hand []deck.Card, isDealer bool) []deck.Card {
	unseen := unseenCards(hand)

	best := math.Inf(-1)
	var bestKeep []deck.Card
	for _, split := range splits(hand) {
		sum := 0
		for _, cut := range unseen {
			sum += scoring.ScoreHand(split.keep, cut, false).Score
		}
		ev := float64(sum) / float64(len(unseen))

		crib := averageCribValue(split.discards[0].Rank, split.discards[1].Rank)
		if isDealer {
			ev += crib
		} else {
			ev -= crib
		}

		if ev > best {
			best = ev
			bestKeep = split.keep
		}
	}
	return bestKeep
}

// unseenCards returns the 46 cards not in the dealt hand
func unseenCards(hand []deck.Card) []deck.Card {
	out := make([]deck.Card, 0, 46)
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		for rank := deck.Ace; rank <= deck.King; rank++ {
			c := deck.NewCard(rank, suit)
			if !deck.Contains(hand, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// countFifteens counts the subsets of cards whose values sum to fifteen
func countFifteens(cards []deck.Card) int {
	n := len(cards)
	count := 0
	for mask := 1; mask < (1 << n); mask++ {
		sum := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += cards[i].Value()
			}
		}
		if sum == 15 {
			count++
		}
	}
	return count
}

func countPairs(cards []deck.Card) int {
	count := 0
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Rank == cards[j].Rank {
				count++
			}
		}
	}
	return count
}

// nearRunPotential awards a point for each pair of kept cards within two
// ranks of each other, a cheap proxy for run and near-run draws.
func nearRunPotential(cards []deck.Card) float64 {
	s := 0.0
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			gap := int(cards[i].Rank) - int(cards[j].Rank)
			if gap < 0 {
				gap = -gap
			}
			if gap >= 1 && gap <= 2 {
				s += 1
			}
		}
	}
	return s
}
