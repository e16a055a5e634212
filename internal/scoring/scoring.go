// Package scoring implements cribbage scoring as pure functions: full hand
// counting (fifteens, pairs, runs, flushes, his nobs) and pegging scoring
// (fifteens, thirty-ones, trailing pairs and runs).
//
// All functions are deterministic and total: a hand with nothing in it scores
// zero rather than erroring. Breakdown strings are ordered the way the score
// would be called out at a table: fifteens, pairs, runs, flush, nobs.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/cribbage/internal/deck"
)

// HandScore is the result of counting a full hand against the starter card
type HandScore struct {
	Score     int      `json:"score"`
	Breakdown []string `json:"breakdown"`
}

// ScoreHand counts a 4-card hand plus the starter. isCrib applies the crib
// flush rule: a crib flush needs all five cards to match, a hand flush only
// needs the four held cards.
//
// The hand argument order is irrelevant; the result is the same for any
// permutation.
func ScoreHand(hand []deck.Card, cut deck.Card, isCrib bool) HandScore {
	all := make([]deck.Card, 0, len(hand)+1)
	all = append(all, hand...)
	all = append(all, cut)

	var result HandScore
	result.Breakdown = []string{}

	scoreFifteens(all, &result)
	scorePairs(all, &result)
	scoreRuns(all, &result)
	scoreFlush(hand, cut, isCrib, &result)
	scoreNobs(hand, cut, &result)

	return result
}

// scoreFifteens awards 2 points for every distinct subset of cards whose
// counting values sum to 15. A 5-card hand has 31 non-empty subsets; singles
// can never reach 15 so only subsets of two or more contribute.
func scoreFifteens(cards []deck.Card, result *HandScore) {
	n := len(cards)
	for mask := 1; mask < (1 << n); mask++ {
		sum := 0
		var members []deck.Card
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += cards[i].Value()
				members = append(members, cards[i])
			}
		}
		if sum == 15 && len(members) >= 2 {
			result.Score += 2
			result.Breakdown = append(result.Breakdown,
				fmt.Sprintf("fifteen (%s) for 2", cardList(members)))
		}
	}
}

// scorePairs awards 2 points per unordered pair of equal-rank cards. Counting
// every pair individually makes trips worth 6 and quads worth 12 without any
// special casing.
func scorePairs(cards []deck.Card, result *HandScore) {
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Rank == cards[j].Rank {
				result.Score += 2
				result.Breakdown = append(result.Breakdown,
					fmt.Sprintf("pair of %ss (%s, %s) for 2", cards[i].Rank, cards[i], cards[j]))
			}
		}
	}
}

// scoreRuns finds the longest run of consecutive ranks (3 or more) and scores
// every distinct instance of it. A duplicated rank inside the run multiplies
// the instances: 4-4-5-6 scores two runs of three. Shorter runs contained in
// the longest never score on their own.
func scoreRuns(cards []deck.Card, result *HandScore) {
	byRank := map[deck.Rank][]deck.Card{}
	var ranks []int
	for _, c := range cards {
		if len(byRank[c.Rank]) == 0 {
			ranks = append(ranks, int(c.Rank))
		}
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	sort.Ints(ranks)

	bestLen := 0
	var bestWindows [][]int
	for start := 0; start < len(ranks); start++ {
		for end := start + 2; end < len(ranks); end++ {
			runLen := end - start + 1
			if ranks[end]-ranks[start] != runLen-1 {
				continue
			}
			window := ranks[start : end+1]
			if runLen > bestLen {
				bestLen = runLen
				bestWindows = [][]int{window}
			} else if runLen == bestLen {
				bestWindows = append(bestWindows, window)
			}
		}
	}
	if bestLen == 0 {
		return
	}

	for _, window := range bestWindows {
		for _, instance := range runInstances(window, byRank) {
			result.Score += bestLen
			result.Breakdown = append(result.Breakdown,
				fmt.Sprintf("run of %d (%s) for %d", bestLen, cardList(instance), bestLen))
		}
	}
}

// runInstances expands a window of consecutive ranks into every concrete card
// combination, one card per rank.
func runInstances(window []int, byRank map[deck.Rank][]deck.Card) [][]deck.Card {
	instances := [][]deck.Card{{}}
	for _, r := range window {
		var next [][]deck.Card
		for _, instance := range instances {
			for _, c := range byRank[deck.Rank(r)] {
				grown := make([]deck.Card, len(instance), len(instance)+1)
				copy(grown, instance)
				next = append(next, append(grown, c))
			}
		}
		instances = next
	}
	return instances
}

func scoreFlush(hand []deck.Card, cut deck.Card, isCrib bool, result *HandScore) {
	if len(hand) != 4 {
		return
	}
	suit := hand[0].Suit
	for _, c := range hand[1:] {
		if c.Suit != suit {
			return
		}
	}
	if cut.Suit == suit {
		result.Score += 5
		result.Breakdown = append(result.Breakdown, "five-card flush for 5")
		return
	}
	// A four-card flush never counts in the crib.
	if isCrib {
		return
	}
	result.Score += 4
	result.Breakdown = append(result.Breakdown, "flush for 4")
}

func scoreNobs(hand []deck.Card, cut deck.Card, result *HandScore) {
	for _, c := range hand {
		if c.Rank == deck.Jack && c.Suit == cut.Suit {
			result.Score++
			result.Breakdown = append(result.Breakdown,
				fmt.Sprintf("his nobs (%s) for 1", c))
			return
		}
	}
}

// PegScore is the result of scoring the most recent pegging play
type PegScore struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// ScorePegging scores the last card of roundCards, the cards played since the
// count last reset. currentCount is the running count after that card. All
// bonuses are additive: hitting 15 with the third card of a run scores both.
func ScorePegging(roundCards []deck.Card, currentCount int) PegScore {
	if len(roundCards) == 0 {
		return PegScore{}
	}

	var score int
	var reasons []string

	if currentCount == 15 {
		score += 2
		reasons = append(reasons, "fifteen for 2")
	}
	if currentCount == 31 {
		score += 2
		reasons = append(reasons, "thirty-one for 2")
	}

	// Trailing same-rank cards, scanning back from the last card played.
	last := roundCards[len(roundCards)-1]
	same := 1
	for i := len(roundCards) - 2; i >= 0; i-- {
		if roundCards[i].Rank != last.Rank {
			break
		}
		same++
	}
	switch same {
	case 2:
		score += 2
		reasons = append(reasons, fmt.Sprintf("pair of %ss for 2", last.Rank))
	case 3:
		score += 6
		reasons = append(reasons, fmt.Sprintf("three %ss for 6", last.Rank))
	case 4:
		score += 12
		reasons = append(reasons, fmt.Sprintf("four %ss for 12", last.Rank))
	}

	// Longest trailing run, checking windows from 7 cards down to 3. Run order
	// does not matter during pegging, only that the trailing cards form an
	// unbroken rank sequence.
	maxWindow := len(roundCards)
	if maxWindow > 7 {
		maxWindow = 7
	}
	for n := maxWindow; n >= 3; n-- {
		if isRun(roundCards[len(roundCards)-n:]) {
			score += n
			reasons = append(reasons, fmt.Sprintf("run of %d for %d", n, n))
			break
		}
	}

	return PegScore{Score: score, Reason: strings.Join(reasons, " and ")}
}

// isRun reports whether the cards hold exactly one of each rank in some
// unbroken sequence.
func isRun(cards []deck.Card) bool {
	seen := map[int]bool{}
	lo, hi := int(deck.King)+1, 0
	for _, c := range cards {
		r := int(c.Rank)
		if seen[r] {
			return false
		}
		seen[r] = true
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	return hi-lo+1 == len(cards)
}

func cardList(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
