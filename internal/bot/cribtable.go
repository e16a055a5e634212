package bot

import "github.com/lox/cribbage/internal/deck"

// defaultCribValue is used for any discard pair absent from the table
const defaultCribValue = 3.5

// cribValues holds average crib scores for notable discard pairs, keyed by
// sorted rank pair. Constants follow published two-card discard tables; pairs
// that hover near the overall average are left to the default.
var cribValues = map[[2]deck.Rank]float64{
	{deck.Ace, deck.Ace}:     5.2,
	{deck.Ace, deck.Two}:     4.4,
	{deck.Ace, deck.Three}:   4.6,
	{deck.Ace, deck.Four}:    5.3,
	{deck.Two, deck.Two}:     6.0,
	{deck.Two, deck.Three}:   6.8,
	{deck.Three, deck.Three}: 5.9,
	{deck.Three, deck.Four}:  5.7,
	{deck.Four, deck.Four}:   5.7,
	{deck.Four, deck.Five}:   6.4,
	{deck.Four, deck.Six}:    5.6,
	{deck.Five, deck.Five}:   8.8,
	{deck.Five, deck.Six}:    6.7,
	{deck.Five, deck.Seven}:  6.0,
	{deck.Five, deck.Ten}:    6.7,
	{deck.Five, deck.Jack}:   6.9,
	{deck.Five, deck.Queen}:  6.5,
	{deck.Five, deck.King}:   6.4,
	{deck.Six, deck.Six}:     5.8,
	{deck.Six, deck.Seven}:   5.8,
	{deck.Six, deck.Eight}:   5.3,
	{deck.Six, deck.Nine}:    5.0,
	{deck.Seven, deck.Seven}: 5.9,
	{deck.Seven, deck.Eight}: 6.6,
	{deck.Eight, deck.Eight}: 5.6,
	{deck.Eight, deck.Nine}:  5.2,
	{deck.Nine, deck.Nine}:   5.1,
	{deck.Nine, deck.Ten}:    4.8,
	{deck.Ten, deck.Ten}:     4.9,
	{deck.Ten, deck.Jack}:    4.9,
	{deck.Jack, deck.Jack}:   4.8,
	{deck.Jack, deck.Queen}:  4.8,
	{deck.Queen, deck.Queen}: 4.7,
	{deck.Queen, deck.King}:  4.6,
	{deck.King, deck.King}:   4.6,
}

// averageCribValue returns the expected crib contribution of discarding the
// given rank pair, in points, from the dealer's perspective.
func averageCribValue(a, b deck.Rank) float64 {
	if a > b {
		a, b = b, a
	}
	if v, ok := cribValues[[2]deck.Rank{a, b}]; ok {
		return v
	}
	return defaultCribValue
}
