package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/display"
	"github.com/lox/cribbage/internal/scoring"
)

// ScoreCmd scores a four-card hand against a starter card.
type ScoreCmd struct {
	Hand    []string `arg:"" help:"Four hand cards, e.g. 5H 5D 5S JH"`
	Starter string   `kong:"required,help='Starter card, e.g. 5C'"`
	Crib    bool     `kong:"help='Score as a crib (flush requires all five cards)'"`
}

func (c *ScoreCmd) Run() error {
	if len(c.Hand) != 4 {
		return fmt.Errorf("expected 4 hand cards, got %d", len(c.Hand))
	}
	hand, err := deck.ParseCards(strings.Join(c.Hand, " "))
	if err != nil {
		return fmt.Errorf("parsing hand: %w", err)
	}
	starter, err := deck.ParseCard(c.Starter)
	if err != nil {
		return fmt.Errorf("parsing starter: %w", err)
	}
	if deck.Contains(hand, starter) {
		return fmt.Errorf("starter %s is already in the hand", starter)
	}

	result := scoring.ScoreHand(hand, starter, c.Crib)

	r := display.New(os.Stdout)
	r.Hand("hand", hand)
	r.Info("starter: %s", starter)
	r.Breakdown(result.Breakdown)
	r.Info("total: %d", result.Score)
	return nil
}
