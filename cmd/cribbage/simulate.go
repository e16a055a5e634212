package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lox/cribbage/internal/bot"
	"github.com/lox/cribbage/internal/config"
	"github.com/lox/cribbage/internal/simulator"
)

// SimulateCmd runs bot-vs-bot matches and prints an aggregate summary.
type SimulateCmd struct {
	Config  string `kong:"default='cribbage.hcl',help='HCL config file (defaults used if missing)'"`
	Games   int    `kong:"help='Number of games to play (overrides config)'"`
	Seed    int64  `kong:"help='Base RNG seed (overrides config)'"`
	Workers int    `kong:"help='Concurrent games (overrides config)'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.Games > 0 {
		cfg.Simulation.Games = c.Games
	}
	if c.Seed != 0 {
		cfg.Simulation.Seed = c.Seed
	}
	if c.Workers > 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	profiles, err := cfg.Profiles()
	if err != nil {
		return err
	}

	logger := setupLogger(c.Debug)
	logger.Info("starting simulation",
		"games", cfg.Simulation.Games,
		"seed", cfg.Simulation.Seed,
		"workers", cfg.Simulation.Workers,
		"one", profiles[0].Name,
		"two", profiles[1].Name)

	start := time.Now()
	summary, err := simulator.Run(context.Background(), simulator.Options{
		Games:    cfg.Simulation.Games,
		Seed:     cfg.Simulation.Seed,
		Workers:  cfg.Simulation.Workers,
		Profiles: profiles,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	elapsed := time.Since(start)

	printSummary(summary, profiles, elapsed)
	return nil
}

func printSummary(s *simulator.Summary, profiles [2]bot.Profile, elapsed time.Duration) {
	w := os.Stdout
	fmt.Fprintf(w, "\ngames:      %d (%.1fs, %.0f games/s)\n",
		s.Games, elapsed.Seconds(), float64(s.Games)/elapsed.Seconds())
	fmt.Fprintf(w, "player 1:   %s — %d wins (%.1f%%), %d skunks\n",
		profiles[0].Name, s.Wins[0], s.WinRate(0)*100, s.Skunks[0])
	fmt.Fprintf(w, "player 2:   %s — %d wins (%.1f%%), %d skunks\n",
		profiles[1].Name, s.Wins[1], s.WinRate(1)*100, s.Skunks[1])
	fmt.Fprintf(w, "avg margin: %.1f points (stddev %.1f)\n", s.AvgMargin, s.StdDevMargin)
	fmt.Fprintf(w, "avg length: %.1f rounds\n", s.AvgRounds)
}
