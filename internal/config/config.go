// Package config loads simulation and bot configuration from HCL files
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/cribbage/internal/bot"
)

// SimulatorConfig is the complete configuration for batch simulation
type SimulatorConfig struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Bots       []BotConfig        `hcl:"bot,block"`
}

// SimulationSettings contains batch-level configuration
type SimulationSettings struct {
	Games    int    `hcl:"games,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Workers  int    `hcl:"workers,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// BotConfig assigns a difficulty level to a seat ("one" or "two")
type BotConfig struct {
	Seat  string `hcl:"seat,label"`
	Level string `hcl:"level"`
}

// DefaultConfig returns the configuration used when no file is present:
// a small standard-vs-expert batch with a fixed seed.
func DefaultConfig() *SimulatorConfig {
	return &SimulatorConfig{
		Simulation: SimulationSettings{
			Games:    100,
			Seed:     1,
			Workers:  4,
			LogLevel: "warn",
		},
		Bots: []BotConfig{
			{Seat: "one", Level: "standard"},
			{Seat: "two", Level: "expert"},
		},
	}
}

// Load reads simulator configuration from an HCL file, falling back to
// DefaultConfig when the file does not exist.
func Load(filename string) (*SimulatorConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	cfg := DefaultConfig()
	cfg.Bots = nil
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}
	if len(cfg.Bots) == 0 {
		cfg.Bots = DefaultConfig().Bots
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks seats and difficulty levels
func (c *SimulatorConfig) Validate() error {
	if c.Simulation.Games <= 0 {
		return fmt.Errorf("simulation games must be positive, got %d", c.Simulation.Games)
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation workers must be positive, got %d", c.Simulation.Workers)
	}
	seen := map[string]bool{}
	for _, b := range c.Bots {
		if b.Seat != "one" && b.Seat != "two" {
			return fmt.Errorf("unknown bot seat %q (want \"one\" or \"two\")", b.Seat)
		}
		if seen[b.Seat] {
			return fmt.Errorf("duplicate bot seat %q", b.Seat)
		}
		seen[b.Seat] = true
		if _, err := bot.ProfileForLevel(b.Level); err != nil {
			return err
		}
	}
	return nil
}

// Profiles resolves the configured bot levels into difficulty profiles,
// defaulting any unconfigured seat to the standard level.
func (c *SimulatorConfig) Profiles() ([2]bot.Profile, error) {
	profiles := [2]bot.Profile{bot.Standard, bot.Standard}
	for _, b := range c.Bots {
		p, err := bot.ProfileForLevel(b.Level)
		if err != nil {
			return profiles, err
		}
		if b.Seat == "one" {
			profiles[0] = p
		} else {
			profiles[1] = p
		}
	}
	return profiles, nil
}
