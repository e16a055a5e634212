package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play an interactive game against the computer"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-vs-bot simulations"`
	Score    ScoreCmd         `cmd:"" help:"Score a hand against a starter card"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cribbage"),
		kong.Description("Two-player cribbage engine with built-in bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// setupLogger configures console logging for the subcommands.
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}
