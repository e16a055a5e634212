// Package display renders cards, scores and the pegging table for
// terminal play. It is read-only: nothing here mutates game state.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/game"
)

// Renderer writes formatted game output to a terminal.
type Renderer struct {
	out   io.Writer
	color bool
}

// New creates a Renderer for out. Color output is enabled when the
// terminal supports it.
func New(out io.Writer) *Renderer {
	return &Renderer{
		out:   out,
		color: termenv.EnvColorProfile() != termenv.Ascii,
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Card renders a single card with suit coloring.
func (r *Renderer) Card(c deck.Card) string {
	if c.Suit.IsRed() {
		return r.style(RedCardStyle, c.String())
	}
	return r.style(BlackCardStyle, c.String())
}

// Cards renders a space-separated card list.
func (r *Renderer) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

// Title prints a banner line.
func (r *Renderer) Title(text string) {
	fmt.Fprintln(r.out, r.style(TitleStyle, text))
}

// Info prints a plain informational line.
func (r *Renderer) Info(format string, args ...any) {
	fmt.Fprintln(r.out, r.style(InfoStyle, fmt.Sprintf(format, args...)))
}

// Error prints an error line.
func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.out, r.style(ErrorStyle, err.Error()))
}

// Prompt prints a prompt without a trailing newline.
func (r *Renderer) Prompt(text string) {
	fmt.Fprint(r.out, r.style(PromptStyle, text))
}

// Scoreboard prints both players' match scores.
func (r *Renderer) Scoreboard(you, opponent int, youName, opponentName string) {
	line := fmt.Sprintf("%s %d — %s %d (to %d)", youName, you, opponentName, opponent, game.WinningScore)
	fmt.Fprintln(r.out, r.style(ScoreStyle, line))
}

// Hand prints a labelled hand.
func (r *Renderer) Hand(label string, cards []deck.Card) {
	fmt.Fprintf(r.out, "%s: %s\n", label, r.Cards(cards))
}

// Breakdown prints scoring breakdown lines, one per combination.
func (r *Renderer) Breakdown(lines []string) {
	for _, line := range lines {
		fmt.Fprintf(r.out, "  %s\n", r.style(BreakdownStyle, line))
	}
}

// Score prints an awarded score with its reason.
func (r *Renderer) Score(player string, points int, reason string) {
	line := fmt.Sprintf("%s scores %d (%s)", player, points, reason)
	fmt.Fprintln(r.out, r.style(ScoreStyle, line))
}

// PeggingTable prints the current round's played cards and count.
func (r *Renderer) PeggingTable(state *game.GameState) {
	if state.CutCard != nil {
		fmt.Fprintf(r.out, "starter: %s\n", r.Card(*state.CutCard))
	}
	if len(state.Play.RoundCards) > 0 {
		fmt.Fprintf(r.out, "table: %s\n", r.Cards(state.Play.RoundCards))
	}
	count := fmt.Sprintf("count: %d", state.Play.CurrentCount)
	fmt.Fprintln(r.out, r.style(CountStyle, count))
}
