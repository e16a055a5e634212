package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/cribbage/internal/bot"
	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/display"
	"github.com/lox/cribbage/internal/game"
	"github.com/lox/cribbage/internal/randutil"
	"github.com/lox/cribbage/internal/savefile"
	"github.com/lox/cribbage/internal/scoring"
	"github.com/lox/cribbage/internal/simulator"
)

// PlayCmd runs an interactive match against a bot. The human is always
// player one.
type PlayCmd struct {
	Level    string `kong:"default='standard',help='Bot difficulty: easy, standard or expert'"`
	Seed     int64  `kong:"help='Deterministic RNG seed (0 for random)'"`
	DelayMs  int    `kong:"default='600',help='Bot thinking delay in milliseconds'"`
	SaveFile string `kong:"default='cribbage.save',help='Autosave file for resuming an interrupted match'"`
	Resume   bool   `kong:"help='Resume the match in the save file'"`
	Debug    bool   `kong:"help='Write debug log to cribbage.log'"`
}

func (c *PlayCmd) Run() error {
	profile, err := bot.ProfileForLevel(c.Level)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard)
	if c.Debug {
		f, err := os.OpenFile("cribbage.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
		if err != nil {
			return fmt.Errorf("creating debug log: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Level:           log.DebugLevel,
		})
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session := &playSession{
		human:    game.PlayerOne,
		seed:     seed,
		level:    profile.Name,
		saveFile: c.SaveFile,
		renderer: display.New(os.Stdout),
		input:    bufio.NewScanner(os.Stdin),
		clock:    quartz.NewReal(),
		delay:    time.Duration(c.DelayMs) * time.Millisecond,
		logger:   logger,
	}

	if c.Resume {
		snap, err := savefile.Load(c.SaveFile)
		if err != nil {
			return fmt.Errorf("resuming from %s: %w", c.SaveFile, err)
		}
		profile, err = bot.ProfileForLevel(snap.Level)
		if err != nil {
			return fmt.Errorf("resuming from %s: %w", c.SaveFile, err)
		}
		session.seed = snap.Seed
		session.level = snap.Level
		session.scores = snap.Scores
		session.resumed = snap.State
		// The original stream position is gone, so re-seed from the round
		// number. Future deals stay deterministic for a given save.
		session.rng = randutil.New(randutil.Derive(snap.Seed, snap.State.Round+1))
	} else {
		session.rng = randutil.New(seed)
	}

	logger.Info("starting game", "seed", session.seed, "level", profile.Name, "resumed", c.Resume)
	session.bot = bot.New(profile, session.rng, logger)
	return session.run()
}

// playSession holds everything the interactive loop needs between actions.
type playSession struct {
	human    game.Player
	bot      *bot.Bot
	rng      *rand.Rand
	renderer *display.Renderer
	input    *bufio.Scanner
	clock    quartz.Clock
	delay    time.Duration
	logger   *log.Logger
	scores   [2]int
	seed     int64
	level    string
	saveFile string
	resumed  *game.GameState
}

func (p *playSession) run() error {
	r := p.renderer
	r.Title("cribbage — first to 121")

	var state *game.GameState
	if p.resumed != nil {
		state = p.resumed
		r.Info("resuming round %d", state.Round)
	} else {
		state = game.Initialize(nil, nil, p.rng)
	}

	for {
		if p.scores[0] >= game.WinningScore || p.scores[1] >= game.WinningScore {
			p.printResult()
			if err := savefile.Remove(p.saveFile); err != nil {
				p.logger.Warn("removing save file", "err", err)
			}
			return nil
		}

		if state.Phase == game.PhaseDealing {
			r.Info("")
			r.Scoreboard(p.scores[p.human], p.scores[p.human.Other()], "you", "opponent")
			state = game.StartNewRound(state, p.scores[0], p.scores[1], nil, p.rng)
			continue
		}

		actor := game.NextActor(state)
		if actor == nil {
			return fmt.Errorf("no actor derivable in phase %s", state.Phase)
		}

		var action game.Action
		var err error
		if *actor == p.human {
			action, err = p.humanAction(state)
		} else {
			p.pause()
			action, err = simulator.BotAction(state, *actor, p.bot, p.rng)
		}
		if err != nil {
			return err
		}

		res, err := game.Apply(state, *actor, action)
		if err != nil {
			if *actor == p.human {
				r.Error(err)
				continue
			}
			return fmt.Errorf("%s applying %T: %w", *actor, action, err)
		}

		p.report(res.NewState, *actor, action, res)
		state = res.NewState

		if res.ScorePlayer != nil {
			p.scores[*res.ScorePlayer] += res.ScoreChange
			if res.MugginsAward > 0 {
				p.scores[res.ScorePlayer.Other()] += res.MugginsAward
			}
		}

		p.autosave(state)
	}
}

// autosave checkpoints the match after every applied action. A failed save is
// worth a warning but not an aborted game.
func (p *playSession) autosave(state *game.GameState) {
	if p.saveFile == "" {
		return
	}
	snap := &savefile.Snapshot{
		Level:  p.level,
		Seed:   p.seed,
		Scores: p.scores,
		State:  state,
	}
	if err := savefile.Save(p.saveFile, snap); err != nil {
		p.logger.Warn("autosave failed", "file", p.saveFile, "err", err)
	}
}

// pause blocks for the configured bot thinking delay.
func (p *playSession) pause() {
	if p.delay <= 0 {
		return
	}
	done := make(chan struct{})
	timer := p.clock.AfterFunc(p.delay, func() {
		close(done)
	})
	defer timer.Stop()
	<-done
}

func (p *playSession) printResult() {
	r := p.renderer
	you, opp := p.scores[p.human], p.scores[p.human.Other()]
	r.Info("")
	r.Scoreboard(you, opp, "you", "opponent")
	switch {
	case you >= game.WinningScore:
		r.Title("you win!")
	case opp < 91:
		r.Title("opponent wins — and that's a skunk")
	default:
		r.Title("opponent wins")
	}
}

// readLine prompts and returns one trimmed line of input. EOF reads as an
// empty line so piped input ends the prompts cleanly.
func (p *playSession) readLine(prompt string) string {
	p.renderer.Prompt(prompt)
	if !p.input.Scan() {
		return ""
	}
	return strings.TrimSpace(p.input.Text())
}

func (p *playSession) waitForEnter(prompt string) {
	p.readLine(prompt)
}

// humanAction prompts for and parses the human player's next action.
func (p *playSession) humanAction(state *game.GameState) (game.Action, error) {
	r := p.renderer

	if pending := state.PendingPeggingScore; pending != nil {
		r.Score("you", pending.Points, pending.Reason)
		p.waitForEnter("press enter to peg it... ")
		return game.AcceptScore{}, nil
	}

	switch state.Phase {
	case game.PhaseCuttingForDealer:
		if state.CutForDealer.Dealer == nil {
			p.waitForEnter("cut for deal — press enter... ")
			return game.CutForDealer{Index: p.rng.IntN(len(state.RemainingDeck))}, nil
		}
		if !state.CutForDealer.Acknowledged[p.human] {
			return game.AcknowledgeDealer{}, nil
		}
		p.waitForEnter("your deal — press enter... ")
		return game.Deal{Rng: p.rng}, nil

	case game.PhaseDiscarding:
		return p.promptDiscard(state)

	case game.PhaseCut:
		p.waitForEnter("cut the starter — press enter... ")
		return game.CutStarter{Index: p.rng.IntN(len(state.RemainingDeck))}, nil

	case game.PhasePlaying:
		return p.promptPlay(state)

	case game.PhaseCounting:
		return p.promptCounting(state)

	default:
		return nil, fmt.Errorf("no action available in phase %s", state.Phase)
	}
}

func (p *playSession) promptDiscard(state *game.GameState) (game.Action, error) {
	r := p.renderer
	hand := state.Players[p.human].Hand
	whoseCrib := "opponent's crib"
	if state.Dealer != nil && *state.Dealer == p.human {
		whoseCrib = "your crib"
	}
	r.Info("")
	r.Hand("your hand", hand)
	line := p.readLine(fmt.Sprintf("discard two cards to the %s (e.g. 5H KD): ", whoseCrib))
	cards, err := deck.ParseCards(line)
	if err != nil {
		r.Error(err)
		return p.promptDiscard(state)
	}
	return game.Discard{Cards: cards}, nil
}

func (p *playSession) promptPlay(state *game.GameState) (game.Action, error) {
	r := p.renderer
	r.Info("")
	r.PeggingTable(state)
	r.Hand("your hand", state.Play.Hands[p.human])
	line := p.readLine("play a card, or 'go': ")
	if strings.EqualFold(strings.TrimSpace(line), "go") {
		return game.Go{}, nil
	}
	card, err := deck.ParseCard(strings.TrimSpace(line))
	if err != nil {
		r.Error(err)
		return p.promptPlay(state)
	}
	return game.PlayCard{Card: card}, nil
}

func (p *playSession) promptCounting(state *game.GameState) (game.Action, error) {
	r := p.renderer

	if claim := state.Counting.Claim; claim != nil {
		label := "opponent's hand"
		if claim.IsCrib {
			label = "opponent's crib"
		}
		r.Info("")
		r.Hand(label, claim.CountedHand)
		r.Info("starter: %s", state.CutCard.String())
		r.Info("opponent claims %d", claim.ClaimedScore)
		line := p.readLine("accept, or call muggins? [a/m]: ")
		if strings.EqualFold(strings.TrimSpace(line), "m") {
			return game.CallMuggins{}, nil
		}
		return game.VerifyCount{}, nil
	}

	_, hand, isCrib, err := game.CountingHand(state)
	if err != nil {
		return nil, err
	}
	label := "your hand"
	if isCrib {
		label = "your crib"
	}
	r.Info("")
	r.Hand(label, hand)
	r.Info("starter: %s", state.CutCard.String())
	line := p.readLine("your count: ")
	score, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || score < 0 {
		r.Error(fmt.Errorf("enter the number of points you are claiming"))
		return p.promptCounting(state)
	}
	return game.ClaimCount{Score: score}, nil
}

// report prints what just happened, hiding information the human should not
// see (the bot's hand stays hidden until counting).
func (p *playSession) report(after *game.GameState, actor game.Player, action game.Action, res game.Result) {
	r := p.renderer
	isHuman := actor == p.human

	switch a := action.(type) {
	case game.CutForDealer:
		if cut := after.CutForDealer.Draws[actor]; cut != nil {
			who := "opponent cuts"
			if isHuman {
				who = "you cut"
			}
			r.Info("%s %s", who, cut.String())
		}
		if after.CutForDealer.Dealer != nil {
			if *after.CutForDealer.Dealer == p.human {
				r.Info("you deal first")
			} else {
				r.Info("opponent deals first")
			}
		} else if after.CutForDealer.Draws[0] == nil && after.CutForDealer.Draws[1] == nil {
			r.Info("tied cut — cut again")
		}

	case game.Deal:
		r.Info("")
		r.Title(fmt.Sprintf("round %d", after.Round))

	case game.Discard:
		if !isHuman {
			r.Info("opponent discards to the crib")
		}

	case game.CutStarter:
		r.Info("starter: %s", after.CutCard.String())

	case game.PlayCard:
		if !isHuman {
			r.Info("opponent plays %s (count %d)", a.Card.String(), after.Play.CurrentCount)
		}

	case game.Go:
		if !isHuman {
			r.Info("opponent says go")
		}

	case game.AcceptScore:
		if !isHuman && res.ScorePlayer != nil {
			r.Score("opponent", res.ScoreChange, res.Description)
		}

	case game.ClaimCount:
		if !isHuman {
			// The verify prompt shows the claim; nothing to reveal yet.
			p.logger.Debug("bot claimed count", "score", a.Score)
		}

	case game.VerifyCount:
		p.reportCounted(after, isHuman)

	case game.CallMuggins:
		if res.MugginsAward > 0 {
			if isHuman {
				r.Score("you", res.MugginsAward, "muggins")
			} else {
				r.Score("opponent", res.MugginsAward, "muggins")
			}
		} else {
			r.Info("muggins called, but the count was right")
		}
		p.reportCounted(after, isHuman)
	}
}

// reportCounted prints the hand that was just verified into the counting log.
func (p *playSession) reportCounted(after *game.GameState, verifierIsHuman bool) {
	scored := after.Counting.HandsScored
	if len(scored) == 0 {
		return
	}
	last := scored[len(scored)-1]
	who := "you"
	if last.Player != p.human {
		who = "opponent"
	}
	r := p.renderer
	r.Score(who, last.Score, fmt.Sprintf("counting the %s", last.Stage))
	if verifierIsHuman {
		breakdown := scoring.ScoreHand(last.Hand, *after.CutCard, last.Stage == game.CountCrib)
		r.Breakdown(breakdown.Breakdown)
	}
}
