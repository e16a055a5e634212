package game

import (
	rand "math/rand/v2"

	"github.com/lox/cribbage/internal/deck"
)

// Player identifies one of the two seats. Using a closed enum (rather than
// string keys) guarantees both players' symmetric state exists and is updated
// together.
type Player int

const (
	PlayerOne Player = iota
	PlayerTwo
)

// Other returns the opposing player
func (p Player) Other() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// String returns the string representation of a player
func (p Player) String() string {
	if p == PlayerOne {
		return "player 1"
	}
	return "player 2"
}

// Phase is the current stage of the game state machine
type Phase int

const (
	PhaseCuttingForDealer Phase = iota
	PhaseDealing
	PhaseDiscarding
	PhaseCut
	PhasePlaying
	PhaseCounting
	PhaseGameOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseCuttingForDealer:
		return "cutting-for-dealer"
	case PhaseDealing:
		return "dealing"
	case PhaseDiscarding:
		return "discarding"
	case PhaseCut:
		return "cut"
	case PhasePlaying:
		return "playing"
	case PhaseCounting:
		return "counting"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// WinningScore is the match score that ends the game
const WinningScore = 121

// PlayerState holds one player's per-round cards. Hand is the cards still
// held for counting (pre-discard it holds all six); Discards are the two
// cards sent to the crib.
type PlayerState struct {
	Hand     []deck.Card `json:"hand"`
	Discards []deck.Card `json:"discards"`
}

// CutForDealerState tracks the opening cut that decides the first dealer.
// Both acknowledgement flags must be set before the deal is legal.
type CutForDealerState struct {
	Draws        [2]*deck.Card `json:"draws"`
	Dealer       *Player       `json:"dealer"`
	Acknowledged [2]bool       `json:"acknowledged"`
}

// PlayedCard is a card on the pegging table, tagged with who played it
type PlayedCard struct {
	Player Player    `json:"player"`
	Card   deck.Card `json:"card"`
}

// PlayState is the pegging sub-state. RoundCards are the cards of the current
// 31-count and reset to empty whenever the count returns to zero; PlayedCards
// accumulate for the whole pegging phase.
type PlayState struct {
	Hands        [2][]deck.Card `json:"hands"`
	CurrentCount int            `json:"currentCount"`
	PlayedCards  []PlayedCard   `json:"playedCards"`
	RoundCards   []deck.Card    `json:"roundCards"`
	LastPlayedBy *Player        `json:"lastPlayedBy"`
	SaidGo       [2]bool        `json:"saidGo"`
}

// CountStage is the sub-phase within counting. Hands are always counted
// non-dealer first, then dealer, then the crib.
type CountStage int

const (
	CountNone CountStage = iota
	CountNonDealer
	CountDealer
	CountCrib
)

// String returns the string representation of a counting stage
func (s CountStage) String() string {
	switch s {
	case CountNonDealer:
		return "non-dealer hand"
	case CountDealer:
		return "dealer hand"
	case CountCrib:
		return "crib"
	default:
		return "none"
	}
}

// ScoredHand is one entry in the counting log
type ScoredHand struct {
	Stage     CountStage  `json:"stage"`
	Player    Player      `json:"player"`
	Hand      []deck.Card `json:"hand"`
	Score     int         `json:"score"`
	Breakdown []string    `json:"breakdown"`
}

// PendingClaim holds a claimed count awaiting verification or a muggins call.
// The actual score is computed when the claim is made but never revealed to
// the opponent until they respond.
type PendingClaim struct {
	Player          Player      `json:"player"`
	ClaimedScore    int         `json:"claimedScore"`
	ActualScore     int         `json:"actualScore"`
	ActualBreakdown []string    `json:"actualBreakdown"`
	CountedHand     []deck.Card `json:"countedHand"`
	IsCrib          bool        `json:"isCrib"`
}

// CountingState is the counting sub-state
type CountingState struct {
	Stage       CountStage    `json:"stage"`
	HandsScored []ScoredHand  `json:"handsScored"`
	Claim       *PendingClaim `json:"claim"`
}

// PendingScore is the single outstanding unconfirmed pegging score. While one
// is set, no play or go action is accepted from either player: the scoring
// player must accept first. This gate is what keeps two independently-polling
// clients consistent.
type PendingScore struct {
	Player Player `json:"player"`
	Points int    `json:"points"`
	Reason string `json:"reason"`

	// NeedsLastCard queues a one-point last-card score after acceptance,
	// because a play can score points and be the final card at the same time.
	NeedsLastCard bool `json:"needsLastCard"`
	// ResetRound clears the count and round cards after acceptance.
	ResetRound bool `json:"resetRound"`
	// IsHisHeels marks the dealer's two points for a jack starter; accepting
	// it moves the game from the cut phase into pegging.
	IsHisHeels bool `json:"isHisHeels"`
}

// HistoryEvent is one entry in the append-only pegging audit log. It is never
// replayed into state.
type HistoryEvent struct {
	Player Player     `json:"player"`
	Type   string     `json:"type"` // "play", "go" or "score"
	Card   *deck.Card `json:"card,omitempty"`
	Points int        `json:"points,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

// GameState is the single authoritative source of truth for a match in
// progress. It is plain structured data: the caller round-trips it through
// persistence between every action. All transitions copy the state; handlers
// never mutate their input.
type GameState struct {
	Phase         Phase             `json:"phase"`
	Round         int               `json:"round"`
	Dealer        *Player           `json:"dealer"`
	Players       [2]PlayerState    `json:"players"`
	Crib          []deck.Card       `json:"crib"`
	CutCard       *deck.Card        `json:"cutCard"`
	RemainingDeck []deck.Card       `json:"remainingDeck"`
	CutForDealer  CutForDealerState `json:"cutForDealer"`
	Play          PlayState         `json:"playState"`
	Counting      CountingState     `json:"countingState"`

	PendingPeggingScore *PendingScore  `json:"pendingPeggingScore"`
	PeggingHistory      []HistoryEvent `json:"peggingHistory"`
	PeggingPoints       [2]int         `json:"peggingPoints"`
}

// NonDealer returns the player who is not the dealer. Only meaningful once a
// dealer has been determined.
func (s *GameState) NonDealer() Player {
	if s.Dealer == nil {
		return PlayerOne
	}
	return s.Dealer.Other()
}

// Clone returns a deep copy of the state. Every action handler works on a
// clone so that a failed validation can never leave partial mutations behind.
func (s *GameState) Clone() *GameState {
	out := &GameState{
		Phase:   s.Phase,
		Round:   s.Round,
		Dealer:  clonePlayerPtr(s.Dealer),
		Crib:    deck.Clone(s.Crib),
		CutCard: cloneCardPtr(s.CutCard),

		RemainingDeck: deck.Clone(s.RemainingDeck),
		PeggingPoints: s.PeggingPoints,
	}

	for i := range s.Players {
		out.Players[i] = PlayerState{
			Hand:     deck.Clone(s.Players[i].Hand),
			Discards: deck.Clone(s.Players[i].Discards),
		}
	}

	out.CutForDealer = CutForDealerState{
		Draws:        [2]*deck.Card{cloneCardPtr(s.CutForDealer.Draws[0]), cloneCardPtr(s.CutForDealer.Draws[1])},
		Dealer:       clonePlayerPtr(s.CutForDealer.Dealer),
		Acknowledged: s.CutForDealer.Acknowledged,
	}

	out.Play = PlayState{
		Hands:        [2][]deck.Card{deck.Clone(s.Play.Hands[0]), deck.Clone(s.Play.Hands[1])},
		CurrentCount: s.Play.CurrentCount,
		PlayedCards:  append([]PlayedCard(nil), s.Play.PlayedCards...),
		RoundCards:   deck.Clone(s.Play.RoundCards),
		LastPlayedBy: clonePlayerPtr(s.Play.LastPlayedBy),
		SaidGo:       s.Play.SaidGo,
	}

	out.Counting = CountingState{
		Stage:       s.Counting.Stage,
		HandsScored: cloneScoredHands(s.Counting.HandsScored),
	}
	if s.Counting.Claim != nil {
		claim := *s.Counting.Claim
		claim.ActualBreakdown = append([]string(nil), s.Counting.Claim.ActualBreakdown...)
		claim.CountedHand = deck.Clone(s.Counting.Claim.CountedHand)
		out.Counting.Claim = &claim
	}

	if s.PendingPeggingScore != nil {
		pending := *s.PendingPeggingScore
		out.PendingPeggingScore = &pending
	}
	if s.PeggingHistory != nil {
		out.PeggingHistory = make([]HistoryEvent, len(s.PeggingHistory))
		for i, ev := range s.PeggingHistory {
			ev.Card = cloneCardPtr(ev.Card)
			out.PeggingHistory[i] = ev
		}
	}

	return out
}

func clonePlayerPtr(p *Player) *Player {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneCardPtr(c *deck.Card) *deck.Card {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

func cloneScoredHands(in []ScoredHand) []ScoredHand {
	if in == nil {
		return nil
	}
	out := make([]ScoredHand, len(in))
	for i, sh := range in {
		sh.Hand = deck.Clone(sh.Hand)
		sh.Breakdown = append([]string(nil), sh.Breakdown...)
		out[i] = sh
	}
	return out
}

// Initialize creates a fresh game state. With a nil dealer the game starts at
// the cut-for-dealer handshake; with a dealer supplied it deals straight into
// a round (deterministic re-dealing and tests). testDeck, when non-nil,
// replaces the shuffled deck; otherwise rng shuffles a standard 52.
func Initialize(dealer *Player, testDeck []deck.Card, rng *rand.Rand) *GameState {
	d := buildDeck(testDeck, rng)

	state := &GameState{
		Phase:          PhaseCuttingForDealer,
		Round:          0,
		RemainingDeck:  d.Cards(),
		Crib:           []deck.Card{},
		PeggingHistory: []HistoryEvent{},
	}
	for i := range state.Players {
		state.Players[i] = PlayerState{Hand: []deck.Card{}, Discards: []deck.Card{}}
	}

	if dealer != nil {
		who := *dealer
		state.Dealer = &who
		dealInto(state, d)
	}

	return state
}

// StartNewRound begins the next hand, alternating the dealer, or ends the
// match if either externally-tracked score has reached 121. Match scores live
// with the caller, not in this state.
func StartNewRound(state *GameState, scoreOne, scoreTwo int, testDeck []deck.Card, rng *rand.Rand) *GameState {
	next := state.Clone()

	if scoreOne >= WinningScore || scoreTwo >= WinningScore {
		next.Phase = PhaseGameOver
		return next
	}

	if next.Dealer != nil {
		dealer := next.Dealer.Other()
		next.Dealer = &dealer
	}

	d := buildDeck(testDeck, rng)
	dealInto(next, d)
	return next
}

func buildDeck(testDeck []deck.Card, rng *rand.Rand) *deck.Deck {
	if testDeck != nil {
		return deck.FromCards(testDeck)
	}
	d := deck.New()
	d.Shuffle(rng)
	return d
}

// dealInto deals six cards each and resets every per-round sub-state.
// The non-dealer receives the first card.
func dealInto(state *GameState, d *deck.Deck) {
	state.Round++
	state.Phase = PhaseDiscarding

	nonDealer := state.NonDealer()
	hands := [2][]deck.Card{{}, {}}
	for i := 0; i < 6; i++ {
		for _, p := range []Player{nonDealer, nonDealer.Other()} {
			if c, ok := d.DealOne(); ok {
				hands[p] = append(hands[p], c)
			}
		}
	}
	for i := range state.Players {
		state.Players[i] = PlayerState{Hand: hands[i], Discards: []deck.Card{}}
	}

	state.Crib = []deck.Card{}
	state.CutCard = nil
	state.RemainingDeck = d.Cards()
	state.Play = PlayState{Hands: [2][]deck.Card{{}, {}}}
	state.Counting = CountingState{}
	state.PendingPeggingScore = nil
	state.PeggingHistory = []HistoryEvent{}
	state.PeggingPoints = [2]int{}
}
