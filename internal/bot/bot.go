// Package bot decides whether a computer player calls a bet. Each difficulty
// tier is a Strategy value; Decide matches on it in one place.
package bot

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-cli/internal/classification"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
	"github.com/lox/holdem-cli/internal/montecarlo"
	"github.com/lox/holdem-cli/internal/pokermath"
	"github.com/lox/holdem-cli/internal/randutil"
)

// Decision is a call/fold verdict and the evidence behind it. Simulation
// fields are only filled in by the HardPlus tier.
type Decision struct {
	Player     string
	Difficulty Difficulty
	Stage      Stage
	Cards      []deck.Card
	Call       bool

	Hand     evaluator.HandValue
	Strength float64
	HasDraw  bool
	Draws    classification.DrawInfo

	Simulated  bool
	Simulation montecarlo.Result
	WinRate    float64
	Confidence [2]float64
	PotOdds    float64
	EV         float64
	Kelly      float64

	Reasoning string
}

// Action returns "call" or "fold"
func (d Decision) Action() string {
	if d.Call {
		return "call"
	}
	return "fold"
}

// Observer receives every decision after it is made. Observers cannot
// change the outcome.
type Observer interface {
	ObserveDecision(d Decision)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(d Decision)

// ObserveDecision calls f(d)
func (f ObserverFunc) ObserveDecision(d Decision) { f(d) }

// Option configures a Bot
type Option func(*Bot)

// WithRand sets the generator used for every random choice
func WithRand(rng *rand.Rand) Option {
	return func(b *Bot) {
		b.rng = rng
	}
}

// WithSeed seeds the bot's generator
func WithSeed(seed int64) Option {
	return func(b *Bot) {
		b.rng = randutil.New(seed)
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithObserver adds an observer
func WithObserver(o Observer) Option {
	return func(b *Bot) {
		b.observers = append(b.observers, o)
	}
}

// Bot is a computer player. It keeps no game state between calls; the
// generator is its only mutable field, so a Bot must not be shared between
// goroutines.
type Bot struct {
	name      string
	strategy  Strategy
	rng       *rand.Rand
	logger    *log.Logger
	observers []Observer
}

// New creates a bot that plays strategy
func New(name string, strategy Strategy, opts ...Option) *Bot {
	b := &Bot{
		name:     name,
		strategy: strategy,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = randutil.NewFromTime()
	}
	if b.logger == nil {
		b.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	b.logger = b.logger.WithPrefix("bot")
	return b
}

// Name returns the bot's name
func (b *Bot) Name() string {
	return b.name
}

// Strategy returns the bot's tier parameters
func (b *Bot) Strategy() Strategy {
	return b.strategy
}

// Difficulty returns the bot's tier
func (b *Bot) Difficulty() Difficulty {
	return b.strategy.Difficulty()
}

// ShouldCallBet reports whether the bot calls. fullHand is the bot's two
// hole cards followed by the known community cards.
func (b *Bot) ShouldCallBet(fullHand []deck.Card, stage Stage) (bool, error) {
	d, err := b.Decide(fullHand, stage)
	if err != nil {
		return false, err
	}
	return d.Call, nil
}

// Decide evaluates fullHand (hole cards first, then the board; 5 to 7 cards)
// and applies the bot's strategy.
func (b *Bot) Decide(fullHand []deck.Card, stage Stage) (Decision, error) {
	hand, err := evaluator.Evaluate(fullHand)
	if err != nil {
		return Decision{}, fmt.Errorf("bot %s: %w", b.name, err)
	}

	draws := classification.Detect(fullHand)
	d := Decision{
		Player:     b.name,
		Difficulty: b.Difficulty(),
		Stage:      stage,
		Cards:      append([]deck.Card(nil), fullHand...),
		Hand:       hand,
		Strength:   HandStrength(hand.Category),
		HasDraw:    draws.HasDraw(),
		Draws:      draws,
	}
	thinking := &ThinkingContext{}

	switch s := b.strategy.(type) {
	case EasyStrategy:
		d.Call = b.decideEasy(s, thinking)
	case MediumStrategy:
		d.Call = b.decideMedium(s, &d, thinking)
	case HardStrategy:
		d.Call = b.decideHard(s, &d, thinking)
	case HardPlusStrategy:
		if err := b.decideHardPlus(s, fullHand, &d, thinking); err != nil {
			return Decision{}, fmt.Errorf("bot %s: %w", b.name, err)
		}
	default:
		return Decision{}, fmt.Errorf("bot %s: unsupported strategy %T", b.name, b.strategy)
	}
	d.Reasoning = thinking.GetThoughts()

	b.logger.Debug("decision made",
		"player", b.name,
		"difficulty", d.Difficulty,
		"stage", stage,
		"cards", deck.FormatNotation(fullHand),
		"hand", hand,
		"draw", d.HasDraw,
		"decision", d.Action(),
		"reasoning", d.Reasoning)

	for _, o := range b.observers {
		o.ObserveDecision(d)
	}
	return d, nil
}

func (b *Bot) decideEasy(s EasyStrategy, thinking *ThinkingContext) bool {
	call := b.rng.Float64() < s.CallRate
	thinking.AddThought(fmt.Sprintf("Random decision (%.0f%% chance to call)", s.CallRate*100))
	return call
}

func (b *Bot) decideMedium(s MediumStrategy, d *Decision, thinking *ThinkingContext) bool {
	category := d.Hand.Category
	switch {
	case category >= evaluator.ThreeOfAKind:
		thinking.AddThought("Strong hand (Three of a Kind or better), always call")
		return true
	case category >= evaluator.OnePair:
		thinking.AddThought("At least one pair, calling")
		return true
	case d.Stage != River && d.HasDraw:
		thinking.AddThought(describeDraws(d.Draws))
		if b.chance(s.DrawCallRate) {
			thinking.AddThought(fmt.Sprintf("Drawing hand, calling (%.0f%% chance)", s.DrawCallRate*100))
			return true
		}
		thinking.AddThought(fmt.Sprintf("Drawing hand but folding (%.0f%% chance)", (1-s.DrawCallRate)*100))
		return false
	}
	return b.bluff(s.Bluff, category, "Attempting a bluff with weak hand", thinking)
}

func (b *Bot) decideHard(s HardStrategy, d *Decision, thinking *ThinkingContext) bool {
	category := d.Hand.Category
	switch {
	case category >= evaluator.TwoPair:
		thinking.AddThought("Strong hand (Two Pair or better), always call")
		return true
	case category == evaluator.OnePair:
		if b.chance(s.PairCallRate) {
			thinking.AddThought(fmt.Sprintf("One pair, calling (%.0f%% chance)", s.PairCallRate*100))
			return true
		}
		thinking.AddThought(fmt.Sprintf("One pair but folding (%.0f%% chance)", (1-s.PairCallRate)*100))
		return false
	case d.Stage != River && d.HasDraw:
		thinking.AddThought(describeDraws(d.Draws))
		thinking.AddThought("Drawing hand, always calling")
		return true
	}
	return b.bluff(s.Bluff, category, "Aggressive bluff attempt", thinking)
}

func (b *Bot) decideHardPlus(s HardPlusStrategy, fullHand []deck.Card, d *Decision, thinking *ThinkingContext) error {
	sim, err := montecarlo.New(fullHand[:2], fullHand[2:],
		montecarlo.WithTrials(s.Trials),
		montecarlo.WithWorkers(s.Workers),
		montecarlo.WithRand(b.rng),
		montecarlo.WithLogger(b.logger))
	if err != nil {
		return err
	}
	res := sim.Run()

	d.Simulated = true
	d.Simulation = res
	d.WinRate = res.WinRate()
	lo, hi := res.ConfidenceInterval(s.Confidence)
	d.Confidence = [2]float64{lo, hi}
	d.PotOdds = pokermath.PotOdds(s.Pot, s.Call)
	d.EV = pokermath.ExpectedValue(d.WinRate, s.Pot, s.Call)
	d.Kelly = pokermath.KellyFraction(d.WinRate, d.PotOdds)
	d.Call = d.EV > 0 && d.WinRate >= s.MinWinRate

	thinking.AddThought(fmt.Sprintf("Simulated %d hands: won %d, tied %d, lost %d",
		res.Trials, res.Wins, res.Ties, res.Losses))
	thinking.AddThought(fmt.Sprintf("Win rate %.1f%% (%.0f%% CI %.1f%%-%.1f%%), EV %+.1f, Kelly %.2f",
		d.WinRate*100, s.Confidence*100, lo*100, hi*100, d.EV, d.Kelly))
	switch {
	case d.Call && d.WinRate >= StrongWinRate:
		thinking.AddThought("Strong position, calling confidently")
	case d.Call:
		thinking.AddThought("Competitive position, calling")
	case d.EV <= 0:
		thinking.AddThought("Negative expected value, folding")
	default:
		thinking.AddThought(fmt.Sprintf("Win rate below %.0f%%, folding", s.MinWinRate*100))
	}
	return nil
}

func (b *Bot) bluff(table BluffTable, category evaluator.HandCategory, attempt string, thinking *ThinkingContext) bool {
	chance := table.BluffChance(category)
	if b.rng.IntN(100)+1 <= chance {
		thinking.AddThought(fmt.Sprintf("%s (%d%% bluff chance)", attempt, chance))
		return true
	}
	thinking.AddThought("Weak hand, no draws, folding")
	return false
}

func (b *Bot) chance(rate float64) bool {
	return b.rng.Float64() < rate
}

func describeDraws(info classification.DrawInfo) string {
	var parts []string
	for _, dt := range info.Draws {
		parts = append(parts, dt.String())
	}
	s := "Found " + strings.Join(parts, " and ")
	if len(info.NeededRanks) > 0 {
		needed := make([]string, len(info.NeededRanks))
		for i, r := range info.NeededRanks {
			needed[i] = r.String()
		}
		s += " (needs " + strings.Join(needed, " or ") + ")"
	}
	return s
}

// ThinkingContext accumulates the bot's reasoning during a decision
type ThinkingContext struct {
	thoughts []string
}

// AddThought adds a thought to the thinking process
func (tc *ThinkingContext) AddThought(thought string) {
	tc.thoughts = append(tc.thoughts, thought)
}

// GetThoughts returns the complete stream of thoughts
func (tc *ThinkingContext) GetThoughts() string {
	if len(tc.thoughts) == 0 {
		return "No clear reasoning available"
	}
	return strings.Join(tc.thoughts, ". ")
}
