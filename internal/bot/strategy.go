package bot

import "github.com/lox/holdem-cli/internal/evaluator"

// Strategy carries the parameters of one difficulty tier. The set of
// implementations is closed: Easy, Medium, Hard and HardPlus.
type Strategy interface {
	Difficulty() Difficulty
	strategy()
}

// BluffTable holds the percent chance to call with a weak made hand
type BluffTable struct {
	HighCard int
	OnePair  int
}

// BluffChance returns the percent chance to bluff-call holding category.
// Only high card and one pair ever bluff.
func (t BluffTable) BluffChance(category evaluator.HandCategory) int {
	switch category {
	case evaluator.HighCard:
		return t.HighCard
	case evaluator.OnePair:
		return t.OnePair
	default:
		return 0
	}
}

// EasyStrategy calls at a fixed rate regardless of cards
type EasyStrategy struct {
	CallRate float64
}

// MediumStrategy calls any pair or better, chases draws before the river
// at DrawCallRate, and otherwise bluffs from its table
type MediumStrategy struct {
	DrawCallRate float64
	Bluff        BluffTable
}

// HardStrategy calls two pair or better, calls one pair at PairCallRate,
// always chases draws before the river, and otherwise bluffs from its table
type HardStrategy struct {
	PairCallRate float64
	Bluff        BluffTable
}

// HardPlusStrategy simulates the hand and calls when the expected value of
// calling Call into Pot is positive and the win rate reaches MinWinRate
type HardPlusStrategy struct {
	Trials     int
	Workers    int
	Pot        int
	Call       int
	MinWinRate float64
	Confidence float64
}

func (EasyStrategy) Difficulty() Difficulty     { return Easy }
func (MediumStrategy) Difficulty() Difficulty   { return Medium }
func (HardStrategy) Difficulty() Difficulty     { return Hard }
func (HardPlusStrategy) Difficulty() Difficulty { return HardPlus }

func (EasyStrategy) strategy()     {}
func (MediumStrategy) strategy()   {}
func (HardStrategy) strategy()     {}
func (HardPlusStrategy) strategy() {}

// Reference table parameters
const (
	DefaultPot        = 200
	DefaultBet        = 100
	DefaultTrials     = 200
	DefaultWorkers    = 4
	DefaultMinWinRate = 0.40
	DefaultConfidence = 0.95
	StrongWinRate     = 0.60
)

// DefaultStrategy returns the reference parameters for a difficulty
func DefaultStrategy(d Difficulty) Strategy {
	switch d {
	case Medium:
		return MediumStrategy{
			DrawCallRate: 0.60,
			Bluff:        BluffTable{HighCard: 10, OnePair: 15},
		}
	case Hard:
		return HardStrategy{
			PairCallRate: 0.80,
			Bluff:        BluffTable{HighCard: 15, OnePair: 20},
		}
	case HardPlus:
		return HardPlusStrategy{
			Trials:     DefaultTrials,
			Workers:    DefaultWorkers,
			Pot:        DefaultPot,
			Call:       DefaultBet,
			MinWinRate: DefaultMinWinRate,
			Confidence: DefaultConfidence,
		}
	default:
		return EasyStrategy{CallRate: 0.25}
	}
}

// HandStrength maps a category onto a rough 0..1 strength used for display
func HandStrength(category evaluator.HandCategory) float64 {
	switch category {
	case evaluator.RoyalFlush:
		return 1.0
	case evaluator.StraightFlush:
		return 0.95
	case evaluator.FourOfAKind:
		return 0.88
	case evaluator.FullHouse:
		return 0.78
	case evaluator.Flush:
		return 0.68
	case evaluator.Straight:
		return 0.58
	case evaluator.ThreeOfAKind:
		return 0.45
	case evaluator.TwoPair:
		return 0.35
	case evaluator.OnePair:
		return 0.22
	default:
		return 0.08
	}
}
