package montecarlo

import (
	"math"
	"testing"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, hole, board string, opts ...Option) *Simulator {
	t.Helper()
	var b []deck.Card
	if board != "" {
		b = deck.MustParseCards(board)
	}
	sim, err := New(deck.MustParseCards(hole), b, opts...)
	require.NoError(t, err)
	return sim
}

func TestRoyalFlushWins(t *testing.T) {
	sim := newSim(t, "AhKh", "QhJhTh", WithTrials(100), WithSeed(1))
	res := sim.Run()

	assert.Equal(t, 100, res.Trials)
	assert.Greater(t, res.WinRate(), 0.90)
	assert.Greater(t, sim.WinPercentage(), 0.90)
}

func TestRatesSumToOne(t *testing.T) {
	sim := newSim(t, "AhKh", "QhJhTc", WithTrials(1000), WithSeed(2))
	sim.Run()

	sum := sim.WinPercentage() + sim.TiePercentage() + sim.LosePercentage()
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPocketAcesBeatRandomHands(t *testing.T) {
	sim := newSim(t, "AhAd", "2c7s9h", WithTrials(2000), WithSeed(3))
	res := sim.Run()
	assert.Greater(t, res.WinRate(), 0.50)

	lo, hi := sim.ConfidenceInterval(0.95)
	assert.LessOrEqual(t, lo, res.WinRate())
	assert.GreaterOrEqual(t, hi, res.WinRate())
	assert.Less(t, hi-lo, 0.5)
}

func TestStdDevShrinksWithTrials(t *testing.T) {
	small := newSim(t, "KhQh", "Th9c2d", WithTrials(1000), WithSeed(4)).Run()
	large := newSim(t, "KhQh", "Th9c2d", WithTrials(10000), WithSeed(4)).Run()

	assert.Less(t, large.StdDev(), small.StdDev())
	assert.InDelta(t, 1/math.Sqrt(10), large.StdDev()/small.StdDev(), 0.05)
}

func TestWiderIntervalAtHigherConfidence(t *testing.T) {
	sim := newSim(t, "Th9h", "2c5d8s", WithTrials(400), WithSeed(5))
	sim.Run()

	lo95, hi95 := sim.ConfidenceInterval(0.95)
	lo99, hi99 := sim.ConfidenceInterval(0.99)
	assert.GreaterOrEqual(t, hi99-lo99, hi95-lo95)
	assert.LessOrEqual(t, lo99, lo95)
	assert.GreaterOrEqual(t, hi99, hi95)
}

func TestSeededRunsAreReproducible(t *testing.T) {
	a := newSim(t, "7s7d", "", WithTrials(500), WithSeed(42)).Run()
	b := newSim(t, "7s7d", "", WithTrials(500), WithSeed(42)).Run()
	assert.Equal(t, a, b)
}

func TestWorkerCountDoesNotChangeTrialTotal(t *testing.T) {
	for _, workers := range []int{1, 3, 4, 7, 16} {
		res := newSim(t, "AsKd", "2h", WithTrials(101), WithWorkers(workers), WithSeed(6)).Run()
		assert.Equal(t, 101, res.Trials, "workers=%d", workers)
		assert.Equal(t, 101, res.Wins+res.Ties+res.Losses, "workers=%d", workers)
	}
}

func TestFullBoardOnlyDealsOpponent(t *testing.T) {
	// Board plays for both: every opponent at best ties the board straight
	sim := newSim(t, "2c3d", "AsKdQhJcTs", WithTrials(300), WithSeed(7))
	res := sim.Run()
	assert.Zero(t, res.Wins)
	assert.Equal(t, 300, res.Ties+res.Losses)
	assert.Positive(t, res.Ties)
}

func TestRunDoesNotMutateInputs(t *testing.T) {
	hole := deck.MustParseCards("AsKs")
	board := deck.MustParseCards("Qs2d7h")
	holeCopy := append([]deck.Card(nil), hole...)
	boardCopy := append([]deck.Card(nil), board...)

	sim, err := New(hole, board, WithTrials(50), WithSeed(8))
	require.NoError(t, err)
	sim.Run()

	assert.Equal(t, holeCopy, hole)
	assert.Equal(t, boardCopy, board)
}

func TestNewRejectsInvalidHands(t *testing.T) {
	tests := []struct {
		name  string
		hole  string
		board string
		opts  []Option
	}{
		{name: "one hole card", hole: "As"},
		{name: "three hole cards", hole: "AsKsQs"},
		{name: "six board cards", hole: "AsKs", board: "2c3c4c5c6c7c"},
		{name: "duplicate across hole and board", hole: "AsKs", board: "As2c3c"},
		{name: "zero trials", hole: "AsKs", opts: []Option{WithTrials(0)}},
		{name: "zero workers", hole: "AsKs", opts: []Option{WithWorkers(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var board []deck.Card
			if tt.board != "" {
				board = deck.MustParseCards(tt.board)
			}
			_, err := New(deck.MustParseCards(tt.hole), board, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidHand)
		})
	}
}

func TestDrawOdds(t *testing.T) {
	sim := newSim(t, "AhKh", "7h2h9c")
	assert.InDelta(t, 9.0/47.0, sim.FlushDrawOdds(), 1e-12)
	assert.Zero(t, sim.StraightDrawOdds())
}

func TestResultAccessors(t *testing.T) {
	res := Result{Wins: 60, Ties: 10, Losses: 30, Trials: 100}
	assert.InDelta(t, 0.60, res.WinRate(), 1e-12)
	assert.InDelta(t, 0.10, res.TieRate(), 1e-12)
	assert.InDelta(t, 0.30, res.LossRate(), 1e-12)
	assert.InDelta(t, 0.65, res.Equity(), 1e-12)
	assert.InDelta(t, math.Sqrt(0.6*0.4/100), res.StdDev(), 1e-12)

	var empty Result
	assert.Zero(t, empty.WinRate())
	assert.Zero(t, empty.StdDev())
	lo, hi := empty.ConfidenceInterval(0.95)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestConfidenceIntervalIsClamped(t *testing.T) {
	lo, hi := Result{Wins: 99, Losses: 1, Trials: 100}.ConfidenceInterval(0.99)
	assert.LessOrEqual(t, hi, 1.0)
	assert.GreaterOrEqual(t, lo, 0.0)

	lo, _ = Result{Wins: 1, Losses: 99, Trials: 100}.ConfidenceInterval(0.99)
	assert.Zero(t, lo)
}

func TestZScore(t *testing.T) {
	assert.Equal(t, 2.576, ZScore(0.99))
	assert.Equal(t, 1.96, ZScore(0.95))
	assert.Equal(t, 1.96, ZScore(0.97))
	assert.Equal(t, 1.645, ZScore(0.90))
	assert.Equal(t, 1.96, ZScore(0.5))
}
