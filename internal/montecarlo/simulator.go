// Package montecarlo estimates win, tie and loss probabilities for a hand by
// sampling random opponent holdings and board run-outs.
package montecarlo

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-cli/internal/classification"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
	"github.com/lox/holdem-cli/internal/randutil"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTrials  = 10000
	DefaultWorkers = 4

	// BoardSize is the number of community cards at showdown
	BoardSize = 5
)

// ErrInvalidHand reports hole or board cards the simulator cannot run with
var ErrInvalidHand = errors.New("montecarlo: invalid hand")

// Option configures a Simulator
type Option func(*Simulator)

// WithTrials sets the number of trials per run
func WithTrials(n int) Option {
	return func(s *Simulator) {
		s.trials = n
	}
}

// WithWorkers sets how many goroutines share the trials
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		s.workers = n
	}
}

// WithSeed seeds the driver generator that seeds each worker
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = randutil.New(seed)
	}
}

// WithRand uses rng as the driver generator. The simulator only draws worker
// seeds from it, on the calling goroutine.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		s.rng = rng
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// Simulator runs Monte Carlo trials for one hero hand against a single
// random opponent. Hole and board cards are copied and never mutated.
type Simulator struct {
	hole    []deck.Card
	board   []deck.Card
	trials  int
	workers int
	rng     *rand.Rand
	logger  *log.Logger

	last Result
}

// New validates the hand and returns a simulator. Hole must hold exactly two
// cards, board zero to five, with no card repeated across them.
func New(hole, board []deck.Card, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		hole:    append([]deck.Card(nil), hole...),
		board:   append([]deck.Card(nil), board...),
		trials:  DefaultTrials,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.hole) != 2 {
		return nil, fmt.Errorf("%w: need 2 hole cards, got %d", ErrInvalidHand, len(s.hole))
	}
	if len(s.board) > BoardSize {
		return nil, fmt.Errorf("%w: at most %d board cards, got %d", ErrInvalidHand, BoardSize, len(s.board))
	}
	known := append(append([]deck.Card(nil), s.hole...), s.board...)
	for _, c := range known {
		if !c.Rank.Valid() || c.Suit < deck.Spades || c.Suit > deck.Clubs {
			return nil, fmt.Errorf("%w: malformed card %v", ErrInvalidHand, c)
		}
	}
	if dup, ok := deck.HasDuplicates(known); ok {
		return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, dup)
	}
	if s.trials < 1 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidHand, s.trials)
	}
	if s.workers < 1 {
		return nil, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidHand, s.workers)
	}

	if s.rng == nil {
		s.rng = randutil.NewFromTime()
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s.logger = s.logger.WithPrefix("montecarlo")
	return s, nil
}

// Run executes all trials and returns the merged counts. Trials are split
// across the workers, each with its own generator; the counts are summed
// only after every worker has finished. Run blocks until then and cannot be
// cancelled.
func (s *Simulator) Run() Result {
	remaining := deck.Remaining(s.hole, s.board)

	workers := min(s.workers, s.trials)
	perWorker := s.trials / workers
	remainder := s.trials % workers

	rngs := randutil.Split(s.rng, workers)
	results := make([]Result, workers)

	var g errgroup.Group
	for w := range workers {
		n := perWorker
		if w < remainder {
			n++
		}
		g.Go(func() error {
			results[w] = runWorker(s.hole, s.board, remaining, n, rngs[w])
			return nil
		})
	}
	// workers never return errors
	_ = g.Wait()

	var total Result
	for _, r := range results {
		total.Wins += r.Wins
		total.Ties += r.Ties
		total.Losses += r.Losses
		total.Trials += r.Trials
	}

	s.logger.Debug("simulation complete",
		"hole", deck.FormatNotation(s.hole),
		"board", deck.FormatNotation(s.board),
		"trials", total.Trials,
		"workers", workers,
		"win_rate", total.WinRate())

	s.last = total
	return total
}

// runWorker plays n trials against a private copy of the remaining cards.
func runWorker(hole, board, remaining []deck.Card, n int, rng *rand.Rand) Result {
	pool := append([]deck.Card(nil), remaining...)
	missing := BoardSize - len(board)
	need := 2 + missing
	if len(pool) < need {
		panic(fmt.Sprintf("montecarlo: invariant violation: %d cards remain, need %d", len(pool), need))
	}

	hero := make([]deck.Card, 0, 7)
	hero = append(append(hero, hole...), board...)
	villain := make([]deck.Card, 7)
	copy(villain[2:], board)

	res := Result{Trials: n}
	for range n {
		// Partial Fisher-Yates: the first need cards form a uniform sample
		for i := range need {
			j := i + rng.IntN(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
		}

		villain[0], villain[1] = pool[0], pool[1]
		runout := pool[2:need]
		copy(villain[2+len(board):], runout)
		hero = append(hero[:2+len(board)], runout...)

		switch evaluator.Compare(evaluator.MustEvaluate(hero), evaluator.MustEvaluate(villain)) {
		case 1:
			res.Wins++
		case -1:
			res.Losses++
		default:
			res.Ties++
		}
	}
	return res
}

// Trials returns the configured trial count
func (s *Simulator) Trials() int {
	return s.trials
}

// Workers returns the configured worker count
func (s *Simulator) Workers() int {
	return s.workers
}

// Last returns the result of the most recent Run
func (s *Simulator) Last() Result {
	return s.last
}

// WinPercentage returns the win rate of the last run (0.0 to 1.0)
func (s *Simulator) WinPercentage() float64 {
	return s.last.WinRate()
}

// TiePercentage returns the tie rate of the last run (0.0 to 1.0)
func (s *Simulator) TiePercentage() float64 {
	return s.last.TieRate()
}

// LosePercentage returns the loss rate of the last run (0.0 to 1.0)
func (s *Simulator) LosePercentage() float64 {
	return s.last.LossRate()
}

// WinRateStdDev returns the standard error of the last run's win rate
func (s *Simulator) WinRateStdDev() float64 {
	return s.last.StdDev()
}

// ConfidenceInterval returns the last run's win-rate interval at level
func (s *Simulator) ConfidenceInterval(level float64) (lower, upper float64) {
	return s.last.ConfidenceInterval(level)
}

// FlushDrawOdds returns the chance the next card completes a flush draw.
// It does not depend on Run.
func (s *Simulator) FlushDrawOdds() float64 {
	return classification.FlushDrawOdds(s.known())
}

// StraightDrawOdds returns the chance the next card completes a straight
// draw. It does not depend on Run.
func (s *Simulator) StraightDrawOdds() float64 {
	return classification.StraightDrawOdds(s.known())
}

func (s *Simulator) known() []deck.Card {
	return append(append([]deck.Card(nil), s.hole...), s.board...)
}
