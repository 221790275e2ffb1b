package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/decisionlog"
	"github.com/lox/holdem-cli/internal/randutil"
)

const (
	// DefaultPot is the pot both antes build before the flop
	DefaultPot = bot.DefaultPot
	// DefaultBet is the fixed bet faced on each street
	DefaultBet = bot.DefaultBet
)

var (
	// ErrInvalidTable is returned when a table cannot be built
	ErrInvalidTable = errors.New("invalid table")
	// ErrBusted is returned when a seat cannot post its ante
	ErrBusted = errors.New("seat cannot cover the ante")
)

// Seat is one of the two players at the table
type Seat struct {
	Name  string
	Bot   *bot.Bot
	Chips int
}

// Table plays heads-up hands between two seats. It is not safe for
// concurrent use.
type Table struct {
	seats     [2]Seat
	pot       int
	bet       int
	button    int
	hands     int
	rng       *rand.Rand
	logger    *log.Logger
	decisions *decisionlog.Logger
}

// Option configures a Table
type Option func(*Table)

// WithSeed seeds the generator that picks each hand's deck seed
func WithSeed(seed int64) Option {
	return func(t *Table) {
		t.rng = randutil.New(seed)
	}
}

// WithRand sets the generator that picks each hand's deck seed
func WithRand(rng *rand.Rand) Option {
	return func(t *Table) {
		t.rng = rng
	}
}

// WithStakes sets the starting pot (split into two antes) and the street bet
func WithStakes(pot, bet int) Option {
	return func(t *Table) {
		t.pot = pot
		t.bet = bet
	}
}

// WithButton sets which seat has the button for the first hand
func WithButton(seat int) Option {
	return func(t *Table) {
		t.button = seat
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// WithDecisionLog records every decision with its bet and every showdown
func WithDecisionLog(l *decisionlog.Logger) Option {
	return func(t *Table) {
		t.decisions = l
	}
}

// NewTable seats two players
func NewTable(first, second Seat, opts ...Option) (*Table, error) {
	t := &Table{
		seats: [2]Seat{first, second},
		pot:   DefaultPot,
		bet:   DefaultBet,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = randutil.NewFromTime()
	}
	if t.logger == nil {
		t.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	t.logger = t.logger.WithPrefix("table")

	for i, s := range t.seats {
		if s.Bot == nil {
			return nil, fmt.Errorf("%w: seat %d has no bot", ErrInvalidTable, i)
		}
		if s.Chips < 0 {
			return nil, fmt.Errorf("%w: seat %d has %d chips", ErrInvalidTable, i, s.Chips)
		}
		if s.Name == "" {
			t.seats[i].Name = s.Bot.Name()
		}
	}
	if t.seats[0].Name == t.seats[1].Name {
		return nil, fmt.Errorf("%w: both seats are named %q", ErrInvalidTable, t.seats[0].Name)
	}
	if t.pot < 0 || t.pot%2 != 0 {
		return nil, fmt.Errorf("%w: pot %d must be even and non-negative", ErrInvalidTable, t.pot)
	}
	if t.bet < 0 {
		return nil, fmt.Errorf("%w: bet %d", ErrInvalidTable, t.bet)
	}
	if t.button != 0 && t.button != 1 {
		return nil, fmt.Errorf("%w: button seat %d", ErrInvalidTable, t.button)
	}
	return t, nil
}

// Seat returns a copy of the seat at index 0 or 1
func (t *Table) Seat(i int) Seat {
	return t.seats[i]
}

// Button returns the seat that acts last on the next hand
func (t *Table) Button() int {
	return t.button
}

// HandsPlayed returns the number of completed hands
func (t *Table) HandsPlayed() int {
	return t.hands
}

// TotalChips returns the chips held by both seats
func (t *Table) TotalChips() int {
	return t.seats[0].Chips + t.seats[1].Chips
}

// Run plays up to n hands, calling fn after each one. It stops early
// without error when a seat can no longer post its ante.
func (t *Table) Run(ctx context.Context, n int, fn func(HandResult)) (int, error) {
	played := 0
	for played < n {
		result, err := t.PlayHand(ctx)
		if errors.Is(err, ErrBusted) {
			t.logger.Info("session over", "hands", played, "reason", err)
			return played, nil
		}
		if err != nil {
			return played, err
		}
		played++
		if fn != nil {
			fn(result)
		}
	}
	return played, nil
}
