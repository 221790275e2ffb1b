// Package simulator plays duplicate heads-up matches: every deal is played
// twice with the players' seats swapped, so both bots hold each set of
// cards from the same position and card luck cancels out.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/game"
	"github.com/lox/holdem-cli/internal/statistics"
)

// ErrSameName is returned when both players share a name
var ErrSameName = errors.New("players must have different names")

// Config holds configuration for running simulations
type Config struct {
	Deals   int
	Seed    int64
	Pot     int
	Bet     int
	Chips   int
	Timeout time.Duration
	Logger  *log.Logger
}

// Player is one side of the match
type Player struct {
	Name string
	Bot  *bot.Bot
}

// Result holds the hero's results. Hands counts every hand played, Paired
// counts the combined net of each deal's two hands.
type Result struct {
	Hands  *statistics.Statistics
	Paired *statistics.Statistics
	Deals  int
}

// Simulator runs duplicate matches
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Pot == 0 {
		config.Pot = game.DefaultPot
	}
	if config.Bet == 0 {
		config.Bet = game.DefaultBet
	}
	if config.Chips == 0 {
		config.Chips = 1000
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	config.Logger = config.Logger.WithPrefix("simulator")
	return &Simulator{config: config}
}

// Run plays the configured number of deals. Both seats start every hand
// with a fresh stack. On cancellation or timeout the deals completed so far
// are returned along with the error; the bots are idle again by then.
func (s *Simulator) Run(ctx context.Context, hero, villain Player, fn func(deal int, first, second game.HandResult)) (*Result, error) {
	if hero.Name == villain.Name {
		return nil, fmt.Errorf("%w: %q", ErrSameName, hero.Name)
	}

	res := &Result{
		Hands:  statistics.New(s.config.Pot + 4*s.config.Bet),
		Paired: statistics.New(0),
	}
	for deal := range s.config.Deals {
		seed := s.config.Seed + int64(deal)

		first, err := s.playHandWithTimeout(ctx, hero, villain, seed)
		if err != nil {
			return res, fmt.Errorf("deal %d: %w", deal+1, err)
		}
		second, err := s.playHandWithTimeout(ctx, villain, hero, seed)
		if err != nil {
			return res, fmt.Errorf("duplicate of deal %d: %w", deal+1, err)
		}

		a, b := first.Stats(0), second.Stats(1)
		res.Hands.Add(a)
		res.Hands.Add(b)
		res.Paired.Add(statistics.HandResult{
			Net:            a.Net + b.Net,
			Seed:           uint64(seed),
			WentToShowdown: a.WentToShowdown && b.WentToShowdown,
			FinalPotSize:   max(a.FinalPotSize, b.FinalPotSize),
			StreetReached:  a.StreetReached,
		})
		res.Deals++

		s.config.Logger.Debug("deal complete", "deal", deal+1, "seed", seed, "net", a.Net+b.Net)
		if fn != nil {
			fn(deal+1, first, second)
		}
	}

	if err := res.Hands.Validate(); err != nil {
		return res, fmt.Errorf("statistics validation failed: %w", err)
	}
	return res, nil
}

// playHandWithTimeout plays one hand on a fresh table with the first
// player in seat 0 and the button
func (s *Simulator) playHandWithTimeout(ctx context.Context, first, second Player, seed int64) (game.HandResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	table, err := game.NewTable(
		game.Seat{Name: first.Name, Bot: first.Bot, Chips: s.config.Chips},
		game.Seat{Name: second.Name, Bot: second.Bot, Chips: s.config.Chips},
		game.WithSeed(seed),
		game.WithStakes(s.config.Pot, s.config.Bet),
		game.WithLogger(s.config.Logger),
	)
	if err != nil {
		return game.HandResult{}, err
	}

	type outcome struct {
		result game.HandResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := table.PlayHand(ctx)
		done <- outcome{r, err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		// The hand still holds both bots. PlayHand stops at the next street,
		// so wait for it before the bots can be reused.
		if o := <-done; o.err == nil {
			return o.result, nil
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return game.HandResult{}, fmt.Errorf("hand timed out after %v (seed: %d): %w", s.config.Timeout, seed, ctx.Err())
		}
		return game.HandResult{}, ctx.Err()
	}
}
