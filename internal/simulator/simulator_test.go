package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/game"
	"github.com/lox/holdem-cli/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(name string, s bot.Strategy) Player {
	return Player{Name: name, Bot: bot.New(name, s, bot.WithSeed(7))}
}

func TestDuplicateCancelsCardLuck(t *testing.T) {
	sim := New(Config{Deals: 10, Seed: 12345})
	caller := bot.EasyStrategy{CallRate: 1}

	var deals int
	res, err := sim.Run(context.Background(), player("hero", caller), player("villain", caller),
		func(deal int, first, second game.HandResult) {
			deals++
			assert.Equal(t, deal, deals)
			assert.Equal(t, first.Hole[0], second.Hole[0])
			assert.Equal(t, first.Board, second.Board)
		})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Deals)
	assert.Equal(t, 20, res.Hands.Hands)
	assert.Equal(t, 10, res.Paired.Hands)
	assert.Zero(t, res.Paired.Sum)
	assert.Zero(t, res.Hands.AllNet)
	assert.Equal(t, 10, res.Hands.PositionResults[statistics.ActsFirst].Hands)
	assert.Equal(t, 10, res.Hands.PositionResults[statistics.ActsLast].Hands)
}

func TestFoldingHeroLosesItsAnte(t *testing.T) {
	sim := New(Config{Deals: 3, Seed: 1})

	res, err := sim.Run(context.Background(),
		player("hero", bot.EasyStrategy{CallRate: 0}),
		player("villain", bot.EasyStrategy{CallRate: 1}), nil)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Hands.Hands)
	assert.InDelta(t, -float64(game.DefaultPot/2), res.Hands.Mean(), 1e-9)
	assert.InDelta(t, -float64(game.DefaultPot), res.Paired.Mean(), 1e-9)
	assert.Zero(t, res.Hands.WinRate())
}

func TestRunRejectsSameNames(t *testing.T) {
	sim := New(Config{Deals: 1})
	caller := bot.EasyStrategy{CallRate: 1}

	_, err := sim.Run(context.Background(), player("same", caller), player("same", caller), nil)
	assert.ErrorIs(t, err, ErrSameName)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	caller := bot.EasyStrategy{CallRate: 1}
	res, err := New(Config{Deals: 5}).Run(ctx, player("hero", caller), player("villain", caller), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Deals)
}

func TestTimedOutHandReleasesBots(t *testing.T) {
	sim := New(Config{Deals: 3, Timeout: time.Nanosecond})
	hero := player("hero", bot.DefaultStrategy(bot.HardPlus))
	villain := player("villain", bot.EasyStrategy{CallRate: 1})

	res, err := sim.Run(context.Background(), hero, villain, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, res.Deals)

	// the bots are free for reuse once Run returns
	_, err = hero.Bot.Decide(deck.MustParseCards("AsKs QsJsTs"), bot.Flop)
	assert.NoError(t, err)
}

func TestRunReportsBotErrors(t *testing.T) {
	sim := New(Config{Deals: 1})
	broken := bot.HardPlusStrategy{Trials: 0, Workers: 1, Pot: 200, Call: 100, Confidence: 0.95}

	_, err := sim.Run(context.Background(), player("hero", broken), player("villain", bot.EasyStrategy{CallRate: 1}), nil)
	assert.ErrorContains(t, err, "deal 1")
}
