package game

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/decisionlog"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
	"github.com/lox/holdem-cli/internal/randutil"
	"github.com/lox/holdem-cli/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alwaysCall = bot.EasyStrategy{CallRate: 1}
	alwaysFold = bot.EasyStrategy{CallRate: 0}
)

func newTable(t *testing.T, first, second bot.Strategy, chips int, opts ...Option) *Table {
	t.Helper()
	opts = append([]Option{WithSeed(42)}, opts...)
	table, err := NewTable(
		Seat{Name: "hero", Bot: bot.New("hero", first, bot.WithSeed(1)), Chips: chips},
		Seat{Name: "villain", Bot: bot.New("villain", second, bot.WithSeed(2)), Chips: chips},
		opts...,
	)
	require.NoError(t, err)
	return table
}

func TestPlayHandShowdown(t *testing.T) {
	table := newTable(t, alwaysCall, alwaysCall, 1000)

	result, err := table.PlayHand(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Showdown)
	assert.Equal(t, -1, result.Folded)
	assert.Equal(t, bot.River, result.Stage)
	assert.Len(t, result.Board, 5)
	assert.Len(t, result.Decisions, 6)
	assert.Equal(t, DefaultPot+6*DefaultBet, result.Pot)
	assert.Zero(t, result.Net[0]+result.Net[1])
	assert.Equal(t, 2000, table.TotalChips())

	switch evaluator.Compare(result.Hands[0], result.Hands[1]) {
	case 1:
		assert.Equal(t, 0, result.Winner)
		assert.Equal(t, result.Pot/2, result.Net[0])
	case -1:
		assert.Equal(t, 1, result.Winner)
		assert.Equal(t, result.Pot/2, result.Net[1])
	default:
		assert.Equal(t, -1, result.Winner)
		assert.Zero(t, result.Net[0])
	}

	var all []deck.Card
	all = append(all, result.Hole[0]...)
	all = append(all, result.Hole[1]...)
	all = append(all, result.Board...)
	_, dup := deck.HasDuplicates(all)
	assert.False(t, dup)
}

func TestPlayHandFoldAwardsPot(t *testing.T) {
	// seat 0 holds the button, so seat 1 decides first and folds
	table := newTable(t, alwaysCall, alwaysFold, 1000, WithButton(0))

	result, err := table.PlayHand(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Showdown)
	assert.Equal(t, 1, result.Folded)
	assert.Equal(t, 0, result.Winner)
	assert.Equal(t, bot.Flop, result.Stage)
	assert.Equal(t, DefaultPot, result.Pot)
	assert.Equal(t, [2]int{DefaultPot / 2, -DefaultPot / 2}, result.Net)
	assert.Equal(t, 1100, table.Seat(0).Chips)
	assert.Equal(t, 900, table.Seat(1).Chips)
	require.Len(t, result.Decisions, 1)
	assert.Equal(t, "villain", result.Decisions[0].Player)
}

func TestPlayHandFoldAfterCall(t *testing.T) {
	// seat 1 holds the button: hero calls first, villain folds
	table := newTable(t, alwaysCall, alwaysFold, 1000, WithButton(1))

	result, err := table.PlayHand(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Folded)
	assert.Equal(t, DefaultPot+DefaultBet, result.Pot)
	assert.Equal(t, [2]int{DefaultPot / 2, -DefaultPot / 2}, result.Net)
	assert.Equal(t, 2000, table.TotalChips())
}

func TestDealAlternatesHoleCards(t *testing.T) {
	table := newTable(t, alwaysCall, alwaysCall, 1000)

	result, err := table.PlayHand(context.Background())
	require.NoError(t, err)

	dealt, err := deck.NewDeck(randutil.New(result.Seed)).DealN(9)
	require.NoError(t, err)
	assert.Equal(t, []deck.Card{dealt[0], dealt[2]}, result.Hole[0])
	assert.Equal(t, []deck.Card{dealt[1], dealt[3]}, result.Hole[1])
	assert.Equal(t, dealt[4:], result.Board)
}

func TestButtonAlternates(t *testing.T) {
	table := newTable(t, alwaysCall, alwaysCall, 1000, WithButton(1))

	for i := range 4 {
		result, err := table.PlayHand(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1-i%2, result.Button)
		assert.Equal(t, i+1, result.Number)
	}
	assert.Equal(t, 4, table.HandsPlayed())
}

func TestPlayHandIsReproducible(t *testing.T) {
	a := newTable(t, alwaysCall, alwaysCall, 1000)
	b := newTable(t, alwaysCall, alwaysCall, 1000)

	for range 3 {
		ra, err := a.PlayHand(context.Background())
		require.NoError(t, err)
		rb, err := b.PlayHand(context.Background())
		require.NoError(t, err)

		assert.Equal(t, ra.Seed, rb.Seed)
		assert.Equal(t, ra.Hole, rb.Hole)
		assert.Equal(t, ra.Board, rb.Board)
		assert.Equal(t, ra.Net, rb.Net)
	}
}

func TestShortStackCapsBet(t *testing.T) {
	table, err := NewTable(
		Seat{Name: "hero", Bot: bot.New("hero", alwaysCall), Chips: 150},
		Seat{Name: "villain", Bot: bot.New("villain", alwaysCall), Chips: 5000},
		WithSeed(7),
	)
	require.NoError(t, err)

	result, err := table.PlayHand(context.Background())
	require.NoError(t, err)

	// 100 ante each, then the hero only has 50 left to call once
	assert.Equal(t, 300, result.Pot)
	assert.Len(t, result.Decisions, 2)
	assert.True(t, result.Showdown)
	assert.Equal(t, 5150, table.TotalChips())
}

func TestRunStopsWhenBusted(t *testing.T) {
	table := newTable(t, alwaysCall, alwaysCall, 300)

	var results []HandResult
	played, err := table.Run(context.Background(), 1000, func(r HandResult) {
		results = append(results, r)
	})
	require.NoError(t, err)

	assert.Less(t, played, 1000)
	assert.Len(t, results, played)
	assert.Equal(t, 600, table.TotalChips())
	assert.True(t, table.Seat(0).Chips < DefaultPot/2 || table.Seat(1).Chips < DefaultPot/2)

	_, err = table.PlayHand(context.Background())
	assert.ErrorIs(t, err, ErrBusted)
}

func TestPlayHandCancelled(t *testing.T) {
	table := newTable(t, alwaysCall, alwaysCall, 1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := table.PlayHand(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1000, table.Seat(0).Chips)
	assert.Equal(t, 1000, table.Seat(1).Chips)
	assert.Zero(t, table.HandsPlayed())
}

func TestPlayHandPropagatesBotErrors(t *testing.T) {
	broken := bot.HardPlusStrategy{Trials: 0, Workers: 1, Pot: 200, Call: 100, Confidence: 0.95}
	table := newTable(t, broken, alwaysCall, 1000, WithButton(1))

	_, err := table.PlayHand(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hero on the Flop")
	assert.Equal(t, 2000, table.TotalChips())
	assert.Equal(t, 1000, table.Seat(0).Chips)
}

func TestDecisionLogRecordsHand(t *testing.T) {
	var buf bytes.Buffer
	log, err := decisionlog.New(&buf, true, quartz.NewMock(t))
	require.NoError(t, err)

	table := newTable(t, alwaysCall, alwaysCall, 1000, WithDecisionLog(log))
	result, err := table.PlayHand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Number)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+6+2)

	amount := 8
	for _, row := range rows[1:7] {
		assert.Equal(t, "call", row[7])
		assert.Equal(t, "100", row[amount])
	}
	assert.Equal(t, "Showdown", rows[7][6])
	assert.Equal(t, "Showdown", rows[8][6])
}

func TestHandResultStats(t *testing.T) {
	r := HandResult{
		Seed:     9,
		Button:   1,
		Pot:      800,
		Stage:    bot.River,
		Showdown: true,
		Winner:   -1,
		Net:      [2]int{0, 0},
	}

	hero := r.Stats(0)
	assert.Equal(t, statistics.ActsFirst, hero.Position)
	assert.True(t, hero.Split)
	assert.Equal(t, "River", hero.StreetReached)
	assert.Equal(t, statistics.ActsLast, r.Stats(1).Position)
}

func TestNewTableValidation(t *testing.T) {
	b := bot.New("a", alwaysCall)
	c := bot.New("b", alwaysCall)

	tests := []struct {
		name   string
		first  Seat
		second Seat
		opts   []Option
	}{
		{"missing bot", Seat{Name: "a", Chips: 10}, Seat{Bot: c, Chips: 10}, nil},
		{"negative chips", Seat{Bot: b, Chips: -1}, Seat{Bot: c, Chips: 10}, nil},
		{"duplicate names", Seat{Name: "x", Bot: b}, Seat{Name: "x", Bot: c}, nil},
		{"odd pot", Seat{Bot: b}, Seat{Bot: c}, []Option{WithStakes(201, 100)}},
		{"negative bet", Seat{Bot: b}, Seat{Bot: c}, []Option{WithStakes(200, -1)}},
		{"bad button", Seat{Bot: b}, Seat{Bot: c}, []Option{WithButton(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.first, tt.second, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}

	table, err := NewTable(Seat{Bot: b, Chips: 10}, Seat{Bot: c, Chips: 10})
	require.NoError(t, err)
	assert.Equal(t, "a", table.Seat(0).Name, "seat names default to the bot name")
}
