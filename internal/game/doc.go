// Package game runs heads-up hands between two bots.
//
// The main type is Table, which seats two players, deals each hand from a
// seeded deck, asks each bot whether to call a fixed bet on the flop, turn
// and river, and settles the pot by fold or showdown.
//
// # Basic Usage
//
//	hero := bot.New("hero", bot.DefaultStrategy(bot.HardPlus))
//	villain := bot.New("villain", bot.DefaultStrategy(bot.Medium))
//	t, err := game.NewTable(
//	    game.Seat{Name: "hero", Bot: hero, Chips: 1000},
//	    game.Seat{Name: "villain", Bot: villain, Chips: 1000},
//	    game.WithSeed(42),
//	)
//	result, err := t.PlayHand(ctx)
//
// # Betting Model
//
// Each player antes half of the starting pot. On every street after the
// flop is dealt, the player out of position decides first. Calling puts the
// bet into the pot; folding concedes the pot. The bet shrinks to the
// shorter stack when either player cannot cover it. The button alternates
// between hands.
//
// # Deterministic Testing
//
// Every hand draws its deck seed from the table's generator, so a table
// built WithSeed replays the same cards for the same sequence of hands.
// The seed is reported in HandResult for replay.
//
// Chips only move inside this package. Bots decide; the table pays.
package game
