package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/config"
	"github.com/lox/holdem-cli/internal/decisionlog"
	"github.com/lox/holdem-cli/internal/display"
	"github.com/lox/holdem-cli/internal/game"
	"github.com/lox/holdem-cli/internal/perf"
	"github.com/lox/holdem-cli/internal/pokermath"
	"github.com/lox/holdem-cli/internal/randutil"
	"github.com/lox/holdem-cli/internal/simulator"
	"github.com/lox/holdem-cli/internal/statistics"
	"github.com/lox/holdem-cli/internal/thinking"
)

type DuelCmd struct {
	Hero    string `default:"hero" help:"Config bot name or difficulty for the hero"`
	Villain string `default:"villain" help:"Config bot name or difficulty for the villain"`
	Hands   int    `short:"n" help:"Number of hands to play (overrides config)"`
	Chips   int    `help:"Starting chips per seat (overrides config)"`
	Seed    *int64 `help:"Random seed for the deck"`
	Log     bool   `help:"Append every decision and showdown to the CSV decision log"`
	Verbose bool   `short:"V" help:"Print every hand"`
	Timing  bool   `short:"t" help:"Print a timing report"`

	Duplicate   bool          `help:"Play every deal twice with the seats swapped, resetting stacks each hand"`
	HandTimeout time.Duration `help:"Abort a duplicate match when one hand takes longer than this (0 disables)"`
}

func (c *DuelCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	chips := cmp.Or(c.Chips, cfg.Table.StartingChips)
	hands := cmp.Or(c.Hands, cfg.Table.Hands)

	hero, err := seat(cfg, c.Hero, chips, logger)
	if err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	villain, err := seat(cfg, c.Villain, chips, logger)
	if err != nil {
		return fmt.Errorf("villain: %w", err)
	}
	if hero.Name == villain.Name {
		villain.Name += " (2)"
	}

	if c.Duplicate {
		return c.runDuplicate(g, cfg, logger, hero, villain, hands)
	}

	opts := []game.Option{
		game.WithStakes(cfg.Table.Pot, cfg.Table.Bet),
		game.WithLogger(logger),
	}
	if c.Seed != nil {
		opts = append(opts, game.WithSeed(*c.Seed))
	}
	if c.Log {
		dl, err := decisionlog.Open(cfg.Engine.DecisionLog, quartz.NewReal())
		if err != nil {
			return err
		}
		defer func() {
			if err := dl.Close(); err != nil {
				logger.Error("Failed to close decision log", "error", err)
			}
		}()
		opts = append(opts, game.WithDecisionLog(dl))
	}

	table, err := game.NewTable(hero, villain, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	out := g.stdout()
	stats := statistics.New(cfg.Table.Pot + 4*cfg.Table.Bet)
	monitor := perf.New(quartz.NewReal())

	logger.Info("Starting duel", "hero", hero.Name, "villain", villain.Name, "hands", hands, "chips", chips)
	var (
		played int
		runErr error
	)
	ind := c.indicator(g)
	monitor.Time("duel", func() {
		played, runErr = thinking.Run(ind, fmt.Sprintf("Playing %d hands...", hands), func() (int, error) {
			return table.Run(ctx, hands, func(r game.HandResult) {
				stats.Add(r.Stats(0))
				if c.Verbose {
					printHand(out, [2]string{hero.Name, villain.Name}, r)
				}
			})
		})
	})
	switch {
	case errors.Is(runErr, context.Canceled):
		logger.Warn("Duel interrupted", "hands", played)
	case runErr != nil:
		return runErr
	}

	if err := printDuel(out, table, stats); err != nil {
		return err
	}
	if c.Timing {
		fmt.Fprintln(out)
		return monitor.Report(out)
	}
	return nil
}

// indicator spins on stderr while hands are played. Verbose output shares
// the terminal, so it gets no indicator.
func (c *DuelCmd) indicator(g *Globals) thinking.Indicator {
	if c.Verbose || !g.interactive() {
		return thinking.Nop{}
	}
	return thinking.NewTicker(g.stderr(), quartz.NewReal(), spinner.MiniDot)
}

// seat builds a player from a config bot, or from a difficulty name when no
// bot by that name is configured
func seat(cfg *config.Config, name string, chips int, logger *log.Logger) (game.Seat, error) {
	bc, ok := cfg.Bot(name)
	if !ok {
		d, err := bot.ParseDifficulty(name)
		if err != nil {
			return game.Seat{}, fmt.Errorf("%q is neither a configured bot nor a difficulty", name)
		}
		bc = config.BotConfig{Name: d.String(), Difficulty: d.String()}
	}
	strategy, err := cfg.Strategy(bc)
	if err != nil {
		return game.Seat{}, err
	}

	opts := []bot.Option{bot.WithLogger(logger)}
	if bc.Seed != 0 {
		opts = append(opts, bot.WithSeed(bc.Seed))
	}
	return game.Seat{
		Name:  bc.Name,
		Bot:   bot.New(bc.Name, strategy, opts...),
		Chips: chips,
	}, nil
}

func printHand(out io.Writer, names [2]string, r game.HandResult) {
	fmt.Fprintf(out, "%s  %s vs %s  board %s\n",
		headerStyle.Render(fmt.Sprintf("#%d", r.Number)),
		display.FormatCards(r.Hole[0]),
		display.FormatCards(r.Hole[1]),
		display.FormatCards(r.Board))
	for _, d := range r.Decisions {
		fmt.Fprintf(out, "    %s\n", display.Summary(d))
	}

	switch {
	case r.Folded >= 0:
		fmt.Fprintf(out, "    %s takes %d after %s folds\n", names[r.Winner], r.Pot, names[r.Folded])
	case r.Winner == -1:
		fmt.Fprintf(out, "    split pot of %d with %s\n", r.Pot, r.Hands[0].Describe())
	default:
		fmt.Fprintf(out, "    %s wins %d with %s\n", names[r.Winner], r.Pot, r.Hands[r.Winner].Describe())
	}
}

func printDuel(out io.Writer, table *game.Table, s *statistics.Statistics) error {
	hero, villain := table.Seat(0), table.Seat(1)

	fmt.Fprintf(out, "\n%s\n", headerStyle.Render(fmt.Sprintf("%s vs %s", hero.Name, villain.Name)))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "final chips\t%d / %d\n", hero.Chips, villain.Chips)
	if err := w.Flush(); err != nil {
		return err
	}
	return printStats(out, hero.Name, s)
}

// printStats prints a session's results from the hero's seat
func printStats(out io.Writer, hero string, s *statistics.Statistics) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "hands\t%d\n", s.Hands)
	if s.Hands == 0 {
		return w.Flush()
	}

	lo, hi := s.ConfidenceInterval95()
	fmt.Fprintf(w, "net for %s\t%+.0f\n", hero, s.AllNet)
	fmt.Fprintf(w, "mean per hand\t%+.2f\n", s.Mean())
	fmt.Fprintf(w, "std dev\t%.2f\n", s.StdDev())
	fmt.Fprintf(w, "95%% CI\t%+.2f to %+.2f\n", lo, hi)
	fmt.Fprintf(w, "sharpe ratio\t%.3f\n", pokermath.SharpeRatio(s.Mean(), s.StdDev(), 0))
	fmt.Fprintf(w, "median\t%+.1f\n", s.Median())
	fmt.Fprintf(w, "hands won\t%s\n", pct(s.WinRate()))
	fmt.Fprintf(w, "showdown wins\t%d (%+.0f)\n", s.ShowdownWins, s.ShowdownNet)
	fmt.Fprintf(w, "wins by fold\t%d (%+.0f)\n", s.NonShowdownWins, s.NonShowdownNet)
	fmt.Fprintf(w, "split pots\t%d\n", s.Splits)
	for _, pos := range []statistics.Position{statistics.ActsFirst, statistics.ActsLast} {
		fmt.Fprintf(w, "when %s\t%+.2f over %d hands\n", pos, s.PositionMean(pos), s.PositionResults[pos].Hands)
	}
	fmt.Fprintf(w, "big pots\t%d (%+.0f)\n", s.BigPots, s.BigPotsNet)
	fmt.Fprintf(w, "largest pot\t%d\n", s.MaxPot)
	if err := w.Flush(); err != nil {
		return err
	}

	if err := s.Validate(); err != nil {
		return fmt.Errorf("statistics: %w", err)
	}
	return nil
}

// runDuplicate plays a duplicate match. Every hand starts from fresh stacks
// so there is no decision log or final chip count.
func (c *DuelCmd) runDuplicate(g *Globals, cfg *config.Config, logger *log.Logger, hero, villain game.Seat, deals int) error {
	seed := randutil.NewFromTime().Int64()
	if c.Seed != nil {
		seed = *c.Seed
	}
	sim := simulator.New(simulator.Config{
		Deals:   deals,
		Seed:    seed,
		Pot:     cfg.Table.Pot,
		Bet:     cfg.Table.Bet,
		Chips:   hero.Chips,
		Timeout: c.HandTimeout,
		Logger:  logger,
	})

	ctx, cancel := signalContext(logger)
	defer cancel()

	out := g.stdout()
	monitor := perf.New(quartz.NewReal())
	names := [2]string{hero.Name, villain.Name}
	swapped := [2]string{villain.Name, hero.Name}

	logger.Info("Starting duplicate match", "hero", hero.Name, "villain", villain.Name, "deals", deals, "seed", seed)
	var (
		res    *simulator.Result
		runErr error
	)
	ind := c.indicator(g)
	monitor.Time("duel", func() {
		res, runErr = thinking.Run(ind, fmt.Sprintf("Playing %d duplicate deals...", deals), func() (*simulator.Result, error) {
			return sim.Run(ctx,
				simulator.Player{Name: hero.Name, Bot: hero.Bot},
				simulator.Player{Name: villain.Name, Bot: villain.Bot},
				func(_ int, first, second game.HandResult) {
					if c.Verbose {
						printHand(out, names, first)
						printHand(out, swapped, second)
					}
				})
		})
	})
	switch {
	case errors.Is(runErr, context.Canceled):
		logger.Warn("Duel interrupted", "deals", res.Deals)
	case runErr != nil:
		return runErr
	}

	fmt.Fprintf(out, "\n%s\n", headerStyle.Render(fmt.Sprintf("%s vs %s (duplicate, seed %d)", hero.Name, villain.Name, seed)))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "deals\t%d\n", res.Deals)
	if res.Deals > 0 {
		lo, hi := res.Paired.ConfidenceInterval95()
		fmt.Fprintf(w, "net per deal\t%+.2f\n", res.Paired.Mean())
		fmt.Fprintf(w, "95%% CI per deal\t%+.2f to %+.2f\n", lo, hi)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := printStats(out, hero.Name, res.Hands); err != nil {
		return err
	}
	if c.Timing {
		fmt.Fprintln(out)
		return monitor.Report(out)
	}
	return nil
}
