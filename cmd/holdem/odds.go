package main

import (
	"cmp"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/display"
	"github.com/lox/holdem-cli/internal/montecarlo"
	"github.com/lox/holdem-cli/internal/perf"
)

type OddsCmd struct {
	Hole       string  `arg:"" help:"Your two hole cards, e.g. 'AsKs'"`
	Board      string  `short:"b" help:"Community cards (0 to 5), e.g. 'Td7s8h'"`
	Trials     int     `short:"n" help:"Number of Monte Carlo trials (overrides config)"`
	Workers    int     `short:"w" help:"Number of parallel workers (overrides config)"`
	Confidence float64 `help:"Confidence level for the interval (overrides config)"`
	Seed       *int64  `help:"Random seed for reproducible results"`
	Timing     bool    `short:"t" help:"Print a timing report"`
}

func (c *OddsCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("hole cards: %w", err)
	}
	var board []deck.Card
	if c.Board != "" {
		if board, err = deck.ParseCards(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	trials := cmp.Or(c.Trials, cfg.Simulation.Trials)
	workers := cmp.Or(c.Workers, cfg.Simulation.Workers)
	confidence := cmp.Or(c.Confidence, cfg.Simulation.Confidence)
	if confidence <= 0 || confidence >= 1 {
		return fmt.Errorf("confidence must be between 0 and 1, got %v", confidence)
	}

	opts := []montecarlo.Option{
		montecarlo.WithTrials(trials),
		montecarlo.WithWorkers(workers),
		montecarlo.WithLogger(logger),
	}
	if c.Seed != nil {
		opts = append(opts, montecarlo.WithSeed(*c.Seed))
	}
	sim, err := montecarlo.New(hole, board, opts...)
	if err != nil {
		return err
	}

	monitor := perf.New(quartz.NewReal())
	elapsed := monitor.Time("simulation", func() {
		sim.Run()
	})

	return printOdds(g, hole, board, sim, confidence, elapsed, c.Timing, monitor)
}

// printOdds reports the simulator's most recent run
func printOdds(g *Globals, hole, board []deck.Card, sim *montecarlo.Simulator,
	confidence float64, elapsed time.Duration, timing bool, monitor *perf.Monitor) error {
	out := g.stdout()

	fmt.Fprintf(out, "%s\n%s\n", headerStyle.Render("hand"), display.FormatCards(hole))
	if len(board) > 0 {
		fmt.Fprintf(out, "%s\n%s\n", headerStyle.Render("board"), display.FormatCards(board))
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("lose"),
		headerStyle.Render("equity"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		winStyle.Render(pct(sim.WinPercentage())),
		tieStyle.Render(pct(sim.TiePercentage())),
		lossStyle.Render(pct(sim.LosePercentage())),
		pct(sim.Last().Equity()))
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "std dev\t%.4f\n", sim.WinRateStdDev())
	for _, level := range confidenceLevels(confidence) {
		lo, hi := sim.ConfidenceInterval(level)
		fmt.Fprintf(w, "%.0f%% CI\t%s to %s\n", level*100, pct(lo), pct(hi))
	}
	if missing := montecarlo.BoardSize - len(board); len(board) >= 3 && missing > 0 {
		fmt.Fprintf(w, "flush draw odds\t%s\n", pct(sim.FlushDrawOdds()))
		fmt.Fprintf(w, "straight draw odds\t%s\n", pct(sim.StraightDrawOdds()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d trials on %d workers in %v\n", sim.Last().Trials, sim.Workers(), elapsed.Truncate(time.Millisecond))
	if timing {
		fmt.Fprintln(out)
		return monitor.Report(out)
	}
	return nil
}

// confidenceLevels returns the requested level followed by 99% when it differs
func confidenceLevels(level float64) []float64 {
	if level == 0.99 {
		return []float64{level}
	}
	return []float64{level, 0.99}
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
