package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/lox/holdem-cli/internal/pokermath"
)

type MathCmd struct {
	Pot      int     `short:"p" required:"" help:"Chips in the pot before the call"`
	Call     int     `required:"" help:"Chips needed to call"`
	WinProb  float64 `short:"w" name:"win-prob" required:"" help:"Probability of winning (0 to 1)"`
	Bankroll int     `short:"b" help:"Bankroll for risk of ruin"`
	Future   int     `short:"f" help:"Chips expected to be won on later streets"`
	Fraction float64 `default:"0.5" help:"Fraction of Kelly to report"`
}

func (c *MathCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}
	if c.WinProb < 0 || c.WinProb > 1 {
		return fmt.Errorf("win probability must be between 0 and 1, got %v", c.WinProb)
	}
	if c.Pot < 0 || c.Call < 0 {
		return fmt.Errorf("pot and call must not be negative")
	}

	odds := pokermath.PotOdds(c.Pot, c.Call)
	ev := pokermath.ExpectedValue(c.WinProb, c.Pot, c.Call)

	w := tabwriter.NewWriter(g.stdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("measure"), headerStyle.Render("value"))
	fmt.Fprintf(w, "pot odds\t%.2f:1\n", odds)
	fmt.Fprintf(w, "break-even equity\t%s\n", pct(pokermath.PotOddsPercentage(c.Pot, c.Call)))
	if c.Future > 0 {
		fmt.Fprintf(w, "implied odds\t%.2f:1\n", pokermath.ImpliedOdds(c.Pot, c.Call, c.Future))
	}
	evStyle := winStyle
	if ev < 0 {
		evStyle = lossStyle
	}
	fmt.Fprintf(w, "expected value\t%s\n", evStyle.Render(fmt.Sprintf("%+.2f", ev)))
	fmt.Fprintf(w, "profitable call\t%s\n", yesNo(pokermath.IsProfitableCall(c.WinProb, c.Pot, c.Call)))
	fmt.Fprintf(w, "kelly fraction\t%s\n", pct(pokermath.KellyFraction(c.WinProb, odds)))
	fmt.Fprintf(w, "%.0f%% kelly\t%s\n", c.Fraction*100, pct(pokermath.FractionalKelly(c.WinProb, odds, c.Fraction)))
	fmt.Fprintf(w, "minimum defense\t%s\n", pct(pokermath.MinimumDefenseFrequency(c.Pot, c.Call)))
	if c.Bankroll > 0 {
		fmt.Fprintf(w, "stack to pot\t%.2f\n", pokermath.StackToPotRatio(c.Bankroll, c.Pot))
		fmt.Fprintf(w, "risk of ruin\t%s\n", pct(pokermath.RiskOfRuin(c.WinProb, c.Bankroll, c.Call)))
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
