package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-cli/internal/classification"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/display"
	"github.com/lox/holdem-cli/internal/evaluator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

type EvalCmd struct {
	Cards   []string `arg:"" help:"Cards to evaluate, e.g. 'AsKs QsJsTs'"`
	Against string   `short:"a" help:"Compare with another hand of 5 to 7 cards"`
}

func (c *EvalCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	cards, err := deck.ParseCards(strings.Join(c.Cards, ""))
	if err != nil {
		return err
	}
	hand, err := evaluator.Evaluate(cards)
	if err != nil {
		return err
	}

	out := g.stdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("cards"), display.FormatCards(cards))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("hand"), handStyle.Render(hand.Describe()))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("value"), hand)
	if info := classification.Detect(cards); info.HasDraw() && len(cards) < 7 {
		draws := make([]string, len(info.Draws))
		for i, d := range info.Draws {
			draws[i] = d.String()
		}
		fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("draws"), strings.Join(draws, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if c.Against == "" {
		return nil
	}
	other, err := deck.ParseCards(c.Against)
	if err != nil {
		return fmt.Errorf("against: %w", err)
	}
	otherHand, err := evaluator.Evaluate(other)
	if err != nil {
		return fmt.Errorf("against: %w", err)
	}
	fmt.Fprintf(out, "\n%s\n", evaluator.Explain(hand, otherHand))
	return nil
}
