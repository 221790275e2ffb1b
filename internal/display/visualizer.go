// Package display renders bot decisions for a terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/classification"
	"github.com/lox/holdem-cli/internal/deck"
)

// DefaultMeterWidth is the number of cells in the strength meter
const DefaultMeterWidth = 20

// Visualizer prints a panel for every decision it observes. It is safe for
// concurrent use.
type Visualizer struct {
	mu         sync.Mutex
	out        io.Writer
	meterWidth int
	boxed      bool
	err        error
}

// Option configures a Visualizer
type Option func(*Visualizer)

// WithMeterWidth sets the strength meter width in cells
func WithMeterWidth(width int) Option {
	return func(v *Visualizer) {
		if width > 0 {
			v.meterWidth = width
		}
	}
}

// WithBorder draws a rounded border around each panel
func WithBorder(boxed bool) Option {
	return func(v *Visualizer) {
		v.boxed = boxed
	}
}

// New creates a visualizer writing to out
func New(out io.Writer, opts ...Option) *Visualizer {
	v := &Visualizer{
		out:        out,
		meterWidth: DefaultMeterWidth,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var _ bot.Observer = (*Visualizer)(nil)

// ObserveDecision renders the decision to the output
func (v *Visualizer) ObserveDecision(d bot.Decision) {
	panel := v.Render(d)

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, err := fmt.Fprintln(v.out, panel); err != nil && v.err == nil {
		v.err = err
	}
}

// Err returns the first write error, if any
func (v *Visualizer) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Render returns the panel for a decision without writing it
func (v *Visualizer) Render(d bot.Decision) string {
	var b strings.Builder

	title := fmt.Sprintf("%s (%s) · %s", d.Player, d.Difficulty, d.Stage)
	if d.Player == "" {
		title = fmt.Sprintf("%s bot · %s", d.Difficulty, d.Stage)
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")

	hole, board := d.Cards, []deck.Card(nil)
	if len(d.Cards) > 2 {
		hole, board = d.Cards[:2], d.Cards[2:]
	}
	row(&b, "Hole", FormatCards(hole))
	if len(board) > 0 {
		row(&b, "Board", FormatCards(board))
	}
	if key, ok := deck.StartingHandKey(hole); ok {
		pct, _ := deck.StartingHandPercentile(hole)
		row(&b, "Starting hand", fmt.Sprintf("%s (better than %.0f%% of hands)", key, pct*100))
	}

	row(&b, "Hand", HandInfoStyle.Render(d.Hand.Describe()))
	row(&b, "Strength", StrengthMeter(d.Strength, v.meterWidth))
	row(&b, "Draws", describeDraws(d))

	if d.Simulated {
		row(&b, "Win rate", fmt.Sprintf("%.1f%% (CI %.1f%% to %.1f%%, %d trials)",
			d.WinRate*100, d.Confidence[0]*100, d.Confidence[1]*100, d.Simulation.Trials))
		row(&b, "Tie / lose", fmt.Sprintf("%.1f%% / %.1f%%",
			d.Simulation.TieRate()*100, d.Simulation.LossRate()*100))
		row(&b, "Pot odds", fmt.Sprintf("%.1f%%", d.PotOdds*100))
		ev := fmt.Sprintf("%+.2f chips", d.EV)
		if d.EV < 0 {
			ev = WarningStyle.Render(ev)
		}
		row(&b, "EV", ev)
		row(&b, "Kelly", fmt.Sprintf("%.1f%% of bankroll", d.Kelly*100))
	}

	action := CallStyle.Render("CALL")
	if !d.Call {
		action = FoldStyle.Render("FOLD")
	}
	row(&b, "Decision", action)
	if d.Reasoning != "" {
		b.WriteString(InfoStyle.Render(d.Reasoning))
		b.WriteString("\n")
	}

	panel := strings.TrimRight(b.String(), "\n")
	if v.boxed {
		return BoxStyle.Render(panel)
	}
	return panel
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func describeDraws(d bot.Decision) string {
	if !d.HasDraw {
		return InfoStyle.Render("none")
	}
	parts := make([]string, 0, len(d.Draws.Draws))
	for _, dt := range d.Draws.Draws {
		switch dt {
		case classification.FlushDraw:
			parts = append(parts, fmt.Sprintf("%s (%s)", dt, d.Draws.FlushSuit))
		case classification.NoDraw:
		default:
			parts = append(parts, dt.String())
		}
	}
	if len(d.Draws.NeededRanks) > 0 {
		needed := make([]string, len(d.Draws.NeededRanks))
		for i, r := range d.Draws.NeededRanks {
			needed[i] = r.String()
		}
		parts = append(parts, "needs "+strings.Join(needed, "/"))
	}
	return strings.Join(parts, ", ")
}

// StrengthMeter draws a bar of width cells filled to strength (0..1)
func StrengthMeter(strength float64, width int) string {
	if width <= 0 {
		width = DefaultMeterWidth
	}
	strength = max(0, min(1, strength))
	filled := int(strength*float64(width) + 0.5)

	return MeterFullStyle.Render(strings.Repeat("█", filled)) +
		MeterEmptyStyle.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3.0f%%", strength*100)
}

// FormatCards renders cards with red and black suit colors
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := BlackCardStyle
		if c.IsRed() {
			style = RedCardStyle
		}
		parts[i] = style.Render(c.String())
	}
	return strings.Join(parts, " ")
}

// Summary renders a one-line description of a decision, used by the duel log
func Summary(d bot.Decision) string {
	s := fmt.Sprintf("%s %s on the %s with %s", d.Player, strings.ToUpper(d.Action()), d.Stage, d.Hand.Describe())
	if d.Simulated {
		s += fmt.Sprintf(" (win %.1f%%, EV %+.1f)", d.WinRate*100, d.EV)
	}
	return s
}
