package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/coder/quartz"

	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/config"
	"github.com/lox/holdem-cli/internal/decisionlog"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/display"
	"github.com/lox/holdem-cli/internal/thinking"
)

type DecideCmd struct {
	Cards      string `arg:"" help:"Hole cards followed by the board, e.g. 'AsKs QsJs2d'"`
	Difficulty string `short:"d" default:"hard+" help:"Bot difficulty: easy, medium, hard, hard+"`
	Bot        string `help:"Use a bot defined in the config file instead of --difficulty"`
	Stage      string `short:"s" help:"Betting stage (defaults to the stage implied by the board)"`
	Seed       *int64 `help:"Random seed for reproducible decisions"`
	Log        bool   `help:"Append the decision to the CSV decision log"`
	Quiet      bool   `short:"q" help:"Only print call or fold"`
}

func (c *DecideCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	cards, err := deck.ParseCards(c.Cards)
	if err != nil {
		return err
	}
	if len(cards) < 5 {
		return fmt.Errorf("need hole cards and at least a flop, got %d cards", len(cards))
	}

	stage := bot.StageForBoard(len(cards) - 2)
	if c.Stage != "" {
		if stage, err = bot.ParseStage(c.Stage); err != nil {
			return err
		}
	}

	name, strategy, seed, err := c.strategy(cfg)
	if err != nil {
		return err
	}

	opts := []bot.Option{bot.WithLogger(logger)}
	if c.Seed != nil {
		seed = *c.Seed
	}
	if seed != 0 {
		opts = append(opts, bot.WithSeed(seed))
	}
	var dl *decisionlog.Logger
	if c.Log {
		if dl, err = decisionlog.Open(cfg.Engine.DecisionLog, quartz.NewReal()); err != nil {
			return err
		}
		defer func() {
			if err := dl.Close(); err != nil {
				logger.Error("Failed to close decision log", "error", err)
			}
		}()
		dl.StartHand()
		opts = append(opts, bot.WithObserver(dl))
	}

	b := bot.New(name, strategy, opts...)

	var ind thinking.Indicator = thinking.Nop{}
	if g.interactive() && !c.Quiet {
		ind = thinking.NewProgram(g.stderr(), spinner.Dot)
	}
	d, err := thinking.Run(ind, fmt.Sprintf("%s is thinking...", name), func() (bot.Decision, error) {
		return b.Decide(cards, stage)
	})
	if err != nil {
		return err
	}
	if dl != nil {
		logger.Info("Decision logged", "path", cfg.Engine.DecisionLog, "session", dl.SessionID(), "hand", dl.HandNumber())
	}

	if c.Quiet {
		fmt.Fprintln(g.stdout(), d.Action())
		return nil
	}
	// rendered after the indicator has cleared its line
	v := display.New(g.stdout(), display.WithBorder(true))
	v.ObserveDecision(d)
	return v.Err()
}

// strategy resolves the bot's name, tier parameters and configured seed
func (c *DecideCmd) strategy(cfg *config.Config) (string, bot.Strategy, int64, error) {
	if c.Bot != "" {
		bc, ok := cfg.Bot(c.Bot)
		if !ok {
			return "", nil, 0, fmt.Errorf("no bot named %q in the config file", c.Bot)
		}
		s, err := cfg.Strategy(bc)
		return bc.Name, s, bc.Seed, err
	}

	d, err := bot.ParseDifficulty(c.Difficulty)
	if err != nil {
		return "", nil, 0, err
	}
	s, err := cfg.Strategy(config.BotConfig{Name: d.String(), Difficulty: d.String()})
	return d.String() + " bot", s, 0, err
}
