package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Evaluate a 5 to 7 card hand"`
	Odds    OddsCmd          `cmd:"" help:"Estimate win, tie and loss rates by Monte Carlo simulation"`
	Decide  DecideCmd        `cmd:"" help:"Ask a bot whether it would call a bet"`
	Math    MathCmd          `cmd:"" help:"Pot odds, expected value and bankroll math"`
	Duel    DuelCmd          `cmd:"" help:"Play two bots against each other heads-up"`
	Config  ConfigCmd        `cmd:"" help:"Manage the configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Heads-up Texas Hold'em decision engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
