// Package config loads and writes the holdem.hcl configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/lox/holdem-cli/internal/bot"
	"github.com/lox/holdem-cli/internal/decisionlog"
	"github.com/lox/holdem-cli/internal/fileutil"
)

// DefaultFilename is the config file looked up when no path is given
const DefaultFilename = "holdem.hcl"

// ErrInvalidConfig reports a config value outside its allowed range
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete configuration
type Config struct {
	Engine     EngineSettings
	Simulation SimulationSettings
	Table      TableSettings
	Bots       []BotConfig
}

// EngineSettings contains process-level settings
type EngineSettings struct {
	LogLevel    string `hcl:"log_level,optional"`
	DecisionLog string `hcl:"decision_log,optional"`
}

// SimulationSettings configures Monte Carlo runs
type SimulationSettings struct {
	Trials     int     `hcl:"trials,optional"`
	Workers    int     `hcl:"workers,optional"`
	Confidence float64 `hcl:"confidence,optional"`
}

// TableSettings configures the heads-up table
type TableSettings struct {
	StartingChips int `hcl:"starting_chips,optional"`
	Pot           int `hcl:"pot,optional"`
	Bet           int `hcl:"bet,optional"`
	Hands         int `hcl:"hands,optional"`
}

// BotConfig defines one computer player. Zero values mean "use the tier default".
type BotConfig struct {
	Name       string  `hcl:"name,label"`
	Difficulty string  `hcl:"difficulty,optional"`
	Seed       int64   `hcl:"seed,optional"`
	Trials     int     `hcl:"trials,optional"`
	MinWinRate float64 `hcl:"min_win_rate,optional"`
}

// file mirrors Config with optional blocks for decoding
type file struct {
	Engine     *EngineSettings     `hcl:"engine,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Table      *TableSettings      `hcl:"table,block"`
	Bots       []BotConfig         `hcl:"bot,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Engine: EngineSettings{
			LogLevel:    "info",
			DecisionLog: decisionlog.DefaultPath,
		},
		Simulation: SimulationSettings{
			Trials:     10000,
			Workers:    4,
			Confidence: 0.95,
		},
		Table: TableSettings{
			StartingChips: 1000,
			Pot:           bot.DefaultPot,
			Bet:           bot.DefaultBet,
			Hands:         100,
		},
		Bots: []BotConfig{
			{Name: "hero", Difficulty: bot.HardPlus.String()},
			{Name: "villain", Difficulty: bot.Medium.String()},
		},
	}
}

// Load reads filename. A missing file yields the defaults, and missing
// fields are filled from the defaults. The result is validated.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(f)
}

// Parse decodes HCL source; filename is only used in diagnostics
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(f)
}

func decode(f *hcl.File) (*Config, error) {
	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Engine != nil {
		cfg.Engine = *raw.Engine
	}
	if raw.Simulation != nil {
		cfg.Simulation = *raw.Simulation
	}
	if raw.Table != nil {
		cfg.Table = *raw.Table
	}
	if len(raw.Bots) > 0 {
		cfg.Bots = raw.Bots
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()

	if c.Engine.LogLevel == "" {
		c.Engine.LogLevel = def.Engine.LogLevel
	}
	if c.Engine.DecisionLog == "" {
		c.Engine.DecisionLog = def.Engine.DecisionLog
	}
	if c.Simulation.Trials == 0 {
		c.Simulation.Trials = def.Simulation.Trials
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = def.Simulation.Workers
	}
	if c.Simulation.Confidence == 0 {
		c.Simulation.Confidence = def.Simulation.Confidence
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = def.Table.StartingChips
	}
	if c.Table.Pot == 0 {
		c.Table.Pot = def.Table.Pot
	}
	if c.Table.Bet == 0 {
		c.Table.Bet = def.Table.Bet
	}
	if c.Table.Hands == 0 {
		c.Table.Hands = def.Table.Hands
	}
	for i := range c.Bots {
		if c.Bots[i].Difficulty == "" {
			c.Bots[i].Difficulty = bot.Medium.String()
		}
	}
}

var logLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Validate checks every value is in range. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.Engine.LogLevel) {
		return fmt.Errorf("%w: engine: unknown log level %q", ErrInvalidConfig, c.Engine.LogLevel)
	}

	if c.Simulation.Trials < 1 {
		return fmt.Errorf("%w: simulation: trials must be positive, got %d", ErrInvalidConfig, c.Simulation.Trials)
	}
	if c.Simulation.Workers < 1 || c.Simulation.Workers > 256 {
		return fmt.Errorf("%w: simulation: workers must be between 1 and 256, got %d", ErrInvalidConfig, c.Simulation.Workers)
	}
	if c.Simulation.Confidence <= 0 || c.Simulation.Confidence >= 1 {
		return fmt.Errorf("%w: simulation: confidence must be in (0, 1), got %g", ErrInvalidConfig, c.Simulation.Confidence)
	}

	if c.Table.StartingChips <= 0 {
		return fmt.Errorf("%w: table: starting chips must be positive", ErrInvalidConfig)
	}
	if c.Table.Pot < 0 {
		return fmt.Errorf("%w: table: pot cannot be negative", ErrInvalidConfig)
	}
	if c.Table.Bet <= 0 {
		return fmt.Errorf("%w: table: bet must be positive", ErrInvalidConfig)
	}
	if c.Table.Hands < 1 {
		return fmt.Errorf("%w: table: hands must be positive", ErrInvalidConfig)
	}

	seen := make(map[string]bool)
	for _, b := range c.Bots {
		if seen[b.Name] {
			return fmt.Errorf("%w: bot %s: defined more than once", ErrInvalidConfig, b.Name)
		}
		seen[b.Name] = true

		if _, err := bot.ParseDifficulty(b.Difficulty); err != nil {
			return fmt.Errorf("%w: bot %s: %v", ErrInvalidConfig, b.Name, err)
		}
		if b.Trials < 0 {
			return fmt.Errorf("%w: bot %s: trials cannot be negative", ErrInvalidConfig, b.Name)
		}
		if b.MinWinRate < 0 || b.MinWinRate > 1 {
			return fmt.Errorf("%w: bot %s: min_win_rate must be in [0, 1]", ErrInvalidConfig, b.Name)
		}
	}
	return nil
}

// Bot returns the bot configuration with the given name
func (c *Config) Bot(name string) (BotConfig, bool) {
	for _, b := range c.Bots {
		if b.Name == name {
			return b, true
		}
	}
	return BotConfig{}, false
}

// Strategy builds the bot's tier parameters. HardPlus bots take their
// pot, call and confidence from the table and simulation settings.
func (c *Config) Strategy(b BotConfig) (bot.Strategy, error) {
	d, err := bot.ParseDifficulty(b.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: bot %s: %v", ErrInvalidConfig, b.Name, err)
	}

	s := bot.DefaultStrategy(d)
	hp, ok := s.(bot.HardPlusStrategy)
	if !ok {
		return s, nil
	}
	hp.Workers = c.Simulation.Workers
	hp.Confidence = c.Simulation.Confidence
	hp.Pot = c.Table.Pot
	hp.Call = c.Table.Bet
	if b.Trials > 0 {
		hp.Trials = b.Trials
	}
	if b.MinWinRate > 0 {
		hp.MinWinRate = b.MinWinRate
	}
	return hp, nil
}

// Encode renders the configuration as HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	gohcl.EncodeIntoBody(c.Engine, root.AppendNewBlock("engine", nil).Body())
	root.AppendNewline()

	gohcl.EncodeIntoBody(c.Simulation, root.AppendNewBlock("simulation", nil).Body())
	root.AppendNewline()

	gohcl.EncodeIntoBody(c.Table, root.AppendNewBlock("table", nil).Body())

	for _, b := range c.Bots {
		root.AppendNewline()
		root.AppendBlock(gohcl.EncodeAsBlock(b, "bot"))
	}
	return f.Bytes()
}

// Save writes the configuration to filename atomically
func (c *Config) Save(filename string) error {
	if err := fileutil.WriteFileAtomic(filename, c.Encode(), 0o644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
