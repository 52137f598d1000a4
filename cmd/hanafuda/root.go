package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ceruleanoak/hanafuda-sub004/engine"
	"github.com/ceruleanoak/hanafuda-sub004/internal/config"
	"github.com/ceruleanoak/hanafuda-sub004/internal/ledger"
)

var (
	configFile string
	logLevel   string

	flagVariant string
	flagPlayers int
	flagRounds  int
	flagSeed    uint64
	flagLedger  string
)

var rootCmd = &cobra.Command{
	Use:          "hanafuda",
	Short:        "hanafuda rules engine: simulate and play koi-koi, sakura, hachi-hachi, and match games",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to a config file (yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flagVariant, "variant", "", "game variant: koikoi, sakura, hachihachi, match")
	pf.IntVar(&flagPlayers, "players", 0, "seat count (variant default when 0)")
	pf.IntVar(&flagRounds, "rounds", 0, "rounds per match (variant default when 0)")
	pf.Uint64Var(&flagSeed, "seed", 0, "deterministic shuffle seed (config default when 0)")
	pf.StringVar(&flagLedger, "ledger", "", "sqlite score ledger path (disabled when empty)")
}

// setup resolves config, flags, and the logger in precedence order:
// flags over file/env over defaults.
func setup() (*config.Config, engine.MatchOptions, *logrus.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, engine.MatchOptions{}, nil, err
	}
	if flagVariant != "" {
		cfg.Variant = flagVariant
	}
	if flagPlayers > 0 {
		cfg.Players = flagPlayers
	}
	if flagRounds > 0 {
		cfg.TotalRounds = flagRounds
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagLedger != "" {
		cfg.LedgerPath = flagLedger
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	opts, err := cfg.MatchOptions()
	if err != nil {
		return nil, engine.MatchOptions{}, nil, err
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, engine.MatchOptions{}, nil, fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)
	return cfg, opts, log, nil
}

// openLedger opens the configured ledger, or returns nil when persistence
// is disabled.
func openLedger(cfg *config.Config, log *logrus.Logger) (*ledger.Ledger, error) {
	if cfg.LedgerPath == "" {
		return nil, nil
	}
	return ledger.Open(cfg.LedgerPath, log)
}
