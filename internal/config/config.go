// Package config resolves the immutable match configuration from file,
// environment, and defaults. The engine never reads configuration itself;
// everything funnels into an engine.MatchOptions before a match starts.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ceruleanoak/hanafuda-sub004/engine"
)

// Config is the full configuration surface: match options plus the
// runtime concerns of the outer layers.
type Config struct {
	Variant         string `mapstructure:"variant"`
	Players         int    `mapstructure:"players"`
	TotalRounds     int    `mapstructure:"total_rounds"`
	AutoDouble      bool   `mapstructure:"auto_double"`
	Continuation    bool   `mapstructure:"continuation"`
	OyaWinsTies     bool   `mapstructure:"oya_wins_ties"`
	ParValue        int    `mapstructure:"par_value"`
	FieldMultiplier int    `mapstructure:"field_multiplier"`
	EarlyWinScore   int    `mapstructure:"early_win_score"`
	Seed            uint64 `mapstructure:"seed"`

	LedgerPath string `mapstructure:"ledger_path"`
	LogLevel   string `mapstructure:"log_level"`
}

// Load reads configuration: a .env file if present, then the named config
// file (optional), then HANAFUDA_* environment variables, over defaults.
func Load(path string) (*Config, error) {
	// Missing .env is fine; only explicit files are required to exist.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HANAFUDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default: AutomaticEnv only surfaces HANAFUDA_*
	// variables into Unmarshal for keys viper already knows about.
	v.SetDefault("variant", string(engine.VariantKoiKoi))
	v.SetDefault("players", 0)
	v.SetDefault("total_rounds", 0)
	v.SetDefault("auto_double", true)
	v.SetDefault("continuation", true)
	v.SetDefault("oya_wins_ties", true)
	v.SetDefault("par_value", 0)
	v.SetDefault("field_multiplier", 0)
	v.SetDefault("early_win_score", 0)
	v.SetDefault("seed", 1)
	v.SetDefault("ledger_path", "")
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// MatchOptions converts the config into validated engine options.
func (c *Config) MatchOptions() (engine.MatchOptions, error) {
	id := engine.VariantID(c.Variant)
	if engine.LookupVariant(id) == nil {
		return engine.MatchOptions{}, fmt.Errorf("unknown variant %q", c.Variant)
	}
	opts := engine.DefaultMatchOptions(id)
	if c.Players > 0 {
		opts.NumPlayers = c.Players
	}
	if c.TotalRounds > 0 {
		opts.TotalRounds = c.TotalRounds
	}
	opts.AutoDouble7Plus = c.AutoDouble
	opts.ContinuationEnabled = c.Continuation
	opts.OyaWinsTies = c.OyaWinsTies
	if c.ParValue > 0 {
		opts.ParValue = c.ParValue
	}
	opts.FixedFieldMultiplier = c.FieldMultiplier
	opts.EarlyWinScore = c.EarlyWinScore
	if c.Seed != 0 {
		opts.Seed = c.Seed
	}
	return opts, nil
}
