// Package config loads server and self-play settings from an optional YAML
// file with IMPOSTER_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cognivore/imposterzero/internal/game"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/rules"
	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	SelfPlay SelfPlayConfig `mapstructure:"selfplay"`
}

// ServerConfig configures the gRPC transport.
type ServerConfig struct {
	GRPC            GRPCConfig    `mapstructure:"grpc"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxGames        int           `mapstructure:"max_games"`
}

// GRPCConfig configures the listener.
type GRPCConfig struct {
	Address              string `mapstructure:"address"`
	MaxConcurrentStreams int    `mapstructure:"max_concurrent_streams"`
}

// LoggingConfig selects zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig holds the rules every new match is created with.
type GameConfig struct {
	HandSize       int `mapstructure:"hand_size"`
	WinThreshold   int `mapstructure:"win_threshold"`
	MinRoundPoints int `mapstructure:"min_round_points"`
	MaxRoundPoints int `mapstructure:"max_round_points"`
	CourtDivisor   int `mapstructure:"court_divisor"`
}

// SelfPlayConfig configures cmd/selfplay.
type SelfPlayConfig struct {
	Games       int    `mapstructure:"games"`
	Concurrency int    `mapstructure:"concurrency"`
	Seed        uint64 `mapstructure:"seed"`
	MaxActions  int    `mapstructure:"max_actions"`
	Policies    string `mapstructure:"policies"`
	ReplayDir   string `mapstructure:"replay_dir"`

	// Mode is "series" (two policies, many games) or "tournament".
	Mode             string `mapstructure:"mode"`
	Entrants         string `mapstructure:"entrants"`
	TournamentRounds int    `mapstructure:"tournament_rounds"`
	WinsRequired     int    `mapstructure:"wins_required"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc.address", ":50051")
	v.SetDefault("server.grpc.max_concurrent_streams", 100)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_games", 1000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.hand_size", 9)
	v.SetDefault("game.win_threshold", 7)
	v.SetDefault("game.min_round_points", 1)
	v.SetDefault("game.max_round_points", 3)
	v.SetDefault("game.court_divisor", 4)

	v.SetDefault("selfplay.games", 100)
	v.SetDefault("selfplay.concurrency", 4)
	v.SetDefault("selfplay.seed", 1)
	v.SetDefault("selfplay.max_actions", 5000)
	v.SetDefault("selfplay.policies", "random,greedy")
	v.SetDefault("selfplay.replay_dir", "")
	v.SetDefault("selfplay.mode", "series")
	v.SetDefault("selfplay.entrants", "random,random,greedy,greedy")
	v.SetDefault("selfplay.tournament_rounds", 3)
	v.SetDefault("selfplay.wins_required", 2)
}

// Load reads path if it exists, then applies environment overrides such as
// IMPOSTER_GAME_HAND_SIZE. An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("IMPOSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	if c.Server.GRPC.Address == "" {
		return fmt.Errorf("server.grpc.address is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not one of json, console", c.Logging.Format)
	}
	if err := c.Game.Engine().Validate(cards.Standard()); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if c.SelfPlay.Concurrency < 1 {
		return fmt.Errorf("selfplay.concurrency must be positive")
	}
	if c.SelfPlay.MaxActions < 1 {
		return fmt.Errorf("selfplay.max_actions must be positive")
	}
	switch c.SelfPlay.Mode {
	case "series":
	case "tournament":
		if c.SelfPlay.TournamentRounds < 1 || c.SelfPlay.WinsRequired < 1 {
			return fmt.Errorf("selfplay.tournament_rounds and selfplay.wins_required must be positive")
		}
	default:
		return fmt.Errorf("selfplay.mode %q is not one of series, tournament", c.SelfPlay.Mode)
	}
	return nil
}

// Engine converts the game section into the engine's rule config.
func (g GameConfig) Engine() game.Config {
	return game.Config{
		HandSize: g.HandSize,
		Scoring: rules.ScoringConfig{
			CourtDivisor:   g.CourtDivisor,
			MinRoundPoints: g.MinRoundPoints,
			MaxRoundPoints: g.MaxRoundPoints,
			WinThreshold:   g.WinThreshold,
		},
	}
}
