package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cognivore/imposterzero/internal/bot"
	"github.com/cognivore/imposterzero/internal/config"
	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/tournament"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	games      = flag.Int("games", 0, "number of games, overrides selfplay.games")
	seed       = flag.Uint64("seed", 0, "base seed, overrides selfplay.seed")
	mode       = flag.String("mode", "", "series or tournament, overrides selfplay.mode")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *games > 0 {
		cfg.SelfPlay.Games = *games
	}
	if *seed > 0 {
		cfg.SelfPlay.Seed = *seed
	}
	if *mode != "" {
		cfg.SelfPlay.Mode = *mode
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := cfg.Logging.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := abilities.NewRegistry()
	if cfg.SelfPlay.Mode == "tournament" {
		runTournament(ctx, cfg, registry, logger)
		return
	}
	runSeries(ctx, cfg, registry, logger)
}

func runSeries(ctx context.Context, cfg *config.Config, registry *abilities.Registry, logger *zap.Logger) {
	policies, err := bot.ParsePolicies(cfg.SelfPlay.Policies)
	if err != nil {
		logger.Fatal("invalid policies", zap.Error(err))
	}
	if cfg.SelfPlay.ReplayDir != "" {
		if err := os.MkdirAll(cfg.SelfPlay.ReplayDir, 0o755); err != nil {
			logger.Fatal("failed to create replay directory", zap.Error(err))
		}
	}

	start := time.Now()
	res, err := bot.RunSeries(ctx, bot.SeriesOptions{
		Games:       cfg.SelfPlay.Games,
		Concurrency: cfg.SelfPlay.Concurrency,
		Seed:        cfg.SelfPlay.Seed,
		MaxActions:  cfg.SelfPlay.MaxActions,
		Policies:    policies,
		Registry:    registry,
		Variant:     cards.Standard(),
		Config:      cfg.Game.Engine(),
		ReplayDir:   cfg.SelfPlay.ReplayDir,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("self-play failed", zap.Error(err), zap.Int("completed", res.Games))
	}

	var meanRounds float64
	if res.Games > 0 {
		meanRounds = float64(res.Rounds) / float64(res.Games)
	}
	logger.Info("self-play finished",
		zap.Int("games", res.Games),
		zap.String("seat0", policies[0]),
		zap.String("seat1", policies[1]),
		zap.Int("seat0_wins", res.Wins[0]),
		zap.Int("seat1_wins", res.Wins[1]),
		zap.Float64("mean_rounds", meanRounds),
		zap.Int("actions", res.Actions),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func runTournament(ctx context.Context, cfg *config.Config, registry *abilities.Registry, logger *zap.Logger) {
	entrants, err := tournament.ParseEntrants(cfg.SelfPlay.Entrants)
	if err != nil {
		logger.Fatal("invalid entrants", zap.Error(err))
	}

	manager := tournament.NewManager(logger)
	tour := manager.CreateTournament("selfplay", cfg.SelfPlay.TournamentRounds, cfg.SelfPlay.WinsRequired)
	for _, e := range entrants {
		if err := tour.AddPlayer(e[0], e[1]); err != nil {
			logger.Fatal("invalid entrant", zap.String("name", e[0]), zap.Error(err))
		}
	}

	start := time.Now()
	snap, err := tournament.Run(ctx, tour, tournament.RunOptions{
		Registry:    registry,
		Variant:     cards.Standard(),
		Config:      cfg.Game.Engine(),
		Seed:        cfg.SelfPlay.Seed,
		MaxActions:  cfg.SelfPlay.MaxActions,
		Concurrency: cfg.SelfPlay.Concurrency,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("tournament failed", zap.Error(err), zap.Int("round", snap.CurrentRound))
	}

	for rank, p := range snap.Standings {
		logger.Info("standing",
			zap.Int("rank", rank+1),
			zap.String("name", p.Name),
			zap.String("policy", p.Policy),
			zap.Int("points", p.Points),
			zap.Int("wins", p.Wins),
			zap.Int("losses", p.Losses),
			zap.Int("draws", p.Draws),
		)
	}
	logger.Info("tournament finished",
		zap.Int("rounds", len(snap.Rounds)),
		zap.Duration("elapsed", time.Since(start)),
	)
}
