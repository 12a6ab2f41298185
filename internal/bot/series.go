package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cognivore/imposterzero/internal/game"
	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SeriesOptions configure a batch of self-play matches.
type SeriesOptions struct {
	Games       int
	Concurrency int
	Seed        uint64
	MaxActions  int
	// Policies names the seat policies, "random" or "greedy".
	Policies  [2]string
	Registry  *abilities.Registry
	Variant   cards.Variant
	Config    game.Config
	ReplayDir string
	Logger    *zap.Logger
}

// SeriesResult aggregates a batch.
type SeriesResult struct {
	Games   int
	Wins    [2]int
	Rounds  int
	Actions int
}

// ParsePolicies splits "random,greedy" into seat policy names.
func ParsePolicies(list string) ([2]string, error) {
	parts := strings.Split(list, ",")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return [2]string{}, fmt.Errorf("want two policies, got %q", list)
	}
	var out [2]string
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if _, err := NewPolicy(p, 0); err != nil {
			return [2]string{}, err
		}
		out[i] = p
	}
	return out, nil
}

// NewPolicy builds a named policy.
func NewPolicy(name string, seed uint64) (Policy, error) {
	switch name {
	case "random":
		return Random(seed), nil
	case "greedy":
		return Greedy(), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

// RunSeries plays opts.Games matches, game i seeded with opts.Seed+i. The
// first failing match cancels the rest.
func RunSeries(ctx context.Context, opts SeriesOptions) (SeriesResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	var (
		mu  sync.Mutex
		res SeriesResult
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i := 0; i < opts.Games; i++ {
		seed := opts.Seed + uint64(i)
		g.Go(func() error {
			r, err := playOne(ctx, opts, seed, logger)
			if err != nil {
				return fmt.Errorf("game seed %d: %w", seed, err)
			}
			mu.Lock()
			res.Games++
			res.Wins[r.Winner]++
			res.Rounds += r.Rounds
			res.Actions += r.Actions
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

func playOne(ctx context.Context, opts SeriesOptions, seed uint64, logger *zap.Logger) (Result, error) {
	var policies [2]Policy
	for seat, name := range opts.Policies {
		p, err := NewPolicy(name, seed*2+uint64(seat))
		if err != nil {
			return Result{}, err
		}
		policies[seat] = p
	}

	e, err := game.NewEngine([2]string{opts.Policies[0] + "-0", opts.Policies[1] + "-1"}, game.Options{
		Registry: opts.Registry,
		Variant:  opts.Variant,
		Config:   opts.Config,
		Seed:     seed,
		Logger:   logger,
	})
	if err != nil {
		return Result{}, err
	}

	r, err := Play(ctx, e, policies, opts.MaxActions, nil)
	if err != nil {
		return r, err
	}
	logger.Debug("self-play game finished",
		zap.Uint64("seed", seed),
		zap.Int("winner", r.Winner),
		zap.Int("rounds", r.Rounds),
		zap.Int("actions", r.Actions),
	)

	if opts.ReplayDir != "" {
		path, err := game.NewReplay(fmt.Sprintf("selfplay-%d", seed), e).SaveToFile(opts.ReplayDir)
		if err != nil {
			return r, fmt.Errorf("save replay: %w", err)
		}
		logger.Debug("replay saved", zap.String("path", path))
	}
	return r, nil
}
