package tournament

import (
	"context"
	"fmt"

	"github.com/cognivore/imposterzero/internal/bot"
	"github.com/cognivore/imposterzero/internal/game"
	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunOptions configure how a tournament's matches are played.
type RunOptions struct {
	Registry    *abilities.Registry
	Variant     cards.Variant
	Config      game.Config
	Seed        uint64
	MaxActions  int
	Concurrency int
	Logger      *zap.Logger
}

// Run starts t and plays every round. Matches within a round run
// concurrently; rounds run in order because pairings depend on standings.
func Run(ctx context.Context, t *Tournament, opts RunOptions) (TournamentSnapshot, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if err := t.Start(); err != nil {
		return TournamentSnapshot{}, err
	}

	for {
		snap := t.Snapshot()
		round := snap.Rounds[len(snap.Rounds)-1]
		policies := make(map[string]string, len(snap.Standings))
		for _, p := range snap.Standings {
			policies[p.Name] = p.Policy
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for i, pairing := range round.Pairings {
			seed := opts.Seed + uint64(round.Number)*1_000_000 + uint64(i)*1_000
			names := [2]string{pairing.Player1, pairing.Player2}
			g.Go(func() error {
				wins, err := playMatch(gctx, opts, t.WinsRequired, names, [2]string{policies[names[0]], policies[names[1]]}, seed)
				if err != nil {
					return fmt.Errorf("round %d %s vs %s: %w", round.Number, names[0], names[1], err)
				}
				return t.RecordMatchResult(round.Number, names[0], names[1], wins[0], wins[1])
			})
		}
		if err := g.Wait(); err != nil {
			return t.Snapshot(), err
		}

		logger.Info("tournament round finished",
			zap.String("tournament_id", t.ID),
			zap.Int("round", round.Number),
			zap.Int("matches", len(round.Pairings)),
			zap.String("bye", round.Bye),
		)
		if round.Number >= t.NumRounds {
			break
		}
		if _, err := t.CreateRound(); err != nil {
			return t.Snapshot(), err
		}
	}

	snap := t.Snapshot()
	if len(snap.Standings) > 0 {
		logger.Info("tournament finished",
			zap.String("tournament_id", t.ID),
			zap.String("leader", snap.Standings[0].Name),
			zap.Int("points", snap.Standings[0].Points),
		)
	}
	return snap, nil
}

// playMatch plays games until one side reaches winsRequired. Seats swap
// every game so neither entrant keeps the first seat.
func playMatch(ctx context.Context, opts RunOptions, winsRequired int, names, policyNames [2]string, seed uint64) ([2]int, error) {
	var wins [2]int
	for g := uint64(0); wins[0] < winsRequired && wins[1] < winsRequired; g++ {
		seats := [2]int{0, 1}
		if g%2 == 1 {
			seats = [2]int{1, 0}
		}
		var (
			policies [2]bot.Policy
			players  [2]string
		)
		for seat, entrant := range seats {
			p, err := bot.NewPolicy(policyNames[entrant], (seed+g)*2+uint64(seat))
			if err != nil {
				return wins, err
			}
			policies[seat] = p
			players[seat] = names[entrant]
		}

		e, err := game.NewEngine(players, game.Options{
			Registry: opts.Registry,
			Variant:  opts.Variant,
			Config:   opts.Config,
			Seed:     seed + g,
		})
		if err != nil {
			return wins, err
		}
		res, err := bot.Play(ctx, e, policies, opts.MaxActions, nil)
		if err != nil {
			return wins, err
		}
		wins[seats[res.Winner]]++
	}
	return wins, nil
}
