package tournament

import (
	"context"
	"testing"

	"github.com/cognivore/imposterzero/internal/game"
	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func entered(t *testing.T, rounds int, names ...string) *Tournament {
	t.Helper()
	tour := NewTournament("test", rounds, 1)
	for _, n := range names {
		require.NoError(t, tour.AddPlayer(n, "random"))
	}
	return tour
}

func TestAddAndRemovePlayers(t *testing.T) {
	tour := NewTournament("test", 3, 2)
	require.NoError(t, tour.AddPlayer("ada", "random"))
	require.NoError(t, tour.AddPlayer("brook", "greedy"))
	assert.Error(t, tour.AddPlayer("ada", "greedy"), "duplicate name")
	assert.ErrorContains(t, tour.AddPlayer("cy", "minimax"), "unknown policy")
	assert.Error(t, tour.AddPlayer("", "random"))
	assert.Equal(t, 2, tour.GetPlayerCount())

	require.NoError(t, tour.RemovePlayer("brook"))
	assert.Error(t, tour.RemovePlayer("brook"))
	assert.ErrorContains(t, tour.Start(), "not enough players")

	require.NoError(t, tour.AddPlayer("brook", "greedy"))
	require.NoError(t, tour.Start())
	assert.Equal(t, TournamentStateInProgress, tour.GetState())
	assert.Error(t, tour.AddPlayer("dee", "random"))
	assert.Error(t, tour.Start())
}

func TestSwissPairingAndBye(t *testing.T) {
	tour := entered(t, 2, "a", "b", "c")
	require.NoError(t, tour.Start())

	snap := tour.Snapshot()
	require.Len(t, snap.Rounds, 1)
	r1 := snap.Rounds[0]
	assert.Equal(t, "c", r1.Bye, "lowest ranked player sits out")
	require.Len(t, r1.Pairings, 1)
	assert.Equal(t, "a", r1.Pairings[0].Player1)
	assert.Equal(t, "b", r1.Pairings[0].Player2)

	_, err := tour.CreateRound()
	assert.ErrorContains(t, err, "not finished")

	require.NoError(t, tour.RecordMatchResult(1, "b", "a", 1, 0))
	assert.Error(t, tour.RecordMatchResult(1, "a", "b", 1, 0), "already reported")
	assert.Error(t, tour.RecordMatchResult(1, "a", "c", 1, 0))
	assert.Error(t, tour.RecordMatchResult(5, "a", "b", 1, 0))

	r2, err := tour.CreateRound()
	require.NoError(t, err)
	assert.NotEqual(t, "c", r2.Bye, "a bye is given once while others have none")
	require.Len(t, r2.Pairings, 1)
	assert.NotEqual(t, [2]string{"a", "b"}, [2]string{r2.Pairings[0].Player1, r2.Pairings[0].Player2})

	p := r2.Pairings[0]
	require.NoError(t, tour.RecordMatchResult(2, p.Player1, p.Player2, 2, 2))
	assert.Equal(t, TournamentStateFinished, tour.GetState())
	_, err = tour.CreateRound()
	assert.Error(t, err)

	snap = tour.Snapshot()
	assert.NotNil(t, snap.EndTime)
	total := 0
	for _, s := range snap.Standings {
		total += s.Points
	}
	assert.Equal(t, 3+3+3+2, total, "two byes, one win and one draw")
}

func TestParseEntrants(t *testing.T) {
	got, err := ParseEntrants("ada:random, greedy ,brook:greedy")
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"ada", "random"}, {"greedy-2", "greedy"}, {"brook", "greedy"}}, got)

	_, err = ParseEntrants("random")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	tour := NewTournament("bots", 2, 2)
	for _, e := range [][2]string{{"r1", "random"}, {"g1", "greedy"}, {"r2", "random"}, {"g2", "greedy"}} {
		require.NoError(t, tour.AddPlayer(e[0], e[1]))
	}

	snap, err := Run(context.Background(), tour, RunOptions{
		Registry:    abilities.NewRegistry(),
		Variant:     cards.Standard(),
		Config:      game.DefaultConfig(),
		Seed:        5,
		MaxActions:  5000,
		Concurrency: 2,
		Logger:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	assert.Equal(t, TournamentStateFinished, snap.State)
	require.Len(t, snap.Rounds, 2)
	for _, r := range snap.Rounds {
		assert.True(t, r.Finished)
		for _, p := range r.Pairings {
			assert.Equal(t, 2, max(p.Player1Wins, p.Player2Wins))
			assert.NotEmpty(t, p.Winner)
		}
	}
	assert.Equal(t, 4*winPoints, snap.Standings[0].Points+snap.Standings[1].Points+snap.Standings[2].Points+snap.Standings[3].Points)
}

func TestManager(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	tour := m.CreateTournament("weekly", 1, 1)

	got, ok := m.GetTournament(tour.ID)
	require.True(t, ok)
	assert.Same(t, tour, got)
	assert.Equal(t, 1, m.GetActiveTournamentCount())

	m.RemoveTournament(tour.ID)
	_, ok = m.GetTournament(tour.ID)
	assert.False(t, ok)
	assert.Zero(t, m.GetActiveTournamentCount())
}
