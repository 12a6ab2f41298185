package game

import (
	"sync"
	"testing"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(testRegistry, cards.Standard(), DefaultConfig(), zaptest.NewLogger(t))
}

func TestManagerLifecycle(t *testing.T) {
	m := newTestManager(t)

	id, err := m.CreateGame([2]string{"Ada", "Brook"}, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())

	seq, err := m.Seq(id)
	require.NoError(t, err)
	assert.Equal(t, 2, seq)

	legal, err := m.ListLegalActions(id, 0)
	require.NoError(t, err)
	require.Len(t, legal, 84)
	require.NoError(t, m.ApplyAction(id, 0, seq, legal[0]))

	board, status, err := m.Board(id, 0)
	require.NoError(t, err)
	assert.Len(t, board.You.Army, 3)
	assert.False(t, status.ToMove, "seat 0 waits for the opponent's picks")

	events, err := m.Events(id, 1, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, events)

	r, err := m.Replay(id)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Size())

	games := m.Games()
	require.Len(t, games, 1)
	assert.Equal(t, id, games[0].ID)
	assert.Equal(t, [2]string{"Ada", "Brook"}, games[0].Players)
	assert.False(t, games[0].Finished)

	require.NoError(t, m.RemoveGame(id))
	assert.Zero(t, m.Count())
	assert.Equal(t, CodeNotFound, CodeOf(m.RemoveGame(id)))
}

func TestManagerNotFound(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ListLegalActions("nope", 0)
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Equal(t, CodeNotFound, CodeOf(m.ApplyAction("nope", 0, 0, EndMuster{})))
	_, err = m.Events("nope", 0, 0)
	assert.Equal(t, CodeNotFound, CodeOf(err))
	_, _, err = m.Board("nope", 0)
	assert.Equal(t, CodeNotFound, CodeOf(err))
	_, err = m.Replay("nope")
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestManagerRejectsBadViewer(t *testing.T) {
	m := newTestManager(t)
	id, err := m.CreateGame([2]string{"Ada", "Brook"}, 1)
	require.NoError(t, err)

	_, err = m.ListLegalActions(id, 2)
	assert.Equal(t, CodeValidation, CodeOf(err))
	_, _, err = m.Board(id, -1)
	assert.Equal(t, CodeValidation, CodeOf(err))
	_, err = m.Events(id, 3, 0)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestManagerSingleWriterPerSequence(t *testing.T) {
	m := newTestManager(t)
	id, err := m.CreateGame([2]string{"Ada", "Brook"}, 1)
	require.NoError(t, err)

	seq, err := m.Seq(id)
	require.NoError(t, err)
	legal, err := m.ListLegalActions(id, 0)
	require.NoError(t, err)

	const writers = 16
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = m.ApplyAction(id, 0, seq, legal[i])
		}(i)
	}
	wg.Wait()

	applied := 0
	for _, err := range errs {
		switch CodeOf(err) {
		case "":
			require.NoError(t, err)
			applied++
		case CodeSequenceMismatch:
		default:
			t.Fatalf("unexpected rejection: %v", err)
		}
	}
	assert.Equal(t, 1, applied)

	r, err := m.Replay(id)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Size())
}

func TestManagerConcurrentGames(t *testing.T) {
	m := newTestManager(t)

	const games = 8
	var wg sync.WaitGroup
	ids := make([]string, games)
	for i := 0; i < games; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := m.CreateGame([2]string{"Ada", "Brook"}, uint64(i))
			if err != nil {
				t.Errorf("create %d: %v", i, err)
				return
			}
			ids[i] = id
			for seat := 0; seat < 2; seat++ {
				seq, _ := m.Seq(id)
				legal, _ := m.ListLegalActions(id, seat)
				if err := m.ApplyAction(id, seat, seq, legal[len(legal)-1]); err != nil {
					t.Errorf("game %d seat %d: %v", i, seat, err)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, games, m.Count())
	for _, info := range m.Games() {
		assert.Equal(t, 1, info.Round)
	}
}
