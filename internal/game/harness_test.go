package game

import (
	"testing"

	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testRegistry = abilities.NewRegistry()

func newTestEngine(t *testing.T, seed uint64) *Engine {
	t.Helper()
	e, err := NewEngine([2]string{"Ada", "Brook"}, Options{
		Registry: testRegistry,
		Seed:     seed,
		Logger:   zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return e
}

// table describes a mid-round position. Cards not placed anywhere go to
// the deck (base cards) or the owner's army (signature cards).
type table struct {
	signatures   [2][]cards.Name
	hands        [2][]cards.Card
	antechambers [2][]cards.Card
	exhausted    [2][]cards.Card
	successors   [2]*cards.Card
	court        []state.CourtEntry
	condemned    []cards.Card
	accused      *cards.Card
	current      int
}

func base(names ...cards.Name) []cards.Card {
	out := make([]cards.Card, 0, len(names))
	for _, n := range names {
		out = append(out, cards.New(n))
	}
	return out
}

func card(n cards.Name) *cards.Card {
	c := cards.New(n)
	return &c
}

func entry(seat int, n cards.Name) state.CourtEntry {
	return state.CourtEntry{Card: cards.New(n), PlayedBy: seat}
}

// arrange installs tb as the engine state in Play/Main and appends a
// snapshot so the log reflects it.
func arrange(t *testing.T, e *Engine, tb table) *state.GameState {
	t.Helper()
	st := state.New([2]string{"Ada", "Brook"})
	st.Phase = state.PhasePlay
	st.Step = state.StepMain
	st.Round = 1
	st.Current = tb.current
	st.FirstPlayer = 0

	remaining := e.variant.Expected(tb.signatures)
	take := func(cs ...cards.Card) {
		for _, c := range cs {
			require.Positive(t, remaining[c], "card %s used more often than it exists", c)
			remaining[c]--
		}
	}

	for seat := 0; seat < 2; seat++ {
		p := st.Player(seat)
		p.Signatures = append([]cards.Name(nil), tb.signatures[seat]...)
		p.Hand = append([]cards.Card(nil), tb.hands[seat]...)
		p.Antechamber = append([]cards.Card(nil), tb.antechambers[seat]...)
		p.Exhausted = append([]cards.Card(nil), tb.exhausted[seat]...)
		p.Successor = tb.successors[seat]
		p.Mustered = true
		take(p.Hand...)
		take(p.Antechamber...)
		take(p.Exhausted...)
		if p.Successor != nil {
			take(*p.Successor)
		}
	}
	st.Court = append([]state.CourtEntry(nil), tb.court...)
	for _, ce := range st.Court {
		take(ce.Card)
	}
	st.Condemned = append([]cards.Card(nil), tb.condemned...)
	take(st.Condemned...)
	if tb.accused != nil {
		st.Accused = tb.accused
		take(*tb.accused)
	}

	for _, c := range e.variant.DeckCards() {
		if remaining[c] > 0 {
			st.Deck = append(st.Deck, c)
			remaining[c]--
		}
	}
	for seat := 0; seat < 2; seat++ {
		for _, n := range tb.signatures[seat] {
			c := cards.Signature(n, seat)
			if remaining[c] > 0 {
				st.Players[seat].Army = append(st.Players[seat].Army, c)
				remaining[c]--
			}
		}
	}
	require.NoError(t, st.CheckInvariants(e.variant))

	e.state = st
	e.appendSnapshot()
	return st
}

// mustApply applies a for actor at the current sequence.
func mustApply(t *testing.T, e *Engine, actor int, a Action) {
	t.Helper()
	require.NoError(t, e.Apply(actor, e.Seq(), a), "applying %s for seat %d", a, actor)
}

// messagesSince returns the message texts logged from cursor on.
func messagesSince(t *testing.T, e *Engine, cursor int) []string {
	t.Helper()
	events, err := e.Events(0, cursor)
	require.NoError(t, err)
	var out []string
	for _, ev := range events {
		if ev.Kind == EventMessage {
			out = append(out, ev.Text)
		}
	}
	return out
}

// firstLegal plays the first legal action of whichever seat can move.
func firstLegal(t *testing.T, e *Engine) {
	t.Helper()
	for seat := 0; seat < 2; seat++ {
		if legal := e.LegalActions(seat); len(legal) > 0 {
			mustApply(t, e, seat, legal[0])
			return
		}
	}
	t.Fatalf("no seat can move in %s/%s", e.state.Phase, e.state.Step)
}
