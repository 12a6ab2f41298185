package game

import (
	"testing"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chooseSignatures(t *testing.T, e *Engine) {
	t.Helper()
	for seat := 0; seat < 2; seat++ {
		legal := e.LegalActions(seat)
		require.NotEmpty(t, legal)
		mustApply(t, e, seat, legal[0])
	}
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine(t, 3)
	st := e.State()

	assert.Equal(t, state.PhaseSignatureSelection, st.Phase)
	assert.Len(t, st.Deck, 21)
	assert.Equal(t, 2, e.Seq(), "greeting and initial snapshot")
	assert.Contains(t, []int{0, 1}, st.TrueKing)
	require.NoError(t, st.CheckInvariants(e.Variant()))

	_, err := NewEngine([2]string{"a", "b"}, Options{})
	assert.Error(t, err, "registry is required")

	_, err = NewEngine([2]string{"a", "b"}, Options{Registry: testRegistry, Config: Config{HandSize: 11, Scoring: DefaultConfig().Scoring}})
	assert.Error(t, err, "two hands of 11 plus the accused exceed the deck")
}

func TestSignatureSelection(t *testing.T) {
	e := newTestEngine(t, 1)

	legal := e.LegalActions(0)
	assert.Len(t, legal, 84, "every 3-of-9 combination")
	assert.Equal(t, ChooseSignatures{Names: [3]cards.Name{cards.Aegis, cards.Ancestor, cards.Arbiter}}, legal[0])

	mustApply(t, e, 0, ChooseSignatures{Names: [3]cards.Name{cards.Bard, cards.Exile, cards.Stranger}})
	assert.Empty(t, e.LegalActions(0), "seat 0 already chose")
	assert.Len(t, e.LegalActions(1), 84)
	assert.Equal(t, state.PhaseSignatureSelection, e.State().Phase)

	mustApply(t, e, 1, ChooseSignatures{Names: [3]cards.Name{cards.Aegis, cards.Herald, cards.Stranger}})

	st := e.State()
	assert.Equal(t, state.PhaseMustering, st.Phase)
	assert.Equal(t, state.StepChooseFirstPlayer, st.Step)
	assert.Equal(t, 1, st.Round)
	for seat := 0; seat < 2; seat++ {
		assert.Len(t, st.Players[seat].Army, 3)
		assert.Len(t, st.Players[seat].Hand, 9)
		for _, c := range st.Players[seat].Army {
			assert.Equal(t, cards.ArmyFlavor(seat), c.Flavor)
		}
	}
	assert.NotNil(t, st.Accused)
	assert.Len(t, st.Deck, 2)
	require.NoError(t, st.CheckInvariants(e.Variant()))
}

func TestSignatureSelectionRejects(t *testing.T) {
	e := newTestEngine(t, 1)
	before := Checksum(e.state)

	err := e.Apply(0, e.Seq(), ChooseSignatures{Names: [3]cards.Name{cards.Aegis, cards.Aegis, cards.Bard}})
	assert.Equal(t, CodeValidation, CodeOf(err))

	err = e.Apply(0, e.Seq(), ChooseSignatures{Names: [3]cards.Name{cards.Queen, cards.Aegis, cards.Bard}})
	assert.Equal(t, CodeValidation, CodeOf(err))

	err = e.Apply(0, e.Seq(), ChooseSignatures{Names: [3]cards.Name{cards.Bard, cards.Aegis, cards.Exile}})
	assert.Equal(t, CodeIllegalMove, CodeOf(err), "names are listed in pool order")

	assert.Equal(t, before, Checksum(e.state))
	assert.Equal(t, 2, e.Seq())
}

func TestApplyRejectsMalformedCalls(t *testing.T) {
	e := newTestEngine(t, 1)
	before := Checksum(e.state)
	seq := e.Seq()

	err := e.Apply(0, seq+1, EndMuster{})
	var mismatch *SequenceMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, seq, mismatch.Actual)
	assert.Equal(t, CodeSequenceMismatch, CodeOf(err))

	assert.Equal(t, CodeValidation, CodeOf(e.Apply(2, seq, EndMuster{})))
	assert.Equal(t, CodeValidation, CodeOf(e.Apply(0, seq, nil)))
	assert.Equal(t, CodeValidation, CodeOf(e.Apply(0, seq, Recruit{Hand: 0, Army: 0})))
	assert.Equal(t, CodeValidation, CodeOf(e.Apply(0, seq, ChooseFirstPlayer{Player: 5})))
	assert.Equal(t, CodeIllegalMove, CodeOf(e.Apply(0, seq, EndMuster{})))

	assert.Equal(t, before, Checksum(e.state))
	assert.Equal(t, seq, e.Seq())
}

func TestMusterFlow(t *testing.T) {
	e := newTestEngine(t, 5)
	chooseSignatures(t, e)

	king := e.state.TrueKing
	other := state.Opponent(king)
	assert.Empty(t, e.LegalActions(other))
	assert.Equal(t, []Action{ChooseFirstPlayer{Player: 0}, ChooseFirstPlayer{Player: 1}}, e.LegalActions(king))

	mustApply(t, e, king, ChooseFirstPlayer{Player: king})
	st := e.State()
	assert.Equal(t, state.StepMuster, st.Step)
	assert.Equal(t, king, st.FirstPlayer)
	assert.Equal(t, other, st.Current, "the second player musters first")

	legal := e.LegalActions(other)
	assert.Len(t, legal, 9*3+2+1, "recruits, two facet changes and EndMuster")
	assert.Empty(t, e.LegalActions(king))

	mustApply(t, e, other, Recruit{Hand: 0, Army: 0})
	p := e.state.Player(other)
	assert.Len(t, p.Hand, 9)
	assert.Len(t, p.Army, 2)
	assert.Len(t, e.state.Condemned, 1)
	assert.True(t, p.Hand[8].IsSignature())

	mustApply(t, e, other, ChangeKingFacet{Facet: cards.FacetMasterTactician})
	for _, a := range e.LegalActions(other) {
		_, isFacet := a.(ChangeKingFacet)
		assert.False(t, isFacet, "the facet changes once per muster")
	}

	mustApply(t, e, other, EndMuster{})
	assert.Equal(t, king, e.state.Current)
	mustApply(t, e, king, EndMuster{})

	st = e.State()
	assert.Equal(t, state.PhasePlay, st.Phase)
	assert.Equal(t, state.StepSelectSuccessor, st.Step)
	assert.Equal(t, king, st.Current)

	mustApply(t, e, king, ChooseSuccessor{Hand: 0})
	assert.Equal(t, other, e.state.Current)
	assert.Equal(t, state.StepSelectSuccessor, e.state.Step)

	mustApply(t, e, other, ChooseSuccessor{Hand: 0})
	assert.Equal(t, state.StepSelectSquire, e.state.Step, "master tactician also picks a squire")
	mustApply(t, e, other, ChooseSquire{Hand: 0})

	st = e.State()
	assert.Equal(t, state.StepMain, st.Step)
	assert.Equal(t, king, st.Current)
	assert.NotNil(t, st.Players[other].Squire)
	assert.Nil(t, st.Players[king].Squire)
	assert.Len(t, st.Players[other].Hand, 7)
	assert.Len(t, st.Players[king].Hand, 8)
	require.NoError(t, st.CheckInvariants(e.Variant()))
}

func TestEventsPerViewer(t *testing.T) {
	e := newTestEngine(t, 9)
	chooseSignatures(t, e)

	for viewer := 0; viewer < 2; viewer++ {
		events, err := e.Events(viewer, 0)
		require.NoError(t, err)
		require.Len(t, events, e.Seq())
		for i, ev := range events {
			assert.Equal(t, i, ev.Seq)
		}
		last := events[len(events)-1]
		require.Equal(t, EventNewState, last.Kind)
		assert.Len(t, last.Board.You.Hand, 9)
		assert.Nil(t, last.Board.Opponent.Hand, "opponent hand stays hidden")
		assert.Equal(t, 9, last.Board.Opponent.HandCount)
		assert.Nil(t, last.Board.Opponent.Army)
		assert.Equal(t, 3, last.Board.Opponent.ArmyCount)
	}

	_, err := e.Events(0, e.Seq()+1)
	assert.Equal(t, CodeValidation, CodeOf(err))
	tail, err := e.Events(1, e.Seq())
	require.NoError(t, err)
	assert.Empty(t, tail)
}

func TestDeterministicSetup(t *testing.T) {
	a, b := newTestEngine(t, 42), newTestEngine(t, 42)
	chooseSignatures(t, a)
	chooseSignatures(t, b)
	assert.Equal(t, Checksum(a.state), Checksum(b.state))

	c := newTestEngine(t, 43)
	chooseSignatures(t, c)
	assert.NotEqual(t, Checksum(a.state), Checksum(c.state))
}
