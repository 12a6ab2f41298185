package abilities

import (
	"math/rand/v2"
	"testing"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hand(names ...cards.Name) []cards.Card {
	out := make([]cards.Card, 0, len(names))
	for _, n := range names {
		out = append(out, cards.New(n))
	}
	return out
}

func court(seat int, names ...cards.Name) []state.CourtEntry {
	out := make([]state.CourtEntry, 0, len(names))
	for _, n := range names {
		out = append(out, state.CourtEntry{Card: cards.New(n), PlayedBy: seat})
	}
	return out
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	st := state.New([2]string{"Ada", "Brook"})
	st.Phase = state.PhasePlay
	st.Step = state.StepMain
	return NewContext(st, NewRegistry(), cards.Standard(), rand.New(rand.NewPCG(1, 2)), 0)
}

func TestRegistryCoversStandard(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Validate(cards.Standard()))
	assert.Len(t, r.Names(), 25)

	var reactions []cards.Name
	for _, m := range r.Reactions() {
		reactions = append(reactions, m.Name)
	}
	assert.Equal(t, []cards.Name{cards.Assassin, cards.KingsHand, cards.Stranger}, reactions)

	_, err := r.Module("Jester")
	assert.Error(t, err)
}

func TestNewRegistryWithRejects(t *testing.T) {
	_, err := NewRegistryWith([]*Module{{Name: cards.Fool, Base: 1}, {Name: cards.Fool, Base: 1}})
	assert.Error(t, err, "duplicate")

	_, err = NewRegistryWith([]*Module{{Name: cards.Fool, Abilities: []Ability{{Text: "broken"}}}})
	assert.Error(t, err, "incomplete ability")

	_, err = NewRegistryWith([]*Module{{Name: cards.KingsHand, Reaction: &Reaction{}}})
	assert.Error(t, err, "reaction without effect")

	r, err := NewRegistryWith([]*Module{{Name: cards.Fool, Base: 1}})
	require.NoError(t, err)
	assert.Error(t, r.Validate(cards.Standard()))
}

func TestValues(t *testing.T) {
	c := newTestContext(t)
	r := c.Registry
	st := c.State

	assert.Equal(t, 0, r.ThroneValue(st))

	st.Players[0].Facet = cards.FacetCharismaticLeader
	assert.Equal(t, 5, r.HandValue(st, 0, cards.New(cards.Elder)))
	assert.Equal(t, 7, r.HandValue(st, 0, cards.New(cards.Princess)))
	assert.Equal(t, 3, r.HandValue(st, 1, cards.New(cards.Elder)))

	st.Players[0].KingFlipped = true
	assert.Equal(t, 3, r.HandValue(st, 0, cards.New(cards.Elder)), "facet ends with the flip")

	st.Court = court(1, cards.Soldier, cards.Soldier, cards.Warlord)
	assert.Equal(t, 9, r.ThroneValue(st), "warlord counts soldiers")

	st.Court[2].Disgraced = true
	assert.Equal(t, 1, r.ThroneValue(st), "disgrace overrides bonuses")

	st.Court = court(0, cards.Fool, cards.Fool, cards.Fool, cards.Fool, cards.Warden)
	assert.Equal(t, 9, r.ThroneValue(st))

	st.Court = court(0, cards.Ancestor)
	assert.Equal(t, 6, r.ThroneValue(st), "ancestor grows once its owner flipped")
}

func TestCanPlayFromHand(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Court = court(1, cards.Judge)

	assert.False(t, c.Registry.CanPlayFromHand(st, 0, cards.New(cards.Elder)))
	assert.True(t, c.Registry.CanPlayFromHand(st, 0, cards.New(cards.Soldier)))
	st.Players[0].PlayAnyValue = true
	assert.True(t, c.Registry.CanPlayFromHand(st, 0, cards.New(cards.Fool)))
}

func TestPlaceCardRunsMandatoryAbilities(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Court = court(1, cards.Elder, cards.Soldier, cards.Immortal)
	st.Players[0].Hand = hand(cards.Queen)

	m, err := PlaceCard(c, state.OriginHand, 0)
	require.NoError(t, err)
	assert.Equal(t, cards.Queen, m.Name)
	assert.Equal(t, 3, c.Source)
	assert.True(t, st.Court[0].Disgraced)
	assert.True(t, st.Court[1].Disgraced)
	assert.False(t, st.Court[2].Disgraced, "immortal ignores disgrace")
	assert.False(t, st.Court[3].Disgraced)
	assert.Empty(t, st.Players[0].Hand)
}

func TestElderDisgracesRoyalty(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Court = court(1, cards.Princess)
	st.Players[0].Hand = hand(cards.Elder)
	st.Players[0].PlayAnyValue = true

	_, err := PlaceCard(c, state.OriginHand, 0)
	require.NoError(t, err)
	assert.True(t, st.Court[0].Disgraced)
	assert.False(t, st.Players[0].PlayAnyValue, "a hand play spends play-any-value")
}

func TestOathboundDisgracesPreviousThrone(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Court = court(1, cards.Judge)
	st.Players[0].Antechamber = hand(cards.Oathbound)

	_, err := PlaceCard(c, state.OriginAntechamber, 0)
	require.NoError(t, err)
	assert.True(t, st.Court[0].Disgraced)
	assert.Empty(t, st.Players[0].Antechamber)
}

func mayAbility(t *testing.T, c *Context, name cards.Name) Ability {
	t.Helper()
	m, err := c.Registry.Module(name)
	require.NoError(t, err)
	a, ok := m.MayAbility(0)
	require.True(t, ok)
	return a
}

func TestFoolTakesCourtCard(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Court = court(1, cards.Warlord, cards.Fool)
	c.Source = 1

	a := mayAbility(t, c, cards.Fool)
	targets := a.Targets(c)
	require.Len(t, targets, 1)
	require.NoError(t, a.Execute(c, targets[0]))
	assert.Equal(t, hand(cards.Warlord), st.Players[0].Hand)
	assert.Len(t, st.Court, 1)
}

func TestInquisitorMovesEveryCopy(t *testing.T) {
	c := newTestContext(t)
	c.State.Players[1].Hand = hand(cards.Elder, cards.Queen, cards.Elder)

	a := mayAbility(t, c, cards.Inquisitor)
	require.NoError(t, a.Execute(c, state.Target{Name: cards.Elder, Hand: state.NoIndex, Court: state.NoIndex}))
	assert.Equal(t, hand(cards.Queen), c.State.Players[1].Hand)
	assert.Equal(t, hand(cards.Elder, cards.Elder), c.State.Players[1].Antechamber)
}

func TestSoldierHitAndMiss(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Court = court(0, cards.Soldier)
	c.Source = 0
	st.Players[1].Hand = hand(cards.Queen)

	a := mayAbility(t, c, cards.Soldier)
	require.NoError(t, a.Execute(c, state.Target{Name: cards.Fool, Hand: state.NoIndex, Court: state.NoIndex}))
	assert.Equal(t, 5, c.Registry.ThroneValue(st))
	require.NoError(t, a.Execute(c, state.Target{Name: cards.Queen, Hand: state.NoIndex, Court: state.NoIndex}))
	assert.Equal(t, 7, c.Registry.ThroneValue(st))
}

func TestJudgeMovesCardOnCorrectGuess(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Players[0].Hand = hand(cards.Fool, cards.Mystic)
	st.Players[1].Hand = hand(cards.Queen)

	a := mayAbility(t, c, cards.Judge)
	assert.Len(t, a.Targets(c), len(c.Variant.Names())*2)

	require.NoError(t, a.Execute(c, state.Target{Name: cards.Fool, Hand: 1, Court: state.NoIndex}))
	assert.Len(t, st.Players[0].Hand, 2, "wrong guess does nothing")

	require.NoError(t, a.Execute(c, state.Target{Name: cards.Queen, Hand: 1, Court: state.NoIndex}))
	assert.Equal(t, hand(cards.Fool), st.Players[0].Hand)
	assert.Equal(t, hand(cards.Mystic), st.Players[0].Antechamber)
}

func TestMysticSwapsSuccessor(t *testing.T) {
	c := newTestContext(t)
	me := c.State.Player(0)
	me.Hand = hand(cards.Fool)

	a := mayAbility(t, c, cards.Mystic)
	assert.False(t, a.CanActivate(c), "no successor yet")

	succ := cards.New(cards.Queen)
	me.Successor = &succ
	require.True(t, a.CanActivate(c))
	require.NoError(t, a.Execute(c, state.Target{Hand: 0, Court: state.NoIndex}))
	assert.Equal(t, cards.Fool, me.Successor.Name)
	assert.Equal(t, hand(cards.Queen), me.Hand)
}

func TestSentrySwapsWithCourt(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Court = court(1, cards.Queen, cards.Judge, cards.Sentry)
	st.Court[1].Disgraced = true
	c.Source = 2
	st.Players[0].Hand = hand(cards.Fool)

	a := mayAbility(t, c, cards.Sentry)
	targets := a.Targets(c)
	require.Len(t, targets, 1, "disgraced and source entries are skipped")
	require.NoError(t, a.Execute(c, targets[0]))
	assert.Equal(t, cards.Fool, st.Court[0].Card.Name)
	assert.Equal(t, 0, st.Court[0].PlayedBy)
	assert.Equal(t, hand(cards.Queen), st.Players[0].Hand)
}

func TestPrincessExchanges(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Players[0].Hand = hand(cards.Fool)
	st.Players[1].Hand = hand(cards.Queen)

	a := mayAbility(t, c, cards.Princess)
	require.NoError(t, a.Execute(c, state.Target{Hand: 0, Court: state.NoIndex}))
	assert.Equal(t, hand(cards.Queen), st.Players[0].Hand)
	assert.Equal(t, hand(cards.Fool), st.Players[1].Hand)

	c.Rand = nil
	assert.Error(t, a.Execute(c, state.Target{Hand: 0, Court: state.NoIndex}))
}

func TestZealotGrantsPlayAnyValue(t *testing.T) {
	c := newTestContext(t)
	a := mayAbility(t, c, cards.Zealot)
	require.True(t, a.CanActivate(c))
	require.NoError(t, a.Execute(c, state.NoTarget))
	assert.True(t, c.Me().PlayAnyValue)
	assert.False(t, a.CanActivate(c))
}

func TestWarlordRestoresSoldiers(t *testing.T) {
	c := newTestContext(t)
	st := c.State
	st.Court = court(1, cards.Soldier)
	st.Court[0].Disgraced = true
	st.Players[0].Hand = hand(cards.Warlord)

	_, err := PlaceCard(c, state.OriginHand, 0)
	require.NoError(t, err)
	assert.False(t, st.Court[0].Disgraced)
	assert.Equal(t, 8, c.Registry.ThroneValue(st))
}

func TestSignatureAbilities(t *testing.T) {
	t.Run("aegis", func(t *testing.T) {
		c := newTestContext(t)
		c.State.Court = court(1, cards.Queen, cards.Aegis)
		c.Source = 1
		a := mayAbility(t, c, cards.Aegis)
		require.NoError(t, a.Execute(c, state.Target{Hand: state.NoIndex, Court: 0}))
		assert.True(t, c.State.Court[0].Disgraced)
		assert.Empty(t, a.Targets(c))
	})
	t.Run("arbiter", func(t *testing.T) {
		c := newTestContext(t)
		c.State.Court = court(1, cards.Queen, cards.Arbiter)
		c.Source = 1
		a := mayAbility(t, c, cards.Arbiter)
		require.NoError(t, a.Execute(c, state.Target{Hand: state.NoIndex, Court: 0}))
		assert.Equal(t, hand(cards.Queen), c.State.Condemned)
		assert.Len(t, c.State.Court, 1)
	})
	t.Run("bard", func(t *testing.T) {
		c := newTestContext(t)
		c.Me().Hand = hand(cards.Fool, cards.Elder)
		a := mayAbility(t, c, cards.Bard)
		require.NoError(t, a.Execute(c, state.Target{Hand: 1, Court: state.NoIndex}))
		assert.Equal(t, hand(cards.Elder), c.Me().Antechamber)
	})
	t.Run("exile", func(t *testing.T) {
		c := newTestContext(t)
		c.State.Court = court(1, cards.Queen, cards.Exile)
		c.Source = 1
		a := mayAbility(t, c, cards.Exile)
		require.NoError(t, a.Execute(c, state.Target{Hand: state.NoIndex, Court: 0}))
		require.NotNil(t, c.Me().Dungeon)
		assert.Equal(t, cards.Queen, c.Me().Dungeon.Name)
		assert.False(t, a.CanActivate(c), "one prisoner at a time")
	})
	t.Run("herald", func(t *testing.T) {
		c := newTestContext(t)
		accused := cards.New(cards.Queen)
		c.State.Accused = &accused
		c.Me().Hand = hand(cards.Fool)
		a := mayAbility(t, c, cards.Herald)
		require.NoError(t, a.Execute(c, state.Target{Hand: 0, Court: state.NoIndex}))
		assert.Equal(t, hand(cards.Queen), c.Me().Hand)
		assert.Equal(t, cards.Fool, c.State.Accused.Name)
	})
	t.Run("conspiracist", func(t *testing.T) {
		c := newTestContext(t)
		c.State.Court = court(1, cards.Conspiracist)
		_, err := LeaveCourt(c, 0)
		require.NoError(t, err)
		assert.True(t, c.State.Players[1].PlayAnyValue)
	})
}

func TestFlipKing(t *testing.T) {
	c := newTestContext(t)
	me := c.Me()
	require.Error(t, FlipKing(c), "no successor")

	succ, squire := cards.New(cards.Queen), cards.New(cards.Fool)
	me.Successor, me.Squire = &succ, &squire
	me.Facet = cards.FacetMasterTactician
	c.State.Court = court(0, cards.Flagbearer)

	require.NoError(t, FlipKing(c))
	assert.True(t, me.KingFlipped)
	assert.Equal(t, hand(cards.Queen, cards.Fool), me.Hand)
	assert.Nil(t, me.Successor)
	assert.Nil(t, me.Squire)
	assert.True(t, me.PlayAnyValue, "flagbearer rallies its owner")
	assert.Error(t, FlipKing(c), "only once per round")
}

func TestReactionEffects(t *testing.T) {
	t.Run("kings hand condemns the source", func(t *testing.T) {
		c := newTestContext(t)
		c.Actor = 1
		c.State.Court = court(0, cards.Judge, cards.Fool)
		m, _ := c.Registry.Lookup(cards.KingsHand)
		p := &state.PendingTrigger{Kind: state.TriggerAbility, Actor: 0, Source: cards.Fool, CourtIndex: 1}
		require.NoError(t, m.Reaction.Effect(c, p))
		assert.Equal(t, hand(cards.Fool), c.State.Condemned)
		assert.Len(t, c.State.Court, 1)
	})
	t.Run("kings hand ignores immune sources", func(t *testing.T) {
		r := NewRegistry()
		m, _ := r.Lookup(cards.KingsHand)
		assert.True(t, m.Reaction.Answers(r, state.TriggerAbility, cards.Fool))
		assert.False(t, m.Reaction.Answers(r, state.TriggerAbility, cards.Aegis))
		assert.False(t, m.Reaction.Answers(r, state.TriggerKingFlip, cards.Fool))
	})
	t.Run("assassin kills the flip", func(t *testing.T) {
		c := newTestContext(t)
		c.Actor = 1
		succ := cards.New(cards.Queen)
		c.State.Players[0].Successor = &succ
		m, _ := c.Registry.Lookup(cards.Assassin)
		p := &state.PendingTrigger{Kind: state.TriggerKingFlip, Actor: 0}
		require.NoError(t, m.Reaction.Effect(c, p))
		assert.True(t, c.State.Players[0].KingFlipped)
		assert.Nil(t, c.State.Players[0].Successor)
		assert.Equal(t, hand(cards.Queen), c.State.Condemned)
	})
}
