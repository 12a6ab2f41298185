package abilities

import (
	"fmt"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// PlaceCard moves a card from the actor's hand or antechamber onto the
// court and runs OnPlay, OnEnterCourt and the card's mandatory abilities.
// It leaves c.Source at the new throne and returns its module.
func PlaceCard(c *Context, from state.Origin, idx int) (*Module, error) {
	p := c.Me()
	zone := &p.Hand
	if from == state.OriginAntechamber {
		zone = &p.Antechamber
	}
	card, err := state.RemoveAt(zone, idx)
	if err != nil {
		return nil, fmt.Errorf("play from %s: %w", from, err)
	}
	m, err := c.Registry.Module(card.Name)
	if err != nil {
		return nil, err
	}
	if from == state.OriginHand {
		p.PlayAnyValue = false
	}
	if m.OnPlay != nil {
		m.OnPlay(c, card, from)
	}
	c.State.Court = append(c.State.Court, state.CourtEntry{Card: card, PlayedBy: c.Actor})
	c.Source = c.State.ThroneIndex()
	if from == state.OriginAntechamber {
		c.Say("%s plays %s from the antechamber", p.Name, card)
	} else {
		c.Say("%s plays %s", p.Name, card)
	}
	if m.OnEnterCourt != nil {
		m.OnEnterCourt(c, c.Source)
	}
	for _, a := range m.Abilities {
		if a.May || !a.CanActivate(c) {
			continue
		}
		if err := a.Execute(c, state.NoTarget); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", card.Name, a.Text, err)
		}
	}
	return m, nil
}

// LeaveCourt removes a court entry, clearing its disgrace, and runs the
// card's OnLeaveCourt hook.
func LeaveCourt(c *Context, idx int) (cards.Card, error) {
	e, err := c.State.RemoveCourt(idx)
	if err != nil {
		return cards.Card{}, err
	}
	if m, ok := c.Registry.Lookup(e.Card.Name); ok && m.OnLeaveCourt != nil {
		m.OnLeaveCourt(c, e)
	}
	return e.Card, nil
}

// Disgrace flags a court entry unless the card is immune. It reports
// whether the flag changed.
func Disgrace(c *Context, idx int) bool {
	e := &c.State.Court[idx]
	if e.Disgraced {
		return false
	}
	if m, ok := c.Registry.Lookup(e.Card.Name); ok && m.Has(TagImmuneToDisgrace) {
		return false
	}
	e.Disgraced = true
	c.Say("%s is disgraced", e.Card)
	return true
}

// FlipKing resolves a king flip for c.Actor: the successor (and the squire
// under Master Tactician) join the hand and OnKingFlip hooks run.
func FlipKing(c *Context) error {
	p := c.Me()
	if p.KingFlipped {
		return fmt.Errorf("king already flipped this round")
	}
	if p.Successor == nil {
		return fmt.Errorf("no successor to claim")
	}
	p.KingFlipped = true
	p.Hand = append(p.Hand, *p.Successor)
	p.Successor = nil
	if p.Facet == cards.FacetMasterTactician && p.Squire != nil {
		p.Hand = append(p.Hand, *p.Squire)
		p.Squire = nil
		c.Say("%s flips their king and claims successor and squire", p.Name)
	} else {
		c.Say("%s flips their king and claims their successor", p.Name)
	}
	for i := 0; i < len(c.State.Court); i++ {
		m, ok := c.Registry.Lookup(c.State.Court[i].Card.Name)
		if ok && m.OnKingFlip != nil {
			m.OnKingFlip(c, i, c.Actor)
		}
	}
	return nil
}

// courtTargets enumerates court entries other than the source.
func courtTargets(c *Context, keep func(e state.CourtEntry) bool) []state.Target {
	var out []state.Target
	for i, e := range c.State.Court {
		if i == c.Source || (keep != nil && !keep(e)) {
			continue
		}
		out = append(out, state.Target{Hand: state.NoIndex, Court: i})
	}
	return out
}

// handTargets enumerates the actor's hand.
func handTargets(c *Context) []state.Target {
	out := make([]state.Target, 0, len(c.Me().Hand))
	for i := range c.Me().Hand {
		out = append(out, state.Target{Hand: i, Court: state.NoIndex})
	}
	return out
}

// nameTargets enumerates the public name universe.
func nameTargets(c *Context) []state.Target {
	names := c.Variant.Names()
	out := make([]state.Target, 0, len(names))
	for _, n := range names {
		out = append(out, state.Target{Name: n, Hand: state.NoIndex, Court: state.NoIndex})
	}
	return out
}

func hasTargets(targets func(c *Context) []state.Target) func(c *Context) bool {
	return func(c *Context) bool {
		return len(targets(c)) > 0
	}
}

func always(*Context) bool { return true }
