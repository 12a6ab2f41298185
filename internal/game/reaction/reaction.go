// Package reaction decides which reactions a responder must be asked about
// before a MAY ability or king flip resolves, using public zones only.
package reaction

import (
	"fmt"

	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// maxArmyCopies is how many copies of a pool name can exist, one per army.
const maxArmyCopies = 2

// Visible counts, by name, the cards the responder can see: their own
// antechamber and exhausted army plus the court, accused and condemned.
func Visible(st *state.GameState, responder int) map[cards.Name]int {
	seen := make(map[cards.Name]int)
	add := func(cs ...cards.Card) {
		for _, c := range cs {
			seen[c.Name]++
		}
	}
	p := st.Player(responder)
	add(p.Antechamber...)
	add(p.Exhausted...)
	for _, e := range st.Court {
		add(e.Card)
	}
	if st.Accused != nil {
		add(*st.Accused)
	}
	add(st.Condemned...)
	return seen
}

// copiesInUniverse is the public upper bound on copies of name.
func copiesInUniverse(v cards.Variant, name cards.Name) int {
	n := 0
	for _, e := range v.Deck {
		if e.Name == name {
			n += e.Count
		}
	}
	if v.InPool(name) {
		n += maxArmyCopies
	}
	return n
}

// Possible returns the candidates the responder must answer for a trigger
// of kind raised by source, in registry order. The result depends only on
// zones visible to the responder.
func Possible(st *state.GameState, reg *abilities.Registry, v cards.Variant, kind state.TriggerKind, source cards.Name, responder int) []state.Candidate {
	seen := Visible(st, responder)
	var out []state.Candidate
	for _, m := range reg.Reactions() {
		if seen[m.Name] >= copiesInUniverse(v, m.Name) {
			continue
		}
		if !m.Reaction.Copy {
			if m.Reaction.Answers(reg, kind, source) {
				out = append(out, state.Candidate{Card: m.Name})
			}
			continue
		}
		for _, copied := range copyable(st, reg, kind, source) {
			out = append(out, state.Candidate{Card: m.Name, Copies: copied})
		}
	}
	return out
}

// copyable lists distinct court reactions that answer the trigger.
func copyable(st *state.GameState, reg *abilities.Registry, kind state.TriggerKind, source cards.Name) []cards.Name {
	var out []cards.Name
	seen := make(map[cards.Name]bool)
	for _, e := range st.Court {
		m, ok := reg.Lookup(e.Card.Name)
		if !ok || m.Reaction == nil || m.Reaction.Copy || seen[m.Name] {
			continue
		}
		if m.Reaction.Answers(reg, kind, source) {
			seen[m.Name] = true
			out = append(out, m.Name)
		}
	}
	return out
}

// Prompt is the public message announcing a candidate. It never depends on
// the responder's hand.
func Prompt(st *state.GameState, p *state.PendingTrigger, cand state.Candidate) string {
	responder := st.Player(p.Responder()).Name
	what := fmt.Sprintf("%s's %s", st.Player(p.Actor).Name, p.Source)
	if p.Kind == state.TriggerKingFlip {
		what = fmt.Sprintf("%s's king flip", st.Player(p.Actor).Name)
	}
	if cand.Copies != "" {
		return fmt.Sprintf("Will %s answer %s with %s as %s?", responder, what, cand.Card, cand.Copies)
	}
	return fmt.Sprintf("Will %s answer %s with %s?", responder, what, cand.Card)
}

// Holds reports whether seat has a card named name in hand.
func Holds(st *state.GameState, seat int, name cards.Name) bool {
	return state.Contains(st.Player(seat).Hand, name)
}

// Resolve plays cand for the responder: the reacting card is condemned and
// the reaction effect (or the copied card's) runs. c must act for the
// responder. The pending trigger counts as prevented afterwards.
func Resolve(c *abilities.Context, p *state.PendingTrigger, cand state.Candidate) error {
	me := c.Me()
	idx := state.IndexOf(me.Hand, cand.Card)
	if idx == state.NoIndex {
		return fmt.Errorf("%s does not hold %s", me.Name, cand.Card)
	}
	effectOf := cand.Card
	if cand.Copies != "" {
		effectOf = cand.Copies
	}
	m, err := c.Registry.Module(effectOf)
	if err != nil {
		return err
	}
	if m.Reaction == nil || m.Reaction.Effect == nil {
		return fmt.Errorf("%s has no reaction to resolve", effectOf)
	}
	card, err := state.RemoveAt(&me.Hand, idx)
	if err != nil {
		return err
	}
	c.State.Condemn(card)
	if cand.Copies != "" {
		c.Say("%s reacts with %s as %s", me.Name, card, cand.Copies)
	} else {
		c.Say("%s reacts with %s", me.Name, card)
	}
	return m.Reaction.Effect(c, p)
}
