package abilities

import (
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/rules"
	"github.com/cognivore/imposterzero/internal/game/state"
)

func (r *Registry) valueContext(st *state.GameState, owner int, name cards.Name, placement rules.Placement) rules.ValueContext {
	m, ok := r.modules[name]
	if !ok {
		return rules.ValueContext{Base: rules.MinValue, Placement: placement}
	}
	ctx := rules.ValueContext{Base: m.Base, Placement: placement}
	if m.FacetDelta != nil && owner != state.NoIndex {
		p := st.Player(owner)
		ctx.FacetDelta = m.FacetDelta(p.Facet)
		ctx.FacetActive = !p.KingFlipped && ctx.FacetDelta != 0
	}
	return ctx
}

// HandValue is the value of a card held by owner, for hand-play legality.
func (r *Registry) HandValue(st *state.GameState, owner int, c cards.Card) int {
	return rules.EffectiveValue(r.valueContext(st, owner, c.Name, rules.PlacementHand))
}

// CourtValue is the value of the court entry at idx.
func (r *Registry) CourtValue(st *state.GameState, idx int) int {
	e := st.Court[idx]
	ctx := r.valueContext(st, e.PlayedBy, e.Card.Name, rules.PlacementCourt)
	ctx.Disgraced = e.Disgraced
	bonus := e.Bonus
	if m, ok := r.modules[e.Card.Name]; ok && m.CourtBonus != nil {
		bonus += m.CourtBonus(st, idx)
	}
	ctx.CourtBonus = bonus
	ctx.CourtBonusActive = bonus != 0
	return rules.EffectiveValue(ctx)
}

// ThroneValue is the effective value of the throne, 0 for an empty court.
func (r *Registry) ThroneValue(st *state.GameState) int {
	if len(st.Court) == 0 {
		return 0
	}
	return r.CourtValue(st, st.ThroneIndex())
}

// CanPlayFromHand reports whether seat may play c from hand right now.
func (r *Registry) CanPlayFromHand(st *state.GameState, seat int, c cards.Card) bool {
	return rules.CanPlayOver(r.HandValue(st, seat, c), r.ThroneValue(st), st.Player(seat).PlayAnyValue)
}
