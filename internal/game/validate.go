package game

import (
	"fmt"
	"slices"

	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// validate rejects malformed payloads. It only reads st.
func validate(reg *abilities.Registry, v cards.Variant, st *state.GameState, actor int, a Action) error {
	p := st.Player(actor)
	switch a := a.(type) {
	case ChooseSignatures:
		for i, n := range a.Names {
			if !v.InPool(n) {
				return invalidf("%q is not in the signature pool", n)
			}
			if slices.Contains(a.Names[:i], n) {
				return invalidf("%q chosen twice", n)
			}
		}
	case ChooseFirstPlayer:
		if a.Player < 0 || a.Player > 1 {
			return invalidf("player %d out of range", a.Player)
		}
	case Recruit:
		if err := checkIndex("hand", a.Hand, len(p.Hand)); err != nil {
			return err
		}
		return checkIndex("army", a.Army, len(p.Army))
	case Recommission:
		if err := checkIndex("exhausted", a.Exhausted, len(p.Exhausted)); err != nil {
			return err
		}
		return checkIndex("hand", a.Hand, len(p.Hand))
	case ChangeKingFacet:
		if !slices.Contains(cards.AllFacets, a.Facet) {
			return invalidf("unknown facet %d", int(a.Facet))
		}
	case ChooseSuccessor:
		return checkIndex("hand", a.Hand, len(p.Hand))
	case ChooseSquire:
		return checkIndex("hand", a.Hand, len(p.Hand))
	case PlayCard:
		return validatePlay(reg, v, p, a)
	case React:
		if _, ok := reg.Lookup(a.Card); !ok {
			return invalidf("unknown card %q", a.Card)
		}
	case EndMuster, FlipKing, Decline:
	default:
		return &InvariantViolation{Err: fmt.Errorf("unhandled action type %T", a)}
	}
	return nil
}

func validatePlay(reg *abilities.Registry, v cards.Variant, p *state.Player, a PlayCard) error {
	var zone []cards.Card
	switch a.From {
	case state.OriginHand:
		zone = p.Hand
	case state.OriginAntechamber:
		zone = p.Antechamber
	default:
		return invalidf("unknown origin %d", int(a.From))
	}
	if err := checkIndex(a.From.String(), a.Index, len(zone)); err != nil {
		return err
	}
	if a.Ability == NoAbility {
		return nil
	}
	m, err := reg.Module(zone[a.Index].Name)
	if err != nil {
		return invalidf("%v", err)
	}
	if _, ok := m.MayAbility(a.Ability); !ok {
		return invalidf("%s has no optional ability %d", m.Name, a.Ability)
	}
	if a.Target.Name != "" && !slices.Contains(v.Names(), a.Target.Name) {
		return invalidf("unknown card %q", a.Target.Name)
	}
	if a.Target.Hand < state.NoIndex || a.Target.Court < state.NoIndex {
		return invalidf("negative target index")
	}
	return nil
}

func checkIndex(zone string, i, size int) error {
	if i < 0 || i >= size {
		return invalidf("%s index %d out of range (size %d)", zone, i, size)
	}
	return nil
}
