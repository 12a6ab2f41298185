package game

import (
	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// legalActions is a pure function of the state and the viewer. It reads
// only the viewer's own hidden zones.
func legalActions(reg *abilities.Registry, v cards.Variant, st *state.GameState, viewer int) []Action {
	switch st.Phase {
	case state.PhaseSignatureSelection:
		if len(st.Player(viewer).Signatures) > 0 {
			return nil
		}
		return signatureChoices(v)
	case state.PhaseMustering:
		return musterActions(st, viewer)
	case state.PhasePlay:
		return playActions(reg, v, st, viewer)
	default:
		return nil
	}
}

// signatureChoices lists every combination of pool names in pool order.
func signatureChoices(v cards.Variant) []Action {
	pool := v.SignaturePool
	var out []Action
	var pick func(start, depth int, cur [SignatureCount]cards.Name)
	pick = func(start, depth int, cur [SignatureCount]cards.Name) {
		if depth == SignatureCount {
			out = append(out, ChooseSignatures{Names: cur})
			return
		}
		for i := start; i < len(pool); i++ {
			cur[depth] = pool[i]
			pick(i+1, depth+1, cur)
		}
	}
	pick(0, 0, [SignatureCount]cards.Name{})
	return out
}

func musterActions(st *state.GameState, viewer int) []Action {
	switch st.Step {
	case state.StepChooseFirstPlayer:
		if viewer != st.TrueKing {
			return nil
		}
		return []Action{ChooseFirstPlayer{Player: 0}, ChooseFirstPlayer{Player: 1}}
	case state.StepMuster:
		if viewer != st.Current {
			return nil
		}
	default:
		return nil
	}
	p := st.Player(viewer)
	var out []Action
	for h := range p.Hand {
		for a := range p.Army {
			out = append(out, Recruit{Hand: h, Army: a})
		}
	}
	for x := range p.Exhausted {
		for h := range p.Hand {
			out = append(out, Recommission{Exhausted: x, Hand: h})
		}
	}
	if !p.FacetChanged {
		for _, f := range cards.AllFacets {
			if f != p.Facet {
				out = append(out, ChangeKingFacet{Facet: f})
			}
		}
	}
	return append(out, EndMuster{})
}

func playActions(reg *abilities.Registry, v cards.Variant, st *state.GameState, viewer int) []Action {
	switch st.Step {
	case state.StepSelectSuccessor, state.StepSelectSquire:
		if viewer != st.Current {
			return nil
		}
		out := make([]Action, 0, len(st.Player(viewer).Hand))
		for h := range st.Player(viewer).Hand {
			if st.Step == state.StepSelectSuccessor {
				out = append(out, ChooseSuccessor{Hand: h})
			} else {
				out = append(out, ChooseSquire{Hand: h})
			}
		}
		return out
	case state.StepReaction:
		return reactionActions(st, viewer)
	case state.StepMain:
		if viewer != st.Current {
			return nil
		}
	default:
		return nil
	}

	p := st.Player(viewer)
	var out []Action
	for i, c := range p.Hand {
		if reg.CanPlayFromHand(st, viewer, c) {
			out = append(out, playOptions(reg, v, st, viewer, state.OriginHand, i)...)
		}
	}
	for i := range p.Antechamber {
		out = append(out, playOptions(reg, v, st, viewer, state.OriginAntechamber, i)...)
	}
	if canFlip(p) {
		out = append(out, FlipKing{})
	}
	return out
}

// playOptions projects the play on a clone so that MAY ability targets are
// computed against the court as it will be when the ability resolves.
func playOptions(reg *abilities.Registry, v cards.Variant, st *state.GameState, seat int, from state.Origin, idx int) []Action {
	out := []Action{plainPlay(from, idx)}
	c := abilities.NewContext(st.Clone(), reg, v, nil, seat)
	m, err := abilities.PlaceCard(c, from, idx)
	if err != nil {
		return out
	}
	for ai, ab := range m.Abilities {
		if !ab.May || !ab.CanActivate(c) {
			continue
		}
		targets := []state.Target{state.NoTarget}
		if ab.Targets != nil {
			targets = ab.Targets(c)
		}
		for _, t := range targets {
			out = append(out, PlayCard{From: from, Index: idx, Ability: ai, Target: t})
		}
	}
	return out
}

func reactionActions(st *state.GameState, viewer int) []Action {
	p := st.Pending
	if p == nil || viewer != p.Responder() {
		return nil
	}
	cand, ok := p.Current()
	if !ok {
		return nil
	}
	if state.Contains(st.Player(viewer).Hand, cand.Card) {
		return []Action{React{Card: cand.Card}, Decline{}}
	}
	return []Action{Decline{}}
}

func canFlip(p *state.Player) bool {
	return !p.KingFlipped && p.Successor != nil
}

// canMove reports whether seat has any play or flip in Main.
func canMove(reg *abilities.Registry, st *state.GameState, seat int) bool {
	p := st.Player(seat)
	if len(p.Antechamber) > 0 || canFlip(p) {
		return true
	}
	for _, c := range p.Hand {
		if reg.CanPlayFromHand(st, seat, c) {
			return true
		}
	}
	return false
}
