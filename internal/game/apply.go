package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/reaction"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// transition applies one validated action to a cloned state and collects
// the events it produces.
type transition struct {
	registry *abilities.Registry
	variant  cards.Variant
	config   Config
	rng      *rand.Rand
	st       *state.GameState
	out      []Event
}

func (t *transition) say(format string, args ...any) {
	t.out = append(t.out, Event{Kind: EventMessage, Text: fmt.Sprintf(format, args...)})
}

func (t *transition) snapshot() {
	t.out = append(t.out, Event{Kind: EventNewState, snapshot: t.st.Clone()})
}

func (t *transition) context(actor int) *abilities.Context {
	return abilities.NewContext(t.st, t.registry, t.variant, t.rng, actor)
}

// absorb moves the messages of an ability context into the log.
func (t *transition) absorb(c *abilities.Context) {
	for _, m := range c.Messages {
		t.out = append(t.out, Event{Kind: EventMessage, Text: m})
	}
	c.Messages = nil
}

func (t *transition) apply(actor int, a Action) error {
	switch a := a.(type) {
	case ChooseSignatures:
		return t.chooseSignatures(actor, a)
	case ChooseFirstPlayer:
		return t.chooseFirstPlayer(actor, a)
	case Recruit:
		return t.recruit(actor, a)
	case Recommission:
		return t.recommission(actor, a)
	case ChangeKingFacet:
		p := t.st.Player(actor)
		p.Facet = a.Facet
		p.FacetChanged = true
		t.say("%s's king becomes %s", p.Name, a.Facet)
		return nil
	case EndMuster:
		return t.endMuster(actor)
	case ChooseSuccessor:
		return t.chooseSuccessor(actor, a)
	case ChooseSquire:
		return t.chooseSquire(actor, a)
	case PlayCard:
		return t.playCard(actor, a)
	case FlipKing:
		t.say("%s moves to flip their king", t.st.Player(actor).Name)
		return t.trigger(&state.PendingTrigger{
			Kind:       state.TriggerKingFlip,
			Actor:      actor,
			CourtIndex: state.NoIndex,
			Ability:    NoAbility,
			Target:     state.NoTarget,
		})
	case React:
		return t.react(actor)
	case Decline:
		return t.decline(actor)
	default:
		return &InvariantViolation{Err: fmt.Errorf("unhandled action type %T", a)}
	}
}

func (t *transition) chooseSignatures(actor int, a ChooseSignatures) error {
	p := t.st.Player(actor)
	for _, n := range a.Names {
		p.Signatures = append(p.Signatures, n)
		p.Army = append(p.Army, cards.Signature(n, actor))
	}
	t.say("%s has chosen their signature cards", p.Name)
	if len(t.st.Player(state.Opponent(actor)).Signatures) == 0 {
		return nil
	}
	return t.startRound()
}

func (t *transition) chooseFirstPlayer(actor int, a ChooseFirstPlayer) error {
	st := t.st
	st.FirstPlayer = a.Player
	st.Step = state.StepMuster
	st.Current = state.Opponent(a.Player)
	t.say("%s chooses %s to play first", st.Player(actor).Name, st.Player(a.Player).Name)
	return nil
}

func (t *transition) recruit(actor int, a Recruit) error {
	p := t.st.Player(actor)
	discarded, err := state.RemoveAt(&p.Hand, a.Hand)
	if err != nil {
		return err
	}
	recruited, err := state.RemoveAt(&p.Army, a.Army)
	if err != nil {
		return err
	}
	t.st.Condemn(discarded)
	p.Hand = append(p.Hand, recruited)
	t.say("%s condemns %s and recruits from their army", p.Name, discarded)
	return nil
}

func (t *transition) recommission(actor int, a Recommission) error {
	p := t.st.Player(actor)
	back, err := state.RemoveAt(&p.Exhausted, a.Exhausted)
	if err != nil {
		return err
	}
	discarded, err := state.RemoveAt(&p.Hand, a.Hand)
	if err != nil {
		return err
	}
	t.st.Condemn(discarded)
	p.Army = append(p.Army, back)
	t.say("%s condemns %s and recommissions %s", p.Name, discarded, back)
	return nil
}

func (t *transition) endMuster(actor int) error {
	st := t.st
	p := st.Player(actor)
	p.Mustered = true
	t.say("%s ends their muster", p.Name)
	other := state.Opponent(actor)
	if !st.Player(other).Mustered {
		st.Current = other
		return nil
	}
	if st.FirstPlayer == state.NoIndex {
		return fmt.Errorf("muster ended without a first player")
	}
	st.Phase = state.PhasePlay
	st.Step = state.StepSelectSuccessor
	st.Current = st.FirstPlayer
	return nil
}

func (t *transition) chooseSuccessor(actor int, a ChooseSuccessor) error {
	p := t.st.Player(actor)
	c, err := state.RemoveAt(&p.Hand, a.Hand)
	if err != nil {
		return err
	}
	p.Successor = &c
	t.say("%s chooses a successor", p.Name)
	if p.Facet == cards.FacetMasterTactician && len(p.Hand) > 0 {
		t.st.Step = state.StepSelectSquire
		return nil
	}
	return t.afterSelection(actor)
}

func (t *transition) chooseSquire(actor int, a ChooseSquire) error {
	p := t.st.Player(actor)
	c, err := state.RemoveAt(&p.Hand, a.Hand)
	if err != nil {
		return err
	}
	p.Squire = &c
	t.say("%s chooses a squire", p.Name)
	return t.afterSelection(actor)
}

// afterSelection hands successor selection to the second player, then
// starts the main step with the first player.
func (t *transition) afterSelection(actor int) error {
	st := t.st
	if st.FirstPlayer == state.NoIndex {
		return fmt.Errorf("successor chosen without a first player")
	}
	other := state.Opponent(actor)
	if actor == st.FirstPlayer && len(st.Player(other).Hand) > 0 {
		st.Current = other
		st.Step = state.StepSelectSuccessor
		return nil
	}
	st.Current = st.FirstPlayer
	st.Step = state.StepMain
	return t.checkRoundEnd()
}

func (t *transition) playCard(actor int, a PlayCard) error {
	c := t.context(actor)
	m, err := abilities.PlaceCard(c, a.From, a.Index)
	t.absorb(c)
	if err != nil {
		return err
	}
	if a.Ability == NoAbility {
		return t.endTurn(actor)
	}
	ab, ok := m.MayAbility(a.Ability)
	if !ok {
		return fmt.Errorf("%s has no optional ability %d", m.Name, a.Ability)
	}
	t.say("%s uses %s: %s", t.st.Player(actor).Name, m.Name, ab.Text)
	return t.trigger(&state.PendingTrigger{
		Kind:       state.TriggerAbility,
		Actor:      actor,
		Source:     m.Name,
		CourtIndex: c.Source,
		Ability:    a.Ability,
		Target:     a.Target,
	})
}

// trigger opens the reaction window for p, or resolves p at once when the
// responder cannot possibly hold a reaction.
func (t *transition) trigger(p *state.PendingTrigger) error {
	st := t.st
	p.Candidates = reaction.Possible(st, t.registry, t.variant, p.Kind, p.Source, p.Responder())
	if len(p.Candidates) == 0 {
		return t.resolve(p)
	}
	st.Pending = p
	st.Step = state.StepReaction
	t.say("%s", reaction.Prompt(st, p, p.Candidates[0]))
	return nil
}

func (t *transition) react(actor int) error {
	st := t.st
	p := st.Pending
	cand, ok := p.Current()
	if !ok {
		return fmt.Errorf("react without a pending candidate")
	}
	c := t.context(actor)
	err := reaction.Resolve(c, p, cand)
	t.absorb(c)
	if err != nil {
		return err
	}
	if p.Kind == state.TriggerKingFlip {
		t.say("%s's king flip is prevented", st.Player(p.Actor).Name)
	} else {
		t.say("%s's %s is prevented", st.Player(p.Actor).Name, p.Source)
	}
	st.Pending = nil
	return t.endTurn(p.Actor)
}

func (t *transition) decline(actor int) error {
	st := t.st
	p := st.Pending
	cand, ok := p.Current()
	if !ok {
		return fmt.Errorf("decline without a pending candidate")
	}
	t.say("%s does not answer with %s", st.Player(actor).Name, cand.Card)
	p.Next++
	if next, ok := p.Current(); ok {
		t.say("%s", reaction.Prompt(st, p, next))
		return nil
	}
	st.Pending = nil
	st.Step = state.StepMain
	return t.resolve(p)
}

// resolve applies the effect held back by p.
func (t *transition) resolve(p *state.PendingTrigger) error {
	c := t.context(p.Actor)
	var err error
	switch p.Kind {
	case state.TriggerAbility:
		var m *abilities.Module
		m, err = t.registry.Module(p.Source)
		if err != nil {
			return err
		}
		ab, ok := m.MayAbility(p.Ability)
		if !ok {
			return fmt.Errorf("%s has no optional ability %d", m.Name, p.Ability)
		}
		c.Source = p.CourtIndex
		err = ab.Execute(c, p.Target)
	case state.TriggerKingFlip:
		err = abilities.FlipKing(c)
	default:
		return &InvariantViolation{Err: fmt.Errorf("unhandled trigger kind %s", p.Kind)}
	}
	t.absorb(c)
	if err != nil {
		return err
	}
	return t.endTurn(p.Actor)
}

func (t *transition) endTurn(actor int) error {
	t.st.Current = state.Opponent(actor)
	t.st.Step = state.StepMain
	return t.checkRoundEnd()
}
