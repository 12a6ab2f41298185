package abilities

import (
	"fmt"
	"slices"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// Tag is a keyword carried by a card module.
type Tag string

const (
	TagImmuneToKingsHand Tag = "IMMUNE_TO_KINGS_HAND"
	TagImmuneToDisgrace  Tag = "IMMUNE_TO_DISGRACE"
	TagReaction          Tag = "REACTION"
	TagRoyalty           Tag = "ROYALTY"
)

// Ability is one activated effect of a card. May abilities can be
// prevented by a reaction; mandatory ones resolve on their own.
type Ability struct {
	Text string
	May  bool
	// Targets enumerates payloads. Nil means the ability takes NoTarget.
	Targets func(c *Context) []state.Target
	// CanActivate must not mutate c.
	CanActivate func(c *Context) bool
	// Execute is the only place the ability touches the state.
	Execute func(c *Context, t state.Target) error
}

// Reaction describes an interrupt a card offers from its owner's hand.
type Reaction struct {
	// Answers reports whether the reaction applies to a trigger raised by
	// source. Copy reactions leave it nil.
	Answers func(r *Registry, kind state.TriggerKind, source cards.Name) bool
	// Copy marks a reaction that mimics another reaction present in court.
	Copy bool
	// Effect runs after the reacting card has been condemned. c.Actor is
	// the responder.
	Effect func(c *Context, p *state.PendingTrigger) error
}

// Module is everything the engine knows about one card name.
type Module struct {
	Name      cards.Name
	Base      int
	Tags      []Tag
	Abilities []Ability
	Reaction  *Reaction

	OnPlay       func(c *Context, card cards.Card, from state.Origin)
	OnEnterCourt func(c *Context, idx int)
	OnLeaveCourt func(c *Context, e state.CourtEntry)
	OnKingFlip   func(c *Context, idx, flipper int)

	// FacetDelta is applied while the owner's king is unflipped.
	FacetDelta func(f cards.Facet) int
	// CourtBonus is added while the card sits in the court.
	CourtBonus func(st *state.GameState, idx int) int
}

// Has reports whether the module carries tag.
func (m *Module) Has(tag Tag) bool {
	return slices.Contains(m.Tags, tag)
}

// MayAbility returns ability i if it exists and is a May ability.
func (m *Module) MayAbility(i int) (Ability, bool) {
	if i < 0 || i >= len(m.Abilities) || !m.Abilities[i].May {
		return Ability{}, false
	}
	return m.Abilities[i], true
}

// Registry maps names to modules. It is read-only once built and may be
// shared by concurrent games.
type Registry struct {
	modules map[cards.Name]*Module
	order   []cards.Name
}

// NewRegistry builds the registry with every card of the game.
func NewRegistry() *Registry {
	r, err := NewRegistryWith(append(baseModules(), signatureModules()...))
	if err != nil {
		panic(fmt.Sprintf("abilities: building default registry: %v", err))
	}
	return r
}

// NewRegistryWith builds a registry from explicit modules, in order.
func NewRegistryWith(mods []*Module) (*Registry, error) {
	r := &Registry{modules: make(map[cards.Name]*Module, len(mods))}
	for _, m := range mods {
		if m == nil || m.Name == "" {
			return nil, fmt.Errorf("module without name")
		}
		if _, dup := r.modules[m.Name]; dup {
			return nil, fmt.Errorf("duplicate module %s", m.Name)
		}
		if m.Base < 0 {
			return nil, fmt.Errorf("module %s has negative base value", m.Name)
		}
		for i, a := range m.Abilities {
			if a.Execute == nil || a.CanActivate == nil {
				return nil, fmt.Errorf("module %s ability %d is incomplete", m.Name, i)
			}
		}
		if m.Reaction != nil {
			if m.Reaction.Effect == nil && !m.Reaction.Copy {
				return nil, fmt.Errorf("module %s reaction has no effect", m.Name)
			}
			if m.Reaction.Answers == nil && !m.Reaction.Copy {
				return nil, fmt.Errorf("module %s reaction answers nothing", m.Name)
			}
		}
		r.modules[m.Name] = m
		r.order = append(r.order, m.Name)
	}
	return r, nil
}

// Lookup returns the module for name.
func (r *Registry) Lookup(name cards.Name) (*Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Module returns the module for name or an error for unknown cards.
func (r *Registry) Module(name cards.Name) (*Module, error) {
	m, ok := r.modules[name]
	if !ok {
		return nil, fmt.Errorf("unknown card %q", name)
	}
	return m, nil
}

// Names lists registered names in registry order.
func (r *Registry) Names() []cards.Name {
	return append([]cards.Name(nil), r.order...)
}

// Reactions lists modules offering a reaction, in registry order.
func (r *Registry) Reactions() []*Module {
	var out []*Module
	for _, n := range r.order {
		if m := r.modules[n]; m.Reaction != nil {
			out = append(out, m)
		}
	}
	return out
}

// Validate checks that every card of the variant has a module.
func (r *Registry) Validate(v cards.Variant) error {
	for _, n := range v.Names() {
		if _, ok := r.modules[n]; !ok {
			return fmt.Errorf("variant %s uses unregistered card %q", v.Name, n)
		}
	}
	return nil
}
