package abilities

import (
	"fmt"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

func baseModules() []*Module {
	return []*Module{
		fool(),
		assassin(),
		elder(),
		zealot(),
		inquisitor(),
		soldier(),
		judge(),
		oathbound(),
		immortal(),
		warlord(),
		mystic(),
		warden(),
		sentry(),
		kingsHand(),
		princess(),
		queen(),
	}
}

func fool() *Module {
	targets := func(c *Context) []state.Target { return courtTargets(c, nil) }
	return &Module{
		Name: cards.Fool,
		Base: 1,
		Abilities: []Ability{{
			Text:        "take a court card into your hand",
			May:         true,
			Targets:     targets,
			CanActivate: hasTargets(targets),
			Execute: func(c *Context, t state.Target) error {
				card, err := LeaveCourt(c, t.Court)
				if err != nil {
					return err
				}
				c.Me().Hand = append(c.Me().Hand, card)
				c.Say("%s takes %s from the court", c.Me().Name, card)
				return nil
			},
		}},
	}
}

func elder() *Module {
	return &Module{
		Name: cards.Elder,
		Base: 3,
		OnPlay: func(c *Context, _ cards.Card, _ state.Origin) {
			throne, ok := c.State.Throne()
			if !ok {
				return
			}
			if m, ok := c.Registry.Lookup(throne.Card.Name); ok && m.Has(TagRoyalty) {
				Disgrace(c, c.State.ThroneIndex())
			}
		},
		FacetDelta: func(f cards.Facet) int {
			if f == cards.FacetCharismaticLeader {
				return 2
			}
			return 0
		},
	}
}

func zealot() *Module {
	return &Module{
		Name: cards.Zealot,
		Base: 3,
		Abilities: []Ability{{
			Text: "play any value with your next hand card",
			May:  true,
			CanActivate: func(c *Context) bool {
				return !c.Me().PlayAnyValue
			},
			Execute: func(c *Context, _ state.Target) error {
				c.Me().PlayAnyValue = true
				c.Say("%s may play any value next", c.Me().Name)
				return nil
			},
		}},
	}
}

func inquisitor() *Module {
	return &Module{
		Name: cards.Inquisitor,
		Base: 4,
		Abilities: []Ability{{
			Text:        "name a card; the opponent moves every copy in hand to their antechamber",
			May:         true,
			Targets:     nameTargets,
			CanActivate: always,
			Execute: func(c *Context, t state.Target) error {
				them := c.Them()
				moved := 0
				for i := len(them.Hand) - 1; i >= 0; i-- {
					if them.Hand[i].Name != t.Name {
						continue
					}
					card, err := state.RemoveAt(&them.Hand, i)
					if err != nil {
						return err
					}
					them.Antechamber = append(them.Antechamber, card)
					moved++
				}
				c.Say("Inquisitor names %s: %s moves %d to the antechamber", t.Name, them.Name, moved)
				return nil
			},
		}},
	}
}

func soldier() *Module {
	return &Module{
		Name: cards.Soldier,
		Base: 5,
		Abilities: []Ability{{
			Text:        "name a card; if the opponent holds it, gain +2 in court",
			May:         true,
			Targets:     nameTargets,
			CanActivate: always,
			Execute: func(c *Context, t state.Target) error {
				if state.Contains(c.Them().Hand, t.Name) {
					c.State.Court[c.Source].Bonus += 2
					c.Say("Soldier names %s: hit", t.Name)
					return nil
				}
				c.Say("Soldier names %s: miss", t.Name)
				return nil
			},
		}},
	}
}

func judge() *Module {
	targets := func(c *Context) []state.Target {
		var out []state.Target
		for _, n := range c.Variant.Names() {
			if len(c.Me().Hand) == 0 {
				out = append(out, state.Target{Name: n, Hand: state.NoIndex, Court: state.NoIndex})
				continue
			}
			for i := range c.Me().Hand {
				out = append(out, state.Target{Name: n, Hand: i, Court: state.NoIndex})
			}
		}
		return out
	}
	return &Module{
		Name: cards.Judge,
		Base: 5,
		Abilities: []Ability{{
			Text:        "guess a card in the opponent's hand; if right, move a hand card to your antechamber",
			May:         true,
			Targets:     targets,
			CanActivate: always,
			Execute: func(c *Context, t state.Target) error {
				if !state.Contains(c.Them().Hand, t.Name) {
					c.Say("Judge guesses %s: wrong", t.Name)
					return nil
				}
				c.Say("Judge guesses %s: right", t.Name)
				if t.Hand == state.NoIndex {
					return nil
				}
				me := c.Me()
				card, err := state.RemoveAt(&me.Hand, t.Hand)
				if err != nil {
					return err
				}
				me.Antechamber = append(me.Antechamber, card)
				c.Say("%s moves %s to the antechamber", me.Name, card)
				return nil
			},
		}},
	}
}

func oathbound() *Module {
	return &Module{
		Name: cards.Oathbound,
		Base: 6,
		Abilities: []Ability{{
			Text: "disgrace the previous throne",
			CanActivate: func(c *Context) bool {
				return c.Source > 0 && !c.State.Court[c.Source-1].Disgraced
			},
			Execute: func(c *Context, _ state.Target) error {
				Disgrace(c, c.Source-1)
				return nil
			},
		}},
	}
}

func immortal() *Module {
	return &Module{
		Name: cards.Immortal,
		Base: 6,
		Tags: []Tag{TagImmuneToKingsHand, TagImmuneToDisgrace},
	}
}

func warlord() *Module {
	return &Module{
		Name: cards.Warlord,
		Base: 7,
		OnEnterCourt: func(c *Context, _ int) {
			for i := range c.State.Court {
				e := &c.State.Court[i]
				if e.Card.Name == cards.Soldier && e.Disgraced {
					e.Disgraced = false
					c.Say("Warlord restores %s", e.Card)
				}
			}
		},
		CourtBonus: func(st *state.GameState, _ int) int {
			n := 0
			for _, e := range st.Court {
				if e.Card.Name == cards.Soldier {
					n++
				}
			}
			return n
		},
	}
}

func mystic() *Module {
	targets := func(c *Context) []state.Target {
		if c.Me().Successor == nil {
			return nil
		}
		return handTargets(c)
	}
	return &Module{
		Name: cards.Mystic,
		Base: 7,
		Abilities: []Ability{{
			Text:        "swap a hand card with your successor",
			May:         true,
			Targets:     targets,
			CanActivate: hasTargets(targets),
			Execute: func(c *Context, t state.Target) error {
				me := c.Me()
				if me.Successor == nil {
					return fmt.Errorf("no successor to swap")
				}
				if t.Hand < 0 || t.Hand >= len(me.Hand) {
					return fmt.Errorf("hand index %d out of range", t.Hand)
				}
				old := *me.Successor
				next := me.Hand[t.Hand]
				me.Hand[t.Hand] = old
				me.Successor = &next
				c.Say("%s swaps their successor", me.Name)
				return nil
			},
		}},
	}
}

func warden() *Module {
	return &Module{
		Name: cards.Warden,
		Base: 7,
		CourtBonus: func(st *state.GameState, _ int) int {
			if len(st.Court) >= 5 {
				return 2
			}
			return 0
		},
	}
}

func sentry() *Module {
	targets := func(c *Context) []state.Target {
		var out []state.Target
		for h := range c.Me().Hand {
			for _, ct := range courtTargets(c, func(e state.CourtEntry) bool { return !e.Disgraced }) {
				out = append(out, state.Target{Hand: h, Court: ct.Court})
			}
		}
		return out
	}
	return &Module{
		Name: cards.Sentry,
		Base: 8,
		Abilities: []Ability{{
			Text:        "swap a hand card with a court card",
			May:         true,
			Targets:     targets,
			CanActivate: hasTargets(targets),
			Execute: func(c *Context, t state.Target) error {
				me := c.Me()
				if t.Hand < 0 || t.Hand >= len(me.Hand) {
					return fmt.Errorf("hand index %d out of range", t.Hand)
				}
				if t.Court < 0 || t.Court >= len(c.State.Court) {
					return fmt.Errorf("court index %d out of range", t.Court)
				}
				old := c.State.Court[t.Court]
				c.State.Court[t.Court] = state.CourtEntry{Card: me.Hand[t.Hand], PlayedBy: c.Actor}
				me.Hand[t.Hand] = old.Card
				if m, ok := c.Registry.Lookup(old.Card.Name); ok && m.OnLeaveCourt != nil {
					m.OnLeaveCourt(c, old)
				}
				c.Say("%s swaps %s out of the court for %s", me.Name, old.Card, c.State.Court[t.Court].Card)
				return nil
			},
		}},
	}
}

func princess() *Module {
	targets := func(c *Context) []state.Target {
		if len(c.Them().Hand) == 0 {
			return nil
		}
		return handTargets(c)
	}
	return &Module{
		Name: cards.Princess,
		Base: 9,
		Tags: []Tag{TagRoyalty},
		Abilities: []Ability{{
			Text:        "give a hand card to the opponent and take one at random",
			May:         true,
			Targets:     targets,
			CanActivate: hasTargets(targets),
			Execute: func(c *Context, t state.Target) error {
				if c.Rand == nil {
					return fmt.Errorf("princess needs a random source")
				}
				me, them := c.Me(), c.Them()
				if len(them.Hand) == 0 {
					return fmt.Errorf("opponent hand is empty")
				}
				given, err := state.RemoveAt(&me.Hand, t.Hand)
				if err != nil {
					return err
				}
				taken, err := state.RemoveAt(&them.Hand, c.Rand.IntN(len(them.Hand)))
				if err != nil {
					return err
				}
				them.Hand = append(them.Hand, given)
				me.Hand = append(me.Hand, taken)
				c.Say("%s exchanges a card with %s", me.Name, them.Name)
				return nil
			},
		}},
		FacetDelta: func(f cards.Facet) int {
			if f == cards.FacetCharismaticLeader {
				return -2
			}
			return 0
		},
	}
}

func queen() *Module {
	return &Module{
		Name: cards.Queen,
		Base: 9,
		Tags: []Tag{TagRoyalty},
		Abilities: []Ability{{
			Text: "disgrace every other court card",
			CanActivate: func(c *Context) bool {
				return len(c.State.Court) > 1
			},
			Execute: func(c *Context, _ state.Target) error {
				for i := range c.State.Court {
					if i != c.Source {
						Disgrace(c, i)
					}
				}
				return nil
			},
		}},
	}
}
