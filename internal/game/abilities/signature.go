package abilities

import (
	"fmt"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

func signatureModules() []*Module {
	return []*Module{
		aegis(),
		ancestor(),
		arbiter(),
		bard(),
		conspiracist(),
		exile(),
		flagbearer(),
		herald(),
		stranger(),
	}
}

func notDisgraced(e state.CourtEntry) bool { return !e.Disgraced }

func aegis() *Module {
	targets := func(c *Context) []state.Target { return courtTargets(c, notDisgraced) }
	return &Module{
		Name: cards.Aegis,
		Base: 7,
		Tags: []Tag{TagImmuneToKingsHand},
		Abilities: []Ability{{
			Text:        "disgrace a court card",
			May:         true,
			Targets:     targets,
			CanActivate: hasTargets(targets),
			Execute: func(c *Context, t state.Target) error {
				if t.Court < 0 || t.Court >= len(c.State.Court) {
					return fmt.Errorf("court index %d out of range", t.Court)
				}
				Disgrace(c, t.Court)
				return nil
			},
		}},
	}
}

func ancestor() *Module {
	return &Module{
		Name: cards.Ancestor,
		Base: 4,
		CourtBonus: func(st *state.GameState, idx int) int {
			if st.Player(st.Court[idx].PlayedBy).KingFlipped {
				return 2
			}
			return 0
		},
	}
}

func arbiter() *Module {
	targets := func(c *Context) []state.Target { return courtTargets(c, nil) }
	return &Module{
		Name: cards.Arbiter,
		Base: 5,
		Abilities: []Ability{{
			Text:        "condemn a court card",
			May:         true,
			Targets:     targets,
			CanActivate: hasTargets(targets),
			Execute: func(c *Context, t state.Target) error {
				card, err := LeaveCourt(c, t.Court)
				if err != nil {
					return err
				}
				c.State.Condemn(card)
				c.Say("Arbiter condemns %s", card)
				return nil
			},
		}},
	}
}

func bard() *Module {
	return &Module{
		Name: cards.Bard,
		Base: 4,
		Abilities: []Ability{{
			Text:        "move a hand card to your antechamber",
			May:         true,
			Targets:     handTargets,
			CanActivate: hasTargets(handTargets),
			Execute: func(c *Context, t state.Target) error {
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

func conspiracist() *Module {
	return &Module{
		Name: cards.Conspiracist,
		Base: 6,
		OnLeaveCourt: func(c *Context, e state.CourtEntry) {
			owner := c.State.Player(e.PlayedBy)
			owner.PlayAnyValue = true
			c.Say("%s may play any value next", owner.Name)
		},
	}
}

func exile() *Module {
	targets := func(c *Context) []state.Target {
		if c.Me().Dungeon != nil {
			return nil
		}
		return courtTargets(c, nil)
	}
	return &Module{
		Name: cards.Exile,
		Base: 3,
		Abilities: []Ability{{
			Text:        "imprison a court card in your dungeon",
			May:         true,
			Targets:     targets,
			CanActivate: hasTargets(targets),
			Execute: func(c *Context, t state.Target) error {
				me := c.Me()
				if me.Dungeon != nil {
					return fmt.Errorf("dungeon occupied")
				}
				card, err := LeaveCourt(c, t.Court)
				if err != nil {
					return err
				}
				me.Dungeon = &card
				c.Say("%s imprisons %s", me.Name, card)
				return nil
			},
		}},
	}
}

func flagbearer() *Module {
	return &Module{
		Name: cards.Flagbearer,
		Base: 5,
		OnKingFlip: func(c *Context, idx, flipper int) {
			if c.State.Court[idx].PlayedBy != flipper {
				return
			}
			p := c.State.Player(flipper)
			p.PlayAnyValue = true
			c.Say("Flagbearer rallies %s", p.Name)
		},
	}
}

func herald() *Module {
	targets := func(c *Context) []state.Target {
		if c.State.Accused == nil {
			return nil
		}
		return handTargets(c)
	}
	return &Module{
		Name: cards.Herald,
		Base: 6,
		Abilities: []Ability{{
			Text:        "exchange a hand card with the accused",
			May:         true,
			Targets:     targets,
			CanActivate: hasTargets(targets),
			Execute: func(c *Context, t state.Target) error {
				me := c.Me()
				if c.State.Accused == nil {
					return fmt.Errorf("no accused card")
				}
				if t.Hand < 0 || t.Hand >= len(me.Hand) {
					return fmt.Errorf("hand index %d out of range", t.Hand)
				}
				accused := *c.State.Accused
				given := me.Hand[t.Hand]
				me.Hand[t.Hand] = accused
				c.State.Accused = &given
				c.Say("%s exchanges a card with the accused %s", me.Name, accused)
				return nil
			},
		}},
	}
}
