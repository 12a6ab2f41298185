package abilities

import (
	"fmt"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// answersAbilities matches any MAY ability whose source is not immune.
func answersAbilities(r *Registry, kind state.TriggerKind, source cards.Name) bool {
	if kind != state.TriggerAbility {
		return false
	}
	m, ok := r.Lookup(source)
	return ok && !m.Has(TagImmuneToKingsHand)
}

func answersKingFlip(_ *Registry, kind state.TriggerKind, _ cards.Name) bool {
	return kind == state.TriggerKingFlip
}

func kingsHand() *Module {
	return &Module{
		Name: cards.KingsHand,
		Base: 8,
		Tags: []Tag{TagReaction},
		Reaction: &Reaction{
			Answers: answersAbilities,
			Effect: func(c *Context, p *state.PendingTrigger) error {
				if p.CourtIndex < 0 || p.CourtIndex >= len(c.State.Court) {
					return fmt.Errorf("triggering card left the court")
				}
				card, err := LeaveCourt(c, p.CourtIndex)
				if err != nil {
					return err
				}
				c.State.Condemn(card)
				c.Say("%s is condemned", card)
				return nil
			},
		},
	}
}

func assassin() *Module {
	return &Module{
		Name: cards.Assassin,
		Base: 2,
		Tags: []Tag{TagReaction},
		Reaction: &Reaction{
			Answers: answersKingFlip,
			Effect: func(c *Context, p *state.PendingTrigger) error {
				flipper := c.State.Player(p.Actor)
				for _, slot := range []**cards.Card{&flipper.Successor, &flipper.Squire} {
					if *slot != nil {
						c.State.Condemn(**slot)
						*slot = nil
					}
				}
				flipper.KingFlipped = true
				c.Say("%s's king is assassinated", flipper.Name)
				return nil
			},
		},
	}
}

// stranger copies whichever court reaction answers the trigger; the
// resolver supplies the copied module.
func stranger() *Module {
	return &Module{
		Name:     cards.Stranger,
		Base:     2,
		Tags:     []Tag{TagReaction},
		Reaction: &Reaction{Copy: true},
	}
}
