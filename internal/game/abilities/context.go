package abilities

import (
	"fmt"
	"math/rand/v2"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// Context is what abilities and hooks operate on.
type Context struct {
	State    *state.GameState
	Registry *Registry
	Variant  cards.Variant
	// Rand is nil while projecting legal actions.
	Rand   *rand.Rand
	Actor  int
	Source int

	Messages []string
}

// NewContext returns a context acting for actor.
func NewContext(st *state.GameState, reg *Registry, v cards.Variant, rng *rand.Rand, actor int) *Context {
	return &Context{
		State:    st,
		Registry: reg,
		Variant:  v,
		Rand:     rng,
		Actor:    actor,
		Source:   state.NoIndex,
	}
}

// Opponent returns the seat opposing the actor.
func (c *Context) Opponent() int {
	return state.Opponent(c.Actor)
}

// Me returns the acting player.
func (c *Context) Me() *state.Player {
	return c.State.Player(c.Actor)
}

// Them returns the opposing player.
func (c *Context) Them() *state.Player {
	return c.State.Player(c.Opponent())
}

// Say appends a public message to the event log.
func (c *Context) Say(format string, args ...any) {
	c.Messages = append(c.Messages, fmt.Sprintf(format, args...))
}
