package bot

import (
	"context"
	"fmt"

	"github.com/cognivore/imposterzero/internal/game"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// Result summarises a finished bot match.
type Result struct {
	Winner  int
	Points  [2]int
	Rounds  int
	Actions int
}

// StepHook is called after every applied action.
type StepHook func(actor int, a game.Action) error

// Play drives e with the two policies until the game ends, maxActions is
// reached or ctx is cancelled. hook may be nil.
func Play(ctx context.Context, e *game.Engine, policies [2]Policy, maxActions int, hook StepHook) (Result, error) {
	var res Result
	for res.Actions < maxActions {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		st := e.State()
		if st.Phase == state.PhaseGameOver {
			res.Winner = st.Winner
			res.Points = [2]int{st.Players[0].Points, st.Players[1].Points}
			res.Rounds = st.Round
			return res, nil
		}
		moved := false
		for seat := 0; seat < 2 && !moved; seat++ {
			legal := e.LegalActions(seat)
			if len(legal) == 0 {
				continue
			}
			a, ok := policies[seat](e.Board(seat), e.Status(seat), legal)
			if !ok {
				return res, fmt.Errorf("seat %d passed with %d legal actions", seat, len(legal))
			}
			if err := e.Apply(seat, e.Seq(), a); err != nil {
				return res, fmt.Errorf("seat %d: %w", seat, err)
			}
			res.Actions++
			moved = true
			if hook != nil {
				if err := hook(seat, a); err != nil {
					return res, err
				}
			}
		}
		if !moved {
			return res, fmt.Errorf("no seat can move in %s/%s", st.Phase, st.Step)
		}
	}
	return res, fmt.Errorf("game did not finish within %d actions", maxActions)
}
