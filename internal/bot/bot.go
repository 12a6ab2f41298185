// Package bot holds automatic players. A policy only ever returns an
// action from the list it was given.
package bot

import (
	"math/rand/v2"

	"github.com/cognivore/imposterzero/internal/game"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// Policy picks one of legal for the viewer of board. It returns false when
// legal is empty or the policy passes.
type Policy func(board game.Board, status game.Status, legal []game.Action) (game.Action, bool)

// Random picks uniformly. The returned policy owns its generator and must
// not be shared between goroutines.
func Random(seed uint64) Policy {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	return func(_ game.Board, _ game.Status, legal []game.Action) (game.Action, bool) {
		if len(legal) == 0 {
			return nil, false
		}
		return legal[rng.IntN(len(legal))], true
	}
}

// Greedy plays its lowest legal card, reacts whenever it can, keeps its
// best card as successor and never spends its army.
func Greedy() Policy {
	return func(board game.Board, _ game.Status, legal []game.Action) (game.Action, bool) {
		if len(legal) == 0 {
			return nil, false
		}
		var (
			best      game.Action
			bestScore = -1 << 30
		)
		for _, a := range legal {
			if s := greedyScore(board, a); s > bestScore {
				best, bestScore = a, s
			}
		}
		return best, true
	}
}

func greedyScore(b game.Board, a game.Action) int {
	switch a := a.(type) {
	case game.React:
		return 1000
	case game.Decline:
		return 0
	case game.EndMuster:
		return 10
	case game.ChooseFirstPlayer:
		if a.Player == b.Viewer {
			return 1
		}
		return 0
	case game.ChooseSuccessor:
		return cardValue(b.You.Hand, a.Hand)
	case game.ChooseSquire:
		return cardValue(b.You.Hand, a.Hand)
	case game.PlayCard:
		v := 0
		if a.From == state.OriginAntechamber {
			v = cardValue(b.You.Antechamber, a.Index)
		} else {
			v = cardValue(b.You.Hand, a.Index)
		}
		score := 100 - 2*v
		if a.Ability != game.NoAbility {
			score++
		}
		return score
	case game.FlipKing:
		return 50
	case game.ChooseSignatures:
		return 0
	default:
		return -1
	}
}

func cardValue(zone []game.CardView, i int) int {
	if i < 0 || i >= len(zone) {
		return 0
	}
	return zone[i].Value
}
