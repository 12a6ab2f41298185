package game

import (
	"fmt"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/rules"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// startRound gathers every card, shuffles, sets the accused aside and deals.
// The true king then chooses the first player.
func (t *transition) startRound() error {
	st := t.st
	t.collect()
	if len(st.Deck) < 2*t.config.HandSize+1 {
		return fmt.Errorf("deck has %d cards, need %d", len(st.Deck), 2*t.config.HandSize+1)
	}
	t.rng.Shuffle(len(st.Deck), func(i, j int) {
		st.Deck[i], st.Deck[j] = st.Deck[j], st.Deck[i]
	})
	accused := st.Deck[0]
	st.Accused = &accused
	st.Deck = st.Deck[1:]
	for seat := range st.Players {
		p := st.Player(seat)
		p.Hand = append([]cards.Card(nil), st.Deck[:t.config.HandSize]...)
		st.Deck = st.Deck[t.config.HandSize:]
		p.KingFlipped = false
		p.PlayAnyValue = false
		p.Mustered = false
		p.FacetChanged = false
	}
	st.Deck = append([]cards.Card(nil), st.Deck...)
	st.Round++
	st.Phase = state.PhaseMustering
	st.Step = state.StepChooseFirstPlayer
	st.Current = st.TrueKing
	st.FirstPlayer = state.NoIndex
	st.Pending = nil
	t.say("Round %d begins, %s is accused and %s is the true king", st.Round, accused, st.Player(st.TrueKing).Name)
	return nil
}

// collect returns base cards to the deck and signature cards that left
// their army to the owner's exhausted army.
func (t *transition) collect() {
	st := t.st
	var loose []cards.Card
	for seat := range st.Players {
		p := st.Player(seat)
		loose = append(loose, p.Hand...)
		loose = append(loose, p.Antechamber...)
		for _, slot := range []**cards.Card{&p.Successor, &p.Squire, &p.Dungeon} {
			if *slot != nil {
				loose = append(loose, **slot)
				*slot = nil
			}
		}
		p.Hand, p.Antechamber = nil, nil
	}
	for _, e := range st.Court {
		loose = append(loose, e.Card)
	}
	if st.Accused != nil {
		loose = append(loose, *st.Accused)
	}
	loose = append(loose, st.Condemned...)
	st.Court, st.Accused, st.Condemned = nil, nil, nil

	for _, c := range loose {
		if owner, ok := cards.ArmyOwner(c.Flavor); ok {
			p := st.Player(owner)
			p.Exhausted = append(p.Exhausted, c)
			continue
		}
		st.Deck = append(st.Deck, c)
	}
}

// checkRoundEnd ends the round when the player to move is stuck.
func (t *transition) checkRoundEnd() error {
	st := t.st
	if st.Phase != state.PhasePlay || st.Step != state.StepMain {
		return nil
	}
	if canMove(t.registry, st, st.Current) {
		return nil
	}
	return t.endRound(st.Current)
}

func (t *transition) endRound(loser int) error {
	st := t.st
	winner := state.Opponent(loser)
	pts := t.config.Scoring.RoundPoints(len(st.Court))
	w := st.Player(winner)
	w.Points += pts
	st.TrueKing = loser
	st.Phase = state.PhaseRoundEnd
	st.Step = state.StepNone
	t.say("%s cannot move. %s scores %d for a court of %d (total %d)",
		st.Player(loser).Name, w.Name, pts, len(st.Court), w.Points)
	t.snapshot()
	if t.config.Scoring.IsGameOver(w.Points) {
		st.Phase = state.PhaseGameOver
		st.Winner = winner
		t.say("%s wins the game", w.Name)
		return nil
	}
	return t.startRound()
}

// checkTransition verifies the invariants that relate two consecutive
// states.
func checkTransition(prev, next *state.GameState, scoring rules.ScoringConfig) error {
	over := false
	for seat := range next.Players {
		before, after := prev.Player(seat), next.Player(seat)
		if after.Points < before.Points {
			return fmt.Errorf("player %d points decreased from %d to %d", seat, before.Points, after.Points)
		}
		if prev.Round == next.Round && before.KingFlipped && !after.KingFlipped {
			return fmt.Errorf("player %d king unflipped mid-round", seat)
		}
		if scoring.IsGameOver(after.Points) {
			over = true
		}
	}
	if over != (next.Phase == state.PhaseGameOver) {
		return fmt.Errorf("phase %s inconsistent with scores %d/%d", next.Phase, next.Players[0].Points, next.Players[1].Points)
	}
	return nil
}
