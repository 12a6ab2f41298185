package game

import (
	"github.com/cognivore/imposterzero/internal/game/abilities"
	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// CardView is a card with its current effective value.
type CardView struct {
	Card  cards.Card
	Value int
}

// CourtView is one court entry as everyone sees it.
type CourtView struct {
	Card      cards.Card
	Value     int
	Disgraced bool
	PlayedBy  int
}

// PlayerView is one seat as seen by the viewer. Hidden zones of the
// opponent are reduced to counts.
type PlayerView struct {
	Seat         int
	Name         string
	Facet        cards.Facet
	KingFlipped  bool
	Points       int
	PlayAnyValue bool
	Mustered     bool

	HandCount    int
	Hand         []CardView
	ArmyCount    int
	Army         []cards.Card
	Signatures   []cards.Name
	Antechamber  []CardView
	Exhausted    []cards.Card
	HasSuccessor bool
	Successor    *cards.Card
	HasSquire    bool
	Squire       *cards.Card
	Dungeon      *cards.Card
}

// PendingView describes an open reaction window.
type PendingView struct {
	Kind      state.TriggerKind
	Actor     int
	Source    cards.Name
	Candidate state.Candidate
	Remaining int
}

// Board is the state rendered for one viewer.
type Board struct {
	Viewer      int
	Phase       state.Phase
	Step        state.Step
	Round       int
	Current     int
	TrueKing    int
	FirstPlayer int
	Winner      int
	Court       []CourtView
	ThroneValue int
	Accused     *cards.Card
	Condemned   []cards.Card
	DeckCount   int
	You         PlayerView
	Opponent    PlayerView
	Pending     *PendingView
}

// Status tells a viewer where the game stands and whether they must act.
type Status struct {
	Phase  state.Phase
	Step   state.Step
	Round  int
	ToMove bool
	Points [2]int
	Winner int
}

// RenderBoard builds the viewer's board from st.
func RenderBoard(reg *abilities.Registry, st *state.GameState, viewer int) Board {
	b := Board{
		Viewer:      viewer,
		Phase:       st.Phase,
		Step:        st.Step,
		Round:       st.Round,
		Current:     st.Current,
		TrueKing:    st.TrueKing,
		FirstPlayer: st.FirstPlayer,
		Winner:      st.Winner,
		ThroneValue: reg.ThroneValue(st),
		Accused:     copyCard(st.Accused),
		Condemned:   append([]cards.Card(nil), st.Condemned...),
		DeckCount:   len(st.Deck),
		You:         renderPlayer(reg, st, viewer, true),
		Opponent:    renderPlayer(reg, st, state.Opponent(viewer), false),
	}
	for i, e := range st.Court {
		b.Court = append(b.Court, CourtView{
			Card:      e.Card,
			Value:     reg.CourtValue(st, i),
			Disgraced: e.Disgraced,
			PlayedBy:  e.PlayedBy,
		})
	}
	if p := st.Pending; p != nil {
		cand, _ := p.Current()
		b.Pending = &PendingView{
			Kind:      p.Kind,
			Actor:     p.Actor,
			Source:    p.Source,
			Candidate: cand,
			Remaining: len(p.Candidates) - p.Next,
		}
	}
	return b
}

func renderPlayer(reg *abilities.Registry, st *state.GameState, seat int, own bool) PlayerView {
	p := st.Player(seat)
	v := PlayerView{
		Seat:         seat,
		Name:         p.Name,
		Facet:        p.Facet,
		KingFlipped:  p.KingFlipped,
		Points:       p.Points,
		PlayAnyValue: p.PlayAnyValue,
		Mustered:     p.Mustered,
		HandCount:    len(p.Hand),
		ArmyCount:    len(p.Army),
		Exhausted:    append([]cards.Card(nil), p.Exhausted...),
		HasSuccessor: p.Successor != nil,
		HasSquire:    p.Squire != nil,
		Dungeon:      copyCard(p.Dungeon),
	}
	for _, c := range p.Antechamber {
		v.Antechamber = append(v.Antechamber, CardView{Card: c, Value: reg.HandValue(st, seat, c)})
	}
	if !own {
		return v
	}
	for _, c := range p.Hand {
		v.Hand = append(v.Hand, CardView{Card: c, Value: reg.HandValue(st, seat, c)})
	}
	v.Army = append([]cards.Card(nil), p.Army...)
	v.Signatures = append([]cards.Name(nil), p.Signatures...)
	v.Successor = copyCard(p.Successor)
	v.Squire = copyCard(p.Squire)
	return v
}

func statusOf(st *state.GameState, viewer int) Status {
	s := Status{
		Phase:  st.Phase,
		Step:   st.Step,
		Round:  st.Round,
		Points: [2]int{st.Players[0].Points, st.Players[1].Points},
		Winner: st.Winner,
	}
	switch {
	case st.Phase == state.PhaseSignatureSelection:
		s.ToMove = len(st.Player(viewer).Signatures) == 0
	case st.Step == state.StepChooseFirstPlayer:
		s.ToMove = viewer == st.TrueKing
	case st.Step == state.StepReaction && st.Pending != nil:
		s.ToMove = viewer == st.Pending.Responder()
	case st.Phase == state.PhaseMustering || st.Phase == state.PhasePlay:
		s.ToMove = viewer == st.Current
	}
	return s
}

func copyCard(c *cards.Card) *cards.Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
