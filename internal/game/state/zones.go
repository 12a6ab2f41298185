package state

import (
	"fmt"

	"github.com/cognivore/imposterzero/internal/game/cards"
)

// RemoveAt deletes index i from a card slice and returns the card.
func RemoveAt(zone *[]cards.Card, i int) (cards.Card, error) {
	if i < 0 || i >= len(*zone) {
		return cards.Card{}, fmt.Errorf("index %d out of range (size %d)", i, len(*zone))
	}
	c := (*zone)[i]
	*zone = append((*zone)[:i:i], (*zone)[i+1:]...)
	return c, nil
}

// IndexOf finds the first card with the given name.
func IndexOf(zone []cards.Card, name cards.Name) int {
	for i, c := range zone {
		if c.Name == name {
			return i
		}
	}
	return NoIndex
}

// Contains reports whether a card with the given name is in the zone.
func Contains(zone []cards.Card, name cards.Name) bool {
	return IndexOf(zone, name) != NoIndex
}

// RemoveCourt deletes a court entry and returns it.
func (s *GameState) RemoveCourt(i int) (CourtEntry, error) {
	if i < 0 || i >= len(s.Court) {
		return CourtEntry{}, fmt.Errorf("court index %d out of range (size %d)", i, len(s.Court))
	}
	e := s.Court[i]
	s.Court = append(s.Court[:i:i], s.Court[i+1:]...)
	return e, nil
}

// Condemn places cards on the shared condemned pile.
func (s *GameState) Condemn(cs ...cards.Card) {
	s.Condemned = append(s.Condemned, cs...)
}

// Cards returns the multiset of every card in every zone.
func (s *GameState) Cards() cards.Multiset {
	m := make(cards.Multiset)
	for i := range s.Players {
		p := &s.Players[i]
		m.Add(p.Hand...)
		m.Add(p.Antechamber...)
		m.Add(p.Army...)
		m.Add(p.Exhausted...)
		for _, c := range []*cards.Card{p.Successor, p.Squire, p.Dungeon} {
			if c != nil {
				m.Add(*c)
			}
		}
	}
	for _, e := range s.Court {
		m.Add(e.Card)
	}
	if s.Accused != nil {
		m.Add(*s.Accused)
	}
	m.Add(s.Deck...)
	m.Add(s.Condemned...)
	return m
}

// Expected returns the multiset the state must hold for variant v.
func (s *GameState) Expected(v cards.Variant) cards.Multiset {
	return v.Expected([2][]cards.Name{s.Players[0].Signatures, s.Players[1].Signatures})
}

// CheckConservation verifies that no card was duplicated or lost.
func (s *GameState) CheckConservation(v cards.Variant) error {
	have := s.Cards()
	want := s.Expected(v)
	if !have.Equal(want) {
		return fmt.Errorf("card conservation broken: %s", have.Diff(want))
	}
	return nil
}

// CheckInvariants verifies the per-state invariants that do not depend on
// history.
func (s *GameState) CheckInvariants(v cards.Variant) error {
	if err := s.CheckConservation(v); err != nil {
		return err
	}
	for i := range s.Players {
		p := &s.Players[i]
		if p.Points < 0 {
			return fmt.Errorf("player %d has negative points %d", i, p.Points)
		}
	}
	if s.Step == StepReaction && s.Pending == nil {
		return fmt.Errorf("reaction step without pending trigger")
	}
	if s.Step != StepReaction && s.Pending != nil {
		return fmt.Errorf("pending trigger outside reaction step %s", s.Step)
	}
	return nil
}
