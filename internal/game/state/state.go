package state

import (
	"fmt"

	"github.com/cognivore/imposterzero/internal/game/cards"
)

// Phase is the top-level game phase.
type Phase int

const (
	PhaseSignatureSelection Phase = iota
	PhaseMustering
	PhasePlay
	PhaseRoundEnd
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseSignatureSelection: "SIGNATURE_SELECTION",
	PhaseMustering:          "MUSTERING",
	PhasePlay:               "PLAY",
	PhaseRoundEnd:           "ROUND_END",
	PhaseGameOver:           "GAME_OVER",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	for k, name := range phaseNames {
		if name == string(b) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// Step is the transient sub-state inside a phase.
type Step int

const (
	StepNone Step = iota
	StepChooseFirstPlayer
	StepMuster
	StepSelectSuccessor
	StepSelectSquire
	StepMain
	StepReaction
)

var stepNames = map[Step]string{
	StepNone:              "NONE",
	StepChooseFirstPlayer: "CHOOSE_FIRST_PLAYER",
	StepMuster:            "MUSTER",
	StepSelectSuccessor:   "SELECT_SUCCESSOR",
	StepSelectSquire:      "SELECT_SQUIRE",
	StepMain:              "MAIN",
	StepReaction:          "REACTION",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Step) UnmarshalText(b []byte) error {
	for k, name := range stepNames {
		if name == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown step %q", b)
}

// Origin is the zone a card is played from.
type Origin int

const (
	OriginHand Origin = iota
	OriginAntechamber
)

func (o Origin) String() string {
	if o == OriginAntechamber {
		return "ANTECHAMBER"
	}
	return "HAND"
}

func (o Origin) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Origin) UnmarshalText(b []byte) error {
	switch string(b) {
	case "HAND":
		*o = OriginHand
	case "ANTECHAMBER":
		*o = OriginAntechamber
	default:
		return fmt.Errorf("unknown origin %q", b)
	}
	return nil
}

// NoIndex marks an unused index in a Target.
const NoIndex = -1

// Target is the payload an ability is executed with. Unused fields are
// zero Name or NoIndex.
type Target struct {
	Name  cards.Name
	Hand  int
	Court int
}

// NoTarget is the payload for abilities that take no choice.
var NoTarget = Target{Hand: NoIndex, Court: NoIndex}

// CourtEntry is one card in the court.
type CourtEntry struct {
	Card      cards.Card
	Disgraced bool
	PlayedBy  int
	Bonus     int
}

// Player holds one seat's zones and round status.
type Player struct {
	Name         string
	Hand         []cards.Card
	Antechamber  []cards.Card
	Army         []cards.Card
	Exhausted    []cards.Card
	Successor    *cards.Card
	Squire       *cards.Card
	Dungeon      *cards.Card
	Facet        cards.Facet
	KingFlipped  bool
	Points       int
	Signatures   []cards.Name
	PlayAnyValue bool
	Mustered     bool
	FacetChanged bool
}

// TriggerKind is what a pending reaction window guards.
type TriggerKind int

const (
	TriggerAbility TriggerKind = iota
	TriggerKingFlip
)

func (k TriggerKind) String() string {
	if k == TriggerKingFlip {
		return "KING_FLIP"
	}
	return "ABILITY"
}

func (k TriggerKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *TriggerKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ABILITY":
		*k = TriggerAbility
	case "KING_FLIP":
		*k = TriggerKingFlip
	default:
		return fmt.Errorf("unknown trigger kind %q", b)
	}
	return nil
}

// Candidate is one reaction the responder must accept or decline. Copies
// is set for copy-type reactions.
type Candidate struct {
	Card   cards.Name
	Copies cards.Name
}

// PendingTrigger is an ability or king flip held back while the responder
// answers candidates in order.
type PendingTrigger struct {
	Kind       TriggerKind
	Actor      int
	Source     cards.Name
	CourtIndex int
	Ability    int
	Target     Target
	Candidates []Candidate
	Next       int
}

// Responder is the seat that answers the pending trigger.
func (p *PendingTrigger) Responder() int {
	return 1 - p.Actor
}

// Current returns the candidate awaiting an answer.
func (p *PendingTrigger) Current() (Candidate, bool) {
	if p == nil || p.Next >= len(p.Candidates) {
		return Candidate{}, false
	}
	return p.Candidates[p.Next], true
}

// GameState is the authoritative state of one match.
type GameState struct {
	Players     [2]Player
	Current     int
	TrueKing    int
	FirstPlayer int
	Court       []CourtEntry
	Accused     *cards.Card
	Deck        []cards.Card
	Condemned   []cards.Card
	Phase       Phase
	Step        Step
	Pending     *PendingTrigger
	Round       int
	Winner      int
}

// New creates a state in SignatureSelection.
func New(names [2]string) *GameState {
	st := &GameState{Phase: PhaseSignatureSelection, FirstPlayer: NoIndex, Winner: NoIndex}
	for i := range st.Players {
		st.Players[i] = Player{Name: names[i], Facet: cards.FacetRegular}
	}
	return st
}

// Opponent returns the other seat.
func Opponent(seat int) int {
	return 1 - seat
}

// Player returns a pointer into the state for seat.
func (s *GameState) Player(seat int) *Player {
	return &s.Players[seat]
}

// Throne returns the last court entry.
func (s *GameState) Throne() (*CourtEntry, bool) {
	if len(s.Court) == 0 {
		return nil, false
	}
	return &s.Court[len(s.Court)-1], true
}

// ThroneIndex returns the index of the throne or NoIndex.
func (s *GameState) ThroneIndex() int {
	return len(s.Court) - 1
}

// Clone returns a deep copy.
func (s *GameState) Clone() *GameState {
	out := *s
	for i := range s.Players {
		out.Players[i] = s.Players[i].clone()
	}
	out.Court = append([]CourtEntry(nil), s.Court...)
	out.Accused = cloneCard(s.Accused)
	out.Deck = append([]cards.Card(nil), s.Deck...)
	out.Condemned = append([]cards.Card(nil), s.Condemned...)
	if s.Pending != nil {
		p := *s.Pending
		p.Candidates = append([]Candidate(nil), s.Pending.Candidates...)
		out.Pending = &p
	}
	return &out
}

func (p Player) clone() Player {
	out := p
	out.Hand = append([]cards.Card(nil), p.Hand...)
	out.Antechamber = append([]cards.Card(nil), p.Antechamber...)
	out.Army = append([]cards.Card(nil), p.Army...)
	out.Exhausted = append([]cards.Card(nil), p.Exhausted...)
	out.Successor = cloneCard(p.Successor)
	out.Squire = cloneCard(p.Squire)
	out.Dungeon = cloneCard(p.Dungeon)
	out.Signatures = append([]cards.Name(nil), p.Signatures...)
	return out
}

func cloneCard(c *cards.Card) *cards.Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
