package game

import (
	"fmt"
	"strings"

	"github.com/cognivore/imposterzero/internal/game/cards"
	"github.com/cognivore/imposterzero/internal/game/state"
)

// SignatureCount is how many signature cards each player picks.
const SignatureCount = 3

// NoAbility marks a PlayCard that does not use a MAY ability.
const NoAbility = -1

// Action is a player-initiated move. Every implementation is a comparable
// value so legality is checked by equality against the legal list.
type Action interface {
	fmt.Stringer
	isAction()
}

// ChooseSignatures picks the signature cards of the acting player.
type ChooseSignatures struct {
	Names [SignatureCount]cards.Name
}

// ChooseFirstPlayer is submitted by the true king at the start of a round.
type ChooseFirstPlayer struct {
	Player int
}

// Recruit condemns a hand card and takes an army card into hand.
type Recruit struct {
	Hand int
	Army int
}

// Recommission condemns a hand card and returns an exhausted card to the army.
type Recommission struct {
	Exhausted int
	Hand      int
}

// ChangeKingFacet switches the acting player's king facet.
type ChangeKingFacet struct {
	Facet cards.Facet
}

// EndMuster finishes the acting player's muster.
type EndMuster struct{}

// ChooseSuccessor sets aside a hand card as successor.
type ChooseSuccessor struct {
	Hand int
}

// ChooseSquire sets aside a hand card as squire.
type ChooseSquire struct {
	Hand int
}

// PlayCard puts a card on the court, optionally with one of its MAY
// abilities and a target.
type PlayCard struct {
	From    state.Origin
	Index   int
	Ability int
	Target  state.Target
}

// FlipKing claims the successor.
type FlipKing struct{}

// React answers the current reaction prompt with a card from hand.
type React struct {
	Card cards.Name
}

// Decline passes on the current reaction prompt.
type Decline struct{}

func (ChooseSignatures) isAction()  {}
func (ChooseFirstPlayer) isAction() {}
func (Recruit) isAction()           {}
func (Recommission) isAction()      {}
func (ChangeKingFacet) isAction()   {}
func (EndMuster) isAction()         {}
func (ChooseSuccessor) isAction()   {}
func (ChooseSquire) isAction()      {}
func (PlayCard) isAction()          {}
func (FlipKing) isAction()          {}
func (React) isAction()             {}
func (Decline) isAction()           {}

func (a ChooseSignatures) String() string {
	names := make([]string, len(a.Names))
	for i, n := range a.Names {
		names[i] = string(n)
	}
	return "ChooseSignatures(" + strings.Join(names, ", ") + ")"
}

func (a ChooseFirstPlayer) String() string { return fmt.Sprintf("ChooseFirstPlayer(%d)", a.Player) }
func (a Recruit) String() string           { return fmt.Sprintf("Recruit(hand=%d, army=%d)", a.Hand, a.Army) }
func (a Recommission) String() string {
	return fmt.Sprintf("Recommission(exhausted=%d, hand=%d)", a.Exhausted, a.Hand)
}
func (a ChangeKingFacet) String() string { return fmt.Sprintf("ChangeKingFacet(%s)", a.Facet) }
func (EndMuster) String() string         { return "EndMuster" }
func (a ChooseSuccessor) String() string { return fmt.Sprintf("ChooseSuccessor(%d)", a.Hand) }
func (a ChooseSquire) String() string    { return fmt.Sprintf("ChooseSquire(%d)", a.Hand) }

func (a PlayCard) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PlayCard(%s %d", strings.ToLower(a.From.String()), a.Index)
	if a.Ability != NoAbility {
		fmt.Fprintf(&b, ", ability=%d", a.Ability)
		if a.Target.Name != "" {
			fmt.Fprintf(&b, ", name=%s", a.Target.Name)
		}
		if a.Target.Hand != state.NoIndex {
			fmt.Fprintf(&b, ", hand=%d", a.Target.Hand)
		}
		if a.Target.Court != state.NoIndex {
			fmt.Fprintf(&b, ", court=%d", a.Target.Court)
		}
	}
	b.WriteString(")")
	return b.String()
}

func (FlipKing) String() string  { return "FlipKing" }
func (a React) String() string   { return fmt.Sprintf("React(%s)", a.Card) }
func (Decline) String() string   { return "Decline" }

// gob refuses structs without exported fields, so the payload-free
// actions encode as a single marker byte inside a replay.
var emptyPayload = []byte{0}

func (EndMuster) GobEncode() ([]byte, error) { return emptyPayload, nil }
func (FlipKing) GobEncode() ([]byte, error)  { return emptyPayload, nil }
func (Decline) GobEncode() ([]byte, error)   { return emptyPayload, nil }
func (*EndMuster) GobDecode([]byte) error    { return nil }
func (*FlipKing) GobDecode([]byte) error     { return nil }
func (*Decline) GobDecode([]byte) error      { return nil }

// plainPlay is a PlayCard without an ability.
func plainPlay(from state.Origin, idx int) PlayCard {
	return PlayCard{From: from, Index: idx, Ability: NoAbility, Target: state.NoTarget}
}

// containsAction reports whether a is present verbatim in legal.
func containsAction(legal []Action, a Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}
