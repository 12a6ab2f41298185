package rules

// Placement says where a card is being evaluated.
type Placement int

const (
	// PlacementHand evaluates a card for hand-play legality.
	PlacementHand Placement = iota
	// PlacementCourt evaluates a card already played to the court.
	PlacementCourt
)

func (p Placement) String() string {
	if p == PlacementCourt {
		return "COURT"
	}
	return "HAND"
}

// MinValue is the floor of every effective value.
const MinValue = 1

// ValueContext carries everything EffectiveValue may depend on. It is
// built fresh for each evaluation.
type ValueContext struct {
	Base             int
	Placement        Placement
	FacetActive      bool
	FacetDelta       int
	CourtBonusActive bool
	CourtBonus       int
	Disgraced        bool
}

// EffectiveValue computes a card's value. Disgrace overrides everything.
func EffectiveValue(ctx ValueContext) int {
	if ctx.Disgraced {
		return MinValue
	}
	v := ctx.Base
	if ctx.FacetActive {
		v += ctx.FacetDelta
	}
	if ctx.CourtBonusActive && ctx.Placement == PlacementCourt {
		v += ctx.CourtBonus
	}
	if v < MinValue {
		return MinValue
	}
	return v
}

// CanPlayOver reports whether a hand card of value v may be played onto a
// throne of value throne. An empty court has throne value 0.
func CanPlayOver(v, throne int, anyValue bool) bool {
	return anyValue || v >= throne
}
