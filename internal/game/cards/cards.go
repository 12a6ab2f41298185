package cards

import (
	"fmt"
	"sort"
	"strings"
)

// Name identifies a card from the closed set known to the engine.
type Name string

// Base deck names.
const (
	Fool       Name = "Fool"
	Assassin   Name = "Assassin"
	Elder      Name = "Elder"
	Zealot     Name = "Zealot"
	Inquisitor Name = "Inquisitor"
	Soldier    Name = "Soldier"
	Judge      Name = "Judge"
	Oathbound  Name = "Oathbound"
	Immortal   Name = "Immortal"
	Warlord    Name = "Warlord"
	Mystic     Name = "Mystic"
	Warden     Name = "Warden"
	Sentry     Name = "Sentry"
	KingsHand  Name = "King's Hand"
	Princess   Name = "Princess"
	Queen      Name = "Queen"
)

// Signature pool names.
const (
	Aegis        Name = "Aegis"
	Ancestor     Name = "Ancestor"
	Arbiter      Name = "Arbiter"
	Bard         Name = "Bard"
	Conspiracist Name = "Conspiracist"
	Exile        Name = "Exile"
	Flagbearer   Name = "Flagbearer"
	Herald       Name = "Herald"
	Stranger     Name = "Stranger"
)

// Flavor is the card-back colour. Base deck cards are Court; signature
// cards carry the colour of the army they were mustered into.
type Flavor string

const (
	FlavorCourt   Flavor = "Court"
	FlavorCrimson Flavor = "Crimson"
	FlavorAzure   Flavor = "Azure"
)

// ArmyFlavor returns the flavor used for the signature cards of a seat.
func ArmyFlavor(seat int) Flavor {
	if seat == 0 {
		return FlavorCrimson
	}
	return FlavorAzure
}

// ArmyOwner reports which seat a flavored signature card belongs to.
func ArmyOwner(f Flavor) (int, bool) {
	switch f {
	case FlavorCrimson:
		return 0, true
	case FlavorAzure:
		return 1, true
	default:
		return -1, false
	}
}

// Card is an immutable value object.
type Card struct {
	Name   Name
	Flavor Flavor
}

// New returns a base deck card.
func New(name Name) Card {
	return Card{Name: name, Flavor: FlavorCourt}
}

// Signature returns a signature card mustered by seat.
func Signature(name Name, seat int) Card {
	return Card{Name: name, Flavor: ArmyFlavor(seat)}
}

func (c Card) String() string {
	if c.Flavor == FlavorCourt || c.Flavor == "" {
		return string(c.Name)
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Flavor)
}

// IsSignature reports whether the card belongs to an army.
func (c Card) IsSignature() bool {
	_, ok := ArmyOwner(c.Flavor)
	return ok
}

// Facet is the per-player king variant.
type Facet int

const (
	FacetRegular Facet = iota
	FacetCharismaticLeader
	FacetMasterTactician
)

var facetNames = map[Facet]string{
	FacetRegular:           "REGULAR",
	FacetCharismaticLeader: "CHARISMATIC_LEADER",
	FacetMasterTactician:   "MASTER_TACTICIAN",
}

func (f Facet) String() string {
	if name, ok := facetNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FACET_%d", int(f))
}

func (f Facet) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Facet) UnmarshalText(b []byte) error {
	parsed, err := ParseFacet(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFacet resolves the String form of a facet.
func ParseFacet(s string) (Facet, error) {
	for f, name := range facetNames {
		if strings.EqualFold(name, s) {
			return f, nil
		}
	}
	return FacetRegular, fmt.Errorf("unknown king facet %q", s)
}

// AllFacets lists facets in declaration order.
var AllFacets = []Facet{FacetRegular, FacetCharismaticLeader, FacetMasterTactician}

// Multiset counts cards by identity.
type Multiset map[Card]int

// Add records one copy of each card.
func (m Multiset) Add(cs ...Card) {
	for _, c := range cs {
		m[c]++
	}
}

// Equal reports whether both multisets hold the same copies.
func (m Multiset) Equal(other Multiset) bool {
	if len(m) != len(other) {
		return false
	}
	for c, n := range m {
		if other[c] != n {
			return false
		}
	}
	return true
}

// Diff describes how m differs from want, sorted for stable output.
func (m Multiset) Diff(want Multiset) string {
	var parts []string
	seen := make(map[Card]bool)
	for c, n := range want {
		seen[c] = true
		if m[c] != n {
			parts = append(parts, fmt.Sprintf("%s: have %d want %d", c, m[c], n))
		}
	}
	for c, n := range m {
		if !seen[c] {
			parts = append(parts, fmt.Sprintf("%s: have %d want 0", c, n))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// Total returns the number of copies held.
func (m Multiset) Total() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}
