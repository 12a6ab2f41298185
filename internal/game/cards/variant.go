package cards

// DeckEntry is a name and its copy count in a base deck.
type DeckEntry struct {
	Name  Name
	Count int
}

// Variant fixes the card multiset a match is played with.
type Variant struct {
	Name          string
	Deck          []DeckEntry
	SignaturePool []Name
}

// Standard is the two-player variant.
func Standard() Variant {
	return Variant{
		Name: "standard",
		Deck: []DeckEntry{
			{Fool, 1},
			{Assassin, 1},
			{Elder, 2},
			{Zealot, 1},
			{Inquisitor, 2},
			{Soldier, 2},
			{Judge, 2},
			{Oathbound, 2},
			{Immortal, 1},
			{Warlord, 1},
			{Mystic, 1},
			{Warden, 1},
			{Sentry, 1},
			{KingsHand, 1},
			{Princess, 1},
			{Queen, 1},
		},
		SignaturePool: []Name{
			Aegis, Ancestor, Arbiter, Bard, Conspiracist,
			Exile, Flagbearer, Herald, Stranger,
		},
	}
}

// DeckCards expands the base deck in declaration order.
func (v Variant) DeckCards() []Card {
	out := make([]Card, 0, v.DeckSize())
	for _, e := range v.Deck {
		for i := 0; i < e.Count; i++ {
			out = append(out, New(e.Name))
		}
	}
	return out
}

// DeckSize returns the number of base deck cards.
func (v Variant) DeckSize() int {
	n := 0
	for _, e := range v.Deck {
		n += e.Count
	}
	return n
}

// Names is the public universe of names: deck order, then the pool.
func (v Variant) Names() []Name {
	out := make([]Name, 0, len(v.Deck)+len(v.SignaturePool))
	for _, e := range v.Deck {
		out = append(out, e.Name)
	}
	return append(out, v.SignaturePool...)
}

// InPool reports whether name may be picked as a signature card.
func (v Variant) InPool(name Name) bool {
	for _, n := range v.SignaturePool {
		if n == name {
			return true
		}
	}
	return false
}

// Expected returns the full multiset for a match given each seat's picks.
func (v Variant) Expected(picks [2][]Name) Multiset {
	m := make(Multiset)
	m.Add(v.DeckCards()...)
	for seat, names := range picks {
		for _, n := range names {
			m.Add(Signature(n, seat))
		}
	}
	return m
}
