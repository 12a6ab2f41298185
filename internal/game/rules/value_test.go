package rules

import "testing"

func TestEffectiveValue(t *testing.T) {
	cases := []struct {
		name string
		ctx  ValueContext
		want int
	}{
		{"base", ValueContext{Base: 5}, 5},
		{"facet active", ValueContext{Base: 5, FacetActive: true, FacetDelta: -1}, 4},
		{"facet inactive", ValueContext{Base: 5, FacetDelta: -1}, 5},
		{"court bonus in court", ValueContext{Base: 3, Placement: PlacementCourt, CourtBonusActive: true, CourtBonus: 2}, 5},
		{"court bonus in hand", ValueContext{Base: 3, Placement: PlacementHand, CourtBonusActive: true, CourtBonus: 2}, 3},
		{"floor", ValueContext{Base: 1, FacetActive: true, FacetDelta: -3}, MinValue},
		{"disgrace wins", ValueContext{Base: 9, Placement: PlacementCourt, CourtBonusActive: true, CourtBonus: 2, Disgraced: true}, MinValue},
	}
	for _, tc := range cases {
		if got := EffectiveValue(tc.ctx); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestCanPlayOver(t *testing.T) {
	if !CanPlayOver(1, 0, false) {
		t.Fatal("any card may open an empty court")
	}
	if !CanPlayOver(4, 4, false) {
		t.Fatal("equal value must be playable")
	}
	if CanPlayOver(3, 4, false) {
		t.Fatal("lower value must not be playable")
	}
	if !CanPlayOver(1, 9, true) {
		t.Fatal("play-any-value must ignore the throne")
	}
}

func TestPlacementString(t *testing.T) {
	if PlacementHand.String() != "HAND" || PlacementCourt.String() != "COURT" {
		t.Fatalf("unexpected placement names %s %s", PlacementHand, PlacementCourt)
	}
}
