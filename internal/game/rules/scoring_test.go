package rules

import "testing"

func TestRoundPointsClamp(t *testing.T) {
	c := DefaultScoring()
	cases := map[int]int{
		0:  1,
		3:  1,
		4:  1,
		7:  1,
		8:  2,
		11: 2,
		12: 3,
		20: 3,
	}
	for court, want := range cases {
		if got := c.RoundPoints(court); got != want {
			t.Errorf("court %d: expected %d points, got %d", court, want, got)
		}
	}
}

func TestRoundPointsNeverZero(t *testing.T) {
	c := DefaultScoring()
	for court := 0; court < 40; court++ {
		if c.RoundPoints(court) < 1 {
			t.Fatalf("court %d scored zero", court)
		}
	}
}

func TestIsGameOver(t *testing.T) {
	c := DefaultScoring()
	if c.IsGameOver(6) {
		t.Fatal("6 points must not end the game")
	}
	if !c.IsGameOver(7) || !c.IsGameOver(9) {
		t.Fatal("7 or more points must end the game")
	}
}

func TestScoringValidate(t *testing.T) {
	if err := DefaultScoring().Validate(); err != nil {
		t.Fatalf("default scoring rejected: %v", err)
	}
	bad := []ScoringConfig{
		{CourtDivisor: 0, MinRoundPoints: 1, MaxRoundPoints: 3, WinThreshold: 7},
		{CourtDivisor: 4, MinRoundPoints: 0, MaxRoundPoints: 3, WinThreshold: 7},
		{CourtDivisor: 4, MinRoundPoints: 3, MaxRoundPoints: 2, WinThreshold: 7},
		{CourtDivisor: 4, MinRoundPoints: 1, MaxRoundPoints: 3, WinThreshold: 0},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected error for %+v", i, c)
		}
	}
}
