package rules

import "fmt"

// ScoringConfig is the canonical round scoring formula:
// clamp(courtLength / CourtDivisor, MinRoundPoints, MaxRoundPoints).
type ScoringConfig struct {
	CourtDivisor   int
	MinRoundPoints int
	MaxRoundPoints int
	WinThreshold   int
}

// DefaultScoring awards 1 to 3 points per round and ends the game at 7.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		CourtDivisor:   4,
		MinRoundPoints: 1,
		MaxRoundPoints: 3,
		WinThreshold:   7,
	}
}

// Validate rejects configurations that could award zero or negative points.
func (c ScoringConfig) Validate() error {
	if c.CourtDivisor <= 0 {
		return fmt.Errorf("court divisor must be positive, got %d", c.CourtDivisor)
	}
	if c.MinRoundPoints < 1 {
		return fmt.Errorf("min round points must be at least 1, got %d", c.MinRoundPoints)
	}
	if c.MaxRoundPoints < c.MinRoundPoints {
		return fmt.Errorf("max round points %d below min %d", c.MaxRoundPoints, c.MinRoundPoints)
	}
	if c.WinThreshold < 1 {
		return fmt.Errorf("win threshold must be at least 1, got %d", c.WinThreshold)
	}
	return nil
}

// RoundPoints returns the points awarded to the round winner.
func (c ScoringConfig) RoundPoints(courtLength int) int {
	pts := courtLength / c.CourtDivisor
	if pts < c.MinRoundPoints {
		pts = c.MinRoundPoints
	}
	if pts > c.MaxRoundPoints {
		pts = c.MaxRoundPoints
	}
	return pts
}

// IsGameOver reports whether points reached the win threshold.
func (c ScoringConfig) IsGameOver(points int) bool {
	return points >= c.WinThreshold
}
