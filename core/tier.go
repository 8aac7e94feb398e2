package core

import "github.com/huangsam/churnlens/schema"

// Tier maps a probability to its ordinal risk tier. It is a pure function
// of probability and the configured boundaries; the tier is never stored
// independently and is always recomputed from probability, so the two can
// never drift apart.
//
// Boundaries are inclusive on the lower edge: a probability exactly at
// LowMax is moderate and one exactly at HighMin is high.
func Tier(probability float64, bounds schema.TierBoundaries) schema.RiskTier {
	switch {
	case probability < bounds.LowMax:
		return schema.LowTier
	case probability < bounds.HighMin:
		return schema.ModerateTier
	default:
		return schema.HighTier
	}
}
