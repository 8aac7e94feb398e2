package core

import (
	"math"
	"sort"

	"github.com/huangsam/churnlens/schema"
)

// ImpactPrecision is the number of decimal places reported impacts are
// rounded to, for display stability across runs.
const ImpactPrecision = 4

// Explain decomposes a row's score into per-feature signed contributions
// and returns the top k by absolute magnitude. The decomposition is exact
// only because the scorer is affine in the transformed vector; a non-linear
// model would invalidate this algorithm entirely, not merely degrade it.
//
// Ordering is deterministic: descending by absolute contribution, with ties
// broken by the feature's position in the pipeline ordering (first-seen
// wins). A k of zero yields an empty slice and a k beyond the feature count
// returns all features; neither is an error.
func Explain(vector, weights []float64, names []string, k int) []schema.Contribution {
	n := len(names)
	if k > n {
		k = n
	}
	if k <= 0 {
		return []schema.Contribution{}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	signed := make([]float64, n)
	for i := range signed {
		signed[i] = vector[i] * weights[i]
	}

	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		ai, aj := math.Abs(signed[i]), math.Abs(signed[j])
		if ai != aj {
			return ai > aj
		}
		return i < j
	})

	drivers := make([]schema.Contribution, 0, k)
	for _, i := range order[:k] {
		drivers = append(drivers, schema.Contribution{
			Feature:   names[i],
			Signed:    signed[i],
			Direction: contributionDirection(signed[i]),
			Impact:    roundImpact(math.Abs(signed[i])),
		})
	}
	return drivers
}

// Contributions returns the full untruncated decomposition in pipeline
// order. The sum over all entries equals the raw score minus the bias.
func Contributions(vector, weights []float64, names []string) []schema.Contribution {
	out := make([]schema.Contribution, len(names))
	for i := range names {
		s := vector[i] * weights[i]
		out[i] = schema.Contribution{
			Feature:   names[i],
			Signed:    s,
			Direction: contributionDirection(s),
			Impact:    roundImpact(math.Abs(s)),
		}
	}
	return out
}

// contributionDirection classifies a signed contribution. Exactly zero is
// decreases_churn by convention; see schema.DecreasesChurn.
func contributionDirection(signed float64) schema.Direction {
	if signed > 0 {
		return schema.IncreasesChurn
	}
	return schema.DecreasesChurn
}

// roundImpact rounds to ImpactPrecision decimal places.
func roundImpact(v float64) float64 {
	pow := math.Pow(10, ImpactPrecision)
	return math.Round(v*pow) / pow
}
