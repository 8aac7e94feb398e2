package core

import (
	"math"
	"testing"
)

// FuzzProbability fuzzes the logistic link with arbitrary raw scores.
// The output must always be a valid probability, never NaN or Inf.
func FuzzProbability(f *testing.F) {
	seeds := []float64{0, 0.3, -0.3, 1e6, -1e6, math.MaxFloat64, -math.MaxFloat64}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw float64) {
		if math.IsNaN(raw) {
			return
		}
		p := Probability(raw)
		if math.IsNaN(p) || math.IsInf(p, 0) {
			t.Fatalf("Probability(%v) = %v, not finite", raw, p)
		}
		if p < 0 || p > 1 {
			t.Fatalf("Probability(%v) = %v, outside [0,1]", raw, p)
		}
	})
}

// FuzzPredict fuzzes the threshold comparison; prediction must always be
// binary and consistent with the comparison.
func FuzzPredict(f *testing.F) {
	f.Add(0.5, 0.5)
	f.Add(0.0, 1.0)
	f.Add(0.9, 0.1)

	f.Fuzz(func(t *testing.T, probability, threshold float64) {
		pred := Predict(probability, threshold)
		if pred != 0 && pred != 1 {
			t.Fatalf("Predict(%v, %v) = %d, not binary", probability, threshold, pred)
		}
		if (probability >= threshold) != (pred == 1) {
			t.Fatalf("Predict(%v, %v) = %d, inconsistent with comparison", probability, threshold, pred)
		}
	})
}
