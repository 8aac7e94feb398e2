package core

import "math"

// RawScore computes the affine score: the dot product of the transformed
// vector and the model weights, plus the bias.
func RawScore(vector, weights []float64, bias float64) float64 {
	score := bias
	for i := range vector {
		score += vector[i] * weights[i]
	}
	return score
}

// Probability applies the logistic link to a raw score. The two-branch
// formulation keeps exp bounded so extreme scores saturate to 0 or 1
// instead of overflowing.
func Probability(raw float64) float64 {
	if raw >= 0 {
		return 1.0 / (1.0 + math.Exp(-raw))
	}
	e := math.Exp(raw)
	return e / (1.0 + e)
}

// Predict converts a probability to a binary prediction via a pure
// threshold comparison. The threshold is a configured parameter, validated
// upstream by Params.Validate.
func Predict(probability, threshold float64) int {
	if probability >= threshold {
		return 1
	}
	return 0
}
