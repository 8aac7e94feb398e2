package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRawScore tests the affine score computation.
func TestRawScore(t *testing.T) {
	tests := []struct {
		name     string
		vector   []float64
		weights  []float64
		bias     float64
		expected float64
	}{
		{
			name:     "empty vector is just bias",
			vector:   []float64{},
			weights:  []float64{},
			bias:     0.25,
			expected: 0.25,
		},
		{
			name:     "known dot product",
			vector:   []float64{1.0, 0.5, 2.0},
			weights:  []float64{-0.5, -0.8, 0.6},
			bias:     0.1,
			expected: 0.3,
		},
		{
			name:     "negative bias",
			vector:   []float64{2.0},
			weights:  []float64{1.5},
			bias:     -1.0,
			expected: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RawScore(tt.vector, tt.weights, tt.bias), 1e-9)
		})
	}
}

// TestProbability tests the logistic link, including numeric stability at
// extreme scores.
func TestProbability(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		expected float64
		delta    float64
	}{
		{name: "zero score is even odds", raw: 0, expected: 0.5, delta: 1e-12},
		{name: "known positive score", raw: 0.3, expected: 0.5744, delta: 1e-4},
		{name: "known negative score", raw: -0.3, expected: 0.4256, delta: 1e-4},
		{name: "very positive saturates to one", raw: 1000, expected: 1.0, delta: 1e-12},
		{name: "very negative saturates to zero", raw: -1000, expected: 0.0, delta: 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Probability(tt.raw)
			assert.InDelta(t, tt.expected, p, tt.delta)
			assert.False(t, math.IsNaN(p))
			assert.False(t, math.IsInf(p, 0))
		})
	}
}

// TestProbabilitySymmetry checks sigmoid(-x) == 1 - sigmoid(x), which the
// two-branch stable formulation must preserve.
func TestProbabilitySymmetry(t *testing.T) {
	for _, raw := range []float64{0, 0.1, 1, 5, 20, 100} {
		assert.InDelta(t, 1.0-Probability(raw), Probability(-raw), 1e-12)
	}
}

// TestPredict tests the threshold comparison, including the inclusive edge.
func TestPredict(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		threshold   float64
		expected    int
	}{
		{name: "above threshold", probability: 0.6, threshold: 0.5, expected: 1},
		{name: "below threshold", probability: 0.4, threshold: 0.5, expected: 0},
		{name: "exactly at threshold is positive", probability: 0.5, threshold: 0.5, expected: 1},
		{name: "zero threshold flags everything", probability: 0.0, threshold: 0.0, expected: 1},
		{name: "threshold one only flags certainty", probability: 0.999, threshold: 1.0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Predict(tt.probability, tt.threshold))
		})
	}
}
