package agg

import (
	"testing"

	"github.com/huangsam/churnlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSummarize tests the single-pass KPI computation.
func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		rows     []schema.ScoredRow
		expected schema.KPISummary
	}{
		{
			name: "mixed predictions",
			rows: []schema.ScoredRow{
				{Prediction: 1}, {Prediction: 0}, {Prediction: 1}, {Prediction: 0},
			},
			expected: schema.KPISummary{TotalCustomers: 4, PredictedChurners: 2, PredictedChurnRate: 0.5},
		},
		{
			name:     "no churners",
			rows:     []schema.ScoredRow{{Prediction: 0}, {Prediction: 0}},
			expected: schema.KPISummary{TotalCustomers: 2, PredictedChurners: 0, PredictedChurnRate: 0.0},
		},
		{
			name:     "all churners",
			rows:     []schema.ScoredRow{{Prediction: 1}},
			expected: schema.KPISummary{TotalCustomers: 1, PredictedChurners: 1, PredictedChurnRate: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpis, err := Summarize(tt.rows)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kpis)
		})
	}
}

// TestSummarizeEmpty verifies an empty set fails with EmptyDatasetError
// rather than dividing by zero.
func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	var emptyErr *EmptyDatasetError
	require.ErrorAs(t, err, &emptyErr)

	_, err = Summarize([]schema.ScoredRow{})
	require.ErrorAs(t, err, &emptyErr)
}

// TestGlobalImportance tests the weight-magnitude ranking and its
// positional tie-break.
func TestGlobalImportance(t *testing.T) {
	names := []string{"tenure", "contract", "charges", "paperless"}
	weights := []float64{-0.8, 0.3, 0.6, -0.3}

	ranked := GlobalImportance(weights, names)
	require.Len(t, ranked, 4)

	assert.Equal(t, "tenure", ranked[0].Feature)
	assert.InDelta(t, 0.8, ranked[0].Importance, 1e-9)
	assert.Equal(t, "charges", ranked[1].Feature)

	// contract and paperless tie at 0.3; contract appears first in the
	// pipeline ordering so it wins.
	assert.Equal(t, "contract", ranked[2].Feature)
	assert.Equal(t, "paperless", ranked[3].Feature)
}

// TestGlobalImportanceStable re-runs the ranking and expects identical
// output every time.
func TestGlobalImportanceStable(t *testing.T) {
	names := []string{"a", "b", "c"}
	weights := []float64{0.5, -0.5, 0.5}

	first := GlobalImportance(weights, names)
	for range 10 {
		assert.Equal(t, first, GlobalImportance(weights, names))
	}
}
