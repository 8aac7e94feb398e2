// Package agg computes dataset-level aggregates over scored rows.
package agg

import (
	"math"
	"sort"

	"github.com/huangsam/churnlens/schema"
)

// EmptyDatasetError reports a batch with zero valid rows after per-row
// filtering. It is batch-fatal, distinct from a division-by-zero accident:
// the request itself is unusable and no KPI object is produced.
type EmptyDatasetError struct{}

func (e *EmptyDatasetError) Error() string {
	return "dataset has no valid rows to aggregate"
}

// Summarize computes the KPI summary in a single pass over all scored
// rows. Callers must pass the full scored set, never a limit-truncated
// one: the presentation limit caps the response, not the statistics.
func Summarize(rows []schema.ScoredRow) (schema.KPISummary, error) {
	if len(rows) == 0 {
		return schema.KPISummary{}, &EmptyDatasetError{}
	}

	churners := 0
	for i := range rows {
		if rows[i].Prediction == 1 {
			churners++
		}
	}

	return schema.KPISummary{
		TotalCustomers:     len(rows),
		PredictedChurners:  churners,
		PredictedChurnRate: float64(churners) / float64(len(rows)),
	}, nil
}

// GlobalImportance ranks every transformed feature by the magnitude of its
// model weight, descending. Ties break by feature position (first-seen
// wins), the same rule the contribution engine uses, so output is
// reproducible across runs. The ranking depends only on the pipeline and
// is identical for every request against the same model.
func GlobalImportance(weights []float64, names []string) []schema.FeatureImportance {
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		i, j := order[a], order[b]
		ai, aj := math.Abs(weights[i]), math.Abs(weights[j])
		if ai != aj {
			return ai > aj
		}
		return i < j
	})

	ranked := make([]schema.FeatureImportance, 0, len(order))
	for _, i := range order {
		ranked = append(ranked, schema.FeatureImportance{
			Feature:    names[i],
			Importance: math.Abs(weights[i]),
		})
	}
	return ranked
}
