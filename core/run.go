// Package core implements the churn inference and explainability engine:
// feature transformation, linear scoring, contribution decomposition, risk
// tiering and batch orchestration. The engine is stateless per call aside
// from the shared read-only pipeline, so concurrent requests need no
// locking.
package core

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/huangsam/churnlens/core/agg"
	"github.com/huangsam/churnlens/schema"
)

// Default scoring parameters.
const (
	DefaultThreshold = 0.5
	DefaultTopK      = 3
	DefaultLimit     = 50
)

// Params holds the per-request scoring parameters.
type Params struct {
	Threshold float64               // Decision threshold in [0,1]
	TopK      int                   // Max contribution drivers per row, >= 0
	Limit     int                   // Max predictions in the response, >= 1
	Workers   int                   // Worker pool size; <= 0 means GOMAXPROCS
	Tiers     schema.TierBoundaries // Risk tier cut points
}

// DefaultParams returns Params with the documented defaults.
func DefaultParams() Params {
	return Params{
		Threshold: DefaultThreshold,
		TopK:      DefaultTopK,
		Limit:     DefaultLimit,
		Workers:   runtime.GOMAXPROCS(0),
		Tiers:     schema.DefaultTierBoundaries(),
	}
}

// Validate checks every parameter domain. A violation is a ConfigError and
// aborts the whole request before any row is scored.
func (p Params) Validate() error {
	if p.Threshold < 0 || p.Threshold > 1 {
		return &ConfigError{Param: "threshold", Reason: fmt.Sprintf("%v is outside [0,1]", p.Threshold)}
	}
	if p.TopK < 0 {
		return &ConfigError{Param: "top_k", Reason: fmt.Sprintf("%d is negative", p.TopK)}
	}
	if p.Limit < 1 {
		return &ConfigError{Param: "limit", Reason: fmt.Sprintf("%d is below 1", p.Limit)}
	}
	if p.Tiers.LowMax < 0 || p.Tiers.HighMin > 1 || p.Tiers.LowMax > p.Tiers.HighMin {
		return &ConfigError{Param: "tiers", Reason: fmt.Sprintf("boundaries %v/%v are not ordered within [0,1]", p.Tiers.LowMax, p.Tiers.HighMin)}
	}
	return nil
}

// rowOutcome holds the result of scoring one row. Exactly one of pred/err
// is meaningful, selected by ok.
type rowOutcome struct {
	pred   schema.Prediction
	scored schema.ScoredRow
	err    error
	ok     bool
}

// Run scores a batch of raw rows against the fitted pipeline and assembles
// the final structured result. ids optionally carries a customer ID per
// row (empty string when absent) and must either be nil or match rows in
// length.
//
// Row-level failures do not abort the batch: a failing row is excluded
// from the scored output and recorded in RowErrors while the rest of the
// batch continues. KPIs and global importance are computed over the FULL
// valid set; only afterwards is the prediction list truncated to
// params.Limit, preserving original row order. Limiting output must never
// bias the aggregate statistics.
func Run(rows []schema.RawRow, ids []string, pipe *schema.FittedPipeline, params Params) (*schema.PredictionResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if ids != nil && len(ids) != len(rows) {
		return nil, &ConfigError{Param: "ids", Reason: fmt.Sprintf("%d ids for %d rows", len(ids), len(rows))}
	}

	outcomes := scoreAll(rows, ids, pipe, params)

	// Collect valid rows and failures in original row order.
	predictions := make([]schema.Prediction, 0, len(rows))
	scored := make([]schema.ScoredRow, 0, len(rows))
	var rowErrors []schema.RowError
	for i := range outcomes {
		if outcomes[i].ok {
			predictions = append(predictions, outcomes[i].pred)
			scored = append(scored, outcomes[i].scored)
		} else {
			rowErrors = append(rowErrors, schema.RowError{
				RowIndex: i,
				Reason:   outcomes[i].err.Error(),
			})
		}
	}

	// Aggregate over the full valid set before any truncation.
	kpis, err := agg.Summarize(scored)
	if err != nil {
		return nil, err
	}
	importance := agg.GlobalImportance(pipe.Weights, pipe.FeatureNames)

	if len(predictions) > params.Limit {
		predictions = predictions[:params.Limit]
	}

	return &schema.PredictionResult{
		Predictions:      predictions,
		KPIs:             kpis,
		GlobalImportance: importance,
		RowErrors:        rowErrors,
	}, nil
}

// scoreAll processes all rows in parallel using a worker pool. Row
// processing is embarrassingly parallel, so this is purely a throughput
// optimization: each goroutine writes to a unique index of outcomes, which
// is safe without locks, and sequential processing would be semantically
// identical.
func scoreAll(rows []schema.RawRow, ids []string, pipe *schema.FittedPipeline, params Params) []rowOutcome {
	workers := params.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(rows) {
		workers = len(rows)
	}

	outcomes := make([]rowOutcome, len(rows))
	if len(rows) == 0 {
		return outcomes
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				id := ""
				if ids != nil {
					id = ids[idx]
				}
				outcomes[idx] = scoreRow(rows[idx], idx, id, pipe, params)
			}
		}()
	}
	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// scoreRow runs the full per-row pipeline: transform, score, tier, explain.
func scoreRow(row schema.RawRow, idx int, id string, pipe *schema.FittedPipeline, params Params) rowOutcome {
	vector, err := Transform(row, pipe)
	if err != nil {
		return rowOutcome{err: err}
	}

	raw := RawScore(vector, pipe.Weights, pipe.Bias)
	probability := Probability(raw)
	prediction := Predict(probability, params.Threshold)

	return rowOutcome{
		ok: true,
		scored: schema.ScoredRow{
			RawScore:    raw,
			Probability: probability,
			Prediction:  prediction,
		},
		pred: schema.Prediction{
			CustomerID:      id,
			RowIndex:        idx,
			ChurnProb:       probability,
			ChurnPrediction: prediction,
			RiskTier:        Tier(probability, params.Tiers),
			TopDrivers:      Explain(vector, pipe.Weights, pipe.FeatureNames, params.TopK),
		},
	}
}
