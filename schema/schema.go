// Package schema has configs, models and shared types for all parts of churnlens.
package schema

import "time"

// TransformRule describes how one raw input column is converted into
// transformed features. The rule is fitted at training time and never
// changes at inference time.
type TransformRule struct {
	Column     string   `json:"column"`               // Raw input column name
	Kind       RuleKind `json:"kind"`                 // categorical or numeric
	Categories []string `json:"categories,omitempty"` // Known category values (categorical only)
	Offset     float64  `json:"offset,omitempty"`     // Centering offset; holds the training-time impute value (numeric only)
	Scale      float64  `json:"scale,omitempty"`      // Scaling divisor (numeric only)
}

// Width returns the number of transformed features this rule produces.
func (r *TransformRule) Width() int {
	if r.Kind == CategoricalRule {
		return len(r.Categories)
	}
	return 1
}

// FittedPipeline is the immutable model artifact: transformation rules plus
// the linear classifier coefficients. It is loaded once at process start and
// shared read-only across all requests, so no locking is needed around it.
type FittedPipeline struct {
	ModelVersion string          `json:"model_version"`
	TrainedAt    time.Time       `json:"trained_at"`
	Rules        []TransformRule `json:"rules"`
	FeatureNames []string        `json:"feature_names"` // Post-transform feature ordering, fixed length N
	Weights      []float64       `json:"weights"`       // Length-N coefficient vector
	Bias         float64         `json:"bias"`
}

// FeatureCount returns N, the width of the transformed feature vector.
func (p *FittedPipeline) FeatureCount() int {
	return len(p.FeatureNames)
}

// RawRow maps original column names to raw cell values as read from the
// input file. A missing key means the column was absent from the dataset.
type RawRow map[string]string

// ScoredRow holds the scoring outputs for a single valid row.
type ScoredRow struct {
	RawScore    float64 `json:"raw_score"`
	Probability float64 `json:"probability"`
	Prediction  int     `json:"prediction"` // 0 or 1
}

// Contribution is the signed share of one transformed feature in a row's
// raw score. Summed over all features it reproduces the raw score exactly,
// which only holds because the scorer is affine in the transformed vector.
type Contribution struct {
	Feature   string    `json:"feature"`
	Signed    float64   `json:"-"` // Unrounded signed value, kept for aggregation and testing
	Direction Direction `json:"direction"`
	Impact    float64   `json:"impact"` // Rounded absolute signed value for display stability
}

// Prediction is the per-customer entry in the final result.
type Prediction struct {
	CustomerID      string         `json:"customerID,omitempty"`
	RowIndex        int            `json:"row_index"`
	ChurnProb       float64        `json:"churn_probability"`
	ChurnPrediction int            `json:"churn_prediction"`
	RiskTier        RiskTier       `json:"risk_tier"`
	TopDrivers      []Contribution `json:"top_drivers"`
}

// KPISummary holds the dataset-level metrics, always computed over the full
// scored set regardless of the presentation limit.
type KPISummary struct {
	TotalCustomers     int     `json:"total_customers"`
	PredictedChurners  int     `json:"predicted_churners"`
	PredictedChurnRate float64 `json:"predicted_churn_rate"`
}

// FeatureImportance pairs a transformed feature with the magnitude of its
// model weight. Importance is row-independent and identical for every
// request against the same pipeline.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// RowError records a row that failed transformation and was excluded from
// the scored output.
type RowError struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
}

// PredictionResult is the single structured result object exposed to
// collaborators (CLI writers, MCP tools).
type PredictionResult struct {
	Predictions      []Prediction        `json:"predictions"`
	KPIs             KPISummary          `json:"kpis"`
	GlobalImportance []FeatureImportance `json:"global_importance"`
	RowErrors        []RowError          `json:"row_errors"`
}
