package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/churnlens/internal/contract"
	"github.com/huangsam/churnlens/schema"
)

// WriteModelSummary outputs pipeline artifact metadata, dispatching based on the output format configured.
func WriteModelSummary(pipe *schema.FittedPipeline, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, modelSummary(pipe))
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelText(pipe, w)
		}, "Wrote summary")
	}
}

// ModelSummary is the artifact metadata exposed to operators.
type ModelSummary struct {
	ModelVersion string `json:"model_version"`
	TrainedAt    string `json:"trained_at"`
	FeatureCount int    `json:"feature_count"`
	RuleCount    int    `json:"rule_count"`
	Categorical  int    `json:"categorical_rules"`
	Numeric      int    `json:"numeric_rules"`
}

// modelSummary derives the displayed counts from the pipeline.
func modelSummary(pipe *schema.FittedPipeline) ModelSummary {
	summary := ModelSummary{
		ModelVersion: pipe.ModelVersion,
		TrainedAt:    pipe.TrainedAt.Format("2006-01-02 15:04:05"),
		FeatureCount: pipe.FeatureCount(),
		RuleCount:    len(pipe.Rules),
	}
	for i := range pipe.Rules {
		if pipe.Rules[i].Kind == schema.CategoricalRule {
			summary.Categorical++
		} else {
			summary.Numeric++
		}
	}
	return summary
}

// writeModelText prints the artifact metadata in plain text.
func writeModelText(pipe *schema.FittedPipeline, w io.Writer) error {
	summary := modelSummary(pipe)
	if _, err := fmt.Fprintf(w, "Model Version: %s\n", summary.ModelVersion); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Trained At: %s\n", summary.TrainedAt); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Features: %d (%d rules: %d categorical, %d numeric)\n",
		summary.FeatureCount, summary.RuleCount, summary.Categorical, summary.Numeric); err != nil {
		return err
	}
	return nil
}
