package cmd

import (
	"github.com/huangsam/churnlens/core/agg"
	"github.com/huangsam/churnlens/internal/contract"
	"github.com/huangsam/churnlens/internal/loader"
	"github.com/huangsam/churnlens/internal/outwriter"
	"github.com/spf13/cobra"
)

// importanceCmd ranks the model's features by weight magnitude.
var importanceCmd = &cobra.Command{
	Use:   "importance",
	Short: "Show global feature importance for the fitted model.",
	Long: `Rank the model's transformed features by absolute weight magnitude.

Global importance is a property of the model alone. It needs no dataset
and answers "which features move the score most, across all customers".
Use per-customer drivers from 'predict' to explain individual scores.

Examples:
  # Rank features of the default model
  churnlens importance

  # Inspect a specific artifact as JSON
  churnlens importance --model churn-v4.json --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		pipe, err := loader.FileLoader{}.Load(cfg.ModelPath)
		if err != nil {
			contract.LogFatal("Cannot load model artifact", err)
		}
		importance := agg.GlobalImportance(pipe.Weights, pipe.FeatureNames)
		if err := outwriter.NewOutWriter().WriteImportance(importance, cfg); err != nil {
			contract.LogFatal("Cannot write importance results", err)
		}
	},
}
