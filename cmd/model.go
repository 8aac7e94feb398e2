package cmd

import (
	"github.com/huangsam/churnlens/internal/contract"
	"github.com/huangsam/churnlens/internal/loader"
	"github.com/huangsam/churnlens/internal/outwriter"
	"github.com/spf13/cobra"
)

// modelCmd prints metadata about the fitted pipeline artifact.
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect the fitted pipeline artifact.",
	Long: `Print metadata about the fitted pipeline artifact.

Shows the model version, training timestamp, and a breakdown of the
transform rules (categorical vs numeric) and feature count. Useful for
verifying which artifact a deployment is serving before scoring with it.

Examples:
  # Inspect the default model
  churnlens model

  # Inspect a specific artifact as JSON
  churnlens model --model churn-v4.json --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		pipe, err := loader.FileLoader{}.Load(cfg.ModelPath)
		if err != nil {
			contract.LogFatal("Cannot load model artifact", err)
		}
		if err := outwriter.NewOutWriter().WriteModelInfo(pipe, cfg); err != nil {
			contract.LogFatal("Cannot write model summary", err)
		}
	},
}
