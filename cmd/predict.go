package cmd

import (
	"fmt"
	"time"

	"github.com/huangsam/churnlens/core"
	"github.com/huangsam/churnlens/internal/contract"
	"github.com/huangsam/churnlens/internal/dataset"
	"github.com/huangsam/churnlens/internal/loader"
	"github.com/huangsam/churnlens/internal/outwriter"
	"github.com/huangsam/churnlens/internal/runstore"
	"github.com/huangsam/churnlens/schema"
	"github.com/spf13/cobra"
)

// predictCmd scores a customer dataset against the fitted model.
var predictCmd = &cobra.Command{
	Use:   "predict [data-path]",
	Short: "Score a customer dataset and rank customers by churn probability.",
	Long: `Run batch churn inference against a CSV dataset.

Each customer row is transformed through the fitted pipeline, scored with
the linear model, and decomposed into per-feature contributions so you can
see the top drivers behind every prediction.

Customers are ranked by churn probability (highest first) and bucketed
into Low/Medium/High risk tiers. Rows that fail to transform are skipped
and reported, never aborting the batch.

Examples:
  # Score a dataset with the default model
  churnlens predict customers.csv

  # Use a custom model and a stricter decision threshold
  churnlens predict customers.csv --model churn-v4.json --threshold 0.7

  # Show more drivers per customer and export to CSV
  churnlens predict customers.csv --top-drivers 5 --output csv --output-file scores.csv

  # Export predictions to Parquet for analytics
  churnlens predict customers.csv --output parquet --output-file scores.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executePredict(); err != nil {
			contract.LogFatal("Cannot run prediction", err)
		}
	},
}

// executePredict wires the full scoring flow: load model, read dataset,
// score, record the run, and print results.
func executePredict() error {
	pipe, err := loader.FileLoader{}.Load(cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("cannot load model artifact: %w", err)
	}

	ds, err := dataset.ReadFile(cfg.DataPath, cfg.IDColumn, cfg.TargetCol)
	if err != nil {
		return fmt.Errorf("cannot read dataset: %w", err)
	}

	start := time.Now()
	store := runstore.Manager.GetRunStore()
	runID, err := store.BeginRun(start, map[string]any{
		"model":       cfg.ModelPath,
		"data":        cfg.DataPath,
		"threshold":   cfg.Threshold,
		"top_drivers": cfg.TopDrivers,
		"workers":     cfg.Workers,
	})
	if err != nil {
		return fmt.Errorf("cannot begin run tracking: %w", err)
	}

	result, err := core.Run(ds.Rows, ds.IDs, pipe, cfg.Params())
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if err := store.EndRun(runID, time.Now(), schema.RunSummary{
		TotalRows:         len(ds.Rows),
		ValidRows:         result.KPIs.TotalCustomers,
		PredictedChurners: result.KPIs.PredictedChurners,
		ChurnRate:         result.KPIs.PredictedChurnRate,
	}); err != nil {
		return fmt.Errorf("cannot finalize run tracking: %w", err)
	}

	return outwriter.NewOutWriter().WritePredictions(result, cfg, duration)
}
