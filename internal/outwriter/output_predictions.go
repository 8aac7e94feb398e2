package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/churnlens/internal/contract"
	"github.com/huangsam/churnlens/internal/parquet"
	"github.com/huangsam/churnlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePredictionResult outputs the scoring results, dispatching based on the output format configured.
func WritePredictionResult(result *schema.PredictionResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writePredictionJSONResults(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writePredictionCSVResults(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writePredictionParquetResults(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writePredictionJSONResults handles opening the file and calling the JSON writer.
func writePredictionJSONResults(result *schema.PredictionResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writePredictionCSVResults handles opening the file and calling the CSV writer.
func writePredictionCSVResults(result *schema.PredictionResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"customer_id",
		"row_index",
		"churn_probability",
		"churn_prediction",
		"risk_tier",
		"top_drivers",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, pred := range result.Predictions {
				rec := []string{
					strconv.Itoa(i + 1),                 // Rank
					pred.CustomerID,                     // Customer ID
					strconv.Itoa(pred.RowIndex),         // Row Index
					fmtFloat(pred.ChurnProb),            // Probability
					strconv.Itoa(pred.ChurnPrediction),  // Prediction
					contract.GetPlainLabel(pred.RiskTier), // Tier
					formatDrivers(pred.TopDrivers),      // Drivers
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writePredictionParquetResults exports the predictions to a Parquet file.
func writePredictionParquetResults(result *schema.PredictionResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	records := parquet.ConvertPredictions(result.Predictions)
	if err := parquet.WritePredictionsParquet(records, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writePredictionTable generates and writes the human-readable table.
func writePredictionTable(result *schema.PredictionResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Customer", "Probability", "Churn", "Tier", "Top Drivers"}
	table.Header(headers)

	// 2. Configure alignment to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxDriverWidth := getMaxTableDriverWidth(cfg)
	var data [][]string
	for i, pred := range result.Predictions {
		row := []string{
			strconv.Itoa(i + 1),                           // Rank
			customerLabel(&pred),                          // Customer
			fmtFloat(pred.ChurnProb),                      // Probability
			strconv.Itoa(pred.ChurnPrediction),            // Prediction
			tierLabel(pred.RiskTier, cfg),                 // Tier
			truncateText(formatDrivers(pred.TopDrivers), maxDriverWidth), // Drivers
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary stats always reflect the full scored set, not the shown rows
	kpis := result.KPIs
	if _, err := fmt.Fprintf(writer, "Showing top %d of %d customers (predicted churners: %d, churn rate: %s)\n",
		len(result.Predictions), kpis.TotalCustomers, kpis.PredictedChurners, fmtFloat(kpis.PredictedChurnRate)); err != nil {
		return err
	}
	if len(result.RowErrors) > 0 {
		if _, err := fmt.Fprintf(writer, "Skipped %d invalid rows\n", len(result.RowErrors)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Scoring completed in %v with %d workers. Run backend: %s\n", duration, cfg.Workers, cfg.RunBackend); err != nil {
		return err
	}
	return nil
}

// customerLabel prefers the dataset customer ID and falls back to the row index.
func customerLabel(pred *schema.Prediction) string {
	if pred.CustomerID != "" {
		return pred.CustomerID
	}
	return fmt.Sprintf("row %d", pred.RowIndex)
}

// tierLabel applies colors for console output when enabled.
func tierLabel(tier schema.RiskTier, cfg *contract.Config) string {
	if cfg.UseColors && cfg.OutputFile == "" {
		return contract.GetColorLabel(tier)
	}
	return contract.GetPlainLabel(tier)
}

// formatDrivers renders the top contributions as a compact single-line list.
func formatDrivers(drivers []schema.Contribution) string {
	if len(drivers) == 0 {
		return ""
	}
	parts := make([]string, len(drivers))
	for i, d := range drivers {
		sign := "+"
		if d.Direction == schema.DecreasesChurn {
			sign = "-"
		}
		parts[i] = fmt.Sprintf("%s(%s%.4f)", d.Feature, sign, d.Impact)
	}
	return strings.Join(parts, "; ")
}
