// Package parquet provides data structures and functions for exporting
// churnlens predictions and run history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/churnlens/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single scoring run with metadata.
// This struct maps to the churnlens_runs database table.
type Run struct {
	// RunID is the unique identifier for this scoring run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the scoring run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRows is the number of rows read from the dataset
	TotalRows int32 `parquet:"total_rows,snappy"`

	// ValidRows is the number of rows that scored successfully
	ValidRows int32 `parquet:"valid_rows,snappy"`

	// PredictedChurners is the number of rows predicted to churn
	PredictedChurners int32 `parquet:"predicted_churners,snappy"`

	// ChurnRate is PredictedChurners over ValidRows
	ChurnRate float64 `parquet:"churn_rate,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CustomerPrediction represents the scoring output for a single customer.
type CustomerPrediction struct {
	// CustomerID is the dataset identifier for the customer (nullable)
	CustomerID *string `parquet:"customer_id,optional,snappy"`

	// RowIndex is the zero-based position of the customer in the input file
	RowIndex int32 `parquet:"row_index,snappy"`

	// ChurnProbability is the calibrated churn probability in [0,1]
	ChurnProbability float64 `parquet:"churn_probability,snappy"`

	// ChurnPrediction is the thresholded binary label (0 or 1)
	ChurnPrediction int32 `parquet:"churn_prediction,snappy"`

	// RiskTier is the assigned tier label (low, moderate, high)
	RiskTier string `parquet:"risk_tier,snappy"`

	// TopDrivers contains the JSON-encoded top feature contributions
	TopDrivers string `parquet:"top_drivers,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePredictionsParquet writes a slice of CustomerPrediction structs to a
// Parquet file.
func WritePredictionsParquet(data []CustomerPrediction, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the CustomerPrediction struct tags
	writer := parquet.NewGenericWriter[CustomerPrediction](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:             record.RunID,
			StartTime:         record.StartTime,
			EndTime:           record.EndTime,
			RunDurationMs:     record.RunDurationMs,
			TotalRows:         record.TotalRows,
			ValidRows:         record.ValidRows,
			PredictedChurners: record.PredictedChurners,
			ChurnRate:         record.ChurnRate,
			ConfigParams:      record.ConfigParams,
		}
	}
	return result
}

// ConvertPredictions converts schema.Prediction to CustomerPrediction for
// Parquet export. Top drivers are serialized to JSON so a single row holds
// the full explanation.
func ConvertPredictions(predictions []schema.Prediction) []CustomerPrediction {
	result := make([]CustomerPrediction, len(predictions))
	for i, pred := range predictions {
		var customerID *string
		if pred.CustomerID != "" {
			id := pred.CustomerID
			customerID = &id
		}

		drivers := []byte("[]")
		if len(pred.TopDrivers) > 0 {
			if encoded, err := json.Marshal(pred.TopDrivers); err == nil {
				drivers = encoded
			}
		}

		result[i] = CustomerPrediction{
			CustomerID:       customerID,
			RowIndex:         int32(pred.RowIndex),
			ChurnProbability: pred.ChurnProb,
			ChurnPrediction:  int32(pred.ChurnPrediction),
			RiskTier:         string(pred.RiskTier),
			TopDrivers:       string(drivers),
		}
	}
	return result
}

// MockFetchRuns generates sample Run data for demonstration.
func MockFetchRuns() []Run {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"threshold":0.5,"top-drivers":3,"limit":50}`

	startTime2 := now.Add(-10 * time.Minute)
	// Note: the second run leaves end_time, run_duration_ms, config_params nil

	return []Run{
		{
			RunID:             1,
			StartTime:         startTime1,
			EndTime:           &endTime1,
			RunDurationMs:     &durationMs1,
			TotalRows:         7043,
			ValidRows:         7032,
			PredictedChurners: 1869,
			ChurnRate:         0.2658,
			ConfigParams:      &configParams1,
		},
		{
			RunID:             2,
			StartTime:         startTime2,
			EndTime:           nil, // Still running - nullable field
			RunDurationMs:     nil, // Not yet calculated - nullable field
			TotalRows:         0,
			ValidRows:         0,
			PredictedChurners: 0,
			ChurnRate:         0,
			ConfigParams:      nil, // No config stored - nullable field
		},
	}
}
