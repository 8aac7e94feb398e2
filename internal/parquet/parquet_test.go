package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/churnlens/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(Run))
	require.NotNil(t, sch)

	// Check that all expected columns exist
	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"total_rows",
		"valid_rows",
		"predicted_churners",
		"churn_rate",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestCustomerPredictionStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(CustomerPrediction))
	require.NotNil(t, sch)

	// Check that all expected columns exist
	expectedColumns := []string{
		"customer_id",
		"row_index",
		"churn_probability",
		"churn_prediction",
		"risk_tier",
		"top_drivers",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "runs.parquet")

	// Get mock data
	data := MockFetchRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	// Write data to Parquet file
	err := WriteRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[Run](file)
	defer reader.Close()

	readData := make([]Run, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].TotalRows, readData[i].TotalRows, "TotalRows should match")
		assert.Equal(t, data[i].PredictedChurners, readData[i].PredictedChurners, "PredictedChurners should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].RunDurationMs == nil {
			assert.Nil(t, readData[i].RunDurationMs, "RunDurationMs should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMs, "RunDurationMs should not be nil")
			assert.Equal(t, *data[i].RunDurationMs, *readData[i].RunDurationMs, "RunDurationMs should match")
		}
	}
}

func TestWritePredictionsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "predictions.parquet")

	predictions := []schema.Prediction{
		{
			CustomerID:      "7590-VHVEG",
			RowIndex:        0,
			ChurnProb:       0.8123,
			ChurnPrediction: 1,
			RiskTier:        schema.HighTier,
			TopDrivers: []schema.Contribution{
				{Feature: "Contract=Month-to-month", Direction: schema.IncreasesChurn, Impact: 0.8},
			},
		},
		{
			RowIndex:        1,
			ChurnProb:       0.1042,
			ChurnPrediction: 0,
			RiskTier:        schema.LowTier,
		},
	}

	data := ConvertPredictions(predictions)
	require.Len(t, data, 2)
	require.NotNil(t, data[0].CustomerID)
	assert.Equal(t, "7590-VHVEG", *data[0].CustomerID)
	assert.Nil(t, data[1].CustomerID, "Empty customer ID should convert to nil")
	assert.Contains(t, data[0].TopDrivers, "Contract=Month-to-month")
	assert.Equal(t, "[]", data[1].TopDrivers, "No drivers should serialize to an empty JSON array")

	err := WritePredictionsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[CustomerPrediction](file)
	defer reader.Close()

	readData := make([]CustomerPrediction, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	assert.Equal(t, int32(1), readData[0].ChurnPrediction)
	assert.Equal(t, string(schema.HighTier), readData[0].RiskTier)
	assert.InDelta(t, 0.1042, readData[1].ChurnProbability, 1e-12)
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	end := now.Add(time.Minute)
	duration := int32(60000)
	params := `{"threshold":0.5}`

	records := []schema.RunRecord{
		{
			RunID:             42,
			StartTime:         now,
			EndTime:           &end,
			RunDurationMs:     &duration,
			TotalRows:         100,
			ValidRows:         98,
			PredictedChurners: 25,
			ChurnRate:         0.2551,
			ConfigParams:      &params,
		},
	}

	converted := ConvertRunRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(42), converted[0].RunID)
	assert.Equal(t, int32(98), converted[0].ValidRows)
	assert.Equal(t, &duration, converted[0].RunDurationMs)
	assert.Equal(t, &params, converted[0].ConfigParams)
}
