// Package main provides a performance benchmarking tool for the churnlens CLI.
// It measures scoring times across different dataset sizes and worker counts,
// running each configuration multiple times and averaging the results,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - churnlens binary installed and available in PATH
//
// Usage: go run benchmark/main.go
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the average scoring time for one configuration.
type BenchmarkResult struct {
	Rows     int
	Workers  int
	AvgTime  string
	RowsPerS string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout      time.Duration
	Runs         int
	DatasetSizes []int
	WorkerCounts []int
}

// contractTypes are the categorical values used when generating rows.
var contractTypes = []string{"Month-to-month", "One year", "Two year"}

// benchModel is the pipeline artifact every benchmark run scores against.
const benchModel = `{
	"model_version": "churn-lr-bench",
	"trained_at": "2026-01-15T00:00:00Z",
	"rules": [
		{"column": "Contract", "kind": "categorical", "categories": ["Month-to-month", "One year", "Two year"]},
		{"column": "tenure", "kind": "numeric", "offset": 32, "scale": 24},
		{"column": "MonthlyCharges", "kind": "numeric", "offset": 65, "scale": 30}
	],
	"feature_names": ["Contract=Month-to-month", "Contract=One year", "Contract=Two year", "tenure", "MonthlyCharges"],
	"weights": [0.8, -0.1, -0.9, -0.5, 0.3],
	"bias": 0.1
}`

func main() {
	config := BenchmarkConfig{
		Timeout:      5 * time.Minute,
		Runs:         3,
		DatasetSizes: []int{1000, 10000, 100000},
		WorkerCounts: []int{1, 4, 8},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	workDir, err := os.MkdirTemp("", "churnlens-bench-*")
	if err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	modelPath := filepath.Join(workDir, "model.json")
	if err := os.WriteFile(modelPath, []byte(benchModel), 0o644); err != nil {
		fmt.Printf("Failed to write model: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, workDir, modelPath)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the churnlens binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("churnlens"); err != nil {
		return fmt.Errorf("churnlens binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark configurations.
func runBenchmarks(config BenchmarkConfig, workDir, modelPath string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d dataset sizes, %d worker counts, %d runs each\n",
		len(config.DatasetSizes), len(config.WorkerCounts), config.Runs)

	rng := rand.New(rand.NewSource(42))
	for _, rows := range config.DatasetSizes {
		dataPath := filepath.Join(workDir, fmt.Sprintf("customers_%d.csv", rows))
		if err := writeDataset(dataPath, rows, rng); err != nil {
			fmt.Printf("Failed to generate dataset with %d rows: %v\n", rows, err)
			continue
		}
		fmt.Printf("Benchmarking %d rows\n", rows)

		for _, workers := range config.WorkerCounts {
			result := runBenchmarkSuite(config, modelPath, dataPath, rows, workers)
			results = append(results, result)
		}
	}

	return results
}

// writeDataset generates a synthetic customer dataset with the given row count.
func writeDataset(path string, rows int, rng *rand.Rand) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"customerID", "Contract", "tenure", "MonthlyCharges"}); err != nil {
		return err
	}
	for i := range rows {
		rec := []string{
			fmt.Sprintf("CUST-%07d", i),
			contractTypes[rng.Intn(len(contractTypes))],
			strconv.Itoa(rng.Intn(72)),
			fmt.Sprintf("%.2f", 20+rng.Float64()*100),
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// runBenchmarkSuite runs one configuration multiple times and averages the timings.
func runBenchmarkSuite(config BenchmarkConfig, modelPath, dataPath string, rows, workers int) BenchmarkResult {
	fmt.Printf("  %d workers (%d runs)\n", workers, config.Runs)

	times := runBenchmark(config, modelPath, dataPath, workers)

	avgTime := "TIMEOUT"
	rowsPerS := "-"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		avg := sum / float64(len(times))
		avgTime = fmt.Sprintf("%.3fs", avg)
		rowsPerS = fmt.Sprintf("%.0f", float64(rows)/avg)
	}

	fmt.Printf("  Average: %s (%s rows/s)\n", avgTime, rowsPerS)

	return BenchmarkResult{
		Rows:     rows,
		Workers:  workers,
		AvgTime:  avgTime,
		RowsPerS: rowsPerS,
	}
}

// runBenchmark executes churnlens predict multiple times and returns the successful timings.
func runBenchmark(config BenchmarkConfig, modelPath, dataPath string, workers int) []float64 {
	args := []string{
		"predict", dataPath,
		"--model", modelPath,
		"--workers", strconv.Itoa(workers),
		"--run-backend", "none",
		"--limit", "10",
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("churnlens", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}
	return times
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Scoring completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/churnlens_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"rows", "workers", "avg_time", "rows_per_sec"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		rec := []string{strconv.Itoa(result.Rows), strconv.Itoa(result.Workers), result.AvgTime, result.RowsPerS}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %7d rows, %2d workers: %s (%s rows/s)\n", result.Rows, result.Workers, result.AvgTime, result.RowsPerS)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
