package schema

import "time"

// RunSummary holds the dataset-level outcome of one scoring run, recorded
// when the run finishes.
type RunSummary struct {
	TotalRows         int     // Rows read from the dataset
	ValidRows         int     // Rows that transformed and scored successfully
	PredictedChurners int     // Rows with prediction == 1
	ChurnRate         float64 // PredictedChurners / ValidRows
}

// RunRecord represents a row from the churnlens_runs table.
type RunRecord struct {
	RunID             int64
	StartTime         time.Time
	EndTime           *time.Time
	RunDurationMs     *int32
	TotalRows         int32
	ValidRows         int32
	PredictedChurners int32
	ChurnRate         float64
	ConfigParams      *string
}

// RunStoreStatus represents the status of the run-tracking store.
type RunStoreStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
}
