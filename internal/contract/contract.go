// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/churnlens/schema"
)

// RunStore defines the interface for tracking scoring runs.
// This allows the persistence layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new run record and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run record with completion data
	EndRun(runID int64, endTime time.Time, summary schema.RunSummary) error

	// ListRuns returns all recorded runs, most recent first
	ListRuns() ([]schema.RunRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStoreStatus, error)

	// Clear removes all recorded runs
	Clear() error

	// Close closes the underlying connection
	Close() error
}

// PipelineLoader loads fitted pipeline artifacts. The production
// implementation caches by artifact identity; tests substitute fixtures.
type PipelineLoader interface {
	Load(path string) (*schema.FittedPipeline, error)
}
