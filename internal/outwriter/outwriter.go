// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/churnlens/internal/contract"
	"github.com/huangsam/churnlens/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePredictions prints scoring results using the configured output format.
func (ow *OutWriter) WritePredictions(result *schema.PredictionResult, cfg *contract.Config, duration time.Duration) error {
	return WritePredictionResult(result, cfg, duration)
}

// WriteImportance prints global feature importance using the configured output format.
func (ow *OutWriter) WriteImportance(importance []schema.FeatureImportance, cfg *contract.Config) error {
	return WriteImportanceResults(importance, cfg)
}

// WriteModelInfo prints pipeline artifact metadata using the configured output format.
func (ow *OutWriter) WriteModelInfo(pipe *schema.FittedPipeline, cfg *contract.Config) error {
	return WriteModelSummary(pipe, cfg)
}

// WriteRuns prints recorded scoring runs using the configured output format.
func (ow *OutWriter) WriteRuns(records []schema.RunRecord, cfg *contract.Config) error {
	return WriteRunRecords(records, cfg)
}

// getMaxTableDriverWidth calculates the maximum width for the top-drivers
// column in table output based on terminal width.
func getMaxTableDriverWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting:
	// rank, customer, probability, prediction, tier, borders and padding
	baseWidth := 55

	available := termWidth - baseWidth
	if available < 20 {
		// Minimum reasonable driver column width
		return 20
	}
	if available > 90 {
		// Cap to keep rows readable on very wide terminals
		return 90
	}
	return available
}

// truncateText shortens a cell value to at most maxLen runes, marking the
// cut with an ellipsis.
func truncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen || maxLen < 4 {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
