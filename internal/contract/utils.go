package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/huangsam/churnlens/schema"
)

// Tier label constants for display.
const (
	HighValue     = "High"     // High churn risk
	ModerateValue = "Moderate" // Moderate churn risk
	LowValue      = "Low"      // Low churn risk
)

// Color variables for console output.
var (
	HighColor     = color.New(color.FgRed, color.Bold) // highColor represents standard danger.
	ModerateColor = color.New(color.FgYellow)          // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)            // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label for a risk tier. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(tier schema.RiskTier) string {
	switch tier {
	case schema.HighTier:
		return HighValue
	case schema.ModerateTier:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(tier schema.RiskTier) string {
	text := GetPlainLabel(tier)

	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based
// on the provided file path. It falls back to os.Stdout when no path is set.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
