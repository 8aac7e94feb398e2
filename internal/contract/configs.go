package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/huangsam/churnlens/core"
	"github.com/huangsam/churnlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 10000
	DefaultTopDrivers  = 3
	DefaultPrecision   = 4
	DefaultIDColumn    = "customerID"
	DefaultTargetCol   = "Churn"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// TiersRawInput holds risk tier boundary overrides from the YAML config file.
type TiersRawInput struct {
	Low  *float64 `mapstructure:"low"`
	High *float64 `mapstructure:"high"`
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	ModelPath  string
	DataPath   string
	Threshold  float64
	TopDrivers int
	Limit      int
	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	IDColumn   string
	TargetCol  string
	Width      int // Terminal width override (0 = auto-detect)
	Tiers      schema.TierBoundaries

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored tier labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Model        string  `mapstructure:"model"`
	Threshold    float64 `mapstructure:"threshold"`
	TopDrivers   int     `mapstructure:"top-drivers"`
	Limit        int     `mapstructure:"limit"`
	Workers      int     `mapstructure:"workers"`
	Precision    int     `mapstructure:"precision"`
	Output       string  `mapstructure:"output"`
	OutputFile   string  `mapstructure:"output-file"`
	IDColumn     string  `mapstructure:"id-column"`
	TargetColumn string  `mapstructure:"target-column"`
	Width        int     `mapstructure:"width"`
	RunBackend   string  `mapstructure:"run-backend"`
	RunDBConnect string  `mapstructure:"run-db-connect"`
	Color        string  `mapstructure:"color"`

	// --- Risk tier boundaries from config file ---
	Tiers TiersRawInput `mapstructure:"tiers"`
}

// Clone returns a shallow copy of the config so per-request overrides do
// not leak back into the base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Params converts the validated config into engine scoring parameters.
func (c *Config) Params() core.Params {
	return core.Params{
		Threshold: c.Threshold,
		TopK:      c.TopDrivers,
		Limit:     c.Limit,
		Workers:   c.Workers,
		Tiers:     c.Tiers,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Parameter domain violations surface
// as core.ConfigError so callers see the same taxonomy the engine uses.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateScoringInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := processTierBoundaries(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}

	cfg.ModelPath = input.Model
	cfg.DataPath = input.DataPathStr
	cfg.Width = input.Width
	cfg.UseColors = parseBoolString(input.Color, true)

	cfg.IDColumn = input.IDColumn
	if cfg.IDColumn == "" {
		cfg.IDColumn = DefaultIDColumn
	}
	cfg.TargetCol = input.TargetColumn
	if cfg.TargetCol == "" {
		cfg.TargetCol = DefaultTargetCol
	}

	return nil
}

// validateScoringInputs checks the engine parameter domains.
func validateScoringInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Threshold < 0 || input.Threshold > 1 {
		return &core.ConfigError{Param: "threshold", Reason: fmt.Sprintf("%v is outside [0,1]", input.Threshold)}
	}
	cfg.Threshold = input.Threshold

	if input.TopDrivers < 0 {
		return &core.ConfigError{Param: "top-drivers", Reason: fmt.Sprintf("%d is negative", input.TopDrivers)}
	}
	cfg.TopDrivers = input.TopDrivers

	if input.Limit < 1 {
		return &core.ConfigError{Param: "limit", Reason: fmt.Sprintf("%d is below 1", input.Limit)}
	}
	if input.Limit > MaxResultLimit {
		return &core.ConfigError{Param: "limit", Reason: fmt.Sprintf("%d exceeds the maximum of %d", input.Limit, MaxResultLimit)}
	}
	cfg.Limit = input.Limit

	cfg.Workers = input.Workers
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	return nil
}

// validateOutputInputs checks output format and precision.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("invalid precision %d. must be between 0 and 10", input.Precision)
	}
	cfg.Precision = input.Precision

	return nil
}

// processTierBoundaries merges config-file overrides onto the defaults.
func processTierBoundaries(cfg *Config, input *ConfigRawInput) error {
	cfg.Tiers = schema.DefaultTierBoundaries()
	if input.Tiers.Low != nil {
		cfg.Tiers.LowMax = *input.Tiers.Low
	}
	if input.Tiers.High != nil {
		cfg.Tiers.HighMin = *input.Tiers.High
	}

	if cfg.Tiers.LowMax < 0 || cfg.Tiers.HighMin > 1 || cfg.Tiers.LowMax > cfg.Tiers.HighMin {
		return &core.ConfigError{
			Param:  "tiers",
			Reason: fmt.Sprintf("boundaries %v/%v are not ordered within [0,1]", cfg.Tiers.LowMax, cfg.Tiers.HighMin),
		}
	}
	return nil
}

// validateBackendConfig validates the run-tracking backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	return ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// parseBoolString interprets yes/no/true/false/1/0 flag values.
func parseBoolString(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".churnlens_runs.db"
	}
	return filepath.Join(homeDir, ".churnlens_runs.db")
}
