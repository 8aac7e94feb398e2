package schema

// Custom string types for type safety.
type (
	// RuleKind represents the transformation applied to a raw column.
	RuleKind string

	// Direction represents which way a contribution pushes the prediction.
	Direction string

	// RiskTier represents the ordinal risk bucket derived from probability.
	RiskTier string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All transform rule kinds supported.
const (
	CategoricalRule RuleKind = "categorical"
	NumericRule     RuleKind = "numeric"
)

// Contribution directions. A contribution of exactly zero is classified as
// DecreasesChurn by convention; downstream consumers depend on this, so it
// is documented and tested rather than left as an accident.
const (
	IncreasesChurn Direction = "increases_churn"
	DecreasesChurn Direction = "decreases_churn"
)

// All risk tiers supported, ordered from lowest to highest.
const (
	LowTier      RiskTier = "low"
	ModerateTier RiskTier = "moderate"
	HighTier     RiskTier = "high"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run-tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllRiskTiers returns a list of all supported risk tiers.
var AllRiskTiers = []RiskTier{LowTier, ModerateTier, HighTier}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run-tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// TierBoundaries holds the probability cut points for risk tiers. Both
// edges are inclusive on the lower side: probability < LowMax is low,
// LowMax <= probability < HighMin is moderate, probability >= HighMin
// is high.
type TierBoundaries struct {
	LowMax  float64 // Upper bound (exclusive) of the low tier
	HighMin float64 // Lower bound (inclusive) of the high tier
}

// DefaultTierBoundaries returns the standard 0.3/0.7 cut points. They are
// configuration constants, overridable via config file or flags, never
// baked into call sites.
func DefaultTierBoundaries() TierBoundaries {
	return TierBoundaries{LowMax: 0.3, HighMin: 0.7}
}
