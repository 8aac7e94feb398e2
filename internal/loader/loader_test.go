package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/churnlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validArtifact is a minimal well-formed pipeline artifact.
const validArtifact = `{
	"model_version": "churn-lr-v3",
	"trained_at": "2026-05-01T00:00:00Z",
	"rules": [
		{"column": "Contract", "kind": "categorical", "categories": ["Month-to-month", "One year", "Two year"]},
		{"column": "tenure", "kind": "numeric", "offset": 32, "scale": 24}
	],
	"feature_names": ["Contract=Month-to-month", "Contract=One year", "Contract=Two year", "tenure"],
	"weights": [0.8, -0.1, -0.9, -0.5],
	"bias": 0.1
}`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadValidArtifact verifies a well-formed artifact round-trips into a
// fitted pipeline.
func TestLoadValidArtifact(t *testing.T) {
	ResetCache()
	path := writeArtifact(t, validArtifact)

	pipe, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "churn-lr-v3", pipe.ModelVersion)
	assert.Len(t, pipe.Rules, 2)
	assert.Equal(t, 4, pipe.FeatureCount())
	assert.InDelta(t, 0.1, pipe.Bias, 1e-12)
}

// TestLoadCachesByIdentity verifies repeated loads of an unchanged file
// return the same pipeline value, and that a content change invalidates
// the cached entry.
func TestLoadCachesByIdentity(t *testing.T) {
	ResetCache()
	path := writeArtifact(t, validArtifact)

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	changed := `{
		"model_version": "churn-lr-v4",
		"trained_at": "2026-06-01T00:00:00Z",
		"rules": [{"column": "tenure", "kind": "numeric", "offset": 0, "scale": 1}],
		"feature_names": ["tenure"],
		"weights": [0.5],
		"bias": 0
	}`
	require.NoError(t, os.WriteFile(path, []byte(changed), 0o644))

	third, err := Load(path)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, "churn-lr-v4", third.ModelVersion)
}

// TestLoadMissingFile verifies a useful error for a nonexistent path.
func TestLoadMissingFile(t *testing.T) {
	ResetCache()
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "failed to read model artifact")
}

// TestParseRejectsMalformedArtifacts covers structural validation.
func TestParseRejectsMalformedArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{
			name:    "not json",
			payload: "weights: [1, 2]",
			wantMsg: "failed to parse JSON",
		},
		{
			name:    "no rules",
			payload: `{"rules": [], "feature_names": [], "weights": [], "bias": 0}`,
			wantMsg: "no transform rules",
		},
		{
			name: "weight name mismatch",
			payload: `{
				"rules": [{"column": "tenure", "kind": "numeric", "offset": 0, "scale": 1}],
				"feature_names": ["tenure"],
				"weights": [0.5, 0.5],
				"bias": 0
			}`,
			wantMsg: "2 weights for 1 feature names",
		},
		{
			name: "rule width mismatch",
			payload: `{
				"rules": [{"column": "Contract", "kind": "categorical", "categories": ["a", "b"]}],
				"feature_names": ["Contract=a"],
				"weights": [0.5],
				"bias": 0
			}`,
			wantMsg: "produce 2 features but artifact names 1",
		},
		{
			name: "unknown rule kind",
			payload: `{
				"rules": [{"column": "tenure", "kind": "ordinal"}],
				"feature_names": ["tenure"],
				"weights": [0.5],
				"bias": 0
			}`,
			wantMsg: "unknown kind",
		},
		{
			name: "categorical without categories",
			payload: `{
				"rules": [{"column": "Contract", "kind": "categorical", "categories": []}],
				"feature_names": [],
				"weights": [],
				"bias": 0
			}`,
			wantMsg: "no categories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.payload))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

// TestFileLoaderImplementsContract exercises the adapter type.
func TestFileLoaderImplementsContract(t *testing.T) {
	ResetCache()
	path := writeArtifact(t, validArtifact)

	var fl FileLoader
	pipe, err := fl.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.8, -0.1, -0.9, -0.5}, pipe.Weights)
}

// TestValidateZeroScaleAllowed pins that a zero scale is representable.
func TestValidateZeroScaleAllowed(t *testing.T) {
	pipe := &schema.FittedPipeline{
		Rules: []schema.TransformRule{
			{Column: "tenure", Kind: schema.NumericRule, Offset: 10, Scale: 0},
		},
		FeatureNames: []string{"tenure"},
		Weights:      []float64{0.25},
	}
	assert.NoError(t, Validate(pipe))
}
