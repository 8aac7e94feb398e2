// Package loader reads fitted pipeline artifacts and caches them for the
// process lifetime.
package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/huangsam/churnlens/schema"
)

// cacheEntry pairs a loaded pipeline with the content hash it was loaded
// from, so a changed file on disk is never served from cache.
type cacheEntry struct {
	digest string
	pipe   *schema.FittedPipeline
}

// pipelineCache is the process-wide artifact cache, keyed by absolute
// path. The pipeline itself is immutable after load, so callers share the
// cached pointer without copying.
var pipelineCache = struct {
	sync.Mutex
	entries map[string]cacheEntry
}{entries: make(map[string]cacheEntry)}

// Load reads a pipeline artifact from a JSON file, validates its internal
// consistency and returns it. Artifacts are cached by identity (absolute
// path plus content digest): repeated loads of the same artifact return
// the same immutable value without re-reading or re-parsing.
func Load(path string) (*schema.FittedPipeline, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve model path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	pipelineCache.Lock()
	defer pipelineCache.Unlock()
	if entry, ok := pipelineCache.entries[absPath]; ok && entry.digest == digest {
		return entry.pipe, nil
	}

	pipe, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid model artifact %q: %w", path, err)
	}

	pipelineCache.entries[absPath] = cacheEntry{digest: digest, pipe: pipe}
	return pipe, nil
}

// Parse unmarshals and validates an artifact payload.
func Parse(data []byte) (*schema.FittedPipeline, error) {
	var pipe schema.FittedPipeline
	if err := json.Unmarshal(data, &pipe); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := Validate(&pipe); err != nil {
		return nil, err
	}
	return &pipe, nil
}

// Validate checks the structural invariants of a fitted pipeline: weights
// and feature names must align 1:1, and the rules must produce exactly
// that many features.
func Validate(pipe *schema.FittedPipeline) error {
	if len(pipe.Rules) == 0 {
		return fmt.Errorf("artifact has no transform rules")
	}
	if len(pipe.Weights) != len(pipe.FeatureNames) {
		return fmt.Errorf("artifact has %d weights for %d feature names", len(pipe.Weights), len(pipe.FeatureNames))
	}

	width := 0
	for i := range pipe.Rules {
		rule := &pipe.Rules[i]
		switch rule.Kind {
		case schema.CategoricalRule:
			if len(rule.Categories) == 0 {
				return fmt.Errorf("categorical rule for column %q has no categories", rule.Column)
			}
		case schema.NumericRule:
			// Scale 0 is a degenerate but representable fit; nothing to check.
		default:
			return fmt.Errorf("rule for column %q has unknown kind %q", rule.Column, rule.Kind)
		}
		if rule.Column == "" {
			return fmt.Errorf("rule %d has an empty column name", i)
		}
		width += rule.Width()
	}

	if width != len(pipe.FeatureNames) {
		return fmt.Errorf("transform rules produce %d features but artifact names %d", width, len(pipe.FeatureNames))
	}
	return nil
}

// FileLoader is the production artifact loader backed by the process
// cache.
type FileLoader struct{}

// Load implements the pipeline loading contract.
func (FileLoader) Load(path string) (*schema.FittedPipeline, error) {
	return Load(path)
}

// ResetCache empties the process-wide cache. Exposed for tests.
func ResetCache() {
	pipelineCache.Lock()
	defer pipelineCache.Unlock()
	pipelineCache.entries = make(map[string]cacheEntry)
}
