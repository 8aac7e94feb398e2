package core

import (
	"strconv"
	"strings"

	"github.com/huangsam/churnlens/schema"
)

// Transform applies the fitted transformation rules to a raw row and
// returns the numeric feature vector, aligned 1:1 with the pipeline's
// feature-name ordering. The vector length and ordering are fixed by the
// rules and identical for every row; the contribution engine and global
// importance rely on this positional alignment.
//
// Errors are row-level: a missing required column yields a SchemaError and
// a non-coercible numeric value yields a TypeError.
func Transform(row schema.RawRow, pipe *schema.FittedPipeline) ([]float64, error) {
	vector := make([]float64, 0, pipe.FeatureCount())

	for i := range pipe.Rules {
		rule := &pipe.Rules[i]
		raw, ok := row[rule.Column]
		if !ok {
			return nil, &SchemaError{Column: rule.Column}
		}

		switch rule.Kind {
		case schema.CategoricalRule:
			vector = appendOneHot(vector, rule, raw)
		default: // schema.NumericRule
			value, err := scaleNumeric(rule, raw)
			if err != nil {
				return nil, err
			}
			vector = append(vector, value)
		}
	}

	return vector, nil
}

// appendOneHot emits one output feature per known category: 1.0 for the
// matching category, 0.0 for the rest. A category unseen at fit time
// produces an all-zero block with no error, mirroring the training-time
// handling of unknown categories.
func appendOneHot(vector []float64, rule *schema.TransformRule, raw string) []float64 {
	for _, cat := range rule.Categories {
		if cat == raw {
			vector = append(vector, 1.0)
		} else {
			vector = append(vector, 0.0)
		}
	}
	return vector
}

// scaleNumeric applies (raw - offset) / scale. A blank cell is a missing
// value and maps to 0 after centering: the training-time impute value is
// pre-baked into the rule's offset, so the standardized result is exactly
// zero.
func scaleNumeric(rule *schema.TransformRule, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0.0, nil
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &TypeError{Column: rule.Column, Value: raw}
	}

	if rule.Scale == 0 {
		// A degenerate fit (zero variance) stores scale 0; pass the
		// centered value through unscaled rather than divide by zero.
		return value - rule.Offset, nil
	}
	return (value - rule.Offset) / rule.Scale, nil
}
