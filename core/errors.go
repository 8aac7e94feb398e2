package core

import "fmt"

// SchemaError reports a raw column that the fitted pipeline requires but
// the input row does not carry. It is a row-level error: the row is
// excluded and the batch continues.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column %q is missing", e.Column)
}

// TypeError reports a raw value that cannot be coerced to the kind the
// transform rule expects. It is a row-level error: the row is excluded
// and the batch continues.
type TypeError struct {
	Column string
	Value  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("column %q: value %q is not numeric", e.Column, e.Value)
}

// ConfigError reports a scoring parameter outside its valid domain.
// It is batch-fatal: the request aborts before any row is scored.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// IsRowError reports whether err is one of the row-level errors that are
// recorded per row instead of failing the whole batch.
func IsRowError(err error) bool {
	if err == nil {
		return false
	}
	switch err.(type) {
	case *SchemaError, *TypeError:
		return true
	}
	return false
}
