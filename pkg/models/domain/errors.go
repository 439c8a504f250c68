package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrLookup      = errors.New("lookup error")
	ErrComputation = errors.New("computation error")
)

// ValidationError reports a malformed or unsupported input value.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// LookupError reports a table entry that is required but absent.
type LookupError struct {
	Platform string
	GPU      string
	Reason   string
}

func (e *LookupError) Error() string {
	switch {
	case e.Platform != "" && e.GPU != "":
		return fmt.Sprintf("%s: gpu %q on platform %q", e.Reason, e.GPU, e.Platform)
	case e.GPU != "":
		return fmt.Sprintf("%s: gpu %q", e.Reason, e.GPU)
	case e.Platform != "":
		return fmt.Sprintf("%s: platform %q", e.Reason, e.Platform)
	default:
		return e.Reason
	}
}

func (e *LookupError) Unwrap() error { return ErrLookup }

// ComputationError reports a derived quantity that is undefined.
type ComputationError struct {
	Quantity string
	Reason   string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("cannot compute %s: %s", e.Quantity, e.Reason)
}

func (e *ComputationError) Unwrap() error { return ErrComputation }
