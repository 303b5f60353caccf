package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPagination signals page or limit outside the accepted range.
	ErrInvalidPagination = errors.New("invalid pagination")
	// ErrUnknownEntity signals a search against an entity with no registry.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrSearchExecution signals a record source failure.
	ErrSearchExecution = errors.New("search execution failed")
	// ErrEnrichment signals a failed enrichment under a fail-page policy.
	ErrEnrichment = errors.New("enrichment failed")
)

// SearchExecutionError carries the record source failure for an entity.
// It matches both ErrSearchExecution and the original cause.
type SearchExecutionError struct {
	Entity string
	Op     string
	Cause  error
}

func (e *SearchExecutionError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrSearchExecution.Error(), e.Entity, e.Op, e.Cause)
}

func (e *SearchExecutionError) Unwrap() []error { return []error{ErrSearchExecution, e.Cause} }

// NewSearchExecution wraps a record source failure.
func NewSearchExecution(entity, op string, cause error) error {
	return &SearchExecutionError{Entity: entity, Op: op, Cause: cause}
}

// InvalidPaginationError describes which pagination parameter was rejected.
type InvalidPaginationError struct {
	Param string
	Value int
	Max   int
}

func (e *InvalidPaginationError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("%s: %s=%d exceeds maximum %d", ErrInvalidPagination.Error(), e.Param, e.Value, e.Max)
	}
	return fmt.Sprintf("%s: %s=%d must be >= 1", ErrInvalidPagination.Error(), e.Param, e.Value)
}

func (e *InvalidPaginationError) Unwrap() error { return ErrInvalidPagination }
