package sdk

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by APIError. Use errors.Is() to check.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrEntityNotFound    = errors.New("entity not found")
	ErrSearchFailed      = errors.New("search failed")
	ErrEnrichmentFailed  = errors.New("enrichment failed")
)

var codeSentinels = map[string]error{
	"bad_request":        ErrBadRequest,
	"unauthorized":       ErrUnauthorized,
	"invalid_pagination": ErrInvalidPagination,
	"entity_not_found":   ErrEntityNotFound,
	"search_failed":      ErrSearchFailed,
	"enrichment_failed":  ErrEnrichmentFailed,
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("searchd: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the error code to its sentinel, if any.
func (e *APIError) Unwrap() error {
	return codeSentinels[e.Code]
}
