package omdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid omdb configuration")
	// ErrDuplicateFilter indicates a filter key was set twice on the same query
	ErrDuplicateFilter = errors.New("duplicate filter")
	// ErrInvalidArgument indicates none of the identifying filters (i, t, s) was set
	ErrInvalidArgument = errors.New("ttid, title or search filter is required")
	// ErrInvalidParameter indicates a filter key the API does not accept
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidParameterValue indicates a value outside a parameter's allowed set
	ErrInvalidParameterValue = errors.New("invalid parameter value")
	// ErrInvalidJSON indicates the response body could not be decoded
	ErrInvalidJSON = errors.New("invalid JSON response")
	// ErrUnauthorized indicates the API rejected the API key
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadAPIResponse indicates a non-200 response
	ErrBadAPIResponse = errors.New("bad API response")
	// ErrNoResults indicates the API answered with Response=False
	ErrNoResults = errors.New("no results")
	// ErrTooManyResults indicates a search matched more results than one page holds
	ErrTooManyResults = errors.New("too many results")
	// ErrUnknownEntity indicates a Type that maps to neither movie nor series
	ErrUnknownEntity = errors.New("unknown entity")
)

// APIError represents an error reported by the OMDB API itself
type APIError struct {
	Kind       error
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != http.StatusOK {
		return fmt.Sprintf("omdb: %v: status %d: %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("omdb: %v: %s", e.Kind, e.Message)
}

// Unwrap exposes the error kind to errors.Is
func (e *APIError) Unwrap() error {
	return e.Kind
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return errors.Is(e.Kind, ErrUnauthorized)
}

// IsNoResults checks if the API found nothing for the query
func (e *APIError) IsNoResults() bool {
	return errors.Is(e.Kind, ErrNoResults)
}
