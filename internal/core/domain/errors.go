package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMalformedInput indicates a document that could not be processed.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRange indicates a filter window with min > max or a negative bound.
	ErrInvalidRange = errors.New("invalid length range")

	// ErrUnsupportedType indicates an unknown loader or enricher type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLoaderFailed indicates a loader could not produce documents.
	ErrLoaderFailed = errors.New("loader failed")
)

// DocumentError records a failure isolated to a single document.
type DocumentError struct {
	// Index is the position of the document in the input sequence.
	Index int

	// Stage names the pipeline stage that failed.
	Stage string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %d: %s: %v", e.Index, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}
