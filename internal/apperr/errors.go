// Package apperr defines the sentinel errors shared across the QuickNote core.
package apperr

import "errors"

var (
	// ErrNotFound is returned when a read targets an id that is not stored.
	ErrNotFound = errors.New("not found")

	// ErrDanglingReference is returned when a save carries a foreign key
	// that does not resolve to an existing parent entity. The write is
	// rejected before any mutation is applied.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrMalformedProducerOutput is returned when the content producer
	// responds with a payload that cannot be mapped onto the Document shape.
	ErrMalformedProducerOutput = errors.New("malformed producer output")
)
