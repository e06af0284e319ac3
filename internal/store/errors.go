package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrNotFound indicates that a requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrUnsupported indicates the backend cannot serve the operation
	// (the append-only file backend does not mutate records).
	ErrUnsupported = errors.New("operation not supported by this backend")
)
