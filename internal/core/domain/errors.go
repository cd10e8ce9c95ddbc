package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the knowledge store could not be read.
	// The pipeline degrades to a contextless prompt, never a hard error.
	ErrStoreUnavailable = errors.New("knowledge store unavailable")

	// ErrUpstream indicates the language model call failed (timeout,
	// non-2xx status, or malformed payload). The pipeline degrades to a
	// static fallback answer with no links.
	ErrUpstream = errors.New("upstream model call failed")
)
