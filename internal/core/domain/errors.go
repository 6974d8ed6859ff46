package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a referenced fragment, decision, assumption
	// or link does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed input: a self-link, an
	// out-of-range strength or confidence, an unknown enum value.
	// Validation failures are local and never reach the store.
	ErrValidation = errors.New("validation failed")

	// ErrTransport indicates a collaborator or network failure.
	// Surfaced to the caller as retryable; never silently swallowed.
	ErrTransport = errors.New("transport failure")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")
)
