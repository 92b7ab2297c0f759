package domain

import "errors"

// Error kinds surfaced to callers. Services wrap these with fmt.Errorf and
// %w; the HTTP layer maps them to status codes with errors.Is.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input is malformed or refers to data that
	// cannot be priced (e.g. a pooled type with no priced bikes).
	ErrValidation = errors.New("validation failed")

	// ErrConflict means the requested change collides with current state:
	// double booking, duplicate inventory number, status-incompatible
	// mutation.
	ErrConflict = errors.New("conflict")
)
