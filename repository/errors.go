package repository

import "errors"

var (
	// ErrValidation means the caller's input violates a field constraint.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means no record matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrStoreUnavailable means the backing store could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
