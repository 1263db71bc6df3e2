package entity

import "errors"

var (
	// ErrValidation marks input rejected before it reaches the store.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a mutation addressed to an unknown id.
	ErrNotFound = errors.New("not found")
)
