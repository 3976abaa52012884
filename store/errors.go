package store

import "errors"

var (
	// ErrNotFound is returned when an entity doesn't exist.
	ErrNotFound = errors.New("store: entity not found")

	// ErrAlreadyExists is returned when attempting to create an entity with an existing ID.
	ErrAlreadyExists = errors.New("store: entity already exists")

	// ErrConcurrentModification is returned when optimistic lock fails (version mismatch).
	ErrConcurrentModification = errors.New("store: entity was modified concurrently")

	// ErrDuplicateValue is returned when a unique constraint is violated.
	ErrDuplicateValue = errors.New("store: duplicate value for unique field")

	// ErrInvalidReference is returned when a reference lacks a target table or attribute.
	ErrInvalidReference = errors.New("store: invalid reference")
)
