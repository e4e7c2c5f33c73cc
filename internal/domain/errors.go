package domain

import "errors"

var (
	// ErrStateMissing means no persisted document exists. Fatal for every
	// operation except explicit seeding; the core never creates a default
	// document on its own.
	ErrStateMissing = errors.New("mood state document not found")

	// ErrStateExists means seeding was attempted over an existing document.
	ErrStateExists = errors.New("mood state document already exists")

	// ErrConflict means a concurrent writer committed between load and save.
	// Callers should reload and retry.
	ErrConflict = errors.New("state document modified concurrently")
)
