package scoredb

import "errors"

// Sentinel errors for the repository layer.
// These are infrastructure-level errors that indicate database state, not business logic failures.
var (
	// ErrNotFound indicates no entries exist for the requested round or game.
	ErrNotFound = errors.New("score entries not found")

	// ErrNoRowsAffected indicates an insert stored nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
