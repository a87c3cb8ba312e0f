package scoreboarddb

import "errors"

var (
	// ErrNotFound indicates the requested game, round or tee does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoRowsAffected indicates a write matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
