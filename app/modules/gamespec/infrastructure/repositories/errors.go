package gamespecdb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested gamespec version does not exist.
	ErrNotFound = errors.New("gamespec not found")

	// ErrSpecVersionExists indicates a gamespec version was already stored.
	// Versions are immutable; a change needs a new version.
	ErrSpecVersionExists = errors.New("gamespec version already exists")
)
