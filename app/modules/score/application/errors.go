package scoreservice

import "errors"

// Domain errors for the score service.
// These represent rejected input that handlers should treat as normal
// outcomes (publish failure event, ack message) rather than retrying.
var (
	// ErrInvalidHole indicates a hole key outside 1 to 18.
	ErrInvalidHole = errors.New("invalid hole")

	// ErrInvalidKey indicates an empty or malformed score key.
	ErrInvalidKey = errors.New("invalid score key")

	// ErrInvalidScore indicates a gross value that is not a positive stroke count.
	ErrInvalidScore = errors.New("invalid score value")

	// ErrMissingIdentity indicates a write without game, round or player.
	ErrMissingIdentity = errors.New("score write is missing game, round or player")

	// ErrUnknownRound indicates an imported row whose round cannot be found.
	ErrUnknownRound = errors.New("no round found for player")
)
