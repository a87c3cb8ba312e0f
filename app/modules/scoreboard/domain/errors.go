package scoreboarddomain

import "errors"

var (
	// ErrIncompleteRuleInput marks a cell whose inputs are missing: an
	// unscored hole, a missing par or allocation, or a reference to a rule
	// that does not exist.
	ErrIncompleteRuleInput = errors.New("incomplete rule input")

	// ErrLimitExceeded is recorded on junk awards excluded by the junk's
	// limit. It is never returned.
	ErrLimitExceeded = errors.New("limit_exceeded")

	// ErrNoGameSpec is returned when a game is computed without a gamespec.
	ErrNoGameSpec = errors.New("game has no gamespec")
)
