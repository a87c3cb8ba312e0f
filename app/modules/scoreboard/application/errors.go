package scoreboardservice

import (
	"errors"
	"fmt"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
)

var (
	// ErrGameNotFound indicates the game has no stored document.
	ErrGameNotFound = errors.New("game not found")

	// ErrUnknownGameSpec indicates the game refers to a spec that is not known.
	ErrUnknownGameSpec = errors.New("unknown gamespec")
)

// Failure codes carried by ScoreboardFailedPayload.
const (
	CodeGameNotFound      = "GameNotFound"
	CodeUnknownGameSpec   = "UnknownGameSpec"
	CodeMalformedGameSpec = "MalformedGameSpec"
	CodeNoGameSpec        = "NoGameSpec"
)

var codeErrors = map[string]error{
	CodeGameNotFound:      ErrGameNotFound,
	CodeUnknownGameSpec:   ErrUnknownGameSpec,
	CodeMalformedGameSpec: gamespecdomain.ErrMalformedGameSpec,
	CodeNoGameSpec:        scoreboarddomain.ErrNoGameSpec,
}

// FailureErr converts a failure payload to an error matching the sentinel
// for its code.
func FailureErr(f ScoreboardFailedPayload) error {
	if base, ok := codeErrors[f.Code]; ok {
		return fmt.Errorf("%w: %s", base, f.Reason)
	}
	return errors.New(f.Reason)
}

// classify maps snapshot and compute errors to a failure code. Errors with
// no code are infrastructure errors.
func classify(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return CodeGameNotFound, true
	case errors.Is(err, ErrUnknownGameSpec):
		return CodeUnknownGameSpec, true
	case errors.Is(err, gamespecdomain.ErrMalformedGameSpec):
		return CodeMalformedGameSpec, true
	case errors.Is(err, scoreboarddomain.ErrNoGameSpec):
		return CodeNoGameSpec, true
	}
	return "", false
}
