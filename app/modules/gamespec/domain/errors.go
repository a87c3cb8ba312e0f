package gamespecdomain

import (
	"errors"
	"strings"
)

// ErrMalformedGameSpec indicates a gamespec that cannot be evaluated. It is
// returned at load time, before any round uses the spec.
var ErrMalformedGameSpec = errors.New("malformed gamespec")

// ValidationError lists every problem found in a gamespec.
type ValidationError struct {
	Spec     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return "gamespec " + e.Spec + ": " + ErrMalformedGameSpec.Error() + ": " + strings.Join(e.Problems, "; ")
}

// Is makes errors.Is(err, ErrMalformedGameSpec) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrMalformedGameSpec
}
