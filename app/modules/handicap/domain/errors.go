package handicapdomain

import "errors"

var (
	// ErrInvalidHandicapInput indicates a handicap index, tee rating or par
	// that cannot be used to compute a course handicap.
	ErrInvalidHandicapInput = errors.New("invalid handicap input")

	// ErrInvalidAllocation indicates tee hole allocations that are not a
	// permutation of 1..N over the holes in scope.
	ErrInvalidAllocation = errors.New("invalid hole allocation")
)
