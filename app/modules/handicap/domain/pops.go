package handicapdomain

import (
	"fmt"
	"strconv"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
)

const holesPerRound = 18

// Pops returns the strokes a player receives on a hole with the given
// allocation. Positive handicaps receive strokes starting at allocation 1;
// plus handicaps give strokes back starting at allocation 18.
func Pops(allocation, courseHandicap int) int {
	if allocation < 1 || allocation > holesPerRound {
		return 0
	}
	base := courseHandicap / holesPerRound
	rem := courseHandicap % holesPerRound

	if courseHandicap >= 0 {
		if allocation <= rem {
			base++
		}
		return base
	}
	if holesPerRound-allocation < -rem {
		base--
	}
	return base
}

// AllocatePops distributes a course handicap over holes, keyed by hole number.
func AllocatePops(courseHandicap int, holes []golftypes.TeeHole) map[string]int {
	out := make(map[string]int, len(holes))
	for _, h := range holes {
		out[strconv.Itoa(h.Number)] = Pops(h.Allocation, courseHandicap)
	}
	return out
}

// ValidateAllocations checks that the allocations of the holes in scope form
// a permutation of 1..N where N is the number of holes on the tee.
func ValidateAllocations(holes []golftypes.TeeHole, scope golftypes.HoleScope) error {
	seen := make(map[int]int, len(holes))
	count := 0
	for _, h := range holes {
		if !scope.Contains(h.Number) {
			continue
		}
		count++
		if h.Allocation < 1 || h.Allocation > holesPerRound {
			return fmt.Errorf("%w: hole %d has allocation %d", ErrInvalidAllocation, h.Number, h.Allocation)
		}
		if prev, dup := seen[h.Allocation]; dup {
			return fmt.Errorf("%w: holes %d and %d share allocation %d", ErrInvalidAllocation, prev, h.Number, h.Allocation)
		}
		seen[h.Allocation] = h.Number
	}
	if want := len(scope.Numbers()); count != want {
		return fmt.Errorf("%w: %d of %d holes in %s", ErrInvalidAllocation, count, want, scope)
	}
	// A nine hole scope on an 18 hole card carries odd or even allocations,
	// so only full rounds must use exactly 1..18.
	if count == holesPerRound {
		for a := 1; a <= holesPerRound; a++ {
			if _, ok := seen[a]; !ok {
				return fmt.Errorf("%w: allocation %d is missing", ErrInvalidAllocation, a)
			}
		}
	}
	return nil
}
