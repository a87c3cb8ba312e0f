package golftypes

import (
	"strconv"

	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// HoleScope selects which holes of a course are in play.
type HoleScope string

const (
	Front9 HoleScope = "front9"
	Back9  HoleScope = "back9"
	All18  HoleScope = "all18"
)

// Valid reports whether s is one of the known scopes.
func (s HoleScope) Valid() bool {
	switch s {
	case Front9, Back9, All18:
		return true
	}
	return false
}

// Numbers returns the hole numbers covered by the scope in play order.
// An empty scope is treated as all18.
func (s HoleScope) Numbers() []int {
	first, last := 1, 18
	switch s {
	case Front9:
		last = 9
	case Back9:
		first = 10
	}
	out := make([]int, 0, last-first+1)
	for n := first; n <= last; n++ {
		out = append(out, n)
	}
	return out
}

// Contains reports whether hole n is in the scope.
func (s HoleScope) Contains(n int) bool {
	switch s {
	case Front9:
		return n >= 1 && n <= 9
	case Back9:
		return n >= 10 && n <= 18
	default:
		return n >= 1 && n <= 18
	}
}

// Rating holds the USGA ratings of a tee for one scope.
type Rating struct {
	CourseRating float64 `json:"course_rating" yaml:"course_rating"`
	SlopeRating  float64 `json:"slope_rating" yaml:"slope_rating"`
	BogeyRating  float64 `json:"bogey_rating,omitempty" yaml:"bogey_rating,omitempty"`
}

// TeeHole is a single hole as played from a tee. Allocation is the
// stroke index, 1 being the hardest hole.
type TeeHole struct {
	Number      int `json:"number" yaml:"number"`
	Par         int `json:"par" yaml:"par"`
	LengthYards int `json:"length_yards,omitempty" yaml:"length_yards,omitempty"`
	Allocation  int `json:"allocation" yaml:"allocation"`
}

// Tee describes a set of tees with their ratings and holes.
type Tee struct {
	ID         sharedtypes.TeeID    `json:"id" yaml:"id"`
	Name       string               `json:"name" yaml:"name"`
	Gender     string               `json:"gender,omitempty" yaml:"gender,omitempty"`
	TotalYards int                  `json:"total_yards,omitempty" yaml:"total_yards,omitempty"`
	TotalPar   int                  `json:"total_par,omitempty" yaml:"total_par,omitempty"`
	Ratings    map[HoleScope]Rating `json:"ratings" yaml:"ratings"`
	Holes      []TeeHole            `json:"holes" yaml:"holes"`
}

// Hole looks up a hole by number.
func (t Tee) Hole(number int) (TeeHole, bool) {
	for _, h := range t.Holes {
		if h.Number == number {
			return h, true
		}
	}
	return TeeHole{}, false
}

// HoleByKey looks up a hole by its string key ("1".."18").
func (t Tee) HoleByKey(key string) (TeeHole, bool) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return TeeHole{}, false
	}
	return t.Hole(n)
}
