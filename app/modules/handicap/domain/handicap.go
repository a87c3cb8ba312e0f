package handicapdomain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// StandardSlope is the slope rating of a course of standard difficulty.
const StandardSlope = 113.0

// Mode controls how course handicaps turn into strokes for a game.
type Mode string

const (
	// ModeFull gives every player their full handicap.
	ModeFull Mode = "full"
	// ModeLow plays everyone off the lowest handicap in the game.
	ModeLow Mode = "low"
	// ModeNone plays the game at scratch.
	ModeNone Mode = "none"
)

// ParseMode maps an option value to a Mode. Unknown values are full.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLow:
		return ModeLow
	case ModeNone:
		return ModeNone
	}
	return ModeFull
}

// ParseIndex parses a handicap index as entered by a player. A leading "+"
// marks a plus handicap, which is negative.
func ParseIndex(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty handicap index", ErrInvalidHandicapInput)
	}
	plus := strings.HasPrefix(s, "+")
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: handicap index %q", ErrInvalidHandicapInput, raw)
	}
	if plus {
		v = -v
	}
	return v, nil
}

// IndexFromNumber renders a numeric index in the textual form ParseIndex
// accepts.
func IndexFromNumber(v float64) string {
	if v < 0 {
		return "+" + strconv.FormatFloat(-v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ScopePar sums the par of every hole in scope.
func ScopePar(tee golftypes.Tee, scope golftypes.HoleScope) (int, error) {
	par := 0
	for _, n := range scope.Numbers() {
		h, ok := tee.Hole(n)
		if !ok || h.Par <= 0 {
			return 0, fmt.Errorf("%w: tee %s has no par for hole %d", ErrInvalidHandicapInput, tee.ID, n)
		}
		par += h.Par
	}
	return par, nil
}

// CourseHandicapFromValues is round(index * slope/113 + (rating - par)).
// Halves round away from zero.
func CourseHandicapFromValues(index, slope, rating float64, par int) int {
	return int(math.Round(index*slope/StandardSlope + (rating - float64(par))))
}

// CourseHandicap computes a player's course handicap for the holes in scope.
func CourseHandicap(index string, tee golftypes.Tee, scope golftypes.HoleScope) (int, error) {
	if scope == "" {
		scope = golftypes.All18
	}
	idx, err := ParseIndex(index)
	if err != nil {
		return 0, err
	}
	rating, ok := tee.Ratings[scope]
	if !ok {
		return 0, fmt.Errorf("%w: tee %s has no %s rating", ErrInvalidHandicapInput, tee.ID, scope)
	}
	if rating.SlopeRating <= 0 {
		return 0, fmt.Errorf("%w: tee %s has no %s slope", ErrInvalidHandicapInput, tee.ID, scope)
	}
	par, err := ScopePar(tee, scope)
	if err != nil {
		return 0, err
	}
	return CourseHandicapFromValues(idx, rating.SlopeRating, rating.CourseRating, par), nil
}

// FormatCourseHandicap renders a course handicap for display. Plus
// handicaps carry a "+" prefix.
func FormatCourseHandicap(h *int) string {
	if h == nil {
		return ""
	}
	if *h < 0 {
		return "+" + strconv.Itoa(-*h)
	}
	return strconv.Itoa(*h)
}

// FormatIndex renders a handicap index for display.
func FormatIndex(index string) string {
	s := strings.TrimSpace(index)
	if s == "-" {
		return ""
	}
	return s
}

// EffectiveHandicap returns the game handicap when set, otherwise the course
// handicap.
func EffectiveHandicap(course, game *int) *int {
	if game != nil {
		v := *game
		return &v
	}
	if course != nil {
		v := *course
		return &v
	}
	return nil
}

// AdjustToLow plays every player off the lowest handicap in the set.
func AdjustToLow(handicaps map[sharedtypes.PlayerID]int) map[sharedtypes.PlayerID]int {
	out := make(map[sharedtypes.PlayerID]int, len(handicaps))
	if len(handicaps) == 0 {
		return out
	}
	low := math.MaxInt
	for _, h := range handicaps {
		low = min(low, h)
	}
	for id, h := range handicaps {
		out[id] = h - low
	}
	return out
}

// ApplyMode converts effective handicaps into the handicaps strokes are
// allocated from.
func ApplyMode(mode Mode, handicaps map[sharedtypes.PlayerID]int) map[sharedtypes.PlayerID]int {
	switch mode {
	case ModeLow:
		return AdjustToLow(handicaps)
	case ModeNone:
		out := make(map[sharedtypes.PlayerID]int, len(handicaps))
		for id := range handicaps {
			out[id] = 0
		}
		return out
	}
	out := make(map[sharedtypes.PlayerID]int, len(handicaps))
	for id, h := range handicaps {
		out[id] = h
	}
	return out
}
