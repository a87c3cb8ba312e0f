package handicapdomain

import (
	"math"
	"strconv"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// Candidate is a round ready to be posted to the handicap authority.
type Candidate struct {
	RoundID            sharedtypes.RoundID  `json:"round_id"`
	PlayerID           sharedtypes.PlayerID `json:"player_id"`
	Scope              golftypes.HoleScope  `json:"scope"`
	CourseHandicap     int                  `json:"course_handicap"`
	GrossScore         int                  `json:"gross_score"`
	AdjustedGrossScore int                  `json:"adjusted_gross_score"`
	Differential       float64              `json:"differential"`
}

// PostingCandidate builds the posting candidate for a round. gross holds
// the current gross score per hole key. The round is eligible only when
// every hole in scope is scored and a course handicap resolves.
func PostingCandidate(
	round golftypes.Round,
	tee golftypes.Tee,
	scope golftypes.HoleScope,
	gross map[string]int,
) (Candidate, bool) {
	if scope == "" {
		scope = golftypes.All18
	}
	rating, ok := tee.Ratings[scope]
	if !ok || rating.SlopeRating <= 0 {
		return Candidate{}, false
	}

	var ch int
	if round.CourseHandicap != nil {
		ch = *round.CourseHandicap
	} else {
		v, err := CourseHandicap(round.HandicapIndex, tee, scope)
		if err != nil {
			return Candidate{}, false
		}
		ch = v
	}

	total, adjusted := 0, 0
	for _, n := range scope.Numbers() {
		h, ok := tee.Hole(n)
		if !ok {
			return Candidate{}, false
		}
		g, ok := gross[strconv.Itoa(n)]
		if !ok || g <= 0 {
			return Candidate{}, false
		}
		total += g
		// net double bogey
		adjusted += min(g, h.Par+2+Pops(h.Allocation, ch))
	}

	diff := StandardSlope / rating.SlopeRating * (float64(adjusted) - rating.CourseRating)
	return Candidate{
		RoundID:            round.ID,
		PlayerID:           round.PlayerID,
		Scope:              scope,
		CourseHandicap:     ch,
		GrossScore:         total,
		AdjustedGrossScore: adjusted,
		Differential:       math.Round(diff*10) / 10,
	}, true
}
