package scoredomain

import (
	"strconv"
	"strings"
	"time"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
)

// HoleScore is the resolved view of one hole of a round.
type HoleScore struct {
	Hole    string
	Gross   *int
	Pops    int
	Net     *int
	GrossTS time.Time
	GrossBy string
	Flags   map[string]string
	FlagTS  map[string]time.Time
}

// Played reports whether the hole has a gross score.
func (h HoleScore) Played() bool { return h.Gross != nil }

// Marked reports whether flag is set on the hole.
func (h HoleScore) Marked(flag string) bool {
	return IsMarked(h.Flags[flag])
}

// Normalize resolves a score document into gross, pops, net and flags. A
// missing, empty or non positive gross leaves the hole unplayed.
func Normalize(s golftypes.Score, pops int) HoleScore {
	current := Resolve(s.Values)

	hs := HoleScore{
		Hole:   s.Hole,
		Pops:   pops,
		Flags:  make(map[string]string),
		FlagTS: make(map[string]time.Time),
	}
	for k, v := range current {
		if k == golftypes.KeyGross {
			if g, ok := ParseGross(v.V); ok {
				net := g - pops
				hs.Gross = &g
				hs.Net = &net
				hs.GrossTS = v.TS
				hs.GrossBy = v.By
			}
			continue
		}
		hs.Flags[k] = v.V
		hs.FlagTS[k] = v.TS
	}
	return hs
}

// ParseGross parses a gross stroke value.
func ParseGross(raw string) (int, bool) {
	g, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || g <= 0 {
		return 0, false
	}
	return g, true
}

// IsMarked reports whether a flag value means set.
func IsMarked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true":
		return true
	}
	return false
}

// ScoreToPar returns score minus par, or nil when there is no score.
func ScoreToPar(score *int, par int) *int {
	if score == nil {
		return nil
	}
	v := *score - par
	return &v
}
