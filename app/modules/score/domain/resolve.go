package scoredomain

import (
	"strings"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
)

// Newer reports whether a supersedes b. The latest timestamp wins, then the
// lexically greater writer id, then the later insertion sequence. The value
// itself breaks any remaining tie so the order is total.
func Newer(a, b golftypes.ScoreValue) bool {
	if !a.TS.Equal(b.TS) {
		return a.TS.After(b.TS)
	}
	if c := strings.Compare(a.By, b.By); c != 0 {
		return c > 0
	}
	if a.Seq != b.Seq {
		return a.Seq > b.Seq
	}
	return a.V > b.V
}

// Resolve reduces a multi-writer log to the current value of every key.
// The result does not depend on the order of values.
func Resolve(values []golftypes.ScoreValue) map[string]golftypes.ScoreValue {
	out := make(map[string]golftypes.ScoreValue)
	for _, v := range values {
		cur, ok := out[v.K]
		if !ok || Newer(v, cur) {
			out[v.K] = v
		}
	}
	return out
}
