package scoreboarddomain

import (
	"cmp"
	"slices"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
)

// Ranked is an item with its competition rank. Tied items share a rank and
// the next rank skips past them, so three items rank 1, 1, 3 when the first
// two tie.
type Ranked[K comparable] struct {
	Key      K
	Rank     int
	TieCount int
}

// RankWithTies ranks values by better. Keys break ordering ties so the
// result is deterministic; they never change a rank.
func RankWithTies[K cmp.Ordered](values map[K]float64, better gamespecdomain.Better) []Ranked[K] {
	keys := make([]K, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b K) int {
		va, vb := values[a], values[b]
		if va != vb {
			if better == gamespecdomain.Higher {
				return cmp.Compare(vb, va)
			}
			return cmp.Compare(va, vb)
		}
		return cmp.Compare(a, b)
	})

	out := make([]Ranked[K], 0, len(keys))
	for i := 0; i < len(keys); {
		j := i + 1
		for j < len(keys) && values[keys[j]] == values[keys[i]] {
			j++
		}
		for _, k := range keys[i:j] {
			out = append(out, Ranked[K]{Key: k, Rank: i + 1, TieCount: j - i})
		}
		i = j
	}
	return out
}

// beats reports whether a beats b.
func beats(a, b float64, dir gamespecdomain.Better) bool {
	if dir == gamespecdomain.Higher {
		return a > b
	}
	return a < b
}
