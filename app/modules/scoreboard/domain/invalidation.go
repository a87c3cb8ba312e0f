package scoreboarddomain

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

const reasonNoLongerAvailable = "availability condition no longer met"

// InvalidatedMultiplier is a user multiplier that was applied before a score
// edit and is unavailable after it.
type InvalidatedMultiplier struct {
	Hole   string             `json:"hole"`
	Team   sharedtypes.TeamID `json:"team,omitempty"`
	Name   string             `json:"name"`
	Disp   string             `json:"disp,omitempty"`
	Reason string             `json:"reason"`
}

// ScoreImpact is a team's total before and after the edit.
type ScoreImpact struct {
	Team      sharedtypes.TeamID `json:"team"`
	Current   float64            `json:"current"`
	Projected float64            `json:"projected"`
}

// Invalidation lists what a retroactive score edit took away.
type Invalidation struct {
	Multipliers []InvalidatedMultiplier `json:"multipliers"`
	Impact      []ScoreImpact           `json:"impact"`
}

// HasInvalidations reports whether the edit invalidated anything.
func (i Invalidation) HasInvalidations() bool { return len(i.Multipliers) > 0 }

// DetectInvalidations compares the scoreboard computed before an edit of
// hole with the one computed after it. Availability is decided on a
// multiplier's first hole from the holes before it, so only instances
// starting after the edited hole can change.
func DetectInvalidations(spec gamespecdomain.GameSpec, before, after Scoreboard, hole string) Invalidation {
	out := Invalidation{Multipliers: []InvalidatedMultiplier{}}
	holes := after.Meta.HolesInPlay
	edited := slices.Index(holes, hole)

	if edited >= 0 {
		seen := make(map[string]bool)
		for _, h := range holes[edited+1:] {
			hr, ok := after.Holes[h]
			if !ok {
				continue
			}
			for _, id := range slices.Sorted(maps.Keys(hr.Teams)) {
				for _, m := range hr.Teams[id].Multipliers {
					if m.Applied || m.Reason != reasonUnavailable || m.FirstHole != h {
						continue
					}
					key := m.Name + "|" + string(m.By) + "|" + m.FirstHole
					if seen[key] || !appliedOn(before, h, id, m) {
						continue
					}
					seen[key] = true
					out.Multipliers = append(out.Multipliers, InvalidatedMultiplier{
						Hole:   h,
						Team:   m.By,
						Name:   m.Name,
						Disp:   multiplierDisp(spec, m.Name),
						Reason: reasonNoLongerAvailable,
					})
				}
			}
		}
		explainDependents(spec, out.Multipliers)
	}

	for _, id := range slices.Sorted(maps.Keys(after.Cumulative.Teams)) {
		impact := ScoreImpact{Team: id, Projected: after.Cumulative.Teams[id].Points}
		if tc, ok := before.Cumulative.Teams[id]; ok {
			impact.Current = tc.Points
		}
		out.Impact = append(out.Impact, impact)
	}
	return out
}

// appliedOn reports whether the same activation was applied to the team on
// the hole of the earlier scoreboard.
func appliedOn(sb Scoreboard, hole string, team sharedtypes.TeamID, m AppliedMultiplier) bool {
	hr, ok := sb.Holes[hole]
	if !ok {
		return false
	}
	t, ok := hr.Teams[team]
	if !ok {
		return false
	}
	return slices.ContainsFunc(t.Multipliers, func(a AppliedMultiplier) bool {
		return a.Applied && a.Name == m.Name && a.By == m.By && a.FirstHole == m.FirstHole
	})
}

// explainDependents points a multiplier that needed another team's
// multiplier on the same hole at the invalidation that removed it.
func explainDependents(spec gamespecdomain.GameSpec, items []InvalidatedMultiplier) {
	for i := range items {
		avail := multiplierAvailability(spec, items[i].Name)
		if !strings.Contains(avail, "other_team_multiplied_with") {
			continue
		}
		for _, other := range items {
			if other.Hole != items[i].Hole || other.Team == items[i].Team || !mentions(avail, other.Name) {
				continue
			}
			items[i].Reason = fmt.Sprintf("depends on team %s's %s", other.Team, cmp.Or(other.Disp, other.Name))
			break
		}
	}
}

func mentions(expr, name string) bool {
	return strings.Contains(expr, "'"+name+"'") || strings.Contains(expr, `"`+name+`"`)
}

func multiplierDisp(spec gamespecdomain.GameSpec, name string) string {
	for _, m := range spec.Multipliers {
		if m.Name == name {
			return m.Disp
		}
	}
	return ""
}

func multiplierAvailability(spec gamespecdomain.GameSpec, name string) string {
	for _, m := range spec.Multipliers {
		if m.Name == name {
			return m.Availability
		}
	}
	return ""
}
