package scoreboarddomain

import (
	"cmp"
	"slices"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// logicEnv evaluates junk logic and multiplier availability for a player
// or a team on the hole being scored.
type logicEnv struct {
	hc     *holeContext
	team   *TeamHoleResult
	player *PlayerHoleResult
}

var _ gamespecdomain.Env = (*logicEnv)(nil)

func (hc *holeContext) playerEnv(p *PlayerHoleResult) *logicEnv {
	env := &logicEnv{hc: hc, player: p}
	if tid, ok := hc.teamOf(p.PlayerID); ok {
		env.team = hc.hole.Teams[tid]
	}
	return env
}

func (hc *holeContext) teamEnv(t *TeamHoleResult) *logicEnv {
	return &logicEnv{hc: hc, team: t}
}

func intVar(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func (l *logicEnv) Var(path string) any {
	hr := l.hc.hole
	switch path {
	case "hole":
		return hr.Hole
	case "par":
		return intVar(hr.Par)
	case "possiblePoints":
		return hr.PossiblePoints
	}
	if l.team != nil {
		switch path {
		case "team.points":
			return l.team.RawPoints
		case "team.runningTotal":
			return l.hc.previousTotal(l.team.TeamID)
		case "team.rank":
			return l.team.Rank
		case "team.lowBall":
			return intVar(l.team.LowBall)
		case "team.total":
			return intVar(l.team.Total)
		}
	}
	if l.player != nil {
		switch path {
		case "player.gross":
			return intVar(l.player.Gross)
		case "player.net":
			return intVar(l.player.Net)
		case "player.pops":
			return l.player.Pops
		case "player.rank":
			return l.player.Rank
		case "player.scoreToPar":
			return intVar(l.player.ScoreToPar)
		}
	}
	return nil
}

// RankWithTies matches the player's rank when evaluating player junk, the
// team's rank otherwise.
func (l *logicEnv) RankWithTies(rank, tieCount int) bool {
	switch {
	case l.player != nil:
		return l.player.Rank > 0 && l.player.Rank == rank && l.player.TieCount == tieCount
	case l.team != nil:
		return l.team.Rank > 0 && l.team.Rank == rank && l.team.TieCount == tieCount
	}
	return false
}

func (l *logicEnv) resolve(ref gamespecdomain.TeamRef) *TeamHoleResult {
	if l.team == nil || ref != gamespecdomain.TeamOther {
		return l.team
	}
	for _, id := range l.hc.teamIDs() {
		if id != l.team.TeamID {
			return l.hc.hole.Teams[id]
		}
	}
	return nil
}

// standings returns team totals worst first. Through the previous hole they
// are running totals; the current hole adds this hole's points before
// multipliers.
func (l *logicEnv) standings(ref gamespecdomain.HoleRef) ([]sharedtypes.TeamID, map[sharedtypes.TeamID]float64, bool) {
	if ref != gamespecdomain.HoleCurr && l.hc.prev == nil {
		return nil, nil, false
	}
	ids := l.hc.teamIDs()
	totals := make(map[sharedtypes.TeamID]float64, len(ids))
	for _, id := range ids {
		totals[id] = l.hc.previousTotal(id)
		if ref == gamespecdomain.HoleCurr {
			totals[id] += l.hc.hole.Teams[id].RawPoints
		}
	}
	lower := l.hc.lowerPointsBetter()
	slices.SortStableFunc(ids, func(a, b sharedtypes.TeamID) int {
		if lower {
			return cmp.Compare(totals[b], totals[a])
		}
		return cmp.Compare(totals[a], totals[b])
	})
	return ids, totals, true
}

func allEqual(totals map[sharedtypes.TeamID]float64) bool {
	first, set := 0.0, false
	for _, v := range totals {
		if !set {
			first, set = v, true
			continue
		}
		if v != first {
			return false
		}
	}
	return true
}

// TeamDownTheMost holds with no previous hole, when every team is level, or
// when the team shares the worst total.
func (l *logicEnv) TeamDownTheMost(hole gamespecdomain.HoleRef, ref gamespecdomain.TeamRef) bool {
	t := l.resolve(ref)
	if t == nil {
		return false
	}
	ids, totals, ok := l.standings(hole)
	if !ok || allEqual(totals) {
		return true
	}
	return totals[t.TeamID] == totals[ids[0]]
}

// TeamSecondToLast holds with no previous hole, when every team is level,
// or when the team shares the second worst total.
func (l *logicEnv) TeamSecondToLast(hole gamespecdomain.HoleRef, ref gamespecdomain.TeamRef) bool {
	t := l.resolve(ref)
	if t == nil {
		return false
	}
	ids, totals, ok := l.standings(hole)
	if !ok || allEqual(totals) {
		return true
	}
	if len(ids) < 2 {
		return false
	}
	return totals[t.TeamID] == totals[ids[1]]
}

// OtherTeamMultipliedWith reports whether a team other than this one
// activated the named multiplier on the hole.
func (l *logicEnv) OtherTeamMultipliedWith(name string) bool {
	var self sharedtypes.TeamID
	if l.team != nil {
		self = l.team.TeamID
	}
	for _, t := range l.hc.hole.Teams {
		for _, m := range t.Multipliers {
			if m.Name == name && m.Applied && m.By != "" && m.By != self {
				return true
			}
		}
	}
	return false
}

func (l *logicEnv) CountJunk(ref gamespecdomain.TeamRef, junk string) int {
	t := l.resolve(ref)
	if t == nil {
		if l.player != nil {
			return countNamed(l.player.Junk, junk)
		}
		return 0
	}
	return l.hc.teamJunkCount(t, junk)
}

func (l *logicEnv) PlayersOnTeam(ref gamespecdomain.TeamRef) int {
	if t := l.resolve(ref); t != nil {
		return len(t.PlayerIDs)
	}
	return 0
}

func (l *logicEnv) HolePar() int {
	if l.hc.hole.Par == nil {
		return 0
	}
	return *l.hc.hole.Par
}

// ExistingPreMultiplierTotal compares the team's points on the hole before
// multipliers with threshold.
func (l *logicEnv) ExistingPreMultiplierTotal(threshold float64) bool {
	return l.team != nil && l.team.RawPoints >= threshold
}

func countNamed(junk []AwardedJunk, name string) int {
	n := 0
	for _, a := range junk {
		if a.Name == name && a.Counted {
			n++
		}
	}
	return n
}

// teamJunkCount counts counted awards of junk held by the team or its
// members on the hole.
func (hc *holeContext) teamJunkCount(t *TeamHoleResult, junk string) int {
	n := countNamed(t.Junk, junk)
	for _, pid := range t.PlayerIDs {
		if p, ok := hc.hole.Players[pid]; ok {
			n += countNamed(p.Junk, junk)
		}
	}
	return n
}

func (hc *holeContext) previousTotal(id sharedtypes.TeamID) float64 {
	if hc.prev == nil {
		return 0
	}
	if t, ok := hc.prev.Teams[id]; ok {
		return t.RunningTotal
	}
	return 0
}

func (hc *holeContext) lowerPointsBetter() bool {
	v, ok := hc.e.option(gamespecdomain.OptBetterPoints, hc.hole.Hole)
	return ok && gamespecdomain.Better(v.String()) == gamespecdomain.Lower
}
