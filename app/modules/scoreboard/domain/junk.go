package scoreboarddomain

import (
	"cmp"
	"slices"
	"time"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

type qualifier struct {
	id sharedtypes.PlayerID
	at time.Time
}

// evaluateJunk awards every junk on the hole in seq order.
func (e *engine) evaluateJunk(hc *holeContext) {
	for _, j := range e.junk {
		if j.ScopeOrDefault() == gamespecdomain.JunkScopeTeam {
			e.teamJunk(hc, j)
			continue
		}
		e.playerJunk(hc, j)
	}
}

func (e *engine) playerJunk(hc *holeContext, j gamespecdomain.JunkOption) {
	var qs []qualifier
	for _, pid := range hc.playerIDs() {
		if at, ok := e.playerQualifies(hc, j, pid); ok {
			qs = append(qs, qualifier{id: pid, at: at})
		}
	}
	if len(qs) == 0 {
		return
	}
	// First qualifier wins: earliest qualifying write, then player id.
	slices.SortFunc(qs, func(a, b qualifier) int {
		return cmp.Or(a.at.Compare(b.at), cmp.Compare(a.id, b.id))
	})

	counted := make(map[sharedtypes.PlayerID]bool, len(qs))
	switch j.Limit {
	case gamespecdomain.LimitOnePerGroup:
		taken := make(map[sharedtypes.TeamID]bool)
		for _, q := range qs {
			group, _ := hc.teamOf(q.id)
			if !taken[group] {
				taken[group] = true
				counted[q.id] = true
			}
		}
	case gamespecdomain.LimitOneTeamPerGroup:
		groups := make(map[sharedtypes.TeamID]bool)
		for _, q := range qs {
			group, _ := hc.teamOf(q.id)
			groups[group] = true
		}
		if len(groups) == 1 {
			for _, q := range qs {
				counted[q.id] = true
			}
		}
	default:
		for _, q := range qs {
			counted[q.id] = true
		}
	}

	for _, q := range qs {
		a := AwardedJunk{
			Name:     j.Name,
			Value:    j.Value,
			PlayerID: q.id,
			Counted:  counted[q.id],
			At:       q.at,
		}
		if tid, ok := hc.teamOf(q.id); ok {
			a.TeamID = tid
		}
		if !a.Counted {
			a.Excluded = ErrLimitExceeded.Error()
		}
		p := hc.hole.Players[q.id]
		p.Junk = append(p.Junk, a)
	}
}

// playerQualifies reports whether a player earned a junk and when the
// write that earned it was made.
func (e *engine) playerQualifies(hc *holeContext, j gamespecdomain.JunkOption, pid sharedtypes.PlayerID) (time.Time, bool) {
	hole := hc.hole.Hole
	hs := e.scores[hole][pid]
	p := hc.hole.Players[pid]

	based := j.BasedOnOrDefault()
	if based == gamespecdomain.BasedOnUser {
		if !hs.Marked(j.Name) {
			return time.Time{}, false
		}
		return e.firstWrite(pid, hole, j.Name, scoredomain.IsMarked), true
	}
	if p.Gross == nil {
		return time.Time{}, false
	}

	ok := false
	if cond, has := e.compiled.scoreToPar[j.Name]; has {
		toPar := p.ScoreToPar
		if based == gamespecdomain.BasedOnNet {
			toPar = p.NetToPar
		}
		if toPar == nil || !cond.Match(*toPar) {
			return time.Time{}, false
		}
		ok = true
	}
	if expr, has := e.compiled.junkLogic[j.Name]; has {
		if !expr.EvalBool(hc.playerEnv(p)) {
			return time.Time{}, false
		}
		ok = true
	}
	if !ok {
		return time.Time{}, false
	}

	gross := *p.Gross
	return e.firstWrite(pid, hole, golftypes.KeyGross, func(v string) bool {
		g, ok := scoredomain.ParseGross(v)
		return ok && g == gross
	}), true
}

// firstWrite returns the earliest write of key on the hole whose value
// satisfies match. Re-entering the same value later keeps the first time.
func (e *engine) firstWrite(pid sharedtypes.PlayerID, hole, key string, match func(string) bool) time.Time {
	var first time.Time
	for _, r := range e.rounds {
		if r.PlayerID != pid {
			continue
		}
		score, _ := r.Score(hole)
		for _, v := range score.Values {
			if v.K != key || !match(v.V) {
				continue
			}
			if first.IsZero() || v.TS.Before(first) {
				first = v.TS
			}
		}
	}
	return first
}

// teamJunk awards team junk once every team on the hole is fully scored.
func (e *engine) teamJunk(hc *holeContext, j gamespecdomain.JunkOption) {
	hr := hc.hole
	ids := hc.teamIDs()
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		if !hr.Teams[id].Complete(hr.Players) {
			return
		}
	}

	var winners []sharedtypes.TeamID
	if j.Calculation == gamespecdomain.JunkCalcLogic {
		expr, ok := e.compiled.junkLogic[j.Name]
		if !ok {
			return
		}
		for _, id := range ids {
			if expr.EvalBool(hc.teamEnv(hr.Teams[id])) {
				winners = append(winners, id)
			}
		}
	} else {
		dir := j.Better.OrDefault(gamespecdomain.Lower)
		values := make(map[sharedtypes.TeamID]float64, len(ids))
		for _, id := range ids {
			values[id] = e.teamJunkValue(hr, hr.Teams[id], j, dir)
		}
		ranked := RankWithTies(values, dir)
		for _, r := range ranked {
			if r.Rank == 1 {
				winners = append(winners, r.Key)
			}
		}
	}
	if len(winners) > 1 && j.Limit != gamespecdomain.LimitNone {
		return
	}
	for _, id := range winners {
		t := hr.Teams[id]
		t.Junk = append(t.Junk, AwardedJunk{Name: j.Name, Value: j.Value, TeamID: id, Counted: true})
	}
}

// teamJunkValue is the team's best ball or sum of its members' based_on
// scores.
func (e *engine) teamJunkValue(hr *HoleResult, t *TeamHoleResult, j gamespecdomain.JunkOption, dir gamespecdomain.Better) float64 {
	var best *float64
	sum := 0.0
	for _, pid := range t.PlayerIDs {
		p := hr.Players[pid]
		score := p.Gross
		if j.BasedOnOrDefault() == gamespecdomain.BasedOnNet {
			score = p.Net
		}
		v := float64(*score)
		sum += v
		if best == nil || beats(v, *best, dir) {
			best = &v
		}
	}
	if j.Calculation == gamespecdomain.JunkCalcSum {
		return sum
	}
	return *best
}
