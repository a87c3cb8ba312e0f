package scoreboarddomain

import (
	"cmp"
	"maps"
	"slices"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// cumulative totals every player and team over the holes in play. Holes
// and entrants are walked in order so float sums are stable.
func (e *engine) cumulative() {
	sb := e.sb
	for _, r := range e.rounds {
		pc := &PlayerCumulative{Rules: make(map[string]float64)}
		for _, hole := range e.holes {
			hr := sb.Holes[hole]
			p, ok := hr.Players[r.PlayerID]
			if !ok || p.Gross == nil {
				continue
			}
			pc.HolesScored++
			pc.Gross += *p.Gross
			if p.Net != nil {
				pc.Net += *p.Net
			}
			if p.ScoreToPar != nil {
				pc.GrossToPar += *p.ScoreToPar
			}
			if p.NetToPar != nil {
				pc.NetToPar += *p.NetToPar
			}
			if t, ok := teamOn(hr, r.PlayerID); ok {
				if t.Points != nil {
					pc.Points += *t.Points
				}
				if t.HoleNetTotal != nil {
					pc.NetPoints += *t.HoleNetTotal
				}
			} else if p.Points != nil {
				pc.Points += *p.Points
			}
		}
		pc.Thru = pc.HolesScored
		e.playerRules(r.PlayerID, pc)
		sb.Cumulative.Players[r.PlayerID] = pc
		sb.Meta.HolesScored[r.PlayerID] = pc.HolesScored
	}

	nets := make(map[sharedtypes.PlayerID]float64, len(sb.Cumulative.Players))
	for id, pc := range sb.Cumulative.Players {
		if pc.HolesScored > 0 {
			nets[id] = float64(pc.Net)
		}
	}
	for _, r := range RankWithTies(nets, gamespecdomain.Lower) {
		pc := sb.Cumulative.Players[r.Key]
		pc.Rank, pc.TieCount = r.Rank, r.TieCount
	}

	for _, hole := range e.holes {
		hr := sb.Holes[hole]
		for _, id := range slices.Sorted(maps.Keys(hr.Teams)) {
			t := hr.Teams[id]
			tc, ok := sb.Cumulative.Teams[id]
			if !ok {
				tc = &TeamCumulative{}
				sb.Cumulative.Teams[id] = tc
			}
			if t.Points != nil {
				tc.Points += *t.Points
				tc.HolesScored++
			}
			if t.HoleNetTotal != nil {
				tc.NetPoints += *t.HoleNetTotal
			}
			tc.MatchDiff, tc.MatchOver = t.MatchDiff, t.MatchOver
		}
	}
	points := make(map[sharedtypes.TeamID]float64, len(sb.Cumulative.Teams))
	for id, tc := range sb.Cumulative.Teams {
		points[id] = tc.Points
		sb.Meta.TeamHolesScored[id] = tc.HolesScored
	}
	for _, r := range RankWithTies(points, gamespecdomain.Higher) {
		tc := sb.Cumulative.Teams[r.Key]
		tc.Rank, tc.TieCount = r.Rank, r.TieCount
	}
}

// teamOn returns the team a player belongs to on a hole.
func teamOn(hr *HoleResult, pid sharedtypes.PlayerID) (*TeamHoleResult, bool) {
	for _, id := range slices.Sorted(maps.Keys(hr.Teams)) {
		if t := hr.Teams[id]; slices.Contains(t.PlayerIDs, pid) {
			return t, true
		}
	}
	return nil, false
}

// carriesRunningValue reports whether each hole's cell of a rule is already
// a game to date value rather than a per hole result.
func carriesRunningValue(rule gamespecdomain.ScoringRule) bool {
	switch rule.Calculation {
	case gamespecdomain.CalcRunningTotal, gamespecdomain.CalcMatchStatus:
		return true
	}
	return rule.Scope == gamespecdomain.ScopeRound
}

// playerRules totals the player's rule values. Rules that carry a running
// value keep the last one reported; every other rule, match scoped ones
// included, is summed over the holes.
func (e *engine) playerRules(id sharedtypes.PlayerID, pc *PlayerCumulative) {
	for _, rule := range e.rules {
		if rule.EntrantOrDefault() != gamespecdomain.EntrantPlayer {
			continue
		}
		running := carriesRunningValue(rule)
		sum, seen := 0.0, false
		for _, hole := range e.holes {
			res, ok := e.sb.Holes[hole].Rules[rule.Name]
			if !ok {
				continue
			}
			c, ok := res.Cells[string(id)]
			if !ok || c.Value == nil {
				continue
			}
			seen = true
			if running {
				sum = *c.Value
			} else {
				sum += *c.Value
			}
		}
		if seen {
			pc.Rules[rule.Name] = sum
		}
	}
}

// SortedPlayers orders players by rank, unranked last, then net, then id.
func (s Scoreboard) SortedPlayers() []sharedtypes.PlayerID {
	ids := slices.Collect(maps.Keys(s.Cumulative.Players))
	slices.SortFunc(ids, func(a, b sharedtypes.PlayerID) int {
		pa, pb := s.Cumulative.Players[a], s.Cumulative.Players[b]
		return cmp.Or(
			compareRank(pa.Rank, pb.Rank),
			cmp.Compare(pa.Net, pb.Net),
			cmp.Compare(a, b),
		)
	})
	return ids
}

// SortedTeams orders teams by rank, then points, then id.
func (s Scoreboard) SortedTeams() []sharedtypes.TeamID {
	ids := slices.Collect(maps.Keys(s.Cumulative.Teams))
	slices.SortFunc(ids, func(a, b sharedtypes.TeamID) int {
		ta, tb := s.Cumulative.Teams[a], s.Cumulative.Teams[b]
		return cmp.Or(
			compareRank(ta.Rank, tb.Rank),
			cmp.Compare(tb.Points, ta.Points),
			cmp.Compare(a, b),
		)
	})
	return ids
}

func compareRank(a, b int) int {
	switch {
	case a == b:
		return 0
	case a == 0:
		return 1
	case b == 0:
		return -1
	}
	return cmp.Compare(a, b)
}
