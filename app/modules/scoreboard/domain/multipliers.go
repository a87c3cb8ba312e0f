package scoreboarddomain

import (
	"cmp"
	"slices"
	"strconv"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// Reason recorded on a user multiplier whose availability failed.
const reasonUnavailable = "unavailable"

const defaultSegmentLength = 6

type multKind int

const (
	multUser multKind = iota
	multAutomatic
	multChained
)

// userInstance is a multiplier a user activated, resolved to the index of
// its first hole in play order.
type userInstance struct {
	golftypes.MultiplierInstance
	firstIdx int
}

func (u userInstance) key() string {
	return u.Name + "|" + string(u.Team) + "|" + u.FirstHole
}

// collectInstances gathers the user activated multipliers of a game. An
// instance without a first hole starts on the hole it was recorded on.
// Instances outside the holes in play are dropped, duplicates keep the
// earliest activation.
func collectInstances(g golftypes.Game, holes []string) []userInstance {
	index := make(map[string]int, len(holes))
	for i, h := range holes {
		index[h] = i
	}

	var all []userInstance
	for _, gh := range g.Holes {
		for _, m := range gh.Multipliers {
			if m.FirstHole == "" {
				m.FirstHole = gh.Hole
			}
			idx, ok := index[m.FirstHole]
			if !ok {
				continue
			}
			all = append(all, userInstance{MultiplierInstance: m, firstIdx: idx})
		}
	}
	slices.SortFunc(all, func(a, b userInstance) int {
		return cmp.Or(
			cmp.Compare(a.firstIdx, b.firstIdx),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.Team, b.Team),
			a.At.Compare(b.At),
			cmp.Compare(a.Value, b.Value),
			cmp.Compare(a.By, b.By),
		)
	})

	seen := make(map[string]bool, len(all))
	out := make([]userInstance, 0, len(all))
	for _, u := range all {
		if seen[u.key()] {
			continue
		}
		seen[u.key()] = true
		out = append(out, u)
	}
	return out
}

func (e *engine) multiplierKind(m gamespecdomain.MultiplierOption) multKind {
	if m.SubType == gamespecdomain.SubTypeAutomatic || m.SubType == gamespecdomain.SubTypeBBQ {
		return multAutomatic
	}
	if m.BasedOn == "" || m.BasedOn == gamespecdomain.BasedOnUser {
		return multUser
	}
	if slices.ContainsFunc(e.spec.Junk, func(j gamespecdomain.JunkOption) bool { return j.Name == m.BasedOn }) {
		return multAutomatic
	}
	if slices.ContainsFunc(e.spec.Multipliers, func(o gamespecdomain.MultiplierOption) bool { return o.Name == m.BasedOn }) {
		return multChained
	}
	return multUser
}

// evaluateMultipliers activates multipliers on the hole in dependency order
// and sets every team's factor. Games without teams have no multipliers.
func (e *engine) evaluateMultipliers(hc *holeContext) {
	ids := hc.teamIDs()
	if len(ids) == 0 {
		return
	}
	for _, m := range e.mults {
		switch e.multiplierKind(m) {
		case multAutomatic:
			e.automaticMultiplier(hc, m)
		case multChained:
			e.chainedMultiplier(hc, m)
		default:
			e.userMultiplier(hc, m)
		}
	}
	for _, id := range ids {
		t := hc.hole.Teams[id]
		t.Factor = teamFactor(t.Multipliers)
	}
}

func (e *engine) userMultiplier(hc *holeContext, m gamespecdomain.MultiplierOption) {
	for _, inst := range e.instances {
		if inst.Name != m.Name || hc.index < inst.firstIdx || hc.index > e.lastIndex(inst, m) {
			continue
		}
		targets := hc.targets(m, inst.Team)
		if len(targets) == 0 {
			continue
		}

		// Availability is decided once, on the first hole of the instance.
		avail, decided := e.available[inst.key()]
		if !decided {
			avail = e.instanceAvailable(hc, m, inst)
			e.available[inst.key()] = avail
		}

		applied := AppliedMultiplier{
			Name:      m.Name,
			Value:     m.Factor(),
			Override:  m.Override,
			Applied:   avail,
			FirstHole: inst.FirstHole,
			By:        inst.Team,
		}
		if m.InputValue && inst.Value > 0 {
			applied.Value = inst.Value
		}
		if !avail {
			if hc.index != inst.firstIdx {
				continue
			}
			applied.Reason = reasonUnavailable
		}
		for _, t := range targets {
			t.Multipliers = append(t.Multipliers, applied)
		}
	}
}

// targets returns the teams a multiplier activated by team applies to.
func (hc *holeContext) targets(m gamespecdomain.MultiplierOption, team sharedtypes.TeamID) []*TeamHoleResult {
	switch m.ScopeOrDefault() {
	case gamespecdomain.MultScopeTeam, gamespecdomain.MultScopePlayer:
		if team != "" {
			if t, ok := hc.hole.Teams[team]; ok {
				return []*TeamHoleResult{t}
			}
			return nil
		}
	}
	ids := hc.teamIDs()
	out := make([]*TeamHoleResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, hc.hole.Teams[id])
	}
	return out
}

// instanceAvailable evaluates the availability of a user multiplier for the
// activating team. Without a team it is available when any team may use it.
func (e *engine) instanceAvailable(hc *holeContext, m gamespecdomain.MultiplierOption, inst userInstance) bool {
	expr, ok := e.compiled.availability[m.Name]
	if !ok {
		return true
	}
	if inst.Team != "" {
		t, ok := hc.hole.Teams[inst.Team]
		return ok && expr.EvalBool(hc.teamEnv(t))
	}
	for _, id := range hc.teamIDs() {
		if expr.EvalBool(hc.teamEnv(hc.hole.Teams[id])) {
			return true
		}
	}
	return false
}

// lastIndex returns the index of the last hole a user instance covers.
func (e *engine) lastIndex(inst userInstance, m gamespecdomain.MultiplierOption) int {
	last := len(e.holes) - 1
	switch m.ScopeOrDefault() {
	case gamespecdomain.MultScopeGame:
		return last
	case gamespecdomain.MultScopeSegment:
		return min(inst.firstIdx+e.segmentLength()-1, last)
	case gamespecdomain.MultScopeRestOfNine:
		first, err := strconv.Atoi(inst.FirstHole)
		if err != nil {
			return last
		}
		end := 9
		if first > 9 {
			end = 18
		}
		idx := inst.firstIdx
		for i := inst.firstIdx + 1; i <= last; i++ {
			n, err := strconv.Atoi(e.holes[i])
			if err != nil || n < first || n > end {
				break
			}
			idx = i
		}
		return idx
	}
	return inst.firstIdx
}

func (e *engine) segmentLength() int {
	if v, ok := e.option(gamespecdomain.OptTeamChangeEvery, ""); ok {
		if n, ok := v.Float(); ok && n >= 1 {
			return int(n)
		}
	}
	if e.spec.Teams.ChangeEvery > 0 {
		return e.spec.Teams.ChangeEvery
	}
	return defaultSegmentLength
}

// automaticMultiplier applies a multiplier triggered by junk. Hole scope
// applies it to every team once any team triggers; team scope only to the
// teams that triggered it.
func (e *engine) automaticMultiplier(hc *holeContext, m gamespecdomain.MultiplierOption) {
	if m.BasedOn == "" {
		return
	}
	expr, hasAvail := e.compiled.availability[m.Name]

	var triggered []sharedtypes.TeamID
	for _, id := range hc.teamIDs() {
		t := hc.hole.Teams[id]
		if hc.teamJunkCount(t, m.BasedOn) == 0 {
			continue
		}
		if hasAvail && !expr.EvalBool(hc.teamEnv(t)) {
			continue
		}
		triggered = append(triggered, id)
	}
	if len(triggered) == 0 {
		return
	}

	applied := func(by sharedtypes.TeamID) AppliedMultiplier {
		return AppliedMultiplier{
			Name:      m.Name,
			Value:     m.Factor(),
			Override:  m.Override,
			Applied:   true,
			FirstHole: hc.hole.Hole,
			By:        by,
		}
	}
	if m.ScopeOrDefault() == gamespecdomain.MultScopeTeam {
		for _, id := range triggered {
			t := hc.hole.Teams[id]
			t.Multipliers = append(t.Multipliers, applied(id))
		}
		return
	}
	for _, id := range hc.teamIDs() {
		t := hc.hole.Teams[id]
		t.Multipliers = append(t.Multipliers, applied(triggered[0]))
	}
}

// chainedMultiplier is active for a team wherever the multiplier it is based
// on is applied to that team.
func (e *engine) chainedMultiplier(hc *holeContext, m gamespecdomain.MultiplierOption) {
	expr, hasAvail := e.compiled.availability[m.Name]
	for _, id := range hc.teamIDs() {
		t := hc.hole.Teams[id]
		idx := slices.IndexFunc(t.Multipliers, func(a AppliedMultiplier) bool {
			return a.Name == m.BasedOn && a.Applied
		})
		if idx < 0 {
			continue
		}
		if hasAvail && !expr.EvalBool(hc.teamEnv(t)) {
			continue
		}
		ref := t.Multipliers[idx]
		value := m.Value
		if value == 0 {
			value = ref.Value
		}
		t.Multipliers = append(t.Multipliers, AppliedMultiplier{
			Name:      m.Name,
			Value:     value,
			Override:  m.Override,
			Applied:   true,
			FirstHole: ref.FirstHole,
			By:        ref.By,
		})
	}
}

// teamFactor multiplies the applied factors. The first applied override
// replaces the product.
func teamFactor(ms []AppliedMultiplier) float64 {
	f := 1.0
	for _, m := range ms {
		if !m.Applied {
			continue
		}
		if m.Override {
			return m.Value
		}
		f *= m.Value
	}
	return f
}
