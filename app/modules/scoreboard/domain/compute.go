package scoreboarddomain

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	handicapdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/domain"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// engine carries the per call state of Compute. Nothing outlives a call.
type engine struct {
	in        Input
	spec      gamespecdomain.GameSpec
	overrides gamespecdomain.Overrides
	registry  Registry
	compiled  compiled

	holes     []string
	gameHoles map[string]golftypes.GameHole
	rounds    []golftypes.Round
	scores    map[string]map[sharedtypes.PlayerID]scoredomain.HoleScore
	instances []userInstance

	rules      []gamespecdomain.ScoringRule
	junk       []gamespecdomain.JunkOption
	mults      []gamespecdomain.MultiplierOption
	priorRules map[string][]*RuleResult
	available  map[string]bool

	sb *Scoreboard
}

// Compute builds the scoreboard for a game. It is pure: the same input
// always yields an equal scoreboard. Problems with single rounds or holes
// are recorded on the affected cells; an error is returned only when no
// usable gamespec is given.
func Compute(in Input) (Scoreboard, error) {
	spec, err := MergeSpecs(in.Specs)
	if err != nil {
		return Scoreboard{}, err
	}
	e := &engine{
		in:         in,
		spec:       spec,
		overrides:  gamespecdomain.OverridesFor(in.Game),
		registry:   in.Options.Registry,
		priorRules: make(map[string][]*RuleResult),
		available:  make(map[string]bool),
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if len(in.Options.Overrides) > 0 {
		game := maps.Clone(e.overrides.Game)
		if game == nil {
			game = make(map[string]golftypes.OptionValue, len(in.Options.Overrides))
		}
		maps.Copy(game, in.Options.Overrides)
		e.overrides.Game = game
	}
	if e.rules, err = gamespecdomain.RuleOrder(spec); err != nil {
		return Scoreboard{}, fmt.Errorf("%w: %v", gamespecdomain.ErrMalformedGameSpec, err)
	}
	if e.mults, err = gamespecdomain.MultiplierOrder(spec); err != nil {
		return Scoreboard{}, fmt.Errorf("%w: %v", gamespecdomain.ErrMalformedGameSpec, err)
	}
	e.junk = gamespecdomain.JunkOrder(spec)
	e.compiled = compile(spec)

	e.setup()
	e.scoreHoles()
	for i, hole := range e.holes {
		e.evaluateHole(i, hole)
	}
	e.matchPlay()
	e.cumulative()
	return *e.sb, nil
}

// MergeSpecs combines the gamespecs of a game. The first spec is primary;
// rules, options, junk and multipliers of the others are added when their
// names are not taken yet. The merged spec is validated.
func MergeSpecs(specs []gamespecdomain.GameSpec) (gamespecdomain.GameSpec, error) {
	if len(specs) == 0 {
		return gamespecdomain.GameSpec{}, ErrNoGameSpec
	}
	merged := specs[0]
	merged.Scoring.Hole = slices.Clone(merged.Scoring.Hole)
	merged.Options = slices.Clone(merged.Options)
	merged.Junk = slices.Clone(merged.Junk)
	merged.Multipliers = slices.Clone(merged.Multipliers)

	taken := make(map[string]bool)
	for _, r := range merged.Scoring.Hole {
		taken["r:"+r.Name] = true
	}
	for _, o := range merged.Options {
		taken["o:"+o.Name] = true
	}
	for _, j := range merged.Junk {
		taken["j:"+j.Name] = true
	}
	for _, m := range merged.Multipliers {
		taken["m:"+m.Name] = true
	}
	for _, s := range specs[1:] {
		for _, r := range s.Scoring.Hole {
			if !taken["r:"+r.Name] {
				taken["r:"+r.Name] = true
				merged.Scoring.Hole = append(merged.Scoring.Hole, r)
			}
		}
		for _, o := range s.Options {
			if !taken["o:"+o.Name] {
				taken["o:"+o.Name] = true
				merged.Options = append(merged.Options, o)
			}
		}
		for _, j := range s.Junk {
			if !taken["j:"+j.Name] {
				taken["j:"+j.Name] = true
				merged.Junk = append(merged.Junk, j)
			}
		}
		for _, m := range s.Multipliers {
			if !taken["m:"+m.Name] {
				taken["m:"+m.Name] = true
				merged.Multipliers = append(merged.Multipliers, m)
			}
		}
	}
	if err := gamespecdomain.Validate(merged); err != nil {
		return gamespecdomain.GameSpec{}, err
	}
	return merged, nil
}

// HolesInPlay returns the hole keys of a game in play order.
func HolesInPlay(g golftypes.Game) []string {
	if len(g.Holes) > 0 {
		out := make([]string, 0, len(g.Holes))
		for _, h := range g.Holes {
			out = append(out, h.Hole)
		}
		return out
	}
	nums := g.Scope.Holes.Numbers()
	out := make([]string, 0, len(nums))
	for _, n := range nums {
		out = append(out, strconv.Itoa(n))
	}
	return out
}

func (e *engine) option(name, hole string) (golftypes.OptionValue, bool) {
	return e.spec.OptionValue(name, hole, e.overrides)
}

func (e *engine) scope() golftypes.HoleScope {
	if e.in.Game.Scope.Holes == "" {
		return golftypes.All18
	}
	return e.in.Game.Scope.Holes
}

// setup resolves rounds, handicaps and pops.
func (e *engine) setup() {
	e.holes = HolesInPlay(e.in.Game)
	e.gameHoles = make(map[string]golftypes.GameHole, len(e.in.Game.Holes))
	for _, h := range e.in.Game.Holes {
		e.gameHoles[h.Hole] = h
	}

	rounds := slices.Clone(e.in.Rounds)
	slices.SortFunc(rounds, func(a, b golftypes.Round) int {
		return cmp.Or(
			cmp.Compare(a.PlayerID, b.PlayerID),
			cmp.Compare(a.Seq, b.Seq),
			cmp.Compare(a.ID, b.ID),
		)
	})
	seen := make(map[sharedtypes.PlayerID]bool, len(rounds))
	for _, r := range rounds {
		if seen[r.PlayerID] {
			continue
		}
		seen[r.PlayerID] = true
		e.rounds = append(e.rounds, r)
	}

	e.sb = &Scoreboard{
		Holes: make(map[string]*HoleResult, len(e.holes)),
		Cumulative: Cumulative{
			Players: make(map[sharedtypes.PlayerID]*PlayerCumulative, len(e.rounds)),
			Teams:   make(map[sharedtypes.TeamID]*TeamCumulative),
		},
		Meta: Meta{
			GameID:          e.in.Game.ID,
			HolesInPlay:     slices.Clone(e.holes),
			HolesScored:     make(map[sharedtypes.PlayerID]int, len(e.rounds)),
			TeamHolesScored: make(map[sharedtypes.TeamID]int),
		},
		Rounds: make(map[sharedtypes.RoundID]RoundSummary, len(e.rounds)),
	}

	effective := make(map[sharedtypes.PlayerID]int, len(e.rounds))
	for _, r := range e.rounds {
		sum := RoundSummary{PlayerID: r.PlayerID, Pops: make(map[string]int, len(e.holes))}
		course := r.CourseHandicap
		if course == nil {
			tee, ok := e.in.Tees[r.TeeID]
			if !ok {
				sum.Incomplete = fmt.Sprintf("%v: unknown tee %q", ErrIncompleteRuleInput, r.TeeID)
			} else if ch, err := handicapdomain.CourseHandicap(r.HandicapIndex, tee, e.scope()); err != nil {
				sum.Incomplete = err.Error()
			} else {
				course = &ch
			}
		}
		if course != nil {
			v := *course
			sum.CourseHandicap = &v
		}
		sum.EffectiveHandicap = handicapdomain.EffectiveHandicap(sum.CourseHandicap, r.GameHandicap)
		if sum.EffectiveHandicap != nil {
			effective[r.PlayerID] = *sum.EffectiveHandicap
		}
		e.sb.Rounds[r.ID] = sum
	}

	playing := map[handicapdomain.Mode]map[sharedtypes.PlayerID]int{
		handicapdomain.ModeFull: handicapdomain.ApplyMode(handicapdomain.ModeFull, effective),
		handicapdomain.ModeLow:  handicapdomain.ApplyMode(handicapdomain.ModeLow, effective),
		handicapdomain.ModeNone: handicapdomain.ApplyMode(handicapdomain.ModeNone, effective),
	}

	e.scores = make(map[string]map[sharedtypes.PlayerID]scoredomain.HoleScore, len(e.holes))
	for _, hole := range e.holes {
		mode := handicapdomain.ModeFull
		if v, ok := e.option(gamespecdomain.OptHandicapMode, hole); ok {
			mode = handicapdomain.ParseMode(v.String())
		}
		byPlayer := make(map[sharedtypes.PlayerID]scoredomain.HoleScore, len(e.rounds))
		for _, r := range e.rounds {
			pops := 0
			if th, ok := e.teeHole(r, hole); ok {
				pops = handicapdomain.Pops(th.Allocation, playing[mode][r.PlayerID])
			}
			score, _ := r.Score(hole)
			score.Hole = hole
			byPlayer[r.PlayerID] = scoredomain.Normalize(score, pops)
			e.sb.Rounds[r.ID].Pops[hole] = pops
		}
		e.scores[hole] = byPlayer
	}

	e.instances = collectInstances(e.in.Game, e.holes)
}

func (e *engine) teeHole(r golftypes.Round, hole string) (golftypes.TeeHole, bool) {
	tee, ok := e.in.Tees[r.TeeID]
	if !ok {
		return golftypes.TeeHole{}, false
	}
	return tee.HoleByKey(hole)
}

// referenceHole returns the par and allocation shown for a hole, taken from
// the first round whose tee has the hole.
func (e *engine) referenceHole(hole string) (golftypes.TeeHole, bool) {
	for _, r := range e.rounds {
		if th, ok := e.teeHole(r, hole); ok {
			return th, true
		}
	}
	return golftypes.TeeHole{}, false
}

// scoreHoles builds the player and team rows of every hole. Completion is
// known for the whole game before any rule runs.
func (e *engine) scoreHoles() {
	for _, hole := range e.holes {
		hr := &HoleResult{
			Hole:    hole,
			Players: make(map[sharedtypes.PlayerID]*PlayerHoleResult, len(e.rounds)),
			Teams:   make(map[sharedtypes.TeamID]*TeamHoleResult),
			Rules:   make(map[string]*RuleResult, len(e.rules)),
		}
		if th, ok := e.referenceHole(hole); ok {
			par, alloc := th.Par, th.Allocation
			hr.Par, hr.Allocation = &par, &alloc
		}

		for _, r := range e.rounds {
			hs := e.scores[hole][r.PlayerID]
			p := &PlayerHoleResult{
				PlayerID:    r.PlayerID,
				Gross:       hs.Gross,
				Pops:        hs.Pops,
				Net:         hs.Net,
				Junk:        []AwardedJunk{},
				Multipliers: []AppliedMultiplier{},
			}
			if th, ok := e.teeHole(r, hole); ok {
				p.ScoreToPar = scoredomain.ScoreToPar(hs.Gross, th.Par)
				p.NetToPar = scoredomain.ScoreToPar(hs.Net, th.Par)
			} else {
				p.Incomplete = append(p.Incomplete, fmt.Sprintf("%v: missing par and allocation", ErrIncompleteRuleInput))
			}
			if p.Gross != nil {
				hr.ScoresEntered++
			}
			hr.Players[r.PlayerID] = p
		}
		hr.Complete = len(hr.Players) > 0 && hr.ScoresEntered == len(hr.Players)

		for _, t := range e.gameHoles[hole].Teams {
			tr := &TeamHoleResult{
				TeamID:      t.ID,
				PlayerIDs:   slices.Clone(t.PlayerIDs),
				Junk:        []AwardedJunk{},
				Multipliers: []AppliedMultiplier{},
				Factor:      1,
			}
			slices.Sort(tr.PlayerIDs)
			for _, id := range tr.PlayerIDs {
				p, ok := hr.Players[id]
				if !ok || p.Gross == nil || p.Net == nil {
					continue
				}
				net := *p.Net
				if tr.LowBall == nil || net < *tr.LowBall {
					tr.LowBall = &net
				}
				total := net
				if tr.Total != nil {
					total += *tr.Total
				}
				tr.Total = &total
			}
			hr.Teams[t.ID] = tr
		}
		if len(hr.Teams) > 0 {
			e.sb.Meta.HasTeams = true
		}

		rankHole(hr)
		e.sb.Holes[hole] = hr
	}

	for _, hole := range e.holes {
		if !e.sb.Holes[hole].Complete {
			break
		}
		e.sb.Meta.Thru++
	}
}

// roundComplete reports whether every hole in play is fully scored.
func (e *engine) roundComplete() bool {
	return len(e.holes) > 0 && e.sb.Meta.Thru == len(e.holes)
}

// rankHole ranks players by net and teams by low ball, lower being better.
func rankHole(hr *HoleResult) {
	nets := make(map[sharedtypes.PlayerID]float64, len(hr.Players))
	for id, p := range hr.Players {
		if p.Net != nil && p.Gross != nil {
			nets[id] = float64(*p.Net)
		}
	}
	for _, r := range RankWithTies(nets, gamespecdomain.Lower) {
		hr.Players[r.Key].Rank = r.Rank
		hr.Players[r.Key].TieCount = r.TieCount
	}

	lows := make(map[sharedtypes.TeamID]float64, len(hr.Teams))
	for id, t := range hr.Teams {
		if t.LowBall != nil {
			lows[id] = float64(*t.LowBall)
		}
	}
	for _, r := range RankWithTies(lows, gamespecdomain.Lower) {
		hr.Teams[r.Key].Rank = r.Rank
		hr.Teams[r.Key].TieCount = r.TieCount
	}
}

// evaluateHole runs rules, junk, multipliers and points for one hole. Holes
// are evaluated in play order so earlier holes are final when a later hole
// looks back at them.
func (e *engine) evaluateHole(index int, hole string) {
	hr := e.sb.Holes[hole]
	var prev *HoleResult
	if index > 0 {
		prev = e.sb.Holes[e.holes[index-1]]
	}
	hc := &holeContext{e: e, index: index, hole: hr, prev: prev, gameHole: e.gameHoles[hole]}

	e.evaluateRules(hc)
	e.evaluateJunk(hc)
	hr.PossiblePoints = e.possiblePoints(hr)
	e.rawPoints(hr)
	e.evaluateMultipliers(hc)
	e.finishPoints(hc)
}

// holeContext is the view of one hole while it is being evaluated.
type holeContext struct {
	e        *engine
	index    int
	hole     *HoleResult
	prev     *HoleResult
	gameHole golftypes.GameHole
}

func (hc *holeContext) teamIDs() []sharedtypes.TeamID {
	return slices.Sorted(maps.Keys(hc.hole.Teams))
}

func (hc *holeContext) playerIDs() []sharedtypes.PlayerID {
	return slices.Sorted(maps.Keys(hc.hole.Players))
}

func (hc *holeContext) teamOf(id sharedtypes.PlayerID) (sharedtypes.TeamID, bool) {
	for _, tid := range hc.teamIDs() {
		if slices.Contains(hc.hole.Teams[tid].PlayerIDs, id) {
			return tid, true
		}
	}
	return "", false
}

func (hc *holeContext) par() *int { return hc.hole.Par }

// possiblePoints sums the junk a hole can award. Awards are summed in id
// order so the float total does not depend on map order.
func (e *engine) possiblePoints(hr *HoleResult) float64 {
	total := 0.0
	for _, j := range e.junk {
		if j.Limit != gamespecdomain.LimitNone {
			total += j.Value
			continue
		}
		for _, id := range slices.Sorted(maps.Keys(hr.Players)) {
			for _, a := range hr.Players[id].Junk {
				if a.Name == j.Name && a.Counted {
					total += a.Value
				}
			}
		}
		for _, id := range slices.Sorted(maps.Keys(hr.Teams)) {
			for _, a := range hr.Teams[id].Junk {
				if a.Name == j.Name && a.Counted {
					total += a.Value
				}
			}
		}
	}
	return total
}

// rawPoints sums rule points and counted junk before multipliers.
func (e *engine) rawPoints(hr *HoleResult) {
	for id, p := range hr.Players {
		if p.Gross == nil {
			continue
		}
		pts := e.rulePoints(hr, string(id), gamespecdomain.EntrantPlayer) + countedValue(p.Junk)
		p.Points = &pts
	}
	for id, t := range hr.Teams {
		raw := e.rulePoints(hr, string(id), gamespecdomain.EntrantTeam) + countedValue(t.Junk)
		for _, pid := range t.PlayerIDs {
			if p, ok := hr.Players[pid]; ok {
				raw += countedValue(p.Junk)
			}
		}
		t.RawPoints = raw
	}
}

func (e *engine) rulePoints(hr *HoleResult, id string, entrant gamespecdomain.Entrant) float64 {
	total := 0.0
	for _, r := range e.rules {
		if r.Unit != gamespecdomain.UnitPoints || r.EntrantOrDefault() != entrant {
			continue
		}
		if res, ok := hr.Rules[r.Name]; ok {
			if c, ok := res.Cells[id]; ok && c.Value != nil {
				total += *c.Value
			}
		}
	}
	return total
}

func countedValue(junk []AwardedJunk) float64 {
	total := 0.0
	for _, a := range junk {
		if a.Counted {
			total += a.Value
		}
	}
	return total
}

// finishPoints applies team factors and advances running totals. Running
// totals only move on holes where every team has points.
func (e *engine) finishPoints(hc *holeContext) {
	hr := hc.hole
	ids := hc.teamIDs()
	for _, id := range ids {
		t := hr.Teams[id]
		if t.Complete(hr.Players) {
			pts := t.RawPoints * t.Factor
			t.Points = &pts
		}
	}

	allEntered := len(ids) > 0
	for _, id := range ids {
		if hr.Teams[id].Points == nil {
			allEntered = false
		}
	}
	for _, id := range ids {
		t := hr.Teams[id]
		prevTotal := 0.0
		if hc.prev != nil {
			if pt, ok := hc.prev.Teams[id]; ok {
				prevTotal = pt.RunningTotal
			}
		}
		t.RunningTotal = prevTotal
		if allEntered {
			t.RunningTotal += *t.Points
		}
	}

	if len(ids) != 2 {
		return
	}
	sign := 1.0
	if hc.lowerPointsBetter() {
		sign = -1
	}
	a, b := hr.Teams[ids[0]], hr.Teams[ids[1]]
	if a.Points != nil && b.Points != nil {
		na := sign * (*a.Points - *b.Points)
		nb := -na
		a.HoleNetTotal, b.HoleNetTotal = &na, &nb
	}
	da := sign * (a.RunningTotal - b.RunningTotal)
	db := -da
	a.RunningDiff, b.RunningDiff = &da, &db
}

// matchPlay decides two team matches from running totals.
func (e *engine) matchPlay() {
	on := e.spec.SpecType == gamespecdomain.SpecTypeMatch
	if v, ok := e.option(gamespecdomain.OptMatchPlay, ""); ok && v.Bool() {
		on = true
	}
	if !on {
		return
	}

	over := false
	result := ""
	allScored := true
	for i, hole := range e.holes {
		hr := e.sb.Holes[hole]
		if len(hr.Teams) != 2 {
			continue
		}
		ids := slices.Sorted(maps.Keys(hr.Teams))
		a, b := hr.Teams[ids[0]], hr.Teams[ids[1]]
		if !hr.Complete {
			allScored = false
		}
		if over {
			a.MatchDiff, b.MatchDiff = result, result
			a.MatchOver, b.MatchOver = true, true
			continue
		}
		diff := a.RunningTotal - b.RunningTotal
		remaining := len(e.holes) - i - 1
		if allScored && abs(diff) > float64(remaining) {
			over = true
			result = FormatMatchResult(int(diff), remaining)
			a.MatchDiff, b.MatchDiff = result, result
			a.MatchOver, b.MatchOver = true, true
			continue
		}
		a.MatchDiff = formatNumber(diff)
		b.MatchDiff = formatNumber(-diff)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
