package scoreboarddomain

import (
	"errors"
	"slices"
	"strconv"
	"testing"
	"time"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
)

func TestCompute_FivePointsVectors(t *testing.T) {
	type want struct{ raw, hnt float64 }
	tests := []struct {
		name  string
		rows  []row
		pops  map[string]int
		team1 want
		team2 want
		bbq   bool
	}{
		{
			name:  "prox only",
			rows:  []row{{"p1", "1", 4, []string{"prox"}}, {"p2", "1", 5, nil}, {"p3", "2", 5, nil}, {"p4", "2", 4, nil}},
			team1: want{1, 1}, team2: want{0, -1},
		},
		{
			name:  "one point prox against low total",
			rows:  []row{{"p1", "1", 4, []string{"prox"}}, {"p2", "1", 5, nil}, {"p3", "2", 4, nil}, {"p4", "2", 4, nil}},
			team1: want{1, -1}, team2: want{2, 1},
		},
		{
			name:  "three to two",
			rows:  []row{{"p1", "1", 4, []string{"prox"}}, {"p2", "1", 7, nil}, {"p3", "2", 5, nil}, {"p4", "2", 5, nil}},
			team1: want{3, 1}, team2: want{2, -1},
		},
		{
			name:  "clean sweep",
			rows:  []row{{"p1", "1", 4, []string{"prox"}}, {"p2", "1", 5, nil}, {"p3", "2", 5, nil}, {"p4", "2", 5, nil}},
			team1: want{5, 5}, team2: want{0, -5},
		},
		{
			name:  "birdie without bbq because of prox",
			rows:  []row{{"p1", "1", 3, nil}, {"p2", "1", 4, nil}, {"p3", "2", 4, nil}, {"p4", "2", 4, []string{"prox"}}},
			team1: want{5, 4}, team2: want{1, -4},
		},
		{
			name:  "birdie without bbq because of tied total",
			rows:  []row{{"p1", "1", 3, []string{"prox"}}, {"p2", "1", 5, nil}, {"p3", "2", 4, nil}, {"p4", "2", 4, nil}},
			team1: want{4, 4}, team2: want{0, -4},
		},
		{
			name:  "birdie without bbq because of lost total",
			rows:  []row{{"p1", "1", 3, []string{"prox"}}, {"p2", "1", 6, nil}, {"p3", "2", 4, nil}, {"p4", "2", 4, nil}},
			team1: want{4, 2}, team2: want{2, -2},
		},
		{
			name:  "birdie chop",
			rows:  []row{{"p1", "1", 3, []string{"prox"}}, {"p2", "1", 6, nil}, {"p3", "2", 3, nil}, {"p4", "2", 4, nil}},
			team1: want{2, -1}, team2: want{3, 1},
		},
		{
			name:  "net birdie ties low ball",
			rows:  []row{{"p1", "1", 3, []string{"prox"}}, {"p2", "1", 6, nil}, {"p3", "2", 4, nil}, {"p4", "2", 4, nil}},
			pops:  map[string]int{"p3": 1},
			team1: want{2, 0}, team2: want{2, 0},
		},
		{
			name:  "birdie bbq",
			rows:  []row{{"p1", "1", 3, []string{"prox"}}, {"p2", "1", 4, nil}, {"p3", "2", 4, nil}, {"p4", "2", 4, nil}},
			team1: want{6, 12}, team2: want{0, -12},
			bbq:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := board{
				holes:     []string{"1"},
				rows:      map[string][]row{"1": tt.rows},
				handicaps: tt.pops,
				specs:     []gamespecdomain.GameSpec{fivePoints()},
			}.input(t)
			sb := compute(t, in)

			hole := sb.Holes["1"]
			for id, w := range map[sharedtypes.TeamID]want{"1": tt.team1, "2": tt.team2} {
				team := hole.Teams[id]
				if team.RawPoints != w.raw {
					t.Errorf("team %s RawPoints = %v, want %v", id, team.RawPoints, w.raw)
				}
				if team.HoleNetTotal == nil || *team.HoleNetTotal != w.hnt {
					t.Errorf("team %s HoleNetTotal = %v, want %v", id, deref(team.HoleNetTotal), w.hnt)
				}
			}

			bbq := slices.ContainsFunc(hole.Teams["1"].Multipliers, func(m AppliedMultiplier) bool {
				return m.Name == "birdie_bbq" && m.Applied
			})
			if bbq != tt.bbq {
				t.Errorf("birdie_bbq applied = %v, want %v", bbq, tt.bbq)
			}
			if tt.bbq {
				if got := deref(hole.Teams["1"].Points); got != 12.0 {
					t.Errorf("team 1 Points = %v, want 12", got)
				}
				if f := hole.Teams["2"].Factor; f != 2 {
					t.Errorf("team 2 Factor = %v, want 2 for a hole scoped bbq", f)
				}
			}
		})
	}
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestCompute_FivePointsBasicGame(t *testing.T) {
	holes := []string{"1", "2"}
	rows := map[string][]row{
		"1": {{"p1", "1", 5, nil}, {"p2", "1", 6, nil}, {"p3", "2", 4, []string{"prox"}}, {"p4", "2", 5, nil}},
		"2": {{"p1", "1", 4, nil}, {"p2", "1", 5, []string{"prox"}}, {"p3", "2", 5, nil}, {"p4", "2", 6, nil}},
	}
	in := board{holes: holes, rows: rows, specs: []gamespecdomain.GameSpec{fivePoints()}}.input(t)
	indices := map[sharedtypes.PlayerID]string{"p1": "10.5", "p2": "15.2", "p3": "8.0", "p4": "12.3"}
	for i := range in.Rounds {
		in.Rounds[i].CourseHandicap = nil
		in.Rounds[i].HandicapIndex = indices[in.Rounds[i].PlayerID]
	}

	sb := compute(t, in)

	wantCH := map[sharedtypes.PlayerID]int{"p1": 12, "p2": 17, "p3": 9, "p4": 14}
	for _, r := range in.Rounds {
		sum := sb.Rounds[r.ID]
		if sum.CourseHandicap == nil || *sum.CourseHandicap != wantCH[r.PlayerID] {
			t.Errorf("%s course handicap = %v, want %d", r.PlayerID, deref(sum.CourseHandicap), wantCH[r.PlayerID])
		}
		if got := sum.Pops["1"]; got != 1 {
			t.Errorf("%s pops on hole 1 = %d, want 1", r.PlayerID, got)
		}
	}

	var keys []string
	for k := range sb.Holes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if diff := cmp.Diff(holes, keys); diff != "" {
		t.Errorf("hole keys mismatch (-want +got):\n%s", diff)
	}
	if !sb.Meta.HasTeams || sb.Meta.Thru != 2 {
		t.Errorf("Meta = %+v, want teams thru 2", sb.Meta)
	}
	for _, id := range []sharedtypes.TeamID{"1", "2"} {
		last := sb.Holes["2"].Teams[id]
		if sb.Cumulative.Teams[id].Points != last.RunningTotal {
			t.Errorf("team %s cumulative points = %v, want running total %v", id, sb.Cumulative.Teams[id].Points, last.RunningTotal)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	in := board{
		holes: []string{"1", "2"},
		rows: map[string][]row{
			"1": {{"p1", "1", 3, []string{"prox"}}, {"p2", "1", 4, nil}, {"p3", "2", 4, nil}, {"p4", "2", 4, nil}},
			"2": {{"p1", "1", 5, nil}, {"p2", "1", 5, nil}, {"p3", "2", 4, []string{"prox"}}, {"p4", "2", 6, nil}},
		},
		specs: []gamespecdomain.GameSpec{fivePoints()},
	}.input(t)

	first := compute(t, in)
	second := compute(t, in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second Compute differs (-first +second):\n%s", diff)
	}
}

func TestCompute_PermutationInvariant(t *testing.T) {
	faker := gofakeit.New(uint64(7))
	in := board{
		holes: []string{"1", "2", "3"},
		rows: map[string][]row{
			"1": {{"p1", "1", 3, []string{"prox"}}, {"p2", "1", 4, nil}, {"p3", "2", 4, nil}, {"p4", "2", 4, nil}},
			"2": {{"p1", "1", 5, nil}, {"p2", "1", 5, nil}, {"p3", "2", 4, []string{"prox"}}, {"p4", "2", 6, nil}},
			"3": {{"p1", "1", 4, nil}, {"p2", "2", 3, nil}, {"p3", "1", 4, []string{"prox"}}, {"p4", "2", 5, []string{"prox"}}},
		},
		specs: []gamespecdomain.GameSpec{fivePoints()},
	}.input(t)
	// A correction written later must win wherever it lands in the log.
	in.Rounds[1].Scores[0].Values = append(in.Rounds[1].Scores[0].Values, gross(6, t0.Add(90*time.Minute)))
	want := compute(t, in)

	for run := 0; run < 20; run++ {
		shuffled := in
		shuffled.Rounds = make([]golftypes.Round, len(in.Rounds))
		for i, r := range in.Rounds {
			r.Scores = slices.Clone(r.Scores)
			for j := range r.Scores {
				r.Scores[j].Values = slices.Clone(r.Scores[j].Values)
				faker.ShuffleAnySlice(r.Scores[j].Values)
			}
			faker.ShuffleAnySlice(r.Scores)
			shuffled.Rounds[i] = r
		}
		faker.ShuffleAnySlice(shuffled.Rounds)

		if diff := cmp.Diff(want, compute(t, shuffled)); diff != "" {
			t.Fatalf("run %d: Compute depends on input order (-want +got):\n%s", run, diff)
		}
	}
	if got := deref(want.Holes["1"].Players["p2"].Gross); got != 6 {
		t.Errorf("p2 gross on hole 1 = %v, want the later correction 6", got)
	}
}

func strokePlay() gamespecdomain.GameSpec {
	return gamespecdomain.GameSpec{
		Name:     "stroke",
		Version:  1,
		SpecType: gamespecdomain.SpecTypeStroke,
		Scoring: gamespecdomain.Scoring{Hole: []gamespecdomain.ScoringRule{
			{Name: "net_to_par", Scope: gamespecdomain.ScopeHole, Calculation: gamespecdomain.CalcNetToPar, Unit: gamespecdomain.UnitStrokes},
			{Name: "total", Scope: gamespecdomain.ScopeRound, Calculation: gamespecdomain.CalcRunningTotal, BasedOn: "net_to_par", Unit: gamespecdomain.UnitStrokes},
		}},
	}
}

func TestCompute_PartialRound(t *testing.T) {
	tee := eighteen()
	holes := make([]string, 0, 18)
	rows := map[string][]row{}
	wantGross := 0
	for n := 1; n <= 18; n++ {
		key := strconv.Itoa(n)
		holes = append(holes, key)
		if n <= 10 {
			th, _ := tee.Hole(n)
			rows[key] = []row{{player: "p1", gross: th.Par + 1}}
			wantGross += th.Par + 1
		} else {
			rows[key] = []row{{player: "p1"}}
		}
	}
	sb := compute(t, board{holes: holes, rows: rows, specs: []gamespecdomain.GameSpec{strokePlay()}}.input(t))

	if sb.Meta.Thru != 10 {
		t.Errorf("Meta.Thru = %d, want 10", sb.Meta.Thru)
	}
	pc := sb.Cumulative.Players["p1"]
	if pc.Thru != 10 || pc.HolesScored != 10 {
		t.Errorf("Thru/HolesScored = %d/%d, want 10/10", pc.Thru, pc.HolesScored)
	}
	if pc.Gross != wantGross || pc.GrossToPar != 10 || pc.NetToPar != 10 {
		t.Errorf("cumulative = %+v, want gross %d and 10 over", pc, wantGross)
	}
	if pc.Rules["net_to_par"] != 10 || pc.Rules["total"] != 10 {
		t.Errorf("cumulative rules = %v, want net_to_par and total 10", pc.Rules)
	}
	if p := sb.Holes["11"].Players["p1"]; p.Gross != nil || p.Net != nil || p.Points != nil {
		t.Errorf("hole 11 = %+v, want nil gross, net and points", p)
	}
	if c := sb.Holes["11"].Rules["net_to_par"].Cells["p1"]; c.Value != nil || c.Incomplete == "" {
		t.Errorf("hole 11 cell = %+v, want incomplete", c)
	}
	if sb.Meta.HolesScored["p1"] != 10 {
		t.Errorf("Meta.HolesScored = %v, want p1 10", sb.Meta.HolesScored)
	}
}

func TestCompute_NonProgressiveWaitsForRound(t *testing.T) {
	spec := strokePlay()
	off := false
	spec.Scoring.Hole[1].Progressive = &off
	in := board{
		holes: []string{"1", "2"},
		rows:  map[string][]row{"1": {{player: "p1", gross: 5}}, "2": {{player: "p1"}}},
		specs: []gamespecdomain.GameSpec{spec},
	}.input(t)

	sb := compute(t, in)
	if c := sb.Holes["1"].Rules["total"].Cells["p1"]; c.Value != nil {
		t.Errorf("total on hole 1 = %v, want blank until every hole is scored", *c.Value)
	}
	if c := sb.Holes["1"].Rules["net_to_par"].Cells["p1"]; c.Value == nil || *c.Value != 1 {
		t.Errorf("net_to_par on hole 1 = %v, want 1", deref(c.Value))
	}
}

func TestCompute_OnePerGroup(t *testing.T) {
	tests := []struct {
		name string
		rows []row
	}{
		{
			name: "same team",
			rows: []row{{"p1", "1", 4, []string{"prox"}}, {"p2", "1", 4, []string{"prox"}}, {"p3", "2", 5, nil}, {"p4", "2", 5, nil}},
		},
		{
			name: "no teams",
			rows: []row{{"p1", "", 4, []string{"prox"}}, {"p2", "", 4, []string{"prox"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := board{holes: []string{"1"}, rows: map[string][]row{"1": tt.rows}, specs: []gamespecdomain.GameSpec{fivePoints()}}.input(t)
			sb := compute(t, in)

			counted := 0
			for _, p := range sb.Holes["1"].Players {
				for _, a := range p.Junk {
					if a.Name != "prox" {
						continue
					}
					if a.Counted {
						counted++
						if a.PlayerID != "p1" {
							t.Errorf("counted prox went to %s, want the first marker p1", a.PlayerID)
						}
					} else if a.Excluded != ErrLimitExceeded.Error() {
						t.Errorf("excluded prox reason = %q, want %q", a.Excluded, ErrLimitExceeded)
					}
				}
			}
			if counted != 1 {
				t.Errorf("counted prox awards = %d, want 1", counted)
			}
		})
	}
}

func matchSpec() gamespecdomain.GameSpec {
	return gamespecdomain.GameSpec{
		Name:     "match",
		Version:  1,
		SpecType: gamespecdomain.SpecTypeMatch,
		Junk: []gamespecdomain.JunkOption{
			{Name: "low_net", Seq: 1, Value: 1, Scope: gamespecdomain.JunkScopeTeam, BasedOn: gamespecdomain.BasedOnNet, Calculation: gamespecdomain.JunkCalcBestBall, Better: gamespecdomain.Lower, Limit: gamespecdomain.LimitOneTeamPerGroup},
		},
	}
}

func TestCompute_MatchDecidedEarly(t *testing.T) {
	tee := eighteen()
	holes := make([]string, 0, 18)
	rows := map[string][]row{}
	for n := 1; n <= 18; n++ {
		key := strconv.Itoa(n)
		holes = append(holes, key)
		if n > 15 {
			rows[key] = []row{{player: "a", team: "A"}, {player: "b", team: "B"}}
			continue
		}
		th, _ := tee.Hole(n)
		other := th.Par
		if n <= 4 {
			other = th.Par + 1
		}
		rows[key] = []row{{player: "a", team: "A", gross: th.Par}, {player: "b", team: "B", gross: other}}
	}
	sb := compute(t, board{holes: holes, rows: rows, specs: []gamespecdomain.GameSpec{matchSpec()}}.input(t))

	if got := sb.Holes["14"].Teams["A"]; got.MatchOver || got.MatchDiff != "4" {
		t.Errorf("hole 14 = %q over=%v, want 4 up and live", got.MatchDiff, got.MatchOver)
	}
	for _, h := range []string{"15", "18"} {
		got := sb.Holes[h].Teams["B"]
		if !got.MatchOver || got.MatchDiff != "4 & 3" {
			t.Errorf("hole %s = %q over=%v, want decided 4 & 3", h, got.MatchDiff, got.MatchOver)
		}
	}
	if tc := sb.Cumulative.Teams["A"]; tc.MatchDiff != "4 & 3" || tc.Rank != 1 {
		t.Errorf("cumulative A = %+v, want rank 1 and 4 & 3", tc)
	}
	if got := sb.SortedTeams(); !slices.Equal(got, []sharedtypes.TeamID{"A", "B"}) {
		t.Errorf("SortedTeams() = %v, want [A B]", got)
	}
}

func TestCompute_SkinsCarry(t *testing.T) {
	spec := gamespecdomain.GameSpec{
		Name:     "skins",
		Version:  1,
		SpecType: gamespecdomain.SpecTypeSkins,
		Scoring: gamespecdomain.Scoring{Hole: []gamespecdomain.ScoringRule{
			{Name: "skins", Scope: gamespecdomain.ScopeMatch, Calculation: gamespecdomain.CalcSkins, Unit: gamespecdomain.UnitSkins, Value: 1, Ties: gamespecdomain.TiesCarry},
		}},
	}
	rows := map[string][]row{
		"1": {{player: "p1", gross: 4}, {player: "p2", gross: 4}, {player: "p3", gross: 5}},
		"2": {{player: "p1", gross: 4}, {player: "p2", gross: 5}, {player: "p3", gross: 4}},
		"3": {{player: "p1", gross: 2}, {player: "p2", gross: 3}, {player: "p3", gross: 3}},
	}
	sb := compute(t, board{holes: []string{"1", "2", "3"}, rows: rows, specs: []gamespecdomain.GameSpec{spec}}.input(t))

	for hole, carry := range map[string]float64{"1": 1, "2": 2, "3": 0} {
		if got := sb.Holes[hole].Rules["skins"].Carryover; got != carry {
			t.Errorf("hole %s carryover = %v, want %v", hole, got, carry)
		}
	}
	if c := sb.Holes["3"].Rules["skins"].Cells["p1"]; c.Value == nil || *c.Value != 3 {
		t.Errorf("p1 skins on hole 3 = %v, want 3", deref(c.Value))
	}
	if got := sb.Cumulative.Players["p1"].Rules["skins"]; got != 3 {
		t.Errorf("p1 cumulative skins = %v, want 3", got)
	}
	if got := sb.SortedPlayers(); got[0] != "p1" {
		t.Errorf("SortedPlayers()[0] = %s, want p1", got[0])
	}
}

func TestCompute_MatchScopedRuleSumsHoles(t *testing.T) {
	spec := gamespecdomain.GameSpec{
		Name:     "skins",
		Version:  1,
		SpecType: gamespecdomain.SpecTypeSkins,
		Scoring: gamespecdomain.Scoring{Hole: []gamespecdomain.ScoringRule{
			{Name: "skins", Scope: gamespecdomain.ScopeMatch, Calculation: gamespecdomain.CalcSkins, Unit: gamespecdomain.UnitSkins, Value: 1, Ties: gamespecdomain.TiesNone},
		}},
	}
	rows := map[string][]row{
		"1": {{player: "p1", gross: 3}, {player: "p2", gross: 4}},
		"2": {{player: "p1", gross: 3}, {player: "p2", gross: 4}},
	}
	sb := compute(t, board{holes: []string{"1", "2"}, rows: rows, specs: []gamespecdomain.GameSpec{spec}}.input(t))

	if got := sb.Cumulative.Players["p1"].Rules["skins"]; got != 2 {
		t.Errorf("p1 cumulative skins = %v, want 2 for two holes won", got)
	}
	if got := sb.Cumulative.Players["p2"].Rules["skins"]; got != 0 {
		t.Errorf("p2 cumulative skins = %v, want 0", got)
	}
}

func TestCompute_StablefordOnToParRule(t *testing.T) {
	spec := gamespecdomain.GameSpec{
		Name:     "stableford",
		Version:  1,
		SpecType: gamespecdomain.SpecTypePoints,
		Scoring: gamespecdomain.Scoring{Hole: []gamespecdomain.ScoringRule{
			{Name: "ntp", Scope: gamespecdomain.ScopeHole, Calculation: gamespecdomain.CalcNetToPar, Unit: gamespecdomain.UnitStrokes},
			{Name: "pts", Scope: gamespecdomain.ScopeHole, Calculation: gamespecdomain.CalcStableford, BasedOn: "ntp", Unit: gamespecdomain.UnitPoints},
			{Name: "gross_pts", Scope: gamespecdomain.ScopeHole, Calculation: gamespecdomain.CalcStableford, BasedOn: gamespecdomain.BasedOnGross, Unit: gamespecdomain.UnitStrokes},
		}},
	}
	// Hole 1 is a par 4.
	rows := map[string][]row{"1": {{player: "p1", gross: 5}, {player: "p2", gross: 3}}}
	sb := compute(t, board{holes: []string{"1"}, rows: rows, specs: []gamespecdomain.GameSpec{spec}}.input(t))

	want := map[string]any{"p1": 1.0, "p2": 3.0}
	if diff := cmp.Diff(want, cells(sb.Holes["1"].Rules["pts"])); diff != "" {
		t.Errorf("stableford on ntp mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, cells(sb.Holes["1"].Rules["gross_pts"])); diff != "" {
		t.Errorf("stableford on gross mismatch (-want +got):\n%s", diff)
	}
	pc := sb.Cumulative.Players["p1"]
	if pc.Points != 1 || pc.NetPoints != 0 {
		t.Errorf("p1 points/net points = %v/%v, want 1/0 without teams", pc.Points, pc.NetPoints)
	}
}

func TestCompute_TeamCumulativeWithIncompleteTeam(t *testing.T) {
	rows := map[string][]row{
		"1": {{"p1", "1", 4, []string{"prox"}}, {"p2", "1", 5, nil}, {"p3", "2", 5, nil}, {"p4", "2", 4, nil}},
		"2": {{"p1", "1", 4, []string{"prox"}}, {"p2", "1", 5, nil}, {"p3", "2", 5, nil}, {"p4", "2", 0, nil}},
	}
	sb := compute(t, board{holes: []string{"1", "2"}, rows: rows, specs: []gamespecdomain.GameSpec{fivePoints()}}.input(t))

	if sb.Holes["2"].Teams["2"].Points != nil {
		t.Fatalf("team 2 points on hole 2 = %v, want nil while p4 is unscored", *sb.Holes["2"].Teams["2"].Points)
	}
	for _, id := range []sharedtypes.TeamID{"1", "2"} {
		want, holes := 0.0, 0
		for _, hole := range []string{"1", "2"} {
			if p := sb.Holes[hole].Teams[id].Points; p != nil {
				want += *p
				holes++
			}
		}
		tc := sb.Cumulative.Teams[id]
		if tc.Points != want || tc.HolesScored != holes {
			t.Errorf("team %s cumulative = %v over %d holes, want %v over %d", id, tc.Points, tc.HolesScored, want, holes)
		}
		if got := sb.Meta.TeamHolesScored[id]; got != holes {
			t.Errorf("Meta.TeamHolesScored[%s] = %d, want %d", id, got, holes)
		}
	}
	if got, running := sb.Cumulative.Teams["1"].Points, sb.Holes["2"].Teams["1"].RunningTotal; got == running {
		t.Errorf("team 1 cumulative = running total %v, want hole 2 points included", got)
	}

	// Players carry their team's hole points and hole net totals.
	p1 := sb.Cumulative.Players["p1"]
	if p1.Points != sb.Cumulative.Teams["1"].Points {
		t.Errorf("p1 points = %v, want team 1 total %v", p1.Points, sb.Cumulative.Teams["1"].Points)
	}
	hnt := deref(sb.Holes["1"].Teams["1"].HoleNetTotal)
	if p1.NetPoints != hnt || sb.Cumulative.Teams["1"].NetPoints != hnt {
		t.Errorf("net points = %v (team %v), want hole 1 net total %v", p1.NetPoints, sb.Cumulative.Teams["1"].NetPoints, hnt)
	}
	if p4 := sb.Cumulative.Players["p4"]; p4.HolesScored != 1 || p4.Points != deref(sb.Holes["1"].Teams["2"].Points) {
		t.Errorf("p4 = %+v, want team 2 hole 1 points over 1 hole", p4)
	}
	if sb.Meta.HolesScored["p4"] != 1 {
		t.Errorf("Meta.HolesScored = %v, want p4 1", sb.Meta.HolesScored)
	}
}

func TestCompute_PossiblePointsStable(t *testing.T) {
	spec := strokePlay()
	spec.Junk = []gamespecdomain.JunkOption{
		{Name: "greenie", Seq: 1, Value: 0.1, Scope: gamespecdomain.JunkScopePlayer, BasedOn: gamespecdomain.BasedOnUser},
		{Name: "sandy", Seq: 2, Value: 0.2, Scope: gamespecdomain.JunkScopePlayer, BasedOn: gamespecdomain.BasedOnUser},
		{Name: "polie", Seq: 3, Value: 0.7, Scope: gamespecdomain.JunkScopePlayer, BasedOn: gamespecdomain.BasedOnUser},
	}
	rows := map[string][]row{"1": {
		{player: "p1", gross: 4, junk: []string{"greenie", "polie"}},
		{player: "p2", gross: 4, junk: []string{"greenie", "sandy"}},
		{player: "p3", gross: 5, junk: []string{"sandy", "polie"}},
	}}
	in := board{holes: []string{"1"}, rows: rows, specs: []gamespecdomain.GameSpec{spec}}.input(t)

	want := compute(t, in).Holes["1"].PossiblePoints
	for run := 0; run < 50; run++ {
		if got := compute(t, in).Holes["1"].PossiblePoints; got != want {
			t.Fatalf("run %d: possible points = %v, want %v", run, got, want)
		}
	}
}

func TestCompute_Errors(t *testing.T) {
	if _, err := Compute(Input{}); !errors.Is(err, ErrNoGameSpec) {
		t.Errorf("Compute() without spec error = %v, want ErrNoGameSpec", err)
	}

	bad := fivePoints()
	bad.Version = 0
	_, err := Compute(Input{Specs: []gamespecdomain.GameSpec{bad}})
	if !errors.Is(err, gamespecdomain.ErrMalformedGameSpec) {
		t.Errorf("Compute() with malformed spec error = %v, want ErrMalformedGameSpec", err)
	}
}

func TestCompute_MissingTee(t *testing.T) {
	in := board{holes: []string{"1"}, rows: map[string][]row{"1": {{player: "p1", gross: 4}}}, specs: []gamespecdomain.GameSpec{strokePlay()}}.input(t)
	in.Rounds[0].CourseHandicap = nil
	in.Rounds[0].HandicapIndex = "9.4"
	in.Tees = nil

	sb := compute(t, in)
	sum := sb.Rounds[in.Rounds[0].ID]
	if sum.CourseHandicap != nil || sum.Incomplete == "" {
		t.Errorf("round summary = %+v, want no course handicap and a reason", sum)
	}
	p := sb.Holes["1"].Players["p1"]
	if p.Gross == nil || *p.Gross != 4 || len(p.Incomplete) == 0 {
		t.Errorf("player row = %+v, want gross 4 flagged incomplete", p)
	}
	if c := sb.Holes["1"].Rules["net_to_par"].Cells["p1"]; c.Value != nil {
		t.Errorf("net_to_par without par = %v, want nil", *c.Value)
	}
}

func TestMergeSpecs(t *testing.T) {
	extra := gamespecdomain.GameSpec{
		Name:    "extras",
		Version: 1,
		Junk: []gamespecdomain.JunkOption{
			{Name: "prox", Value: 5, BasedOn: gamespecdomain.BasedOnUser},
			{Name: "sandy", Value: 1, BasedOn: gamespecdomain.BasedOnUser},
		},
	}
	merged, err := MergeSpecs([]gamespecdomain.GameSpec{fivePoints(), extra})
	if err != nil {
		t.Fatalf("MergeSpecs() error: %v", err)
	}
	var names []string
	for _, j := range merged.Junk {
		names = append(names, j.Name)
		if j.Name == "prox" && j.Value != 1 {
			t.Errorf("prox value = %v, want the primary spec's 1", j.Value)
		}
	}
	if !slices.Contains(names, "sandy") {
		t.Errorf("merged junk = %v, want sandy added", names)
	}
}
