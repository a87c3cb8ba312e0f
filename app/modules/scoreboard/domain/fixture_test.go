package scoreboarddomain

import (
	"strconv"
	"testing"
	"time"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

var t0 = time.Date(2026, 6, 6, 8, 0, 0, 0, time.UTC)

const testTee sharedtypes.TeeID = "blue"

// eighteen returns a par 72 tee whose hole n has allocation n.
func eighteen() golftypes.Tee {
	pars := []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 4, 3, 5, 4, 4, 3, 4, 5}
	tee := golftypes.Tee{
		ID:      testTee,
		Name:    "Blue",
		Ratings: map[golftypes.HoleScope]golftypes.Rating{golftypes.All18: {CourseRating: 72, SlopeRating: 128}},
	}
	for i, par := range pars {
		tee.Holes = append(tee.Holes, golftypes.TeeHole{Number: i + 1, Par: par, Allocation: i + 1})
	}
	return tee
}

func ptr[T any](v T) *T { return &v }

func gross(v int, at time.Time) golftypes.ScoreValue {
	return golftypes.ScoreValue{K: golftypes.KeyGross, V: strconv.Itoa(v), TS: at, By: "scorer"}
}

func flag(name string, at time.Time) golftypes.ScoreValue {
	return golftypes.ScoreValue{K: name, V: "true", TS: at, By: "scorer"}
}

// row is one player's line on a hole: the team they play for, their gross
// (0 for unscored) and the junk they mark.
type row struct {
	player string
	team   string
	gross  int
	junk   []string
}

// board builds a game over the given holes. rows[h] lists the players on
// holes[h]; handicaps fixes each player's course handicap.
type board struct {
	holes     []string
	rows      map[string][]row
	handicaps map[string]int
	specs     []gamespecdomain.GameSpec
	options   map[string]golftypes.OptionValue
	mults     map[string][]golftypes.MultiplierInstance
}

func (b board) input(t *testing.T) Input {
	t.Helper()
	game := golftypes.Game{ID: "game-1", Name: "test", Options: b.options}
	rounds := map[string]*golftypes.Round{}
	var order []string

	for hi, hole := range b.holes {
		gh := golftypes.GameHole{Hole: hole, Multipliers: b.mults[hole]}
		teamIdx := map[string]int{}
		for pi, r := range b.rows[hole] {
			if r.team != "" {
				idx, ok := teamIdx[r.team]
				if !ok {
					idx = len(gh.Teams)
					teamIdx[r.team] = idx
					gh.Teams = append(gh.Teams, golftypes.Team{ID: sharedtypes.TeamID(r.team)})
				}
				gh.Teams[idx].PlayerIDs = append(gh.Teams[idx].PlayerIDs, sharedtypes.PlayerID(r.player))
			}

			rd, ok := rounds[r.player]
			if !ok {
				rd = &golftypes.Round{
					ID:       sharedtypes.RoundID("round-" + r.player),
					GameID:   game.ID,
					PlayerID: sharedtypes.PlayerID(r.player),
					TeeID:    testTee,
				}
				if ch, ok := b.handicaps[r.player]; ok {
					rd.CourseHandicap = ptr(ch)
				} else {
					rd.CourseHandicap = ptr(0)
				}
				rounds[r.player] = rd
				order = append(order, r.player)
			}
			at := t0.Add(time.Duration(hi*10+pi) * time.Minute)
			score := golftypes.Score{Hole: hole}
			if r.gross > 0 {
				score.Values = append(score.Values, gross(r.gross, at))
			}
			for _, j := range r.junk {
				score.Values = append(score.Values, flag(j, at))
			}
			if len(score.Values) > 0 {
				rd.Scores = append(rd.Scores, score)
			}
		}
		game.Holes = append(game.Holes, gh)
	}

	in := Input{
		Specs: b.specs,
		Tees:  map[sharedtypes.TeeID]golftypes.Tee{testTee: eighteen()},
	}
	for _, id := range order {
		in.Rounds = append(in.Rounds, *rounds[id])
		game.Players = append(game.Players, golftypes.Player{ID: sharedtypes.PlayerID(id), Name: id})
	}
	in.Game = game
	return in
}

func compute(t *testing.T, in Input) Scoreboard {
	t.Helper()
	sb, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return sb
}

const (
	downTheMost  = "{'team_down_the_most': [{'getPrevHole': []}, {'var': 'team'}]}"
	allThePoints = "{'===': [{'var': 'team.points'}, {'var': 'possiblePoints'}]}"
)

func fivePoints() gamespecdomain.GameSpec {
	return gamespecdomain.GameSpec{
		Name:     "five_points",
		Version:  1,
		Disp:     "Five Points",
		SpecType: gamespecdomain.SpecTypePoints,
		Junk: []gamespecdomain.JunkOption{
			{Name: "low_ball", Seq: 1, Value: 2, Scope: gamespecdomain.JunkScopeTeam, BasedOn: gamespecdomain.BasedOnNet, Calculation: gamespecdomain.JunkCalcBestBall, Better: gamespecdomain.Lower, Limit: gamespecdomain.LimitOneTeamPerGroup},
			{Name: "low_total", Seq: 2, Value: 2, Scope: gamespecdomain.JunkScopeTeam, BasedOn: gamespecdomain.BasedOnNet, Calculation: gamespecdomain.JunkCalcSum, Better: gamespecdomain.Lower, Limit: gamespecdomain.LimitOneTeamPerGroup},
			{Name: "prox", Seq: 3, Value: 1, Scope: gamespecdomain.JunkScopePlayer, BasedOn: gamespecdomain.BasedOnUser, Limit: gamespecdomain.LimitOnePerGroup},
			{Name: "birdie", Seq: 4, Value: 1, Scope: gamespecdomain.JunkScopePlayer, BasedOn: gamespecdomain.BasedOnGross, ScoreToPar: "exactly -1"},
			{Name: "eagle", Seq: 5, Value: 2, Scope: gamespecdomain.JunkScopePlayer, BasedOn: gamespecdomain.BasedOnGross, ScoreToPar: "exactly -2"},
		},
		Multipliers: []gamespecdomain.MultiplierOption{
			{Name: "pre_double", Seq: 1, Value: 2, BasedOn: gamespecdomain.BasedOnUser, Scope: gamespecdomain.MultScopeRestOfNine, Availability: downTheMost},
			{Name: "double", Seq: 2, Value: 2, BasedOn: gamespecdomain.BasedOnUser, Scope: gamespecdomain.MultScopeHole, Availability: downTheMost},
			{Name: "double_back", Seq: 3, Value: 2, BasedOn: gamespecdomain.BasedOnUser, Scope: gamespecdomain.MultScopeHole,
				Availability: "{'and': [{'team_second_to_last': [{'getPrevHole': []}, {'var': 'team'}]}, {'other_team_multiplied_with': [{'getCurrHole': []}, {'var': 'team'}, 'double']}]}"},
			{Name: "birdie_bbq", Seq: 4, Value: 2, BasedOn: "birdie", Scope: gamespecdomain.MultScopeHole, Availability: allThePoints},
			{Name: "eagle_bbq", Seq: 5, Value: 4, BasedOn: "eagle", Scope: gamespecdomain.MultScopeHole, Availability: allThePoints},
		},
	}
}
