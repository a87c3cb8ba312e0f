package scoreboarddomain

import (
	"time"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// Options are explicit engine settings. Nothing is read from the
// environment.
type Options struct {
	// Overrides replace game level option values.
	Overrides map[string]golftypes.OptionValue `json:"overrides,omitempty"`
	// Registry replaces the default calculation registry when set.
	Registry  Registry                         `json:"-"`
}

// Input is a snapshot of everything a scoreboard is computed from.
type Input struct {
	Game    golftypes.Game                      `json:"game"`
	Specs   []gamespecdomain.GameSpec           `json:"specs"`
	Rounds  []golftypes.Round                   `json:"rounds"`
	Tees    map[sharedtypes.TeeID]golftypes.Tee `json:"tees"`
	Options Options                             `json:"options"`
}

// AwardedJunk is one junk award on a hole. Awards beyond a junk's limit
// are kept with Counted false.
type AwardedJunk struct {
	Name     string               `json:"name"`
	Value    float64              `json:"value"`
	PlayerID sharedtypes.PlayerID `json:"player_id,omitempty"`
	TeamID   sharedtypes.TeamID   `json:"team_id,omitempty"`
	Counted  bool                 `json:"counted"`
	Excluded string               `json:"excluded,omitempty"`
	At       time.Time            `json:"at,omitempty"`
}

// AppliedMultiplier is a multiplier considered for a team on a hole.
type AppliedMultiplier struct {
	Name      string             `json:"name"`
	Value     float64            `json:"value"`
	Override  bool               `json:"override,omitempty"`
	Applied   bool               `json:"applied"`
	FirstHole string             `json:"first_hole,omitempty"`
	By        sharedtypes.TeamID `json:"by,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}

// RuleCell is one entrant's value for a rule on a hole. A nil Value means
// the cell could not be computed yet; Incomplete says why.
type RuleCell struct {
	Value      *float64 `json:"value"`
	Incomplete string   `json:"incomplete,omitempty"`
}

// RuleResult holds a rule's cells on one hole, keyed by entrant id.
type RuleResult struct {
	Cells       map[string]RuleCell `json:"cells"`
	Carryover   float64             `json:"carryover,omitempty"`
	MatchResult string              `json:"match_result,omitempty"`
}

// PlayerHoleResult is one player's result on a hole.
type PlayerHoleResult struct {
	PlayerID    sharedtypes.PlayerID `json:"player_id"`
	Gross       *int                 `json:"gross"`
	Pops        int                  `json:"pops"`
	Net         *int                 `json:"net"`
	ScoreToPar  *int                 `json:"score_to_par"`
	NetToPar    *int                 `json:"net_to_par"`
	Rank        int                  `json:"rank,omitempty"`
	TieCount    int                  `json:"tie_count,omitempty"`
	Junk        []AwardedJunk        `json:"junk"`
	Multipliers []AppliedMultiplier  `json:"multipliers"`
	Points      *float64             `json:"points"`
	Incomplete  []string             `json:"incomplete,omitempty"`
}

// TeamHoleResult is one team's result on a hole.
type TeamHoleResult struct {
	TeamID       sharedtypes.TeamID     `json:"team_id"`
	PlayerIDs    []sharedtypes.PlayerID `json:"player_ids"`
	LowBall      *int                   `json:"low_ball"`
	Total        *int                   `json:"total"`
	Rank         int                    `json:"rank,omitempty"`
	TieCount     int                    `json:"tie_count,omitempty"`
	Junk         []AwardedJunk          `json:"junk"`
	Multipliers  []AppliedMultiplier    `json:"multipliers"`
	Factor       float64                `json:"factor"`
	RawPoints    float64                `json:"raw_points"`
	Points       *float64               `json:"points"`
	HoleNetTotal *float64               `json:"hole_net_total,omitempty"`
	RunningTotal float64                `json:"running_total"`
	RunningDiff  *float64               `json:"running_diff,omitempty"`
	MatchDiff    string                 `json:"match_diff,omitempty"`
	MatchOver    bool                   `json:"match_over,omitempty"`
}

// Complete reports whether every member of the team has a gross.
func (t *TeamHoleResult) Complete(players map[sharedtypes.PlayerID]*PlayerHoleResult) bool {
	if len(t.PlayerIDs) == 0 {
		return false
	}
	for _, id := range t.PlayerIDs {
		p, ok := players[id]
		if !ok || p.Gross == nil {
			return false
		}
	}
	return true
}

// HoleResult is the scoreboard for one hole.
type HoleResult struct {
	Hole           string                                     `json:"hole"`
	Par            *int                                       `json:"par"`
	Allocation     *int                                       `json:"allocation"`
	Players        map[sharedtypes.PlayerID]*PlayerHoleResult `json:"players"`
	Teams          map[sharedtypes.TeamID]*TeamHoleResult     `json:"teams"`
	PossiblePoints float64                                    `json:"possible_points"`
	ScoresEntered  int                                        `json:"scores_entered"`
	Complete       bool                                       `json:"complete"`
	Rules          map[string]*RuleResult                     `json:"rules,omitempty"`
}

// PlayerCumulative sums a player's results over the holes they scored. On
// holes where the player is on a team, Points takes the team's hole points
// and NetPoints the team's hole net total.
type PlayerCumulative struct {
	Gross       int                `json:"gross"`
	GrossToPar  int                `json:"gross_to_par"`
	Net         int                `json:"net"`
	NetToPar    int                `json:"net_to_par"`
	Points      float64            `json:"points"`
	NetPoints   float64            `json:"net_points"`
	HolesScored int                `json:"holes_scored"`
	Thru        int                `json:"thru"`
	Rank        int                `json:"rank,omitempty"`
	TieCount    int                `json:"tie_count,omitempty"`
	Rules       map[string]float64 `json:"rules,omitempty"`
}

// TeamCumulative sums a team's results over complete holes. NetPoints is the
// sum of the team's hole net totals in two team games.
type TeamCumulative struct {
	Points      float64 `json:"points"`
	NetPoints   float64 `json:"net_points"`
	HolesScored int     `json:"holes_scored"`
	Rank        int     `json:"rank,omitempty"`
	TieCount    int     `json:"tie_count,omitempty"`
	MatchDiff   string  `json:"match_diff,omitempty"`
	MatchOver   bool    `json:"match_over,omitempty"`
}

// Cumulative holds totals for the whole game.
type Cumulative struct {
	Players map[sharedtypes.PlayerID]*PlayerCumulative `json:"players"`
	Teams   map[sharedtypes.TeamID]*TeamCumulative     `json:"teams"`
}

// Meta describes the scoreboard as a whole.
type Meta struct {
	GameID          sharedtypes.GameID           `json:"game_id"`
	HolesInPlay     []string                     `json:"holes_in_play"`
	HolesScored     map[sharedtypes.PlayerID]int `json:"holes_scored"`
	TeamHolesScored map[sharedtypes.TeamID]int   `json:"team_holes_scored"`
	Thru            int                          `json:"thru"`
	HasTeams        bool                         `json:"has_teams"`
}

// RoundSummary is the handicap view of one round.
type RoundSummary struct {
	PlayerID          sharedtypes.PlayerID `json:"player_id"`
	CourseHandicap    *int                 `json:"course_handicap"`
	EffectiveHandicap *int                 `json:"effective_handicap"`
	Pops              map[string]int       `json:"pops"`
	Incomplete        string               `json:"incomplete,omitempty"`
}

// Scoreboard is the engine output.
type Scoreboard struct {
	Holes      map[string]*HoleResult               `json:"holes"`
	Cumulative Cumulative                           `json:"cumulative"`
	Meta       Meta                                 `json:"meta"`
	Rounds     map[sharedtypes.RoundID]RoundSummary `json:"rounds"`
}
