package golftypes

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"gopkg.in/yaml.v3"
)

// OptionValue is a gamespec option value as entered by a user. Values are
// kept in their textual form and converted on read.
type OptionValue string

// UnmarshalJSON accepts any JSON scalar.
func (v *OptionValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = OptionValue(s)
		return nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = OptionValue(strings.TrimSpace(string(raw)))
	if *v == "null" {
		*v = ""
	}
	return nil
}

// UnmarshalYAML accepts any YAML scalar.
func (v *OptionValue) UnmarshalYAML(node *yaml.Node) error {
	*v = OptionValue(node.Value)
	return nil
}

// String returns the raw text.
func (v OptionValue) String() string { return string(v) }

// Bool interprets the value as a boolean. "1", "true" and "yes" are true.
func (v OptionValue) Bool() bool {
	switch strings.ToLower(strings.TrimSpace(string(v))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Float interprets the value as a number.
func (v OptionValue) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Handicap is the player's handicap record from the handicap authority.
type Handicap struct {
	Source       string    `json:"source,omitempty" yaml:"source,omitempty"`
	Index        string    `json:"index" yaml:"index"`
	RevisionDate time.Time `json:"revision_date,omitempty" yaml:"revision_date,omitempty"`
	Active       bool      `json:"active" yaml:"active"`
}

// Player is a participant in a game.
type Player struct {
	ID       sharedtypes.PlayerID `json:"id" yaml:"id"`
	Name     string               `json:"name" yaml:"name"`
	Short    string               `json:"short,omitempty" yaml:"short,omitempty"`
	Handicap Handicap             `json:"handicap" yaml:"handicap"`
}

// Team groups players on a hole. Team membership may change from hole to
// hole when teams rotate.
type Team struct {
	ID        sharedtypes.TeamID     `json:"id" yaml:"id"`
	PlayerIDs []sharedtypes.PlayerID `json:"player_ids" yaml:"player_ids"`
}

// Has reports whether the player is on the team.
func (t Team) Has(id sharedtypes.PlayerID) bool {
	for _, p := range t.PlayerIDs {
		if p == id {
			return true
		}
	}
	return false
}

// MultiplierInstance records a user activating a multiplier, e.g. a team
// pressing on hole 7. Value is set for multipliers that take a user value.
type MultiplierInstance struct {
	Name      string             `json:"name" yaml:"name"`
	Team      sharedtypes.TeamID `json:"team,omitempty" yaml:"team,omitempty"`
	FirstHole string             `json:"first_hole" yaml:"first_hole"`
	Value     float64            `json:"value,omitempty" yaml:"value,omitempty"`
	By        string             `json:"by,omitempty" yaml:"by,omitempty"`
	At        time.Time          `json:"at,omitempty" yaml:"at,omitempty"`
}

// GameHole carries per hole game state.
type GameHole struct {
	Hole        string                 `json:"hole" yaml:"hole"`
	Teams       []Team                 `json:"teams,omitempty" yaml:"teams,omitempty"`
	Multipliers []MultiplierInstance   `json:"multipliers,omitempty" yaml:"multipliers,omitempty"`
	Options     map[string]OptionValue `json:"options,omitempty" yaml:"options,omitempty"`
}

// TeamOf returns the team the player is on for this hole.
func (h GameHole) TeamOf(id sharedtypes.PlayerID) (Team, bool) {
	for _, t := range h.Teams {
		if t.Has(id) {
			return t, true
		}
	}
	return Team{}, false
}

// GameScope controls which holes are played and how teams rotate.
type GameScope struct {
	Holes       HoleScope `json:"holes" yaml:"holes"`
	TeamsRotate string    `json:"teams_rotate,omitempty" yaml:"teams_rotate,omitempty"`
}

// SpecRef points at a specific gamespec version.
type SpecRef struct {
	Name    string `json:"name" yaml:"name"`
	Version int    `json:"version,omitempty" yaml:"version,omitempty"`
}

// Game is a set of players playing one or more gamespecs over a set of holes.
type Game struct {
	ID      sharedtypes.GameID     `json:"id" yaml:"id"`
	Name    string                 `json:"name" yaml:"name"`
	Start   time.Time              `json:"start,omitempty" yaml:"start,omitempty"`
	Scope   GameScope              `json:"scope" yaml:"scope"`
	Holes   []GameHole             `json:"holes" yaml:"holes"`
	Players []Player               `json:"players" yaml:"players"`
	Specs   []SpecRef              `json:"specs" yaml:"specs"`
	Options map[string]OptionValue `json:"options,omitempty" yaml:"options,omitempty"`
}

// Player looks up a player by id.
func (g Game) Player(id sharedtypes.PlayerID) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Hole looks up a game hole by key.
func (g Game) Hole(key string) (GameHole, bool) {
	for _, h := range g.Holes {
		if h.Hole == key {
			return h, true
		}
	}
	return GameHole{}, false
}

// Posting is the handicap authority's answer to a posted round.
type Posting struct {
	ID                string    `json:"id" yaml:"id"`
	Success           bool      `json:"success" yaml:"success"`
	Messages          []string  `json:"messages,omitempty" yaml:"messages,omitempty"`
	EstimatedHandicap *float64  `json:"estimated_handicap,omitempty" yaml:"estimated_handicap,omitempty"`
	PostedAt          time.Time `json:"posted_at,omitempty" yaml:"posted_at,omitempty"`
}

// Round is one player's participation in a game.
type Round struct {
	ID             sharedtypes.RoundID  `json:"id" yaml:"id"`
	GameID         sharedtypes.GameID   `json:"game_id" yaml:"game_id"`
	PlayerID       sharedtypes.PlayerID `json:"player_id" yaml:"player_id"`
	Seq            int                  `json:"seq" yaml:"seq"`
	TeeID          sharedtypes.TeeID    `json:"tee_id" yaml:"tee_id"`
	HandicapIndex  string               `json:"handicap_index" yaml:"handicap_index"`
	CourseHandicap *int                 `json:"course_handicap,omitempty" yaml:"course_handicap,omitempty"`
	GameHandicap   *int                 `json:"game_handicap,omitempty" yaml:"game_handicap,omitempty"`
	Scores         []Score              `json:"scores,omitempty" yaml:"scores,omitempty"`
	Posting        *Posting             `json:"posting,omitempty" yaml:"posting,omitempty"`
}

// Score returns the score document for a hole.
func (r Round) Score(hole string) (Score, bool) {
	for _, s := range r.Scores {
		if s.Hole == hole {
			return s, true
		}
	}
	return Score{}, false
}
