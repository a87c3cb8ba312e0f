package gamespecdomain

// Calculation ids understood by the scoring engine.
const (
	CalcNetToPar     = "net_to_par"
	CalcGrossToPar   = "gross_to_par"
	CalcStrokes      = "strokes"
	CalcStableford   = "stableford"
	CalcRankPoints   = "rank_points"
	CalcBestBall     = "best_ball"
	CalcAggregate    = "aggregate"
	CalcRunningTotal = "running_total"
	CalcMatchStatus  = "match_status"
	CalcSkins        = "skins"
	CalcVsField      = "vs_field"
)

// Calculations lists every calculation id a scoring rule may name.
func Calculations() []string {
	return []string{
		CalcNetToPar, CalcGrossToPar, CalcStrokes, CalcStableford, CalcRankPoints,
		CalcBestBall, CalcAggregate, CalcRunningTotal, CalcMatchStatus, CalcSkins,
		CalcVsField,
	}
}

// Score sources a rule or junk can be based on besides another rule.
const (
	BasedOnGross = "gross"
	BasedOnNet   = "net"
	BasedOnUser  = "user"
)

// Well known game options.
const (
	OptHandicapMode    = "handicap_mode"
	OptBetterPoints    = "better_points"
	OptMatchPlay       = "match_play"
	OptTeamChangeEvery = "team_change_every"
)

// SpecType classifies a gamespec.
type SpecType string

const (
	SpecTypePoints     SpecType = "points"
	SpecTypeMatch      SpecType = "match"
	SpecTypeSkins      SpecType = "skins"
	SpecTypeStroke     SpecType = "stroke"
	SpecTypeStableford SpecType = "stableford"
)

// RuleScope is how far a scoring rule looks.
type RuleScope string

const (
	ScopeHole  RuleScope = "hole"
	ScopeRound RuleScope = "round"
	ScopeMatch RuleScope = "match"
)

// Better is the comparison direction when entrants are ranked.
type Better string

const (
	Lower  Better = "lower"
	Higher Better = "higher"
)

// OrDefault returns b, or d when b is unset.
func (b Better) OrDefault(d Better) Better {
	if b == "" {
		return d
	}
	return b
}

// Entrant is who a rule scores.
type Entrant string

const (
	EntrantPlayer Entrant = "player"
	EntrantTeam   Entrant = "team"
)

// Unit is what a rule's value counts.
type Unit string

const (
	UnitPoints  Unit = "points"
	UnitStrokes Unit = "strokes"
	UnitHoles   Unit = "holes"
	UnitSkins   Unit = "skins"
)

// TiePolicy decides what happens to a skin when the best score is shared.
type TiePolicy string

const (
	TiesCarry TiePolicy = "carry"
	TiesSplit TiePolicy = "split"
	TiesNone  TiePolicy = "none"
)

// JunkLimit restricts how many awards of a junk can count.
type JunkLimit string

const (
	LimitNone            JunkLimit = ""
	LimitOnePerGroup     JunkLimit = "one_per_group"
	LimitOneTeamPerGroup JunkLimit = "one_team_per_group"
)

// Junk and multiplier scopes.
const (
	JunkScopePlayer = "player"
	JunkScopeTeam   = "team"

	MultScopeHole       = "hole"
	MultScopeTeam       = "team"
	MultScopePlayer     = "player"
	MultScopeRestOfNine = "rest_of_nine"
	MultScopeSegment    = "segment"
	MultScopeGame       = "game"
	MultScopeNone       = "none"
)

// Junk calculations.
const (
	JunkCalcBestBall = "best_ball"
	JunkCalcSum      = "sum"
	JunkCalcLogic    = "logic"
)

// Multiplier sub types.
const (
	SubTypeAutomatic = "automatic"
	SubTypeBBQ       = "bbq"
	SubTypePress     = "press"
)

// DefaultSeq orders options without an explicit seq last.
const DefaultSeq = 999

// DefaultMultiplierValue is the factor of a multiplier without a value.
const DefaultMultiplierValue = 2.0

// TableEntry maps an outcome to points. Stableford tables key on ToPar,
// rank tables on Rank and TieCount.
type TableEntry struct {
	ToPar    *int    `json:"to_par,omitempty" yaml:"to_par,omitempty"`
	Rank     int     `json:"rank,omitempty" yaml:"rank,omitempty"`
	TieCount int     `json:"tie_count,omitempty" yaml:"tie_count,omitempty"`
	Points   float64 `json:"points" yaml:"points"`
}

// ScoringRule is one declarative rule of a gamespec.
type ScoringRule struct {
	Name        string       `json:"name" yaml:"name"`
	Disp        string       `json:"disp,omitempty" yaml:"disp,omitempty"`
	Scope       RuleScope    `json:"scope" yaml:"scope"`
	Calculation string       `json:"calculation" yaml:"calculation"`
	Better      Better       `json:"better,omitempty" yaml:"better,omitempty"`
	BasedOn     string       `json:"based_on,omitempty" yaml:"based_on,omitempty"`
	Entrant     Entrant      `json:"entrant,omitempty" yaml:"entrant,omitempty"`
	Unit        Unit         `json:"unit,omitempty" yaml:"unit,omitempty"`
	Value       float64      `json:"value,omitempty" yaml:"value,omitempty"`
	Points      []float64    `json:"points,omitempty" yaml:"points,omitempty"`
	Table       []TableEntry `json:"table,omitempty" yaml:"table,omitempty"`
	Ties        TiePolicy    `json:"ties,omitempty" yaml:"ties,omitempty"`
	Progressive *bool        `json:"progressive,omitempty" yaml:"progressive,omitempty"`
}

// IsProgressive reports whether the rule reports values before every hole
// is scored.
func (r ScoringRule) IsProgressive() bool {
	return r.Progressive == nil || *r.Progressive
}

// EntrantOrDefault returns the rule's entrant, player when unset.
func (r ScoringRule) EntrantOrDefault() Entrant {
	if r.Entrant == "" {
		return EntrantPlayer
	}
	return r.Entrant
}

// BasedOnOrDefault returns the rule's source, net when unset.
func (r ScoringRule) BasedOnOrDefault() string {
	if r.BasedOn == "" {
		return BasedOnNet
	}
	return r.BasedOn
}

// Scoring groups the rules of a spec.
type Scoring struct {
	Hole []ScoringRule `json:"hole" yaml:"hole"`
}

// HoleOptionValue sets an option on a subset of holes.
type HoleOptionValue struct {
	Value string   `json:"value" yaml:"value"`
	Holes []string `json:"holes" yaml:"holes"`
}

// Option is a game level setting such as the handicap mode.
type Option struct {
	Name    string            `json:"name" yaml:"name"`
	Disp    string            `json:"disp,omitempty" yaml:"disp,omitempty"`
	Type    string            `json:"type,omitempty" yaml:"type,omitempty"`
	Default string            `json:"default,omitempty" yaml:"default,omitempty"`
	Choices []string          `json:"choices,omitempty" yaml:"choices,omitempty"`
	Values  []HoleOptionValue `json:"values,omitempty" yaml:"values,omitempty"`
}

// JunkOption is a side bet awarded on a hole.
type JunkOption struct {
	Name        string    `json:"name" yaml:"name"`
	Disp        string    `json:"disp,omitempty" yaml:"disp,omitempty"`
	Seq         int       `json:"seq,omitempty" yaml:"seq,omitempty"`
	Value       float64   `json:"value" yaml:"value"`
	Scope       string    `json:"scope,omitempty" yaml:"scope,omitempty"`
	BasedOn     string    `json:"based_on,omitempty" yaml:"based_on,omitempty"`
	Limit       JunkLimit `json:"limit,omitempty" yaml:"limit,omitempty"`
	Calculation string    `json:"calculation,omitempty" yaml:"calculation,omitempty"`
	Better      Better    `json:"better,omitempty" yaml:"better,omitempty"`
	ScoreToPar  string    `json:"score_to_par,omitempty" yaml:"score_to_par,omitempty"`
	Logic       string    `json:"logic,omitempty" yaml:"logic,omitempty"`
}

// Order returns the evaluation order of the junk.
func (j JunkOption) Order() int { return seqOrDefault(j.Seq) }

// ScopeOrDefault returns the junk scope, player when unset.
func (j JunkOption) ScopeOrDefault() string {
	if j.Scope == "" {
		return JunkScopePlayer
	}
	return j.Scope
}

// BasedOnOrDefault returns the junk source, gross when unset.
func (j JunkOption) BasedOnOrDefault() string {
	if j.BasedOn == "" {
		return BasedOnGross
	}
	return j.BasedOn
}

// MultiplierOption is a factor applied to hole points.
type MultiplierOption struct {
	Name         string  `json:"name" yaml:"name"`
	Disp         string  `json:"disp,omitempty" yaml:"disp,omitempty"`
	Seq          int     `json:"seq,omitempty" yaml:"seq,omitempty"`
	Value        float64 `json:"value,omitempty" yaml:"value,omitempty"`
	BasedOn      string  `json:"based_on,omitempty" yaml:"based_on,omitempty"`
	Scope        string  `json:"scope,omitempty" yaml:"scope,omitempty"`
	Availability string  `json:"availability,omitempty" yaml:"availability,omitempty"`
	Override     bool    `json:"override,omitempty" yaml:"override,omitempty"`
	SubType      string  `json:"sub_type,omitempty" yaml:"sub_type,omitempty"`
	InputValue   bool    `json:"input_value,omitempty" yaml:"input_value,omitempty"`
}

// Order returns the evaluation order of the multiplier.
func (m MultiplierOption) Order() int { return seqOrDefault(m.Seq) }

// ScopeOrDefault returns the multiplier scope, hole when unset.
func (m MultiplierOption) ScopeOrDefault() string {
	if m.Scope == "" {
		return MultScopeHole
	}
	return m.Scope
}

// Factor returns the multiplier's own value, the default when unset.
func (m MultiplierOption) Factor() float64 {
	if m.Value == 0 && !m.InputValue {
		return DefaultMultiplierValue
	}
	return m.Value
}

// Teams describes team play for a spec.
type Teams struct {
	Count       int `json:"count,omitempty" yaml:"count,omitempty"`
	ChangeEvery int `json:"change_every,omitempty" yaml:"change_every,omitempty"`
}

// GameSpec is a declarative game format.
type GameSpec struct {
	Name        string             `json:"name" yaml:"name"`
	Version     int                `json:"version" yaml:"version"`
	Disp        string             `json:"disp,omitempty" yaml:"disp,omitempty"`
	SpecType    SpecType           `json:"spec_type,omitempty" yaml:"spec_type,omitempty"`
	MinPlayers  int                `json:"min_players,omitempty" yaml:"min_players,omitempty"`
	Scoring     Scoring            `json:"scoring" yaml:"scoring"`
	Options     []Option           `json:"options,omitempty" yaml:"options,omitempty"`
	Junk        []JunkOption       `json:"junk,omitempty" yaml:"junk,omitempty"`
	Multipliers []MultiplierOption `json:"multipliers,omitempty" yaml:"multipliers,omitempty"`
	Teams       Teams              `json:"teams,omitempty" yaml:"teams,omitempty"`
}

// Rule looks up a scoring rule by name.
func (s GameSpec) Rule(name string) (ScoringRule, bool) {
	for _, r := range s.Scoring.Hole {
		if r.Name == name {
			return r, true
		}
	}
	return ScoringRule{}, false
}

// Option looks up an option by name.
func (s GameSpec) Option(name string) (Option, bool) {
	for _, o := range s.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

func seqOrDefault(seq int) int {
	if seq == 0 {
		return DefaultSeq
	}
	return seq
}
