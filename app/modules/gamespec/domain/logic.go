package gamespecdomain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/diegoholiveira/jsonlogic/v3"
)

// TeamRef names a team relative to the one being evaluated.
type TeamRef string

const (
	TeamThis  TeamRef = "this"
	TeamOther TeamRef = "other"
)

// HoleRef names a hole relative to the one being evaluated.
type HoleRef string

const (
	HolePrev HoleRef = "prev"
	HoleCurr HoleRef = "curr"
)

// Env supplies the scoring state a logic expression is evaluated against.
// Numbers returned from Var should be float64 or int.
type Env interface {
	Var(path string) any
	RankWithTies(rank, tieCount int) bool
	TeamDownTheMost(hole HoleRef, team TeamRef) bool
	TeamSecondToLast(hole HoleRef, team TeamRef) bool
	OtherTeamMultipliedWith(name string) bool
	CountJunk(team TeamRef, junk string) int
	PlayersOnTeam(team TeamRef) int
	HolePar() int
	ExistingPreMultiplierTotal(threshold float64) bool
}

// envKey is where the evaluation data carries the Env for the golf
// operators.
const envKey = "$env"

// golfOperators are the operators added to JSON logic, with their accepted
// argument counts. max < 0 means unbounded.
var golfOperators = map[string]struct {
	min, max int
	fn       func(env Env, args []any) any
}{
	"team":        {1, 1, func(_ Env, args []any) any { return string(teamRef(args[0])) }},
	"getPrevHole": {0, 0, func(Env, []any) any { return string(HolePrev) }},
	"getCurrHole": {0, 0, func(Env, []any) any { return string(HoleCurr) }},
	"rankWithTies": {2, 2, func(env Env, args []any) any {
		r, _ := toNumber(args[0])
		t, _ := toNumber(args[1])
		return env.RankWithTies(int(r), int(t))
	}},
	"team_down_the_most": {0, 2, func(env Env, args []any) any {
		hole, team := holeTeam(args)
		return env.TeamDownTheMost(hole, team)
	}},
	"team_second_to_last": {0, 2, func(env Env, args []any) any {
		hole, team := holeTeam(args)
		return env.TeamSecondToLast(hole, team)
	}},
	"other_team_multiplied_with": {1, 3, func(env Env, args []any) any {
		return env.OtherTeamMultipliedWith(toString(args[len(args)-1]))
	}},
	"countJunk": {2, 2, func(env Env, args []any) any {
		return float64(env.CountJunk(teamRef(args[0]), toString(args[1])))
	}},
	"playersOnTeam": {1, 1, func(env Env, args []any) any {
		return float64(env.PlayersOnTeam(teamRef(args[0])))
	}},
	"holePar": {0, 1, func(env Env, _ []any) any { return float64(env.HolePar()) }},
	"existingPreMultiplierTotal": {1, 2, func(env Env, args []any) any {
		threshold, _ := toNumber(args[len(args)-1])
		return env.ExistingPreMultiplierTotal(threshold)
	}},
}

// standardArity covers the JSON logic operators gamespecs may use.
var standardArity = map[string][2]int{
	"var": {1, 2},
	"==":  {2, 2},
	"===": {2, 2},
	"!=":  {2, 2},
	"!==": {2, 2},
	"<":   {2, 3},
	"<=":  {2, 3},
	">":   {2, 2},
	">=":  {2, 2},
	"and": {1, -1},
	"or":  {1, -1},
	"!":   {1, 1},
	"!!":  {1, 1},
	"if":  {1, -1},
	"+":   {1, -1},
	"*":   {1, -1},
	"-":   {1, 2},
	"/":   {2, 2},
}

func init() {
	for name, op := range golfOperators {
		jsonlogic.AddOperator(name, func(values, data any) any {
			env, ok := envFrom(data)
			if !ok {
				return nil
			}
			args := resolveArgs(values, data)
			if len(args) < op.min {
				return nil
			}
			return op.fn(env, args)
		})
	}
}

// Expr is a parsed logic expression. Expressions are written as JSON logic
// objects, usually with single quotes, e.g. {'rankWithTies': [1, 1]}.
type Expr struct {
	rule any
	vars []string
}

// ParseExpr parses a logic expression. Single quotes are accepted in place
// of double quotes. Unknown operators and wrong argument counts are errors.
func ParseExpr(src string) (Expr, error) {
	s := strings.TrimSpace(src)
	if s == "" {
		return Expr{}, fmt.Errorf("empty logic expression")
	}
	s = strings.ReplaceAll(s, "'", `"`)

	dec := json.NewDecoder(strings.NewReader(s))
	var rule any
	if err := dec.Decode(&rule); err != nil {
		return Expr{}, fmt.Errorf("logic expression %q: %w", src, err)
	}
	if dec.More() {
		return Expr{}, fmt.Errorf("logic expression %q: trailing data", src)
	}
	e := Expr{rule: rule}
	if err := e.check(rule); err != nil {
		return Expr{}, err
	}
	return e, nil
}

// check validates operators and argument counts and collects var paths.
func (e *Expr) check(raw any) error {
	switch v := raw.(type) {
	case map[string]any:
		if len(v) != 1 {
			return fmt.Errorf("operator object must have exactly one key, got %d", len(v))
		}
		for op, rawArgs := range v {
			minArgs, maxArgs, ok := arity(op)
			if !ok {
				return fmt.Errorf("unknown operator %q", op)
			}
			list, ok := rawArgs.([]any)
			if !ok {
				list = []any{rawArgs}
			}
			if len(list) < minArgs || (maxArgs >= 0 && len(list) > maxArgs) {
				return fmt.Errorf("operator %q takes %s arguments, got %d", op, arityText(minArgs, maxArgs), len(list))
			}
			if op == "var" {
				switch p := list[0].(type) {
				case string:
					e.vars = append(e.vars, p)
				case float64:
					e.vars = append(e.vars, strconv.FormatFloat(p, 'f', -1, 64))
				default:
					return fmt.Errorf("var path must be a literal")
				}
			}
			for _, a := range list {
				if err := e.check(a); err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
			}
		}
	case []any:
		for _, a := range v {
			if err := e.check(a); err != nil {
				return err
			}
		}
	}
	return nil
}

func arity(op string) (int, int, bool) {
	if g, ok := golfOperators[op]; ok {
		return g.min, g.max, true
	}
	a, ok := standardArity[op]
	return a[0], a[1], ok
}

func arityText(minArgs, maxArgs int) string {
	switch {
	case maxArgs < 0:
		return fmt.Sprintf("at least %d", minArgs)
	case minArgs == maxArgs:
		return strconv.Itoa(minArgs)
	}
	return fmt.Sprintf("%d to %d", minArgs, maxArgs)
}

// EvalBool evaluates the expression and reports its truthiness.
func (e Expr) EvalBool(env Env) bool {
	return truthy(e.Eval(env))
}

// Eval evaluates the expression. The variables it names are read from env
// up front; a failed evaluation yields nil.
func (e Expr) Eval(env Env) any {
	if e.rule == nil {
		return nil
	}
	data := map[string]any{envKey: env}
	for _, path := range e.vars {
		setPath(data, path, normalize(env.Var(path)))
	}
	out, err := jsonlogic.ApplyInterface(e.rule, data)
	if err != nil {
		return nil
	}
	return out
}

// setPath stores v under a dotted path so JSON logic's var can walk it.
func setPath(data map[string]any, path string, v any) {
	if v == nil {
		return
	}
	parts := strings.Split(path, ".")
	m := data
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

func envFrom(data any) (Env, bool) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	env, ok := m[envKey].(Env)
	return env, ok
}

// resolveArgs returns the operator's arguments with nested rules applied.
func resolveArgs(values, data any) []any {
	list, ok := values.([]any)
	if !ok {
		if values == nil {
			return nil
		}
		list = []any{values}
	}
	out := make([]any, 0, len(list))
	for _, v := range list {
		if _, isRule := v.(map[string]any); isRule {
			if r, err := jsonlogic.ApplyInterface(v, data); err == nil {
				v = r
			} else {
				v = nil
			}
		}
		out = append(out, v)
	}
	return out
}

func holeTeam(args []any) (HoleRef, TeamRef) {
	hole, team := HolePrev, TeamThis
	if len(args) > 0 && toString(args[0]) == string(HoleCurr) {
		hole = HoleCurr
	}
	if len(args) > 1 {
		team = teamRef(args[1])
	}
	return hole, team
}

func teamRef(v any) TeamRef {
	switch t := v.(type) {
	case []any:
		if len(t) > 0 {
			return teamRef(t[0])
		}
	case string:
		if TeamRef(t) == TeamOther {
			return TeamOther
		}
	}
	return TeamThis
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	}
	return true
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}
	return v
}
