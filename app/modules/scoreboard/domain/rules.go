package scoreboarddomain

import (
	"fmt"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

func incompleteReason(format string, args ...any) string {
	return fmt.Sprintf("%v: %s", ErrIncompleteRuleInput, fmt.Sprintf(format, args...))
}

// ruleSource returns what a rule reads: gross, net, or another rule.
func ruleSource(r gamespecdomain.ScoringRule) string {
	if r.BasedOn != "" {
		return r.BasedOn
	}
	if r.Calculation == gamespecdomain.CalcGrossToPar {
		return gamespecdomain.BasedOnGross
	}
	return gamespecdomain.BasedOnNet
}

// sourceToPar reports whether the values a rule reads are already relative
// to par. Strokes and best ball pass their own source through unchanged.
// Rule order has rejected cycles before this runs.
func (e *engine) sourceToPar(src string) bool {
	rule, ok := e.spec.Rule(src)
	if !ok {
		return false
	}
	switch rule.Calculation {
	case gamespecdomain.CalcNetToPar, gamespecdomain.CalcGrossToPar:
		return true
	case gamespecdomain.CalcStrokes, gamespecdomain.CalcBestBall:
		return e.sourceToPar(ruleSource(rule))
	}
	return false
}

// evaluateRules runs every scoring rule on the hole in dependency order.
func (e *engine) evaluateRules(hc *holeContext) {
	hr := hc.hole
	remaining := len(e.holes) - hc.index - 1
	for _, rule := range e.rules {
		entrants := e.entrantInputs(hc, rule)

		var res *RuleResult
		if calc, ok := e.registry[rule.Calculation]; ok {
			res = calc(EvalInput{
				Rule:        rule,
				Hole:        hr.Hole,
				Par:         hr.Par,
				Remaining:   remaining,
				Entrants:    entrants,
				Prior:       e.priorRules[rule.Name],
				SourceToPar: e.sourceToPar(ruleSource(rule)),
			})
		}
		if res == nil {
			res = newResult(len(entrants))
			for _, en := range entrants {
				res.Cells[en.ID] = incompleteCell(fmt.Sprintf("no calculation %q", rule.Calculation))
			}
		}
		if !rule.IsProgressive() && !e.roundComplete() {
			for id := range res.Cells {
				res.Cells[id] = incompleteCell("waiting for every hole to be scored")
			}
			res.Carryover = 0
			res.MatchResult = ""
		}

		hr.Rules[rule.Name] = res
		e.priorRules[rule.Name] = append(e.priorRules[rule.Name], res)
	}
}

func (e *engine) entrantInputs(hc *holeContext, rule gamespecdomain.ScoringRule) []EntrantInput {
	hr := hc.hole
	src := ruleSource(rule)
	_, isRule := e.spec.Rule(src)
	builtin := src == gamespecdomain.BasedOnGross || src == gamespecdomain.BasedOnNet
	missing := ""
	if !builtin && !isRule {
		missing = incompleteReason("missing rule %q", src)
	}

	if rule.EntrantOrDefault() == gamespecdomain.EntrantTeam {
		ids := hc.teamIDs()
		out := make([]EntrantInput, 0, len(ids))
		for _, tid := range ids {
			t := hr.Teams[tid]
			in := EntrantInput{ID: string(tid)}
			for _, pid := range t.PlayerIDs {
				v, _ := e.playerSource(hr, pid, src)
				in.Members = append(in.Members, v)
			}
			switch {
			case missing != "":
				in.Incomplete = missing
			case isRule:
				if c, ok := hr.Rules[src].Cells[string(tid)]; ok {
					in.Value, in.Incomplete = c.Value, c.Incomplete
				}
			default:
				for _, m := range in.Members {
					if m != nil && (in.Value == nil || *m < *in.Value) {
						in.Value = m
					}
				}
			}
			out = append(out, in)
		}
		return out
	}

	ids := hc.playerIDs()
	out := make([]EntrantInput, 0, len(ids))
	for _, pid := range ids {
		in := EntrantInput{ID: string(pid)}
		if missing != "" {
			in.Incomplete = missing
		} else {
			in.Value, in.Incomplete = e.playerSource(hr, pid, src)
		}
		out = append(out, in)
	}
	return out
}

// playerSource reads a player's based_on value on a hole.
func (e *engine) playerSource(hr *HoleResult, pid sharedtypes.PlayerID, src string) (*float64, string) {
	p, ok := hr.Players[pid]
	if !ok {
		return nil, incompleteReason("player %s has no round", pid)
	}
	toFloat := func(v *int) (*float64, string) {
		if v == nil {
			return nil, ""
		}
		f := float64(*v)
		return &f, ""
	}
	switch src {
	case gamespecdomain.BasedOnGross:
		return toFloat(p.Gross)
	case gamespecdomain.BasedOnNet:
		return toFloat(p.Net)
	}
	res, ok := hr.Rules[src]
	if !ok {
		return nil, incompleteReason("missing rule %q", src)
	}
	c, ok := res.Cells[string(pid)]
	if !ok {
		return nil, incompleteReason("rule %q has no value for %s", src, pid)
	}
	return c.Value, c.Incomplete
}
