package gamespecdomain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Validate checks a gamespec and reports every problem found. The returned
// error is a *ValidationError matching ErrMalformedGameSpec.
func Validate(s GameSpec) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(s.Name) == "" {
		add("name is required")
	}
	if s.Version <= 0 {
		add("version must be positive, got %d", s.Version)
	}
	switch s.SpecType {
	case "", SpecTypePoints, SpecTypeMatch, SpecTypeSkins, SpecTypeStroke, SpecTypeStableford:
	default:
		add("unknown spec_type %q", s.SpecType)
	}

	seen := make(map[string]string)
	claim := func(kind, name string) {
		if name == "" {
			return
		}
		if prev, dup := seen[name]; dup {
			add("%s %q duplicates %s name", kind, name, prev)
			return
		}
		seen[name] = kind
	}

	for i, r := range s.Scoring.Hole {
		label := r.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			add("scoring rule %s: name is required", label)
		}
		claim("scoring rule", r.Name)
		if r.Calculation == "" {
			add("scoring rule %s: calculation is required", label)
		} else if !slices.Contains(Calculations(), r.Calculation) {
			add("scoring rule %s: unknown calculation %q", label, r.Calculation)
		}
		switch r.Scope {
		case "":
			add("scoring rule %s: scope is required", label)
		case ScopeHole, ScopeRound, ScopeMatch:
		default:
			add("scoring rule %s: unknown scope %q", label, r.Scope)
		}
		switch r.Better {
		case "", Lower, Higher:
		default:
			add("scoring rule %s: unknown better %q", label, r.Better)
		}
		switch r.Entrant {
		case "", EntrantPlayer, EntrantTeam:
		default:
			add("scoring rule %s: unknown entrant %q", label, r.Entrant)
		}
		switch r.Ties {
		case "", TiesCarry, TiesSplit, TiesNone:
		default:
			add("scoring rule %s: unknown ties policy %q", label, r.Ties)
		}
		if r.BasedOn == r.Name && r.Name != "" {
			add("scoring rule %s: based_on refers to itself", label)
		}
	}
	if _, err := RuleOrder(s); err != nil {
		add("%v", err)
	}

	for i, j := range s.Junk {
		label := j.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			add("junk %s: name is required", label)
		}
		claim("junk", j.Name)
		switch j.ScopeOrDefault() {
		case JunkScopePlayer, JunkScopeTeam:
		default:
			add("junk %s: unknown scope %q", label, j.Scope)
		}
		switch j.BasedOnOrDefault() {
		case BasedOnGross, BasedOnNet, BasedOnUser:
		default:
			add("junk %s: unknown based_on %q", label, j.BasedOn)
		}
		switch j.Limit {
		case LimitNone, LimitOnePerGroup, LimitOneTeamPerGroup:
		default:
			add("junk %s: unknown limit %q", label, j.Limit)
		}
		switch j.Calculation {
		case "", JunkCalcBestBall, JunkCalcSum, JunkCalcLogic:
		default:
			add("junk %s: unknown calculation %q", label, j.Calculation)
		}
		if j.Calculation == JunkCalcLogic && j.Logic == "" {
			add("junk %s: logic calculation without logic", label)
		}
		if j.ScoreToPar != "" {
			if _, err := ParseScoreToPar(j.ScoreToPar); err != nil {
				add("junk %s: %v", label, err)
			}
		}
		if j.Logic != "" {
			if _, err := ParseExpr(j.Logic); err != nil {
				add("junk %s: logic: %v", label, err)
			}
		}
	}

	for i, m := range s.Multipliers {
		label := m.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			add("multiplier %s: name is required", label)
		}
		claim("multiplier", m.Name)
		switch m.ScopeOrDefault() {
		case MultScopeHole, MultScopeTeam, MultScopePlayer, MultScopeRestOfNine,
			MultScopeSegment, MultScopeGame, MultScopeNone:
		default:
			add("multiplier %s: unknown scope %q", label, m.Scope)
		}
		switch m.SubType {
		case "", SubTypeAutomatic, SubTypeBBQ, SubTypePress:
		default:
			add("multiplier %s: unknown sub_type %q", label, m.SubType)
		}
		if m.Value < 0 {
			add("multiplier %s: negative value", label)
		}
		if m.Availability != "" {
			if _, err := ParseExpr(m.Availability); err != nil {
				add("multiplier %s: availability: %v", label, err)
			}
		}
	}
	if _, err := MultiplierOrder(s); err != nil {
		add("%v", err)
	}

	if len(problems) > 0 {
		return &ValidationError{Spec: s.Name, Problems: problems}
	}
	return nil
}

// RuleOrder returns the scoring rules ordered so every rule follows the rule
// it is based on. References to rules that do not exist are left for the
// evaluator to report.
func RuleOrder(s GameSpec) ([]ScoringRule, error) {
	rules := s.Scoring.Hole
	deps := make(map[string]string, len(rules))
	for _, r := range rules {
		if _, ok := s.Rule(r.BasedOn); ok && r.BasedOn != "" {
			deps[r.Name] = r.BasedOn
		}
	}
	order, err := topo(names(rules, func(r ScoringRule) string { return r.Name }), deps)
	if err != nil {
		return nil, fmt.Errorf("scoring rules: %w", err)
	}
	out := make([]ScoringRule, 0, len(rules))
	for _, n := range order {
		r, _ := s.Rule(n)
		out = append(out, r)
	}
	return out, nil
}

// JunkOrder returns junk sorted by seq, then name.
func JunkOrder(s GameSpec) []JunkOption {
	out := slices.Clone(s.Junk)
	slices.SortStableFunc(out, func(a, b JunkOption) int {
		if c := cmp.Compare(a.Order(), b.Order()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// MultiplierOrder returns multipliers sorted by seq and name, with every
// chained multiplier after the one it is based on.
func MultiplierOrder(s GameSpec) ([]MultiplierOption, error) {
	sorted := slices.Clone(s.Multipliers)
	slices.SortStableFunc(sorted, func(a, b MultiplierOption) int {
		if c := cmp.Compare(a.Order(), b.Order()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	byName := make(map[string]MultiplierOption, len(sorted))
	for _, m := range sorted {
		byName[m.Name] = m
	}
	deps := make(map[string]string)
	for _, m := range sorted {
		if _, ok := byName[m.BasedOn]; ok && m.BasedOn != "" {
			deps[m.Name] = m.BasedOn
		}
	}
	order, err := topo(names(sorted, func(m MultiplierOption) string { return m.Name }), deps)
	if err != nil {
		return nil, fmt.Errorf("multipliers: %w", err)
	}
	out := make([]MultiplierOption, 0, len(order))
	for _, n := range order {
		out = append(out, byName[n])
	}
	return out, nil
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, name(it))
	}
	return out
}

// topo orders nodes so each node follows its single dependency, keeping the
// input order otherwise.
func topo(nodes []string, deps map[string]string) ([]string, error) {
	const (
		visiting = iota + 1
		done
	)
	state := make(map[string]int, len(nodes))
	out := make([]string, 0, len(nodes))

	var visit func(n string, path []string) error
	visit = func(n string, path []string) error {
		switch state[n] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("based_on cycle %s", strings.Join(append(path, n), " -> "))
		}
		state[n] = visiting
		if d, ok := deps[n]; ok {
			if err := visit(d, append(path, n)); err != nil {
				return err
			}
		}
		state[n] = done
		out = append(out, n)
		return nil
	}

	for _, n := range nodes {
		if err := visit(n, nil); err != nil {
			return nil, err
		}
	}
	return out, nil
}
