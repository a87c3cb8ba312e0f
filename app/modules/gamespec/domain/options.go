package gamespecdomain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
)

// Overrides carries option values set on a game and on its holes.
type Overrides struct {
	Game  map[string]golftypes.OptionValue
	Holes map[string]map[string]golftypes.OptionValue
}

// OverridesFor collects the option overrides of a game.
func OverridesFor(g golftypes.Game) Overrides {
	o := Overrides{Game: g.Options, Holes: make(map[string]map[string]golftypes.OptionValue, len(g.Holes))}
	for _, h := range g.Holes {
		if len(h.Options) > 0 {
			o.Holes[h.Hole] = h.Options
		}
	}
	return o
}

// OptionValue resolves an option for a hole. Per hole values win over the
// game override, which wins over the spec default. An empty hole skips the
// per hole lookups.
func (s GameSpec) OptionValue(name, hole string, o Overrides) (golftypes.OptionValue, bool) {
	if hole != "" {
		if v, ok := o.Holes[hole][name]; ok {
			return v, true
		}
	}
	opt, known := s.Option(name)
	if known && hole != "" {
		for _, hv := range opt.Values {
			if slices.Contains(hv.Holes, hole) {
				return golftypes.OptionValue(hv.Value), true
			}
		}
	}
	if v, ok := o.Game[name]; ok {
		return v, true
	}
	if known && opt.Default != "" {
		return golftypes.OptionValue(opt.Default), true
	}
	return "", false
}

// ScoreToPar is a parsed score_to_par condition such as "exactly -1".
type ScoreToPar struct {
	Op    string
	Value int
}

// ParseScoreToPar parses "exactly N", "at_most N" or "at_least N".
func ParseScoreToPar(s string) (ScoreToPar, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return ScoreToPar{}, fmt.Errorf("score_to_par %q: want \"<op> <n>\"", s)
	}
	switch parts[0] {
	case "exactly", "at_most", "at_least":
	default:
		return ScoreToPar{}, fmt.Errorf("score_to_par %q: unknown operator %q", s, parts[0])
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return ScoreToPar{}, fmt.Errorf("score_to_par %q: %w", s, err)
	}
	return ScoreToPar{Op: parts[0], Value: n}, nil
}

// Match reports whether a score to par satisfies the condition.
func (c ScoreToPar) Match(toPar int) bool {
	switch c.Op {
	case "exactly":
		return toPar == c.Value
	case "at_most":
		return toPar <= c.Value
	case "at_least":
		return toPar >= c.Value
	}
	return false
}
