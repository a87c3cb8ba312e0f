package scoreboarddomain

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
)

// EntrantInput is an entrant's based_on value on a hole. Team entrants also
// carry their members' values.
type EntrantInput struct {
	ID         string
	Value      *float64
	Members    []*float64
	Incomplete string
}

// EvalInput is everything a calculation sees for one rule on one hole.
// Entrants are sorted by id. Prior holds the same rule's results on the
// earlier holes in play order. SourceToPar is set when the entrant values
// are already relative to par.
type EvalInput struct {
	Rule        gamespecdomain.ScoringRule
	Hole        string
	Par         *int
	Remaining   int
	Entrants    []EntrantInput
	Prior       []*RuleResult
	SourceToPar bool
}

// Calculation evaluates a rule on a hole.
type Calculation func(in EvalInput) *RuleResult

// Registry maps calculation ids to their implementations.
type Registry map[string]Calculation

// DefaultRegistry returns a registry covering every calculation id a
// gamespec may name.
func DefaultRegistry() Registry {
	return Registry{
		gamespecdomain.CalcNetToPar:     toPar,
		gamespecdomain.CalcGrossToPar:   toPar,
		gamespecdomain.CalcStrokes:      strokes,
		gamespecdomain.CalcStableford:   stableford,
		gamespecdomain.CalcRankPoints:   rankPoints,
		gamespecdomain.CalcBestBall:     bestBall,
		gamespecdomain.CalcAggregate:    aggregate,
		gamespecdomain.CalcRunningTotal: runningTotal,
		gamespecdomain.CalcMatchStatus:  matchStatus,
		gamespecdomain.CalcSkins:        skins,
		gamespecdomain.CalcVsField:      vsField,
	}
}

func newResult(n int) *RuleResult {
	return &RuleResult{Cells: make(map[string]RuleCell, n)}
}

func valueCell(v float64) RuleCell {
	return RuleCell{Value: &v}
}

func incompleteCell(why string) RuleCell {
	return RuleCell{Incomplete: fmt.Sprintf("%v: %s", ErrIncompleteRuleInput, why)}
}

func missingCell(e EntrantInput) RuleCell {
	if e.Incomplete != "" {
		return RuleCell{Incomplete: e.Incomplete}
	}
	return incompleteCell("not scored")
}

// lastValue returns the entrant's most recent non nil value in prior.
func lastValue(prior []*RuleResult, id string) (float64, bool) {
	for i := len(prior) - 1; i >= 0; i-- {
		if prior[i] == nil {
			continue
		}
		if c, ok := prior[i].Cells[id]; ok && c.Value != nil {
			return *c.Value, true
		}
	}
	return 0, false
}

func toPar(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	for _, e := range in.Entrants {
		switch {
		case e.Value == nil:
			res.Cells[e.ID] = missingCell(e)
		case in.Par == nil:
			res.Cells[e.ID] = incompleteCell("missing par")
		default:
			res.Cells[e.ID] = valueCell(*e.Value - float64(*in.Par))
		}
	}
	return res
}

func strokes(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	for _, e := range in.Entrants {
		if e.Value == nil {
			res.Cells[e.ID] = missingCell(e)
			continue
		}
		res.Cells[e.ID] = valueCell(*e.Value)
	}
	return res
}

func defaultStablefordTable() []gamespecdomain.TableEntry {
	entry := func(toPar int, points float64) gamespecdomain.TableEntry {
		return gamespecdomain.TableEntry{ToPar: &toPar, Points: points}
	}
	return []gamespecdomain.TableEntry{
		entry(-3, 5), entry(-2, 4), entry(-1, 3), entry(0, 2), entry(1, 1), entry(2, 0),
	}
}

// StablefordPoints looks a score to par up in a stableford table. Scores
// beyond either end of the table take the points of that end.
func StablefordPoints(toPar int, table []gamespecdomain.TableEntry) float64 {
	var entries []gamespecdomain.TableEntry
	for _, e := range table {
		if e.ToPar != nil {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		entries = defaultStablefordTable()
	}
	slices.SortFunc(entries, func(a, b gamespecdomain.TableEntry) int { return *a.ToPar - *b.ToPar })

	first, last := entries[0], entries[len(entries)-1]
	switch {
	case toPar <= *first.ToPar:
		return first.Points
	case toPar >= *last.ToPar:
		return last.Points
	}
	for _, e := range entries {
		if *e.ToPar == toPar {
			return e.Points
		}
	}
	return 0
}

func stableford(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	for _, e := range in.Entrants {
		switch {
		case e.Value == nil:
			res.Cells[e.ID] = missingCell(e)
		case in.SourceToPar:
			res.Cells[e.ID] = valueCell(StablefordPoints(int(math.Round(*e.Value)), in.Rule.Table))
		case in.Par == nil:
			res.Cells[e.ID] = incompleteCell("missing par")
		default:
			diff := int(math.Round(*e.Value)) - *in.Par
			res.Cells[e.ID] = valueCell(StablefordPoints(diff, in.Rule.Table))
		}
	}
	return res
}

// PositionPoints returns the points for a rank. Tied entrants share the
// points of the positions they occupy.
func PositionPoints(rank, tieCount int, points []float64) float64 {
	if tieCount < 1 {
		tieCount = 1
	}
	total := 0.0
	for i := rank - 1; i < rank-1+tieCount; i++ {
		if i >= 0 && i < len(points) {
			total += points[i]
		}
	}
	return total / float64(tieCount)
}

// TablePoints looks a rank up in a rank table. An entry without a tie
// count matches an outright rank.
func TablePoints(rank, tieCount int, table []gamespecdomain.TableEntry) float64 {
	for _, e := range table {
		want := max(e.TieCount, 1)
		if e.ToPar == nil && e.Rank == rank && want == tieCount {
			return e.Points
		}
	}
	return 0
}

func rankPoints(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	values := make(map[string]float64, len(in.Entrants))
	for _, e := range in.Entrants {
		if e.Value == nil {
			res.Cells[e.ID] = missingCell(e)
			continue
		}
		values[e.ID] = *e.Value
	}
	dir := in.Rule.Better.OrDefault(gamespecdomain.Lower)
	for _, r := range RankWithTies(values, dir) {
		var pts float64
		if len(in.Rule.Table) > 0 {
			pts = TablePoints(r.Rank, r.TieCount, in.Rule.Table)
		} else {
			pts = PositionPoints(r.Rank, r.TieCount, in.Rule.Points)
		}
		res.Cells[r.Key] = valueCell(pts)
	}
	return res
}

func bestBall(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	dir := in.Rule.Better.OrDefault(gamespecdomain.Lower)
	for _, e := range in.Entrants {
		if len(e.Members) == 0 {
			if e.Value == nil {
				res.Cells[e.ID] = missingCell(e)
			} else {
				res.Cells[e.ID] = valueCell(*e.Value)
			}
			continue
		}
		var best *float64
		for _, m := range e.Members {
			if m != nil && (best == nil || beats(*m, *best, dir)) {
				best = m
			}
		}
		if best == nil {
			res.Cells[e.ID] = incompleteCell("no member scored")
			continue
		}
		res.Cells[e.ID] = valueCell(*best)
	}
	return res
}

func aggregate(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	for _, e := range in.Entrants {
		if len(e.Members) == 0 {
			if e.Value == nil {
				res.Cells[e.ID] = missingCell(e)
			} else {
				res.Cells[e.ID] = valueCell(*e.Value)
			}
			continue
		}
		sum, ok := 0.0, true
		for _, m := range e.Members {
			if m == nil {
				ok = false
				break
			}
			sum += *m
		}
		if !ok {
			res.Cells[e.ID] = incompleteCell("member not scored")
			continue
		}
		res.Cells[e.ID] = valueCell(sum)
	}
	return res
}

func runningTotal(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	for _, e := range in.Entrants {
		if e.Value == nil {
			res.Cells[e.ID] = missingCell(e)
			continue
		}
		prev, _ := lastValue(in.Prior, e.ID)
		res.Cells[e.ID] = valueCell(prev + *e.Value)
	}
	return res
}

// FormatMatchResult renders a decided match: "3 & 2", or just the margin
// when it was decided on the last hole.
func FormatMatchResult(up, remaining int) string {
	if up < 0 {
		up = -up
	}
	if remaining > 0 {
		return fmt.Sprintf("%d & %d", up, remaining)
	}
	return strconv.Itoa(up)
}

func matchStatus(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	if len(in.Entrants) != 2 {
		for _, e := range in.Entrants {
			res.Cells[e.ID] = incompleteCell("match_status needs exactly two entrants")
		}
		return res
	}
	a, b := in.Entrants[0], in.Entrants[1]

	allScored := true
	for _, p := range in.Prior {
		if p == nil {
			allScored = false
			continue
		}
		if p.MatchResult != "" {
			for id, c := range p.Cells {
				res.Cells[id] = c
			}
			res.MatchResult = p.MatchResult
			return res
		}
		if p.Cells[a.ID].Value == nil || p.Cells[b.ID].Value == nil {
			allScored = false
		}
	}

	if a.Value == nil || b.Value == nil {
		res.Cells[a.ID] = missingCell(a)
		res.Cells[b.ID] = missingCell(b)
		return res
	}

	up, _ := lastValue(in.Prior, a.ID)
	dir := in.Rule.Better.OrDefault(gamespecdomain.Lower)
	switch {
	case beats(*a.Value, *b.Value, dir):
		up++
	case beats(*b.Value, *a.Value, dir):
		up--
	}
	res.Cells[a.ID] = valueCell(up)
	res.Cells[b.ID] = valueCell(-up)

	if allScored && math.Abs(up) > float64(in.Remaining) {
		res.MatchResult = FormatMatchResult(int(up), in.Remaining)
	}
	return res
}

func skins(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	carry := 0.0
	if n := len(in.Prior); n > 0 && in.Prior[n-1] != nil {
		carry = in.Prior[n-1].Carryover
	}
	value := in.Rule.Value
	if value == 0 {
		value = 1
	}
	pot := value + carry

	for _, e := range in.Entrants {
		if e.Value == nil {
			for _, e := range in.Entrants {
				res.Cells[e.ID] = missingCell(e)
			}
			res.Carryover = carry
			return res
		}
	}
	if len(in.Entrants) == 0 {
		res.Carryover = carry
		return res
	}

	dir := in.Rule.Better.OrDefault(gamespecdomain.Lower)
	best := *in.Entrants[0].Value
	for _, e := range in.Entrants[1:] {
		if beats(*e.Value, best, dir) {
			best = *e.Value
		}
	}
	var winners []string
	for _, e := range in.Entrants {
		res.Cells[e.ID] = valueCell(0)
		if *e.Value == best {
			winners = append(winners, e.ID)
		}
	}

	switch {
	case len(winners) == 1:
		res.Cells[winners[0]] = valueCell(pot)
	case in.Rule.Ties == gamespecdomain.TiesSplit:
		share := pot / float64(len(winners))
		for _, id := range winners {
			res.Cells[id] = valueCell(share)
		}
	case in.Rule.Ties == gamespecdomain.TiesNone:
	default:
		res.Carryover = pot
	}
	return res
}

func vsField(in EvalInput) *RuleResult {
	res := newResult(len(in.Entrants))
	dir := in.Rule.Better.OrDefault(gamespecdomain.Lower)
	for _, e := range in.Entrants {
		if e.Value == nil {
			res.Cells[e.ID] = missingCell(e)
			continue
		}
		net := 0.0
		for _, o := range in.Entrants {
			if o.ID == e.ID || o.Value == nil {
				continue
			}
			switch {
			case beats(*e.Value, *o.Value, dir):
				net++
			case beats(*o.Value, *e.Value, dir):
				net--
			}
		}
		res.Cells[e.ID] = valueCell(net)
	}
	return res
}
