package scoredomain

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// WriterImport is the writer id used for entries created from an imported
// scorecard.
const WriterImport = "import"

// Entry is one stored write of the score log.
type Entry struct {
	GameID   sharedtypes.GameID
	RoundID  sharedtypes.RoundID
	PlayerID sharedtypes.PlayerID
	Hole     string
	Key      string
	Value    string
	TS       time.Time
	Writer   string
	Seq      int64
}

// ScoreValue converts the entry to the score document representation.
func (e Entry) ScoreValue() golftypes.ScoreValue {
	return golftypes.ScoreValue{K: e.Key, V: e.Value, TS: e.TS, By: e.Writer, Seq: e.Seq}
}

// Log is the append-only write log of one hole of one round. A Log is a
// value; Append returns a new Log and never modifies the receiver.
type Log struct {
	hole    string
	values  []golftypes.ScoreValue
	history []golftypes.ScoreUpdate
}

// NewLog returns an empty log for a hole.
func NewLog(hole string) Log {
	return Log{hole: hole}
}

// LogFromScore rebuilds a log from a stored score document.
func LogFromScore(s golftypes.Score) Log {
	return Log{
		hole:    s.Hole,
		values:  slices.Clone(s.Values),
		history: slices.Clone(s.History),
	}
}

// Hole returns the hole key.
func (l Log) Hole() string { return l.hole }

// Len returns the number of writes.
func (l Log) Len() int { return len(l.values) }

// Append records a write. A zero Seq is assigned the next insertion
// sequence. When the write supersedes a different current value, the old
// value is kept in the audit history.
func (l Log) Append(v golftypes.ScoreValue) Log {
	if v.Seq == 0 {
		var last int64
		for _, e := range l.values {
			last = max(last, e.Seq)
		}
		v.Seq = last + 1
	}

	next := Log{
		hole:    l.hole,
		values:  append(slices.Clone(l.values), v),
		history: slices.Clone(l.history),
	}

	if cur, ok := l.Current(v.K); ok && Newer(v, cur) && cur.V != v.V {
		next.history = append(next.history, golftypes.ScoreUpdate{
			Key: v.K,
			By:  v.By,
			At:  v.TS,
			Old: cur.V,
		})
	}
	return next
}

// Current returns the winning value for key.
func (l Log) Current(key string) (golftypes.ScoreValue, bool) {
	v, ok := Resolve(l.values)[key]
	return v, ok
}

// History returns every write of key, oldest first by the resolution order.
func (l Log) History(key string) []golftypes.ScoreValue {
	var out []golftypes.ScoreValue
	for _, v := range l.values {
		if v.K == key {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b golftypes.ScoreValue) int {
		switch {
		case Newer(a, b):
			return 1
		case Newer(b, a):
			return -1
		}
		return 0
	})
	return out
}

// Updates returns the audit trail of superseded values.
func (l Log) Updates() []golftypes.ScoreUpdate { return slices.Clone(l.history) }

// Score renders the log as a score document.
func (l Log) Score() golftypes.Score {
	return golftypes.Score{
		Hole:    l.hole,
		Values:  slices.Clone(l.values),
		History: slices.Clone(l.history),
	}
}

// RoundLogs holds the per hole logs of a round.
type RoundLogs map[string]Log

// Scores returns the score documents of the round ordered by hole number.
func (r RoundLogs) Scores() []golftypes.Score {
	out := make([]golftypes.Score, 0, len(r))
	for _, l := range r {
		out = append(out, l.Score())
	}
	slices.SortFunc(out, func(a, b golftypes.Score) int {
		return compareHoleKeys(a.Hole, b.Hole)
	})
	return out
}

// FromEntries groups stored entries into per round, per hole logs. Entries
// are applied in sequence order so the audit trail is stable.
func FromEntries(entries []Entry) map[sharedtypes.RoundID]RoundLogs {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(a.Seq, b.Seq)
	})

	out := make(map[sharedtypes.RoundID]RoundLogs)
	for _, e := range sorted {
		logs, ok := out[e.RoundID]
		if !ok {
			logs = make(RoundLogs)
			out[e.RoundID] = logs
		}
		l, ok := logs[e.Hole]
		if !ok {
			l = NewLog(e.Hole)
		}
		logs[e.Hole] = l.Append(e.ScoreValue())
	}
	return out
}

// FoldIntoRound merges logged writes into the round's score documents.
// Writes already present in the round are kept.
func FoldIntoRound(round golftypes.Round, logs RoundLogs) golftypes.Round {
	merged := make(RoundLogs, len(round.Scores)+len(logs))
	for _, s := range round.Scores {
		merged[s.Hole] = LogFromScore(s)
	}
	for hole, l := range logs {
		base, ok := merged[hole]
		if !ok {
			merged[hole] = l
			continue
		}
		for _, v := range l.values {
			if !containsValue(base.values, v) {
				base = base.Append(v)
			}
		}
		merged[hole] = base
	}
	round.Scores = merged.Scores()
	return round
}

func containsValue(values []golftypes.ScoreValue, v golftypes.ScoreValue) bool {
	for _, e := range values {
		if e.K == v.K && e.V == v.V && e.By == v.By && e.Seq == v.Seq && e.TS.Equal(v.TS) {
			return true
		}
	}
	return false
}

func compareHoleKeys(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return cmp.Compare(na, nb)
	}
	return cmp.Compare(a, b)
}
