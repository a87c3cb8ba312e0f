package scoringevents

import (
	"time"

	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// StreamName is the JetStream stream that carries every scoring subject.
const StreamName = "scoring"

// Versioned topics.
const (
	ScoreRecordRequestedV1     = "scoring.score.record.requested.v1"
	BulkScoreRecordRequestedV1 = "scoring.score.bulk.record.requested.v1"
	ScoreRecordedV1            = "scoring.score.recorded.v1"
	ScoreRecordFailedV1        = "scoring.score.record.failed.v1"

	ScoreboardUpdatedV1       = "scoring.scoreboard.updated.v1"
	ScoreboardComputeFailedV1 = "scoring.scoreboard.compute.failed.v1"
	RecomputeRequestedV1      = "scoring.scoreboard.recompute.requested.v1"

	RoundPostingCompletedV1 = "scoring.round.posting.completed.v1"
)

// Subjects returns every subject published on the scoring stream.
func Subjects() []string {
	return []string{
		ScoreRecordRequestedV1,
		BulkScoreRecordRequestedV1,
		ScoreRecordedV1,
		ScoreRecordFailedV1,
		ScoreboardUpdatedV1,
		ScoreboardComputeFailedV1,
		RecomputeRequestedV1,
		RoundPostingCompletedV1,
	}
}

// ScoreRecordRequestedPayloadV1 asks for one score write, e.g. from a
// scoring device.
type ScoreRecordRequestedPayloadV1 struct {
	GameID   sharedtypes.GameID   `json:"game_id"`
	RoundID  sharedtypes.RoundID  `json:"round_id"`
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Hole     string               `json:"hole"`
	Key      string               `json:"key"`
	Value    string               `json:"value"`
	Writer   string               `json:"writer"`
	TS       time.Time            `json:"ts,omitempty"`
}

// BulkScoreRecordRequestedPayloadV1 asks for a batch of writes to one game,
// stored all or nothing.
type BulkScoreRecordRequestedPayloadV1 struct {
	GameID sharedtypes.GameID              `json:"game_id"`
	Writes []ScoreRecordRequestedPayloadV1 `json:"writes"`
}

// ScoreRecordedPayloadV1 is emitted after a score entry is appended.
type ScoreRecordedPayloadV1 struct {
	GameID   sharedtypes.GameID   `json:"game_id"`
	RoundID  sharedtypes.RoundID  `json:"round_id"`
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Hole     string               `json:"hole"`
	Key      string               `json:"key"`
	Value    string               `json:"value"`
	Writer   string               `json:"writer"`
	TS       time.Time            `json:"ts"`
	Seq      int64                `json:"seq"`
}

// ScoreRecordFailedPayloadV1 is emitted when a score entry is rejected.
type ScoreRecordFailedPayloadV1 struct {
	GameID  sharedtypes.GameID  `json:"game_id"`
	RoundID sharedtypes.RoundID `json:"round_id"`
	Hole    string              `json:"hole"`
	Key     string              `json:"key"`
	Reason  string              `json:"reason"`
}

// RecomputeRequestedPayloadV1 asks for a scoreboard to be rebuilt.
type RecomputeRequestedPayloadV1 struct {
	GameID sharedtypes.GameID `json:"game_id"`
	Reason string             `json:"reason,omitempty"`
}

// ScoreboardUpdatedPayloadV1 is emitted after a scoreboard was recomputed.
// The scoreboard itself is fetched over HTTP or from the cache by hash.
type ScoreboardUpdatedPayloadV1 struct {
	GameID    sharedtypes.GameID `json:"game_id"`
	InputHash string             `json:"input_hash"`
	Thru      int                `json:"thru"`
	Enqueued  int                `json:"enqueued_postings"`
}

// ScoreboardComputeFailedPayloadV1 is emitted when a scoreboard cannot be
// computed, e.g. because a gamespec is malformed.
type ScoreboardComputeFailedPayloadV1 struct {
	GameID sharedtypes.GameID `json:"game_id"`
	Reason string             `json:"reason"`
}

// RoundPostingCompletedPayloadV1 carries the handicap authority's answer to a
// posted round.
type RoundPostingCompletedPayloadV1 struct {
	GameID  sharedtypes.GameID  `json:"game_id"`
	RoundID sharedtypes.RoundID `json:"round_id"`
	Posting golftypes.Posting   `json:"posting"`
}
