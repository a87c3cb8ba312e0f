package scoreservice

import (
	"context"
	"time"

	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// Service defines the score log operations.
type Service interface {
	// RecordScore validates and appends one write, then publishes it.
	RecordScore(ctx context.Context, cmd RecordScoreCommand) (results.OperationResult[ScoreRecordedPayload, ScoreRecordFailedPayload], error)

	// RecordScores appends a batch of writes for one game as a unit.
	RecordScores(ctx context.Context, gameID sharedtypes.GameID, cmds []RecordScoreCommand) (results.OperationResult[ScoresRecordedPayload, ScoreRecordFailedPayload], error)

	// ImportScorecard parses a CSV or XLSX scorecard and records every gross
	// score on it as one batch.
	ImportScorecard(ctx context.Context, gameID sharedtypes.GameID, filename string, data []byte) (results.OperationResult[ScorecardImportedPayload, ScoreRecordFailedPayload], error)

	// RoundLogs rebuilds the score documents of a round from the log.
	RoundLogs(ctx context.Context, roundID sharedtypes.RoundID) ([]golftypes.Score, error)

	// GameLogs returns the per round, per hole logs of a game.
	GameLogs(ctx context.Context, gameID sharedtypes.GameID) (map[sharedtypes.RoundID]scoredomain.RoundLogs, error)
}

// RoundDirectory resolves the round a player is playing in a game. It is
// used for imported scorecards without a round column.
type RoundDirectory interface {
	RoundFor(ctx context.Context, gameID sharedtypes.GameID, playerID sharedtypes.PlayerID) (sharedtypes.RoundID, error)
}

// RecordScoreCommand is one write of a key on a hole.
type RecordScoreCommand struct {
	GameID   sharedtypes.GameID   `json:"game_id"`
	RoundID  sharedtypes.RoundID  `json:"round_id"`
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Hole     string               `json:"hole"`
	Key      string               `json:"key"`
	Value    string               `json:"value"`
	Writer   string               `json:"writer"`
	TS       time.Time            `json:"ts,omitempty"`
}

// ScoreRecordedPayload carries the stored entry with its seq.
type ScoreRecordedPayload struct {
	Entry scoredomain.Entry `json:"entry"`
}

// ScoresRecordedPayload carries the stored entries of a batch.
type ScoresRecordedPayload struct {
	GameID  sharedtypes.GameID  `json:"game_id"`
	Entries []scoredomain.Entry `json:"entries"`
}

// ScorecardImportedPayload summarizes an import.
type ScorecardImportedPayload struct {
	GameID  sharedtypes.GameID    `json:"game_id"`
	Entries int                   `json:"entries"`
	Rounds  []sharedtypes.RoundID `json:"rounds"`
}

// ScoreRecordFailedPayload reports a rejected write.
type ScoreRecordFailedPayload struct {
	GameID  sharedtypes.GameID  `json:"game_id"`
	RoundID sharedtypes.RoundID `json:"round_id,omitempty"`
	Hole    string              `json:"hole,omitempty"`
	Key     string              `json:"key,omitempty"`
	Reason  string              `json:"reason"`
}
