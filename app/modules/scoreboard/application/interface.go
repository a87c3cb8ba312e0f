package scoreboardservice

import (
	"context"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	scoredomain "github.com/Black-And-White-Club/golf-scoring/app/modules/score/domain"
	scoreboarddomain "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/domain"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_service.go -package=mocks

// Service computes, caches and publishes scoreboards.
type Service interface {
	// LoadSnapshot gathers everything a game's scoreboard is computed from.
	LoadSnapshot(ctx context.Context, gameID sharedtypes.GameID) (scoreboarddomain.Input, error)

	// ComputeScoreboard computes the current scoreboard of a stored game.
	ComputeScoreboard(ctx context.Context, gameID sharedtypes.GameID) (results.OperationResult[ScoreboardComputedPayload, ScoreboardFailedPayload], error)

	// ComputeSnapshot computes a scoreboard from a snapshot that is not stored.
	ComputeSnapshot(ctx context.Context, in scoreboarddomain.Input) (results.OperationResult[ScoreboardComputedPayload, ScoreboardFailedPayload], error)

	// Recompute computes a game's scoreboard and enqueues postings for rounds
	// that became eligible.
	Recompute(ctx context.Context, gameID sharedtypes.GameID) (results.OperationResult[ScoreboardComputedPayload, ScoreboardFailedPayload], error)

	// RecomputeAndPublish runs Recompute and publishes the outcome.
	RecomputeAndPublish(ctx context.Context, gameID sharedtypes.GameID) (results.OperationResult[ScoreboardComputedPayload, ScoreboardFailedPayload], error)

	// StorePosting records the handicap authority's answer on a round.
	StorePosting(ctx context.Context, roundID sharedtypes.RoundID, posting golftypes.Posting) error

	// ExportXLSX renders the scoreboard of a game as a workbook.
	ExportXLSX(ctx context.Context, gameID sharedtypes.GameID) ([]byte, error)

	// RunningTotalChart renders a PNG of team running totals, or player net
	// to par when the game has no teams.
	RunningTotalChart(ctx context.Context, gameID sharedtypes.GameID) ([]byte, error)
}

// SpecResolver resolves the gamespecs a game refers to.
type SpecResolver interface {
	Resolve(ctx context.Context, refs []golftypes.SpecRef) ([]gamespecdomain.GameSpec, error)
}

// ScoreLogs reads the score log of a game.
type ScoreLogs interface {
	GameLogs(ctx context.Context, gameID sharedtypes.GameID) (map[sharedtypes.RoundID]scoredomain.RoundLogs, error)
}

// PostingEnqueuer hands eligible rounds to the posting queue.
type PostingEnqueuer interface {
	EnqueueEligible(ctx context.Context, sb scoreboarddomain.Scoreboard, in scoreboarddomain.Input) (int, error)
}

// ScoreboardComputedPayload carries a computed scoreboard.
type ScoreboardComputedPayload struct {
	GameID     sharedtypes.GameID          `json:"game_id"`
	InputHash  string                      `json:"input_hash"`
	Scoreboard scoreboarddomain.Scoreboard `json:"scoreboard"`
	Cached     bool                        `json:"cached"`
	Enqueued   int                         `json:"enqueued_postings"`
}

// ScoreboardFailedPayload explains why no scoreboard was computed.
type ScoreboardFailedPayload struct {
	GameID sharedtypes.GameID `json:"game_id"`
	Code   string             `json:"code"`
	Reason string             `json:"reason"`
}
