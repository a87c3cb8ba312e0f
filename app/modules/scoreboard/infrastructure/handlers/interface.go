package scoreboardhandlers

import (
	"context"

	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
)

// Handlers defines the contract for scoreboard event handlers.
type Handlers interface {
	HandleScoreRecorded(ctx context.Context, payload *scoringevents.ScoreRecordedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRecomputeRequested(ctx context.Context, payload *scoringevents.RecomputeRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePostingCompleted(ctx context.Context, payload *scoringevents.RoundPostingCompletedPayloadV1) ([]handlerwrapper.Result, error)
}
