package scorehandlers

import (
	"context"

	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
)

// Handlers defines the contract for score write command handlers.
type Handlers interface {
	HandleScoreRecordRequested(ctx context.Context, payload *scoringevents.ScoreRecordRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleBulkScoreRecordRequested(ctx context.Context, payload *scoringevents.BulkScoreRecordRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
