package scoreboardhandlers

import (
	"context"
	"errors"

	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
)

// HandleScoreRecorded recomputes the scoreboard of the game a score was
// written to.
func (h *ScoreboardHandlers) HandleScoreRecorded(ctx context.Context, payload *scoringevents.ScoreRecordedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	return h.recompute(ctx, payload.GameID)
}

// HandleRecomputeRequested recomputes a scoreboard on demand.
func (h *ScoreboardHandlers) HandleRecomputeRequested(ctx context.Context, payload *scoringevents.RecomputeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	if payload.GameID == "" {
		return nil, errors.New("recompute request without game id")
	}
	h.logger.InfoContext(ctx, "Recompute requested",
		attr.GameID("game_id", payload.GameID),
		attr.String("reason", payload.Reason),
		attr.ExtractCorrelationID(ctx),
	)
	return h.recompute(ctx, payload.GameID)
}

func (h *ScoreboardHandlers) recompute(ctx context.Context, gameID sharedtypes.GameID) ([]handlerwrapper.Result, error) {
	result, err := h.service.Recompute(ctx, gameID)
	if err != nil {
		return nil, err
	}
	out := scoreboardservice.OutcomeEvents(result)
	if out == nil {
		return nil, errors.New("unexpected empty result from Recompute service")
	}
	return out, nil
}
