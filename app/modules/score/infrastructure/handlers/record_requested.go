package scorehandlers

import (
	"context"
	"errors"

	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
)

// HandleScoreRecordRequested records one score write. A rejected write is
// acked; only infrastructure errors are retried.
func (h *ScoreHandlers) HandleScoreRecordRequested(ctx context.Context, payload *scoringevents.ScoreRecordRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RecordScore(ctx, toCommand(*payload))
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		h.logger.WarnContext(ctx, "Score write rejected",
			attr.GameID("game_id", payload.GameID),
			attr.RoundID("round_id", payload.RoundID),
			attr.String("hole", payload.Hole),
			attr.String("key", payload.Key),
			attr.String("reason", result.Failure.Reason),
			attr.ExtractCorrelationID(ctx),
		)
	}
	return nil, nil
}

// HandleBulkScoreRecordRequested records a batch of writes to one game.
func (h *ScoreHandlers) HandleBulkScoreRecordRequested(ctx context.Context, payload *scoringevents.BulkScoreRecordRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	if payload.GameID == "" {
		return nil, errors.New("bulk score write without game id")
	}

	cmds := make([]scoreservice.RecordScoreCommand, 0, len(payload.Writes))
	for _, w := range payload.Writes {
		cmds = append(cmds, toCommand(w))
	}

	result, err := h.service.RecordScores(ctx, payload.GameID, cmds)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		h.logger.WarnContext(ctx, "Bulk score write rejected",
			attr.GameID("game_id", payload.GameID),
			attr.Int("writes", len(payload.Writes)),
			attr.String("reason", result.Failure.Reason),
			attr.ExtractCorrelationID(ctx),
		)
		return nil, nil
	}
	if result.Success == nil {
		return nil, errors.New("unexpected empty result from RecordScores service")
	}
	h.logger.InfoContext(ctx, "Bulk score write stored",
		attr.GameID("game_id", payload.GameID),
		attr.Int("entries", len(result.Success.Entries)),
		attr.ExtractCorrelationID(ctx),
	)
	return nil, nil
}

func toCommand(p scoringevents.ScoreRecordRequestedPayloadV1) scoreservice.RecordScoreCommand {
	return scoreservice.RecordScoreCommand{
		GameID:   p.GameID,
		RoundID:  p.RoundID,
		PlayerID: p.PlayerID,
		Hole:     p.Hole,
		Key:      p.Key,
		Value:    p.Value,
		Writer:   p.Writer,
		TS:       p.TS,
	}
}
