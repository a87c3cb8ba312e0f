package scoreboardhandlers

import (
	"context"
	"errors"
	"fmt"

	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
)

// HandlePostingCompleted stores the handicap authority's answer on the
// round. Nothing is published.
func (h *ScoreboardHandlers) HandlePostingCompleted(ctx context.Context, payload *scoringevents.RoundPostingCompletedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	if err := h.service.StorePosting(ctx, payload.RoundID, payload.Posting); err != nil {
		return nil, fmt.Errorf("failed to store posting for round %s: %w", payload.RoundID, err)
	}
	return nil, nil
}
