package handicapqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	handicapclient "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/infrastructure/client"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"
)

// PostRoundWorker posts rounds and publishes the authority's answer.
type PostRoundWorker struct {
	river.WorkerDefaults[PostRoundJob]
	client    handicapclient.PostingClient
	publisher message.Publisher
	logger    *slog.Logger
	metrics   Metrics
	now       func() time.Time
}

// NewPostRoundWorker creates a new PostRoundWorker.
func NewPostRoundWorker(client handicapclient.PostingClient, publisher message.Publisher, logger *slog.Logger, metrics Metrics) *PostRoundWorker {
	return &PostRoundWorker{
		client:    client,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Work posts the round. A returned error makes River retry the job.
func (w *PostRoundWorker) Work(ctx context.Context, job *river.Job[PostRoundJob]) error {
	args := job.Args
	ctxLogger := w.logger.With(
		attr.GameID("game_id", args.GameID),
		attr.RoundID("round_id", args.RoundID),
		attr.Int64("job_id", job.ID),
		attr.Int("attempt", job.Attempt),
	)
	ctxLogger.InfoContext(ctx, "Posting round")

	res, err := w.client.PostRound(ctx, handicapclient.NewPostingRequest(args.GameID, args.PlayedAt, args.Candidate))
	if err != nil {
		ctxLogger.WarnContext(ctx, "Round posting failed", attr.Error(err))
		return fmt.Errorf("failed to post round %s: %w", args.RoundID, err)
	}
	w.metrics.RecordPostingResult(ctx, res.Success)

	payload := scoringevents.RoundPostingCompletedPayloadV1{
		GameID:  args.GameID,
		RoundID: args.RoundID,
		Posting: golftypes.Posting{
			ID:                res.ID,
			Success:           res.Success,
			Messages:          res.Messages,
			EstimatedHandicap: res.EstimatedHandicap,
			PostedAt:          w.now().UTC(),
		},
	}
	msg, err := handlerwrapper.NewMessage(ctx, scoringevents.RoundPostingCompletedV1, payload)
	if err != nil {
		return err
	}
	if err := w.publisher.Publish(scoringevents.RoundPostingCompletedV1, msg); err != nil {
		ctxLogger.ErrorContext(ctx, "Failed to publish posting result", attr.Error(err))
		return fmt.Errorf("failed to publish posting result: %w", err)
	}

	ctxLogger.InfoContext(ctx, "Round posting completed",
		attr.String("posting_id", res.ID),
		attr.Bool("success", res.Success),
	)
	return nil
}
