package scoreservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/golf-scoring/app/modules/score/application/parsers"
	scoredb "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	scoringmetrics "github.com/Black-And-White-Club/golf-scoring/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "score"

// ScoreService implements the Service interface.
type ScoreService struct {
	repo      scoredb.Repository
	publisher message.Publisher
	parsers   parsers.ParserFactory
	rounds    RoundDirectory
	logger    *slog.Logger
	metrics   scoringmetrics.ScoringMetrics
	tracer    trace.Tracer
	db        *bun.DB
	now       func() time.Time
}

var _ Service = (*ScoreService)(nil)

// NewScoreService creates a new ScoreService. publisher and rounds may be
// nil; events are then not published and imports need a round column.
func NewScoreService(
	repo scoredb.Repository,
	publisher message.Publisher,
	rounds RoundDirectory,
	logger *slog.Logger,
	metrics scoringmetrics.ScoringMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ScoreService {
	return &ScoreService{
		repo:      repo,
		publisher: publisher,
		parsers:   parsers.NewFactory(),
		rounds:    rounds,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		now:       time.Now,
	}
}

// operation is one unit of service work.
type operation[S any] func(ctx context.Context) (results.OperationResult[S, ScoreRecordFailedPayload], error)

// withTelemetry runs op under a span and records attempt, outcome and
// duration. A panic in op is turned into an error.
func withTelemetry[S any](
	s *ScoreService,
	ctx context.Context,
	name string,
	gameID sharedtypes.GameID,
	op operation[S],
) (result results.OperationResult[S, ScoreRecordFailedPayload], err error) {
	ctx, span := s.tracer.Start(ctx, "ScoreService."+name, trace.WithAttributes(
		attribute.String("game_id", gameID.String()),
	))
	defer span.End()

	logAttrs := []any{
		attr.String("operation", name),
		attr.GameID("game_id", gameID),
		attr.ExtractCorrelationID(ctx),
	}
	s.metrics.RecordOperationAttempt(ctx, name, serviceName)
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", name, r)
			result = results.OperationResult[S, ScoreRecordFailedPayload]{}
		}
		s.metrics.RecordOperationDuration(ctx, name, serviceName, time.Since(started))

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.metrics.RecordOperationFailure(ctx, name, serviceName)
			s.logger.ErrorContext(ctx, "Score operation errored", append(logAttrs, attr.Error(err))...)
		case result.IsFailure():
			s.metrics.RecordOperationFailure(ctx, name, serviceName)
			s.logger.WarnContext(ctx, "Score operation rejected", append(logAttrs, attr.String("reason", result.Failure.Reason))...)
		default:
			s.metrics.RecordOperationSuccess(ctx, name, serviceName)
			s.logger.InfoContext(ctx, "Score operation done", logAttrs...)
		}
	}()

	if result, err = op(ctx); err != nil {
		err = fmt.Errorf("%s: %w", name, err)
	}
	return result, err
}

// runInTx runs fn in a transaction when the service has a database; the
// transaction rolls back when fn returns an error.
func runInTx[S any, F any](
	s *ScoreService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}
	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	return result, err
}
