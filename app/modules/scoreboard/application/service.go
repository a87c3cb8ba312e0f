package scoreboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	scoreboardcache "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/cache"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	scoringmetrics "github.com/Black-And-White-Club/golf-scoring/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "scoreboard"

// ScoreboardService implements the Service interface.
type ScoreboardService struct {
	repo      scoreboarddb.Repository
	specs     SpecResolver
	scores    ScoreLogs
	cache     scoreboardcache.Cache
	postings  PostingEnqueuer
	publisher message.Publisher
	logger    *slog.Logger
	metrics   scoringmetrics.ScoringMetrics
	tracer    trace.Tracer
}

var _ Service = (*ScoreboardService)(nil)

// NewScoreboardService creates a new ScoreboardService. cache, postings and
// publisher may be nil.
func NewScoreboardService(
	repo scoreboarddb.Repository,
	specs SpecResolver,
	scores ScoreLogs,
	cache scoreboardcache.Cache,
	postings PostingEnqueuer,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics scoringmetrics.ScoringMetrics,
	tracer trace.Tracer,
) *ScoreboardService {
	if cache == nil {
		cache = scoreboardcache.NoOpCache{}
	}
	return &ScoreboardService{
		repo:      repo,
		specs:     specs,
		scores:    scores,
		cache:     cache,
		postings:  postings,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ScoreboardService,
	ctx context.Context,
	operationName string,
	gameID sharedtypes.GameID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("game_id", gameID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.GameID("game_id", gameID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.GameID("game_id", gameID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GameID("game_id", gameID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GameID("game_id", gameID),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.GameID("game_id", gameID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}
