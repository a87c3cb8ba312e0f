package gamespecservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	gamespecloader "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/loader"
	gamespecdb "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	scoringmetrics "github.com/Black-And-White-Club/golf-scoring/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/results"
	golftypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/golf"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "gamespec"

// Service resolves and stores gamespecs.
type Service interface {
	// SeedSpecs stores every spec version not stored yet. Versions already
	// present are reported as skipped.
	SeedSpecs(ctx context.Context, specs []gamespecdomain.GameSpec) (results.OperationResult[SpecsSeededPayload, SpecsSeedFailedPayload], error)

	// GetSpec returns a spec version, the latest when version is 0.
	GetSpec(ctx context.Context, name string, version int) (gamespecdomain.GameSpec, error)

	// ListSpecs returns the latest version of every known spec.
	ListSpecs(ctx context.Context) ([]gamespecdomain.GameSpec, error)

	// Resolve returns the specs a game refers to, in the game's order.
	Resolve(ctx context.Context, refs []golftypes.SpecRef) ([]gamespecdomain.GameSpec, error)
}

// SpecsSeededPayload lists the outcome of a seed run.
type SpecsSeededPayload struct {
	Stored  []string `json:"stored"`
	Skipped []string `json:"skipped"`
}

// SpecsSeedFailedPayload reports specs that failed validation.
type SpecsSeedFailedPayload struct {
	Reason string `json:"reason"`
}

// GameSpecService implements Service. Built in specs answer lookups for
// names the store does not know.
type GameSpecService struct {
	repo    gamespecdb.Repository
	builtin []gamespecdomain.GameSpec
	logger  *slog.Logger
	metrics scoringmetrics.ScoringMetrics
	tracer  trace.Tracer
}

var _ Service = (*GameSpecService)(nil)

// NewGameSpecService creates a new GameSpecService. repo may be nil, in
// which case only the built in specs are served.
func NewGameSpecService(
	repo gamespecdb.Repository,
	builtin []gamespecdomain.GameSpec,
	logger *slog.Logger,
	metrics scoringmetrics.ScoringMetrics,
	tracer trace.Tracer,
) *GameSpecService {
	return &GameSpecService{
		repo:    repo,
		builtin: builtin,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *GameSpecService,
	ctx context.Context,
	operationName string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("operation", operationName),
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
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.String("operation", operationName),
			attr.Any("failure_payload", *result.Failure),
		)
	}
	if result.IsSuccess() {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}
	return result, nil
}

// SeedSpecs stores every spec version not stored yet.
func (s *GameSpecService) SeedSpecs(ctx context.Context, specs []gamespecdomain.GameSpec) (results.OperationResult[SpecsSeededPayload, SpecsSeedFailedPayload], error) {
	return withTelemetry(s, ctx, "SeedSpecs", func(ctx context.Context) (results.OperationResult[SpecsSeededPayload, SpecsSeedFailedPayload], error) {
		for _, spec := range specs {
			if err := gamespecdomain.Validate(spec); err != nil {
				return results.FailureResult[SpecsSeededPayload](SpecsSeedFailedPayload{Reason: err.Error()}), nil
			}
		}
		if s.repo == nil {
			return results.OperationResult[SpecsSeededPayload, SpecsSeedFailedPayload]{}, errors.New("no gamespec store configured")
		}

		var out SpecsSeededPayload
		for _, spec := range specs {
			label := fmt.Sprintf("%s@%d", spec.Name, spec.Version)
			err := s.repo.SaveVersion(ctx, nil, spec)
			switch {
			case errors.Is(err, gamespecdb.ErrSpecVersionExists):
				out.Skipped = append(out.Skipped, label)
			case err != nil:
				return results.OperationResult[SpecsSeededPayload, SpecsSeedFailedPayload]{}, err
			default:
				out.Stored = append(out.Stored, label)
			}
		}
		s.logger.InfoContext(ctx, "Gamespecs seeded",
			attr.Int("stored", len(out.Stored)),
			attr.Int("skipped", len(out.Skipped)),
		)
		return results.SuccessResult[SpecsSeededPayload, SpecsSeedFailedPayload](out), nil
	})
}

// GetSpec returns a spec version, the latest when version is 0.
func (s *GameSpecService) GetSpec(ctx context.Context, name string, version int) (gamespecdomain.GameSpec, error) {
	if s.repo != nil {
		var spec gamespecdomain.GameSpec
		var err error
		if version > 0 {
			spec, err = s.repo.GetVersion(ctx, nil, name, version)
		} else {
			spec, err = s.repo.Latest(ctx, nil, name)
		}
		if err == nil {
			return spec, nil
		}
		if !errors.Is(err, gamespecdb.ErrNotFound) {
			return gamespecdomain.GameSpec{}, err
		}
	}
	if spec, ok := gamespecloader.Find(s.builtin, name, version); ok {
		return spec, nil
	}
	return gamespecdomain.GameSpec{}, fmt.Errorf("%w: %s v%d", gamespecdb.ErrNotFound, name, version)
}

// ListSpecs returns the latest version of every known spec. Stored specs
// shadow built in specs of the same name.
func (s *GameSpecService) ListSpecs(ctx context.Context) ([]gamespecdomain.GameSpec, error) {
	var stored []gamespecdomain.GameSpec
	if s.repo != nil {
		var err error
		if stored, err = s.repo.List(ctx, nil); err != nil {
			return nil, err
		}
	}
	seen := make(map[string]bool, len(stored))
	for _, spec := range stored {
		seen[spec.Name] = true
	}
	out := stored
	for _, spec := range s.builtin {
		if seen[spec.Name] {
			continue
		}
		latest, _ := gamespecloader.Find(s.builtin, spec.Name, 0)
		seen[spec.Name] = true
		out = append(out, latest)
	}
	return out, nil
}

// Resolve returns the specs a game refers to.
func (s *GameSpecService) Resolve(ctx context.Context, refs []golftypes.SpecRef) ([]gamespecdomain.GameSpec, error) {
	out := make([]gamespecdomain.GameSpec, 0, len(refs))
	for _, ref := range refs {
		spec, err := s.GetSpec(ctx, ref.Name, ref.Version)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve gamespec %q: %w", ref.Name, err)
		}
		out = append(out, spec)
	}
	return out, nil
}
