// Package handicapqueue runs round postings as River jobs.
package handicapqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	sharedtypes "github.com/Black-And-White-Club/golf-scoring/app/shared/types/shared"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

const component = "river"

// Metrics records queue measurements.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordPostingResult(ctx context.Context, success bool)
}

// QueueService defines the posting queue operations.
type QueueService interface {
	// Enqueue inserts a posting job. It reports false when a job for the
	// round already exists.
	Enqueue(ctx context.Context, job PostRoundJob) (bool, error)
	// Jobs returns the posting jobs of a round (for debugging)
	Jobs(ctx context.Context, roundID sharedtypes.RoundID) ([]JobInfo, error)
	// HealthCheck verifies the queue service is healthy
	HealthCheck(ctx context.Context) error
	// Start starts working jobs
	Start(ctx context.Context) error
	// Stop stops working jobs
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Config configures the queue service.
type Config struct {
	DSN         string
	MaxWorkers  int
	MaxAttempts int
}

// Service is the River backed posting queue.
type Service struct {
	client      *river.Client[pgx.Tx]
	pool        *pgxpool.Pool
	logger      *slog.Logger
	metrics     Metrics
	maxAttempts int
}

// NewService connects to Postgres and creates the River client. worker may
// be nil for an insert only client.
func NewService(ctx context.Context, cfg Config, worker *PostRoundWorker, logger *slog.Logger, metrics Metrics) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_posting_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", component)

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", component)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", component)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", component)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 5
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = river.MaxAttemptsDefault
	}

	riverCfg := &river.Config{MaxAttempts: cfg.MaxAttempts}
	if worker != nil {
		workers := river.NewWorkers()
		river.AddWorker(workers, worker)
		riverCfg.Workers = workers
		riverCfg.Queues = map[string]river.QueueConfig{
			QueueName: {MaxWorkers: cfg.MaxWorkers},
		}
	}

	client, err := river.NewClient(riverpgxv5.New(pool), riverCfg)
	if err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", component)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", component)
	metrics.RecordOperationDuration(ctx, "initialize_service", component, time.Since(start))
	ctxLogger.Info("Posting queue service initialized")

	return &Service{
		client:      client,
		pool:        pool,
		logger:      ctxLogger,
		metrics:     metrics,
		maxAttempts: cfg.MaxAttempts,
	}, nil
}

// Migrate brings the River schema up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}

// Pool returns the pgx pool the service runs on.
func (s *Service) Pool() *pgxpool.Pool { return s.pool }

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	return s.timed(ctx, "start_service", func() error {
		if err := s.client.Start(ctx); err != nil {
			return fmt.Errorf("failed to start River client: %w", err)
		}
		s.logger.Info("Posting queue service started")
		return nil
	})
}

// Stop stops the River client and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	defer s.pool.Close()
	return s.timed(ctx, "stop_service", func() error {
		if err := s.client.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop River client: %w", err)
		}
		s.logger.Info("Posting queue service stopped")
		return nil
	})
}

// Enqueue inserts a posting job on the posting queue.
func (s *Service) Enqueue(ctx context.Context, job PostRoundJob) (bool, error) {
	inserted := false
	err := s.timed(ctx, "enqueue_posting", func() error {
		res, err := s.client.Insert(ctx, job, &river.InsertOpts{
			Queue:       QueueName,
			MaxAttempts: s.maxAttempts,
			UniqueOpts: river.UniqueOpts{
				ByArgs: true,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to enqueue posting job: %w", err)
		}
		inserted = !res.UniqueSkippedAsDuplicate
		s.logger.InfoContext(ctx, "Posting job enqueued",
			attr.RoundID("round_id", job.RoundID),
			attr.Int64("job_id", res.Job.ID),
			attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
		)
		return nil
	})
	return inserted, err
}

// Jobs returns the posting jobs of a round.
func (s *Service) Jobs(ctx context.Context, roundID sharedtypes.RoundID) ([]JobInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, state, attempt, max_attempts FROM river_job
		 WHERE kind = $1 AND args->>'round_id' = $2
		 ORDER BY created_at`,
		PostRoundJob{}.Kind(), string(roundID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query posting jobs: %w", err)
	}
	defer rows.Close()

	var out []JobInfo
	for rows.Next() {
		var (
			info              JobInfo
			attempt, maxTries int16
		)
		if err := rows.Scan(&info.ID, &info.State, &attempt, &maxTries); err != nil {
			return nil, err
		}
		info.RoundID = string(roundID)
		info.Attempt = int(attempt)
		info.MaxAttempts = int(maxTries)
		out = append(out, info)
	}
	return out, rows.Err()
}

// HealthCheck verifies the queue service is healthy
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.timed(ctx, "health_check", func() error {
		var count int
		if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM river_job").Scan(&count); err != nil {
			return fmt.Errorf("queue service health check failed: %w", err)
		}
		s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
		return nil
	})
}

func (s *Service) timed(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, operation, component)
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operation, component, time.Since(start))
	}()
	if err := fn(); err != nil {
		s.logger.ErrorContext(ctx, "Queue operation failed",
			attr.String("operation", operation),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, operation, component)
		return err
	}
	s.metrics.RecordOperationSuccess(ctx, operation, component)
	return nil
}
