package handicap

import (
	"context"
	"fmt"

	handicapservice "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/application"
	handicapclient "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/infrastructure/client"
	handicapqueue "github.com/Black-And-White-Club/golf-scoring/app/modules/handicap/infrastructure/queue"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability"
	"github.com/Black-And-White-Club/golf-scoring/config"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the handicap posting module.
type Module struct {
	HandicapService handicapservice.Service
	Queue           *handicapqueue.Service
	runWorkers      bool
	observability   *observability.Observability
}

// NewHandicapModule creates the posting queue and the service feeding it.
// With runWorkers false the queue only accepts jobs; another process posts
// them.
func NewHandicapModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	publisher message.Publisher,
	runWorkers bool,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "handicap.NewHandicapModule called")

	var worker *handicapqueue.PostRoundWorker
	if runWorkers {
		client := handicapclient.NewHTTPClient(ctx, handicapclient.Config{
			BaseURL:       cfg.Posting.BaseURL,
			TokenURL:      cfg.Posting.TokenURL,
			ClientID:      cfg.Posting.ClientID,
			ClientSecret:  cfg.Posting.ClientSecret,
			RatePerSecond: cfg.Posting.RatePerSecond,
			Burst:         cfg.Posting.Burst,
		}, logger)
		worker = handicapqueue.NewPostRoundWorker(client, publisher, logger, obs.Metrics)
	}

	queue, err := handicapqueue.NewService(ctx, handicapqueue.Config{
		DSN:         cfg.Postgres.DSN,
		MaxWorkers:  cfg.Posting.MaxWorkers,
		MaxAttempts: cfg.Posting.MaxAttempts,
	}, worker, logger, obs.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create posting queue: %w", err)
	}

	return &Module{
		HandicapService: handicapservice.NewHandicapService(queue, logger, obs.Metrics, obs.Tracer),
		Queue:           queue,
		runWorkers:      runWorkers,
		observability:   obs,
	}, nil
}

// Run starts the queue workers. An insert only module has nothing to run.
func (m *Module) Run(ctx context.Context) error {
	if !m.runWorkers {
		return nil
	}
	m.observability.Logger.InfoContext(ctx, "Starting handicap module")
	return m.Queue.Start(ctx)
}

// Close stops the workers and closes the queue pool.
func (m *Module) Close(ctx context.Context) error {
	m.observability.Logger.Info("Stopping handicap module")
	if err := m.Queue.Stop(ctx); err != nil {
		return fmt.Errorf("error stopping posting queue: %w", err)
	}
	return nil
}
