package score

import (
	"context"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/golf-scoring/app/eventbus"
	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoredb "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/repositories"
	scorerouter "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/router"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the score module.
type Module struct {
	EventBus      eventbus.EventBus
	ScoreService  scoreservice.Service
	ScoreRouter   *scorerouter.ScoreRouter
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// NewScoreModule creates a new instance of the Score module. rounds may be
// nil, in which case imported scorecards need a round column.
func NewScoreModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	rounds scoreservice.RoundDirectory,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "score.NewScoreModule called")

	scoreService := scoreservice.NewScoreService(
		scoredb.NewRepository(db),
		eventBus.Publisher(),
		rounds,
		logger,
		obs.Metrics,
		obs.Tracer,
		db,
	)

	scoreRouter := scorerouter.NewScoreRouter(logger, router, eventBus.Subscriber(), eventBus.Publisher(), obs.Tracer, obs.Metrics, obs.Registry)
	if err := scoreRouter.Configure(routerCtx, scoreService); err != nil {
		return nil, fmt.Errorf("failed to configure score router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		ScoreService:  scoreService,
		ScoreRouter:   scoreRouter,
		observability: obs,
	}, nil
}

// Run runs the score router until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting score module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.ScoreRouter.Router.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Score router stopped with error", "error", err)
		return
	}
	logger.InfoContext(ctx, "Score module goroutine stopped")
}

// Close stops the score module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping score module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.ScoreRouter != nil {
		if err := m.ScoreRouter.Close(); err != nil {
			logger.Error("Error closing ScoreRouter from module", "error", err)
			return fmt.Errorf("error closing ScoreRouter: %w", err)
		}
	}

	logger.Info("Score module stopped")
	return nil
}
