package scoreboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/golf-scoring/app/eventbus"
	gamespecservice "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/application"
	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	scoreboardcache "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/cache"
	scoreboardhttp "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/http"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
	scoreboardrouter "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/router"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the scoreboard module.
type Module struct {
	EventBus          eventbus.EventBus
	ScoreboardService scoreboardservice.Service
	ScoreboardRouter  *scoreboardrouter.ScoreboardRouter
	cancelFunc        context.CancelFunc
	observability     *observability.Observability
}

// Deps are the collaborators the scoreboard is computed from. Cache and
// Postings may be nil.
type Deps struct {
	Specs    gamespecservice.Service
	Scores   scoreservice.Service
	Cache    scoreboardcache.Cache
	Postings scoreboardservice.PostingEnqueuer
}

// NewScoreboardModule creates a new instance of the Scoreboard module.
func NewScoreboardModule(
	ctx context.Context,
	obs *observability.Observability,
	db bun.IDB,
	eventBus eventbus.EventBus,
	router *message.Router,
	deps Deps,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "scoreboard.NewScoreboardModule called")

	service := scoreboardservice.NewScoreboardService(
		scoreboarddb.NewRepository(db),
		deps.Specs,
		deps.Scores,
		deps.Cache,
		deps.Postings,
		eventBus.Publisher(),
		logger,
		obs.Metrics,
		obs.Tracer,
	)

	scoreboardRouter := scoreboardrouter.NewScoreboardRouter(logger, router, eventBus.Subscriber(), eventBus.Publisher(), obs.Tracer, obs.Metrics, obs.Registry)
	if err := scoreboardRouter.Configure(routerCtx, service); err != nil {
		return nil, fmt.Errorf("failed to configure scoreboard router: %w", err)
	}

	return &Module{
		EventBus:          eventBus,
		ScoreboardService: service,
		ScoreboardRouter:  scoreboardRouter,
		observability:     obs,
	}, nil
}

// HTTPHandler returns the API routes served next to the scoreboard.
func (m *Module) HTTPHandler(scores scoreservice.Service, specs gamespecservice.Service, allowedOrigins []string) chi.Router {
	return scoreboardhttp.NewRouter(
		scoreboardhttp.NewHandlers(m.ScoreboardService, scores, specs, m.observability.Logger),
		allowedOrigins,
	)
}

// Run runs the scoreboard router until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting scoreboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.ScoreboardRouter.Router.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Scoreboard router stopped with error", "error", err)
		return
	}
	logger.InfoContext(ctx, "Scoreboard module goroutine stopped")
}

// Close stops the scoreboard module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping scoreboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.ScoreboardRouter != nil {
		if err := m.ScoreboardRouter.Close(); err != nil {
			logger.Error("Error closing ScoreboardRouter from module", "error", err)
			return fmt.Errorf("error closing ScoreboardRouter: %w", err)
		}
	}

	logger.Info("Scoreboard module stopped")
	return nil
}
