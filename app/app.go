// Package app wires the modules into a running service.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/golf-scoring/app/eventbus"
	"github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec"
	"github.com/Black-And-White-Club/golf-scoring/app/modules/handicap"
	"github.com/Black-And-White-Club/golf-scoring/app/modules/score"
	"github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard"
	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	scoreboardcache "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/cache"
	scoreboarddb "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/repositories"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/observability/attr"
	"github.com/Black-And-White-Club/golf-scoring/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// queueGroup names the durable consumers shared by every replica.
const queueGroup = "golf-scoring"

// Modules holds the application modules.
type Modules struct {
	GameSpec   *gamespec.Module
	Score      *score.Module
	Scoreboard *scoreboard.Module
	// Handicap is nil when posting is disabled.
	Handicap *handicap.Module
}

// App owns the connections and modules of a running service.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Redis         *redis.Client
	Modules       Modules

	routerCtx     context.Context
	routerCancel  context.CancelFunc
	httpServer    *http.Server
	metricsServer *http.Server
	wg            sync.WaitGroup
}

// NewDB opens a Bun database on Postgres.
func NewDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// NewEventBus connects to NATS, or runs in process when no URL is set.
func NewEventBus(ctx context.Context, cfg *config.Config, obs *observability.Observability) (eventbus.EventBus, error) {
	if cfg.NATS.URL == "" {
		obs.Logger.InfoContext(ctx, "No NATS URL configured, running the event bus in process")
		return eventbus.NewInProcessEventBus(obs.Logger), nil
	}
	return eventbus.NewNATSEventBus(ctx, eventbus.NATSOptions{
		URL:        cfg.NATS.URL,
		QueueGroup: queueGroup,
		Stream:     scoringevents.StreamName,
		Subjects:   scoringevents.Subjects(),
	}, obs.Logger)
}

// NewApp connects to Postgres, the event bus and Redis, then creates the
// modules. Posting workers run when runWorkers is true and posting is
// enabled.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability, runWorkers bool) (*App, error) {
	app := &App{Config: cfg, Observability: obs}
	if err := app.initialize(ctx, runWorkers); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	return app, nil
}

func (app *App) initialize(ctx context.Context, runWorkers bool) error {
	logger := app.Observability.Logger

	app.DB = NewDB(app.Config.Postgres.DSN)
	if err := app.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	eventBus, err := NewEventBus(ctx, app.Config, app.Observability)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = eventBus

	var cache scoreboardcache.Cache
	if app.Config.Redis.URL != "" {
		opts, err := redis.ParseURL(app.Config.Redis.URL)
		if err != nil {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		app.Redis = redis.NewClient(opts)
		if err := app.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		cache = scoreboardcache.NewRedisCache(app.Redis, app.Config.Redis.TTL)
		logger.InfoContext(ctx, "Scoreboard cache enabled", attr.Duration("ttl", app.Config.Redis.TTL))
	}

	app.routerCtx, app.routerCancel = context.WithCancel(context.Background())

	app.Modules.GameSpec, err = gamespec.NewGameSpecModule(ctx, app.Config, app.Observability, app.DB)
	if err != nil {
		return err
	}

	var postings scoreboardservice.PostingEnqueuer
	if app.Config.Posting.Enabled {
		app.Modules.Handicap, err = handicap.NewHandicapModule(ctx, app.Config, app.Observability, eventBus.Publisher(), runWorkers)
		if err != nil {
			return err
		}
		postings = app.Modules.Handicap.HandicapService
	}

	scoreRouter, err := app.newRouter()
	if err != nil {
		return err
	}
	rounds := scoreboard.NewRoundDirectory(scoreboarddb.NewRepository(app.DB), app.DB)
	app.Modules.Score, err = score.NewScoreModule(ctx, app.Observability, app.DB, eventBus, scoreRouter, rounds, app.routerCtx)
	if err != nil {
		return err
	}

	scoreboardRouter, err := app.newRouter()
	if err != nil {
		return err
	}
	app.Modules.Scoreboard, err = scoreboard.NewScoreboardModule(ctx, app.Observability, app.DB, eventBus, scoreboardRouter, scoreboard.Deps{
		Specs:    app.Modules.GameSpec.GameSpecService,
		Scores:   app.Modules.Score.ScoreService,
		Cache:    cache,
		Postings: postings,
	}, app.routerCtx)
	if err != nil {
		return err
	}

	return nil
}

func (app *App) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(app.Observability.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill router: %w", err)
	}
	return router, nil
}

// Handler returns the HTTP API.
func (app *App) Handler() http.Handler {
	routes := app.Modules.Scoreboard.HTTPHandler(
		app.Modules.Score.ScoreService,
		app.Modules.GameSpec.GameSpecService,
		app.Config.HTTP.AllowedOrigins,
	)
	return otelhttp.NewHandler(routes, "scoring-api")
}

// Run starts the routers, the posting workers and the HTTP servers, then
// blocks until ctx is canceled or a server fails.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	app.wg.Add(2)
	go app.Modules.Score.Run(app.routerCtx, &app.wg)
	go app.Modules.Scoreboard.Run(app.routerCtx, &app.wg)

	if app.Modules.Handicap != nil {
		if err := app.Modules.Handicap.Run(ctx); err != nil {
			return fmt.Errorf("failed to start posting workers: %w", err)
		}
	}

	serverErrors := make(chan error, 2)

	app.httpServer = &http.Server{
		Addr:         app.Config.HTTP.Address,
		Handler:      app.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.InfoContext(ctx, "HTTP API listening", attr.String("address", app.Config.HTTP.Address))
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("http server: %w", err)
		}
	}()

	if addr := app.Config.Observability.MetricsAddress; addr != "" && app.Observability.Registry != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(app.Observability.Registry, promhttp.HandlerOpts{}))
		app.metricsServer = &http.Server{Addr: addr, Handler: mux, ReadTimeout: 15 * time.Second}
		go func() {
			logger.InfoContext(ctx, "Metrics listening", attr.String("address", addr))
			if err := app.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErrors <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
		return nil
	case err := <-serverErrors:
		return err
	}
}

// Close shuts the servers down, stops the modules and closes every
// connection. It is safe on a partially initialized App.
func (app *App) Close(ctx context.Context) error {
	logger := app.Observability.Logger
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()

	var errs []error
	for _, srv := range []*http.Server{app.httpServer, app.metricsServer} {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}

	if app.Modules.Score != nil {
		if err := app.Modules.Score.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.Modules.Scoreboard != nil {
		if err := app.Modules.Scoreboard.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.routerCancel != nil {
		app.routerCancel()
	}
	app.wg.Wait()

	if app.Modules.Handicap != nil {
		if err := app.Modules.Handicap.Close(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("Shutdown finished with errors", attr.Error(err))
		return err
	}
	logger.Info("Application shut down gracefully")
	return nil
}
