package scoreboardrouter

import (
	"context"
	"log/slog"
	"os"

	scoreboardservice "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/application"
	scoreboardhandlers "github.com/Black-And-White-Club/golf-scoring/app/modules/scoreboard/infrastructure/handlers"
	scoringevents "github.com/Black-And-White-Club/golf-scoring/app/shared/events/scoring"
	"github.com/Black-And-White-Club/golf-scoring/app/shared/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// ScoreboardRouter subscribes the scoreboard handlers to the scoring stream.
type ScoreboardRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	tracer         trace.Tracer
	metrics        handlerwrapper.ReturningMetrics
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewScoreboardRouter creates a new ScoreboardRouter. Outgoing messages are
// routed by their topic metadata. Prometheus router metrics are skipped when
// prometheusRegistry is nil or APP_ENV is "test".
func NewScoreboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	handlerMetrics handlerwrapper.ReturningMetrics,
	prometheusRegistry *prometheus.Registry,
) *ScoreboardRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "scoring", "")
		metricsBuilder = &builder
	}
	return &ScoreboardRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      handlerwrapper.NewTopicPublisher(publisher),
		tracer:         tracer,
		metrics:        handlerMetrics,
		metricsBuilder: metricsBuilder,
	}
}

// Configure adds middleware and registers the scoreboard handlers.
func (r *ScoreboardRouter) Configure(routerCtx context.Context, service scoreboardservice.Service) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	} else {
		r.logger.Info("Skipping Prometheus router metrics middleware - either in test environment or metrics not configured")
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	r.RegisterHandlers(routerCtx, scoreboardhandlers.NewScoreboardHandlers(service, r.logger))
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    handlerwrapper.ReturningMetrics
}

// registerHandler registers a transformation handler with a typed payload.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "scoreboard." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"", // the topic publisher reads the topic from message metadata
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.metrics,
			handler,
		),
	)
}

// RegisterHandlers registers the scoreboard handlers by topic.
func (r *ScoreboardRouter) RegisterHandlers(ctx context.Context, handlers scoreboardhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, scoringevents.ScoreRecordedV1, handlers.HandleScoreRecorded)
	registerHandler(deps, scoringevents.RecomputeRequestedV1, handlers.HandleRecomputeRequested)
	registerHandler(deps, scoringevents.RoundPostingCompletedV1, handlers.HandlePostingCompleted)
}

// Close stops the router.
func (r *ScoreboardRouter) Close() error {
	return r.Router.Close()
}
