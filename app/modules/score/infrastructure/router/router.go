package scorerouter

import (
	"context"
	"log/slog"
	"os"

	scoreservice "github.com/Black-And-White-Club/golf-scoring/app/modules/score/application"
	scorehandlers "github.com/Black-And-White-Club/golf-scoring/app/modules/score/infrastructure/handlers"
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

// ScoreRouter subscribes the score write handlers to the command topics.
type ScoreRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	tracer         trace.Tracer
	metrics        handlerwrapper.ReturningMetrics
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewScoreRouter creates a new ScoreRouter.
func NewScoreRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	handlerMetrics handlerwrapper.ReturningMetrics,
	prometheusRegistry *prometheus.Registry,
) *ScoreRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "scoring", "score")
		metricsBuilder = &builder
	}
	return &ScoreRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      handlerwrapper.NewTopicPublisher(publisher),
		tracer:         tracer,
		metrics:        handlerMetrics,
		metricsBuilder: metricsBuilder,
	}
}

// Configure sets up the router using the provided context and score service.
func (r *ScoreRouter) Configure(routerCtx context.Context, service scoreservice.Service) error {
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

	r.RegisterHandlers(routerCtx, scorehandlers.NewScoreHandlers(service, r.logger))
	return nil
}

// RegisterHandlers registers the score handlers by topic.
func (r *ScoreRouter) RegisterHandlers(ctx context.Context, handlers scorehandlers.Handlers) {
	register(r, scoringevents.ScoreRecordRequestedV1, handlers.HandleScoreRecordRequested)
	register(r, scoringevents.BulkScoreRecordRequestedV1, handlers.HandleBulkScoreRecordRequested)
}

func register[T any](r *ScoreRouter, topic string, handler func(context.Context, *T) ([]handlerwrapper.Result, error)) {
	handlerName := "score." + topic
	r.Router.AddHandler(
		handlerName,
		topic,
		r.subscriber,
		"",
		r.publisher,
		handlerwrapper.WrapTransformingTyped(handlerName, r.logger, r.tracer, r.metrics, handler),
	)
}

// Close stops the router.
func (r *ScoreRouter) Close() error {
	return r.Router.Close()
}
