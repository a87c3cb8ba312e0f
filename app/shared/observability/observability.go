// Package observability builds the logger, tracer and metrics shared by
// every module.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	scoringmetrics "github.com/Black-And-White-Club/golf-scoring/app/shared/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config selects the observability backends.
type Config struct {
	ServiceName     string
	Environment     string
	LogLevel        string
	LogFormat       string
	TempoEndpoint   string
	TempoInsecure   bool
	TempoSampleRate float64
}

// Observability bundles what services, handlers and workers report to.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  scoringmetrics.ScoringMetrics
	Registry *prometheus.Registry

	shutdown []func(context.Context) error
}

// Init creates the logger, a Prometheus registry with the scoring
// collectors and, when a Tempo endpoint is set, an OTLP tracer.
func Init(ctx context.Context, cfg Config) (*Observability, error) {
	logger := NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	obs := &Observability{
		Logger:   logger,
		Tracer:   noop.NewTracerProvider().Tracer(cfg.ServiceName),
		Metrics:  scoringmetrics.NewPrometheusMetrics(registry, "scoring"),
		Registry: registry,
	}

	if cfg.TempoEndpoint == "" {
		logger.InfoContext(ctx, "Tracing disabled, no tempo endpoint configured")
		return obs, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.TempoEndpoint)}
	if cfg.TempoInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TempoSampleRate))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("deployment.environment", cfg.Environment),
		)),
	)
	otel.SetTracerProvider(tp)
	obs.Tracer = tp.Tracer(cfg.ServiceName)
	obs.shutdown = append(obs.shutdown, tp.Shutdown)

	logger.InfoContext(ctx, "Tracing enabled",
		slog.String("endpoint", cfg.TempoEndpoint),
		slog.Float64("sample_rate", cfg.TempoSampleRate),
	)
	return obs, nil
}

// NewNoop returns an Observability that discards logs, spans and metrics.
func NewNoop() *Observability {
	return &Observability{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:  noop.NewTracerProvider().Tracer("noop"),
		Metrics: scoringmetrics.NoOpMetrics{},
	}
}

// Shutdown flushes pending spans.
func (o *Observability) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range o.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewLogger creates a slog logger writing to w. format is "json" or "text".
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
