package scoringmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScoringMetrics records service, handler and worker level measurements.
type ScoringMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)

	RecordScoreboardComputed(ctx context.Context, holes, entrants int)
	RecordJunkAwarded(ctx context.Context, junk string, counted bool)
	RecordPostingResult(ctx context.Context, success bool)

	RecordHandlerAttempt(ctx context.Context, handler string)
	RecordHandlerSuccess(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
	RecordHandlerDuration(ctx context.Context, handler string, duration time.Duration)
}

// PrometheusMetrics is the Prometheus backed ScoringMetrics.
type PrometheusMetrics struct {
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	scoreboards       prometheus.Counter
	scoreboardSize    *prometheus.HistogramVec
	junk              *prometheus.CounterVec
	postings          *prometheus.CounterVec
	handlers          *prometheus.CounterVec
	handlerDuration   *prometheus.HistogramVec
}

var _ ScoringMetrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the scoring collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Service operations by outcome.",
		}, []string{"service", "operation", "outcome"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		scoreboards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoreboards_computed_total",
			Help:      "Scoreboards computed.",
		}),
		scoreboardSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoreboard_size",
			Help:      "Holes and entrants per computed scoreboard.",
			Buckets:   []float64{1, 2, 4, 9, 18, 36},
		}, []string{"dimension"}),
		junk: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "junk_awarded_total",
			Help:      "Junk awards by name and whether they counted.",
		}, []string{"junk", "counted"}),
		postings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "postings_total",
			Help:      "Handicap postings by result.",
		}, []string{"success"}),
		handlers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_calls_total",
			Help:      "Message handler invocations by outcome.",
		}, []string{"handler", "outcome"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handler_duration_seconds",
			Help:      "Message handler latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.operations, m.operationDuration, m.scoreboards, m.scoreboardSize,
			m.junk, m.postings, m.handlers, m.handlerDuration,
		)
	}
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "attempt").Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "success").Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "failure").Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.operationDuration.WithLabelValues(service, operation).Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordScoreboardComputed(_ context.Context, holes, entrants int) {
	m.scoreboards.Inc()
	m.scoreboardSize.WithLabelValues("holes").Observe(float64(holes))
	m.scoreboardSize.WithLabelValues("entrants").Observe(float64(entrants))
}

func (m *PrometheusMetrics) RecordJunkAwarded(_ context.Context, junk string, counted bool) {
	c := "false"
	if counted {
		c = "true"
	}
	m.junk.WithLabelValues(junk, c).Inc()
}

func (m *PrometheusMetrics) RecordPostingResult(_ context.Context, success bool) {
	s := "false"
	if success {
		s = "true"
	}
	m.postings.WithLabelValues(s).Inc()
}

func (m *PrometheusMetrics) RecordHandlerAttempt(_ context.Context, handler string) {
	m.handlers.WithLabelValues(handler, "attempt").Inc()
}

func (m *PrometheusMetrics) RecordHandlerSuccess(_ context.Context, handler string) {
	m.handlers.WithLabelValues(handler, "success").Inc()
}

func (m *PrometheusMetrics) RecordHandlerFailure(_ context.Context, handler string) {
	m.handlers.WithLabelValues(handler, "failure").Inc()
}

func (m *PrometheusMetrics) RecordHandlerDuration(_ context.Context, handler string, d time.Duration) {
	m.handlerDuration.WithLabelValues(handler).Observe(d.Seconds())
}

// NoOpMetrics discards every measurement. Used in tests and when metrics are
// disabled.
type NoOpMetrics struct{}

var _ ScoringMetrics = (*NoOpMetrics)(nil)

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOpMetrics) RecordScoreboardComputed(context.Context, int, int)                     {}
func (NoOpMetrics) RecordJunkAwarded(context.Context, string, bool)                        {}
func (NoOpMetrics) RecordPostingResult(context.Context, bool)                              {}
func (NoOpMetrics) RecordHandlerAttempt(context.Context, string)                           {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)                           {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)                           {}
func (NoOpMetrics) RecordHandlerDuration(context.Context, string, time.Duration)           {}
