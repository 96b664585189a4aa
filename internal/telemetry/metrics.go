package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/devmarket"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// API gateway metrics
	APIRequestsTotal      metric.Int64Counter
	APIRequestErrorsTotal metric.Int64Counter
	APIRequestDuration    metric.Float64Histogram
	APIRetriesTotal       metric.Int64Counter

	// Session and auth metrics
	SessionRestoresTotal metric.Int64Counter
	AuthAttemptsTotal    metric.Int64Counter
	GuardDecisionsTotal  metric.Int64Counter

	// Polling metrics
	PollTicksTotal  metric.Int64Counter
	PollErrorsTotal metric.Int64Counter
	ActivePollers   metric.Int64UpDownCounter
}

var (
	mu      sync.Mutex
	metrics *Metrics
)

// GetMetrics returns the shared Metrics instance, initializing it if necessary.
// Until Init runs the instruments are backed by the global no-op provider.
func GetMetrics() *Metrics {
	mu.Lock()
	defer mu.Unlock()

	if metrics == nil {
		metrics = initMetrics()
	}
	return metrics
}

func resetMetrics() {
	mu.Lock()
	defer mu.Unlock()
	metrics = nil
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.APIRequestsTotal, _ = meter.Int64Counter(
		"devmarket.api.requests.total",
		metric.WithDescription("Total number of API requests sent"),
		metric.WithUnit("{request}"),
	)

	m.APIRequestErrorsTotal, _ = meter.Int64Counter(
		"devmarket.api.requests.errors.total",
		metric.WithDescription("Total number of API requests that failed or returned a non-2xx status"),
		metric.WithUnit("{error}"),
	)

	m.APIRequestDuration, _ = meter.Float64Histogram(
		"devmarket.api.requests.duration",
		metric.WithDescription("Duration of API requests including retries"),
		metric.WithUnit("ms"),
	)

	m.APIRetriesTotal, _ = meter.Int64Counter(
		"devmarket.api.retries.total",
		metric.WithDescription("Total number of API request retries"),
		metric.WithUnit("{retry}"),
	)

	m.SessionRestoresTotal, _ = meter.Int64Counter(
		"devmarket.session.restores.total",
		metric.WithDescription("Session restore attempts by outcome"),
		metric.WithUnit("{restore}"),
	)

	m.AuthAttemptsTotal, _ = meter.Int64Counter(
		"devmarket.auth.attempts.total",
		metric.WithDescription("Signup, login and logout attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)

	m.GuardDecisionsTotal, _ = meter.Int64Counter(
		"devmarket.guard.decisions.total",
		metric.WithDescription("Route guard decisions by outcome"),
		metric.WithUnit("{decision}"),
	)

	m.PollTicksTotal, _ = meter.Int64Counter(
		"devmarket.poll.ticks.total",
		metric.WithDescription("Total number of polling fetches"),
		metric.WithUnit("{tick}"),
	)

	m.PollErrorsTotal, _ = meter.Int64Counter(
		"devmarket.poll.errors.total",
		metric.WithDescription("Total number of failed polling fetches"),
		metric.WithUnit("{error}"),
	)

	m.ActivePollers, _ = meter.Int64UpDownCounter(
		"devmarket.poll.active",
		metric.WithDescription("Number of running pollers"),
		metric.WithUnit("{poller}"),
	)

	return m
}
