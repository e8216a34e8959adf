package mochow

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hupe1980/mochow/retry"
)

type options struct {
	httpClient       *http.Client
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Client constructor behavior.
type Option func(*options)

// WithHTTPClient overrides the pooled HTTP client built from the
// Configuration. Buffer and proxy settings of the Configuration are
// ignored when a custom client is supplied.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &mochow.BasicMetricsCollector{}
//	client, _ := mochow.NewClient(config, mochow.WithMetricsCollector(metrics))
//	// ... use client ...
//	stats := metrics.GetStats()
//	fmt.Printf("Requests: %d, Avg latency: %dns\n", stats.RequestCount, stats.RequestAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mochow.NewJSONLogger(slog.LevelInfo)
//	client, _ := mochow.NewClient(config, mochow.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// CallOption overrides Configuration settings for a single call.
type CallOption func(*Configuration)

// WithCallTimeout bounds each attempt of this call instead of the
// configured ConnectionTimeout. A negative value disables the bound.
func WithCallTimeout(timeout time.Duration) CallOption {
	return func(c *Configuration) {
		c.ConnectionTimeout = timeout
	}
}

// WithCallRetryPolicy replaces the retry policy for this call, e.g.
// retry.NoRetryPolicy{} for a non-idempotent fire-once request.
func WithCallRetryPolicy(policy retry.Policy) CallOption {
	return func(c *Configuration) {
		c.Retry = policy
	}
}
