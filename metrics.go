package mochow

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    requestCounter  *prometheus.CounterVec
//	    latencyHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordRequest(operation string, duration time.Duration, err error) {
//	    p.requestCounter.WithLabelValues(operation).Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordRequest is called after each service call, including all
	// retry attempts. operation is the discriminator of the call
	// (e.g. "upsert", "search"), duration is the total time taken and
	// err is nil if successful.
	RecordRequest(operation string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRequest(string, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RequestCount      atomic.Int64
	RequestErrors     atomic.Int64
	RequestTotalNanos atomic.Int64
}

// RecordRequest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRequest(operation string, duration time.Duration, err error) {
	b.RequestCount.Add(1)
	b.RequestTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RequestErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	count := b.RequestCount.Load()
	stats := BasicMetricsStats{
		RequestCount:  count,
		RequestErrors: b.RequestErrors.Load(),
	}
	if count > 0 {
		stats.RequestAvgNanos = b.RequestTotalNanos.Load() / count
	}
	return stats
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RequestCount    int64
	RequestErrors   int64
	RequestAvgNanos int64
}
