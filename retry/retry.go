// Package retry decides whether and when a failed request is re-attempted.
//
// A Policy is consulted by the transport after every failed attempt. Both
// methods are pure functions of the error classification and the attempt
// count; the policy holds no per-call state. When ShouldRetry returns
// false, the transport surfaces the last error to the caller unchanged.
package retry

import (
	"time"

	"github.com/hupe1980/mochow/model"
)

// Policy decides, given an error and the number of attempts already made,
// whether to retry and how long to wait before the next attempt.
type Policy interface {
	// ShouldRetry reports whether another attempt should be made.
	ShouldRetry(err error, attempt int) bool
	// DelayBeforeNextRetry returns the sleep before the next attempt.
	DelayBeforeNextRetry(err error, attempt int) time.Duration
}

// Defaults of BackOffPolicy.
const (
	DefaultMaxErrorRetry = 3
	DefaultMaxDelay      = 20 * time.Second
	DefaultBaseInterval  = 300 * time.Millisecond
)

// BackOffPolicy retries transient failures with exponential backoff and an
// attempt-count cutoff. No jitter, no circuit breaker, no wall-clock
// deadline beyond what the cutoff encodes.
type BackOffPolicy struct {
	// MaxErrorRetry is the number of retries after the initial attempt.
	MaxErrorRetry int
	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
	// BaseInterval is the delay of the first retry; it doubles per attempt.
	BaseInterval time.Duration
}

// NewBackOffPolicy creates a BackOffPolicy with the default settings.
func NewBackOffPolicy() *BackOffPolicy {
	return &BackOffPolicy{
		MaxErrorRetry: DefaultMaxErrorRetry,
		MaxDelay:      DefaultMaxDelay,
		BaseInterval:  DefaultBaseInterval,
	}
}

// ShouldRetry reports whether the error is transient and the attempt budget
// is not yet exhausted. Client errors are never retried; server errors are
// retried only on 5xx status codes; transport-level failures are retried.
func (p *BackOffPolicy) ShouldRetry(err error, attempt int) bool {
	if attempt >= p.MaxErrorRetry {
		return false
	}
	if _, ok := model.AsClientError(err); ok {
		return false
	}
	if se, ok := model.AsServerError(err); ok {
		return se.StatusCode >= 500
	}
	return true
}

// DelayBeforeNextRetry returns BaseInterval doubled per prior attempt,
// capped at MaxDelay.
func (p *BackOffPolicy) DelayBeforeNextRetry(_ error, attempt int) time.Duration {
	delay := p.BaseInterval << uint(attempt)
	if delay > p.MaxDelay || delay <= 0 {
		return p.MaxDelay
	}
	return delay
}

// NoRetryPolicy never retries.
type NoRetryPolicy struct{}

// ShouldRetry always reports false.
func (NoRetryPolicy) ShouldRetry(error, int) bool { return false }

// DelayBeforeNextRetry always returns zero.
func (NoRetryPolicy) DelayBeforeNextRetry(error, int) time.Duration { return 0 }
