// concurrency/metrics.go
package concurrency

import (
	"time"

	"github.com/deploymenttheory/go-api-offers-client/status"
)

// MetricsSnapshot is a point-in-time copy of ConcurrencyMetrics without its lock.
type MetricsSnapshot struct {
	TotalRequests       int64
	TotalRetries        int64
	TotalErrors         int64
	PermitWaitTime      time.Duration
	AverageResponseTime time.Duration
	ErrorRate           float64
}

// RecordRetry counts one retry attempt.
func (ch *ConcurrencyHandler) RecordRetry() {
	ch.Metrics.Lock.Lock()
	defer ch.Metrics.Lock.Unlock()
	ch.Metrics.TotalRetries++
}

// RecordResponse folds a finished response into the running averages.
func (ch *ConcurrencyHandler) RecordResponse(statusCode int, responseTime time.Duration) {
	ch.Metrics.Lock.Lock()
	defer ch.Metrics.Lock.Unlock()

	if status.IsErrorStatusCode(statusCode) {
		ch.Metrics.TotalErrors++
	}

	ch.Metrics.ResponseCount++
	ch.Metrics.TotalResponseTime += responseTime
	ch.Metrics.AverageResponseTime = ch.Metrics.TotalResponseTime / time.Duration(ch.Metrics.ResponseCount)
	ch.Metrics.ErrorRate = float64(ch.Metrics.TotalErrors) / float64(ch.Metrics.ResponseCount)
}

// Snapshot returns a copy of the current metrics.
func (ch *ConcurrencyHandler) Snapshot() MetricsSnapshot {
	ch.Metrics.Lock.Lock()
	defer ch.Metrics.Lock.Unlock()

	return MetricsSnapshot{
		TotalRequests:       ch.Metrics.TotalRequests,
		TotalRetries:        ch.Metrics.TotalRetries,
		TotalErrors:         ch.Metrics.TotalErrors,
		PermitWaitTime:      ch.Metrics.PermitWaitTime,
		AverageResponseTime: ch.Metrics.AverageResponseTime,
		ErrorRate:           ch.Metrics.ErrorRate,
	}
}
