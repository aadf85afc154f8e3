// concurrency/metrics_test.go
package concurrency

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordResponse(t *testing.T) {
	ch := NewConcurrencyHandler(2, nil, nil)

	ch.RecordResponse(http.StatusOK, 100*time.Millisecond)
	ch.RecordResponse(http.StatusUnauthorized, 300*time.Millisecond)
	ch.RecordRetry()

	snapshot := ch.Snapshot()
	assert.EqualValues(t, 1, snapshot.TotalRetries)
	assert.EqualValues(t, 1, snapshot.TotalErrors)
	assert.Equal(t, 200*time.Millisecond, snapshot.AverageResponseTime)
	assert.InDelta(t, 0.5, snapshot.ErrorRate, 1e-9)
}

func TestSnapshot_SharedMetrics(t *testing.T) {
	metrics := &ConcurrencyMetrics{}
	ch := NewConcurrencyHandler(1, nil, metrics)

	ch.RecordRetry()

	assert.EqualValues(t, 1, metrics.TotalRetries)
}
