// concurrency/handler.go
package concurrency

import (
	"context"
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-offers-client/logger"
	"github.com/google/uuid"
)

// ConcurrencyHandler controls the number of concurrent HTTP requests.
type ConcurrencyHandler struct {
	sem            chan struct{}
	logger         logger.Logger
	acquireTimeout time.Duration
	Metrics        *ConcurrencyMetrics
}

// ConcurrencyMetrics captures request counters for the client's interactions with the API.
type ConcurrencyMetrics struct {
	TotalRequests       int64         // Total number of permits handed out
	TotalRetries        int64         // Total number of retry attempts
	TotalErrors         int64         // Responses with a status of 400 or above
	PermitWaitTime      time.Duration // Total time spent waiting for permits
	TotalResponseTime   time.Duration // Sum of all recorded response times
	ResponseCount       int64         // Number of recorded responses
	AverageResponseTime time.Duration // TotalResponseTime / ResponseCount
	ErrorRate           float64       // TotalErrors / ResponseCount
	Lock                sync.Mutex    // Lock for all metrics fields
}

// NewConcurrencyHandler initializes a new ConcurrencyHandler allowing at most limit concurrent requests.
// A limit below one falls back to DefaultMaxConcurrency and a limit above MaxConcurrency is capped.
// A nil metrics pointer gets a fresh ConcurrencyMetrics.
func NewConcurrencyHandler(limit int, log logger.Logger, metrics *ConcurrencyMetrics) *ConcurrencyHandler {
	if limit < 1 {
		limit = DefaultMaxConcurrency
	}
	if limit > MaxConcurrency {
		limit = MaxConcurrency
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	if metrics == nil {
		metrics = &ConcurrencyMetrics{}
	}

	return &ConcurrencyHandler{
		sem:            make(chan struct{}, limit),
		logger:         log,
		acquireTimeout: AcquireTimeout,
		Metrics:        metrics,
	}
}

// Limit returns the maximum number of concurrent requests.
func (ch *ConcurrencyHandler) Limit() int {
	return cap(ch.sem)
}

// RequestIDKey is the context key under which the request ID of an acquired permit is stored.
type RequestIDKey struct{}

// RequestIDFromContext returns the request ID stored by AcquireConcurrencyPermit, if any.
func RequestIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	requestID, ok := ctx.Value(RequestIDKey{}).(uuid.UUID)
	return requestID, ok
}
