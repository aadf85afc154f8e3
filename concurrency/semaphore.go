// concurrency/semaphore.go
/* package provides utilities to manage concurrency control. The handler ensures no more than
a configured number of requests are in flight against the Offers service at the same time.
This is managed using a semaphore */
package concurrency

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AcquireConcurrencyPermit blocks until a permit is available, the parent context is done or
// AcquireTimeout elapses. On success the returned context carries a fresh request ID, which must
// be handed back to ReleaseConcurrencyPermit.
//
// Example:
//
//	ctx, requestID, err := concurrencyHandler.AcquireConcurrencyPermit(ctx)
//	if err != nil {
//	    return err
//	}
//	defer concurrencyHandler.ReleaseConcurrencyPermit(requestID)
func (ch *ConcurrencyHandler) AcquireConcurrencyPermit(ctx context.Context) (context.Context, uuid.UUID, error) {
	log := ch.logger

	permitAcquisitionStart := time.Now()
	requestID := uuid.New()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, ch.acquireTimeout)
	defer cancel()

	select {
	case ch.sem <- struct{}{}:
		permitAcquisitionDuration := time.Since(permitAcquisitionStart)

		ch.Metrics.Lock.Lock()
		ch.Metrics.PermitWaitTime += permitAcquisitionDuration
		ch.Metrics.TotalRequests++
		ch.Metrics.Lock.Unlock()

		utilizedPermits := len(ch.sem)
		log.Debug("Acquired concurrency permit",
			zap.String("RequestID", requestID.String()),
			zap.Duration("AcquisitionTime", permitAcquisitionDuration),
			zap.Int("UtilizedPermits", utilizedPermits),
			zap.Int("AvailablePermits", cap(ch.sem)-utilizedPermits),
		)

		return context.WithValue(ctx, RequestIDKey{}, requestID), requestID, nil

	case <-ctxWithTimeout.Done():
		err := ctxWithTimeout.Err()
		log.Warn("Failed to acquire concurrency permit", zap.String("RequestID", requestID.String()), zap.Error(err))
		return ctx, requestID, fmt.Errorf("failed to acquire concurrency permit: %w", err)
	}
}

// ReleaseConcurrencyPermit returns a permit to the pool.
func (ch *ConcurrencyHandler) ReleaseConcurrencyPermit(requestID uuid.UUID) {
	<-ch.sem

	utilizedPermits := len(ch.sem)
	ch.logger.Debug("Released concurrency permit",
		zap.String("RequestID", requestID.String()),
		zap.Int("UtilizedPermits", utilizedPermits),
		zap.Int("AvailablePermits", cap(ch.sem)-utilizedPermits),
	)
}
