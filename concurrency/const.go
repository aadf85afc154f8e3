// concurrency/const.go
package concurrency

import "time"

const (
	// DefaultMaxConcurrency is the number of in-flight requests allowed when no limit is configured.
	DefaultMaxConcurrency = 1

	// MaxConcurrency caps the configurable limit.
	MaxConcurrency = 10

	// AcquireTimeout bounds how long a request waits for a permit.
	AcquireTimeout = 10 * time.Second
)
