// Package workers runs the service's background jobs: persisting last-login
// timestamps off the request path and evicting expired rate limiter windows.
//
// Every job implements Worker; Workers runs a set of them until the root
// context is cancelled.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled and the
// worker has finished any shutdown work.
type Worker interface {
	Run(ctx context.Context)
}

// RetryClassifier decides whether a failed write is worth one more try.
type RetryClassifier interface {
	IsRetryable(err error) bool
}

// Sweeper evicts expired entries and reports how many were removed.
type Sweeper interface {
	Sweep() int
}
