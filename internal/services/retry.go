package services

import (
	"context"
	"time"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 500 * time.Millisecond
)

// withRetry runs fn up to retryAttempts times with exponential backoff,
// returning the last error. Used around transient collaborator calls in
// generation and the close scan; all other failures surface directly.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	delay := retryBaseDelay
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == retryAttempts {
			break
		}
		select {
		case <-time.After(delay):
			delay *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
