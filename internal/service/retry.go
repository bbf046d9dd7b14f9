package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/cloo-solutions/tutorai/internal/domain"
)

var retryInitialInterval = 250 * time.Millisecond

// withRetry re-runs op while it fails with ModelUnavailable, up to retries
// extra attempts with exponential backoff. Other errors return immediately.
func withRetry(ctx context.Context, retries int, op func() error) error {
	if retries <= 0 {
		return op()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err != nil && !domain.IsCode(err, domain.ErrCodeModelUnavailable) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}
