package diagnostics

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// OpenWithRetry opens the store the same way Open does, retrying with
// exponential backoff if the DuckDB file is transiently locked by another
// process (a prior vehicled instance shutting down, a concurrent report
// export). It gives up after maxElapsed.
func OpenWithRetry(ctx context.Context, dsn string, maxElapsed time.Duration) (*Store, error) {
	b := backoff.NewExponentialBackOff()

	store, err := backoff.Retry(ctx, func() (*Store, error) {
		return Open(dsn)
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(maxElapsed))
	if err != nil {
		return nil, fmt.Errorf("diagnostics: opening %s after retries: %w", dsn, err)
	}
	return store, nil
}
