package catalog

import (
	"context"
	"time"
)

// FetchFunc is the signature of a page fetch.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for seed-page fetches:
// 1s, 2s, 4s. Detail-page fetches are not retried; their failures are
// cached instead.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry attempts a fetch with one attempt per delay plus the
// initial one, waiting the corresponding delay between attempts. Context
// cancellation interrupts the backoff; the last fetch error is returned
// when all attempts fail.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(delays) {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}
