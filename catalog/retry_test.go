package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zmolnar/porthu-addon/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately on success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := catalog.FetchWithRetry(context.Background(), "https://port.hu/film", fetch, catalog.DefaultRetryDelays())

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries once per delay and succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("HTTP 503")
			}
			return "ok", nil
		}
		delays := []time.Duration{time.Millisecond, time.Millisecond}

		html, err := catalog.FetchWithRetry(context.Background(), "https://port.hu/film", fetch, delays)

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns the last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", errors.New("HTTP 503")
		}

		_, err := catalog.FetchWithRetry(context.Background(), "https://port.hu/film", fetch, []time.Duration{time.Millisecond})

		require.Error(t, err)
		assert.Equal(t, 2, calls, "one initial attempt plus one retry")
	})

	t.Run("empty delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", errors.New("HTTP 503")
		}

		_, err := catalog.FetchWithRetry(context.Background(), "https://port.hu/film", fetch, []time.Duration{})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("context cancellation interrupts the backoff", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", errors.New("HTTP 503")
		}

		_, err := catalog.FetchWithRetry(ctx, "https://port.hu/film", fetch, []time.Duration{time.Hour})

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request per domain passes immediately", func(t *testing.T) {
		t.Parallel()

		limiter := catalog.NewDomainLimiter(1)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "port.hu"))
		require.NoError(t, limiter.Wait(context.Background(), "media.port.hu"))
		assert.Less(t, time.Since(start), 500*time.Millisecond, "distinct domains do not share a budget")
	})

	t.Run("second request to the same domain waits", func(t *testing.T) {
		t.Parallel()

		limiter := catalog.NewDomainLimiter(20)

		require.NoError(t, limiter.Wait(context.Background(), "port.hu"))
		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "port.hu"))
		assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
	})

	t.Run("canceled context stops the wait", func(t *testing.T) {
		t.Parallel()

		limiter := catalog.NewDomainLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "port.hu"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "port.hu"))
	})
}
