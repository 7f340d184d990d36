// Package metrics provides Prometheus instrumentation decorators for the
// addon's services.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	porthu "github.com/zmolnar/porthu-addon"
)

// Ensure InstrumentedFetcher implements porthu.Fetcher.
var _ porthu.Fetcher = (*InstrumentedFetcher)(nil)

// InstrumentedFetcher wraps a Fetcher with Prometheus counters and a
// latency histogram.
type InstrumentedFetcher struct {
	next porthu.Fetcher

	fetches  prometheus.Counter
	errors   prometheus.Counter
	duration prometheus.Histogram
	bytes    prometheus.Counter
}

// NewInstrumentedFetcher creates an InstrumentedFetcher registering its
// metrics on reg.
func NewInstrumentedFetcher(next porthu.Fetcher, reg prometheus.Registerer) *InstrumentedFetcher {
	factory := promauto.With(reg)
	return &InstrumentedFetcher{
		next: next,
		fetches: factory.NewCounter(prometheus.CounterOpts{
			Name: "porthu_fetches_total",
			Help: "Total number of page fetches attempted.",
		}),
		errors: factory.NewCounter(prometheus.CounterOpts{
			Name: "porthu_fetch_errors_total",
			Help: "Total number of page fetches that failed.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "porthu_fetch_duration_seconds",
			Help:    "Page fetch latency.",
			Buckets: prometheus.DefBuckets,
		}),
		bytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "porthu_fetch_bytes_total",
			Help: "Total bytes of HTML fetched.",
		}),
	}
}

// Fetch delegates to the wrapped fetcher and records metrics.
func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.fetches.Inc()
	begin := time.Now()

	html, err := f.next.Fetch(ctx, url)

	f.duration.Observe(time.Since(begin).Seconds())
	if err != nil {
		f.errors.Inc()
		return "", err
	}
	f.bytes.Add(float64(len(html)))
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Close() error {
	return f.next.Close()
}
