package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	porthu "github.com/zmolnar/porthu-addon"
)

// Ensure InstrumentedCatalogService implements porthu.CatalogService.
var _ porthu.CatalogService = (*InstrumentedCatalogService)(nil)

// InstrumentedCatalogService wraps a CatalogService with Prometheus metrics
// partitioned by operation and content type.
type InstrumentedCatalogService struct {
	next porthu.CatalogService

	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	metas    prometheus.Histogram
}

// NewInstrumentedCatalogService creates an InstrumentedCatalogService
// registering its metrics on reg.
func NewInstrumentedCatalogService(next porthu.CatalogService, reg prometheus.Registerer) *InstrumentedCatalogService {
	factory := promauto.With(reg)
	return &InstrumentedCatalogService{
		next: next,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "porthu_catalog_requests_total",
			Help: "Total catalog service requests.",
		}, []string{"operation", "type"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "porthu_catalog_errors_total",
			Help: "Total catalog service requests that failed.",
		}, []string{"operation", "type"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "porthu_catalog_duration_seconds",
			Help:    "Catalog service request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "type"}),
		metas: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "porthu_catalog_page_size",
			Help:    "Number of records returned per catalog page.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
	}
}

func (s *InstrumentedCatalogService) observe(op string, typ porthu.Type, begin time.Time, err error) {
	labels := prometheus.Labels{"operation": op, "type": string(typ)}
	s.requests.With(labels).Inc()
	s.duration.With(labels).Observe(time.Since(begin).Seconds())
	if err != nil {
		s.errors.With(labels).Inc()
	}
}

// FetchCatalog delegates to the wrapped service and records metrics.
func (s *InstrumentedCatalogService) FetchCatalog(ctx context.Context, req porthu.CatalogRequest) (*porthu.CatalogResult, error) {
	begin := time.Now()
	result, err := s.next.FetchCatalog(ctx, req)
	s.observe("catalog", req.Type, begin, err)
	if err == nil && result != nil {
		s.metas.Observe(float64(len(result.Metas)))
	}
	return result, err
}

// FetchMeta delegates to the wrapped service and records metrics. A miss
// (ENOTFOUND) is counted as a request, not an error.
func (s *InstrumentedCatalogService) FetchMeta(ctx context.Context, typ porthu.Type, id string) (*porthu.Meta, error) {
	begin := time.Now()
	meta, err := s.next.FetchMeta(ctx, typ, id)
	if porthu.ErrorCode(err) == porthu.ENOTFOUND {
		s.observe("meta", typ, begin, nil)
	} else {
		s.observe("meta", typ, begin, err)
	}
	return meta, err
}

// FetchStreams delegates to the wrapped service and records metrics.
func (s *InstrumentedCatalogService) FetchStreams(ctx context.Context, typ porthu.Type, id string) ([]porthu.Stream, error) {
	begin := time.Now()
	streams, err := s.next.FetchStreams(ctx, typ, id)
	s.observe("stream", typ, begin, err)
	return streams, err
}
