package slog

import (
	"context"
	"log/slog"
	"time"

	porthu "github.com/zmolnar/porthu-addon"
)

// Ensure LoggingSeedDiscoverer implements porthu.SeedDiscoverer.
var _ porthu.SeedDiscoverer = (*LoggingSeedDiscoverer)(nil)

// LoggingSeedDiscoverer wraps a SeedDiscoverer with logging.
type LoggingSeedDiscoverer struct {
	next   porthu.SeedDiscoverer
	logger *slog.Logger
}

// NewLoggingSeedDiscoverer creates a new LoggingSeedDiscoverer.
func NewLoggingSeedDiscoverer(next porthu.SeedDiscoverer, logger *slog.Logger) *LoggingSeedDiscoverer {
	return &LoggingSeedDiscoverer{next: next, logger: logger}
}

// DiscoverSeeds delegates to the wrapped discoverer and logs the operation.
func (d *LoggingSeedDiscoverer) DiscoverSeeds(ctx context.Context, baseURL string, filter *porthu.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("seed discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DiscoverSeeds(ctx, baseURL, filter)
}
