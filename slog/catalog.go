package slog

import (
	"context"
	"log/slog"
	"time"

	porthu "github.com/zmolnar/porthu-addon"
)

// Ensure LoggingCatalogService implements porthu.CatalogService.
var _ porthu.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with per-operation logging.
type LoggingCatalogService struct {
	next   porthu.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next porthu.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// FetchCatalog delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) FetchCatalog(ctx context.Context, req porthu.CatalogRequest) (result *porthu.CatalogResult, err error) {
	defer func(begin time.Time) {
		var metas, warnings int
		if result != nil {
			metas = len(result.Metas)
			warnings = len(result.Warnings)
		}
		s.logger.Info("catalog fetch",
			"type", req.Type,
			"genre", req.Genre,
			"skip", req.Skip,
			"limit", req.Limit,
			"metas", metas,
			"warnings", warnings,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchCatalog(ctx, req)
}

// FetchMeta delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) FetchMeta(ctx context.Context, typ porthu.Type, id string) (meta *porthu.Meta, err error) {
	defer func(begin time.Time) {
		s.logger.Info("meta lookup",
			"type", typ,
			"id", id,
			"found", meta != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchMeta(ctx, typ, id)
}

// FetchStreams delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) FetchStreams(ctx context.Context, typ porthu.Type, id string) (streams []porthu.Stream, err error) {
	defer func(begin time.Time) {
		s.logger.Info("stream lookup",
			"type", typ,
			"id", id,
			"streams", len(streams),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchStreams(ctx, typ, id)
}
