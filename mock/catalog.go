package mock

import (
	"context"

	porthu "github.com/zmolnar/porthu-addon"
)

var _ porthu.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of porthu.CatalogService.
type CatalogService struct {
	FetchCatalogFn func(ctx context.Context, req porthu.CatalogRequest) (*porthu.CatalogResult, error)
	FetchMetaFn    func(ctx context.Context, typ porthu.Type, id string) (*porthu.Meta, error)
	FetchStreamsFn func(ctx context.Context, typ porthu.Type, id string) ([]porthu.Stream, error)
}

func (s *CatalogService) FetchCatalog(ctx context.Context, req porthu.CatalogRequest) (*porthu.CatalogResult, error) {
	return s.FetchCatalogFn(ctx, req)
}

func (s *CatalogService) FetchMeta(ctx context.Context, typ porthu.Type, id string) (*porthu.Meta, error) {
	return s.FetchMetaFn(ctx, typ, id)
}

func (s *CatalogService) FetchStreams(ctx context.Context, typ porthu.Type, id string) ([]porthu.Stream, error) {
	return s.FetchStreamsFn(ctx, typ, id)
}

var _ porthu.SeedDiscoverer = (*SeedDiscoverer)(nil)

// SeedDiscoverer is a mock implementation of porthu.SeedDiscoverer.
type SeedDiscoverer struct {
	DiscoverSeedsFn func(ctx context.Context, baseURL string, filter *porthu.URLFilter) ([]string, error)
}

func (d *SeedDiscoverer) DiscoverSeeds(ctx context.Context, baseURL string, filter *porthu.URLFilter) ([]string, error) {
	return d.DiscoverSeedsFn(ctx, baseURL, filter)
}
