package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	porthu "github.com/zmolnar/porthu-addon"
	"github.com/zmolnar/porthu-addon/mock"
	porthuslog "github.com/zmolnar/porthu-addon/slog"
)

func TestLoggingCatalogService(t *testing.T) {
	t.Parallel()

	t.Run("logs catalog fetch with counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			FetchCatalogFn: func(ctx context.Context, req porthu.CatalogRequest) (*porthu.CatalogResult, error) {
				return &porthu.CatalogResult{
					Metas:    []*porthu.Meta{{ID: "porthu:movie:movie-42", Type: porthu.TypeMovie, Name: "Vertigo"}},
					Warnings: []string{"https://port.hu/mozi: HTTP 503"},
				}, nil
			},
		}

		svc := porthuslog.NewLoggingCatalogService(inner, logger)
		result, err := svc.FetchCatalog(context.Background(), porthu.CatalogRequest{Type: porthu.TypeMovie, Limit: 50})

		require.NoError(t, err)
		require.Len(t, result.Metas, 1)
		output := buf.String()
		assert.Contains(t, output, "catalog fetch")
		assert.Contains(t, output, "type=movie")
		assert.Contains(t, output, "metas=1")
		assert.Contains(t, output, "warnings=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs meta lookup miss", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			FetchMetaFn: func(ctx context.Context, typ porthu.Type, id string) (*porthu.Meta, error) {
				return nil, porthu.Errorf(porthu.ENOTFOUND, "no record for %q", id)
			},
		}

		svc := porthuslog.NewLoggingCatalogService(inner, logger)
		_, err := svc.FetchMeta(context.Background(), porthu.TypeMovie, "porthu:movie:movie-9")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "meta lookup")
		assert.Contains(t, output, "found=false")
		assert.Contains(t, output, "id=porthu:movie:movie-9")
	})

	t.Run("logs stream count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogService{
			FetchStreamsFn: func(ctx context.Context, typ porthu.Type, id string) ([]porthu.Stream, error) {
				return []porthu.Stream{{Name: "Port.hu", Title: "Open on Port.hu", ExternalURL: "https://port.hu/adatlap/film/movie-42"}}, nil
			},
		}

		svc := porthuslog.NewLoggingCatalogService(inner, logger)
		streams, err := svc.FetchStreams(context.Background(), porthu.TypeMovie, "porthu:movie:movie-42")

		require.NoError(t, err)
		require.Len(t, streams, 1)
		output := buf.String()
		assert.Contains(t, output, "stream lookup")
		assert.Contains(t, output, "streams=1")
	})
}

func TestLoggingSeedDiscoverer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.SeedDiscoverer{
		DiscoverSeedsFn: func(ctx context.Context, baseURL string, filter *porthu.URLFilter) ([]string, error) {
			return []string{"https://port.hu/film", "https://port.hu/sorozat"}, nil
		},
	}

	d := porthuslog.NewLoggingSeedDiscoverer(inner, logger)
	urls, err := d.DiscoverSeeds(context.Background(), "https://port.hu", nil)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	output := buf.String()
	assert.Contains(t, output, "seed discovery")
	assert.Contains(t, output, "count=2")
}
