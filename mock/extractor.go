package mock

import (
	"context"

	porthu "github.com/zmolnar/porthu-addon"
)

var _ porthu.RowExtractor = (*RowExtractor)(nil)

// RowExtractor is a mock implementation of porthu.RowExtractor.
type RowExtractor struct {
	ExtractRowsFn func(html string, pageURL string) ([]porthu.Row, error)
}

func (e *RowExtractor) ExtractRows(html string, pageURL string) ([]porthu.Row, error) {
	return e.ExtractRowsFn(html, pageURL)
}

var _ porthu.HintSource = (*HintSource)(nil)

// HintSource is a mock implementation of porthu.HintSource.
type HintSource struct {
	HintFn func(ctx context.Context, url string) porthu.DetailHint
}

func (s *HintSource) Hint(ctx context.Context, url string) porthu.DetailHint {
	return s.HintFn(ctx, url)
}

var _ porthu.DescriptionExtractor = (*DescriptionExtractor)(nil)

// DescriptionExtractor is a mock implementation of porthu.DescriptionExtractor.
type DescriptionExtractor struct {
	DescriptionFn func(html string) string
}

func (e *DescriptionExtractor) Description(html string) string {
	return e.DescriptionFn(html)
}
