// Package mock provides mock implementations of the domain interfaces for
// use in tests.
package mock

import (
	"context"

	porthu "github.com/zmolnar/porthu-addon"
)

var _ porthu.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of porthu.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ porthu.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of porthu.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
