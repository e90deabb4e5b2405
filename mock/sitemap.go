package mock

import (
	"context"

	"github.com/fwojciec/offerscan"
)

var (
	_ offerscan.SitemapService = (*SitemapService)(nil)
	_ offerscan.DomainLimiter  = (*DomainLimiter)(nil)
)

// SitemapService is a mock implementation of offerscan.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *offerscan.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *offerscan.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

// DomainLimiter is a mock implementation of offerscan.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
