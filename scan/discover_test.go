package scan_test

import (
	"context"
	"testing"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/mock"
	"github.com/fwojciec/offerscan/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_DiscoverPages_RanksByKeyword(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Navigation: []offerscan.Link{
			{URL: "/about", Text: "About Us", Source: "nav"},
			{URL: "/pricing", Text: "Pricing", Source: "nav"},
			{URL: "/services", Text: "Our Services", Source: "nav"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 10)

	require.Len(t, links, 3)
	assert.Equal(t, "https://example.com/pricing", links[0].URL)
	assert.Equal(t, 100, links[0].Priority)
	assert.Equal(t, "https://example.com/services", links[1].URL)
	assert.Equal(t, 90, links[1].Priority)
	assert.Equal(t, "https://example.com/about", links[2].URL)
	assert.Equal(t, 50, links[2].Priority)
}

func TestScanner_DiscoverPages_MatchesAnchorText(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Links: []offerscan.Link{
			// Path carries no keyword; the anchor text does.
			{URL: "/p/42", Text: "View our products"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 10)

	require.Len(t, links, 1)
	assert.Equal(t, 90, links[0].Priority)
	assert.Equal(t, "content", links[0].Source)
}

func TestScanner_DiscoverPages_ExcludesZeroScore(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Links: []offerscan.Link{
			{URL: "/blog/post-1", Text: "A blog post"},
			{URL: "/careers", Text: "Careers"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 10)

	assert.Empty(t, links)
}

func TestScanner_DiscoverPages_SameSiteOnly(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Links: []offerscan.Link{
			{URL: "https://other.example.net/pricing", Text: "Pricing"},
			{URL: "https://example.com/pricing", Text: "Pricing"},
			{URL: "mailto:sales@example.com", Text: "Our services team"},
			{URL: "javascript:void(0)", Text: "Pricing"},
			{URL: "tel:+15551234567", Text: "Pricing"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 10)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/pricing", links[0].URL)
}

func TestScanner_DiscoverPages_ExcludesBasePage(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/services",
		Links: []offerscan.Link{
			{URL: "/services", Text: "Services"},
			{URL: "/services#top", Text: "Services"},
			{URL: "/services/consulting", Text: "Consulting Services"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 10)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/services/consulting", links[0].URL)
}

func TestScanner_DiscoverPages_DeduplicatesByFragment(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Links: []offerscan.Link{
			{URL: "/pricing#monthly", Text: "Monthly pricing"},
			{URL: "/pricing#annual", Text: "Annual pricing"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 10)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/pricing", links[0].URL)
}

func TestScanner_DiscoverPages_TiesKeepOriginalOrder(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Navigation: []offerscan.Link{
			{URL: "/services/web", Text: "Web", Source: "nav"},
			{URL: "/services/mobile", Text: "Mobile", Source: "nav"},
			{URL: "/services/cloud", Text: "Cloud", Source: "nav"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 10)

	require.Len(t, links, 3)
	assert.Equal(t, "https://example.com/services/web", links[0].URL)
	assert.Equal(t, "https://example.com/services/mobile", links[1].URL)
	assert.Equal(t, "https://example.com/services/cloud", links[2].URL)
}

func TestScanner_DiscoverPages_TruncatesToMaxPages(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Navigation: []offerscan.Link{
			{URL: "/pricing", Text: "Pricing", Source: "nav"},
			{URL: "/services", Text: "Services", Source: "nav"},
			{URL: "/products", Text: "Products", Source: "nav"},
			{URL: "/about", Text: "About", Source: "nav"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 2)

	require.Len(t, links, 2)
	assert.Equal(t, "https://example.com/pricing", links[0].URL)
	assert.Equal(t, "https://example.com/services", links[1].URL)
}

func TestScanner_DiscoverPages_IncludesSitemapURLs(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *offerscan.URLFilter) ([]string, error) {
				return []string{
					"https://example.com/plans/enterprise",
					"https://example.com/blog/news",
				}, nil
			},
		},
	}
	site := &offerscan.SiteData{URL: "https://example.com/"}

	links := s.DiscoverPages(context.Background(), site, 10)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/plans/enterprise", links[0].URL)
	assert.Equal(t, "sitemap", links[0].Source)
}

func TestScanner_DiscoverPages_SitemapFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *offerscan.URLFilter) ([]string, error) {
				return nil, offerscan.Errorf(offerscan.EUNAVAILABLE, "sitemap unreachable")
			},
		},
	}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Navigation: []offerscan.Link{
			{URL: "/pricing", Text: "Pricing", Source: "nav"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 10)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/pricing", links[0].URL)
}

func TestScanner_DiscoverPages_CustomKeywordTable(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{
		Discovery: scan.DiscoveryConfig{
			Keywords: []scan.KeywordWeight{{Keyword: "tariffs", Weight: 95}},
		},
	}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Links: []offerscan.Link{
			{URL: "/tariffs", Text: "Tariffs"},
			{URL: "/pricing", Text: "Pricing"},
		},
	}

	links := s.DiscoverPages(context.Background(), site, 10)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/tariffs", links[0].URL)
	assert.Equal(t, 95, links[0].Priority)
}
