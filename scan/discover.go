package scan

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/fwojciec/offerscan"
)

// KeywordWeight assigns a relevance score to a URL path or anchor keyword.
type KeywordWeight struct {
	Keyword string
	Weight  int
}

// DiscoveryConfig configures page discovery ranking.
type DiscoveryConfig struct {
	// Keywords is the priority table matched against URL paths and
	// anchor text. A URL's score is the highest matching weight;
	// URLs with no match are excluded.
	Keywords []KeywordWeight
}

// DefaultDiscoveryConfig returns the standard keyword priority table.
// Pricing and plan pages score highest, core offering pages next, then
// solution pages, with soft-relevance pages lowest.
func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		Keywords: []KeywordWeight{
			{"pricing", 100},
			{"prices", 100},
			{"plans", 100},
			{"packages", 100},
			{"services", 90},
			{"service", 90},
			{"products", 90},
			{"product", 90},
			{"shop", 90},
			{"store", 90},
			{"menu", 90},
			{"solutions", 85},
			{"offerings", 85},
			{"features", 85},
			{"what-we-do", 80},
			{"portfolio", 80},
			{"expertise", 80},
			{"capabilities", 80},
			{"about", 50},
			{"company", 50},
		},
	}
}

// score returns the highest keyword weight matching the URL path or
// anchor text, or zero when nothing matches.
func (c DiscoveryConfig) score(path, anchor string) int {
	path = strings.ToLower(path)
	anchor = strings.ToLower(anchor)
	best := 0
	for _, kw := range c.Keywords {
		if kw.Weight <= best {
			continue
		}
		if strings.Contains(path, kw.Keyword) || strings.Contains(anchor, kw.Keyword) {
			best = kw.Weight
		}
	}
	return best
}

// DiscoverPages ranks the site's navigation and in-page links (plus
// sitemap URLs when a sitemap service is configured) and returns up to
// maxPages same-site links likely to contain product or service
// information, highest priority first. Ties keep original link order.
//
// An empty result is not an error - the pipeline proceeds using only the
// main page.
func (s *Scanner) DiscoverPages(ctx context.Context, site *offerscan.SiteData, maxPages int) []offerscan.DiscoveredLink {
	base, err := url.Parse(site.URL)
	if err != nil {
		return nil
	}

	cfg := s.Discovery
	if len(cfg.Keywords) == 0 {
		cfg = DefaultDiscoveryConfig()
	}

	pool := make([]offerscan.Link, 0, len(site.Navigation)+len(site.Links))
	pool = append(pool, site.Navigation...)
	pool = append(pool, site.Links...)

	if s.Sitemaps != nil {
		urls, err := s.Sitemaps.DiscoverURLs(ctx, site.URL, nil)
		if err != nil {
			s.logger().Debug("sitemap discovery failed", "url", site.URL, "error", err)
		}
		for _, u := range urls {
			pool = append(pool, offerscan.Link{URL: u, Source: "sitemap"})
		}
	}

	seen := map[string]bool{}
	var ranked []offerscan.DiscoveredLink
	for _, link := range pool {
		resolved, ok := resolveSameSite(base, link.URL)
		if !ok || seen[resolved] {
			continue
		}
		seen[resolved] = true

		parsed, err := url.Parse(resolved)
		if err != nil {
			continue
		}
		priority := cfg.score(parsed.Path, link.Text)
		if priority == 0 {
			continue
		}
		source := link.Source
		if source == "" {
			source = "content"
		}
		ranked = append(ranked, offerscan.DiscoveredLink{
			URL:      resolved,
			Priority: priority,
			Text:     link.Text,
			Source:   source,
		})
	}

	// Stable sort keeps original link order for equal priorities.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})

	if len(ranked) > maxPages {
		ranked = ranked[:maxPages]
	}
	return ranked
}

// resolveSameSite resolves a raw URL against base and reports whether it
// points at the same host and is not the base page itself. Fragments are
// stripped for deduplication.
func resolveSameSite(base *url.URL, raw string) (string, bool) {
	if raw == "" || isNonHTTPLink(raw) {
		return "", false
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Host != base.Host {
		return "", false
	}

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if resolved.String() == baseNoFragment.String() {
		return "", false
	}
	return resolved.String(), true
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
