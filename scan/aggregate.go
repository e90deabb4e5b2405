package scan

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/offerscan"
	"golang.org/x/sync/errgroup"
)

// aggregateConcurrency bounds concurrent page fetches during aggregation.
const aggregateConcurrency = 4

// FetchSite fetches a URL and builds structured SiteData from it:
// fetch with retry, parse into navigation/headings/sections/links, then
// extract the main content and convert it to markdown for the corpus.
func (s *Scanner) FetchSite(ctx context.Context, pageURL string) (*offerscan.SiteData, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	if s.RateLimiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return nil, offerscan.Errorf(offerscan.EINVALID, "invalid URL %q: %v", pageURL, err)
		}
		if err := s.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			return nil, err
		}
	}

	fetchFn := func(ctx context.Context, url string) (string, error) {
		return s.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, fetchFn, nil, delays)
	if err != nil {
		return nil, err
	}

	site, err := s.Parser.Parse(html, pageURL)
	if err != nil {
		return nil, err
	}

	// Main text is best-effort: a page whose boilerplate removal fails
	// still contributes its structural content.
	if s.Extractor != nil {
		if extracted, err := s.Extractor.Extract(html); err == nil && extracted.ContentHTML != "" {
			mainText := extracted.ContentHTML
			if s.Converter != nil {
				if md, err := s.Converter.Convert(extracted.ContentHTML); err == nil {
					mainText = md
				}
			}
			site.MainText = mainText
			if site.Title == "" {
				site.Title = extracted.Title
			}
		}
	}

	return site, nil
}

// aggregate fetches each discovered page and merges its textual content
// into a per-page corpus. Fetching is best-effort: a failed fetch is
// logged and that page is dropped; it never aborts the scan.
func (s *Scanner) aggregate(ctx context.Context, links []offerscan.DiscoveredLink) []*offerscan.Page {
	if len(links) == 0 {
		return nil
	}

	pages := make([]*offerscan.Page, len(links))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(aggregateConcurrency)
	for i, link := range links {
		g.Go(func() error {
			page := s.fetchPage(gctx, link)
			if page == nil {
				return nil
			}
			mu.Lock()
			pages[i] = page
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Compact in original ranked order.
	out := make([]*offerscan.Page, 0, len(links))
	for _, p := range pages {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// aggregateFollowing fetches pages from a priority frontier seeded with
// the ranked links, folding each fetched page's own ranked links back in,
// until maxPages pages have been fetched or the frontier is empty.
//
// Frontier processing is sequential to keep rate limiting and
// deduplication simple; concurrency comes from the strategy fan-out.
func (s *Scanner) aggregateFollowing(ctx context.Context, links []offerscan.DiscoveredLink, maxPages int) []*offerscan.Page {
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	for _, link := range links {
		frontier.Push(link)
	}

	var pages []*offerscan.Page
	for len(pages) < maxPages {
		if ctx.Err() != nil {
			break
		}
		link, ok := frontier.Pop()
		if !ok {
			break
		}

		page := s.fetchPage(ctx, link)
		if page == nil {
			continue
		}
		pages = append(pages, page)

		if page.Site == nil {
			continue
		}
		for _, next := range s.DiscoverPages(ctx, page.Site, maxPages) {
			frontier.Push(next)
		}
	}
	return pages
}

// fetchPage produces an aggregated Page for a discovered link, consulting
// the cache first. Returns nil when the page is unavailable.
func (s *Scanner) fetchPage(ctx context.Context, link offerscan.DiscoveredLink) *offerscan.Page {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(link.URL); ok {
			// Preserve this run's discovery score; the cache only
			// carries content.
			page := *cached
			page.Score = float64(link.Priority)
			return &page
		}
	}

	site, err := s.FetchSite(ctx, link.URL)
	if err != nil {
		s.logger().Warn("page unavailable", "url", link.URL, "error", err)
		return nil
	}

	corpus := BuildCorpus(site)
	page := &offerscan.Page{
		URL:         link.URL,
		Corpus:      corpus,
		Score:       float64(link.Priority),
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(corpus)),
		FetchedAt:   time.Now().UTC(),
		Site:        site,
	}
	if s.Cache != nil {
		s.Cache.Put(link.URL, page)
	}
	return page
}

// BuildCorpus flattens structured page content into one text corpus:
// title, navigation, headings, sections, main text and metadata.
func BuildCorpus(site *offerscan.SiteData) string {
	var b strings.Builder
	writeLine := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	writeLine(site.Title)
	for _, link := range site.Navigation {
		writeLine(link.Text)
	}
	for _, h := range site.Headings {
		writeLine(h)
	}
	for _, sec := range site.Sections {
		writeLine(sec)
	}
	writeLine(site.MainText)
	for _, pb := range site.PriceBlocks {
		line := pb.Name
		if pb.Price != "" {
			line += " - " + pb.Price
		}
		if len(pb.Features) > 0 {
			line += ": " + strings.Join(pb.Features, ", ")
		}
		writeLine(line)
	}
	keys := make([]string, 0, len(site.Metadata))
	for k := range site.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeLine(site.Metadata[k])
	}
	return b.String()
}
