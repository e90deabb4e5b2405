// Package scan provides the product discovery pipeline orchestration.
// It coordinates page discovery, content aggregation, the three extraction
// strategies, candidate validation and merging into ranked products.
package scan

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/fwojciec/offerscan"
	"golang.org/x/sync/errgroup"
)

// Default option values for ScanForProducts.
const (
	DefaultMaxAdditionalPages     = 5
	DefaultDeduplicationThreshold = 0.85
)

// semanticCorpusBudget bounds the combined corpus sent to the
// text-generation collaborator.
const semanticCorpusBudget = 48 * 1024

// Options configures a scan run. The zero value disables every strategy;
// use DefaultOptions as a starting point.
type Options struct {
	// MultiPage runs page discovery and the cross-page strategy.
	MultiPage bool

	// FollowLinks lets content aggregation follow links found on
	// discovered pages (bounded by MaxAdditionalPages) instead of
	// fetching only the pages ranked from the main page.
	FollowLinks bool

	// MaxAdditionalPages bounds the number of discovered pages fetched
	// beyond the main page. Zero means DefaultMaxAdditionalPages;
	// negative is invalid.
	MaxAdditionalPages int

	// DeepScan runs the structural strategy.
	DeepScan bool

	// SemanticScan runs the semantic strategy.
	SemanticScan bool

	// DeduplicationThreshold is the minimum name similarity for two
	// candidates to merge. Zero means DefaultDeduplicationThreshold;
	// values outside [0,1] are invalid.
	DeduplicationThreshold float64
}

// DefaultOptions returns the standard scan configuration: all strategies
// enabled, up to five additional pages, threshold 0.85.
func DefaultOptions() Options {
	return Options{
		MultiPage:              true,
		MaxAdditionalPages:     DefaultMaxAdditionalPages,
		DeepScan:               true,
		SemanticScan:           true,
		DeduplicationThreshold: DefaultDeduplicationThreshold,
	}
}

// validate checks option values and fills in defaults.
// Invalid configuration fails fast; it indicates caller misuse,
// not a runtime condition.
func (o *Options) validate() error {
	if o.MaxAdditionalPages < 0 {
		return offerscan.Errorf(offerscan.EINVALID, "max additional pages must be non-negative, got %d", o.MaxAdditionalPages)
	}
	if o.MaxAdditionalPages == 0 {
		o.MaxAdditionalPages = DefaultMaxAdditionalPages
	}
	if o.DeduplicationThreshold < 0 || o.DeduplicationThreshold > 1 {
		return offerscan.Errorf(offerscan.EINVALID, "deduplication threshold must be in [0,1], got %v", o.DeduplicationThreshold)
	}
	if o.DeduplicationThreshold == 0 {
		o.DeduplicationThreshold = DefaultDeduplicationThreshold
	}
	return nil
}

// Scanner orchestrates scan runs. Fetcher, Parser, Extractor and Converter
// are required for multi-page scans; Generator is required for the semantic
// strategy. Sitemaps, Cache, RateLimiter and Logger are optional.
type Scanner struct {
	Fetcher     offerscan.Fetcher
	Parser      offerscan.SiteParser
	Extractor   offerscan.Extractor
	Converter   offerscan.Converter
	Generator   offerscan.CandidateGenerator
	Sitemaps    offerscan.SitemapService
	Cache       offerscan.PageCache
	RateLimiter offerscan.DomainLimiter
	Similarity  offerscan.Similarity
	Validator   *Validator
	Discovery   DiscoveryConfig
	Logger      *slog.Logger

	// RetryDelays configures fetch retry backoff.
	// Defaults to DefaultRetryDelays().
	RetryDelays []time.Duration

	// SemanticTimeout bounds the text-generation call.
	// Defaults to 60s.
	SemanticTimeout time.Duration
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (s *Scanner) validator() *Validator {
	if s.Validator != nil {
		return s.Validator
	}
	return NewValidator(DefaultValidatorConfig())
}

func (s *Scanner) similarity() offerscan.Similarity {
	if s.Similarity != nil {
		return s.Similarity
	}
	return TokenSimilarity{}
}

// ScanForProducts runs the full pipeline against a site's main page data.
//
// Control flow is a straight pipeline with fan-out/fan-in: discovery,
// aggregation, the enabled strategies concurrently, then validation and
// merge. Collaborator failures degrade the affected page or strategy to
// empty output; only invalid options return an error. The returned result
// is always well-formed, even when every strategy comes back empty.
func (s *Scanner) ScanForProducts(ctx context.Context, site *offerscan.SiteData, businessName string, opts Options) (*offerscan.ScanResult, error) {
	if site == nil {
		return nil, offerscan.Errorf(offerscan.EINVALID, "site data required")
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	// Discover and aggregate additional pages. Best-effort: a failed
	// fetch drops that page, never the scan.
	var pages []*offerscan.Page
	if opts.MultiPage {
		links := s.DiscoverPages(ctx, site, opts.MaxAdditionalPages)
		if opts.FollowLinks {
			pages = s.aggregateFollowing(ctx, links, opts.MaxAdditionalPages)
		} else {
			pages = s.aggregate(ctx, links)
		}
	}

	// Run the enabled strategies concurrently. They share no mutable
	// state and their outputs are combined as an unordered multiset.
	var structural, crossPage, semantic []offerscan.Candidate
	g, gctx := errgroup.WithContext(ctx)
	if opts.DeepScan {
		g.Go(func() error {
			structural = s.extractStructural(site)
			return nil
		})
	}
	if opts.MultiPage {
		g.Go(func() error {
			crossPage = s.extractCrossPage(pages)
			return nil
		})
	}
	if opts.SemanticScan {
		g.Go(func() error {
			semantic = s.extractSemantic(gctx, site, pages, businessName)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Validate every candidate from every strategy before merging.
	v := s.validator()
	valid := make([]offerscan.Candidate, 0, len(structural)+len(crossPage)+len(semantic))
	found := map[offerscan.Strategy]int{}
	for _, c := range concat(structural, crossPage, semantic) {
		if ok, reason := v.Validate(c.Name); !ok {
			s.logger().Debug("candidate rejected", "name", c.Name, "reason", reason, "strategy", c.Source)
			continue
		}
		valid = append(valid, c)
		found[c.Source]++
	}

	merger := &Merger{
		Threshold:  opts.DeduplicationThreshold,
		Similarity: s.similarity(),
	}
	products, stats := merger.Merge(valid)

	return &offerscan.ScanResult{
		Products:   products,
		Categories: collectCategories(products),
		Strategies: map[offerscan.Strategy]offerscan.StrategyReport{
			offerscan.StrategyStructural: {Enabled: opts.DeepScan, Found: found[offerscan.StrategyStructural]},
			offerscan.StrategyCrossPage:  {Enabled: opts.MultiPage, Found: found[offerscan.StrategyCrossPage]},
			offerscan.StrategySemantic:   {Enabled: opts.SemanticScan, Found: found[offerscan.StrategySemantic]},
		},
		Merge: stats,
	}, nil
}

// ScanURL fetches a site's main page and runs the full pipeline against
// it. Unlike the pipeline itself, the main-page fetch is not best-effort:
// with no main page there is nothing to scan.
func (s *Scanner) ScanURL(ctx context.Context, siteURL, businessName string, opts Options) (*offerscan.ScanResult, error) {
	if siteURL == "" {
		return nil, offerscan.Errorf(offerscan.EINVALID, "site URL required")
	}

	site, err := s.FetchSite(ctx, siteURL)
	if err != nil {
		// Transport errors surface as "site unavailable" rather than the
		// underlying error type; validation errors pass through.
		if offerscan.ErrorCode(err) == offerscan.EINVALID {
			return nil, err
		}
		return nil, offerscan.Errorf(offerscan.EUNAVAILABLE, "site unavailable: %v", err)
	}

	return s.ScanForProducts(ctx, site, businessName, opts)
}

func concat(lists ...[]offerscan.Candidate) []offerscan.Candidate {
	var out []offerscan.Candidate
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// collectCategories returns the distinct non-empty categories across
// products, sorted for determinism.
func collectCategories(products []offerscan.MergedProduct) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
