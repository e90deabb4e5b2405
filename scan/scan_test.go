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

func TestScanner_ScanForProducts_InvalidInput(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}

	t.Run("nil site", func(t *testing.T) {
		t.Parallel()

		_, err := s.ScanForProducts(context.Background(), nil, "Acme", scan.DefaultOptions())
		require.Error(t, err)
		assert.Equal(t, offerscan.EINVALID, offerscan.ErrorCode(err))
	})

	t.Run("site without URL", func(t *testing.T) {
		t.Parallel()

		_, err := s.ScanForProducts(context.Background(), &offerscan.SiteData{}, "Acme", scan.DefaultOptions())
		require.Error(t, err)
		assert.Equal(t, offerscan.EINVALID, offerscan.ErrorCode(err))
	})

	t.Run("negative max additional pages", func(t *testing.T) {
		t.Parallel()

		opts := scan.DefaultOptions()
		opts.MaxAdditionalPages = -1
		_, err := s.ScanForProducts(context.Background(), &offerscan.SiteData{URL: "https://example.com"}, "Acme", opts)
		require.Error(t, err)
		assert.Equal(t, offerscan.EINVALID, offerscan.ErrorCode(err))
	})

	t.Run("threshold out of range", func(t *testing.T) {
		t.Parallel()

		opts := scan.DefaultOptions()
		opts.DeduplicationThreshold = 1.5
		_, err := s.ScanForProducts(context.Background(), &offerscan.SiteData{URL: "https://example.com"}, "Acme", opts)
		require.Error(t, err)
		assert.Equal(t, offerscan.EINVALID, offerscan.ErrorCode(err))
	})
}

func TestScanner_ScanForProducts_StructuralOnly(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Navigation: []offerscan.Link{
			{URL: "/home-insurance", Text: "Home Insurance", Source: "nav"},
			{URL: "/auto-insurance", Text: "Auto Insurance", Source: "nav"},
			{URL: "/quote", Text: "Get a Quote", Source: "nav"},
		},
	}
	opts := scan.Options{DeepScan: true}

	result, err := s.ScanForProducts(context.Background(), site, "Acme", opts)

	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "Auto Insurance", result.Products[0].Name)
	assert.Equal(t, "Home Insurance", result.Products[1].Name)

	// Navigation chrome never survives validation.
	for _, p := range result.Products {
		assert.NotEqual(t, "Get a Quote", p.Name)
	}

	assert.Equal(t, offerscan.StrategyReport{Enabled: true, Found: 2}, result.Strategies[offerscan.StrategyStructural])
	assert.Equal(t, offerscan.StrategyReport{}, result.Strategies[offerscan.StrategyCrossPage])
	assert.Equal(t, offerscan.StrategyReport{}, result.Strategies[offerscan.StrategySemantic])
	assert.Equal(t, offerscan.MergeStats{TotalBeforeMerge: 2, FinalCount: 2}, result.Merge)
}

func TestScanner_ScanForProducts_PriceBlocks(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{
		URL: "https://example.com/pricing",
		PriceBlocks: []offerscan.PriceBlock{
			{Name: "Pro Plan", Price: "$49/mo", Features: []string{"10 users", "Priority support"}},
			{Name: "", Price: "$0"},
		},
	}

	result, err := s.ScanForProducts(context.Background(), site, "Acme", scan.Options{DeepScan: true})

	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	pro := result.Products[0]
	assert.Equal(t, "Pro Plan", pro.Name)
	assert.Equal(t, 85.0, pro.Confidence)
	assert.Equal(t, "tier", pro.Category)
	assert.Equal(t, []string{"$49/mo; 10 users, Priority support"}, pro.Evidence)
	assert.Equal(t, "10 users, Priority support", pro.Description)
}

func TestScanner_ScanForProducts_FullPipeline(t *testing.T) {
	t.Parallel()

	var generatorCorpus string
	s := &scan.Scanner{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				assert.Equal(t, "https://example.com/services", url)
				return "<html>services</html>", nil
			},
		},
		Parser: &mock.SiteParser{
			ParseFn: func(html, baseURL string) (*offerscan.SiteData, error) {
				return &offerscan.SiteData{
					URL:      baseURL,
					Headings: []string{"Umbrella Insurance"},
				}, nil
			},
		},
		Generator: &mock.CandidateGenerator{
			GenerateFn: func(ctx context.Context, req offerscan.GenerateRequest) ([]offerscan.Candidate, error) {
				generatorCorpus = req.Corpus
				assert.Equal(t, "Acme Insurance", req.BusinessName)
				return []offerscan.Candidate{
					{Name: "Home Insurance", Category: "personal", Confidence: 80},
					{Name: "Umbrella Insurance", Category: "personal", Confidence: 75},
				}, nil
			},
		},
		RetryDelays: testDelays(),
	}

	site := &offerscan.SiteData{
		URL:   "https://example.com/",
		Title: "Acme Insurance",
		Navigation: []offerscan.Link{
			{URL: "/home-insurance", Text: "Home Insurance", Source: "nav"},
			{URL: "/auto-insurance", Text: "Auto Insurance", Source: "nav"},
			{URL: "/services", Text: "Our Services", Source: "nav"},
			{URL: "/quote", Text: "Get a Quote", Source: "nav"},
		},
	}

	result, err := s.ScanForProducts(context.Background(), site, "Acme Insurance", scan.DefaultOptions())

	require.NoError(t, err)
	require.Len(t, result.Products, 3)

	// Home Insurance: structural 70 + semantic 80, two-strategy boost.
	home := result.Products[0]
	assert.Equal(t, "Home Insurance", home.Name)
	assert.Equal(t, 90.0, home.Confidence)
	assert.Equal(t, []offerscan.Strategy{offerscan.StrategyStructural, offerscan.StrategySemantic}, home.Strategies)
	assert.Equal(t, "personal", home.Category)

	// Umbrella Insurance: cross-page heading + semantic agreement.
	umbrella := result.Products[1]
	assert.Equal(t, "Umbrella Insurance", umbrella.Name)
	assert.Equal(t, 85.0, umbrella.Confidence)
	assert.Equal(t, []offerscan.Strategy{offerscan.StrategyCrossPage, offerscan.StrategySemantic}, umbrella.Strategies)

	// Auto Insurance: structural only, no boost.
	auto := result.Products[2]
	assert.Equal(t, "Auto Insurance", auto.Name)
	assert.Equal(t, 70.0, auto.Confidence)

	assert.Equal(t, []string{"core", "personal"}, result.Categories)

	assert.Equal(t, offerscan.StrategyReport{Enabled: true, Found: 2}, result.Strategies[offerscan.StrategyStructural])
	assert.Equal(t, offerscan.StrategyReport{Enabled: true, Found: 1}, result.Strategies[offerscan.StrategyCrossPage])
	assert.Equal(t, offerscan.StrategyReport{Enabled: true, Found: 2}, result.Strategies[offerscan.StrategySemantic])

	assert.Equal(t, 5, result.Merge.TotalBeforeMerge)
	assert.Equal(t, 3, result.Merge.FinalCount)
	assert.Equal(t, 2, result.Merge.DuplicatesRemoved)

	// The semantic corpus covers the main page and the discovered page.
	assert.Contains(t, generatorCorpus, "Acme Insurance")
	assert.Contains(t, generatorCorpus, "Umbrella Insurance")
}

func TestScanner_ScanForProducts_SemanticFailureDegrades(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{
		Generator: &mock.CandidateGenerator{
			GenerateFn: func(ctx context.Context, req offerscan.GenerateRequest) ([]offerscan.Candidate, error) {
				return nil, offerscan.Errorf(offerscan.EUNAVAILABLE, "quota exceeded")
			},
		},
	}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Navigation: []offerscan.Link{
			{URL: "/home-insurance", Text: "Home Insurance", Source: "nav"},
		},
	}
	opts := scan.Options{DeepScan: true, SemanticScan: true}

	result, err := s.ScanForProducts(context.Background(), site, "Acme", opts)

	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Home Insurance", result.Products[0].Name)
	assert.Equal(t, offerscan.StrategyReport{Enabled: true, Found: 0}, result.Strategies[offerscan.StrategySemantic])
}

func TestScanner_ScanForProducts_SemanticSkippedWhenCorpusEmpty(t *testing.T) {
	t.Parallel()

	called := false
	s := &scan.Scanner{
		Generator: &mock.CandidateGenerator{
			GenerateFn: func(ctx context.Context, req offerscan.GenerateRequest) ([]offerscan.Candidate, error) {
				called = true
				return nil, nil
			},
		},
	}
	site := &offerscan.SiteData{URL: "https://example.com/"}
	opts := scan.Options{SemanticScan: true}

	result, err := s.ScanForProducts(context.Background(), site, "Acme", opts)

	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.False(t, called)
}

func TestScanner_ScanForProducts_PageFetchFailureDropsPage(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", offerscan.Errorf(offerscan.EUNAVAILABLE, "503 from origin")
			},
		},
		Parser: &mock.SiteParser{
			ParseFn: func(html, baseURL string) (*offerscan.SiteData, error) {
				t.Error("parser must not run when fetches fail")
				return &offerscan.SiteData{URL: baseURL}, nil
			},
		},
		RetryDelays: testDelays(),
	}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Navigation: []offerscan.Link{
			{URL: "/home-insurance", Text: "Home Insurance", Source: "nav"},
			{URL: "/services", Text: "Our Services", Source: "nav"},
		},
	}
	opts := scan.Options{MultiPage: true, DeepScan: true}

	result, err := s.ScanForProducts(context.Background(), site, "Acme", opts)

	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Home Insurance", result.Products[0].Name)
	assert.Equal(t, offerscan.StrategyReport{Enabled: true, Found: 0}, result.Strategies[offerscan.StrategyCrossPage])
}

func TestScanner_ScanForProducts_CacheHitSkipsFetch(t *testing.T) {
	t.Parallel()

	cached := &offerscan.Page{
		URL:    "https://example.com/services",
		Corpus: "Umbrella Insurance\n",
		Site: &offerscan.SiteData{
			URL:      "https://example.com/services",
			Headings: []string{"Umbrella Insurance"},
		},
	}
	s := &scan.Scanner{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Error("fetch must not run on a cache hit")
				return "", nil
			},
		},
		Cache: &mock.PageCache{
			GetFn: func(url string) (*offerscan.Page, bool) {
				if url == cached.URL {
					return cached, true
				}
				return nil, false
			},
			PutFn: func(url string, page *offerscan.Page) {},
		},
		RetryDelays: testDelays(),
	}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Navigation: []offerscan.Link{
			{URL: "/services", Text: "Our Services", Source: "nav"},
		},
	}
	opts := scan.Options{MultiPage: true}

	result, err := s.ScanForProducts(context.Background(), site, "Acme", opts)

	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	umbrella := result.Products[0]
	assert.Equal(t, "Umbrella Insurance", umbrella.Name)
	// Heading base 60 scaled by this run's discovery prior for a
	// services page, not the cached score.
	assert.InDelta(t, 57.0, umbrella.Confidence, 0.001)
}

func TestScanner_ScanForProducts_FollowLinks(t *testing.T) {
	t.Parallel()

	fetched := map[string]bool{}
	s := &scan.Scanner{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched[url] = true
				return "<html></html>", nil
			},
		},
		Parser: &mock.SiteParser{
			ParseFn: func(html, baseURL string) (*offerscan.SiteData, error) {
				data := &offerscan.SiteData{URL: baseURL}
				if baseURL == "https://example.com/services" {
					// The services page links onward to a pricing page.
					data.Links = []offerscan.Link{
						{URL: "/services/pricing", Text: "Pricing"},
					}
					data.Headings = []string{"Managed IT Services"}
				}
				if baseURL == "https://example.com/services/pricing" {
					data.Headings = []string{"Enterprise Plan"}
				}
				return data, nil
			},
		},
		RetryDelays: testDelays(),
	}
	site := &offerscan.SiteData{
		URL: "https://example.com/",
		Navigation: []offerscan.Link{
			{URL: "/services", Text: "Our Services", Source: "nav"},
		},
	}
	opts := scan.Options{MultiPage: true, FollowLinks: true, MaxAdditionalPages: 5}

	result, err := s.ScanForProducts(context.Background(), site, "Acme", opts)

	require.NoError(t, err)
	assert.True(t, fetched["https://example.com/services"])
	assert.True(t, fetched["https://example.com/services/pricing"])

	names := make([]string, 0, len(result.Products))
	for _, p := range result.Products {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Managed IT Services")
	assert.Contains(t, names, "Enterprise Plan")
}

func TestScanner_ScanForProducts_EmptyStrategiesYieldEmptyResult(t *testing.T) {
	t.Parallel()

	s := &scan.Scanner{}
	site := &offerscan.SiteData{URL: "https://example.com/"}

	result, err := s.ScanForProducts(context.Background(), site, "Acme", scan.Options{DeepScan: true})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Products)
	assert.Empty(t, result.Categories)
	assert.Equal(t, offerscan.MergeStats{}, result.Merge)
}

func TestScanner_ScanURL(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		s := &scan.Scanner{}
		_, err := s.ScanURL(context.Background(), "", "Acme", scan.DefaultOptions())
		require.Error(t, err)
		assert.Equal(t, offerscan.EINVALID, offerscan.ErrorCode(err))
	})

	t.Run("fetch failure maps to site unavailable", func(t *testing.T) {
		t.Parallel()

		s := &scan.Scanner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "", offerscan.Errorf(offerscan.EUNAVAILABLE, "connection refused")
				},
			},
			RetryDelays: testDelays(),
		}

		_, err := s.ScanURL(context.Background(), "https://example.com", "Acme", scan.DefaultOptions())

		require.Error(t, err)
		assert.Equal(t, offerscan.EUNAVAILABLE, offerscan.ErrorCode(err))
		assert.Contains(t, offerscan.ErrorMessage(err), "site unavailable")
	})

	t.Run("scans the fetched main page", func(t *testing.T) {
		t.Parallel()

		s := &scan.Scanner{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Parser: &mock.SiteParser{
				ParseFn: func(html, baseURL string) (*offerscan.SiteData, error) {
					return &offerscan.SiteData{
						URL:      baseURL,
						Headings: []string{"Home Insurance"},
					}, nil
				},
			},
			RetryDelays: testDelays(),
		}

		result, err := s.ScanURL(context.Background(), "https://example.com", "Acme", scan.Options{DeepScan: true})

		require.NoError(t, err)
		require.Len(t, result.Products, 1)
		assert.Equal(t, "Home Insurance", result.Products[0].Name)
	})
}
