package offerscan

import "time"

// Page is a fetched and aggregated document: one discovered page's textual
// content flattened into a corpus for extraction. Pages live for the
// duration of one scan, except when held by a PageCache.
type Page struct {
	URL    string `json:"url"`
	Corpus string `json:"corpus"`

	// Score is the discovery relevance score assigned by page discovery.
	// The cross-page strategy uses it as a confidence prior.
	Score float64 `json:"score"`

	// ContentHash is a hash of the corpus, used to detect content drift
	// between cached and fresh fetches.
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`

	// Site holds the structured page content the corpus was built from.
	// The cross-page strategy extracts from it directly.
	Site *SiteData `json:"-"`
}

// PageCache is a time-bounded URL-keyed cache of fetched pages.
// A cache miss must produce identical scan results to a fresh fetch,
// modulo content drift on the live site - the cache is an optimization,
// not a correctness requirement.
//
// Implementations must be safe for concurrent use. Entries are
// write-once per TTL window.
type PageCache interface {
	// Get returns the cached page for a URL, or false on miss or expiry.
	Get(url string) (*Page, bool)

	// Put stores a page under its URL for the cache's TTL.
	Put(url string, page *Page)
}
