package offerscan

// DiscoveredLink is a same-site URL ranked by page discovery as likely to
// contain product or service information.
type DiscoveredLink struct {
	URL string

	// Priority is the keyword-table relevance score. Links with zero
	// priority are excluded from discovery output.
	Priority int

	// Text is the anchor text the link was discovered with.
	Text string

	// Source labels where the link came from: "nav", "content",
	// "footer", "sitemap".
	Source string
}

// URLFrontier manages a bounded discovery queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next link by priority.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of links in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}
