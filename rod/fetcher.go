// Package rod fetches rendered HTML through a headless Chrome browser.
// It is the fetcher of choice for JavaScript-heavy platforms (Wix,
// Squarespace, client-rendered React sites) where the plain HTTP
// response body carries no offering content.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/offerscan"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements offerscan.Fetcher at compile time.
var _ offerscan.Fetcher = (*Fetcher)(nil)

// renderSettle is how long Fetch waits after load for client-side
// rendering to populate the DOM. Load alone is not enough for SPAs
// that hydrate after the load event fires.
const renderSettle = 500 * time.Millisecond

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...ManagerOption) (*Fetcher, error) {
	bm, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: bm}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Give hydration a moment before reading the DOM.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(renderSettle):
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
