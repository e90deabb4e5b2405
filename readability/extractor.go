// Package readability extracts main page content using go-readability.
// It is an alternative to the trafilatura extractor for pages where
// trafilatura's heuristics strip too aggressively.
package readability

import (
	"strings"

	"github.com/fwojciec/offerscan"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements offerscan.Extractor at compile time.
var _ offerscan.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*offerscan.ExtractResult, error) {
	if rawHTML == "" {
		return nil, offerscan.Errorf(offerscan.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &offerscan.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
