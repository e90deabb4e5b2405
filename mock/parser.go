package mock

import (
	"github.com/fwojciec/offerscan"
)

var _ offerscan.SiteParser = (*SiteParser)(nil)

// SiteParser is a mock implementation of offerscan.SiteParser.
type SiteParser struct {
	ParseFn func(html, baseURL string) (*offerscan.SiteData, error)
}

func (p *SiteParser) Parse(html, baseURL string) (*offerscan.SiteData, error) {
	return p.ParseFn(html, baseURL)
}
