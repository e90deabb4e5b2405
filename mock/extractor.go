package mock

import (
	"github.com/fwojciec/offerscan"
)

var _ offerscan.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of offerscan.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*offerscan.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*offerscan.ExtractResult, error) {
	return e.ExtractFn(html)
}
