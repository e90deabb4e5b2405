package mock

import (
	"github.com/fwojciec/offerscan"
)

var _ offerscan.Converter = (*Converter)(nil)

// Converter is a mock implementation of offerscan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
