package mock

import (
	"github.com/fwojciec/offerscan"
)

var _ offerscan.Prober = (*Prober)(nil)

// Prober is a mock implementation of offerscan.Prober.
type Prober struct {
	DetectFn     func(html string) offerscan.Platform
	RequiresJSFn func(platform offerscan.Platform) (bool, bool)
}

func (p *Prober) Detect(html string) offerscan.Platform {
	return p.DetectFn(html)
}

func (p *Prober) RequiresJS(platform offerscan.Platform) (bool, bool) {
	return p.RequiresJSFn(platform)
}
