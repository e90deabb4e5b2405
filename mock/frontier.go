package mock

import (
	"github.com/fwojciec/offerscan"
)

var _ offerscan.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of offerscan.URLFrontier.
type URLFrontier struct {
	PushFn func(link offerscan.DiscoveredLink) bool
	PopFn  func() (offerscan.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link offerscan.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (offerscan.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}
