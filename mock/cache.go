package mock

import (
	"github.com/fwojciec/offerscan"
)

var _ offerscan.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of offerscan.PageCache.
type PageCache struct {
	GetFn func(url string) (*offerscan.Page, bool)
	PutFn func(url string, page *offerscan.Page)
}

func (c *PageCache) Get(url string) (*offerscan.Page, bool) {
	return c.GetFn(url)
}

func (c *PageCache) Put(url string, page *offerscan.Page) {
	c.PutFn(url, page)
}
