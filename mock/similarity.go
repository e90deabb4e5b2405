package mock

import (
	"github.com/fwojciec/offerscan"
)

var _ offerscan.Similarity = (*Similarity)(nil)

// Similarity is a mock implementation of offerscan.Similarity.
type Similarity struct {
	ScoreFn func(a, b string) float64
}

func (s *Similarity) Score(a, b string) float64 {
	return s.ScoreFn(a, b)
}
