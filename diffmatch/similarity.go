// Package diffmatch scores name similarity using edit distance.
// It is interchangeable with the token-overlap scorer; the merger's
// clustering does not care which one it is given.
package diffmatch

import (
	"strings"

	"github.com/fwojciec/offerscan"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Ensure Similarity implements offerscan.Similarity at compile time.
var _ offerscan.Similarity = (*Similarity)(nil)

// Similarity scores two names by normalized Levenshtein distance over
// their lowercased forms.
type Similarity struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewSimilarity creates a new Similarity.
func NewSimilarity() *Similarity {
	return &Similarity{dmp: diffmatchpatch.New()}
}

// Score returns a similarity in [0, 1]. Identical strings score 1;
// strings sharing no characters score 0.
func (s *Similarity) Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	diffs := s.dmp.DiffMain(a, b, false)
	distance := s.dmp.DiffLevenshtein(diffs)

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}

	return 1 - float64(distance)/float64(longest)
}
