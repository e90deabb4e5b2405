package scan

import (
	"strings"

	"github.com/fwojciec/offerscan"
)

var _ offerscan.Similarity = TokenSimilarity{}

// TokenSimilarity scores name similarity by token overlap using the
// Sorensen-Dice coefficient over lowercased word sets. It is the default
// similarity for the merger; diffmatch.Similarity offers an
// edit-distance alternative behind the same interface.
type TokenSimilarity struct{}

// Score returns 2|A∩B| / (|A|+|B|) over the two names' token sets.
// Two empty names score 1; one empty name scores 0.
func (TokenSimilarity) Score(a, b string) float64 {
	ta := tokens(a)
	tb := tokens(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var overlap int
	for t := range ta {
		if tb[t] {
			overlap++
		}
	}
	return 2 * float64(overlap) / float64(len(ta)+len(tb))
}

// tokens splits a name into a lowercased set of alphanumeric words.
func tokens(s string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
