package diffmatch_test

import (
	"testing"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/diffmatch"
	"github.com/stretchr/testify/assert"
)

// Ensure Similarity implements offerscan.Similarity at compile time.
var _ offerscan.Similarity = (*diffmatch.Similarity)(nil)

func TestSimilarity_Score(t *testing.T) {
	t.Parallel()

	sim := diffmatch.NewSimilarity()

	t.Run("identical names score 1", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, sim.Score("Home Insurance", "Home Insurance"))
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, sim.Score("  home insurance ", "Home Insurance"))
	})

	t.Run("empty string scores 0 against anything", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, sim.Score("", "Home Insurance"))
		assert.Equal(t, 0.0, sim.Score("Home Insurance", ""))
	})

	t.Run("both empty score 1", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, sim.Score("", ""))
	})

	t.Run("near-identical names score high", func(t *testing.T) {
		t.Parallel()
		score := sim.Score("Home Insurance", "Home Insurance Plans")
		assert.Greater(t, score, 0.6)
		assert.Less(t, score, 1.0)
	})

	t.Run("unrelated names score low", func(t *testing.T) {
		t.Parallel()
		score := sim.Score("Home Insurance", "SEO Audit")
		assert.Less(t, score, 0.4)
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		t.Parallel()
		pairs := [][2]string{
			{"a", "zzzzzzzzzz"},
			{"Pro Plan", "Pro Plan Plus"},
			{"x", "x"},
		}
		for _, p := range pairs {
			score := sim.Score(p[0], p[1])
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})
}
