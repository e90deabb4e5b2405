package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate_ReturnsErrorWhenCorpusEmpty(t *testing.T) {
	t.Parallel()

	gen := gemini.NewGenerator(nil) // nil client ok for this test

	_, err := gen.Generate(context.Background(), offerscan.GenerateRequest{BusinessName: "Acme"})

	require.Error(t, err)
	assert.Equal(t, offerscan.EINVALID, offerscan.ErrorCode(err))
	assert.Contains(t, offerscan.ErrorMessage(err), "corpus required")
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes business name and corpus", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.BuildUserPrompt("Acme Insurance", "Home Insurance. Auto Insurance.")

		assert.Contains(t, prompt, "Business: Acme Insurance")
		assert.Contains(t, prompt, "<website-content>")
		assert.Contains(t, prompt, "Home Insurance. Auto Insurance.")
		assert.Contains(t, prompt, "</website-content>")
	})

	t.Run("omits business line when name empty", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.BuildUserPrompt("", "some content")

		assert.NotContains(t, prompt, "Business:")
		assert.Contains(t, prompt, "some content")
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config)
	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "JSON array")
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, float64(*config.Temperature), 0.001)
}

func TestParseCandidates(t *testing.T) {
	t.Parallel()

	t.Run("parses plain JSON array", func(t *testing.T) {
		t.Parallel()

		text := `[{"name": "Home Insurance", "description": "Covers your house.", "category": "core", "confidence": 85}]`

		candidates, err := gemini.ParseCandidates(text)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Home Insurance", candidates[0].Name)
		assert.Equal(t, "Covers your house.", candidates[0].Description)
		assert.Equal(t, "core", candidates[0].Category)
		assert.Equal(t, offerscan.StrategySemantic, candidates[0].Source)
		assert.Equal(t, 85.0, candidates[0].Confidence)
	})

	t.Run("strips fenced code blocks", func(t *testing.T) {
		t.Parallel()

		text := "Here are the offerings:\n```json\n[{\"name\": \"Auto Insurance\", \"confidence\": 70}]\n```\nLet me know if you need more."

		candidates, err := gemini.ParseCandidates(text)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Auto Insurance", candidates[0].Name)
	})

	t.Run("accepts string confidence", func(t *testing.T) {
		t.Parallel()

		text := `[{"name": "Umbrella Insurance", "confidence": "90"}]`

		candidates, err := gemini.ParseCandidates(text)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, 90.0, candidates[0].Confidence)
	})

	t.Run("skips entries without a name", func(t *testing.T) {
		t.Parallel()

		text := `[{"name": "", "confidence": 80}, {"description": "orphan"}, {"name": "SEO Audit", "confidence": 60}]`

		candidates, err := gemini.ParseCandidates(text)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "SEO Audit", candidates[0].Name)
	})

	t.Run("normalizes category to lowercase", func(t *testing.T) {
		t.Parallel()

		text := `[{"name": "Pro Plan", "category": " Tier ", "confidence": 75}]`

		candidates, err := gemini.ParseCandidates(text)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "tier", candidates[0].Category)
	})

	t.Run("returns empty slice for empty array", func(t *testing.T) {
		t.Parallel()

		candidates, err := gemini.ParseCandidates("[]")

		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("errors on prose with no array", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseCandidates("I could not find any products on this site.")

		require.Error(t, err)
		assert.Equal(t, offerscan.EINTERNAL, offerscan.ErrorCode(err))
	})

	t.Run("errors on truncated JSON", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseCandidates(`[{"name": "Home Insur`)

		require.Error(t, err)
		assert.Equal(t, offerscan.EINTERNAL, offerscan.ErrorCode(err))
	})
}
