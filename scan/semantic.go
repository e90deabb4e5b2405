package scan

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/offerscan"
)

// defaultSemanticTimeout bounds the text-generation call when the Scanner
// does not configure one.
const defaultSemanticTimeout = 60 * time.Second

// extractSemantic sends the combined corpus to the text-generation
// collaborator. This is the only strategy permitted to fail outright:
// timeouts, quota errors and malformed responses all degrade to an empty
// candidate list so the scan continues on the other strategies' output.
func (s *Scanner) extractSemantic(ctx context.Context, site *offerscan.SiteData, pages []*offerscan.Page, businessName string) []offerscan.Candidate {
	if s.Generator == nil {
		return nil
	}

	corpus := combinedCorpus(site, pages)
	if strings.TrimSpace(corpus) == "" {
		return nil
	}

	timeout := s.SemanticTimeout
	if timeout <= 0 {
		timeout = defaultSemanticTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	candidates, err := s.Generator.Generate(ctx, offerscan.GenerateRequest{
		BusinessName: businessName,
		Corpus:       corpus,
	})
	if err != nil {
		s.logger().Warn("semantic extraction degraded", "error", err)
		return nil
	}

	out := make([]offerscan.Candidate, 0, len(candidates))
	for _, c := range candidates {
		c.Source = offerscan.StrategySemantic
		if c.Confidence <= 0 || c.Confidence > 100 {
			c.Confidence = 65
		}
		if err := c.Validate(); err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// combinedCorpus merges the main page corpus with every discovered page's
// corpus, truncated to the collaborator's size budget at a line boundary.
func combinedCorpus(site *offerscan.SiteData, pages []*offerscan.Page) string {
	var b strings.Builder
	b.WriteString(BuildCorpus(site))
	for _, page := range pages {
		b.WriteString("\n")
		b.WriteString(page.Corpus)
	}
	return truncateAtLine(b.String(), semanticCorpusBudget)
}

// truncateAtLine cuts text to at most limit bytes, backing up to the last
// newline so a truncated corpus never ends mid-line.
func truncateAtLine(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]
	if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
