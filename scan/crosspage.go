package scan

import "github.com/fwojciec/offerscan"

// maxDiscoveryScore is the top weight in the default keyword table, used
// to normalize page scores into confidence priors.
const maxDiscoveryScore = 100

// extractCrossPage runs the structural extraction method independently
// against each discovered page. The page's discovery relevance score acts
// as a prior multiplier on candidate confidence: a candidate found on a
// pricing page is worth more than one found on an about page.
func (s *Scanner) extractCrossPage(pages []*offerscan.Page) []offerscan.Candidate {
	var out []offerscan.Candidate
	for _, page := range pages {
		if page.Site == nil {
			continue
		}
		prior := scorePrior(page.Score)
		candidates := structuralCandidates(page.Site, offerscan.StrategyCrossPage, prior)
		for i := range candidates {
			if candidates[i].Evidence != "" {
				candidates[i].Evidence += " (" + page.URL + ")"
			} else {
				candidates[i].Evidence = page.URL
			}
		}
		out = append(out, candidates...)
	}
	return out
}

// scorePrior maps a discovery score onto a confidence multiplier in
// [0.5, 1.0]. Unknown or out-of-table scores clamp to the range ends.
func scorePrior(score float64) float64 {
	if score <= 0 {
		return 0.5
	}
	if score >= maxDiscoveryScore {
		return 1.0
	}
	return 0.5 + 0.5*(score/maxDiscoveryScore)
}
