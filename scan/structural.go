package scan

import (
	"strings"

	"github.com/fwojciec/offerscan"
)

// Confidence assigned to structural candidates by their source pattern.
// Pricing-table entries are the strongest structural signal.
const (
	priceBlockConfidence = 85
	navConfidence        = 70
	headingConfidence    = 60
)

// extractStructural pattern-matches the main page's structured content.
// It is deterministic given the same site data and makes no external
// calls. Quality filtering is left entirely to the validator.
func (s *Scanner) extractStructural(site *offerscan.SiteData) []offerscan.Candidate {
	return structuralCandidates(site, offerscan.StrategyStructural, 1.0)
}

// structuralCandidates emits candidates from navigation item text, heading
// text and pricing-table-like blocks. The prior multiplier scales
// confidence; the cross-page strategy uses it to weight candidates by the
// source page's discovery relevance.
func structuralCandidates(site *offerscan.SiteData, source offerscan.Strategy, prior float64) []offerscan.Candidate {
	var out []offerscan.Candidate

	for _, pb := range site.PriceBlocks {
		name := strings.TrimSpace(pb.Name)
		if name == "" {
			continue
		}
		evidence := pb.Price
		if len(pb.Features) > 0 {
			if evidence != "" {
				evidence += "; "
			}
			evidence += strings.Join(pb.Features, ", ")
		}
		out = append(out, offerscan.Candidate{
			Name:        name,
			Description: strings.Join(pb.Features, ", "),
			Category:    "tier",
			Source:      source,
			Evidence:    evidence,
			Confidence:  priceBlockConfidence * prior,
		})
	}

	for _, link := range site.Navigation {
		name := strings.TrimSpace(link.Text)
		if name == "" {
			continue
		}
		out = append(out, offerscan.Candidate{
			Name:       name,
			Category:   "core",
			Source:     source,
			Evidence:   "navigation: " + link.URL,
			Confidence: navConfidence * prior,
		})
	}

	for _, heading := range site.Headings {
		name := strings.TrimSpace(heading)
		if name == "" {
			continue
		}
		out = append(out, offerscan.Candidate{
			Name:       name,
			Source:     source,
			Evidence:   "heading on " + site.URL,
			Confidence: headingConfidence * prior,
		})
	}

	return out
}
