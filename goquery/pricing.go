package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offerscan"
)

// priceRe matches currency amounts and common per-period price text.
var priceRe = regexp.MustCompile(`(?i)([$€£]\s?\d[\d,]*(\.\d+)?|\d[\d,]*(\.\d+)?\s?(/\s?(mo|month|yr|year|week|hour)|per\s+(month|year|week|hour|person|user)))`)

// priceBlockSelector targets pricing-table-like containers.
const priceBlockSelector = "[class*='pricing'] > *, [class*='plan'], [class*='tier'], [class*='package']"

// extractPriceBlocks finds pricing-table-like structures: repeated sibling
// blocks carrying a name plus a price or feature list. Blocks without both
// a name and a price are ignored.
func extractPriceBlocks(doc *goquery.Document) []offerscan.PriceBlock {
	seen := map[string]bool{}
	var blocks []offerscan.PriceBlock

	doc.Find(priceBlockSelector).Each(func(_ int, sel *goquery.Selection) {
		name := blockName(sel)
		if name == "" || seen[strings.ToLower(name)] {
			return
		}

		price := priceRe.FindString(sel.Text())
		if price == "" {
			return
		}

		var features []string
		sel.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := normalizeSpace(li.Text()); text != "" {
				features = append(features, text)
			}
		})

		seen[strings.ToLower(name)] = true
		blocks = append(blocks, offerscan.PriceBlock{
			Name:     name,
			Price:    normalizeSpace(price),
			Features: features,
		})
	})

	return blocks
}

// blockName returns the block's heading or title text.
func blockName(sel *goquery.Selection) string {
	for _, selector := range []string{"h2", "h3", "h4", "[class*='title']", "[class*='name']"} {
		if text := normalizeSpace(sel.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
