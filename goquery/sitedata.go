// Package goquery provides CSS-selector-based parsing of business site
// HTML into the structured SiteData shape the scan pipeline consumes.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offerscan"
)

// maxSectionLen caps the text kept per section block; longer blocks are
// body copy better served by the main-text extractor.
const maxSectionLen = 400

// Ensure Parser implements offerscan.SiteParser at compile time.
var _ offerscan.SiteParser = (*Parser)(nil)

// Parser turns raw HTML into structured SiteData using universal CSS
// selectors that work across site platforms: navigation and footer areas,
// headings, section copy, link inventory, metadata and pricing blocks.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts structured content from HTML.
// The baseURL is used to resolve relative links; external links are
// filtered out, and links are deduplicated by URL keeping the navigation
// version over content and footer versions.
func (p *Parser) Parse(html string, baseURL string) (*offerscan.SiteData, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, offerscan.Errorf(offerscan.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, offerscan.Errorf(offerscan.EINVALID, "failed to parse HTML: %v", err)
	}

	site := &offerscan.SiteData{
		URL:      baseURL,
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		Metadata: extractMetadata(doc),
	}

	// Track seen URLs with their index in the result slices for O(1)
	// dedup. Navigation links win over content and footer duplicates.
	type indexed struct {
		navigation bool
		idx        int
	}
	seen := map[string]indexed{}

	collect := func(selector, source string, isNav bool) {
		doc.Find(selector).Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}
			link := offerscan.Link{
				URL:    resolved,
				Text:   strings.TrimSpace(sel.Text()),
				Source: source,
			}
			if prev, ok := seen[resolved]; ok {
				if isNav && !prev.navigation {
					site.Navigation = append(site.Navigation, link)
					seen[resolved] = indexed{navigation: true, idx: len(site.Navigation) - 1}
				}
				return
			}
			if isNav {
				site.Navigation = append(site.Navigation, link)
				seen[resolved] = indexed{navigation: true, idx: len(site.Navigation) - 1}
			} else {
				site.Links = append(site.Links, link)
				seen[resolved] = indexed{idx: len(site.Links) - 1}
			}
		})
	}

	collect("nav, [role='navigation'], .nav, .navbar, .menu, header", "nav", true)
	collect("main, article, .content, section", "content", false)
	collect("footer, .footer", "footer", false)

	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			site.Headings = append(site.Headings, text)
		}
	})

	doc.Find("section, .section").Each(func(_ int, sel *goquery.Selection) {
		text := normalizeSpace(sel.Text())
		if text == "" {
			return
		}
		if len(text) > maxSectionLen {
			text = text[:maxSectionLen]
		}
		site.Sections = append(site.Sections, text)
	})

	site.PriceBlocks = extractPriceBlocks(doc)

	return site, nil
}

// extractMetadata pulls descriptive meta tags: description, keywords and
// OpenGraph fields.
func extractMetadata(doc *goquery.Document) map[string]string {
	meta := map[string]string{}
	add := func(key, selector, attr string) {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if content, ok := sel.Attr(attr); ok && strings.TrimSpace(content) != "" {
				meta[key] = strings.TrimSpace(content)
				return false
			}
			return true
		})
	}
	add("description", "meta[name='description']", "content")
	add("keywords", "meta[name='keywords']", "content")
	add("og:title", "meta[property='og:title']", "content")
	add("og:description", "meta[property='og:description']", "content")
	add("og:site_name", "meta[property='og:site_name']", "content")
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string for unparsable, non-HTTP, external or
// self-referential links. Fragments are stripped for deduplication.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	if resolved.Host != base.Host {
		return ""
	}

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	result := resolved.String()
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
