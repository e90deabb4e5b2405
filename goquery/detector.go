package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/offerscan"
)

// Ensure Detector implements offerscan.Prober at compile time.
var _ offerscan.Prober = (*Detector)(nil)

// Detector identifies website platforms from HTML content.
// It checks meta generator tags, platform-specific asset hosts and CSS
// markers that are unique to each site builder.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified platform.
// Returns PlatformUnknown if the platform cannot be determined.
func (d *Detector) Detect(html string) offerscan.Platform {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return offerscan.PlatformUnknown
	}

	// Meta generator tags first - most reliable when present.
	if platform := d.detectFromMetaGenerator(doc); platform != offerscan.PlatformUnknown {
		return platform
	}

	lower := strings.ToLower(html)
	switch {
	case strings.Contains(lower, "cdn.shopify.com") || d.hasSelector(doc, "[data-shopify]"):
		return offerscan.PlatformShopify
	case strings.Contains(lower, "wp-content/") || strings.Contains(lower, "wp-includes/"):
		return offerscan.PlatformWordPress
	case strings.Contains(lower, "static.parastorage.com") || d.hasSelector(doc, "#SITE_CONTAINER"):
		return offerscan.PlatformWix
	case strings.Contains(lower, "static1.squarespace.com"):
		return offerscan.PlatformSquarespace
	case strings.Contains(lower, "assets.website-files.com") || d.hasSelector(doc, "[data-wf-site]"):
		return offerscan.PlatformWebflow
	}

	// A bare React mount point with an empty body signals a client-side
	// rendered app.
	if d.hasSelector(doc, "#root") || d.hasSelector(doc, "#__next") {
		if normalizeSpace(doc.Find("body").Text()) == "" {
			return offerscan.PlatformReactApp
		}
	}

	return offerscan.PlatformUnknown
}

// RequiresJS indicates whether a platform needs JavaScript rendering.
func (d *Detector) RequiresJS(platform offerscan.Platform) (requires bool, known bool) {
	switch platform {
	case offerscan.PlatformWix, offerscan.PlatformSquarespace, offerscan.PlatformReactApp:
		return true, true
	case offerscan.PlatformWordPress, offerscan.PlatformShopify, offerscan.PlatformWebflow:
		return false, true
	}
	return false, false
}

// detectFromMetaGenerator checks the meta generator tag for platform
// identification.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) offerscan.Platform {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	if generator == "" {
		return offerscan.PlatformUnknown
	}

	switch {
	case strings.Contains(generator, "wordpress"):
		return offerscan.PlatformWordPress
	case strings.Contains(generator, "shopify"):
		return offerscan.PlatformShopify
	case strings.Contains(generator, "wix"):
		return offerscan.PlatformWix
	case strings.Contains(generator, "squarespace"):
		return offerscan.PlatformSquarespace
	case strings.Contains(generator, "webflow"):
		return offerscan.PlatformWebflow
	}

	return offerscan.PlatformUnknown
}

// hasSelector checks if the document contains at least one element
// matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
