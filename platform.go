package offerscan

// Platform identifies the website platform a business site is built on.
type Platform string

// Detected website platforms.
const (
	PlatformUnknown     Platform = ""
	PlatformWordPress   Platform = "wordpress"
	PlatformShopify     Platform = "shopify"
	PlatformWix         Platform = "wix"
	PlatformSquarespace Platform = "squarespace"
	PlatformWebflow     Platform = "webflow"
	PlatformReactApp    Platform = "react-app"
)

// PlatformDetector identifies website platforms from HTML.
type PlatformDetector interface {
	// Detect analyzes HTML and returns the identified platform.
	// Returns PlatformUnknown if the platform cannot be determined.
	Detect(html string) Platform
}

// Prober identifies website platforms and determines their rendering
// requirements, used to pick between plain HTTP and browser fetching.
type Prober interface {
	PlatformDetector

	// RequiresJS indicates whether a platform needs JavaScript rendering
	// to produce its content. Returns (requires, known) where known is
	// false for unrecognized platforms.
	RequiresJS(platform Platform) (requires bool, known bool)
}
