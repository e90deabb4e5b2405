package offerscan

// Link is a hyperlink found on a page, with the anchor text and the area
// of the page it was found in.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`

	// Source labels where on the page the link appeared:
	// "nav", "content", "footer".
	Source string `json:"source,omitempty"`
}

// PriceBlock is a pricing-table-like structure: a repeated sibling block
// with a name plus a price or feature list. Price blocks are strong
// structural evidence of an offering.
type PriceBlock struct {
	Name     string   `json:"name"`
	Price    string   `json:"price,omitempty"`
	Features []string `json:"features,omitempty"`
}

// SiteData is the structured content of a fetched page. It is the input
// shape the scan pipeline works with; the fetch collaborator produces it
// from raw HTML.
type SiteData struct {
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	Navigation  []Link            `json:"navigation"`
	Links       []Link            `json:"links"`
	Headings    []string          `json:"headings"`
	Sections    []string          `json:"sections"`
	MainText    string            `json:"mainText"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	PriceBlocks []PriceBlock      `json:"priceBlocks,omitempty"`
}

// Validate returns an error if the site data is unusable as scan input.
func (s *SiteData) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "site URL required")
	}
	return nil
}

// SiteParser turns raw HTML into structured SiteData.
// The baseURL is used to resolve relative links.
type SiteParser interface {
	Parse(html string, baseURL string) (*SiteData, error)
}
