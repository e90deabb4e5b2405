package offerscan

// MergedProduct is the final output entity: a deduplicated,
// confidence-scored product or service assembled from one or more
// candidates across strategies.
type MergedProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Confidence  float64 `json:"confidence"`

	// Strategies lists the distinct strategies that contributed a
	// candidate to this product. Never empty.
	Strategies []Strategy `json:"strategies"`

	// Evidence is the deduplicated union of supporting snippets from
	// all merged candidates.
	Evidence []string `json:"evidence,omitempty"`
}

// StrategyReport describes one strategy's participation in a scan.
type StrategyReport struct {
	Enabled bool `json:"enabled"`
	Found   int  `json:"productsFound"`
}

// MergeStats summarizes the merger's work for one scan.
type MergeStats struct {
	TotalBeforeMerge  int `json:"totalBeforeMerge"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`
	FinalCount        int `json:"finalCount"`
}

// ScanResult is the complete outcome of one scan run. It is always
// well-formed: collaborator failures degrade individual strategies to
// empty rather than producing a partial or nil result.
type ScanResult struct {
	Products   []MergedProduct             `json:"products"`
	Categories []string                    `json:"categories"`
	Strategies map[Strategy]StrategyReport `json:"scanStrategies"`
	Merge      MergeStats                  `json:"mergeStats"`
}
