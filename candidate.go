package offerscan

// Strategy identifies which extraction method produced a candidate.
type Strategy string

// Extraction strategies. Each runs independently over the aggregated site
// content; the merger boosts confidence when multiple strategies agree.
const (
	StrategyStructural Strategy = "structural"
	StrategyCrossPage  Strategy = "cross-page"
	StrategySemantic   Strategy = "semantic"
)

// Candidate is a single proposed product or service extracted by one
// strategy. Candidates are transient: they exist only between extraction
// and merging within a single scan run.
type Candidate struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Source      Strategy `json:"source"`
	Evidence    string   `json:"evidence,omitempty"`

	// Confidence is strategy-assigned, in the range 0-100.
	Confidence float64 `json:"confidence"`
}

// Validate returns an error if the candidate contains invalid fields.
// This checks structural validity only; quality filtering is the
// validator's concern.
func (c *Candidate) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "candidate name required")
	}
	if c.Source == "" {
		return Errorf(EINVALID, "candidate source strategy required")
	}
	if c.Confidence < 0 || c.Confidence > 100 {
		return Errorf(EINVALID, "candidate confidence must be in [0,100], got %v", c.Confidence)
	}
	return nil
}
