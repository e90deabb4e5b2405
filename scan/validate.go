package scan

import (
	"regexp"
	"strings"
)

// ValidatorConfig holds the closed word sets and limits the validator
// checks candidate names against. Use DefaultValidatorConfig unless a
// deployment needs domain-specific tuning.
type ValidatorConfig struct {
	// MaxNameWords is the longest plausible product name, in words.
	MaxNameWords int

	// FillerWords reject a name by its first word: discourse, navigation
	// and location openers that never start a product name.
	FillerWords []string

	// NavPhrases reject a name containing navigation chrome anywhere.
	NavPhrases []string

	// RoleWords reject a name ending in a personnel role noun.
	RoleWords []string

	// SeniorityWords reject a name opening with a seniority marker.
	SeniorityWords []string

	// CLevelTitles reject a name containing a C-level abbreviation.
	CLevelTitles []string

	// StrongSuffixes are product-noun endings that override the
	// full-sentence rejection for longer names.
	StrongSuffixes []string
}

// DefaultValidatorConfig returns the standard rule word sets.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MaxNameWords: 12,
		FillerWords: []string{
			"here", "our", "your", "we", "from", "with", "faq", "about",
			"the", "this", "that", "how", "why", "what", "when", "where",
			"get", "click", "learn", "read", "more", "welcome", "contact",
			"thanks", "thank",
			// generic place names
			"texas", "california", "florida", "chicago", "london", "usa",
			"america",
		},
		NavPhrases: []string{
			"quick links", "frequently asked", "read more", "learn more",
			"click here", "sign up", "log in", "login", "privacy policy",
			"terms of", "all rights reserved", "site map", "back to top",
		},
		RoleWords: []string{
			"manager", "director", "coordinator", "officer", "specialist",
			"supervisor", "executive", "assistant", "representative",
			"recruiter", "intern", "associate",
		},
		SeniorityWords: []string{"senior", "junior", "lead", "chief", "head"},
		CLevelTitles:   []string{"ceo", "cfo", "cto", "coo", "cmo", "cio", "vp"},
		StrongSuffixes: []string{
			"insurance", "coverage", "plan", "plans", "package", "packages",
			"service", "services", "program", "programs", "solution",
			"solutions", "consulting", "management", "support", "design",
			"development", "marketing", "seo",
		},
	}
}

var (
	// First-person plural plus a capability verb, or a possessive trait
	// noun phrase. Both are marketing copy, not product names.
	marketingVerbRe  = regexp.MustCompile(`^(we|our company|our team)\s+(specialize|specialise|offer|provide|deliver|help|serve|strive|believe|pride)`)
	marketingTraitRe = regexp.MustCompile(`^our\s+(team|expertise|commitment|mission|goal|passion|promise|staff|people|approach)\b`)

	// Trailing preposition or conjunction marks a clipped clause.
	trailingWordRe = regexp.MustCompile(`\b(from|and|or|with|to|of|for|in|on|at|by|the|a|an)$`)

	// Finite verb forms that mark a full sentence rather than a name.
	finiteVerbRe = regexp.MustCompile(`\b(is|are|was|were|be|been|being|am|can|could|will|would|shall|should|may|might|must|have|has|had|do|does|did)\b`)

	sentencePunctRe = regexp.MustCompile(`[.!?]`)
)

// Validator applies the rule-based quality gate to candidate names.
// It is pure, synchronous and deterministic: no network, no LLM calls,
// and candidate order has no effect on any verdict.
type Validator struct {
	cfg      ValidatorConfig
	fillers  map[string]bool
	roles    map[string]bool
	seniors  map[string]bool
	clevel   map[string]bool
	suffixes map[string]bool
}

// NewValidator creates a Validator from the given configuration.
func NewValidator(cfg ValidatorConfig) *Validator {
	return &Validator{
		cfg:      cfg,
		fillers:  toSet(cfg.FillerWords),
		roles:    toSet(cfg.RoleWords),
		seniors:  toSet(cfg.SeniorityWords),
		clevel:   toSet(cfg.CLevelTitles),
		suffixes: toSet(cfg.StrongSuffixes),
	}
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

// Validate applies the rejection rules in order; the first matching rule
// wins. It returns true for a valid name, or false with the rejection
// reason.
func (v *Validator) Validate(name string) (bool, string) {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	words := strings.Fields(lower)

	// Rule 1: empty or implausibly long.
	if trimmed == "" {
		return false, "empty name"
	}
	if len(words) > v.cfg.MaxNameWords {
		return false, "too long to be a product name"
	}

	// Rule 2: discourse/navigation/location opener.
	if v.fillers[stripWord(words[0])] {
		return false, "non-product opening word"
	}

	// Rule 3: marketing phrase.
	if marketingVerbRe.MatchString(lower) || marketingTraitRe.MatchString(lower) {
		return false, "marketing phrase, not a product"
	}

	// Rule 4: ends mid-clause.
	if strings.HasSuffix(trimmed, "...") || strings.HasSuffix(trimmed, "…") ||
		strings.HasSuffix(trimmed, ",") || trailingWordRe.MatchString(lower) {
		return false, "incomplete sentence fragment"
	}

	// Rule 5: navigation chrome anywhere in the name.
	for _, phrase := range v.cfg.NavPhrases {
		if strings.Contains(lower, phrase) {
			return false, "navigation chrome"
		}
	}

	// Rule 6: personnel title.
	if v.roles[stripWord(words[len(words)-1])] || v.seniors[stripWord(words[0])] {
		return false, "personnel title, not an offering"
	}
	for _, w := range words {
		if v.clevel[stripWord(w)] {
			return false, "personnel title, not an offering"
		}
	}

	// Rule 7: multiple sentence-terminal punctuation marks.
	if len(sentencePunctRe.FindAllString(trimmed, -1)) >= 2 {
		return false, "list or header fragment, not a single product"
	}

	// Rule 8: full sentence. A strong product-noun suffix overrides the
	// finite-verb rejection.
	if len(words) >= 4 && finiteVerbRe.MatchString(lower) {
		if !v.suffixes[stripWord(words[len(words)-1])] {
			return false, "full sentence, not a product name"
		}
	}

	return true, ""
}

// stripWord removes surrounding punctuation from a word for set lookups.
func stripWord(w string) string {
	return strings.Trim(w, ".,:;!?()[]\"'")
}
