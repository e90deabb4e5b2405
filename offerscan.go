// Package offerscan provides a product and service discovery pipeline for
// business websites. It discovers likely offering pages on a site, aggregates
// their textual content, runs three independent extraction strategies
// (structural pattern-matching, cross-page discovery, semantic LLM analysis),
// validates candidates with rule-based checks, and merges agreeing candidates
// into a confidence-ranked product list.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package offerscan
