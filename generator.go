package offerscan

import "context"

// GenerateRequest carries the input for a semantic extraction call.
type GenerateRequest struct {
	// BusinessName gives the model context about whose site it is reading.
	BusinessName string

	// Corpus is the combined site content, already truncated to the
	// collaborator's size budget by the caller.
	Corpus string
}

// CandidateGenerator identifies products and services in site content
// using an external text-generation collaborator.
//
// This is the only pipeline collaborator permitted to fail outright
// (timeout, quota, malformed response). Callers treat any error as "no
// candidates" and continue with the remaining strategies.
type CandidateGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) ([]Candidate, error)
}
