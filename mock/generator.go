package mock

import (
	"context"

	"github.com/fwojciec/offerscan"
)

var _ offerscan.CandidateGenerator = (*CandidateGenerator)(nil)

// CandidateGenerator is a mock implementation of offerscan.CandidateGenerator.
type CandidateGenerator struct {
	GenerateFn func(ctx context.Context, req offerscan.GenerateRequest) ([]offerscan.Candidate, error)
}

func (g *CandidateGenerator) Generate(ctx context.Context, req offerscan.GenerateRequest) ([]offerscan.Candidate, error) {
	return g.GenerateFn(ctx, req)
}
