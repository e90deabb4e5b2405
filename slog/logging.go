// Package slog provides logging decorators for pipeline collaborators.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/offerscan"
)

// Ensure decorators implement the interfaces they wrap.
var (
	_ offerscan.Fetcher            = (*LoggingFetcher)(nil)
	_ offerscan.CandidateGenerator = (*LoggingGenerator)(nil)
)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   offerscan.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next offerscan.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingGenerator wraps a CandidateGenerator with per-call logging.
type LoggingGenerator struct {
	next   offerscan.CandidateGenerator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next offerscan.CandidateGenerator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate logs the call and delegates to the wrapped generator.
func (g *LoggingGenerator) Generate(ctx context.Context, req offerscan.GenerateRequest) (candidates []offerscan.Candidate, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"business", req.BusinessName,
			"corpus_bytes", len(req.Corpus),
			"candidates", len(candidates),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, req)
}
