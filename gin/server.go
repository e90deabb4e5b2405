// Package gin exposes scans over an HTTP API.
package gin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/scan"
	"github.com/gin-gonic/gin"
)

// Runner runs a full scan against a site URL. *scan.Scanner satisfies it.
type Runner interface {
	ScanURL(ctx context.Context, siteURL, businessName string, opts scan.Options) (*offerscan.ScanResult, error)
}

// Ensure the pipeline scanner satisfies Runner.
var _ Runner = (*scan.Scanner)(nil)

// Server serves the scan API.
type Server struct {
	runner Runner
	scans  offerscan.ScanService
	logger *slog.Logger

	router *gin.Engine
	http   *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithReleaseMode puts gin into release mode, silencing debug output.
func WithReleaseMode() ServerOption {
	return func(s *Server) {
		gin.SetMode(gin.ReleaseMode)
	}
}

// NewServer creates a new Server wired to a scan runner and scan storage.
func NewServer(runner Runner, scans offerscan.ScanService, opts ...ServerOption) *Server {
	s := &Server{
		runner: runner,
		scans:  scans,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))
	router.Use(corsMiddleware())

	router.GET("/health", s.handleHealth)

	v1 := router.Group("/api/v1")
	{
		scans := v1.Group("/scans")
		{
			scans.POST("", s.handleCreateScan)
			scans.GET("", s.handleListScans)
			scans.GET("/:id", s.handleGetScan)
			scans.DELETE("/:id", s.handleDeleteScan)
		}
	}

	s.router = router
	return s
}

// Router returns the underlying gin engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// ListenAndServe starts the server on addr and blocks until it stops.
func (s *Server) ListenAndServe(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("server listening", "addr", addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
