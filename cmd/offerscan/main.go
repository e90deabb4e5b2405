// Command offerscan scans business websites for the products and
// services they offer.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/config"
	"github.com/fwojciec/offerscan/fs"
	"github.com/fwojciec/offerscan/gemini"
	"github.com/fwojciec/offerscan/goquery"
	offerhttp "github.com/fwojciec/offerscan/http"
	"github.com/fwojciec/offerscan/htmltomarkdown"
	"github.com/fwojciec/offerscan/mem"
	"github.com/fwojciec/offerscan/rod"
	"github.com/fwojciec/offerscan/scan"
	offerslog "github.com/fwojciec/offerscan/slog"
	"github.com/fwojciec/offerscan/sqlite"
	"github.com/fwojciec/offerscan/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Scan storage, exposed for end-to-end testing.
	ScanService offerscan.ScanService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Precedence: OFFERSCAN_DB_PATH, then config file, then default.
	if cfg.DBPath != "" && os.Getenv("OFFERSCAN_DB_PATH") == "" {
		m.DBPath = cfg.DBPath
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Config: cfg,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("offerscan"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'offerscan --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set OFFERSCAN_DB_PATH to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ScanService = sqlite.NewScanService(m.DB)
	deps.DB = m.DB
	deps.Scans = m.ScanService
	deps.Reports = fs.NewReportWriter(".")

	// Commands that run scans need the full pipeline wired.
	if cmd == "scan" || cmd == "serve" {
		scanner, cleanup, err := m.buildScanner(ctx, cli, cfg, logger, stderr)
		if err != nil {
			return err
		}
		defer cleanup()
		deps.Scanner = scanner
	}

	return kongCtx.Run(deps)
}

// buildScanner wires the scan pipeline: fetcher (HTTP or browser),
// parser, extractors, cache, rate limiter and the semantic generator.
// The returned cleanup closes the fetcher.
func (m *Main) buildScanner(ctx context.Context, cli *CLI, cfg *config.Config, logger *slog.Logger, stderr io.Writer) (*scan.Scanner, func(), error) {
	httpFetcher := offerhttp.NewFetcher()

	var fetcher offerscan.Fetcher = httpFetcher
	cleanup := func() { httpFetcher.Close() }

	if cli.Scan.Browser {
		rodFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
		cleanup = func() {
			rodFetcher.Close()
			httpFetcher.Close()
		}
	} else if cli.Scan.URL != "" {
		// Probe the main page: JS-rendered platforms get the browser
		// fetcher, everything else stays on plain HTTP.
		probed, probeCleanup := probeFetcher(ctx, cli.Scan.URL, httpFetcher, goquery.NewDetector(), stderr)
		fetcher = probed
		prev := cleanup
		cleanup = func() {
			probeCleanup()
			prev()
		}
	}

	scanner := &scan.Scanner{
		Fetcher:     offerslog.NewLoggingFetcher(fetcher, logger),
		Parser:      goquery.NewParser(),
		Extractor:   trafilatura.NewExtractor(),
		Converter:   htmltomarkdown.NewConverter(),
		Sitemaps:    offerhttp.NewSitemapService(nil),
		Cache:       mem.NewPageCache(mem.WithTTL(cfg.Scan.CacheTTL)),
		RateLimiter: scan.NewDomainLimiter(cfg.Scan.RequestsPerSecond),
		Logger:      logger,
	}

	if apiKey := geminiAPIKey(cfg); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		scanner.Generator = offerslog.NewLoggingGenerator(gemini.NewGenerator(client), logger)
	} else if !cli.Scan.NoSemantic {
		fmt.Fprintln(stderr, "GEMINI_API_KEY not set; the semantic strategy is disabled. Get a key at https://aistudio.google.com/apikey")
	}

	return scanner, cleanup, nil
}

// probeFetcher fetches the main page over HTTP and inspects it for a
// JS-rendered platform. Returns the fetcher to use and a cleanup func.
// Always returns a usable fetcher; probing never fails a scan.
func probeFetcher(ctx context.Context, siteURL string, httpFetcher offerscan.Fetcher, prober offerscan.Prober, stderr io.Writer) (offerscan.Fetcher, func()) {
	noop := func() {}

	html, err := httpFetcher.Fetch(ctx, siteURL)
	if err != nil {
		return httpFetcher, noop
	}

	platform := prober.Detect(html)
	requiresJS, known := prober.RequiresJS(platform)
	if !known || !requiresJS {
		return httpFetcher, noop
	}

	rodFetcher, err := rod.NewFetcher()
	if err != nil {
		fmt.Fprintf(stderr, "Site looks JS-rendered (%s) but the browser failed to start; falling back to HTTP\n", platform)
		return httpFetcher, noop
	}
	return rodFetcher, func() { rodFetcher.Close() }
}

func geminiAPIKey(cfg *config.Config) string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return cfg.Gemini.APIKey
}

func defaultDBPath() string {
	if path := os.Getenv("OFFERSCAN_DB_PATH"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "offerscan.db"
	}
	dir := filepath.Join(home, ".offerscan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "offerscan.db")
}
