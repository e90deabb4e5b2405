package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/config"
	"github.com/fwojciec/offerscan/fs"
	"github.com/fwojciec/offerscan/scan"
	"github.com/fwojciec/offerscan/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config  *config.Config
	DB      *sqlite.DB
	Scans   offerscan.ScanService
	Scanner *scan.Scanner
	Reports *fs.ReportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scan   ScanCmd   `cmd:"" help:"Scan a website for products and services"`
	List   ListCmd   `cmd:"" help:"List saved scans"`
	Show   ShowCmd   `cmd:"" help:"Show a saved scan's products"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved scan"`
	Export ExportCmd `cmd:"" help:"Export a saved scan as a markdown report"`
	Serve  ServeCmd  `cmd:"" help:"Serve the scan API over HTTP"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	URL      string `arg:"" help:"Website URL to scan"`
	Business string `short:"b" help:"Business name, for the semantic strategy"`

	SinglePage  bool    `help:"Skip page discovery and the cross-page strategy"`
	FollowLinks bool    `help:"Follow links found on discovered pages"`
	MaxPages    int     `short:"m" default:"5" help:"Maximum additional pages to fetch"`
	NoDeep      bool    `help:"Disable the structural strategy"`
	NoSemantic  bool    `help:"Disable the semantic strategy"`
	Threshold   float64 `short:"t" default:"0.85" help:"Deduplication similarity threshold (0-1)"`
	Browser     bool    `help:"Force browser rendering instead of auto-detection"`
	NoSave      bool    `help:"Print results without saving the scan"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Site  string `help:"Filter by site URL"`
	Limit int    `default:"20" help:"Maximum scans to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Scan ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Scan ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID  string `arg:"" help:"Scan ID"`
	Dir string `short:"d" default:"." help:"Directory to write the report to"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port string `short:"p" help:"Port to listen on (defaults to config)"`
}
