// Package fs exports scan results as markdown reports.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/offerscan"
)

// ReportFileName derives a report file name from a scan's site URL and
// creation date. Example: https://www.acme.example.com scanned on
// 2026-08-31 → acme.example.com-2026-08-31.md
func ReportFileName(scan *offerscan.Scan) (string, error) {
	u, err := url.Parse(scan.SiteURL)
	if err != nil {
		return "", err
	}

	host := strings.TrimPrefix(u.Host, "www.")
	if host == "" {
		return "", offerscan.Errorf(offerscan.EINVALID, "site URL has no host: %q", scan.SiteURL)
	}

	return fmt.Sprintf("%s-%s.md", host, scan.CreatedAt.Format("2006-01-02")), nil
}

// FormatReport formats a scan as a markdown report with YAML frontmatter.
func FormatReport(scan *offerscan.Scan) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("site: ")
	b.WriteString(scan.SiteURL)
	if scan.BusinessName != "" {
		b.WriteString("\nbusiness: ")
		b.WriteString(scan.BusinessName)
	}
	b.WriteString("\nscanned: ")
	b.WriteString(scan.CreatedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")

	fmt.Fprintf(&b, "# Products and services (%d)\n\n", len(scan.Result.Products))

	if formatted := offerscan.FormatProducts(scan.Result.Products); formatted != "" {
		b.WriteString(formatted)
		b.WriteString("\n")
	} else {
		b.WriteString("No products found.\n")
	}

	if len(scan.Result.Categories) > 0 {
		b.WriteString("\n## Categories\n\n")
		b.WriteString(strings.Join(scan.Result.Categories, ", "))
		b.WriteString("\n")
	}

	b.WriteString("\n## Scan summary\n\n")
	fmt.Fprintf(&b, "- candidates before merge: %d\n", scan.Result.Merge.TotalBeforeMerge)
	fmt.Fprintf(&b, "- duplicates removed: %d\n", scan.Result.Merge.DuplicatesRemoved)
	fmt.Fprintf(&b, "- final products: %d\n", scan.Result.Merge.FinalCount)
	for _, strategy := range []offerscan.Strategy{offerscan.StrategyStructural, offerscan.StrategyCrossPage, offerscan.StrategySemantic} {
		report, ok := scan.Result.Strategies[strategy]
		if !ok {
			continue
		}
		state := "disabled"
		if report.Enabled {
			state = fmt.Sprintf("found %d", report.Found)
		}
		fmt.Fprintf(&b, "- %s: %s\n", strategy, state)
	}

	return b.String()
}

// ReportWriter writes scan reports as markdown files to a directory.
type ReportWriter struct {
	baseDir string
}

// NewReportWriter creates a new ReportWriter that writes to baseDir.
func NewReportWriter(baseDir string) *ReportWriter {
	return &ReportWriter{baseDir: baseDir}
}

// WriteReport writes a scan's report to disk and returns the file path.
// The file is written to a temporary name first and renamed into place,
// so a concurrent reader never sees a partial report.
func (w *ReportWriter) WriteReport(scan *offerscan.Scan) (string, error) {
	if err := scan.Validate(); err != nil {
		return "", err
	}

	name, err := ReportFileName(scan)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, name)
	tmpPath := fullPath + ".tmp"

	if err := os.WriteFile(tmpPath, []byte(FormatReport(scan)), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	return fullPath, nil
}
