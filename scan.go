package offerscan

import (
	"context"
	"time"
)

// Scan is a persisted scan run: the site that was scanned and the merged
// products it produced. The pipeline itself returns in-memory results;
// saving them is the caller's responsibility.
type Scan struct {
	ID           string     `json:"id"`
	SiteURL      string     `json:"siteUrl"`
	BusinessName string     `json:"businessName"`
	CreatedAt    time.Time  `json:"createdAt"`
	Result       ScanResult `json:"result"`
}

// Validate returns an error if the scan contains invalid fields.
func (s *Scan) Validate() error {
	if s.SiteURL == "" {
		return Errorf(EINVALID, "scan site URL required")
	}
	return nil
}

// ScanService represents a service for managing persisted scans.
type ScanService interface {
	// CreateScan persists a new scan with its products.
	CreateScan(ctx context.Context, scan *Scan) error

	// FindScanByID retrieves a scan by ID, including its products.
	// Returns ENOTFOUND if the scan does not exist.
	FindScanByID(ctx context.Context, id string) (*Scan, error)

	// FindScans retrieves scans matching the filter, newest first.
	FindScans(ctx context.Context, filter ScanFilter) ([]*Scan, error)

	// DeleteScan permanently removes a scan and its products.
	// Returns ENOTFOUND if the scan does not exist.
	DeleteScan(ctx context.Context, id string) error
}

// ScanFilter represents a filter for FindScans.
type ScanFilter struct {
	ID      *string `json:"id"`
	SiteURL *string `json:"siteUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
