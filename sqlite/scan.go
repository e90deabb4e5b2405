package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/offerscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ offerscan.ScanService = (*ScanService)(nil)

// ScanService implements offerscan.ScanService using SQLite.
type ScanService struct {
	db *DB
}

// NewScanService creates a new ScanService.
func NewScanService(db *DB) *ScanService {
	return &ScanService{db: db}
}

// CreateScan persists a new scan with its products.
func (s *ScanService) CreateScan(ctx context.Context, scan *offerscan.Scan) error {
	if err := scan.Validate(); err != nil {
		return err
	}

	scan.ID = uuid.New().String()
	scan.CreatedAt = time.Now().UTC()

	categories, err := json.Marshal(scan.Result.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	strategies, err := json.Marshal(scan.Result.Strategies)
	if err != nil {
		return fmt.Errorf("failed to encode strategies: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scans (id, site_url, business_name, categories, strategies,
			total_before_merge, duplicates_removed, final_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, scan.ID, scan.SiteURL, scan.BusinessName, string(categories), string(strategies),
		scan.Result.Merge.TotalBeforeMerge, scan.Result.Merge.DuplicatesRemoved,
		scan.Result.Merge.FinalCount, scan.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, product := range scan.Result.Products {
		if err := s.insertProduct(ctx, scan.ID, i, product); err != nil {
			return err
		}
	}

	return nil
}

func (s *ScanService) insertProduct(ctx context.Context, scanID string, position int, product offerscan.MergedProduct) error {
	strategies, err := json.Marshal(product.Strategies)
	if err != nil {
		return fmt.Errorf("failed to encode product strategies: %w", err)
	}
	evidence, err := json.Marshal(product.Evidence)
	if err != nil {
		return fmt.Errorf("failed to encode product evidence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scan_products (id, scan_id, name, description, category, confidence, strategies, evidence, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), scanID, product.Name, product.Description, product.Category,
		product.Confidence, string(strategies), string(evidence), position)

	return err
}

// FindScanByID retrieves a scan by ID, including its products.
func (s *ScanService) FindScanByID(ctx context.Context, id string) (*offerscan.Scan, error) {
	scan, err := s.scanRow(s.db.QueryRowContext(ctx, `
		SELECT id, site_url, business_name, categories, strategies,
			total_before_merge, duplicates_removed, final_count, created_at
		FROM scans
		WHERE id = ?
	`, id))
	if err != nil {
		return nil, err
	}

	if err := s.attachProducts(ctx, scan); err != nil {
		return nil, err
	}

	return scan, nil
}

// FindScans retrieves scans matching the filter, newest first.
func (s *ScanService) FindScans(ctx context.Context, filter offerscan.ScanFilter) ([]*offerscan.Scan, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, site_url, business_name, categories, strategies,
		total_before_merge, duplicates_removed, final_count, created_at
		FROM scans WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SiteURL != nil {
		query.WriteString(" AND site_url = ?")
		args = append(args, *filter.SiteURL)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []*offerscan.Scan
	for rows.Next() {
		scan, err := s.scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, scan := range scans {
		if err := s.attachProducts(ctx, scan); err != nil {
			return nil, err
		}
	}

	return scans, nil
}

// DeleteScan permanently removes a scan and its products.
func (s *ScanService) DeleteScan(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM scans WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return offerscan.Errorf(offerscan.ENOTFOUND, "scan not found")
	}

	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanRow.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRow reads one scans-table row into an offerscan.Scan without
// its products.
func (s *ScanService) scanRow(row rowScanner) (*offerscan.Scan, error) {
	var scan offerscan.Scan
	var categories, strategies, createdAt string

	err := row.Scan(&scan.ID, &scan.SiteURL, &scan.BusinessName, &categories, &strategies,
		&scan.Result.Merge.TotalBeforeMerge, &scan.Result.Merge.DuplicatesRemoved,
		&scan.Result.Merge.FinalCount, &createdAt)
	if err == sql.ErrNoRows {
		return nil, offerscan.Errorf(offerscan.ENOTFOUND, "scan not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(categories), &scan.Result.Categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if err := json.Unmarshal([]byte(strategies), &scan.Result.Strategies); err != nil {
		return nil, fmt.Errorf("failed to decode strategies: %w", err)
	}

	scan.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &scan, nil
}

// attachProducts loads a scan's products in stored order.
func (s *ScanService) attachProducts(ctx context.Context, scan *offerscan.Scan) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, category, confidence, strategies, evidence
		FROM scan_products
		WHERE scan_id = ?
		ORDER BY position ASC
	`, scan.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var product offerscan.MergedProduct
		var strategies, evidence string

		if err := rows.Scan(&product.Name, &product.Description, &product.Category,
			&product.Confidence, &strategies, &evidence); err != nil {
			return err
		}

		if err := json.Unmarshal([]byte(strategies), &product.Strategies); err != nil {
			return fmt.Errorf("failed to decode product strategies: %w", err)
		}
		if err := json.Unmarshal([]byte(evidence), &product.Evidence); err != nil {
			return fmt.Errorf("failed to decode product evidence: %w", err)
		}

		scan.Result.Products = append(scan.Result.Products, product)
	}

	return rows.Err()
}
