package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScan(siteURL string) *offerscan.Scan {
	return &offerscan.Scan{
		SiteURL:      siteURL,
		BusinessName: "Acme Insurance",
		Result: offerscan.ScanResult{
			Products: []offerscan.MergedProduct{
				{
					Name:        "Home Insurance",
					Description: "Coverage for your house.",
					Category:    "core",
					Confidence:  95,
					Strategies:  []offerscan.Strategy{offerscan.StrategyStructural, offerscan.StrategySemantic},
					Evidence:    []string{"navigation: /home-insurance"},
				},
				{
					Name:       "Umbrella Insurance",
					Category:   "addon",
					Confidence: 65,
					Strategies: []offerscan.Strategy{offerscan.StrategySemantic},
				},
			},
			Categories: []string{"addon", "core"},
			Strategies: map[offerscan.Strategy]offerscan.StrategyReport{
				offerscan.StrategyStructural: {Enabled: true, Found: 2},
				offerscan.StrategyCrossPage:  {Enabled: true, Found: 0},
				offerscan.StrategySemantic:   {Enabled: true, Found: 2},
			},
			Merge: offerscan.MergeStats{TotalBeforeMerge: 4, DuplicatesRemoved: 2, FinalCount: 2},
		},
	}
}

func TestScanService_CreateScan(t *testing.T) {
	t.Parallel()

	t.Run("creates scan with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanService(db)
		ctx := context.Background()

		scan := testScan("https://acme.example.com")

		err := svc.CreateScan(ctx, scan)
		require.NoError(t, err)

		assert.NotEmpty(t, scan.ID, "ID should be generated")
		assert.False(t, scan.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns error for invalid scan", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanService(db)
		ctx := context.Background()

		scan := &offerscan.Scan{} // missing site URL

		err := svc.CreateScan(ctx, scan)
		require.Error(t, err)
		assert.Equal(t, offerscan.EINVALID, offerscan.ErrorCode(err))
	})
}

func TestScanService_FindScanByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips scan with products", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanService(db)
		ctx := context.Background()

		scan := testScan("https://acme.example.com")
		require.NoError(t, svc.CreateScan(ctx, scan))

		got, err := svc.FindScanByID(ctx, scan.ID)
		require.NoError(t, err)

		assert.Equal(t, scan.SiteURL, got.SiteURL)
		assert.Equal(t, scan.BusinessName, got.BusinessName)
		assert.Equal(t, scan.Result.Categories, got.Result.Categories)
		assert.Equal(t, scan.Result.Strategies, got.Result.Strategies)
		assert.Equal(t, scan.Result.Merge, got.Result.Merge)

		require.Len(t, got.Result.Products, 2)
		assert.Equal(t, "Home Insurance", got.Result.Products[0].Name)
		assert.Equal(t, []offerscan.Strategy{offerscan.StrategyStructural, offerscan.StrategySemantic},
			got.Result.Products[0].Strategies)
		assert.Equal(t, []string{"navigation: /home-insurance"}, got.Result.Products[0].Evidence)
		assert.Equal(t, "Umbrella Insurance", got.Result.Products[1].Name)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanService(db)

		_, err := svc.FindScanByID(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, offerscan.ENOTFOUND, offerscan.ErrorCode(err))
	})
}

func TestScanService_FindScans(t *testing.T) {
	t.Parallel()

	t.Run("filters by site URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateScan(ctx, testScan("https://acme.example.com")))
		require.NoError(t, svc.CreateScan(ctx, testScan("https://other.example.com")))

		siteURL := "https://acme.example.com"
		scans, err := svc.FindScans(ctx, offerscan.ScanFilter{SiteURL: &siteURL})
		require.NoError(t, err)

		require.Len(t, scans, 1)
		assert.Equal(t, siteURL, scans[0].SiteURL)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			require.NoError(t, svc.CreateScan(ctx, testScan(fmt.Sprintf("https://site%d.example.com", i))))
		}

		scans, err := svc.FindScans(ctx, offerscan.ScanFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, scans, 2)
	})

	t.Run("returns empty list when no scans", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanService(db)

		scans, err := svc.FindScans(context.Background(), offerscan.ScanFilter{})
		require.NoError(t, err)
		assert.Empty(t, scans)
	})
}

func TestScanService_DeleteScan(t *testing.T) {
	t.Parallel()

	t.Run("deletes scan and its products", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanService(db)
		ctx := context.Background()

		scan := testScan("https://acme.example.com")
		require.NoError(t, svc.CreateScan(ctx, scan))

		require.NoError(t, svc.DeleteScan(ctx, scan.ID))

		_, err := svc.FindScanByID(ctx, scan.ID)
		require.Error(t, err)
		assert.Equal(t, offerscan.ENOTFOUND, offerscan.ErrorCode(err))

		var productCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scan_products WHERE scan_id = ?", scan.ID).Scan(&productCount)
		require.NoError(t, err)
		assert.Zero(t, productCount, "products should cascade delete")
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewScanService(db)

		err := svc.DeleteScan(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, offerscan.ENOTFOUND, offerscan.ErrorCode(err))
	})
}
