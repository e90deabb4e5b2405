package main

import (
	"fmt"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/scan"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	opts := scan.Options{
		MultiPage:              !c.SinglePage,
		FollowLinks:            c.FollowLinks,
		MaxAdditionalPages:     c.MaxPages,
		DeepScan:               !c.NoDeep,
		SemanticScan:           !c.NoSemantic && deps.Scanner.Generator != nil,
		DeduplicationThreshold: c.Threshold,
	}

	result, err := deps.Scanner.ScanURL(deps.Ctx, c.URL, c.Business, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offerscan.ErrorMessage(err))
		return err
	}

	printResult(deps, c.URL, result)

	if c.NoSave {
		return nil
	}

	record := &offerscan.Scan{
		SiteURL:      c.URL,
		BusinessName: c.Business,
		Result:       *result,
	}
	if err := deps.Scans.CreateScan(deps.Ctx, record); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offerscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nSaved scan %s\n", record.ID)
	return nil
}

// printResult writes a scan result to stdout.
func printResult(deps *Dependencies, siteURL string, result *offerscan.ScanResult) {
	fmt.Fprintf(deps.Stdout, "Found %d products/services on %s\n\n", len(result.Products), siteURL)

	if formatted := offerscan.FormatProducts(result.Products); formatted != "" {
		fmt.Fprintln(deps.Stdout, formatted)
	} else {
		fmt.Fprintln(deps.Stdout, "No products found.")
	}

	fmt.Fprintf(deps.Stdout, "\nCandidates before merge: %d, duplicates removed: %d\n",
		result.Merge.TotalBeforeMerge, result.Merge.DuplicatesRemoved)
	for _, strategy := range []offerscan.Strategy{offerscan.StrategyStructural, offerscan.StrategyCrossPage, offerscan.StrategySemantic} {
		report := result.Strategies[strategy]
		if !report.Enabled {
			fmt.Fprintf(deps.Stdout, "  %s: disabled\n", strategy)
			continue
		}
		fmt.Fprintf(deps.Stdout, "  %s: %d candidates\n", strategy, report.Found)
	}
}
