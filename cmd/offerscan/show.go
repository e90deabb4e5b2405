package main

import (
	"fmt"

	"github.com/fwojciec/offerscan"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	scan, err := deps.Scans.FindScanByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offerscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scan %s\n", scan.ID)
	fmt.Fprintf(deps.Stdout, "Site: %s\n", scan.SiteURL)
	if scan.BusinessName != "" {
		fmt.Fprintf(deps.Stdout, "Business: %s\n", scan.BusinessName)
	}
	fmt.Fprintf(deps.Stdout, "Scanned: %s\n\n", scan.CreatedAt.Format("2006-01-02 15:04"))

	printResult(deps, scan.SiteURL, &scan.Result)
	return nil
}
