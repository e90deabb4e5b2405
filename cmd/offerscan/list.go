package main

import (
	"fmt"

	"github.com/fwojciec/offerscan"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := offerscan.ScanFilter{Limit: c.Limit}
	if c.Site != "" {
		filter.SiteURL = &c.Site
	}

	scans, err := deps.Scans.FindScans(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offerscan.ErrorMessage(err))
		return err
	}

	if len(scans) == 0 {
		fmt.Fprintln(deps.Stdout, "No scans found. Use 'offerscan scan' to create one.")
		return nil
	}

	for _, s := range scans {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d products\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.SiteURL, len(s.Result.Products))
	}

	return nil
}
