package main

import (
	"fmt"

	"github.com/fwojciec/offerscan"
	"github.com/fwojciec/offerscan/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	scan, err := deps.Scans.FindScanByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offerscan.ErrorMessage(err))
		return err
	}

	writer := deps.Reports
	if c.Dir != "" && c.Dir != "." {
		writer = fs.NewReportWriter(c.Dir)
	}

	path, err := writer.WriteReport(scan)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offerscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
