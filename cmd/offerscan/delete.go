package main

import (
	"fmt"

	"github.com/fwojciec/offerscan"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return offerscan.Errorf(offerscan.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Scans.DeleteScan(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offerscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted scan %s\n", c.ID)
	return nil
}
