package main

import (
	"fmt"

	ginserver "github.com/fwojciec/offerscan/gin"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	port := c.Port
	if port == "" {
		port = deps.Config.Server.Port
	}

	var opts []ginserver.ServerOption
	opts = append(opts, ginserver.WithLogger(deps.Logger))
	if deps.Config.Server.Environment == "production" {
		opts = append(opts, ginserver.WithReleaseMode())
	}

	srv := ginserver.NewServer(deps.Scanner, deps.Scans, opts...)

	fmt.Fprintf(deps.Stdout, "Listening on :%s\n", port)
	return srv.ListenAndServe(":" + port)
}
