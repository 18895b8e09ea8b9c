package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// healthCmd checks that the analysis service is reachable
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the analysis service is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient(logger)
		defer c.Close()

		if err := c.Health(cmd.Context()); err != nil {
			return fmt.Errorf("health check failed for %s: %w", c.BaseURL(), describeError(err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok  %s\n", c.BaseURL())
		return nil
	},
}
