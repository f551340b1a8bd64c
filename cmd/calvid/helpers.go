package main

import (
	"github.com/spf13/cobra"

	"github.com/nick-ma/2026-calendar/internal/services"
)

// usageError prints the command's usage ahead of a bad-invocation error so
// the caller sees how to fix the call. Runtime failures pass through bare.
func usageError(cmd *cobra.Command, err error) error {
	if err != nil && services.IsUsage(err) {
		cmd.PrintErrln(cmd.UsageString())
	}
	return err
}
