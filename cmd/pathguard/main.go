// Package main is the entry point for the pathguard CLI.
//
// pathguard validates trusted filesystem paths before use: it checks that
// every directory from the root down to a target is owned by the invoking
// user (or root) and is not group/other-writable, reads environment
// variables only from a tamper-checked environment, and opens files through
// the securefile validation pipeline.
package main

import (
	"os"

	"pathguard/internal/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pathguard",
	Short: "Trusted-path file access validator",
	Long: `pathguard checks that filesystem paths are trustworthy before use.

A path is trustworthy when every directory from the filesystem root down to
the target is owned by you (or root) and is writable by neither group nor
others, and every symbolic link on the way resolves to an equally
trustworthy location.`,
	SilenceUsage: true,
}

func main() {
	logging.GetDefault()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
