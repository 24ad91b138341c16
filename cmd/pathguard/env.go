package main

import (
	"errors"
	"fmt"
	"os"

	"pathguard/internal/envtrust"

	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env NAME",
	Short: "Read an environment variable from a tamper-checked environment",
	Long: `Env prints the value of NAME, but only after verifying that no two
entries in the process environment share the same variable name. Duplicate
names mean the environment was tampered with and nothing in it can be
trusted.

Exit codes: 0 value printed, 2 variable not set, 3 environment tampered.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	val, err := envtrust.GetTrustedEnv(args[0])
	switch {
	case err == nil:
		fmt.Println(val)
		return nil
	case errors.Is(err, envtrust.ErrTampered):
		fmt.Fprintln(os.Stderr, insecureStyle.Render("environment is tampered; refusing all lookups"))
		os.Exit(3)
	case errors.Is(err, envtrust.ErrNotFound):
		fmt.Fprintf(os.Stderr, "%s is not set\n", args[0])
		os.Exit(2)
	}
	return err
}
