package main

import (
	"fmt"
	"path/filepath"

	"pathguard/pkg/securefile"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	secureStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	insecureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

var checkCmd = &cobra.Command{
	Use:   "check PATH",
	Short: "Verify that every directory on a path is trustworthy",
	Long: `Check walks every directory from the filesystem root down to PATH and
verifies that each one is owned by you (or root) and is writable by neither
group nor others. Symbolic links are followed and held to the same standard.

Examples:
  # Check a config directory before trusting files inside it
  pathguard check ~/.config/myapp

  # Relative paths are resolved first
  pathguard check ./data`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("cannot resolve %q: %w", args[0], err)
	}

	verdict := securefile.IsDirectorySecure(path)
	if verdict.Secure {
		fmt.Printf("%s %s\n", secureStyle.Render("secure"), path)
		return nil
	}

	fmt.Printf("%s %s\n", insecureStyle.Render("insecure"), path)
	fmt.Println(detailStyle.Render(verdict.Detail))
	return fmt.Errorf("path is not trustworthy")
}
