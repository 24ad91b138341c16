package main

import (
	"errors"
	"fmt"
	"os"

	"pathguard/internal/config"
	"pathguard/internal/logging"
	"pathguard/pkg/securefile"

	"github.com/spf13/cobra"
)

// errFileRefused is the one-line error surfaced to cobra; the full
// diagnostic goes to stderr before it is returned.
var errFileRefused = errors.New("file access refused")

var catCmd = &cobra.Command{
	Use:   "cat FILE",
	Short: "Read a file through the full trusted-path validation pipeline",
	Long: `Cat opens FILE only if its canonical path lives under a trustworthy
directory chain, then streams its contents to stdout. When the config file
lists allowed extensions, files with other extensions are refused.

Examples:
  pathguard cat /etc/myapp/app.conf`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	sf := securefile.OpenSecure(args[0], "rb", &securefile.OpenOptions{
		Filter: cfg.Filter(),
	})
	if !sf.IsValid() {
		fmt.Fprintf(os.Stderr, "%s %s\n", insecureStyle.Render("refused"), args[0])
		if sf.Detail() != "" {
			fmt.Fprintln(os.Stderr, detailStyle.Render(sf.Detail()))
		}
		// The diagnostic is already printed; keep cobra's error line short so
		// it is not shown twice.
		return errFileRefused
	}
	defer func() {
		if err := sf.Close(); err != nil {
			logging.Warn("Failed to close file", "path", sf.Path(), "error", err)
		}
	}()

	data, err := sf.ReadAll()
	if err != nil {
		return fmt.Errorf("read %s: %w", sf.Path(), err)
	}

	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("write to stdout: %w", err)
	}
	return nil
}
