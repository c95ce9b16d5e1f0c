package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "malt",
	Short: "Package manager diagnostics for macOS hosts",
	Long: `malt installs packages into its own prefix and links them into place.

This build carries the diagnostic surface:

  malt doctor   probe the host for conditions that break or degrade
                building packages from source
  malt config   print the effective paths and probed toolchain versions`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
