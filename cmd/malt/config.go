package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/maltbrew/malt/internal/version"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show malt's effective configuration",
	Long: `Print the effective directory layout and the probed host state.

Paths resolve from defaults, then the optional config file ($MALT_CONFIG
or ~/.config/malt/config.yaml), then MALT_* environment overrides.
Toolchain versions come from the same probes the doctor checks read.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		env, err := buildEnv(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s Paths\n", cyan("▸"))
		fmt.Printf("  Prefix:     %s\n", env.Paths.Prefix)
		fmt.Printf("  Cellar:     %s\n", env.Paths.Cellar)
		fmt.Printf("  Repository: %s\n", env.Paths.Repository)
		fmt.Printf("  Temp:       %s\n", env.Paths.Temp)

		fmt.Printf("\n%s Host\n", cyan("▸"))
		osLine := env.Host.OSVersion().String()
		if osLine == "" {
			osLine = "unknown"
		} else if pretty := env.Host.PrettyName(); pretty != "" {
			osLine = fmt.Sprintf("%s (%s)", osLine, pretty)
		}
		fmt.Printf("  macOS: %s\n", osLine)
		if env.Host.PrereleaseOS() {
			fmt.Printf("  Pre-release OS: yes\n")
		}
		if env.Host.OutOfSupportOS() {
			fmt.Printf("  Out of support: yes\n")
		}
		if env.Host.CI() {
			fmt.Printf("  CI: yes\n")
		}
		if env.Host.Developer() {
			fmt.Printf("  Developer mode: yes\n")
		}

		fmt.Printf("\n%s Toolchain\n", cyan("▸"))
		fmt.Printf("  Xcode:              %s\n", versionOrNone(env.Xcode.Installed(), env.Xcode.Version()))
		if selected := env.Xcode.SelectedPath(); selected != "" {
			fmt.Printf("  Developer dir:      %s\n", selected)
		}
		fmt.Printf("  Command Line Tools: %s\n", versionOrNone(env.CLT.Installed(), env.CLT.Version()))
		fmt.Printf("  XQuartz:            %s\n", versionOrNone(env.XQuartz.Installed(), env.XQuartz.Version()))

		fmt.Printf("\n%s\n", gray("Override paths with MALT_PREFIX, MALT_CELLAR, MALT_REPOSITORY, MALT_TEMP."))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// versionOrNone renders a probed version, or "none" when the component is
// absent.
func versionOrNone(installed bool, v version.Version) string {
	if !installed {
		return "none"
	}
	return v.String()
}
