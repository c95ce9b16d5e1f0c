package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/maltbrew/malt/internal/doctor"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [check...]",
	Short: "Check your system for potential problems",
	Long: `Probe the host for conditions that break or degrade building packages
from source.

The fatal checks run first, in order, and stop at the first finding: a
host that fails one cannot build packages at all, and later checks in
that group assume the conditions earlier ones probe for were absent.
The remaining checks then run to completion and report warnings.

Naming checks runs exactly those checks, in the order given:

  malt doctor check_user_path check_for_gettext

Exit codes:
  0 - no findings, or warnings only
  1 - a fatal finding, or the run could not start`,
	Run: func(cmd *cobra.Command, args []string) {
		listOnly, _ := cmd.Flags().GetBool("list-checks")
		jsonOut, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")

		ctx := context.Background()

		env, err := buildEnv(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		registry, err := doctor.NewChecks(env).Registry()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if listOnly {
			for _, name := range registry.Names() {
				fmt.Println(name)
			}
			return
		}

		if !jsonOut {
			fmt.Printf("Running malt diagnostic checks...\n\n")
		}

		runner := doctor.NewRunner(registry)
		names := registry.Names()

		var report *doctor.Report
		gated := false
		if len(args) > 0 {
			names = args
			report, err = runner.RunNamed(args...)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		} else if f := runner.RunFatal(); f != nil {
			// The fatal group gates source builds; its first finding
			// aborts the sweep.
			report = &doctor.Report{Findings: []doctor.Finding{*f}}
			gated = true
		} else {
			report = runner.RunAll()
		}

		switch {
		case jsonOut:
			data, err := json.MarshalIndent(newDoctorReport(report), "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		case gated:
			printGated(&report.Findings[0])
		default:
			printFindings(names, report, verbose)
		}

		if report.HasFatal() {
			os.Exit(1)
		}
	},
}

func init() {
	doctorCmd.Flags().Bool("list-checks", false, "List the available checks and exit")
	doctorCmd.Flags().Bool("json", false, "Emit the report as JSON")
	doctorCmd.Flags().BoolP("verbose", "v", false, "Show checks that found nothing")
	rootCmd.AddCommand(doctorCmd)
}

// printFindings renders each check's finding under a severity glyph, then a
// summary. Checks that found nothing print only with --verbose.
func printFindings(names []string, report *doctor.Report, verbose bool) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	byCheck := make(map[string]doctor.Finding, len(report.Findings))
	for _, f := range report.Findings {
		byCheck[f.Check] = f
	}

	for _, name := range names {
		f, found := byCheck[name]
		if !found {
			if verbose {
				fmt.Printf("%s %s\n", green("✓"), name)
			}
			continue
		}
		glyph := yellow("⚠")
		if f.Severity == doctor.Fatal {
			glyph = red("✗")
		}
		fmt.Printf("%s %s\n", glyph, f.Check)
		fmt.Printf("%s\n\n", indentLines(f.Message, "    "))
	}

	fmt.Println(strings.Repeat("─", 60))
	switch {
	case report.OK():
		fmt.Printf("%s No problems found. Your system is ready to build from source.\n", green("✓"))
	case report.HasFatal():
		fmt.Printf("%s %d finding(s); building packages from source is blocked.\n", red("✗"), len(report.Findings))
	default:
		fmt.Printf("%s %d warning(s) found. malt still works; the conditions above can degrade source builds.\n", yellow("⚠"), len(report.Findings))
	}
}

// printGated renders the finding that aborted the fatal group.
func printGated(f *doctor.Finding) {
	red := color.New(color.FgRed).SprintFunc()

	fmt.Printf("%s %s\n", red("✗"), f.Check)
	fmt.Printf("%s\n\n", indentLines(f.Message, "    "))
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("%s Building packages from source is blocked until this is fixed.\n", red("✗"))
}

// indentLines prefixes every non-empty line, keeping multi-line advisories
// aligned under their check name.
func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// doctorReport is the JSON shape of one doctor run.
type doctorReport struct {
	RunID     string           `json:"run_id"`
	Timestamp string           `json:"timestamp"`
	OK        bool             `json:"ok"`
	Findings  []doctor.Finding `json:"findings"`
}

func newDoctorReport(report *doctor.Report) doctorReport {
	findings := report.Findings
	if findings == nil {
		findings = []doctor.Finding{}
	}
	return doctorReport{
		RunID:     uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		OK:        report.OK(),
		Findings:  findings,
	}
}
