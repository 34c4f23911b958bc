// Package cli implements the ghgcalc command tree: single-activity
// calculation, factor search, GWP lookup, unit conversion, activity file
// validation, and report generation.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the ghgcalc CLI. It wires
// up logging, tracing, and the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *loggingState

	cmd := &cobra.Command{
		Use:     "ghgcalc",
		Short:   "GHG Protocol emissions calculator",
		Long:    "ghgcalc: Calculate Scope 1, 2, and 3 greenhouse gas emissions per the GHG Protocol Corporate Standard",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setupLogging(cmd)
			if err != nil {
				return err
			}
			logResult = result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("assessment", "", "GWP assessment report: ar5 or ar6 (default from config)")
	cmd.AddCommand(
		newCalculateCmd(), newFactorsCmd(), newGWPCmd(),
		newConvertCmd(), newValidateCmd(), newReportCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Natural gas combustion, 1000 therms
  ghgcalc calculate --scope 1 --category stationary_combustion --fuel natural_gas --quantity 1000 --unit therm

  # Purchased electricity in California (eGRID CAMX), both Scope 2 methods
  ghgcalc calculate --scope 2 --quantity 50000 --unit kwh --region camx

  # Spend-based Scope 3, category 1
  ghgcalc calculate --scope 3 --category 1 --quantity 25000 --unit usd

  # Refrigerant leakage under AR6 GWPs
  ghgcalc calculate --scope 1 --category fugitive --refrigerant hfc-134a --quantity 2 --unit kg --assessment ar6

  # Search the embedded factor catalog
  ghgcalc factors diesel --source epa

  # Validate an activity file, then render the full report
  ghgcalc validate activities.json
  ghgcalc report activities.json --output report.html --title "Acme FY2025"`
