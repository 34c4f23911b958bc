package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/ingest"
)

// newValidateCmd creates the validate command: structural validation of an
// activity file without calculating anything.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a JSON file of activity records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := ingest.DecodeFile(args[0])
			if err != nil {
				return err
			}

			report := ingest.Validate(records)
			cmd.Printf("%d valid records\n", report.Valid)

			if report.OK() {
				return nil
			}

			cmd.PrintErrf("%d invalid records:\n", len(report.Errors))
			for _, recErr := range report.Errors {
				cmd.PrintErrf("  record %d: %v\n", recErr.Index, recErr.Err)
			}
			return fmt.Errorf("%s: %d of %d records invalid",
				args[0], len(report.Errors), len(records))
		},
	}

	return cmd
}
