package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/units"
)

// newConvertCmd creates the convert command: one-off unit conversion within
// a dimension.
func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <value> <from-unit> <to-unit>",
		Short: "Convert a quantity between compatible units",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("value %q is not a number", args[0])
			}

			converted, err := units.Convert(value, args[1], args[2])
			if err != nil {
				return err
			}

			cmd.Printf("%g %s = %g %s\n", value, args[1], converted, args[2])
			return nil
		},
	}

	return cmd
}
