package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/gwp"
)

// newGWPCmd creates the gwp command: look up 100-year Global Warming
// Potential values by gas, or list the whole table.
func newGWPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gwp [gas]",
		Short: "Look up Global Warming Potential values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assessment, err := resolveAssessment(cmd)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				value, lookupErr := gwp.Lookup(args[0], assessment)
				if lookupErr != nil {
					return lookupErr
				}
				cmd.Printf("GWP of %s (%s, 100-year): %g\n", args[0], assessment, value)
				return nil
			}

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor())
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(boxBorderColor())).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return lipgloss.NewStyle().Padding(0, 1)
				}).
				Headers("GAS", "100-YR GWP")

			gases, err := gwp.Gases(assessment)
			if err != nil {
				return err
			}
			for _, gas := range gases {
				value, lookupErr := gwp.Lookup(gas, assessment)
				if lookupErr != nil {
					continue
				}
				t.Row(gas, formatQuantity(value, 1))
			}

			cmd.Printf("GWP values (%s)\n", assessment)
			cmd.Println(t.Render())
			return nil
		},
	}

	return cmd
}
