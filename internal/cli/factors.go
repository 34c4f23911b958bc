package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/factors"
)

const defaultFactorSearchLimit = 20

// newFactorsCmd creates the factors command: search the embedded emission
// factor catalog.
func newFactorsCmd() *cobra.Command {
	var (
		source   string
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "factors [query]",
		Short: "Search the emission factor catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := factors.Load()
			if err != nil {
				return err
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			results := registry.Search(query, factors.SearchOptions{
				Source:   factors.Source(strings.ToLower(source)),
				Category: category,
				Limit:    limit,
			})

			logger.Debug().
				Str("query", query).
				Int("matches", len(results)).
				Msg("factor search complete")

			if len(results) == 0 {
				cmd.Println("No factors found.")
				return nil
			}

			renderFactorTable(cmd, results)
			cmd.Printf("\nCatalog: %d factors (dataset %s)\n", registry.Count(), registry.Version())
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "filter by source (epa, egrid, ember, defra, useeio, exiobase)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category tag")
	cmd.Flags().IntVar(&limit, "limit", defaultFactorSearchLimit, "maximum results")

	return cmd
}

// renderFactorTable prints matched factors as a bordered table.
func renderFactorTable(cmd *cobra.Command, results []factors.Factor) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor())
	borderColor := boxBorderColor()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "NAME", "CO2E / CO2", "CH4", "N2O", "UNIT", "SOURCE")

	for i := range results {
		f := &results[i]
		t.Row(f.ID, f.Name,
			formatCoefficient(f.CO2e, f.CO2, "%.4f"),
			formatCoefficient(f.CH4, nil, "%.6f"),
			formatCoefficient(f.N2O, nil, "%.6f"),
			f.Unit, string(f.Source))
	}

	cmd.Println(t.Render())
}

// formatCoefficient prints the first non-nil coefficient, or blank.
func formatCoefficient(primary, fallback *float64, format string) string {
	switch {
	case primary != nil:
		return fmt.Sprintf(format, *primary)
	case fallback != nil:
		return fmt.Sprintf(format, *fallback)
	default:
		return ""
	}
}
