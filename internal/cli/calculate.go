package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/engine"
	"github.com/rshade/ghgcalc/internal/factors"
	"github.com/rshade/ghgcalc/internal/gwp"
)

// calculateFlags mirrors the activity fields settable from the command line.
type calculateFlags struct {
	scope        int
	category     string
	fuel         string
	quantity     float64
	unit         string
	region       string
	customFactor float64
	marketFactor float64
	refrigerant  string
	method       string
	jsonOut      bool
}

// newCalculateCmd creates the calculate command: one activity in, one or two
// results out (Scope 2 without a method pin yields both methods).
func newCalculateCmd() *cobra.Command {
	var flags calculateFlags

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate emissions for a single activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			activity, err := flags.toActivity(cmd)
			if err != nil {
				return err
			}

			assessment, err := resolveAssessment(cmd)
			if err != nil {
				return err
			}

			registry, err := factors.Load()
			if err != nil {
				return err
			}

			calc := engine.New(registry, engine.WithAssessment(assessment))
			results, err := calc.CalculateSingle(cmd.Context(), activity)
			if err != nil {
				return err
			}

			if flags.jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			cfg := configFromCmd(cmd)
			return RenderResults(cmd.OutOrStdout(), results, cfg.Output.Precision)
		},
	}

	cmd.Flags().IntVar(&flags.scope, "scope", 1, "emission scope: 1, 2, or 3")
	cmd.Flags().StringVar(&flags.category, "category", "", "Scope 1 category name or Scope 3 category number")
	cmd.Flags().StringVar(&flags.fuel, "fuel", "", "fuel type (free text with --factor)")
	cmd.Flags().Float64Var(&flags.quantity, "quantity", 0, "activity quantity (required)")
	cmd.Flags().StringVar(&flags.unit, "unit", "", "unit of quantity (required)")
	cmd.Flags().StringVar(&flags.region, "region", "", "eGRID subregion or ISO country code")
	cmd.Flags().Float64Var(&flags.customFactor, "factor", 0, "custom emission factor (kg CO2e per unit), bypasses the catalog")
	cmd.Flags().Float64Var(&flags.marketFactor, "market-factor", 0, "contractual factor (kg CO2e per unit) for the Scope 2 market-based method")
	cmd.Flags().StringVar(&flags.refrigerant, "refrigerant", "", "refrigerant type for fugitive leakage (quantity is leaked mass)")
	cmd.Flags().StringVar(&flags.method, "method", "", "Scope 2 method pin: location_based or market_based")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "output results as JSON")
	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

// toActivity maps the flag set onto an Activity, interpreting --category and
// --region per scope and routing unknown fuels to the custom-fuel field.
func (f *calculateFlags) toActivity(cmd *cobra.Command) (engine.Activity, error) {
	activity := engine.Activity{
		Scope:    engine.Scope(f.scope),
		Quantity: f.quantity,
		Unit:     f.unit,
	}

	switch activity.Scope {
	case engine.Scope1:
		if f.category != "" {
			cat, err := engine.ParseScope1Category(f.category)
			if err != nil {
				return engine.Activity{}, err
			}
			activity.Scope1Category = cat
		}
		activity.Country = f.region
	case engine.Scope2:
		activity.GridSubregion = f.region
		if f.method != "" {
			activity.Scope2MethodPin = engine.Scope2Method(f.method)
		}
	case engine.Scope3:
		if f.category != "" {
			n, err := strconv.Atoi(f.category)
			if err != nil {
				return engine.Activity{}, fmt.Errorf("Scope 3 category must be a number 1-15, got %q", f.category)
			}
			activity.Scope3Category = engine.Scope3Category(n)
		}
		activity.Country = f.region
	}

	if f.fuel != "" {
		if engine.KnownFuel(f.fuel) {
			activity.FuelType = engine.FuelType(f.fuel)
		} else {
			activity.CustomFuel = f.fuel
		}
	}
	if cmd.Flags().Changed("factor") {
		v := f.customFactor
		activity.CustomFactor = &v
	}
	if cmd.Flags().Changed("market-factor") {
		v := f.marketFactor
		activity.MarketFactor = &v
	}
	activity.RefrigerantType = f.refrigerant

	return activity, nil
}

// resolveAssessment picks the GWP assessment from the --assessment flag, falling
// back to the configured default.
func resolveAssessment(cmd *cobra.Command) (gwp.Assessment, error) {
	flagVal, _ := cmd.Flags().GetString("assessment")
	if flagVal == "" {
		flagVal = configFromCmd(cmd).Calculation.Assessment
	}
	return gwp.ParseAssessment(flagVal)
}
