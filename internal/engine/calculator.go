package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/ghgcalc/internal/factors"
	"github.com/rshade/ghgcalc/internal/gwp"
	"github.com/rshade/ghgcalc/internal/logging"
	"github.com/rshade/ghgcalc/internal/units"
)

const kgPerTonne = 1000.0

// Calculator resolves activities to factors and converts them into
// CO2-equivalent results. It holds the immutable factor registry by
// reference and the GWP assessment choice; it has no mutable state, so one
// Calculator may be shared across goroutines.
type Calculator struct {
	registry   *factors.Registry
	assessment gwp.Assessment
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithAssessment selects the IPCC assessment report version for every
// gas-weighting step. Default is AR5.
func WithAssessment(assessment gwp.Assessment) Option {
	return func(c *Calculator) { c.assessment = assessment }
}

// New creates a Calculator over the given registry.
func New(registry *factors.Registry, opts ...Option) *Calculator {
	c := &Calculator{registry: registry, assessment: gwp.AR5}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Assessment returns the GWP assessment the calculator applies.
func (c *Calculator) Assessment() gwp.Assessment { return c.assessment }

// CalculateSingle converts one activity into one or two Results. Scope 2
// activities without a method pin yield both a location-based and a
// market-based Result; everything else yields exactly one. The activity
// either fully succeeds or fully fails — there is no partial breakdown.
func (c *Calculator) CalculateSingle(ctx context.Context, activity Activity) ([]Result, error) {
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "engine").
		Str("operation", "calculate_single").
		Int("scope", int(activity.Scope)).
		Float64("quantity", activity.Quantity).
		Str("unit", activity.Unit).
		Msg("calculating activity")

	if activity.Scope == Scope1 && activity.RefrigerantType != "" {
		result, err := c.calculateRefrigerant(activity)
		if err != nil {
			return nil, err
		}
		return []Result{result}, nil
	}

	if activity.Scope == Scope2 {
		return c.calculateScope2(ctx, activity)
	}

	result, err := c.calculateStandard(activity)
	if err != nil {
		return nil, err
	}
	return []Result{result}, nil
}

// calculateStandard is the single-result path for Scope 1 combustion and
// Scope 3: override first, registry second, FactorResolutionError last.
func (c *Calculator) calculateStandard(activity Activity) (Result, error) {
	result := newResult(activity)

	if activity.CustomFactor != nil {
		kg := activity.Quantity * *activity.CustomFactor
		result.TotalCO2eKg = kg
		result.TotalCO2eTonnes = kg / kgPerTonne
		result.Notes = append(result.Notes, "using caller-supplied factor override")
		return result, nil
	}

	resolution := c.registry.ResolveForActivity(activityQuery(activity))
	if resolution == nil {
		return Result{}, resolutionError(activity)
	}

	kg, breakdown, err := c.applyFactor(activity, resolution.Factor)
	if err != nil {
		return Result{}, err
	}

	result.TotalCO2eKg = kg
	result.TotalCO2eTonnes = kg / kgPerTonne
	result.GasBreakdown = breakdown
	result.FactorID = resolution.Factor.ID
	result.FactorSource = string(resolution.Factor.Source)
	result.Notes = append(result.Notes, resolution.Notes...)
	return result, nil
}

// calculateScope2 produces the dual-method Scope 2 results. Without a
// method pin both methods are computed as independent Results sharing the
// activity identity; the market-based method falls back to the
// location-based factor, with a note, when no contractual factor is given.
func (c *Calculator) calculateScope2(ctx context.Context, activity Activity) ([]Result, error) {
	pin := activity.Scope2MethodPin
	wantLocation := pin == "" || pin == LocationBased
	wantMarket := pin == "" || pin == MarketBased

	// The location basis backs the market-based default too, so it is
	// computed unless the market method is pinned with its own factor.
	needLocationBasis := wantLocation || (wantMarket && activity.MarketFactor == nil)

	var location Result
	if needLocationBasis {
		var err error
		location, err = c.calculateStandard(activity)
		if err != nil {
			return nil, err
		}
		location.Method = LocationBased
	}

	var results []Result
	if wantLocation {
		results = append(results, location)
	}

	if wantMarket {
		market := newResult(activity)
		market.Method = MarketBased
		if activity.MarketFactor != nil {
			kg := activity.Quantity * *activity.MarketFactor
			market.TotalCO2eKg = kg
			market.TotalCO2eTonnes = kg / kgPerTonne
			market.Notes = append(market.Notes, "market-based method using contractual instrument factor")
		} else {
			market.TotalCO2eKg = location.TotalCO2eKg
			market.TotalCO2eTonnes = location.TotalCO2eTonnes
			market.GasBreakdown = append([]GasBreakdownEntry(nil), location.GasBreakdown...)
			market.FactorID = location.FactorID
			market.FactorSource = location.FactorSource
			market.Notes = append(append(market.Notes, location.Notes...),
				"market-based method defaulted to location-based factor (no contractual instrument supplied)")

			logging.FromContext(ctx).Warn().
				Str("component", "engine").
				Str("activity_id", activity.ID).
				Msg("market-based method defaulted to location-based factor")
		}
		results = append(results, market)
	}

	return results, nil
}

// calculateRefrigerant applies the fugitive-leakage rule: the quantity is a
// leaked refrigerant mass and the refrigerant's own GWP converts it to CO2e
// directly — no factor catalog lookup.
func (c *Calculator) calculateRefrigerant(activity Activity) (Result, error) {
	massKg, err := units.Convert(activity.Quantity, activity.Unit, "kg")
	if err != nil {
		return Result{}, err
	}

	gwpValue, err := gwp.Lookup(activity.RefrigerantType, c.assessment)
	if err != nil {
		return Result{}, err
	}

	co2eKg := massKg * gwpValue

	result := newResult(activity)
	if result.Scope1Category == "" {
		result.Scope1Category = Fugitive
	}
	result.TotalCO2eKg = co2eKg
	result.TotalCO2eTonnes = co2eKg / kgPerTonne
	result.GasBreakdown = []GasBreakdownEntry{{
		Gas:     activity.RefrigerantType,
		MassKg:  massKg,
		GWPUsed: gwpValue,
		CO2eKg:  co2eKg,
	}}
	result.Notes = append(result.Notes,
		fmt.Sprintf("fugitive refrigerant leakage weighted directly by GWP (%s, %s)", activity.RefrigerantType, c.assessment))
	return result, nil
}

// applyFactor normalizes the activity quantity into the factor's unit and
// applies either the combined coefficient or the per-gas coefficients
// weighted by GWP. A unit family mismatch propagates as *units.DimensionError.
func (c *Calculator) applyFactor(activity Activity, factor *factors.Factor) (float64, []GasBreakdownEntry, error) {
	quantity, err := units.Convert(activity.Quantity, activity.Unit, factor.Unit)
	if err != nil {
		return 0, nil, err
	}

	if !factor.HasGasBreakdown() {
		return quantity * *factor.CO2e, nil, nil
	}

	var totalKg float64
	coeffs := factor.GasCoefficients()
	breakdown := make([]GasBreakdownEntry, 0, len(coeffs))
	for _, coeff := range coeffs {
		gwpValue, err := gwp.Lookup(coeff.Gas, c.assessment)
		if err != nil {
			return 0, nil, fmt.Errorf("factor %s: %w", factor.ID, err)
		}
		massKg := quantity * coeff.KgPerUnit
		co2eKg := massKg * gwpValue
		breakdown = append(breakdown, GasBreakdownEntry{
			Gas:     coeff.Gas,
			MassKg:  massKg,
			GWPUsed: gwpValue,
			CO2eKg:  co2eKg,
		})
		totalKg += co2eKg
	}
	return totalKg, breakdown, nil
}

// CalculateInventory converts a batch of activities and folds the results
// into an Inventory. Activities are independent, so the batch fans out
// across an errgroup bounded by GOMAXPROCS; result order follows input
// order regardless of execution order. The batch fails fast on the first
// failing activity.
func (c *Calculator) CalculateInventory(ctx context.Context, activities []Activity, name string) (*Inventory, error) {
	perActivity := make([][]Result, len(activities))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, activity := range activities {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results, err := c.CalculateSingle(ctx, activity)
			if err != nil {
				return fmt.Errorf("activity %d: %w", i, err)
			}
			perActivity[i] = results
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var all []Result
	for _, results := range perActivity {
		all = append(all, results...)
	}
	return Aggregate(all, name), nil
}

// activityQuery projects an Activity into the registry's resolution view.
func activityQuery(activity Activity) factors.ActivityQuery {
	return factors.ActivityQuery{
		Scope:          int(activity.Scope),
		Unit:           activity.Unit,
		FuelType:       string(activity.FuelType),
		GridSubregion:  activity.GridSubregion,
		Country:        activity.Country,
		Scope3Category: int(activity.Scope3Category),
		MethodHint:     activity.MethodHint,
	}
}

// resolutionError names the scope/category/unit combination that failed.
func resolutionError(activity Activity) *FactorResolutionError {
	category := ""
	switch activity.Scope {
	case Scope1:
		switch {
		case activity.FuelType != "":
			category = string(activity.FuelType)
		case activity.CustomFuel != "":
			category = activity.CustomFuel
		default:
			category = string(activity.Scope1Category)
		}
	case Scope2:
		category = "electricity"
	case Scope3:
		category = fmt.Sprintf("category %d", activity.Scope3Category)
	}
	return &FactorResolutionError{Scope: activity.Scope, Category: category, Unit: activity.Unit}
}

// newResult seeds a Result with the activity's classification and identity.
func newResult(activity Activity) Result {
	return Result{
		Scope:          activity.Scope,
		Scope1Category: activity.Scope1Category,
		Scope3Category: activity.Scope3Category,
		ActivityID:     activity.ID,
		ActivityName:   activity.Name,
	}
}
