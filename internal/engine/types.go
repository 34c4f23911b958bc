// Package engine is the emissions calculation core: it resolves activities
// to emission factors, weights gas masses by GWP, applies scope-specific
// rules, and folds results into an inventory.
//
// All operations are pure functions of their inputs plus the immutable
// factor registry and GWP tables, so a Calculator is safe for concurrent
// use without locking.
package engine

import (
	"fmt"
	"strings"
)

// Scope is a GHG Protocol emission scope.
type Scope int

// The three GHG Protocol scopes.
const (
	Scope1 Scope = 1 // direct emissions from owned or controlled sources
	Scope2 Scope = 2 // indirect emissions from purchased energy
	Scope3 Scope = 3 // all other value-chain emissions
)

// Scope1Category is the closed set of Scope 1 emission categories.
type Scope1Category string

// Scope 1 categories.
const (
	StationaryCombustion Scope1Category = "stationary_combustion"
	MobileCombustion     Scope1Category = "mobile_combustion"
	Fugitive             Scope1Category = "fugitive"
	Process              Scope1Category = "process"
)

// ParseScope1Category validates a Scope 1 category string.
func ParseScope1Category(s string) (Scope1Category, error) {
	switch c := Scope1Category(strings.ToLower(strings.TrimSpace(s))); c {
	case StationaryCombustion, MobileCombustion, Fugitive, Process:
		return c, nil
	default:
		return "", fmt.Errorf("unknown Scope 1 category %q (valid: %s, %s, %s, %s)",
			s, StationaryCombustion, MobileCombustion, Fugitive, Process)
	}
}

// Scope3Category is one of the fifteen numbered GHG Protocol Scope 3
// categories. Zero means unset.
type Scope3Category int

// scope3Names indexes the standard category names by number.
//
//nolint:gochecknoglobals // Constant lookup table.
var scope3Names = [16]string{
	"",
	"Purchased goods and services",
	"Capital goods",
	"Fuel- and energy-related activities",
	"Upstream transportation and distribution",
	"Waste generated in operations",
	"Business travel",
	"Employee commuting",
	"Upstream leased assets",
	"Downstream transportation and distribution",
	"Processing of sold products",
	"Use of sold products",
	"End-of-life treatment of sold products",
	"Downstream leased assets",
	"Franchises",
	"Investments",
}

// Valid reports whether the category number is in 1..15.
func (c Scope3Category) Valid() bool { return c >= 1 && c <= 15 }

// Name returns the standard GHG Protocol name for the category.
func (c Scope3Category) Name() string {
	if !c.Valid() {
		return ""
	}
	return scope3Names[c]
}

// Scope2Method distinguishes the two required Scope 2 accounting methods.
type Scope2Method string

// Scope 2 accounting methods.
const (
	LocationBased Scope2Method = "location_based"
	MarketBased   Scope2Method = "market_based"
)

// FuelType is the enumerated fuel vocabulary matched against the factor
// catalog. Free-text fuels go through Activity.CustomFuel instead and are
// only valid together with a caller-supplied factor override.
type FuelType string

// Enumerated fuels.
const (
	NaturalGas        FuelType = "natural_gas"
	Propane           FuelType = "propane"
	FuelOil2          FuelType = "fuel_oil_2"
	FuelOil6          FuelType = "fuel_oil_6"
	Kerosene          FuelType = "kerosene"
	LPG               FuelType = "lpg"
	CoalBituminous    FuelType = "coal_bituminous"
	CoalSubbituminous FuelType = "coal_subbituminous"
	CoalLignite       FuelType = "coal_lignite"
	CoalAnthracite    FuelType = "coal_anthracite"
	WoodBiomass       FuelType = "wood_biomass"
	LandfillGas       FuelType = "landfill_gas"
	Gasoline          FuelType = "gasoline"
	Diesel            FuelType = "diesel"
	JetFuel           FuelType = "jet_fuel"
	AviationGasoline  FuelType = "aviation_gasoline"
	Ethanol           FuelType = "ethanol"
	Biodiesel         FuelType = "biodiesel"
	CNG               FuelType = "cng"
	LNG               FuelType = "lng"
)

//nolint:gochecknoglobals // Constant membership set.
var knownFuels = map[FuelType]struct{}{
	NaturalGas: {}, Propane: {}, FuelOil2: {}, FuelOil6: {}, Kerosene: {},
	LPG: {}, CoalBituminous: {}, CoalSubbituminous: {}, CoalLignite: {},
	CoalAnthracite: {}, WoodBiomass: {}, LandfillGas: {}, Gasoline: {},
	Diesel: {}, JetFuel: {}, AviationGasoline: {}, Ethanol: {},
	Biodiesel: {}, CNG: {}, LNG: {},
}

// KnownFuel reports whether s names an enumerated fuel.
func KnownFuel(s string) bool {
	_, ok := knownFuels[FuelType(strings.ToLower(strings.TrimSpace(s)))]
	return ok
}

// Activity is one recorded business activity to convert into CO2e. The
// caller owns it; the engine never mutates it.
type Activity struct {
	// ID and Name are optional identity tokens carried into Results for
	// traceability only.
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	Scope Scope `json:"scope"`

	// Scope1Category is required for refrigerant-leakage dispatch and
	// otherwise informational for Scope 1.
	Scope1Category Scope1Category `json:"scope1_category,omitempty"`

	// Scope3Category is required for Scope 3 activities.
	Scope3Category Scope3Category `json:"scope3_category,omitempty"`

	// Scope2MethodPin restricts a Scope 2 activity to one accounting
	// method. Empty computes both.
	Scope2MethodPin Scope2Method `json:"scope2_method,omitempty"`

	// Quantity must be positive; Unit names a physical unit the resolved
	// factor's unit must be convertible from.
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`

	// FuelType is an enumerated fuel; CustomFuel is a free-text fuel name
	// permitted only together with CustomFactor.
	FuelType   FuelType `json:"fuel_type,omitempty"`
	CustomFuel string   `json:"custom_fuel,omitempty"`

	// GridSubregion and Country give Scope 2 location context.
	GridSubregion string `json:"grid_subregion,omitempty"`
	Country       string `json:"country,omitempty"`

	// CustomFactor is a caller-supplied combined factor (kg CO2e per Unit)
	// that bypasses registry resolution entirely.
	CustomFactor *float64 `json:"custom_factor,omitempty"`

	// MarketFactor is a contractual/residual-mix factor (kg CO2e per Unit)
	// for the Scope 2 market-based method.
	MarketFactor *float64 `json:"market_factor,omitempty"`

	// RefrigerantType triggers the fugitive-leakage rule: the quantity is
	// a leaked refrigerant mass and the refrigerant's own GWP applies.
	RefrigerantType string `json:"refrigerant_type,omitempty"`

	// MethodHint narrows Scope 3 factor resolution ("spend_based",
	// "average_data").
	MethodHint string `json:"method_hint,omitempty"`
}

// Validate checks the activity's structural invariants. Factor
// resolvability is checked later, during calculation.
func (a *Activity) Validate() error {
	if a.Quantity <= 0 {
		return &InvalidActivityError{Field: "quantity", Value: fmt.Sprintf("%g", a.Quantity), Reason: "must be positive"}
	}
	if a.Scope < Scope1 || a.Scope > Scope3 {
		return &InvalidActivityError{Field: "scope", Value: fmt.Sprintf("%d", a.Scope), Reason: "must be 1, 2, or 3"}
	}
	if strings.TrimSpace(a.Unit) == "" {
		return &InvalidActivityError{Field: "unit", Reason: "is required"}
	}
	if a.Scope1Category != "" {
		if _, err := ParseScope1Category(string(a.Scope1Category)); err != nil {
			return &InvalidActivityError{Field: "scope1_category", Value: string(a.Scope1Category), Reason: "unknown category"}
		}
	}
	if a.Scope == Scope3 && !a.Scope3Category.Valid() {
		return &InvalidActivityError{Field: "scope3_category", Value: fmt.Sprintf("%d", a.Scope3Category), Reason: "must be 1 through 15"}
	}
	if a.FuelType != "" && !KnownFuel(string(a.FuelType)) {
		return &InvalidActivityError{Field: "fuel_type", Value: string(a.FuelType), Reason: "not an enumerated fuel (use custom_fuel with a custom_factor)"}
	}
	switch a.Scope2MethodPin {
	case "", LocationBased, MarketBased:
	default:
		return &InvalidActivityError{Field: "scope2_method", Value: string(a.Scope2MethodPin), Reason: "must be location_based or market_based"}
	}
	return nil
}

// GasBreakdownEntry records one gas's contribution to a Result, including
// the GWP value actually applied so results stay auditable independent of
// table state.
type GasBreakdownEntry struct {
	Gas     string  `json:"gas"`
	MassKg  float64 `json:"mass_kg"`
	GWPUsed float64 `json:"gwp_used"`
	CO2eKg  float64 `json:"co2e_kg"`
}

// Result is the outcome of calculating one activity under one method.
// Immutable once produced.
type Result struct {
	Scope          Scope          `json:"scope"`
	Scope1Category Scope1Category `json:"scope1_category,omitempty"`
	Scope3Category Scope3Category `json:"scope3_category,omitempty"`
	Method         Scope2Method   `json:"method,omitempty"`

	TotalCO2eKg     float64 `json:"total_co2e_kg"`
	TotalCO2eTonnes float64 `json:"total_co2e_tonnes"`

	// GasBreakdown is empty when the factor was a combined coefficient.
	GasBreakdown []GasBreakdownEntry `json:"gas_breakdown,omitempty"`

	// FactorID and FactorSource are empty when a caller override was used.
	FactorID     string `json:"factor_id,omitempty"`
	FactorSource string `json:"factor_source,omitempty"`

	Notes []string `json:"notes,omitempty"`

	// ActivityID and ActivityName trace back to the originating activity.
	ActivityID   string `json:"activity_id,omitempty"`
	ActivityName string `json:"activity_name,omitempty"`
}

// Inventory aggregates many Results for a reporting entity and period.
// Built once per calculation run; rebuild to add more activities.
type Inventory struct {
	Name string `json:"name,omitempty"`
	Year int    `json:"year,omitempty"`

	Scope1Tonnes         float64 `json:"scope1_tonnes"`
	Scope2LocationTonnes float64 `json:"scope2_location_tonnes"`
	Scope2MarketTonnes   float64 `json:"scope2_market_tonnes"`
	Scope3Tonnes         float64 `json:"scope3_tonnes"`

	// TotalTonnes sums Scope 1, Scope 2 location-based, and Scope 3. The
	// market-based sub-total is excluded to avoid double counting.
	TotalTonnes float64 `json:"total_tonnes"`

	// AllResults preserves calculation input order for reproducible
	// downstream reporting.
	AllResults []Result `json:"all_results"`
}
