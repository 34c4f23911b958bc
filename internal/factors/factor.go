// Package factors holds the emission-factor catalog: an embedded, versioned
// dataset loaded once into an immutable Registry that supports id lookup,
// ranked search, and per-activity resolution.
package factors

import (
	"fmt"
)

// Source identifies the provenance of a factor record.
type Source string

// Known factor sources.
const (
	SourceEPA      Source = "epa"      // EPA GHG Emission Factors Hub
	SourceEGRID    Source = "egrid"    // EPA eGRID subregion grid factors
	SourceEmber    Source = "ember"    // Ember yearly electricity data
	SourceIEA      Source = "iea"      // IEA national grid factors
	SourceDEFRA    Source = "defra"    // UK DEFRA conversion factors
	SourceUSEEIO   Source = "useeio"   // US EEIO spend-based factors
	SourceEXIOBASE Source = "exiobase" // EXIOBASE multi-regional IO factors
	SourceCustom   Source = "custom"
)

// constError is an immutable sentinel error type.
type constError string

func (e constError) Error() string { return string(e) }

// ErrFactorNotFound indicates an id lookup against a missing record.
const ErrFactorNotFound = constError("emission factor not found")

// Factor is a single emission-factor record. Records are immutable once the
// registry is built.
//
// A factor declares either a combined CO2e coefficient or per-gas
// coefficients (CO2, CH4, N2O, plus optional other high-GWP gases), never
// neither. All coefficients are kilograms of gas per activity unit.
type Factor struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Source     Source   `yaml:"source" json:"source"`
	Categories []string `yaml:"categories" json:"categories"`

	// Unit is the activity unit the coefficients are defined against.
	Unit string `yaml:"unit" json:"unit"`

	// CO2e is the combined coefficient. Mutually exclusive with the
	// per-gas fields below in meaning, though a record may carry both
	// (the per-gas values win during calculation).
	CO2e *float64 `yaml:"co2e,omitempty" json:"co2e,omitempty"`

	CO2 *float64 `yaml:"co2,omitempty" json:"co2,omitempty"`
	CH4 *float64 `yaml:"ch4,omitempty" json:"ch4,omitempty"`
	N2O *float64 `yaml:"n2o,omitempty" json:"n2o,omitempty"`

	// OtherGases carries additional high-GWP gases (gas id → kg per unit).
	OtherGases map[string]float64 `yaml:"other_gases,omitempty" json:"other_gases,omitempty"`
}

// HasGasBreakdown reports whether the factor declares per-gas coefficients.
func (f *Factor) HasGasBreakdown() bool {
	return f.CO2 != nil || f.CH4 != nil || f.N2O != nil || len(f.OtherGases) > 0
}

// GasCoefficients returns the declared per-gas coefficients as an ordered
// list of (gas, kg-per-unit) pairs: CO2, CH4, N2O first, then other gases
// in the order they appear in the dataset map is not stable, so other gases
// are returned sorted by the caller. The engine iterates this list to build
// the gas breakdown.
func (f *Factor) GasCoefficients() []GasCoefficient {
	var coeffs []GasCoefficient
	if f.CO2 != nil {
		coeffs = append(coeffs, GasCoefficient{Gas: "co2", KgPerUnit: *f.CO2})
	}
	if f.CH4 != nil {
		coeffs = append(coeffs, GasCoefficient{Gas: "ch4", KgPerUnit: *f.CH4})
	}
	if f.N2O != nil {
		coeffs = append(coeffs, GasCoefficient{Gas: "n2o", KgPerUnit: *f.N2O})
	}
	for _, gas := range sortedKeys(f.OtherGases) {
		coeffs = append(coeffs, GasCoefficient{Gas: gas, KgPerUnit: f.OtherGases[gas]})
	}
	return coeffs
}

// GasCoefficient is one per-gas coefficient of a factor.
type GasCoefficient struct {
	Gas       string
	KgPerUnit float64
}

// validate enforces the record invariants at registry build time.
func (f *Factor) validate() error {
	if f.ID == "" {
		return fmt.Errorf("factor with empty id (name %q)", f.Name)
	}
	if f.Unit == "" {
		return fmt.Errorf("factor %s: missing activity unit", f.ID)
	}
	if f.CO2e == nil && !f.HasGasBreakdown() {
		return fmt.Errorf("factor %s: declares neither a combined CO2e coefficient nor per-gas coefficients", f.ID)
	}
	return nil
}

// HasCategory reports whether the factor carries the given category tag.
func (f *Factor) HasCategory(category string) bool {
	for _, c := range f.Categories {
		if c == category {
			return true
		}
	}
	return false
}
