// Package units provides dimension-aware conversion between the physical
// units emission factors are expressed in.
//
// Units belong to dimension families (energy, volume, mass, distance) and
// convert linearly through a common base unit per family. Converting across
// families is always an error; the converter never coerces.
package units

import (
	"fmt"
	"math"
	"strings"
)

// Dimension identifies a family of mutually convertible units.
type Dimension string

// Supported dimension families.
const (
	DimensionEnergy   Dimension = "energy"
	DimensionVolume   Dimension = "volume"
	DimensionMass     Dimension = "mass"
	DimensionDistance Dimension = "distance"
	DimensionSpend    Dimension = "spend"
)

// constError is an immutable sentinel error type.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownUnit indicates a unit string not present in the conversion table.
const ErrUnknownUnit = constError("unknown unit")

// DimensionError reports an attempted conversion between units of different
// dimension families. It is never recovered internally.
type DimensionError struct {
	FromUnit      string
	ToUnit        string
	FromDimension Dimension
	ToDimension   Dimension
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: cannot convert %s (%s) to %s (%s)",
		e.FromUnit, e.FromDimension, e.ToUnit, e.ToDimension)
}

// unitDef ties a unit to its dimension and its multiplier into the family
// base unit (kWh for energy, liter for volume, kg for mass, km for distance).
type unitDef struct {
	dimension Dimension
	toBase    float64
}

// Conversion table. Base-unit multipliers follow EPA/GHG Protocol reference
// values; mass constants match the greenhouse-gas reporting convention of
// distinguishing short tons from metric tonnes.
//
//nolint:gochecknoglobals // Read-only table, built once.
var unitTable = map[string]unitDef{
	// Energy (base: kWh)
	"kwh":   {DimensionEnergy, 1},
	"mwh":   {DimensionEnergy, 1000},
	"gwh":   {DimensionEnergy, 1_000_000},
	"therm": {DimensionEnergy, 29.3001},
	"mmbtu": {DimensionEnergy, 293.071},
	"btu":   {DimensionEnergy, 0.000293071},
	"mj":    {DimensionEnergy, 0.277778},
	"gj":    {DimensionEnergy, 277.778},

	// Volume (base: liter)
	"liter":       {DimensionVolume, 1},
	"gallon":      {DimensionVolume, 3.78541},
	"cubic_meter": {DimensionVolume, 1000},
	"cubic_foot":  {DimensionVolume, 28.3168},
	"barrel":      {DimensionVolume, 158.987},

	// Mass (base: kg)
	"kg":        {DimensionMass, 1},
	"g":         {DimensionMass, 0.001},
	"lb":        {DimensionMass, 0.453592},
	"tonne":     {DimensionMass, 1000},
	"short_ton": {DimensionMass, 907.185},
	"long_ton":  {DimensionMass, 1016.05},

	// Distance (base: km)
	"km":   {DimensionDistance, 1},
	"mile": {DimensionDistance, 1.60934},

	// Spend (base: usd). Spend-based Scope 3 factors are defined per
	// inflation-adjusted US dollar; no currency conversion is attempted.
	"usd": {DimensionSpend, 1},
}

// aliases maps common spellings onto canonical unit names.
//
//nolint:gochecknoglobals // Read-only table, built once.
var aliases = map[string]string{
	"l":          "liter",
	"litre":      "liter",
	"liters":     "liter",
	"gal":        "gallon",
	"gallons":    "gallon",
	"m3":         "cubic_meter",
	"scf":        "cubic_foot",
	"ft3":        "cubic_foot",
	"bbl":        "barrel",
	"therms":     "therm",
	"kilogram":   "kg",
	"kilograms":  "kg",
	"gram":       "g",
	"lbs":        "lb",
	"pound":      "lb",
	"pounds":     "lb",
	"t":          "tonne",
	"metric_ton": "tonne",
	"ton":        "short_ton",
	"miles":      "mile",
	"mi":         "mile",
}

// Normalize returns the canonical name for a unit string, lowercasing and
// resolving aliases. Returns ErrUnknownUnit (wrapped with the input) when
// the unit is not in the table.
func Normalize(unit string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	if _, ok := unitTable[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return name, nil
}

// DimensionOf returns the dimension family a unit belongs to.
func DimensionOf(unit string) (Dimension, error) {
	name, err := Normalize(unit)
	if err != nil {
		return "", err
	}
	return unitTable[name].dimension, nil
}

// Compatible reports whether two units belong to the same dimension family.
// Unknown units are never compatible with anything.
func Compatible(a, b string) bool {
	da, err := DimensionOf(a)
	if err != nil {
		return false
	}
	db, err := DimensionOf(b)
	if err != nil {
		return false
	}
	return da == db
}

// Convert converts value from one unit to another within the same dimension
// family. It returns a *DimensionError when the families differ and
// ErrUnknownUnit when either unit is unrecognized.
//
// Conversions are invertible: Convert(Convert(v, A, B), B, A) equals v
// within floating-point tolerance.
func Convert(value float64, from, to string) (float64, error) {
	fromName, err := Normalize(from)
	if err != nil {
		return 0, err
	}
	toName, err := Normalize(to)
	if err != nil {
		return 0, err
	}

	fromDef := unitTable[fromName]
	toDef := unitTable[toName]
	if fromDef.dimension != toDef.dimension {
		return 0, &DimensionError{
			FromUnit:      fromName,
			ToUnit:        toName,
			FromDimension: fromDef.dimension,
			ToDimension:   toDef.dimension,
		}
	}

	result := value * fromDef.toBase / toDef.toBase
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, fmt.Errorf("conversion overflow: %g %s to %s", value, fromName, toName)
	}
	return result, nil
}

// Units returns the canonical unit names for a dimension, in no particular
// order. Used by the CLI to print the supported vocabulary.
func Units(dim Dimension) []string {
	var names []string
	for name, def := range unitTable {
		if def.dimension == dim {
			names = append(names, name)
		}
	}
	return names
}
