// Package equiv converts abstract emission totals (kg CO2e) into relatable
// real-world equivalencies like "miles driven" or "tree seedlings grown"
// using EPA-published conversion factors.
package equiv

import (
	"fmt"
	"math"
)

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// Each constant is the kg CO2e represented by one unit of the activity, so
// the equivalency is kg_CO2e / factor.
const (
	// MilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	MilesDrivenFactor = 0.192

	// SmartphoneChargeFactor is kg CO2e per full smartphone charge.
	SmartphoneChargeFactor = 0.00822

	// TreeSeedlingFactor is kg CO2e absorbed per tree seedling over 10 years.
	TreeSeedlingFactor = 60.0

	// HomeDayFactor is kg CO2e per day of average US home electricity.
	HomeDayFactor = 18.3
)

// MinThresholdKg is the smallest total worth expressing as equivalencies;
// below it the numbers are meaninglessly small.
const MinThresholdKg = 1.0

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is().
var (
	// ErrNegativeValue indicates a negative emission total.
	ErrNegativeValue = constError("negative emission value")

	// ErrCalculationOverflow indicates a value too large to convert safely.
	ErrCalculationOverflow = constError("calculation overflow")
)

// Equivalency is one real-world expression of an emission total.
type Equivalency struct {
	// Label is the descriptive phrase (e.g., "miles driven").
	Label string `json:"label"`

	// Value is the raw calculated equivalency value.
	Value float64 `json:"value"`

	// Formatted is the display-ready string with separators and scaling.
	Formatted string `json:"formatted"`
}

// ForKg computes the equivalency set for an emission total in kg CO2e.
// Totals below MinThresholdKg yield an empty slice.
func ForKg(kg float64) ([]Equivalency, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return nil, ErrCalculationOverflow
	}
	if kg < 0 {
		return nil, ErrNegativeValue
	}
	if kg < MinThresholdKg {
		return nil, nil
	}

	build := func(label string, factor float64) Equivalency {
		v := kg / factor
		return Equivalency{Label: label, Value: v, Formatted: FormatLarge(v)}
	}

	return []Equivalency{
		build("miles driven", MilesDrivenFactor),
		build("smartphones charged", SmartphoneChargeFactor),
		build("tree seedlings grown for 10 years", TreeSeedlingFactor),
		build("days of average US home electricity", HomeDayFactor),
	}, nil
}

// DisplayText renders the headline prose form for an emission total, or ""
// when the total is below the display threshold or invalid.
//
// Example: "Equivalent to driving ~781 miles or growing 2 tree seedlings
// for 10 years".
func DisplayText(kg float64) string {
	eqs, err := ForKg(kg)
	if err != nil || len(eqs) == 0 {
		return ""
	}
	return fmt.Sprintf("Equivalent to driving %s miles or growing %s tree seedlings for 10 years",
		eqs[0].Formatted, eqs[2].Formatted)
}
