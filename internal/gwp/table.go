// Package gwp holds the IPCC 100-year Global Warming Potential tables used
// to weight non-CO2 gas masses into CO2-equivalent mass.
//
// Two assessment report versions are supported (AR5 and AR6). Values for
// the same gas legitimately differ between them, so the assessment choice
// is part of every calculation context rather than a process-wide setting.
// The tables are constant data: loaded once, never mutated.
package gwp

import (
	"fmt"
	"sort"
	"strings"
)

// Assessment selects an IPCC assessment report version.
type Assessment string

// Supported assessment report versions.
const (
	AR5 Assessment = "ar5"
	AR6 Assessment = "ar6"
)

// constError is an immutable sentinel error type.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for GWP lookups.
const (
	// ErrUnknownGas indicates a gas identifier missing from the table for
	// the requested assessment.
	ErrUnknownGas = constError("unknown gas")

	// ErrUnknownAssessment indicates an unsupported assessment version.
	ErrUnknownAssessment = constError("unknown GWP assessment")
)

// ParseAssessment normalizes an assessment string ("ar5", "AR6", ...).
func ParseAssessment(s string) (Assessment, error) {
	switch Assessment(strings.ToLower(strings.TrimSpace(s))) {
	case AR5:
		return AR5, nil
	case AR6:
		return AR6, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAssessment, s)
	}
}

// 100-year GWP values. AR5 values are from IPCC AR5 Table 8.A.1; AR6 values
// from IPCC AR6 Table 7.SM.7. Refrigerant blends (r-4xx) use the
// composition-weighted values published alongside the pure compounds.
//
//nolint:gochecknoglobals // Read-only constant tables.
var (
	ar5Table = map[string]float64{
		"co2":       1,
		"ch4":       28,
		"n2o":       265,
		"hfc-23":    12400,
		"hfc-32":    677,
		"hfc-125":   3170,
		"hfc-134a":  1300,
		"hfc-143a":  4800,
		"hfc-152a":  138,
		"hfc-227ea": 3350,
		"hfc-236fa": 8060,
		"r-404a":    3922,
		"r-407c":    1774,
		"r-410a":    2088,
		"r-507a":    3985,
		"sf6":       23500,
		"nf3":       16100,
		"cf4":       6630,
		"c2f6":      11100,
	}

	ar6Table = map[string]float64{
		"co2":       1,
		"ch4":       27.9,
		"n2o":       273,
		"hfc-23":    14600,
		"hfc-32":    771,
		"hfc-125":   3740,
		"hfc-134a":  1530,
		"hfc-143a":  5810,
		"hfc-152a":  164,
		"hfc-227ea": 3600,
		"hfc-236fa": 8690,
		"r-404a":    4728,
		"r-407c":    2050,
		"r-410a":    2256,
		"r-507a":    4700,
		"sf6":       24300,
		"nf3":       17400,
		"cf4":       7380,
		"c2f6":      12400,
	}
)

func table(assessment Assessment) (map[string]float64, error) {
	switch assessment {
	case AR5:
		return ar5Table, nil
	case AR6:
		return ar6Table, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssessment, assessment)
	}
}

// Lookup returns the 100-year GWP for a gas under the given assessment.
// Gas identifiers are matched case-insensitively ("CH4" == "ch4").
func Lookup(gas string, assessment Assessment) (float64, error) {
	tbl, err := table(assessment)
	if err != nil {
		return 0, err
	}
	value, ok := tbl[strings.ToLower(strings.TrimSpace(gas))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (%s)", ErrUnknownGas, gas, assessment)
	}
	return value, nil
}

// Gases lists the gas identifiers in an assessment's table, alphabetically,
// so listings are deterministic and test-stable.
func Gases(assessment Assessment) ([]string, error) {
	tbl, err := table(assessment)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tbl))
	for gas := range tbl {
		names = append(names, gas)
	}
	sort.Strings(names)
	return names, nil
}
