package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

// syntheticFactors is a minimal catalog exercising every record shape.
func syntheticFactors() []Factor {
	return []Factor{
		{
			ID: "epa_natural_gas_therm", Name: "Natural Gas (stationary combustion)",
			Source: SourceEPA, Categories: []string{"scope1", "stationary_combustion", "natural_gas"},
			Unit: "therm", CO2: ptr(5.302), CH4: ptr(0.0005), N2O: ptr(0.0000106),
		},
		{
			ID: "epa_natural_gas_mmbtu", Name: "Natural Gas (stationary combustion)",
			Source: SourceEPA, Categories: []string{"scope1", "stationary_combustion", "natural_gas"},
			Unit: "mmbtu", CO2: ptr(53.06), CH4: ptr(0.005), N2O: ptr(0.0001),
		},
		{
			ID: "epa_diesel_gallon", Name: "Diesel Fuel (mobile combustion)",
			Source: SourceEPA, Categories: []string{"scope1", "mobile_combustion", "diesel"},
			Unit: "gallon", CO2: ptr(10.21), CH4: ptr(0.00057), N2O: ptr(0.00026),
		},
		{
			ID: "egrid_camx", Name: "eGRID CAMX subregion electricity",
			Source: SourceEGRID, Categories: []string{"scope2", "electricity", "grid"},
			Unit: "kwh", CO2: ptr(0.2247), CH4: ptr(0.0000225), N2O: ptr(0.00000225),
		},
		{
			ID: "grid_us", Name: "National grid electricity (US)",
			Source: SourceEmber, Categories: []string{"scope2", "electricity", "grid"},
			Unit: "kwh", CO2e: ptr(0.386),
		},
		{
			ID: "grid_world", Name: "World-average grid electricity",
			Source: SourceEmber, Categories: []string{"scope2", "electricity", "grid"},
			Unit: "kwh", CO2e: ptr(0.436),
		},
		{
			ID: "useeio_cat1_office_supplies", Name: "Purchased goods and services — office supplies",
			Source: SourceUSEEIO, Categories: []string{"scope3", "scope3_cat1", "spend_based"},
			Unit: "usd", CO2e: ptr(0.42),
		},
		{
			ID: "defra_cat6_rail_national", Name: "Business travel — national rail",
			Source: SourceDEFRA, Categories: []string{"scope3", "scope3_cat6", "average_data"},
			Unit: "km", CO2e: ptr(0.0355),
		},
		{
			ID: "epa_hcfc_blend_kg", Name: "HCFC blend with trace gases",
			Source: SourceEPA, Categories: []string{"scope1", "process"},
			Unit: "kg", OtherGases: map[string]float64{"sf6": 0.01, "cf4": 0.002},
		},
	}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	registry, err := New(syntheticFactors())
	require.NoError(t, err)
	return registry
}

func TestLoadEmbeddedDataset(t *testing.T) {
	registry, err := Load()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, registry.Count(), 900, "embedded catalog carries 900+ records")
	assert.Equal(t, "1.2.0", registry.Version())

	// Spot-check a record every scope relies on.
	f, err := registry.LookupByID("epa_natural_gas_therm")
	require.NoError(t, err)
	assert.Equal(t, "therm", f.Unit)
	assert.True(t, f.HasGasBreakdown())

	world, err := registry.LookupByID("grid_world")
	require.NoError(t, err)
	assert.False(t, world.HasGasBreakdown())
	require.NotNil(t, world.CO2e)
}

func TestLoadValidatesEveryRecord(t *testing.T) {
	registry, err := Load()
	require.NoError(t, err)
	for _, f := range registry.All() {
		assert.NotEmpty(t, f.Unit, "factor %s missing unit", f.ID)
		assert.True(t, f.CO2e != nil || f.HasGasBreakdown(),
			"factor %s declares neither combined nor per-gas coefficients", f.ID)
	}
}

func TestNewRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name    string
		records []Factor
		wantMsg string
	}{
		{
			name:    "no coefficients",
			records: []Factor{{ID: "bad", Name: "Bad", Unit: "kwh"}},
			wantMsg: "neither",
		},
		{
			name:    "missing unit",
			records: []Factor{{ID: "bad", Name: "Bad", CO2e: ptr(1)}},
			wantMsg: "missing activity unit",
		},
		{
			name:    "empty id",
			records: []Factor{{Name: "Bad", Unit: "kwh", CO2e: ptr(1)}},
			wantMsg: "empty id",
		},
		{
			name: "duplicate id",
			records: []Factor{
				{ID: "dup", Name: "A", Unit: "kwh", CO2e: ptr(1)},
				{ID: "dup", Name: "B", Unit: "kwh", CO2e: ptr(2)},
			},
			wantMsg: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.records)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLookupByID(t *testing.T) {
	registry := newTestRegistry(t)

	f, err := registry.LookupByID("grid_us")
	require.NoError(t, err)
	assert.Equal(t, SourceEmber, f.Source)

	_, err = registry.LookupByID("grid_atlantis")
	require.ErrorIs(t, err, ErrFactorNotFound)
	assert.Contains(t, err.Error(), "grid_atlantis")
}

func TestGasCoefficientsOrdering(t *testing.T) {
	registry := newTestRegistry(t)

	f, err := registry.LookupByID("epa_natural_gas_therm")
	require.NoError(t, err)
	coeffs := f.GasCoefficients()
	require.Len(t, coeffs, 3)
	assert.Equal(t, "co2", coeffs[0].Gas)
	assert.Equal(t, "ch4", coeffs[1].Gas)
	assert.Equal(t, "n2o", coeffs[2].Gas)

	blend, err := registry.LookupByID("epa_hcfc_blend_kg")
	require.NoError(t, err)
	coeffs = blend.GasCoefficients()
	require.Len(t, coeffs, 2)
	// Other gases sorted by name for deterministic breakdowns.
	assert.Equal(t, "cf4", coeffs[0].Gas)
	assert.Equal(t, "sf6", coeffs[1].Gas)
}
