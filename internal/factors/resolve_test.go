package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScope1ByFuelAndUnit(t *testing.T) {
	registry := newTestRegistry(t)

	tests := []struct {
		name   string
		query  ActivityQuery
		wantID string
	}{
		{
			// The mmbtu record id-sorts first but the therm record is an
			// exact unit match, so it must win without conversion.
			name:   "natural gas in therms",
			query:  ActivityQuery{Scope: 1, FuelType: "natural_gas", Unit: "therm"},
			wantID: "epa_natural_gas_therm",
		},
		{
			name:   "natural gas in mmbtu",
			query:  ActivityQuery{Scope: 1, FuelType: "natural_gas", Unit: "mmbtu"},
			wantID: "epa_natural_gas_mmbtu",
		},
		{
			// No exact unit match: lowest id among compatible candidates.
			name:   "natural gas in compatible energy unit",
			query:  ActivityQuery{Scope: 1, FuelType: "natural_gas", Unit: "kwh"},
			wantID: "epa_natural_gas_mmbtu",
		},
		{
			name:   "diesel in liters converts to gallon factor",
			query:  ActivityQuery{Scope: 1, FuelType: "diesel", Unit: "liter"},
			wantID: "epa_diesel_gallon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := registry.ResolveForActivity(tt.query)
			require.NotNil(t, res)
			assert.Equal(t, tt.wantID, res.Factor.ID)
			assert.Empty(t, res.Notes)
		})
	}
}

func TestResolveScope1NoMatch(t *testing.T) {
	registry := newTestRegistry(t)

	// Unit incompatible with every natural gas factor.
	res := registry.ResolveForActivity(ActivityQuery{Scope: 1, FuelType: "natural_gas", Unit: "kg"})
	assert.Nil(t, res)

	// Unknown fuel.
	res = registry.ResolveForActivity(ActivityQuery{Scope: 1, FuelType: "whale_oil", Unit: "gallon"})
	assert.Nil(t, res)

	// No fuel at all.
	res = registry.ResolveForActivity(ActivityQuery{Scope: 1, Unit: "gallon"})
	assert.Nil(t, res)
}

func TestResolveScope2SubregionPreferred(t *testing.T) {
	registry := newTestRegistry(t)

	res := registry.ResolveForActivity(ActivityQuery{Scope: 2, Unit: "kwh", GridSubregion: "CAMX", Country: "us"})
	require.NotNil(t, res)
	assert.Equal(t, "egrid_camx", res.Factor.ID)
	assert.Empty(t, res.Notes)
}

func TestResolveScope2CountryFallback(t *testing.T) {
	registry := newTestRegistry(t)

	// Subregion without a factor falls back to country, with a note.
	res := registry.ResolveForActivity(ActivityQuery{Scope: 2, Unit: "kwh", GridSubregion: "XXXX", Country: "us"})
	require.NotNil(t, res)
	assert.Equal(t, "grid_us", res.Factor.ID)
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "falling back to country-level factor")
}

func TestResolveScope2WorldDefault(t *testing.T) {
	registry := newTestRegistry(t)

	// No region data at all: world-average default, explicitly noted.
	res := registry.ResolveForActivity(ActivityQuery{Scope: 2, Unit: "kwh"})
	require.NotNil(t, res)
	assert.Equal(t, "grid_world", res.Factor.ID)
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "region unspecified")

	// Unknown country: two fallbacks, two notes.
	res = registry.ResolveForActivity(ActivityQuery{Scope: 2, Unit: "kwh", Country: "atlantis"})
	require.NotNil(t, res)
	assert.Equal(t, "grid_world", res.Factor.ID)
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "world-average")
}

func TestResolveScope2UnitIncompatible(t *testing.T) {
	registry := newTestRegistry(t)

	res := registry.ResolveForActivity(ActivityQuery{Scope: 2, Unit: "gallon", GridSubregion: "camx"})
	assert.Nil(t, res, "electricity factors are per kWh; volume units cannot resolve")
}

func TestResolveScope3ByCategory(t *testing.T) {
	registry := newTestRegistry(t)

	res := registry.ResolveForActivity(ActivityQuery{Scope: 3, Scope3Category: 6, Unit: "km"})
	require.NotNil(t, res)
	assert.Equal(t, "defra_cat6_rail_national", res.Factor.ID)

	res = registry.ResolveForActivity(ActivityQuery{Scope: 3, Scope3Category: 1, Unit: "usd", MethodHint: "spend_based"})
	require.NotNil(t, res)
	assert.Equal(t, "useeio_cat1_office_supplies", res.Factor.ID)
}

func TestResolveScope3OutOfRange(t *testing.T) {
	registry := newTestRegistry(t)

	assert.Nil(t, registry.ResolveForActivity(ActivityQuery{Scope: 3, Scope3Category: 0, Unit: "usd"}))
	assert.Nil(t, registry.ResolveForActivity(ActivityQuery{Scope: 3, Scope3Category: 16, Unit: "usd"}))
	assert.Nil(t, registry.ResolveForActivity(ActivityQuery{Scope: 3, Scope3Category: 2, Unit: "usd"}),
		"no cat2 factor in the synthetic catalog")
}

func TestResolveUnknownScope(t *testing.T) {
	registry := newTestRegistry(t)
	assert.Nil(t, registry.ResolveForActivity(ActivityQuery{Scope: 4, Unit: "kwh"}))
}
