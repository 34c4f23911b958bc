package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgcalc/internal/engine"
)

func TestDecodeArray(t *testing.T) {
	raw := []byte(`[
		{"scope": 1, "fuel_type": "natural_gas", "quantity": 1000, "unit": "therm"},
		{"scope": 2, "quantity": 5000, "unit": "kwh", "grid_subregion": "camx"}
	]`)

	records, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "natural_gas", records[0].FuelType)
	assert.Equal(t, "camx", records[1].GridSubregion)
}

func TestDecodeSingleObject(t *testing.T) {
	raw := []byte(`{"scope": 3, "scope3_category": 6, "quantity": 1200, "unit": "km"}`)

	records, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 6, records[0].Scope3Category)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"scope": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing activity records")
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"scope":1,"fuel_type":"diesel","quantity":10,"unit":"gallon"}]`), 0600))

	records, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestValidateCollectsPerRecordErrors(t *testing.T) {
	records := []Record{
		{Scope: 1, FuelType: "natural_gas", Quantity: 100, Unit: "therm"}, // valid
		{Scope: 1, FuelType: "natural_gas", Quantity: -5, Unit: "therm"},  // bad quantity
		{Scope: 9, Quantity: 10, Unit: "kwh"},                             // bad scope
		{Scope: 2, Quantity: 10, Unit: "kwh"},                             // valid
		{Scope: 1, FuelType: "plutonium", Quantity: 1, Unit: "kg"},        // engine-level fuel check
	}

	report := Validate(records)
	assert.Equal(t, 2, report.Valid)
	require.Len(t, report.Errors, 3)
	assert.False(t, report.OK())

	indexes := []int{report.Errors[0].Index, report.Errors[1].Index, report.Errors[2].Index}
	assert.Equal(t, []int{1, 2, 4}, indexes, "errors carry the failing record's index")

	var invErr *engine.InvalidActivityError
	assert.ErrorAs(t, report.Errors[2].Err, &invErr)
}

func TestValidateAllValid(t *testing.T) {
	report := Validate([]Record{
		{Scope: 3, Scope3Category: 1, Quantity: 1000, Unit: "usd"},
	})
	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Valid)
}

func TestActivitiesAssignsIDs(t *testing.T) {
	records := []Record{
		{ID: "keep-me", Scope: 1, FuelType: "diesel", Quantity: 10, Unit: "gallon"},
		{Scope: 2, Quantity: 100, Unit: "kwh"},
		{Scope: 2, Quantity: 200, Unit: "kwh"},
	}

	activities := Activities(records)
	require.Len(t, activities, 3)
	assert.Equal(t, "keep-me", activities[0].ID)
	assert.NotEmpty(t, activities[1].ID)
	assert.NotEmpty(t, activities[2].ID)
	assert.NotEqual(t, activities[1].ID, activities[2].ID)
}

func TestToActivityFieldMapping(t *testing.T) {
	market := 0.05
	record := Record{
		ID: "r1", Name: "HQ electricity", Scope: 2, Scope2Method: "market_based",
		Quantity: 500, Unit: "kwh", Country: "de", MarketFactor: &market,
	}

	activity := record.ToActivity()
	assert.Equal(t, engine.Scope2, activity.Scope)
	assert.Equal(t, engine.MarketBased, activity.Scope2MethodPin)
	assert.Equal(t, "de", activity.Country)
	require.NotNil(t, activity.MarketFactor)
	assert.Equal(t, market, *activity.MarketFactor)
}
