package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgcalc/internal/engine"
)

// execute runs the root command with args and captures stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("GHGCALC_HOME", t.TempDir()) // isolate from any user config

	cmd := NewRootCmd("test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConvertCmd(t *testing.T) {
	stdout, _, err := execute(t, "convert", "1", "therm", "kwh")

	require.NoError(t, err)
	assert.Contains(t, stdout, "1 therm = 29.3001 kwh")
}

func TestConvertCmdDimensionMismatch(t *testing.T) {
	_, _, err := execute(t, "convert", "1", "therm", "kg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}

func TestConvertCmdBadValue(t *testing.T) {
	_, _, err := execute(t, "convert", "lots", "therm", "kwh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
}

func TestCalculateCmdScope1JSON(t *testing.T) {
	stdout, _, err := execute(t, "calculate",
		"--scope", "1", "--category", "stationary_combustion",
		"--fuel", "natural_gas", "--quantity", "1000", "--unit", "therm",
		"--json")
	require.NoError(t, err)

	var results []engine.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, engine.Scope1, results[0].Scope)
	// therm factor resolves directly (no mmbtu conversion):
	// 1000 × (5.302 + 0.0005×28 + 1.06e-05×265) = 5318.809 kg
	assert.Equal(t, "epa_natural_gas_therm", results[0].FactorID)
	assert.InDelta(t, 5318.809, results[0].TotalCO2eKg, 1e-6)
}

func TestCalculateCmdScope2BothMethods(t *testing.T) {
	stdout, _, err := execute(t, "calculate",
		"--scope", "2", "--quantity", "10000", "--unit", "kwh",
		"--region", "camx", "--json")
	require.NoError(t, err)

	var results []engine.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	assert.Equal(t, engine.LocationBased, results[0].Method)
	assert.Equal(t, engine.MarketBased, results[1].Method)
}

func TestCalculateCmdPlainOutput(t *testing.T) {
	stdout, _, err := execute(t, "calculate",
		"--scope", "1", "--fuel", "natural_gas", "--quantity", "1000", "--unit", "therm")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Total CO2e:")
	assert.Contains(t, stdout, "kg")
	assert.Contains(t, stdout, "Equivalent to driving")
}

func TestCalculateCmdUnknownScope1Category(t *testing.T) {
	_, _, err := execute(t, "calculate",
		"--scope", "1", "--category", "imaginary",
		"--quantity", "10", "--unit", "therm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown Scope 1 category")
}

func TestCalculateCmdScope3CategoryMustBeNumeric(t *testing.T) {
	_, _, err := execute(t, "calculate",
		"--scope", "3", "--category", "travel",
		"--quantity", "10", "--unit", "usd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a number")
}

func TestCalculateCmdCustomFactorOverride(t *testing.T) {
	stdout, _, err := execute(t, "calculate",
		"--scope", "1", "--fuel", "peat briquettes", "--factor", "2.5",
		"--quantity", "100", "--unit", "tonne", "--json")
	require.NoError(t, err)

	var results []engine.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.InDelta(t, 250.0, results[0].TotalCO2eKg, 1e-9)
	assert.Empty(t, results[0].FactorID)
}

func TestCalculateCmdAR6(t *testing.T) {
	stdout, _, err := execute(t, "calculate",
		"--scope", "1", "--category", "fugitive",
		"--refrigerant", "hfc-134a", "--quantity", "2", "--unit", "kg",
		"--assessment", "ar6", "--json")
	require.NoError(t, err)

	var results []engine.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.InDelta(t, 2*1530.0, results[0].TotalCO2eKg, 1e-6)
}

func TestGWPCmdSingleGas(t *testing.T) {
	stdout, _, err := execute(t, "gwp", "ch4")

	require.NoError(t, err)
	assert.Contains(t, stdout, "GWP of ch4 (ar5, 100-year): 28")
}

func TestGWPCmdUnknownGas(t *testing.T) {
	_, _, err := execute(t, "gwp", "unobtainium")
	require.Error(t, err)
}

func TestGWPCmdListsTable(t *testing.T) {
	stdout, _, err := execute(t, "gwp")

	require.NoError(t, err)
	assert.Contains(t, stdout, "GWP values (ar5)")
	assert.Contains(t, stdout, "ch4")
	assert.Contains(t, stdout, "n2o")
}

func TestFactorsCmdSearch(t *testing.T) {
	stdout, _, err := execute(t, "factors", "diesel", "--source", "epa", "--limit", "5")

	require.NoError(t, err)
	assert.Contains(t, stdout, "diesel")
	assert.Contains(t, stdout, "Catalog:")
}

func TestFactorsCmdNoMatch(t *testing.T) {
	stdout, _, err := execute(t, "factors", "zzz-no-such-factor-zzz")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No factors found.")
}

func writeActivityFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const validActivitiesJSON = `[
  {"scope": 1, "scope1_category": "stationary_combustion", "fuel_type": "natural_gas", "quantity": 1000, "unit": "therm"},
  {"scope": 2, "quantity": 50000, "unit": "kwh", "grid_subregion": "camx"},
  {"scope": 3, "scope3_category": 1, "quantity": 25000, "unit": "usd"}
]`

func TestValidateCmdValidFile(t *testing.T) {
	path := writeActivityFile(t, validActivitiesJSON)

	stdout, _, err := execute(t, "validate", path)

	require.NoError(t, err)
	assert.Contains(t, stdout, "3 valid records")
}

func TestValidateCmdInvalidRecords(t *testing.T) {
	path := writeActivityFile(t, `[
  {"scope": 1, "fuel_type": "natural_gas", "quantity": 100, "unit": "therm"},
  {"scope": 1, "quantity": -5, "unit": "therm"},
  {"scope": 3, "quantity": 100, "unit": "usd"}
]`)

	stdout, stderr, err := execute(t, "validate", path)

	require.Error(t, err)
	assert.Contains(t, stdout, "1 valid records")
	assert.Contains(t, stderr, "record 1:")
	assert.Contains(t, stderr, "record 2:")
}

func TestValidateCmdMissingFile(t *testing.T) {
	_, _, err := execute(t, "validate", "/no/such/file.json")
	require.Error(t, err)
}

func TestReportCmdHTML(t *testing.T) {
	activityPath := writeActivityFile(t, validActivitiesJSON)
	outPath := filepath.Join(t.TempDir(), "report.html")

	stdout, _, err := execute(t, "report", activityPath,
		"--output", outPath, "--title", "Acme FY2025", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Report generated: "+outPath)

	html, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(html), "<title>Acme FY2025</title>")
	assert.Contains(t, string(html), "2025")
}

func TestReportCmdJSON(t *testing.T) {
	activityPath := writeActivityFile(t, validActivitiesJSON)
	outPath := filepath.Join(t.TempDir(), "report.json")

	_, _, err := execute(t, "report", activityPath, "--output", outPath, "--json")
	require.NoError(t, err)

	raw, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)

	var rep struct {
		Inventory struct {
			TotalTonnes float64 `json:"total_tonnes"`
		} `json:"inventory"`
	}
	require.NoError(t, json.Unmarshal(raw, &rep))
	assert.Positive(t, rep.Inventory.TotalTonnes)
}

func TestReportCmdRejectsInvalidRecords(t *testing.T) {
	path := writeActivityFile(t, `[{"scope": 9, "quantity": 1, "unit": "kwh"}]`)

	_, _, err := execute(t, "report", path, "--output", filepath.Join(t.TempDir(), "r.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid records")
}

func TestReportCmdUnknownFormat(t *testing.T) {
	path := writeActivityFile(t, validActivitiesJSON)

	_, _, err := execute(t, "report", path, "--format", "sasb",
		"--output", filepath.Join(t.TempDir(), "r.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
}

func TestIsWriterTerminalBuffer(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, isWriterTerminal(&buf))
}
