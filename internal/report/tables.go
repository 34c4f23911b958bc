package report

import (
	"sort"
	"strings"

	"github.com/rshade/ghgcalc/internal/engine"
)

// ScopeRow is one line of the scope summary table.
type ScopeRow struct {
	Label  string  `json:"label"`
	Tonnes float64 `json:"tonnes"`
	Share  float64 `json:"share_percent"`
}

// scopeSummary builds the scope roll-up table. Shares are relative to the
// grand total; the market-based line is informational and excluded from it.
func scopeSummary(inv *engine.Inventory) []ScopeRow {
	share := func(tonnes float64) float64 {
		if inv.TotalTonnes == 0 {
			return 0
		}
		return tonnes / inv.TotalTonnes * 100
	}

	rows := []ScopeRow{
		{Label: "Scope 1 — Direct", Tonnes: inv.Scope1Tonnes, Share: share(inv.Scope1Tonnes)},
		{Label: "Scope 2 — Electricity (location-based)", Tonnes: inv.Scope2LocationTonnes, Share: share(inv.Scope2LocationTonnes)},
	}
	if inv.Scope2MarketTonnes > 0 {
		rows = append(rows, ScopeRow{Label: "Scope 2 — Electricity (market-based)", Tonnes: inv.Scope2MarketTonnes})
	}
	rows = append(rows,
		ScopeRow{Label: "Scope 3 — Value chain", Tonnes: inv.Scope3Tonnes, Share: share(inv.Scope3Tonnes)},
		ScopeRow{Label: "Total", Tonnes: inv.TotalTonnes, Share: share(inv.TotalTonnes)},
	)
	return rows
}

// CategoryRow is one numbered Scope 3 category's contribution.
type CategoryRow struct {
	Category int     `json:"category"`
	Name     string  `json:"name"`
	Tonnes   float64 `json:"tonnes"`
}

// scope3Breakdown sums Scope 3 results per numbered category, ascending.
func scope3Breakdown(inv *engine.Inventory) []CategoryRow {
	byCategory := map[engine.Scope3Category]float64{}
	for _, r := range inv.AllResults {
		if r.Scope == engine.Scope3 && r.Scope3Category.Valid() {
			byCategory[r.Scope3Category] += r.TotalCO2eTonnes
		}
	}

	rows := make([]CategoryRow, 0, len(byCategory))
	for category, tonnes := range byCategory {
		rows = append(rows, CategoryRow{Category: int(category), Name: category.Name(), Tonnes: tonnes})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

// GasRow aggregates one gas across every result's breakdown.
type GasRow struct {
	Gas     string  `json:"gas"`
	MassKg  float64 `json:"mass_kg"`
	CO2eKg  float64 `json:"co2e_kg"`
	GWPUsed float64 `json:"gwp_used"`
}

// gasBreakdown folds gas breakdown entries across all results, ordered by
// descending CO2e with ties broken by gas id.
func gasBreakdown(inv *engine.Inventory) []GasRow {
	type acc struct {
		mass, co2e, gwpUsed float64
	}
	byGas := map[string]*acc{}
	for _, r := range inv.AllResults {
		for _, entry := range r.GasBreakdown {
			a, ok := byGas[entry.Gas]
			if !ok {
				a = &acc{}
				byGas[entry.Gas] = a
			}
			a.mass += entry.MassKg
			a.co2e += entry.CO2eKg
			a.gwpUsed = entry.GWPUsed
		}
	}

	rows := make([]GasRow, 0, len(byGas))
	for gas, a := range byGas {
		rows = append(rows, GasRow{Gas: strings.ToUpper(gas), MassKg: a.mass, CO2eKg: a.co2e, GWPUsed: a.gwpUsed})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CO2eKg != rows[j].CO2eKg {
			return rows[i].CO2eKg > rows[j].CO2eKg
		}
		return rows[i].Gas < rows[j].Gas
	})
	return rows
}

// RegionRow attributes emissions to a geographic label for the regional
// distribution table.
type RegionRow struct {
	Region string  `json:"region"`
	Tonnes float64 `json:"tonnes"`
}

// regionRows groups result tonnes by the originating activity's location
// context. Market-based Scope 2 results are skipped to mirror the grand
// total convention; activities without location data fold into "unspecified".
func regionRows(inv *engine.Inventory, activities []engine.Activity) []RegionRow {
	location := map[string]string{}
	for _, a := range activities {
		label := strings.ToUpper(strings.TrimSpace(a.Country))
		if sub := strings.ToUpper(strings.TrimSpace(a.GridSubregion)); sub != "" {
			label = sub
		}
		if label != "" && a.ID != "" {
			location[a.ID] = label
		}
	}

	byRegion := map[string]float64{}
	for _, r := range inv.AllResults {
		if r.Scope == engine.Scope2 && r.Method == engine.MarketBased {
			continue
		}
		label, ok := location[r.ActivityID]
		if !ok {
			label = "unspecified"
		}
		byRegion[label] += r.TotalCO2eTonnes
	}

	rows := make([]RegionRow, 0, len(byRegion))
	for region, tonnes := range byRegion {
		rows = append(rows, RegionRow{Region: region, Tonnes: tonnes})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Tonnes != rows[j].Tonnes {
			return rows[i].Tonnes > rows[j].Tonnes
		}
		return rows[i].Region < rows[j].Region
	})
	return rows
}

// sourceRows ranks the largest individual emission results for the "top
// sources" section, capped at limit.
func sourceRows(inv *engine.Inventory, limit int) []RegionRow {
	rows := make([]RegionRow, 0, len(inv.AllResults))
	for _, r := range inv.AllResults {
		if r.Scope == engine.Scope2 && r.Method == engine.MarketBased {
			continue
		}
		label := r.ActivityName
		if label == "" {
			label = r.ActivityID
		}
		if label == "" {
			label = r.FactorID
		}
		rows = append(rows, RegionRow{Region: label, Tonnes: r.TotalCO2eTonnes})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Tonnes > rows[j].Tonnes })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
