package report

import (
	"encoding/json"
	"fmt"

	"github.com/rshade/ghgcalc/internal/engine"
)

// Green-on-black palette shared by every chart.
const (
	colorGreenDark    = "#0D1F0D"
	colorGreenDeep    = "#1B3A1B"
	colorGreenPrimary = "#2D6A2D"
	colorGreenMid     = "#3D8B3D"
	colorGreenBright  = "#4CAF50"
	colorGreenLight   = "#81C784"
	colorGreenPale    = "#A5D6A7"
	colorAccentLime   = "#7CB342"
	colorAccentTeal   = "#00897B"
	colorAccentGold   = "#C6A700"
	colorBlack        = "#0A0A0A"
	colorCharcoal     = "#1A1A1A"
	colorGrayMid      = "#555555"
	colorGrayLight    = "#888888"
	colorCream        = "#FAFAF5"
)

//nolint:gochecknoglobals // Constant rotation palette.
var categoryPalette = []string{
	colorGreenBright, colorGreenDeep, colorAccentTeal, colorAccentLime,
	colorGreenMid, colorGreenPale, colorAccentGold, colorGreenLight,
}

// chart is one plotly figure, pre-marshaled for direct embedding in the
// report's script block.
type chart struct {
	ID     string
	Data   string
	Layout string
}

func baseLayout(title string) map[string]any {
	return map[string]any{
		"paper_bgcolor": "rgba(0,0,0,0)",
		"plot_bgcolor":  "rgba(0,0,0,0)",
		"font": map[string]any{
			"family": "'Playfair Display', 'Georgia', serif",
			"color":  colorCream,
			"size":   13,
		},
		"title": map[string]any{
			"text": title,
			"font": map[string]any{"size": 20, "color": colorCream},
		},
		"margin": map[string]any{"l": 60, "r": 40, "t": 60, "b": 60},
		"xaxis": map[string]any{
			"gridcolor": "rgba(255,255,255,0.06)",
			"tickfont":  map[string]any{"color": colorGrayLight},
		},
		"yaxis": map[string]any{
			"gridcolor": "rgba(255,255,255,0.06)",
			"tickfont":  map[string]any{"color": colorGrayLight},
		},
		"legend": map[string]any{
			"font":    map[string]any{"color": colorCream},
			"bgcolor": "rgba(0,0,0,0)",
		},
	}
}

func newChart(id string, data []map[string]any, layout map[string]any) (chart, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return chart{}, fmt.Errorf("marshaling chart %s data: %w", id, err)
	}
	layoutJSON, err := json.Marshal(layout)
	if err != nil {
		return chart{}, fmt.Errorf("marshaling chart %s layout: %w", id, err)
	}
	return chart{ID: id, Data: string(dataJSON), Layout: string(layoutJSON)}, nil
}

// scopeDonut shows the share of each scope in the grand total, with the
// total printed in the hole.
func scopeDonut(inv *engine.Inventory) (chart, error) {
	data := []map[string]any{{
		"type":   "pie",
		"labels": []string{"Scope 1", "Scope 2 (Location)", "Scope 3"},
		"values": []float64{inv.Scope1Tonnes, inv.Scope2LocationTonnes, inv.Scope3Tonnes},
		"hole":   0.5,
		"marker": map[string]any{
			"colors": []string{colorGreenBright, colorGreenDeep, colorAccentTeal},
			"line":   map[string]any{"color": colorBlack, "width": 2},
		},
		"textinfo":      "label+percent",
		"textposition":  "outside",
		"textfont":      map[string]any{"color": colorCream, "size": 12},
		"hovertemplate": "<b>%{label}</b><br>%{value:,.1f} tCO2e<br>%{percent}<extra></extra>",
	}}

	layout := baseLayout("Emissions by Scope")
	layout["annotations"] = []map[string]any{{
		"text":      fmt.Sprintf("<b>%.1f</b><br><span style='font-size:12px'>tCO2e</span>", inv.TotalTonnes),
		"x":         0.5,
		"y":         0.5,
		"font":      map[string]any{"size": 22, "color": colorGreenBright},
		"showarrow": false,
	}}
	return newChart("scope-donut", data, layout)
}

// scopeWaterfall shows the buildup from Scope 1 through Scope 3 to the
// grand total.
func scopeWaterfall(inv *engine.Inventory) (chart, error) {
	data := []map[string]any{{
		"type":      "waterfall",
		"x":         []string{"Scope 1", "Scope 2 (Location)", "Scope 3", "Total"},
		"y":         []float64{inv.Scope1Tonnes, inv.Scope2LocationTonnes, inv.Scope3Tonnes, 0},
		"measure":   []string{"relative", "relative", "relative", "total"},
		"connector": map[string]any{"line": map[string]any{"color": colorGrayMid, "width": 1}},
		"increasing": map[string]any{"marker": map[string]any{
			"color": colorGreenBright,
			"line":  map[string]any{"color": colorBlack, "width": 1},
		}},
		"totals": map[string]any{"marker": map[string]any{
			"color": colorGreenDeep,
			"line":  map[string]any{"color": colorGreenBright, "width": 2},
		}},
		"hovertemplate": "<b>%{x}</b><br>%{y:,.1f} tCO2e<extra></extra>",
	}}

	layout := baseLayout("Emission Buildup by Scope")
	layout["yaxis"].(map[string]any)["title"] = map[string]any{"text": "tCO2e"}
	return newChart("scope-waterfall", data, layout)
}

// scope3Bar is a horizontal bar of the numbered Scope 3 category totals,
// largest first.
func scope3Bar(rows []CategoryRow) (chart, error) {
	labels := make([]string, 0, len(rows))
	values := make([]float64, 0, len(rows))
	colors := make([]string, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- { // plotly draws bottom-up
		labels = append(labels, fmt.Sprintf("Cat %d: %s", rows[i].Category, rows[i].Name))
		values = append(values, rows[i].Tonnes)
		colors = append(colors, categoryPalette[i%len(categoryPalette)])
	}

	data := []map[string]any{{
		"type":        "bar",
		"orientation": "h",
		"y":           labels,
		"x":           values,
		"marker": map[string]any{
			"color": colors,
			"line":  map[string]any{"color": colorBlack, "width": 1},
		},
		"hovertemplate": "<b>%{y}</b><br>%{x:,.1f} tCO2e<extra></extra>",
	}}

	layout := baseLayout("Scope 3 Category Breakdown")
	layout["margin"] = map[string]any{"l": 280, "r": 40, "t": 60, "b": 60}
	layout["height"] = max(350, len(rows)*38+120)
	layout["xaxis"].(map[string]any)["title"] = map[string]any{"text": "tCO2e"}
	return newChart("scope3-bar", data, layout)
}

// topSourcesBar ranks the largest individual sources, largest at the top.
func topSourcesBar(rows []RegionRow) (chart, error) {
	labels := make([]string, 0, len(rows))
	values := make([]float64, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		label := rows[i].Region
		if len(label) > 60 {
			label = label[:57] + "..."
		}
		labels = append(labels, label)
		values = append(values, rows[i].Tonnes)
	}

	maxVal := 1.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	colors := make([]string, len(values))
	for i, v := range values {
		t := v / maxVal
		colors[i] = fmt.Sprintf("rgb(%d,%d,%d)",
			int(13+t*(76-13)), int(31+t*(175-31)), int(13+t*(80-13)))
	}

	data := []map[string]any{{
		"type":        "bar",
		"orientation": "h",
		"y":           labels,
		"x":           values,
		"marker": map[string]any{
			"color": colors,
			"line":  map[string]any{"color": colorBlack, "width": 1},
		},
		"hovertemplate": "<b>%{y}</b><br>%{x:,.1f} tCO2e<extra></extra>",
	}}

	layout := baseLayout(fmt.Sprintf("Top %d Emission Sources", len(rows)))
	layout["margin"] = map[string]any{"l": 320, "r": 40, "t": 60, "b": 60}
	layout["height"] = max(350, len(rows)*38+120)
	layout["xaxis"].(map[string]any)["title"] = map[string]any{"text": "tCO2e"}
	return newChart("top-sources", data, layout)
}
