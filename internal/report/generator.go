package report

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/rshade/ghgcalc/internal/engine"
	"github.com/rshade/ghgcalc/internal/equiv"
	"github.com/rshade/ghgcalc/internal/logging"
)

//go:embed template.html
var htmlTemplate string

// topSourcesLimit caps the "top emission sources" chart.
const topSourcesLimit = 10

// section pairs a roman numeral with the section it numbers.
type section struct {
	Num   string
	Title string
}

// templateData is everything the HTML template consumes. All chart payloads
// are pre-marshaled plotly JSON.
type templateData struct {
	Title       string
	Year        int
	FormatLabel string
	Assessment  string
	FactorCount int
	GeneratedAt string

	TotalTonnes  string
	Scope1Tonnes string
	Scope2Tonnes string
	Scope3Tonnes string
	Equivalence  string

	ScopeRows   []ScopeRow
	Scope3Rows  []CategoryRow
	GasRows     []GasRow
	RegionRows  []RegionRow
	Methodology bool

	Charts   []chart
	Sections map[string]string
}

// Generator renders calculated inventories as self-contained HTML or JSON
// reports.
type Generator struct {
	factorCount int
	printer     *message.Printer
}

// NewGenerator returns a Generator. factorCount is printed in the report
// header and methodology section.
func NewGenerator(factorCount int) *Generator {
	return &Generator{
		factorCount: factorCount,
		printer:     message.NewPrinter(language.English),
	}
}

// formatTonnes renders a tonne value for the summary cards, scaling to a
// millions suffix for very large inventories.
func (g *Generator) formatTonnes(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000:
		return g.printer.Sprintf("%vM", number.Decimal(v/1_000_000, number.MaxFractionDigits(2)))
	case abs >= 1_000:
		return g.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
	case abs >= 1:
		return g.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(1)))
	default:
		return g.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
	}
}

//nolint:gochecknoglobals // Constant numbering table.
var romanNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}

// numberSections assigns roman numerals to the sections actually present,
// in document order.
func numberSections(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for i, key := range keys {
		if i < len(romanNumerals) {
			out[key] = romanNumerals[i]
		} else {
			out[key] = fmt.Sprintf("%d", i+1)
		}
	}
	return out
}

// WriteHTML renders the full HTML report for inv to w. activities supplies
// location context for the regional table; it may be nil.
func (g *Generator) WriteHTML(ctx context.Context, inv *engine.Inventory, activities []engine.Activity, cfg Config, w io.Writer) error {
	log := logging.FromContext(ctx).With().Str("component", "report").Logger()

	data := templateData{
		Title:        cfg.Title,
		Year:         inv.Year,
		FormatLabel:  cfg.Format.Label(),
		Assessment:   strings.ToUpper(cfg.Assessment),
		FactorCount:  g.factorCount,
		GeneratedAt:  time.Now().UTC().Format("2 January 2006"),
		TotalTonnes:  g.formatTonnes(inv.TotalTonnes),
		Equivalence:  equiv.DisplayText(inv.TotalTonnes * 1000),
		Scope1Tonnes: g.formatTonnes(inv.Scope1Tonnes),
		Scope2Tonnes: g.formatTonnes(inv.Scope2LocationTonnes),
		Scope3Tonnes: g.formatTonnes(inv.Scope3Tonnes),
		ScopeRows:    scopeSummary(inv),
		Scope3Rows:   scope3Breakdown(inv),
		GasRows:      gasBreakdown(inv),
		RegionRows:   regionRows(inv, activities),
		Methodology:  cfg.IncludeMethodology,
	}

	builders := []struct {
		build func() (chart, error)
		skip  bool
	}{
		{build: func() (chart, error) { return scopeDonut(inv) }},
		{build: func() (chart, error) { return scopeWaterfall(inv) }},
		{build: func() (chart, error) { return scope3Bar(data.Scope3Rows) }, skip: len(data.Scope3Rows) == 0},
		{build: func() (chart, error) { return topSourcesBar(sourceRows(inv, topSourcesLimit)) }, skip: len(inv.AllResults) == 0},
	}
	for _, b := range builders {
		if b.skip {
			continue
		}
		c, err := b.build()
		if err != nil {
			return err
		}
		data.Charts = append(data.Charts, c)
	}

	keys := []string{"scope"}
	if len(inv.AllResults) > 0 {
		keys = append(keys, "sources")
	}
	if len(data.Scope3Rows) > 0 {
		keys = append(keys, "scope3")
	}
	if len(data.GasRows) > 0 {
		keys = append(keys, "gas")
	}
	if len(data.RegionRows) > 0 {
		keys = append(keys, "regions")
	}
	if cfg.IncludeMethodology {
		keys = append(keys, "method")
	}
	data.Sections = numberSections(keys)

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"tonnes": func(v float64) string { return g.formatTonnes(v) },
		"pct":    func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"js":     func(s string) template.JS { return template.JS(s) }, //nolint:gosec // Marshaled by encoding/json above.
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	log.Info().
		Str("format", string(cfg.Format)).
		Int("results", len(inv.AllResults)).
		Int("charts", len(data.Charts)).
		Msg("rendered HTML report")
	return nil
}

// jsonReport is the machine-readable report shape.
type jsonReport struct {
	Title       string              `json:"title"`
	Format      Format              `json:"format"`
	Assessment  string              `json:"gwp_assessment"`
	GeneratedAt time.Time           `json:"generated_at"`
	Summary     []ScopeRow          `json:"scope_summary"`
	Scope3      []CategoryRow       `json:"scope3_breakdown,omitempty"`
	Gases       []GasRow            `json:"gas_breakdown,omitempty"`
	Regions     []RegionRow         `json:"regions,omitempty"`
	Equivalent  []equiv.Equivalency `json:"equivalencies,omitempty"`
	Inventory   *engine.Inventory   `json:"inventory"`
}

// WriteJSON renders the machine-readable report for inv to w.
func (g *Generator) WriteJSON(ctx context.Context, inv *engine.Inventory, activities []engine.Activity, cfg Config, w io.Writer) error {
	rep := jsonReport{
		Title:       cfg.Title,
		Format:      cfg.Format,
		Assessment:  cfg.Assessment,
		GeneratedAt: time.Now().UTC(),
		Summary:     scopeSummary(inv),
		Scope3:      scope3Breakdown(inv),
		Gases:       gasBreakdown(inv),
		Regions:     regionRows(inv, activities),
		Inventory:   inv,
	}
	if eqs, err := equiv.ForKg(inv.TotalTonnes * 1000); err == nil {
		rep.Equivalent = eqs
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}

	logging.FromContext(ctx).Info().
		Str("component", "report").
		Int("results", len(inv.AllResults)).
		Msg("wrote JSON report")
	return nil
}
