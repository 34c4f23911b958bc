package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/rshade/ghgcalc/internal/engine"
	"github.com/rshade/ghgcalc/internal/equiv"
)

// Result box rendering constants.
const (
	resultBoxWidth  = 64
	boxPaddingWidth = 4
)

func boxTitleColor() lipgloss.Color  { return lipgloss.Color("40") }
func boxBorderColor() lipgloss.Color { return lipgloss.Color("28") }
func noteColor() lipgloss.Color      { return lipgloss.Color("246") }

// isWriterTerminal reports whether the provided io.Writer refers to a
// terminal. It returns true when w is an *os.File whose file descriptor is a
// terminal, and false for any other writer (like bytes.Buffer in tests).
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// RenderResults renders calculation results to the writer, styled for a TTY
// and plain otherwise.
func RenderResults(w io.Writer, results []engine.Result, precision int) error {
	if isWriterTerminal(w) {
		return renderStyledResults(w, results, precision)
	}
	return renderPlainResults(w, results, precision)
}

// resultTitle names the box for one result.
func resultTitle(r engine.Result) string {
	switch {
	case r.Scope == engine.Scope2 && r.Method != "":
		return fmt.Sprintf("SCOPE 2 — %s", strings.ToUpper(strings.ReplaceAll(string(r.Method), "_", "-")))
	case r.Scope == engine.Scope3:
		return fmt.Sprintf("SCOPE 3 — CATEGORY %d", r.Scope3Category)
	case r.Scope1Category != "":
		return fmt.Sprintf("SCOPE 1 — %s", strings.ToUpper(strings.ReplaceAll(string(r.Scope1Category), "_", " ")))
	default:
		return fmt.Sprintf("SCOPE %d", r.Scope)
	}
}

// formatQuantity renders v with grouped thousands at the given precision.
func formatQuantity(v float64, precision int) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", number.Decimal(v,
		number.MaxFractionDigits(precision), number.MinFractionDigits(precision)))
}

// resultLines builds the body lines shared by both render modes.
func resultLines(r engine.Result, precision int) []string {
	lines := []string{
		fmt.Sprintf("Total CO2e: %s kg (%s tonnes)",
			formatQuantity(r.TotalCO2eKg, precision),
			formatQuantity(r.TotalCO2eTonnes, precision+2)),
	}
	for _, gb := range r.GasBreakdown {
		lines = append(lines, fmt.Sprintf("  %-8s %.4f kg x GWP %g = %.4f kg CO2e",
			strings.ToUpper(gb.Gas), gb.MassKg, gb.GWPUsed, gb.CO2eKg))
	}
	if r.FactorID != "" {
		lines = append(lines, fmt.Sprintf("Factor: %s (%s)", r.FactorID, r.FactorSource))
	}
	if eq := equiv.DisplayText(r.TotalCO2eKg); eq != "" {
		lines = append(lines, eq)
	}
	return lines
}

func renderStyledResults(w io.Writer, results []engine.Result, precision int) error {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(boxTitleColor())

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1).
		Width(resultBoxWidth)

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(noteColor())

	for _, r := range results {
		var content strings.Builder
		content.WriteString(titleStyle.Render(resultTitle(r)))
		content.WriteString("\n")
		content.WriteString(strings.Repeat("─", resultBoxWidth-boxPaddingWidth))
		content.WriteString("\n")

		for _, line := range resultLines(r, precision) {
			content.WriteString(line)
			content.WriteString("\n")
		}
		for _, note := range r.Notes {
			content.WriteString(noteStyle.Render("note: " + note))
			content.WriteString("\n")
		}

		if _, err := fmt.Fprintln(w, borderStyle.Render(strings.TrimRight(content.String(), "\n"))); err != nil {
			return err
		}
	}
	return nil
}

func renderPlainResults(w io.Writer, results []engine.Result, precision int) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, resultTitle(r)); err != nil {
			return err
		}
		for _, line := range resultLines(r, precision) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		for _, note := range r.Notes {
			if _, err := fmt.Fprintf(w, "note: %s\n", note); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
