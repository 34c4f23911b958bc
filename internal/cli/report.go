package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/engine"
	"github.com/rshade/ghgcalc/internal/factors"
	"github.com/rshade/ghgcalc/internal/ingest"
	"github.com/rshade/ghgcalc/internal/report"
)

// newReportCmd creates the report command: calculate an inventory from an
// activity file and render it as a self-contained HTML (or JSON) report.
func newReportCmd() *cobra.Command {
	var (
		output     string
		title      string
		formatFlag string
		year       int
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Generate an emissions report from an activity file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromCmd(cmd)

			if title == "" {
				title = cfg.Report.Title
			}
			if title == "" {
				title = "GHG Emissions Report"
			}
			if formatFlag == "" {
				formatFlag = cfg.Report.Format
			}
			reportFormat, err := report.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			records, err := ingest.DecodeFile(args[0])
			if err != nil {
				return err
			}
			if rep := ingest.Validate(records); !rep.OK() {
				return fmt.Errorf("%s: %d invalid records (run 'ghgcalc validate %s' for details)",
					args[0], len(rep.Errors), args[0])
			}
			activities := ingest.Activities(records)

			assessment, err := resolveAssessment(cmd)
			if err != nil {
				return err
			}

			registry, err := factors.Load()
			if err != nil {
				return err
			}

			calc := engine.New(registry, engine.WithAssessment(assessment))
			inventory, err := calc.CalculateInventory(cmd.Context(), activities, title)
			if err != nil {
				return err
			}
			inventory.Year = year

			includeMethodology := true
			if cfg.Report.IncludeMethodology != nil {
				includeMethodology = *cfg.Report.IncludeMethodology
			}
			reportCfg := report.Config{
				Title:              title,
				Format:             reportFormat,
				IncludeMethodology: includeMethodology,
				Assessment:         string(assessment),
			}

			if jsonOut && !strings.HasSuffix(output, ".json") {
				output = strings.TrimSuffix(output, ".html") + ".json"
			}

			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating report file %s: %w", output, err)
			}
			defer func() { _ = out.Close() }()

			gen := report.NewGenerator(registry.Count())
			if jsonOut {
				err = gen.WriteJSON(cmd.Context(), inventory, activities, reportCfg, out)
			} else {
				err = gen.WriteHTML(cmd.Context(), inventory, activities, reportCfg, out)
			}
			if err != nil {
				return err
			}

			cmd.Printf("Report generated: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "report.html", "output file path")
	cmd.Flags().StringVar(&title, "title", "", "report title")
	cmd.Flags().StringVar(&formatFlag, "format", "", "report format: ghg_protocol, cdp, gri_305")
	cmd.Flags().IntVar(&year, "year", 0, "reporting year shown in the header")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "write a machine-readable JSON report instead of HTML")

	return cmd
}
