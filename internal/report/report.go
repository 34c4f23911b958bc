// Package report renders an emissions inventory into HTML or JSON for
// downstream distribution. It consumes the engine's Inventory plus the raw
// activities (for geographic attribution) and contains no calculation
// logic of its own.
package report

import (
	"fmt"
	"strings"
)

// Format selects a reporting framework layout.
type Format string

// Supported report formats.
const (
	FormatGHGProtocol Format = "ghg_protocol"
	FormatCDP         Format = "cdp"
	FormatGRI305      Format = "gri_305"
)

// ParseFormat validates a report format string.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatGHGProtocol, FormatCDP, FormatGRI305:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (valid: %s, %s, %s)",
			s, FormatGHGProtocol, FormatCDP, FormatGRI305)
	}
}

// Label returns the framework's display name.
func (f Format) Label() string {
	switch f {
	case FormatCDP:
		return "CDP Climate Change"
	case FormatGRI305:
		return "GRI 305: Emissions"
	default:
		return "GHG Protocol Corporate Standard"
	}
}

// Config controls report generation.
type Config struct {
	Title              string
	Format             Format
	IncludeMethodology bool

	// Assessment is the GWP assessment label shown in the methodology
	// section ("ar5" or "ar6").
	Assessment string
}
