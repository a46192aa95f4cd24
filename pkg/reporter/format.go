package reporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/fmtsubst/pkg/analysis"
	"github.com/yaklabco/fmtsubst/pkg/config"
)

// Format names an output format. It is the same type the configuration
// carries, so a merged config can be handed over unchanged.
type Format = config.OutputFormat

// Output formats.
const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatDiff    = config.FormatDiff
	FormatSummary = config.FormatSummary
)

// Formats lists the supported formats in help order.
func Formats() []Format {
	return config.OutputFormats()
}

// ParseFormat validates a format name. The empty string selects FormatText.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	valid := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		valid = append(valid, string(f))
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(valid, ", "))
}

// Renderer writes an analysis.Report. Renderers only present data; all
// counting and grouping happens in package analysis.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
