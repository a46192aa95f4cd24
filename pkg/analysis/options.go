package analysis

import (
	"slices"

	"github.com/yaklabco/fmtsubst/pkg/config"
)

// SortField orders the ranked views of a report.
type SortField string

const (
	SortByCount    SortField = "count"    // most issues first
	SortByAlpha    SortField = "alpha"    // by path or rule ID
	SortBySeverity SortField = "severity" // most errors, then warnings, then issues
)

// SortFields lists the valid sort fields.
func SortFields() []SortField {
	return []SortField{SortByCount, SortByAlpha, SortBySeverity}
}

// IsValid reports whether s is one of SortFields.
func (s SortField) IsValid() bool {
	return slices.Contains(SortFields(), s)
}

// Options selects what Analyze computes.
type Options struct {
	IncludeDiagnostics bool // fill FileReport.Diagnostics
	IncludeByRule      bool // fill Report.ByRule
	SortBy             SortField
	RuleFormat         config.RuleFormat

	// WorkingDir makes report paths relative when set.
	WorkingDir string
}

// DefaultOptions computes every view, ranked by issue count.
func DefaultOptions() Options {
	return Options{IncludeDiagnostics: true, IncludeByRule: true, SortBy: SortByCount, RuleFormat: config.RuleFormatName}
}
