// Package reporter writes lint results as text, JSON, SARIF, unified
// diffs, or summary tables.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/fmtsubst/pkg/analysis"
	"github.com/yaklabco/fmtsubst/pkg/runner"
)

// Reporter writes a run's results and returns the number of issues
// it reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the reporter for opts.Format. Unset writers and sort order
// take their DefaultOptions values.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}
	if opts.SortBy == "" {
		opts.SortBy = defaults.SortBy
	}

	switch opts.Format {
	case FormatText, "":
		return NewTextReporter(opts), nil
	case FormatJSON:
		return analyzed(NewJSONRenderer(opts), opts, true), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return analyzed(NewSummaryRenderer(opts), opts, false), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// analyzedReporter runs analysis.Analyze and hands the report to a Renderer.
type analyzedReporter struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = (*analyzedReporter)(nil)

func analyzed(renderer Renderer, opts Options, withDiagnostics bool) *analyzedReporter {
	return &analyzedReporter{
		renderer: renderer,
		opts: analysis.Options{
			IncludeDiagnostics: withDiagnostics,
			IncludeByRule:      true,
			SortBy:             opts.SortBy,
			RuleFormat:         opts.RuleFormat,
			WorkingDir:         opts.WorkingDir,
		},
	}
}

func (a *analyzedReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}
