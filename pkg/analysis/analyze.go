// Package analysis condenses a runner.Result into per-file and per-rule views
// shared by the structured reporters.
package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
	"github.com/yaklabco/fmtsubst/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// DisplayPath converts path to one relative to workDir when possible.
func DisplayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// Analyze condenses result into a Report in a single pass over its files.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion, Files: make([]FileReport, 0)}
	if result == nil {
		return report
	}

	agg := newRuleAggregator()
	for _, outcome := range result.Files {
		file := report.addFile(outcome, opts)
		if pr := outcome.Result; pr != nil && pr.FileResult != nil {
			for i := range pr.Diagnostics {
				diag := &pr.Diagnostics[i]
				sev := normalizeSeverity(diag.Severity)
				fixable := diag.HasFix()

				file.add(sev)
				report.Totals.add(sev)
				report.Totals.Issues++
				if fixable {
					report.Totals.Fixable++
				}
				agg.add(diag, sev, fixable, file.Path)

				if opts.IncludeDiagnostics {
					file.Diagnostics = append(file.Diagnostics, newDiagnosticEntry(diag, sev, opts.RuleFormat))
				}
			}
		}
		if file.Issues() > 0 {
			report.Totals.FilesWithIssues++
		}
	}

	if opts.IncludeByRule {
		report.ByRule = agg.list()
		SortRules(report.ByRule, opts.SortBy)
	}
	return report
}

// addFile appends the report entry for outcome and counts its fix outcome.
func (r *Report) addFile(outcome runner.FileOutcome, opts Options) *FileReport {
	r.Files = append(r.Files, FileReport{
		Path:        DisplayPath(outcome.Path, opts.WorkingDir),
		Diagnostics: make([]DiagnosticEntry, 0),
	})
	file := &r.Files[len(r.Files)-1]
	r.Totals.Files++

	if outcome.Error != nil {
		file.Error = outcome.Error.Error()
		r.Totals.FilesErrored++
		return file
	}
	pr := outcome.Result
	if pr == nil {
		return file
	}
	file.Modified = pr.Written
	file.Fixed = pr.DiagnosticsFixed
	r.Totals.Fixed += pr.DiagnosticsFixed
	if pr.Written {
		r.Totals.FilesModified++
	}
	if pr.Skipped {
		file.Skipped = pr.SkipReason
		r.Totals.FilesSkipped++
	}
	return file
}

type ruleAggregator struct {
	rules map[string]*RuleAnalysis
	files map[string]map[string]bool
}

func newRuleAggregator() *ruleAggregator {
	return &ruleAggregator{rules: map[string]*RuleAnalysis{}, files: map[string]map[string]bool{}}
}

func (a *ruleAggregator) add(diag *lint.Diagnostic, sev config.Severity, fixable bool, path string) {
	ra, ok := a.rules[diag.RuleID]
	if !ok {
		ra = &RuleAnalysis{RuleID: diag.RuleID, RuleName: diag.RuleName}
		a.rules[diag.RuleID] = ra
		a.files[diag.RuleID] = map[string]bool{}
	}
	ra.Issues++
	ra.add(sev)
	if fixable {
		ra.Fixable++
	}
	a.files[diag.RuleID][path] = true
}

func (a *ruleAggregator) list() []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(a.rules))
	for id, ra := range a.rules {
		ra.Files = slices.Sorted(maps.Keys(a.files[id]))
		out = append(out, *ra)
	}
	return out
}

// FilesWithIssues returns the files that have diagnostics, ordered by sortBy.
// Ties are broken by path.
func (r *Report) FilesWithIssues(sortBy SortField) []FileReport {
	files := make([]FileReport, 0, r.Totals.FilesWithIssues)
	for _, f := range r.Files {
		if f.Issues() > 0 {
			files = append(files, f)
		}
	}
	slices.SortStableFunc(files, func(a, b FileReport) int {
		return cmp.Or(rank(sortBy, a.Counts, b.Counts, a.Issues(), b.Issues()), cmp.Compare(a.Path, b.Path))
	})
	return files
}

// SortRules orders rules by sortBy, breaking ties by rule ID.
func SortRules(rules []RuleAnalysis, sortBy SortField) {
	slices.SortStableFunc(rules, func(a, b RuleAnalysis) int {
		return cmp.Or(rank(sortBy, a.Counts, b.Counts, a.Issues, b.Issues), cmp.Compare(a.RuleID, b.RuleID))
	})
}

// rank puts higher counts first. SortByAlpha ranks everything equal.
func rank(sortBy SortField, a, b Counts, issuesA, issuesB int) int {
	switch sortBy {
	case SortByAlpha:
		return 0
	case SortBySeverity:
		return cmp.Or(
			cmp.Compare(b.Errors, a.Errors),
			cmp.Compare(b.Warnings, a.Warnings),
			cmp.Compare(issuesB, issuesA),
		)
	default:
		return cmp.Compare(issuesB, issuesA)
	}
}

func normalizeSeverity(sev config.Severity) config.Severity {
	return cmp.Or(sev, config.SeverityWarning)
}

func newDiagnosticEntry(diag *lint.Diagnostic, severity config.Severity, ruleFormat config.RuleFormat) DiagnosticEntry {
	entry := DiagnosticEntry{
		Rule:        ruleFormat.Identify(diag.RuleID, diag.RuleName),
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    string(severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     diag.HasFix(),
	}
	for _, edit := range diag.FixEdits {
		entry.Fixes = append(entry.Fixes, FixEntry{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return entry
}
