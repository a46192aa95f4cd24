package runner

import (
	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
)

// FileOutcome is what happened to one discovered file. Exactly one of
// Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats are the totals of a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int // read and linted, including skipped files
	FilesSkipped    int // generated, or changed on disk while fixing
	FilesErrored    int
	FilesWithIssues int
	FilesModified   int // rewritten on disk

	DiagnosticsTotal   int
	DiagnosticsFixable int // remaining diagnostics that carry edits
	DiagnosticsFixed   int // resolved by applied edits, over all passes

	// DiagnosticsBySeverity counts diagnostics per severity name.
	DiagnosticsBySeverity map[string]int
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

// add folds one outcome into the totals.
func (s *Stats) add(outcome FileOutcome) {
	if outcome.Error != nil {
		s.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	s.FilesProcessed++
	if pr.Skipped {
		s.FilesSkipped++
	}
	if pr.Written {
		s.FilesModified++
	}
	s.DiagnosticsFixed += pr.DiagnosticsFixed

	if pr.FileResult == nil || !pr.HasIssues() {
		return
	}
	s.FilesWithIssues++
	s.DiagnosticsTotal += pr.IssueCount()
	s.DiagnosticsFixable += pr.FixableCount()
	for i := range pr.Diagnostics {
		severity := pr.Diagnostics[i].Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		s.DiagnosticsBySeverity[string(severity)]++
	}
}

// Result is the outcome of a run. Files are in discovery order, which is
// sorted by path; a cancelled run holds only the files that finished.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Errors []error // failures not tied to a file
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.add(outcome)
}

// HasFailures reports whether any error-severity diagnostic was found.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasFixable reports whether any remaining diagnostic carries a fix.
func (r *Result) HasFixable() bool {
	return r != nil && r.Stats.DiagnosticsFixable > 0
}

// HasIssues reports whether any diagnostic was found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}
