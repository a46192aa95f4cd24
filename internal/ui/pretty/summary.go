package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/runner"
)

// Plural returns word with an "s" appended unless n is 1.
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (2 warnings, 1 info) in 2 files, 2 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%s checked)", Plural(stats.FilesProcessed, "file"))))
	} else {
		head := Plural(stats.DiagnosticsTotal, "issue")
		if breakdown := s.severityBreakdown(stats.DiagnosticsBySeverity); breakdown != "" {
			head += " (" + breakdown + ")"
		}
		parts = append(parts, head+" in "+Plural(stats.FilesWithIssues, "file"))

		if stats.DiagnosticsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
		}
	}

	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(
			fmt.Sprintf("%d fixed in %s", stats.DiagnosticsFixed, Plural(stats.FilesModified, "file"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityBreakdown(counts map[string]int) string {
	var parts []string
	if n := counts[string(config.SeverityError)]; n > 0 {
		parts = append(parts, s.Error.Render(Plural(n, "error")))
	}
	if n := counts[string(config.SeverityWarning)]; n > 0 {
		parts = append(parts, s.Warning.Render(Plural(n, "warning")))
	}
	if n := counts[string(config.SeverityInfo)]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return strings.Join(parts, ", ")
}
