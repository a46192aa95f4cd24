package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// tabSpaces replaces tabs in source context, matching lipgloss' own
// tab conversion so the marker stays aligned.
const tabSpaces = "    "

// FormatDiagnostic formats a single diagnostic for terminal output.
// Uses ID format for rule identifiers.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatID)
}

// FormatDiagnosticWithFormat formats a diagnostic with configurable rule identifier format.
func (s *Styles) FormatDiagnosticWithFormat(
	diag *lint.Diagnostic,
	showContext bool,
	sourceLine string,
	ruleFormat config.RuleFormat,
) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)
	ruleIdentifier := ruleFormat.Identify(diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if showContext && sourceLine != "" {
		endColumn := 0
		if diag.EndLine == diag.StartLine {
			endColumn = diag.EndColumn
		}
		builder.WriteString(s.FormatSourceRange(sourceLine, diag.StartColumn, endColumn))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	return s.FormatSourceRange(line, column, 0)
}

// FormatSourceRange formats the source line and marks the byte columns
// [startColumn, endColumn) with a caret followed by tildes. Columns are
// 1-based byte offsets into line; an endColumn at or before startColumn
// marks a single caret. Padding follows the display width of the text
// before the marker, so wide runes stay aligned.
func (s *Styles) FormatSourceRange(line string, startColumn, endColumn int) string {
	var builder strings.Builder

	line = strings.TrimRight(line, "\r\n")
	builder.WriteString(contextIndent + s.SourceLine.Render(strings.ReplaceAll(line, "\t", tabSpaces)) + "\n")

	if startColumn <= 0 {
		return builder.String()
	}

	start := min(startColumn-1, len(line))
	width := 1
	if endColumn > startColumn {
		end := min(endColumn-1, len(line))
		width = max(runewidth.StringWidth(line[start:end]), 1)
	}

	marker := "^" + strings.Repeat("~", width-1)
	builder.WriteString(contextIndent + displayPadding(line[:start]) + s.Caret.Render(marker) + "\n")

	return builder.String()
}

// displayPadding returns spaces occupying the same columns as prefix.
func displayPadding(prefix string) string {
	var builder strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			builder.WriteString(tabSpaces)
			continue
		}
		builder.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
