package analysis

import "github.com/yaklabco/fmtsubst/pkg/config"

// Report is the analysed form of a run, computed once by Analyze and shared
// by the structured reporters. Its JSON encoding is the json output format.
type Report struct {
	Version string         `json:"version"`
	Files   []FileReport   `json:"files"` // in path order
	ByRule  []RuleAnalysis `json:"byRule,omitempty"`
	Totals  Totals         `json:"summary"`
}

// Counts tallies diagnostics by severity.
type Counts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c *Counts) add(sev config.Severity) {
	switch sev {
	case config.SeverityError:
		c.Errors++
	case config.SeverityInfo:
		c.Infos++
	default:
		c.Warnings++
	}
}

// FileReport is one file's diagnostics and fix outcome.
type FileReport struct {
	Path        string            `json:"path"`
	Diagnostics []DiagnosticEntry `json:"diagnostics"`
	Counts
	Fixed    int    `json:"fixed,omitempty"`
	Modified bool   `json:"modified,omitempty"`
	Skipped  string `json:"skipped,omitempty"` // skip reason
	Error    string `json:"error,omitempty"`
}

// Issues returns the number of diagnostics in the file.
func (f FileReport) Issues() int { return f.Errors + f.Warnings + f.Infos }

// DiagnosticEntry is a lint.Diagnostic flattened for output. Rule is the
// identifier in the configured rule format.
type DiagnosticEntry struct {
	Rule        string     `json:"rule"`
	RuleID      string     `json:"ruleId"`
	RuleName    string     `json:"ruleName"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	StartLine   int        `json:"startLine"`
	StartColumn int        `json:"startColumn"`
	EndLine     int        `json:"endLine"`
	EndColumn   int        `json:"endColumn"`
	Suggestion  string     `json:"suggestion,omitempty"`
	Fixable     bool       `json:"fixable"`
	Fixes       []FixEntry `json:"fixes,omitempty"`
}

// FixEntry is one edit of a fix as a byte range.
type FixEntry struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// RuleAnalysis aggregates the diagnostics of one rule.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Issues   int    `json:"issues"`
	Counts
	Fixable int      `json:"fixable"`
	Files   []string `json:"files,omitempty"`
}

// Totals aggregates the whole run.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesModified   int `json:"filesModified"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"totalIssues"`
	Counts
	Fixable int `json:"fixable"`
	Fixed   int `json:"fixed"`
}

func (t Totals) HasIssues() bool { return t.Issues > 0 }
func (t Totals) HasErrors() bool { return t.Errors > 0 }
