package lint

import (
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
	"github.com/yaklabco/fmtsubst/pkg/fix"
)

// FileResult is the outcome of running every enabled rule over one file.
type FileResult struct {
	File        *cxxsrc.File
	Diagnostics []Diagnostic

	// Edits are the accepted edits of auto-fixable rules, sorted and free
	// of overlaps. SkippedEdits lost an overlap against an earlier edit;
	// EditConflicts is set when any did or when the edits were invalid.
	Edits         []fix.TextEdit
	SkippedEdits  []fix.TextEdit
	EditConflicts bool

	// FixedCount is the number of diagnostics whose edits were all accepted.
	FixedCount int

	// RuleErrors maps rule ID to the error the rule returned. A failing
	// rule does not stop the others.
	RuleErrors map[string]error
}

// HasIssues reports whether any diagnostic was produced.
func (fr *FileResult) HasIssues() bool { return len(fr.Diagnostics) > 0 }

// HasFixes reports whether there are edits to apply.
func (fr *FileResult) HasFixes() bool { return len(fr.Edits) > 0 }

// IssueCount returns the number of diagnostics.
func (fr *FileResult) IssueCount() int { return len(fr.Diagnostics) }

// FixableCount returns the number of diagnostics that carry edits.
func (fr *FileResult) FixableCount() int {
	n := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			n++
		}
	}
	return n
}

// Engine tokenizes a file and runs the registry's rules over it.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine returns an engine using parser and the rules in registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile runs the rules cfg enables over content.
//
// Diagnostics take the resolved severity of their rule. Edits are only
// collected from rules with auto-fix on.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	file, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{File: file, RuleErrors: make(map[string]error)}
	calls := NewCallCache(file)

	var groups [][]fix.TextEdit
	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		rc := NewRuleContext(ctx, file, cfg, rr.Config)
		rc.calls = calls

		diags, err := rr.Rule.Apply(rc)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			stamp(&diags[i], rr, path)
			if rr.AutoFix && diags[i].HasFix() {
				groups = append(groups, diags[i].FixEdits)
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	result.acceptEdits(groups, len(content))
	return result, nil
}

// stamp fills in what a rule leaves to the engine.
func stamp(d *Diagnostic, rr ResolvedRule, path string) {
	d.Severity = rr.Severity
	if d.FilePath == "" {
		d.FilePath = path
	}
	if d.RuleName == "" {
		d.RuleName = rr.Rule.Name()
	}
}

// acceptEdits validates the edit groups against the content length and
// keeps the non-overlapping ones. Invalid edits drop the whole fix.
func (fr *FileResult) acceptEdits(groups [][]fix.TextEdit, contentLen int) {
	if len(groups) == 0 {
		return
	}

	accepted, skipped, err := fix.PrepareEditsFiltered(slices.Concat(groups...), contentLen)
	if err != nil {
		fr.EditConflicts = true
		return
	}

	fr.Edits = accepted
	fr.SkippedEdits = skipped
	fr.EditConflicts = len(skipped) > 0
	for _, group := range groups {
		if !slices.ContainsFunc(group, func(e fix.TextEdit) bool { return slices.Contains(skipped, e) }) {
			fr.FixedCount++
		}
	}
}
