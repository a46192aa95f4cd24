package lint

import (
	"cmp"
	"slices"

	"github.com/yaklabco/fmtsubst/pkg/config"
	"github.com/yaklabco/fmtsubst/pkg/cxxsrc"
	"github.com/yaklabco/fmtsubst/pkg/fix"
)

// Diagnostic is one finding of a rule. Lines and columns are 1-based;
// columns count bytes. Offsets are 0-based and half-open.
type Diagnostic struct {
	RuleID   string
	RuleName string // e.g. "fmt-format-substitute"; filled in by the engine
	Message  string
	Severity config.Severity // set by the engine from the resolved rule
	FilePath string

	StartLine, StartColumn int
	EndLine, EndColumn    int

	StartOffset, EndOffset int

	// Suggestion is a short human-readable hint, such as the rewritten call.
	Suggestion string

	// FixEdits rewrite the source to resolve the finding. They are applied
	// together or not at all.
	FixEdits []fix.TextEdit
}

// HasFix reports whether the diagnostic carries edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// SortDiagnostics orders diagnostics by line, column and rule ID.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.StartLine, b.StartLine),
			cmp.Compare(a.StartColumn, b.StartColumn),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})
}

// DiagnosticBuilder assembles a Diagnostic with chained calls:
//
//	lint.NewDiagnostic(r.ID(), file, site.Call, msg).WithFix(edits).Build()
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts a diagnostic covering rng in file. With a nil file
// only the offsets are recorded.
func NewDiagnostic(ruleID string, file *cxxsrc.File, rng cxxsrc.SourceRange, message string) *DiagnosticBuilder {
	d := Diagnostic{
		RuleID:      ruleID,
		Message:     message,
		StartOffset: rng.StartOffset,
		EndOffset:   rng.EndOffset,
	}
	if file != nil {
		span := file.PositionOf(rng)
		d.FilePath = file.Path
		d.StartLine, d.StartColumn = span.Start.Line, span.Start.Column
		d.EndLine, d.EndColumn = span.End.Line, span.End.Column
	}
	return &DiagnosticBuilder{diag: d}
}

// WithSuggestion sets the hint shown next to the message.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix appends the edits collected by builder. A nil builder is ignored.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// WithEdit appends a single edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
